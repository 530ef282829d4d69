// Package catalog holds the fixed, ordered list of bodies visited by the tour. Catalog order is
// layout order: index 0 is the Sun and sits leftmost on the X axis.
package catalog

import "slices"

// PlanetRecord describes one body in the tour. Records are values and never mutated after
// construction; callers receive copies.
type PlanetRecord struct {
	// Name is the unique upper-case identifier shown in the title and fact panel.
	Name string
	// Distance is the mean distance from the Sun in AU. Descriptive only, not used for layout.
	Distance float32
	// Size is the radius relative to Earth (1.0), compressed for display.
	Size float32
	// Color is the packed 0xRRGGBB tint used for the base material and decorative ring.
	Color       uint32
	Description string
	Facts       []string
	// TextureURL is the texture path relative to the asset root.
	TextureURL string
}

// Well-known indexes into the catalog.
const (
	SunIndex    = 0
	EarthIndex  = 3
	SaturnIndex = 6
)

var planets = []PlanetRecord{
	{
		Name:        "SUN",
		Distance:    0,
		Size:        2.0,
		Color:       0xFDB813,
		Description: "THE STAR AT THE CENTER OF OUR SOLAR SYSTEM. IT CONTAINS 99.86% OF THE MASS IN THE SOLAR SYSTEM AND PROVIDES THE ENERGY THAT SUSTAINS LIFE ON EARTH",
		TextureURL:  "textures/planets/2k_sun.jpg",
		Facts: []string{
			"Made mostly of hydrogen (73%) and helium (25%)",
			"Temperature at core: 27 million°F (15 million°C)",
			"Powers Earth through nuclear fusion reactions",
			"Contains 99.86% of solar system mass",
			"Origin: Formed 4.6 billion years ago from a collapsing molecular cloud",
			"Age: Middle-aged star, halfway through its 10 billion year lifespan",
			"Distance from Earth: 93 million miles (150 million km)",
			"Light from Sun takes 8 minutes 20 seconds to reach Earth",
			"Rotates on its axis every 25 days at equator",
		},
	},
	{
		Name:        "MERCURY",
		Distance:    0.39,
		Size:        0.38,
		Color:       0x8C7853,
		Description: "THE CLOSEST PLANET TO THE SUN. IT CIRCLES THE SUN FASTER THAN ALL THE OTHER PLANETS, WHICH IS WHY ROMANS NAMED IT AFTER THEIR SWIFT-FOOTED MESSENGER GOD",
		TextureURL:  "textures/planets/2k_mercury.jpg",
		Facts: []string{
			"Smallest planet in our solar system (3,032 miles diameter)",
			"Second densest planet after Earth",
			"No atmosphere to speak of",
			"Temperature ranges from -290°F to 800°F",
			"Origin: Formed 4.5 billion years ago from rocky debris",
			"Named after Roman messenger god Mercury",
			"Orbits Sun in just 88 Earth days",
			"One day on Mercury lasts 176 Earth days",
			"Surface covered with craters like our Moon",
			"Has a large iron core making up 85% of radius",
		},
	},
	{
		Name:        "VENUS",
		Distance:    0.72,
		Size:        0.95,
		Color:       0xFFC649,
		Description: "THE SECOND PLANET FROM THE SUN AND EARTH'S CLOSEST PLANETARY NEIGHBOR. NAMED AFTER THE ROMAN GODDESS OF LOVE AND BEAUTY",
		TextureURL:  "textures/planets/2k_venus_surface.jpg",
		Facts: []string{
			"Hottest planet in our solar system (900°F surface)",
			"Thick toxic atmosphere of carbon dioxide traps heat",
			"Spins backwards compared to most planets (retrograde rotation)",
			"A day on Venus (243 Earth days) is longer than its year (225 Earth days)",
			"Origin: Rocky planet formed 4.5 billion years ago",
			"Named after Roman goddess of love and beauty",
			"Brightest natural object in night sky after the Moon",
			"Atmospheric pressure 90 times greater than Earth",
			"Surface hidden beneath thick clouds of sulfuric acid",
			"Similar size and mass to Earth, often called Earth's twin",
		},
	},
	{
		Name:        "EARTH",
		Distance:    1.0,
		Size:        1.0,
		Color:       0x4A90E2,
		Description: "OUR HOME PLANET. THE ONLY PLACE WE KNOW OF WHERE LIFE EXISTS. EARTH IS THE PERFECT DISTANCE FROM THE SUN FOR LIQUID WATER",
		TextureURL:  "textures/planets/2k_earth_daymap.jpg",
		Facts: []string{
			"Only known planet with liquid water and life",
			"Protected by a magnetic field that shields from solar radiation",
			"71% covered by water, 29% land",
			"Home to over 8.7 million species",
			"Origin: Formed 4.54 billion years ago from cosmic dust",
			"Has one natural satellite: the Moon (formed 4.5 billion years ago)",
			"Atmosphere: 78% nitrogen, 21% oxygen, 1% other gases",
			"Rotates on axis in 23 hours 56 minutes",
			"Orbits Sun at 67,000 mph taking 365.25 days",
			"Only planet not named after a Roman or Greek deity",
		},
	},
	{
		Name:        "MARS",
		Distance:    1.52,
		Size:        0.53,
		Color:       0xE27B58,
		Description: "THE RED PLANET. NAMED AFTER THE ROMAN GOD OF WAR. ITS REDDISH COLOR COMES FROM IRON OXIDE (RUST) ON ITS SURFACE",
		TextureURL:  "textures/planets/2k_mars.jpg",
		Facts: []string{
			"Has Olympus Mons, largest volcano in solar system (16 miles high)",
			"Two small moons: Phobos and Deimos (captured asteroids)",
			"Strong evidence of ancient water flows and riverbeds",
			"Primary target for future human exploration",
			"Origin: Rocky planet formed 4.6 billion years ago",
			"Named after Roman god of war due to blood-red appearance",
			"One day lasts 24 hours 37 minutes (similar to Earth)",
			"Thin atmosphere mostly carbon dioxide (95%)",
			"Home to massive dust storms that can engulf entire planet",
			"Has polar ice caps made of water and frozen CO2",
		},
	},
	{
		Name:        "JUPITER",
		Distance:    5.20,
		Size:        3.5,
		Color:       0xC88B3A,
		Description: "THE LARGEST PLANET IN OUR SOLAR SYSTEM. A GAS GIANT WITH COLORFUL BANDS OF CLOUDS AND THE FAMOUS GREAT RED SPOT STORM",
		TextureURL:  "textures/planets/2k_jupiter.jpg",
		Facts: []string{
			"Larger than all other planets combined (2.5 times)",
			"Great Red Spot: massive storm raging for 350+ years, twice Earth's size",
			"Has 95 known moons including Ganymede, largest moon in solar system",
			"Acts as cosmic vacuum cleaner, protecting inner planets from asteroids",
			"Origin: Gas giant formed 4.5 billion years ago",
			"Named after king of Roman gods",
			"Fastest spinning planet: one day is only 10 hours",
			"Made mostly of hydrogen and helium, no solid surface",
			"Has faint ring system discovered in 1979",
			"Strongest magnetic field of any planet (20,000 times Earth's)",
		},
	},
	{
		Name:        "SATURN",
		Distance:    9.54,
		Size:        3.0,
		Color:       0xFAD5A5,
		Description: "THE RINGED PLANET. FAMOUS FOR ITS SPECTACULAR RING SYSTEM MADE OF BILLIONS OF ICE PARTICLES AND ROCK DEBRIS",
		TextureURL:  "textures/planets/2k_saturn.jpg",
		Facts: []string{
			"Most spectacular ring system visible from Earth",
			"Second largest planet (9 Earths could fit across)",
			"Has 146 known moons, including Titan with thick atmosphere",
			"Low density: could float in water if large enough ocean existed",
			"Origin: Gas giant formed 4.5 billion years ago",
			"Named after Roman god of agriculture and wealth",
			"Rings are only 30 feet thick but 175,000 miles wide",
			"Day lasts only 10.7 hours despite its size",
			"Wind speeds can reach 1,100 mph at equator",
			"Has hexagon-shaped storm at north pole",
		},
	},
	{
		Name:        "URANUS",
		Distance:    19.19,
		Size:        1.5,
		Color:       0x4FD0E7,
		Description: "THE ICE GIANT. THIS PLANET ROTATES ON ITS SIDE, MAKING IT UNIQUE IN OUR SOLAR SYSTEM. COLDEST PLANETARY ATMOSPHERE",
		TextureURL:  "textures/planets/2k_uranus.jpg",
		Facts: []string{
			"Rotates on its side with 98° axial tilt",
			"Has 13 known rings made of dark particles",
			"27 known moons, all named after Shakespeare and Pope characters",
			"Coldest planetary atmosphere (-371°F / -224°C)",
			"Origin: Ice giant formed 4.5 billion years ago",
			"Named after Greek god of the sky (only Greek name)",
			"Blue-green color from methane in atmosphere",
			"Takes 84 Earth years to orbit the Sun",
			"One day lasts 17 hours 14 minutes",
			"First planet discovered by telescope (1781 by William Herschel)",
		},
	},
	{
		Name:        "NEPTUNE",
		Distance:    30.07,
		Size:        1.5,
		Color:       0x4166F5,
		Description: "THE FARTHEST PLANET FROM THE SUN. THIS DARK, COLD WORLD HAS THE STRONGEST WINDS IN THE SOLAR SYSTEM",
		TextureURL:  "textures/planets/2k_neptune.jpg",
		Facts: []string{
			"Strongest winds in solar system (1,200 mph / 2,000 km/h)",
			"Deep blue color from methane in atmosphere",
			"Takes 165 Earth years to complete one orbit",
			"14 known moons including Triton (only large moon with retrograde orbit)",
			"Origin: Ice giant formed 4.5 billion years ago",
			"Named after Roman god of the sea",
			"Discovered in 1846 through mathematical predictions",
			"One day lasts 16 hours",
			"Has 6 known rings made of dark material",
			"Temperature: -353°F (-214°C), but internal heat creates powerful storms",
		},
	},
	{
		Name:        "PLUTO",
		Distance:    39.48,
		Size:        0.8,
		Color:       0xECE5DC,
		Description: "A DWARF PLANET IN THE KUIPER BELT. ONCE CONSIDERED THE NINTH PLANET, RECLASSIFIED IN 2006",
		TextureURL:  "textures/planets/2k_ceres_fictional.jpg",
		Facts: []string{
			"Smaller than Earth's moon (1,473 miles diameter)",
			"Heart-shaped Tombaugh Regio glacier of frozen nitrogen",
			"Thin atmosphere of nitrogen, methane, carbon monoxide that freezes when far from Sun",
			"5 known moons: Charon (half Pluto's size), Styx, Nix, Kerberos, Hydra",
			"Origin: Formed 4.5 billion years ago in Kuiper Belt",
			"Named after Roman god of the underworld",
			"Discovered in 1930 by Clyde Tombaugh",
			"Reclassified as dwarf planet in 2006",
			"Takes 248 Earth years to orbit Sun",
			"Visited by NASA's New Horizons spacecraft in 2015",
		},
	},
}

// Planets returns a copy of the catalog in layout order.
//
// Returns:
//   - []PlanetRecord: every record, Sun first
func Planets() []PlanetRecord {
	out := make([]PlanetRecord, len(planets))
	for i, p := range planets {
		out[i] = p
		out[i].Facts = slices.Clone(p.Facts)
	}
	return out
}

// Len returns the number of records in the catalog.
func Len() int {
	return len(planets)
}

// At returns the record at index i.
//
// Parameters:
//   - i: the catalog index
//
// Returns:
//   - PlanetRecord: a copy of the record
//   - bool: false if i is out of range
func At(i int) (PlanetRecord, bool) {
	if i < 0 || i >= len(planets) {
		return PlanetRecord{}, false
	}
	p := planets[i]
	p.Facts = slices.Clone(p.Facts)
	return p, true
}

// IndexOf returns the index of the record with the given name, or -1.
func IndexOf(name string) int {
	return slices.IndexFunc(planets, func(p PlanetRecord) bool { return p.Name == name })
}

// MaxSize returns the largest Size in records, or 0 for an empty slice.
//
// Parameters:
//   - records: the records to scan
//
// Returns:
//   - float32: the largest relative size
func MaxSize(records []PlanetRecord) float32 {
	var m float32
	for _, r := range records {
		m = max(m, r.Size)
	}
	return m
}
