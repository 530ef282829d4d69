package choreographer

import (
	"fmt"
	"log"

	"github.com/chewxy/math32"

	"github.com/Carmen-Shannon/oxy-tour/common"
	"github.com/Carmen-Shannon/oxy-tour/engine/game_object"
	"github.com/Carmen-Shannon/oxy-tour/engine/light"
	"github.com/Carmen-Shannon/oxy-tour/engine/loader"
	"github.com/Carmen-Shannon/oxy-tour/engine/mesh"
	"github.com/Carmen-Shannon/oxy-tour/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-tour/tour/catalog"
)

// Scene layout and animation constants.
const (
	CameraFov  = 60
	CameraNear = 0.1
	CameraFar  = 1000
	CameraZ    = 4

	// Spacing is the X distance between neighbouring planets.
	Spacing = 8

	SphereSegments = 128
	SpinRate       = 0.001

	StarCount  = 10000
	StarSpread = 200
	// ParallaxFactor scales normalized mouse offset into starfield rotation.
	ParallaxFactor = 0.1

	MoonRadius     = 0.135
	MoonOrbit      = 0.8
	MoonAngleStep  = 0.01
	MoonSpin       = 0.001
	MoonTextureURL = "textures/planets/2k_moon.jpg"

	SaturnRingTextureURL = "textures/planets/2k_saturn_ring_alpha.png"
)

// ringTilt is the X rotation that lays a ring in the XZ plane.
const ringTilt = math32.Pi / 2

// saturnTilt leans Saturn's ring slightly off the orbital plane.
const saturnTilt = math32.Pi / 2.3

// moonActor is the moon and the planet it circles.
type moonActor struct {
	obj    game_object.GameObject
	host   int
	radius float32
	angle  float32
}

// ringActor is a ring that stays centred on a planet.
type ringActor struct {
	obj  game_object.GameObject
	host int
}

// newLights returns the ambient fill, the off-screen sun light, and the sky/ground hemisphere.
func newLights() []light.Light {
	return []light.Light{
		light.NewLight(light.LightTypeAmbient,
			light.WithColor(0x404040),
			light.WithIntensity(1.5),
		),
		light.NewLight(light.LightTypePoint,
			light.WithColor(0xffffff),
			light.WithIntensity(5),
			light.WithRange(150),
			light.WithPosition(common.Vec3{X: -50}),
		),
		light.NewLight(light.LightTypeHemisphere,
			light.WithColor(0xffffff),
			light.WithGroundColor(0x444444),
			light.WithIntensity(1),
		),
	}
}

func (c *choreographer) createMeshLocked(label string, g mesh.Geometry) (common.MeshID, error) {
	id, err := c.r.CreateMesh(label, g)
	if err != nil {
		return 0, fmt.Errorf("mesh %s: %w", label, err)
	}
	c.meshes = append(c.meshes, id)
	return id, nil
}

// buildActorsLocked creates the starfield, one actor per record, the moon and every ring.
// Meshes are built once at unit size and shared through per-object scale.
func (c *choreographer) buildActorsLocked() error {
	if err := c.buildStarfieldLocked(); err != nil {
		return err
	}

	sphere, err := c.createMeshLocked("sphere", mesh.Sphere(1, SphereSegments, SphereSegments))
	if err != nil {
		return err
	}
	decorRing, err := c.createMeshLocked("decor-ring", mesh.Ring(0.6, 0.65, 64))
	if err != nil {
		return err
	}

	c.planets = make([]game_object.GameObject, len(c.records))
	c.rings = c.rings[:0]
	for i, rec := range c.records {
		pos := common.Vec3{X: float32(i) * Spacing}
		planet := game_object.NewGameObject(
			game_object.WithMesh(sphere, 1),
			game_object.WithMaterial(planetMaterial(rec)),
			game_object.WithPosition(pos),
			game_object.WithUniformScale(rec.Size*0.5),
			game_object.WithRotationSpeed(common.Vec3{Y: SpinRate * (1 + float32(i)*0.1)}),
		)
		c.planets[i] = planet
		c.sc.Add(planet)

		switch rec.Name {
		case "EARTH":
			if err := c.buildMoonLocked(i, sphere, pos); err != nil {
				return err
			}
		case "SATURN":
			if err := c.buildSaturnRingLocked(i, rec, pos); err != nil {
				return err
			}
		}

		if i > 0 {
			ring := game_object.NewGameObject(
				game_object.WithMesh(decorRing, 0.65),
				game_object.WithMaterial(material.NewMaterial(
					material.WithName(rec.Name+"-ring"),
					material.WithColor(rec.Color),
					material.WithOpacity(0.2),
					material.WithTransparent(),
					material.WithUnlit(),
				)),
				game_object.WithPosition(pos),
				game_object.WithRotation(common.Vec3{X: ringTilt}),
				game_object.WithUniformScale(rec.Size),
			)
			c.rings = append(c.rings, ringActor{obj: ring, host: i})
			c.sc.Add(ring)
		}
	}
	return nil
}

// planetMaterial is unlit for the Sun and lit with a faint tint of the record color otherwise.
func planetMaterial(rec catalog.PlanetRecord) material.Material {
	if rec.Name == "SUN" {
		return material.NewMaterial(
			material.WithName(rec.Name),
			material.WithColor(rec.Color),
			material.WithUnlit(),
		)
	}
	return material.NewMaterial(
		material.WithName(rec.Name),
		material.WithColor(rec.Color),
		material.WithRoughness(0.6),
		material.WithMetallic(0.2),
		material.WithEmissive(rec.Color, 0.05),
	)
}

func (c *choreographer) buildStarfieldLocked() error {
	positions := make([]common.Vec3, c.starCount)
	for i := range positions {
		positions[i] = common.Vec3{
			X: (c.rng.Float32() - 0.5) * StarSpread,
			Y: (c.rng.Float32() - 0.5) * StarSpread,
			Z: (c.rng.Float32() - 0.5) * StarSpread,
		}
	}
	id, err := c.createMeshLocked("starfield", mesh.Points(positions))
	if err != nil {
		return err
	}
	// Radius 0 keeps the starfield out of frustum culling; the camera always sits inside it.
	c.stars = game_object.NewGameObject(
		game_object.WithMesh(id, 0),
		game_object.WithMaterial(material.NewMaterial(
			material.WithName("stars"),
			material.WithColor(0xffffff),
			material.WithOpacity(0.8),
			material.WithPoints(),
			material.WithUnlit(),
		)),
	)
	c.sc.Add(c.stars)
	return nil
}

func (c *choreographer) buildMoonLocked(host int, sphere common.MeshID, hostPos common.Vec3) error {
	obj := game_object.NewGameObject(
		game_object.WithMesh(sphere, 1),
		game_object.WithMaterial(material.NewMaterial(
			material.WithName("MOON"),
			material.WithColor(0xc0c0c0),
			material.WithRoughness(0.9),
			material.WithMetallic(0.1),
		)),
		game_object.WithPosition(hostPos.Add(common.Vec3{X: MoonOrbit})),
		game_object.WithUniformScale(MoonRadius),
		game_object.WithRotationSpeed(common.Vec3{Y: MoonSpin}),
	)
	c.moon = &moonActor{obj: obj, host: host, radius: MoonOrbit}
	c.sc.Add(obj)

	orbitMesh, err := c.createMeshLocked("moon-orbit", mesh.Ring(MoonOrbit-0.02, MoonOrbit+0.02, 128))
	if err != nil {
		return err
	}
	orbit := game_object.NewGameObject(
		game_object.WithMesh(orbitMesh, MoonOrbit+0.02),
		game_object.WithMaterial(material.NewMaterial(
			material.WithName("moon-orbit"),
			material.WithColor(0xc0c0c0),
			material.WithOpacity(0.15),
			material.WithTransparent(),
			material.WithUnlit(),
		)),
		game_object.WithPosition(hostPos),
		game_object.WithRotation(common.Vec3{X: ringTilt}),
	)
	c.rings = append(c.rings, ringActor{obj: orbit, host: host})
	c.sc.Add(orbit)
	return nil
}

func (c *choreographer) buildSaturnRingLocked(host int, rec catalog.PlanetRecord, hostPos common.Vec3) error {
	id, err := c.createMeshLocked("saturn-ring", mesh.Ring(0.65, 1.2, 128))
	if err != nil {
		return err
	}
	ring := game_object.NewGameObject(
		game_object.WithMesh(id, 1.2),
		game_object.WithMaterial(material.NewMaterial(
			material.WithName("SATURN-rings"),
			material.WithColor(rec.Color),
			material.WithOpacity(0.95),
			material.WithTransparent(),
			material.WithRoughness(0.8),
			material.WithMetallic(0.1),
		)),
		game_object.WithPosition(hostPos),
		game_object.WithRotation(common.Vec3{X: saturnTilt}),
		game_object.WithUniformScale(rec.Size),
	)
	c.rings = append(c.rings, ringActor{obj: ring, host: host})
	c.sc.Add(ring)
	return nil
}

// loadTexturesLocked requests every surface texture. Completions arrive on the stepping
// goroutine; a failure leaves the object on its base color.
func (c *choreographer) loadTexturesLocked() {
	for i, rec := range c.records {
		c.requestTextureLocked(rec.Name, rec.TextureURL, c.planets[i].Material())
	}
	if c.moon != nil {
		c.requestTextureLocked("MOON", MoonTextureURL, c.moon.obj.Material())
	}
	for _, ring := range c.rings {
		if ring.obj.Material().Name() == "SATURN-rings" {
			c.requestTextureLocked("SATURN-rings", SaturnRingTextureURL, ring.obj.Material())
		}
	}
}

func (c *choreographer) requestTextureLocked(label, url string, mat material.Material) {
	path := c.texturePath(url)
	c.ldr.LoadTextureAsync(path, func(res loader.TextureResult) {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.disposed || c.r == nil {
			return
		}
		if res.Err != nil {
			log.Printf("[choreographer] texture for %s unavailable, keeping base color: %v", label, res.Err)
			return
		}
		id, err := c.r.CreateTexture(label, res.Data)
		if err != nil {
			log.Printf("[choreographer] upload texture for %s: %v", label, err)
			return
		}
		c.textures = append(c.textures, id)
		mat.SetTexture(id)
	})
}

func (c *choreographer) spinPlanetsLocked() {
	for _, p := range c.planets {
		p.Spin()
	}
}

func (c *choreographer) advanceMoonLocked() {
	if c.moon == nil {
		return
	}
	host := c.planets[c.moon.host].Position()
	c.moon.angle += MoonAngleStep
	c.moon.obj.SetPosition(common.Vec3{
		X: host.X + math32.Cos(c.moon.angle)*c.moon.radius,
		Y: host.Y,
		Z: host.Z + math32.Sin(c.moon.angle)*c.moon.radius,
	})
	c.moon.obj.Spin()
}

func (c *choreographer) followRingsLocked() {
	for _, ring := range c.rings {
		ring.obj.SetPosition(c.planets[ring.host].Position())
	}
}

func (c *choreographer) applyParallaxLocked() {
	if c.stars == nil {
		return
	}
	c.stars.SetRotation(common.Vec3{X: c.mouseY * ParallaxFactor, Y: c.mouseX * ParallaxFactor})
}
