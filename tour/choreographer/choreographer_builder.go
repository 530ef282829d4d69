package choreographer

import (
	"math/rand/v2"

	"github.com/Carmen-Shannon/oxy-tour/engine/loader"
	"github.com/Carmen-Shannon/oxy-tour/tour/catalog"
)

// ChoreographerBuilderOption configures a Choreographer during construction.
type ChoreographerBuilderOption func(*choreographer)

// WithRendererFactory replaces the default wgpu renderer. Tests pass a headless renderer here.
//
// Parameters:
//   - f: the factory (nil is ignored)
//
// Returns:
//   - ChoreographerBuilderOption: option function to apply
func WithRendererFactory(f RendererFactory) ChoreographerBuilderOption {
	return func(c *choreographer) {
		if f != nil {
			c.rendererFactory = f
		}
	}
}

// WithLoader shares an existing texture loader. The choreographer does not close a shared loader.
//
// Parameters:
//   - l: the loader (nil keeps the default, which the choreographer owns)
//
// Returns:
//   - ChoreographerBuilderOption: option function to apply
func WithLoader(l loader.Loader) ChoreographerBuilderOption {
	return func(c *choreographer) {
		c.ldr = l
		c.ownsLoader = false
	}
}

// WithAssetRoot sets the directory texture URLs are resolved against.
//
// Parameters:
//   - dir: the asset directory
//
// Returns:
//   - ChoreographerBuilderOption: option function to apply
func WithAssetRoot(dir string) ChoreographerBuilderOption {
	return func(c *choreographer) {
		c.assetRoot = dir
	}
}

// WithRecords replaces the built-in catalog.
//
// Parameters:
//   - records: the planets in layout order (empty is ignored)
//
// Returns:
//   - ChoreographerBuilderOption: option function to apply
func WithRecords(records []catalog.PlanetRecord) ChoreographerBuilderOption {
	return func(c *choreographer) {
		if len(records) > 0 {
			c.records = append([]catalog.PlanetRecord(nil), records...)
		}
	}
}

// WithRand sets the random source for star and shooting-star placement.
//
// Parameters:
//   - r: the random source (nil is ignored)
//
// Returns:
//   - ChoreographerBuilderOption: option function to apply
func WithRand(r *rand.Rand) ChoreographerBuilderOption {
	return func(c *choreographer) {
		if r != nil {
			c.rng = r
		}
	}
}

// WithStarCount overrides the starfield size.
//
// Parameters:
//   - n: number of stars (values <= 0 are ignored)
//
// Returns:
//   - ChoreographerBuilderOption: option function to apply
func WithStarCount(n int) ChoreographerBuilderOption {
	return func(c *choreographer) {
		if n > 0 {
			c.starCount = n
		}
	}
}

// WithExternalRender skips the render call in the frame tick, for hosts that render the scene
// themselves after the scheduler step.
//
// Parameters:
//   - external: true to leave rendering to the host
//
// Returns:
//   - ChoreographerBuilderOption: option function to apply
func WithExternalRender(external bool) ChoreographerBuilderOption {
	return func(c *choreographer) {
		c.externalRender = external
	}
}
