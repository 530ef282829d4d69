package choreographer

import (
	"math"

	"github.com/chewxy/math32"

	"github.com/Carmen-Shannon/oxy-tour/common"
)

const (
	// CameraSmoothing is the per-update low-pass factor for the camera.
	CameraSmoothing = 0.1
	// DepthSmoothing is the per-update low-pass factor for planet depth.
	DepthSmoothing = 0.05
	// DepthReferenceDistance is the camera distance at which a planet gets no depth offset.
	DepthReferenceDistance = 10
	// DepthScale is the depth offset of the largest planet directly in front of the camera.
	DepthScale = 2.5
)

// TargetIndex maps progress to the nearest planet index in [0, n-1].
//
// Parameters:
//   - progress: the scroll fraction
//   - n: the planet count
//
// Returns:
//   - int: the index of the planet to frame, 0 when n <= 0
func TargetIndex(progress float64, n int) int {
	if n <= 0 || math.IsNaN(progress) {
		return 0
	}
	return common.Clamp(int(math.Round(progress*float64(n-1))), 0, n-1)
}

// TravelRange is the camera X travel for a full scroll: one spacing past the last planet so the
// last planet is framed with slack.
func TravelRange(n int) float32 {
	if n <= 0 {
		return 0
	}
	return float32(n-1)*Spacing + Spacing
}

// DepthOffset returns how far a planet bulges toward the viewer.
//
// Parameters:
//   - distance: absolute X distance between the planet and the camera
//   - size: the planet's relative size
//   - maxSize: the largest relative size in the catalog
//
// Returns:
//   - float32: an offset in [0, size/maxSize*DepthScale]
func DepthOffset(distance, size, maxSize float32) float32 {
	if maxSize <= 0 {
		return 0
	}
	nd := min(math32.Abs(distance)/DepthReferenceDistance, 1)
	return (1 - nd) * (size / maxSize) * DepthScale
}

func (c *choreographer) UpdateCameraPosition(progress float64) {
	if math.IsNaN(progress) {
		return
	}
	progress = common.Clamp(progress, 0, 1)

	c.mu.Lock()
	if !c.initialized || c.disposed {
		c.mu.Unlock()
		return
	}

	n := len(c.planets)
	idx := TargetIndex(progress, n)
	var changed func(int)
	if idx != c.currentIndex {
		c.currentIndex = idx
		c.controls.SetTarget(c.planets[idx].Position())
		changed = c.onPlanetChange
	}

	pos := c.cam.Position()
	targetX := float32(progress) * TravelRange(n)
	pos.X = common.Damp(pos.X, targetX, CameraSmoothing)
	pos.Y = common.Damp(pos.Y, 0, CameraSmoothing)
	pos.Z = CameraZ
	c.cam.SetPosition(pos)
	c.cam.LookAt(common.Vec3{X: pos.X})

	for i, p := range c.planets {
		pp := p.Position()
		depth := DepthOffset(pp.X-pos.X, c.records[i].Size, c.maxSize)
		pp.Z = common.Damp(pp.Z, depth, DepthSmoothing)
		p.SetPosition(pp)
	}
	c.mu.Unlock()

	if changed != nil {
		changed(idx)
	}
}
