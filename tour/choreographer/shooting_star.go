package choreographer

import (
	"fmt"
	"log"
	"time"

	"github.com/chewxy/math32"

	"github.com/Carmen-Shannon/oxy-tour/common"
	"github.com/Carmen-Shannon/oxy-tour/engine/game_object"
	"github.com/Carmen-Shannon/oxy-tour/engine/mesh"
	"github.com/Carmen-Shannon/oxy-tour/engine/renderer/material"
)

const (
	// ShootingStarPeriod is the spawn interval.
	ShootingStarPeriod = 15 * time.Second
	// ShootingStarLife is the lifetime in seconds of nominal 60 fps frames.
	ShootingStarLife = 3
	// ShootingStarLifeStep is the life added per frame.
	ShootingStarLifeStep = 0.016
	// ShootingStarSpeed is the distance travelled per frame.
	ShootingStarSpeed = 0.8
)

// ShootingStar is a transient streak that moves in a straight line and fades out. It is removed
// and its mesh released once Life reaches MaxLife.
type ShootingStar struct {
	Object    game_object.GameObject
	Direction common.Vec3
	Speed     float32
	Life      float32
	MaxLife   float32

	mesh common.MeshID
}

// Opacity is 1 at spawn and falls linearly to 0 at MaxLife.
func (s *ShootingStar) Opacity() float32 {
	if s.MaxLife <= 0 {
		return 0
	}
	return common.Clamp(1-s.Life/s.MaxLife, 0, 1)
}

// Expired reports whether the star has reached the end of its life.
func (s *ShootingStar) Expired() bool {
	return s.Life >= s.MaxLife
}

// Advance moves the star one frame and updates its opacity.
//
// Returns:
//   - bool: true once the star has expired
func (s *ShootingStar) Advance() bool {
	s.Object.SetPosition(s.Object.Position().Add(s.Direction.Scale(s.Speed)))
	s.Life += ShootingStarLifeStep
	s.Object.Material().SetOpacity(s.Opacity())
	return s.Expired()
}

// alignY returns the Euler rotation that turns local +Y onto d (unit length).
func alignY(d common.Vec3) common.Vec3 {
	return common.Vec3{
		X: math32.Acos(common.Clamp(d.Y, -1, 1)),
		Y: math32.Atan2(d.X, d.Z),
	}
}

func (c *choreographer) SpawnShootingStar() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.initialized || c.disposed {
		return
	}
	if err := c.spawnLocked(); err != nil {
		log.Printf("[choreographer] shooting star: %v", err)
	}
}

func (c *choreographer) spawnLocked() error {
	start := common.Vec3{
		X: (c.rng.Float32() - 0.5) * StarSpread,
		Y: (c.rng.Float32()-0.5)*StarSpread/2 + 50,
		Z: (c.rng.Float32() - 0.5) * StarSpread,
	}
	dir := common.Vec3{
		X: c.rng.Float32() - 0.5,
		Y: -(c.rng.Float32()*0.5 + 0.5),
		Z: c.rng.Float32() - 0.5,
	}.Normalize()

	c.cylinderSeq++
	id, err := c.r.CreateMesh(fmt.Sprintf("shooting-star-%d", c.cylinderSeq), mesh.Cylinder(0.02, 0.02, 2, 8))
	if err != nil {
		return err
	}
	obj := game_object.NewGameObject(
		game_object.WithMesh(id, 1),
		game_object.WithMaterial(material.NewMaterial(
			material.WithName("shooting-star"),
			material.WithColor(0xffffff),
			material.WithOpacity(1),
			material.WithTransparent(),
			material.WithUnlit(),
		)),
		game_object.WithPosition(start),
		game_object.WithRotation(alignY(dir)),
	)
	c.sc.Add(obj)
	c.shooting = append(c.shooting, &ShootingStar{
		Object:    obj,
		Direction: dir,
		Speed:     ShootingStarSpeed,
		MaxLife:   ShootingStarLife,
		mesh:      id,
	})
	return nil
}

// advanceShootingStarsLocked moves every star and drops the expired ones.
func (c *choreographer) advanceShootingStarsLocked() {
	live := c.shooting[:0]
	for _, s := range c.shooting {
		if s.Advance() {
			c.sc.Remove(s.Object.ID())
			c.r.ReleaseMesh(s.mesh)
			continue
		}
		live = append(live, s)
	}
	clear(c.shooting[len(live):])
	c.shooting = live
}
