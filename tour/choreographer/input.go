package choreographer

import "github.com/Carmen-Shannon/oxy-tour/common"

// DragRotationSpeed converts pointer pixels into planet rotation radians.
const DragRotationSpeed = 0.005

func (c *choreographer) OnResize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.initialized || c.disposed {
		return
	}
	c.setViewportLocked(width, height)
	c.cam.SetAspect(c.aspectLocked())
	c.r.Resize(width, height)
}

// OnPointerDown starts a planet drag (primary) or an orbit drag (secondary). Multi-touch is ignored.
func (c *choreographer) OnPointerDown(e PointerEvent) {
	if e.Touches > 1 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.initialized || c.disposed {
		return
	}
	c.lastX, c.lastY = e.X, e.Y
	switch e.Button {
	case PointerPrimary:
		c.dragging = true
		c.controls.SetEnabled(false)
	case PointerSecondary:
		c.orbiting = true
	}
}

// OnPointerMove updates the parallax offset for mouse input and applies any drag in progress.
func (c *choreographer) OnPointerMove(e PointerEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.initialized || c.disposed {
		return
	}
	if e.Touches == 0 && c.viewWidth > 0 && c.viewHeight > 0 {
		c.mouseX = e.X/c.viewWidth*2 - 1
		c.mouseY = -(e.Y/c.viewHeight)*2 + 1
	}
	if e.Touches > 1 || (!c.dragging && !c.orbiting) {
		return
	}

	dx, dy := e.X-c.lastX, e.Y-c.lastY
	c.lastX, c.lastY = e.X, e.Y
	if c.dragging {
		if p := c.planets[c.currentIndex]; p != nil {
			p.Rotate(common.Vec3{X: dy * DragRotationSpeed, Y: dx * DragRotationSpeed})
		}
		return
	}
	c.controls.Rotate(dx, dy, c.viewHeight)
}

func (c *choreographer) OnPointerUp(PointerEvent) {
	c.endDrag()
}

func (c *choreographer) OnPointerLeave() {
	c.endDrag()
}

// endDrag clears any drag and hands the camera back to the orbit control.
func (c *choreographer) endDrag() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.initialized || c.disposed {
		return
	}
	c.dragging = false
	c.orbiting = false
	c.controls.SetEnabled(true)
}
