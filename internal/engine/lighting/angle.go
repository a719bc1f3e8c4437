package lighting

import "github.com/chewxy/math32"

// AngleControl is the light-angle slider: a value in degrees kept in
// [0, 360) that keyboard and wheel input nudge by Step.
type AngleControl struct {
	degrees float32
	Step    float32
}

// NewAngleControl creates a control at the given angle.
func NewAngleControl(degrees, step float32) *AngleControl {
	if step <= 0 {
		step = 5
	}
	c := &AngleControl{Step: step}
	c.Set(degrees)
	return c
}

// Degrees returns the current angle.
func (c *AngleControl) Degrees() float32 {
	return c.degrees
}

// Set moves the slider to degrees, wrapping into [0, 360). It returns true
// when the value changed.
func (c *AngleControl) Set(degrees float32) bool {
	if math32.IsNaN(degrees) || math32.IsInf(degrees, 0) {
		return false
	}
	w := math32.Mod(degrees, 360)
	if w < 0 {
		w += 360
	}
	if w >= 360 {
		w = 0
	}
	if w == c.degrees {
		return false
	}
	c.degrees = w
	return true
}

// Nudge moves the slider by n steps (negative n moves backwards).
func (c *AngleControl) Nudge(n int) bool {
	return c.Set(c.degrees + float32(n)*c.Step)
}
