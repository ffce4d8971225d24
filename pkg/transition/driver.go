package transition

import (
	"slices"
	"time"
)

// Driver advances tracked tweens once per frame.
type Driver struct {
	tweens []*Tween
}

// NewDriver creates a driver without tweens.
func NewDriver() *Driver {
	return &Driver{}
}

// Track adds a tween to advance on each Step.
func (d *Driver) Track(t *Tween) {
	d.tweens = append(d.tweens, t)
}

// Step advances every tween that was running when the frame began by dt; tweens
// started by a callback during the frame wait for the next one. Tweens that landed
// without a callback or were disposed are dropped.
func (d *Driver) Step(dt time.Duration) {
	running := slices.DeleteFunc(slices.Clone(d.tweens), func(t *Tween) bool { return !t.running })
	for _, t := range running {
		t.Advance(dt)
	}
	d.tweens = slices.DeleteFunc(d.tweens, func(t *Tween) bool {
		return t.disposed || (!t.running && t.onEnd == nil)
	})
}

// Active reports how many tracked tweens are running.
func (d *Driver) Active() int {
	n := 0
	for _, t := range d.tweens {
		if t.running {
			n++
		}
	}
	return n
}

// Settle steps in increments of dt until no tween runs or limit steps were taken.
// It returns the number of steps.
func (d *Driver) Settle(dt time.Duration, limit int) int {
	steps := 0
	for d.Active() > 0 && steps < limit {
		d.Step(dt)
		steps++
	}
	return steps
}
