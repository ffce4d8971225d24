package transition

import "time"

// Tween is a linear animation between progress 0 and 1.
// It implements ports.Animation and only moves when advanced.
type Tween struct {
	duration   time.Duration
	progress   float64
	forward    bool
	running    bool
	disposed   bool
	onEnd      func()
	onProgress func(p float64)
}

// NewTween creates a tween at progress 0 playing forward.
// onProgress, when set, observes every progress change.
func NewTween(duration time.Duration, onProgress func(p float64)) *Tween {
	return &Tween{duration: duration, forward: true, onProgress: onProgress}
}

// Start plays from the current progress in the current direction.
func (t *Tween) Start(onEnd func()) {
	if t.disposed {
		return
	}
	t.onEnd = onEnd
	t.running = true
	if t.duration <= 0 || t.progress == t.target() {
		t.End()
	}
}

// Reverse flips the direction. A running tween keeps running towards the other end.
func (t *Tween) Reverse() {
	t.forward = !t.forward
}

// End jumps to the end of the current direction and, when running, calls onEnd.
func (t *Tween) End() {
	if t.disposed {
		return
	}
	t.set(t.target())
	t.land()
}

// Dispose stops the tween without calling onEnd.
func (t *Tween) Dispose() {
	t.disposed = true
	t.running = false
	t.onEnd = nil
}

// Advance moves a running tween by dt.
func (t *Tween) Advance(dt time.Duration) {
	if !t.running || t.disposed {
		return
	}
	step := float64(dt) / float64(t.duration)
	if !t.forward {
		step = -step
	}
	t.set(min(max(t.progress+step, 0), 1))
	if t.progress == t.target() {
		t.land()
	}
}

// Progress returns the current progress in [0, 1].
func (t *Tween) Progress() float64 {
	return t.progress
}

// Running reports whether the tween is playing.
func (t *Tween) Running() bool {
	return t.running
}

func (t *Tween) target() float64 {
	if t.forward {
		return 1
	}
	return 0
}

func (t *Tween) set(p float64) {
	t.progress = p
	if t.onProgress != nil {
		t.onProgress(p)
	}
}

func (t *Tween) land() {
	if !t.running {
		return
	}
	t.running = false
	if t.onEnd != nil {
		t.onEnd()
	}
}
