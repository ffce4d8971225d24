package transition

import (
	"time"

	"github.com/aretw0/ribs/pkg/domain"
	"github.com/aretw0/ribs/pkg/ports"
)

// alphaView is implemented by views that support opacity.
type alphaView interface {
	SetAlpha(alpha float64)
}

// Crossfade fades exiting views out, then entering views in.
type Crossfade struct {
	duration time.Duration
	driver   *Driver
}

// NewCrossfade creates a handler whose tweens are advanced by driver.
func NewCrossfade(duration time.Duration, driver *Driver) *Crossfade {
	return &Crossfade{duration: duration, driver: driver}
}

func (c *Crossfade) OnTransition(elements []domain.TransitionElement) ports.TransitionPair {
	var exiting, entering []alphaView
	for _, e := range elements {
		v, ok := e.View.(alphaView)
		if !ok {
			continue
		}
		if e.Direction == domain.Exit {
			exiting = append(exiting, v)
		} else {
			entering = append(entering, v)
		}
	}

	var pair ports.TransitionPair
	if len(exiting) > 0 {
		// Exiting views stay transparent until they are detached.
		t := NewTween(c.duration, func(p float64) {
			for _, v := range exiting {
				v.SetAlpha(1 - p)
			}
		})
		c.driver.Track(t)
		pair.Exiting = t
	}
	if len(entering) > 0 {
		for _, v := range entering {
			v.SetAlpha(0)
		}
		t := NewTween(c.duration, func(p float64) {
			for _, v := range entering {
				v.SetAlpha(p)
			}
		})
		c.driver.Track(t)
		pair.Entering = t
	}
	return pair
}

// Instant is a handler without animations: transitions land as soon as they begin.
var Instant ports.TransitionHandler = ports.TransitionHandlerFunc(func([]domain.TransitionElement) ports.TransitionPair {
	return ports.TransitionPair{}
})
