package scenario_test

import "github.com/aretw0/ribs/pkg/domain"

func interruptions(out *[]string) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnTransitionInterrupted: func(e *domain.TransitionEvent) {
			*out = append(*out, e.Outcome)
		},
	}
}
