package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransitionDescriptor_Matching(t *testing.T) {
	a := []Configuration{Config("A")}
	b := []Configuration{Config("B")}
	c := []Configuration{Config("C")}

	ab := Describe(a, b)
	ba := Describe(b, a)
	bc := Describe(b, c)

	assert.True(t, ba.IsReverseOf(ab))
	assert.True(t, ba.IsContinuationOf(ab), "a reverse also starts where the other ends")
	assert.True(t, bc.IsContinuationOf(ab))
	assert.False(t, bc.IsReverseOf(ab))
	assert.False(t, ab.IsContinuationOf(ab))
	assert.True(t, ab.Reverse().Equal(ba))

	assert.False(t, NoTransition.IsReverseOf(NoTransition))
	assert.False(t, NoTransition.IsContinuationOf(ab))
	assert.True(t, NoTransition.Equal(NoTransition))
	assert.False(t, NoTransition.Equal(Describe(nil, nil)))
	assert.Equal(t, "none", NoTransition.String())
}

func TestConfiguration_EqualAndString(t *testing.T) {
	x := Config("Profile", "id", "7", "tab", "posts")
	y := Configuration{Name: "Profile", Params: map[string]string{"tab": "posts", "id": "7"}}

	assert.True(t, x.Equal(y))
	assert.Equal(t, "Profile{id=7,tab=posts}", x.String())
	assert.True(t, Config("A").Equal(Configuration{Name: "A", Params: map[string]string{}}))
	assert.False(t, Config("A").Equal(Config("A", "k", "v")))
}

func TestTransitionPhase_IsTerminal(t *testing.T) {
	for _, p := range []TransitionPhase{PhaseCreated, PhaseExit, PhaseEnter} {
		assert.False(t, p.IsTerminal(), p.String())
	}
	for _, p := range []TransitionPhase{PhaseFinished, PhaseReversed, PhaseJumpedToEnd, PhaseDisposed} {
		assert.True(t, p.IsTerminal(), p.String())
	}
}
