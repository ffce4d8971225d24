// Package transition provides transition handlers for hosts without an animation
// framework: a linear Tween stepped by a frame Driver, a Crossfade handler built on
// it and an Instant handler that lands immediately.
package transition
