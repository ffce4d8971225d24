package node

// View is an in-memory view with visibility and opacity.
type View struct {
	visible bool
	alpha   float64
}

// NewView creates a visible, opaque view.
func NewView() *View {
	return &View{visible: true, alpha: 1}
}

func (v *View) SetVisible(visible bool) {
	v.visible = visible
}

func (v *View) IsVisible() bool {
	return v.visible
}

// SetAlpha sets the opacity, clamped to [0, 1].
func (v *View) SetAlpha(alpha float64) {
	v.alpha = min(max(alpha, 0), 1)
}

func (v *View) Alpha() float64 {
	return v.alpha
}
