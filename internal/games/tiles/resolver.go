package tiles

// HitWindow is the inclusive vertical band in which a target can be hit.
type HitWindow struct {
	Line   float64 // Hit line: the Y a target's top edge has when it rests on the bottom
	Buffer float64 // Tolerance on either side of Line
}

// Contains reports whether y lies inside the window, edges included.
func (w HitWindow) Contains(y float64) bool {
	return y >= w.Line-w.Buffer && y <= w.Line+w.Buffer
}

// Top returns the upper edge of the window.
func (w HitWindow) Top() float64 {
	return w.Line - w.Buffer
}

// Bottom returns the lower edge of the window.
func (w HitWindow) Bottom() float64 {
	return w.Line + w.Buffer
}

// OutcomeKind says whether a lane press found a target.
type OutcomeKind int

const (
	OutcomeMiss OutcomeKind = iota // Nothing eligible in the lane: a wrong tap
	OutcomeHit
)

// Outcome is the result of resolving one lane press.
type Outcome struct {
	Kind   OutcomeKind
	Target *Target // The resolved target for OutcomeHit, nil otherwise
}

// Resolver matches lane presses against active targets.
type Resolver struct {
	Window HitWindow
}

// NewResolver builds a resolver whose window is centered on the hit line and
// extends windowFraction of the playfield height to each side.
func NewResolver(geom Playfield, windowFraction float64) Resolver {
	return Resolver{
		Window: HitWindow{
			Line:   geom.Height - geom.TargetHeight,
			Buffer: windowFraction * geom.Height,
		},
	}
}

// Resolve consumes at most one target: the oldest one in lane inside the window.
func (r Resolver) Resolve(lane int, active *ActiveSet) Outcome {
	i, ok := r.find(lane, active)
	if !ok {
		return Outcome{Kind: OutcomeMiss}
	}

	t := active.items[i]
	t.Resolved = true
	active.removeAt(i)
	return Outcome{Kind: OutcomeHit, Target: t}
}

// find returns the index of the first eligible target in lane.
func (r Resolver) find(lane int, active *ActiveSet) (int, bool) {
	for i, t := range active.items {
		if t.Lane == lane && !t.Resolved && r.Window.Contains(t.Y) {
			return i, true
		}
	}
	return -1, false
}
