package director

import (
	"image/color"

	"github.com/manasp21/Simulations/internal/scene"
)

// Window is one animation applied to one element over [Start, End).
type Window struct {
	Kind       AnimationKind
	Target     string
	Start, End float64
	Rate       RateFunc
}

// StepSpan records where a script step landed on the clock.
type StepSpan struct {
	Index      int
	Note       string
	Start, End float64
}

// State is how an element looks at one instant.
type State struct {
	Visible  bool
	Opacity  float64 // 0..1
	Progress float64 // 0..1, how much of the element is drawn
}

// Phase of an element's updater.
type Phase int

const (
	Detached Phase = iota
	Running
	Ended
)

func (p Phase) String() string {
	switch p {
	case Running:
		return "running"
	case Ended:
		return "ended"
	default:
		return "detached"
	}
}

// Timeline is a compiled script. It is read-only after Compile and safe for
// concurrent use.
type Timeline struct {
	Duration float64
	Steps    []StepSpan

	scene    *scene.Scene
	windows  map[string][]Window
	attached map[string]float64
	updaters map[string]Updater
}

// Scene returns the scene the timeline was compiled for.
func (tl *Timeline) Scene() *scene.Scene { return tl.scene }

// Windows returns the animation windows of one element, ordered by start.
func (tl *Timeline) Windows(id string) []Window { return tl.windows[id] }

// StateAt evaluates the element's state at scene time t.
func (tl *Timeline) StateAt(id string, t float64) State {
	ws := tl.windows[id]
	var current *Window
	for i := range ws {
		if ws[i].Start <= t {
			current = &ws[i]
		}
	}
	if current == nil {
		return State{}
	}

	alpha := 1.0
	if span := current.End - current.Start; span > 0 {
		alpha = clamp01((t - current.Start) / span)
	}
	r := current.Rate(alpha)

	switch current.Kind {
	case FadeIn:
		return State{Visible: r > 0, Opacity: r, Progress: 1}
	case FadeOut:
		o := lerp(1, 0, r)
		return State{Visible: o > 0, Opacity: o, Progress: 1}
	case Add:
		return State{Visible: true, Opacity: 1, Progress: 1}
	default:
		return State{Visible: true, Opacity: 1, Progress: r}
	}
}

// PhaseAt reports the updater phase of element id at time t: detached
// before it is attached, running until the timeline ends, then ended.
func (tl *Timeline) PhaseAt(id string, t float64) Phase {
	at, ok := tl.attached[id]
	if !ok || t < at {
		return Detached
	}
	if t >= tl.Duration {
		return Ended
	}
	return Running
}

// AttachedAt returns the time the updater of id starts.
func (tl *Timeline) AttachedAt(id string) (float64, bool) {
	at, ok := tl.attached[id]
	return at, ok
}

// PositionAt returns the updater-driven centre of id at time t. ok is false
// when no updater is running.
func (tl *Timeline) PositionAt(id string, t float64) (scene.Vec, bool) {
	if tl.PhaseAt(id, t) != Running {
		return scene.Vec{}, false
	}
	return tl.updaters[id](t - tl.attached[id]), true
}

// Visual pairs an element with its state for one frame. Center, when set,
// overrides the element's own position.
type Visual struct {
	Element scene.Element
	State
	Center *scene.Vec
}

// Frame is everything needed to draw the scene at one instant.
type Frame struct {
	Time       float64
	Background color.NRGBA
	Visuals    []Visual
}

// FrameAt snapshots the scene at time t, in drawing order.
func (tl *Timeline) FrameAt(t float64) Frame {
	f := Frame{Time: t, Background: tl.scene.Background}
	for _, e := range tl.scene.Elements() {
		st := tl.StateAt(e.ID(), t)
		if !st.Visible {
			continue
		}
		v := Visual{Element: e, State: st}
		if p, ok := tl.PositionAt(e.ID(), t); ok {
			v.Center = &p
		}
		f.Visuals = append(f.Visuals, v)
	}
	return f
}
