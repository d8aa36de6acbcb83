// Package director turns a declarative Script into a Timeline: absolute
// animation windows that give the state of every element at any instant.
// Frames are pure functions of time, so they can be produced in any order.
package director

import (
	"fmt"
	"math"
	"sort"

	"github.com/manasp21/Simulations/internal/scene"
)

// Write animations of long texts take longer, one extra second from this
// many glyphs on.
const longWriteGlyphs = 15

// Updater computes an element's centre from the seconds elapsed since it
// was attached. It must be pure.
type Updater func(elapsed float64) scene.Vec

// Director compiles scripts against one scene
type Director struct {
	Scene    *scene.Scene
	Updaters map[string]Updater
}

// NewDirector creates a Director with no updaters registered
func NewDirector(s *scene.Scene) *Director {
	return &Director{
		Scene:    s,
		Updaters: make(map[string]Updater),
	}
}

// Register attaches an updater definition to element id. It only runs once
// a step lists the id under attach.
func (d *Director) Register(id string, u Updater) error {
	if _, ok := d.Scene.Element(id); !ok {
		return fmt.Errorf("%w: %s", ErrUnknownTarget, id)
	}
	d.Updaters[id] = u
	return nil
}

// Compile validates the script and lays its steps end to end.
func (d *Director) Compile(script *Script) (*Timeline, error) {
	if script == nil || len(script.Steps) == 0 {
		return nil, ErrEmptyScript
	}

	tl := &Timeline{
		scene:    d.Scene,
		windows:  make(map[string][]Window),
		attached: make(map[string]float64),
		updaters: make(map[string]Updater),
	}

	clock := 0.0
	for i, step := range script.Steps {
		if step.RunTime < 0 || step.Wait < 0 {
			return nil, fmt.Errorf("step %d: %w", i+1, ErrNegativeDuration)
		}
		tl.Steps = append(tl.Steps, StepSpan{Index: i, Note: step.Note, Start: clock})

		playTime := 0.0
		for _, anim := range step.Play {
			dur, err := d.duration(anim, step.RunTime)
			if err != nil {
				return nil, fmt.Errorf("step %d: %w", i+1, err)
			}
			rate, err := rateFor(anim)
			if err != nil {
				return nil, fmt.Errorf("step %d: %w", i+1, err)
			}
			for _, target := range anim.Targets {
				ids, err := d.Scene.Resolve(target)
				if err != nil {
					return nil, fmt.Errorf("step %d: %w: %s", i+1, ErrUnknownTarget, target)
				}
				for _, id := range ids {
					tl.windows[id] = append(tl.windows[id], Window{
						Kind:   anim.Kind,
						Target: id,
						Start:  clock,
						End:    clock + dur,
						Rate:   rate,
					})
				}
			}
			playTime = math.Max(playTime, dur)
		}

		for _, id := range step.Attach {
			u, ok := d.Updaters[id]
			if !ok {
				return nil, fmt.Errorf("step %d: %w: %s", i+1, ErrUnknownUpdater, id)
			}
			tl.updaters[id] = u
			tl.attached[id] = clock + playTime
		}

		clock += playTime + step.Wait
		tl.Steps[len(tl.Steps)-1].End = clock
	}

	for id := range tl.windows {
		ws := tl.windows[id]
		sort.SliceStable(ws, func(i, j int) bool { return ws[i].Start < ws[j].Start })
	}
	tl.Duration = clock
	return tl, nil
}

// duration resolves how long one animation runs.
func (d *Director) duration(anim Animation, stepRunTime float64) (float64, error) {
	if anim.RunTime < 0 {
		return 0, ErrNegativeDuration
	}
	switch anim.Kind {
	case Add:
		return 0, nil
	case Write, FadeIn, FadeOut, GrowArrow, Create:
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownAnimation, anim.Kind)
	}

	if stepRunTime > 0 {
		return stepRunTime, nil
	}
	if anim.RunTime > 0 {
		return anim.RunTime, nil
	}
	if anim.Kind != Write {
		return 1, nil
	}

	// Write over several targets lasts as long as its longest text
	dur := 1.0
	for _, target := range anim.Targets {
		ids, err := d.Scene.Resolve(target)
		if err != nil {
			return 0, fmt.Errorf("%w: %s", ErrUnknownTarget, target)
		}
		for _, id := range ids {
			e, _ := d.Scene.Element(id)
			if t, ok := e.(*scene.Text); ok && t.Glyphs() >= longWriteGlyphs {
				dur = 2
			}
		}
	}
	return dur, nil
}
