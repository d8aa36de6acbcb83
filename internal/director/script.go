package director

// AnimationKind names one of the supported transitions.
type AnimationKind string

const (
	Write     AnimationKind = "write"
	FadeIn    AnimationKind = "fade_in"
	FadeOut   AnimationKind = "fade_out"
	GrowArrow AnimationKind = "grow_arrow"
	Create    AnimationKind = "create"
	Add       AnimationKind = "add"
)

// Script is the ordered, declarative description of a scene's timeline
type Script struct {
	Version string `yaml:"version"`
	Scene   string `yaml:"scene"`
	Steps   []Step `yaml:"steps"`
}

// Step plays its animations together, attaches updaters once they finish,
// then waits. Steps never overlap.
type Step struct {
	Note    string      `yaml:"note,omitempty"`
	Play    []Animation `yaml:"play,omitempty"`
	RunTime float64     `yaml:"run_time,omitempty"` // Overrides every animation's own duration
	Attach  []string    `yaml:"attach,omitempty"`   // Element ids whose updaters start after Play
	Wait    float64     `yaml:"wait,omitempty"`     // Seconds to hold after Play
}

// Animation applies one transition to one or more targets. A target is an
// element id or a group name.
type Animation struct {
	Kind    AnimationKind `yaml:"kind"`
	Targets []string      `yaml:"targets"`
	RunTime float64       `yaml:"run_time,omitempty"`
	Rate    string        `yaml:"rate,omitempty"`
}

func play(kind AnimationKind, targets ...string) Animation {
	return Animation{Kind: kind, Targets: targets}
}
