package director

import (
	"fmt"

	"github.com/manasp21/Simulations/internal/intensity"
	"github.com/manasp21/Simulations/internal/scene"
	"github.com/manasp21/Simulations/internal/typeset"
)

// SceneName identifies the quantum beats scene in scripts.
const SceneName = "QuantumBeats"

// Marker is the id of the dot that rides the intensity curve.
const Marker = "dot"

// curveSamples is the number of segments used to plot I(t).
const curveSamples = 240

// QuantumBeats builds the isotropic quantum beats scene for the given frame
// aspect ratio and returns a director with the marker updater registered.
func QuantumBeats(fonts *typeset.Fonts, aspect float64) (*Director, error) {
	s := scene.New(SceneName, aspect)
	frame := s.Frame

	white := scene.MustColor("white")
	blue := scene.MustColor("blue")
	red := scene.MustColor("red")
	yellow := scene.MustColor("yellow")
	green := scene.MustColor("green")
	purple := scene.MustColor("purple")

	title := scene.NewText(fonts, "title", "Isotropic Quantum Beats", 48, white)
	scene.ToEdge(title, frame, scene.Up, scene.EdgeBuff)

	// Energy levels: ground |g>, excited |e1> and |e2>
	levelG := scene.NewLine("level_g", scene.Vec{X: -4, Y: -3}, scene.Vec{X: 4, Y: -3}, blue)
	levelE1 := scene.NewLine("level_e1", scene.Vec{X: -2, Y: 1}, scene.Vec{X: 2, Y: 1}, red)
	levelE2 := scene.NewLine("level_e2", scene.Vec{X: -2, Y: 1.5}, scene.Vec{X: 2, Y: 1.5}, red)
	labelG := scene.NewText(fonts, "label_g", "|g⟩", 24, white)
	labelE1 := scene.NewText(fonts, "label_e1", "|e₁⟩", 24, white)
	labelE2 := scene.NewText(fonts, "label_e2", "|e₂⟩", 24, white)
	scene.NextTo(labelG, levelG.Bounds(), scene.Left, scene.DefaultBuff)
	scene.NextTo(labelE1, levelE1.Bounds(), scene.Left, scene.DefaultBuff)
	scene.NextTo(labelE2, levelE2.Bounds(), scene.Left, scene.DefaultBuff)

	deltaE := scene.NewMath(fonts, "delta_e", `\Delta E = \hbar \omega`, white)
	scene.NextTo(deltaE, levelE1.Bounds(), scene.Right, 0.5)
	deltaE.Shift(scene.Up.Mul(0.25))

	levels := scene.Group{levelG, levelE1, levelE2, labelG, labelE1, labelE2, deltaE}

	// Pump pulse from the ground state into the excited superposition
	pump := scene.NewArrow("pump_arrow", scene.Vec{X: 0, Y: -3}, scene.Vec{X: 0, Y: 1.25}, yellow)
	pumpLabel := scene.NewText(fonts, "pump_label", "Pump Pulse (broadband)", 24, yellow)
	scene.NextTo(pumpLabel, pump.Bounds(), scene.Right, scene.DefaultBuff)

	superpos := scene.NewMath(fonts, "superpos", `|\psi(0)\rangle = \alpha |e_1\rangle + \beta |e_2\rangle`, white)
	scene.NextTo(superpos, levels.Bounds(), scene.Down, 1)

	timeLabel := scene.NewText(fonts, "time_label", "Time evolution:", 24, white)
	scene.NextTo(timeLabel, superpos.Bounds(), scene.Down, 0.5)

	evol := scene.NewMath(fonts, "evol",
		`|\psi(t)\rangle = \alpha |e_1\rangle e^{-i E_1 t / \hbar - \gamma t / 2} + \beta |e_2\rangle e^{-i E_2 t / \hbar - \gamma t / 2}`,
		white)
	evol.Scale(0.7)
	scene.NextTo(evol, timeLabel.Bounds(), scene.Down, scene.DefaultBuff)

	// Intensity plot
	axes := scene.NewAxes("axes",
		scene.Range{Min: 0, Max: 10, Step: 1},
		scene.Range{Min: 0, Max: 1.5, Step: 0.5},
		frame, green)
	axes.Shift(scene.Down.Mul(2).Add(scene.Right.Mul(3)))
	graph := axes.Plot("graph", intensity.Raw, purple, curveSamples)
	graphLabel := scene.NewText(fonts, "graph_label", "Fluorescence Intensity I(t)", 24, purple)
	scene.NextTo(graphLabel, axes.Bounds(), scene.Up, scene.DefaultBuff)
	isoNote := scene.NewText(fonts, "iso_note", "(Isotropic: observable in total signal)", 20, white)
	scene.NextTo(isoNote, graphLabel.Bounds(), scene.Down, scene.DefaultBuff)

	// Probe pulse
	probe := scene.NewArrow("probe_arrow", scene.Vec{X: 1, Y: -3}, scene.Vec{X: 1, Y: 1.25}, green)
	probe.Shift(scene.Left.Mul(4))
	probeLabel := scene.NewText(fonts, "probe_label", "Probe Pulse", 24, green)
	scene.NextTo(probeLabel, probe.Bounds(), scene.Left, scene.DefaultBuff)

	beatNote := scene.NewText(fonts, "beat_note", "Oscillations due to interference, independent of direction", 20, white)
	scene.ToEdge(beatNote, frame, scene.Down, scene.EdgeBuff)

	dot := scene.NewDot(Marker, axes.C2P(0, intensity.At(0)), white)

	err := s.Add(
		title,
		levelG, levelE1, levelE2, labelG, labelE1, labelE2, deltaE,
		pump, pumpLabel,
		superpos, timeLabel, evol,
		axes, graph, graphLabel, isoNote,
		probe, probeLabel,
		beatNote,
		dot,
	)
	if err != nil {
		return nil, err
	}
	if err := s.AddGroup("levels", "level_g", "level_e1", "level_e2", "label_g", "label_e1", "label_e2", "delta_e"); err != nil {
		return nil, err
	}

	d := NewDirector(s)
	if err := d.Register(Marker, MarkerUpdater(axes)); err != nil {
		return nil, fmt.Errorf("register marker: %w", err)
	}
	return d, nil
}

// MarkerUpdater moves a point along I(t) on the given axes, looping every
// intensity.Period seconds.
func MarkerUpdater(axes *scene.Axes) Updater {
	return func(elapsed float64) scene.Vec {
		t := intensity.Wrap(elapsed)
		return axes.C2P(t, intensity.Raw(t))
	}
}

// FinalFadeOut lists every target removed at the end of the scene.
var FinalFadeOut = []string{
	"title", "levels", "pump_arrow", "pump_label", "superpos", "time_label", "evol",
	"axes", "graph", "graph_label", "iso_note", "probe_arrow", "probe_label", "beat_note", Marker,
}

// DefaultScript is the fixed timeline of the quantum beats scene.
func DefaultScript() *Script {
	return &Script{
		Version: "1.0",
		Scene:   SceneName,
		Steps: []Step{
			{Note: "title", Play: []Animation{play(Write, "title")}},
			{Note: "energy levels", Play: []Animation{play(FadeIn, "levels")}},
			{Note: "pump pulse", Play: []Animation{play(GrowArrow, "pump_arrow"), play(Write, "pump_label")}},
			{Note: "initial superposition", Play: []Animation{play(Write, "superpos")}},
			{Note: "time evolution label", Play: []Animation{play(Write, "time_label")}},
			{Note: "time evolution", Play: []Animation{play(Write, "evol")}},
			{Note: "pause", Wait: 1},
			{Note: "intensity plot", Play: []Animation{
				play(Create, "axes"), play(Create, "graph"),
				play(Write, "graph_label"), play(Write, "iso_note"),
			}},
			{Note: "probe pulse", Play: []Animation{play(GrowArrow, "probe_arrow"), play(Write, "probe_label")}},
			{Note: "beat note", Play: []Animation{play(Write, "beat_note")}},
			{Note: "oscillation", Play: []Animation{play(Add, Marker)}, Attach: []string{Marker}, Wait: intensity.Period},
			{Note: "fade out", Play: []Animation{play(FadeOut, FinalFadeOut...)}},
		},
	}
}
