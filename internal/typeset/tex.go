package typeset

import "unicode"

const (
	scriptScale = 0.7
	subRise     = -0.22
	supRise     = 0.42
)

// Run is a stretch of text drawn at one size and baseline offset. Scale is
// relative to the element's em size; Rise is in ems of the element, positive
// upwards.
type Run struct {
	Text  string
	Scale float64
	Rise  float64
}

// Factor is the run size relative to the element, defaulting to 1.
func (r Run) Factor() float64 {
	if r.Scale == 0 {
		return 1
	}
	return r.Scale
}

// Plain wraps s in a single run.
func Plain(s string) []Run {
	return []Run{{Text: s, Scale: 1}}
}

// GlyphCount counts the visible glyphs in runs.
func GlyphCount(runs []Run) int {
	n := 0
	for _, r := range runs {
		for _, c := range r.Text {
			if !unicode.IsSpace(c) {
				n++
			}
		}
	}
	return n
}

var symbols = map[string]string{
	"alpha":  "α",
	"beta":   "β",
	"gamma":  "γ",
	"delta":  "δ",
	"Delta":  "Δ",
	"omega":  "ω",
	"Omega":  "Ω",
	"psi":    "ψ",
	"phi":    "φ",
	"pi":     "π",
	"tau":    "τ",
	"hbar":   "ħ",
	"rangle": "⟩",
	"langle": "⟨",
	"cdot":   "·",
	"times":  "×",
	"infty":  "∞",
	"ldots":  "…",
	"pm":     "±",
	",":      " ",
	";":      " ",
	"quad":   "  ",
	" ":      " ",
}

// ParseTeX converts the small subset of TeX math used by the scene labels
// into runs: Greek letters and a few symbols, braces, sub- and superscripts.
// Spaces in the source are ignored and binary operators get spacing, as in
// math mode.
func ParseTeX(src string) []Run {
	p := &texParser{}
	p.parse([]rune(src), 1, 0)
	return p.runs
}

type texParser struct {
	runs []Run
	last rune
}

func (p *texParser) emit(s string, scale, rise float64) {
	if s == "" {
		return
	}
	if n := len(p.runs); n > 0 && p.runs[n-1].Scale == scale && p.runs[n-1].Rise == rise {
		p.runs[n-1].Text += s
	} else {
		p.runs = append(p.runs, Run{Text: s, Scale: scale, Rise: rise})
	}
	rs := []rune(s)
	p.last = rs[len(rs)-1]
}

func (p *texParser) parse(src []rune, scale, rise float64) {
	for i := 0; i < len(src); {
		c := src[i]
		switch {
		case c == '\\':
			name, next := readCommand(src, i)
			i = next
			if sym, ok := symbols[name]; ok {
				p.emit(sym, scale, rise)
			} else {
				p.emit(name, scale, rise)
			}
		case c == '_' || c == '^':
			arg, next := readArg(src, i+1)
			i = next
			delta := subRise
			if c == '^' {
				delta = supRise
			}
			last := p.last
			p.last = 0
			p.parse(arg, scale*scriptScale, rise+delta*scale)
			if p.last == 0 {
				p.last = last
			}
		case c == '{':
			arg, next := readArg(src, i)
			i = next
			p.parse(arg, scale, rise)
		case c == '}' || unicode.IsSpace(c):
			i++
		case c == '=' || c == '+':
			p.emit(" "+string(c)+" ", scale, rise)
			i++
		case c == '-':
			if p.last == 0 || p.last == '(' || p.last == ' ' {
				p.emit("−", scale, rise)
			} else {
				p.emit(" − ", scale, rise)
			}
			i++
		default:
			p.emit(string(c), scale, rise)
			i++
		}
	}
}

// readCommand reads the control word starting at the backslash at i.
func readCommand(src []rune, i int) (string, int) {
	j := i + 1
	for j < len(src) && unicode.IsLetter(src[j]) {
		j++
	}
	if j == i+1 && j < len(src) {
		// control symbol such as \, or \;
		return string(src[j]), j + 1
	}
	return string(src[i+1 : j]), j
}

// readArg reads one TeX argument at i: a braced group or a single token.
func readArg(src []rune, i int) ([]rune, int) {
	for i < len(src) && unicode.IsSpace(src[i]) {
		i++
	}
	if i >= len(src) {
		return nil, i
	}
	switch src[i] {
	case '{':
		depth := 0
		for j := i; j < len(src); j++ {
			switch src[j] {
			case '{':
				depth++
			case '}':
				depth--
				if depth == 0 {
					return src[i+1 : j], j + 1
				}
			}
		}
		return src[i+1:], len(src)
	case '\\':
		_, next := readCommand(src, i)
		return src[i:next], next
	default:
		return src[i : i+1], i + 1
	}
}
