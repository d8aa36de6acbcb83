package scene

import (
	"errors"
	"fmt"
	"image/color"
)

var (
	ErrDuplicateID = errors.New("duplicate element id")
	ErrUnknownID   = errors.New("unknown element id")
)

// Scene holds elements in drawing order plus named groups of element ids.
type Scene struct {
	Name       string
	Frame      Box
	Background color.NRGBA

	elements []Element
	byID     map[string]Element
	groups   map[string][]string
}

// New creates an empty scene with a black background.
func New(name string, aspect float64) *Scene {
	return &Scene{
		Name:       name,
		Frame:      FrameBox(aspect),
		Background: MustColor("black"),
		byID:       make(map[string]Element),
		groups:     make(map[string][]string),
	}
}

// Add appends elements in drawing order.
func (s *Scene) Add(elems ...Element) error {
	for _, e := range elems {
		if _, ok := s.byID[e.ID()]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicateID, e.ID())
		}
		if _, ok := s.groups[e.ID()]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicateID, e.ID())
		}
		s.byID[e.ID()] = e
		s.elements = append(s.elements, e)
	}
	return nil
}

// AddGroup names a set of already added elements.
func (s *Scene) AddGroup(name string, ids ...string) error {
	if _, ok := s.byID[name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateID, name)
	}
	if _, ok := s.groups[name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateID, name)
	}
	for _, id := range ids {
		if _, ok := s.byID[id]; !ok {
			return fmt.Errorf("group %s: %w: %s", name, ErrUnknownID, id)
		}
	}
	s.groups[name] = append([]string(nil), ids...)
	return nil
}

// Elements returns every element in drawing order.
func (s *Scene) Elements() []Element {
	return s.elements
}

// Element looks up one element.
func (s *Scene) Element(id string) (Element, bool) {
	e, ok := s.byID[id]
	return e, ok
}

// Resolve expands a target name, either an element id or a group name,
// into element ids.
func (s *Scene) Resolve(target string) ([]string, error) {
	if _, ok := s.byID[target]; ok {
		return []string{target}, nil
	}
	if ids, ok := s.groups[target]; ok {
		return ids, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownID, target)
}

// Count returns how many elements of kind k the scene holds.
func (s *Scene) Count(k Kind) int {
	n := 0
	for _, e := range s.elements {
		if e.Kind() == k {
			n++
		}
	}
	return n
}
