// ABOUTME: Set-visibility manager for named prop groups
// ABOUTME: Shows and hides registered groups, with show-only exclusivity
package stage

import (
	"fmt"
	"log"
	"sort"
)

// Visible is anything whose visibility can be toggled
type Visible interface {
	SetVisible(visible bool)
}

// Sets manages named groups of props whose visibility is switched
// together. The typical use is ShowOnly, which reveals exactly one
// group and hides every other.
type Sets struct {
	groups map[string][]Visible
	shown  map[string]bool
}

// NewSets creates an empty visibility manager
func NewSets() *Sets {
	return &Sets{
		groups: make(map[string][]Visible),
		shown:  make(map[string]bool),
	}
}

// Register adds props to the named group, creating it if needed.
// Newly registered groups start hidden.
func (s *Sets) Register(name string, props ...Visible) {
	if _, exists := s.groups[name]; !exists {
		s.shown[name] = false
	}
	s.groups[name] = append(s.groups[name], props...)

	for _, p := range props {
		p.SetVisible(s.shown[name])
	}
}

// Show makes every prop in the named group visible
func (s *Sets) Show(name string) error {
	return s.apply(name, true)
}

// Hide makes every prop in the named group invisible
func (s *Sets) Hide(name string) error {
	return s.apply(name, false)
}

// ShowOnly shows the named group and hides all others
func (s *Sets) ShowOnly(name string) error {
	if _, ok := s.groups[name]; !ok {
		return fmt.Errorf("unknown visibility set: %s", name)
	}

	for group := range s.groups {
		if err := s.apply(group, group == name); err != nil {
			return err
		}
	}

	log.Printf("Visibility: showing only %s", name)
	return nil
}

// HideAll hides every registered group
func (s *Sets) HideAll() {
	for group := range s.groups {
		_ = s.apply(group, false)
	}
}

// IsShown reports whether the named group is currently shown
func (s *Sets) IsShown(name string) bool {
	return s.shown[name]
}

// Names returns the registered group names, sorted
func (s *Sets) Names() []string {
	names := make([]string, 0, len(s.groups))
	for name := range s.groups {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s *Sets) apply(name string, visible bool) error {
	props, ok := s.groups[name]
	if !ok {
		return fmt.Errorf("unknown visibility set: %s", name)
	}

	s.shown[name] = visible
	for _, p := range props {
		p.SetVisible(visible)
	}
	return nil
}
