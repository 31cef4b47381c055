package domain

import "fmt"

// defaultThemes is the allow-list in carousel order.
var defaultThemes = []string{
	"preschool teacher",
	"author",
	"illustrator",
	"cake designer",
	"children’s picture books",
	"student",
	"artist",
	"mother",
	"traveler",
	"foodie",
	"mentor",
	"early childhood educator",
}

// Themes returns a copy of the allow-list in display order.
func Themes() []string {
	out := make([]string, len(defaultThemes))
	copy(out, defaultThemes)
	return out
}

// ThemeSet is an immutable allow-list with exact-match lookup.
type ThemeSet struct {
	ordered []string
	index   map[string]int
}

// NewThemeSet builds a set from themes, dropping empty and duplicate entries
// while keeping the first occurrence's position.
func NewThemeSet(themes []string) *ThemeSet {
	set := &ThemeSet{index: make(map[string]int, len(themes))}
	for _, theme := range themes {
		if theme == "" {
			continue
		}
		if _, ok := set.index[theme]; ok {
			continue
		}
		set.index[theme] = len(set.ordered)
		set.ordered = append(set.ordered, theme)
	}
	return set
}

// DefaultThemeSet returns the built-in allow-list.
func DefaultThemeSet() *ThemeSet {
	return NewThemeSet(defaultThemes)
}

// List returns the themes in order. The returned slice is a copy.
func (s *ThemeSet) List() []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s.ordered))
	copy(out, s.ordered)
	return out
}

// Len reports the number of themes.
func (s *ThemeSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.ordered)
}

// Contains reports whether theme is an exact member of the set.
func (s *ThemeSet) Contains(theme string) bool {
	if s == nil {
		return false
	}
	_, ok := s.index[theme]
	return ok
}

// Validate returns ErrInvalidTheme unless theme is a non-empty member.
func (s *ThemeSet) Validate(theme string) error {
	if theme == "" {
		return fmt.Errorf("%w: theme is required", ErrInvalidTheme)
	}
	if !s.Contains(theme) {
		return fmt.Errorf("%w: %q is not in the allow-list", ErrInvalidTheme, theme)
	}
	return nil
}
