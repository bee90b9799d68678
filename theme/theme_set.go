package theme

import "go.opentelemetry.io/contrib/bridges/otelslog"

// DefaultThemeID is the fallback theme returned when a lookup misses.
const DefaultThemeID = "default"

var logger = otelslog.NewLogger("github.com/ashfall-tactics/tactica/theme")

// Theme is a single fully-resolved, inheritance-expanded theme node.
type Theme struct {
	ID            string
	Kind          Kind
	Layout        string
	LayoutSpacing Border
	Border        Border
	Size          Size
	Position      Point
	Relative      Relative

	Text       *string
	TextParams TextParams
	Background *string
	Foreground *string

	Custom map[string]string

	ParentID string
	Children []string
}

// GetCustomOrDefault returns the custom property named key, or def if it
// is absent.
func (t *Theme) GetCustomOrDefault(key, def string) string {
	if v, ok := t.Custom[key]; ok {
		return v
	}
	return def
}

// Set is the flat, queryable collection of themes produced by
// ThemeBuilderSet.CreateThemeSet.
type Set struct {
	themes map[string]*Theme
}

func newSet(themes map[string]*Theme) *Set {
	return &Set{themes: themes}
}

// DefaultTheme returns the always-present default theme.
func (s *Set) DefaultTheme() *Theme { return s.themes[DefaultThemeID] }

// Contains reports whether id names a theme in the set.
func (s *Set) Contains(id string) bool {
	_, ok := s.themes[id]
	return ok
}

// Get returns the theme named id, falling back to the default theme
// (with a warning) if it is absent.
func (s *Set) Get(id string) *Theme {
	if t, ok := s.themes[id]; ok {
		return t
	}
	logger.Warn("theme not found, using default", "id", id)
	return s.DefaultTheme()
}

// ComputeThemeID resolves a widget's unqualified id against its parent's
// qualified id: if a child of parentID is named id, its qualified id is
// returned directly; otherwise every Container-kind child is searched
// recursively, so a deeply nested container's descendant can still be
// addressed by its bare name from an ancestor. Failing all of that, a
// plain "parentID.id" is synthesized (the child may not exist yet, or
// may be built in code rather than by the theme).
func (s *Set) ComputeThemeID(parentID, id string) string {
	if parent, ok := s.themes[parentID]; ok {
		if qualified, ok := s.computeThemeIDRecursive(parent, id); ok {
			return qualified
		}
	}
	return parentID + "." + id
}

func (s *Set) computeThemeIDRecursive(parent *Theme, id string) (string, bool) {
	for _, childID := range parent.Children {
		if lastSegment(childID) == id {
			return childID, true
		}

		child, ok := s.themes[childID]
		if !ok || child.Kind != KindContainer {
			continue
		}
		if qualified, ok := s.computeThemeIDRecursive(child, id); ok {
			return qualified, true
		}
	}
	return "", false
}
