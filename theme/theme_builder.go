// Package theme resolves nested YAML theme trees (as loaded by resource.Set)
// into a flat, inheritance-expanded lookup table the renderer queries by
// qualified id.
package theme

import "fmt"

// maxFromDepth bounds recursive `from` expansion so a circular reference
// fails fast instead of recursing forever.
const maxFromDepth = 10

// Kind is the structural role of a themed widget.
type Kind int

const (
	// KindRef is a reference to a widget built in code; the theme only
	// supplies its layout.
	KindRef Kind = iota
	// KindLabel is a widget that shows static text, defined purely by
	// the theme.
	KindLabel
	// KindContainer holds other widgets, defined purely by the theme.
	KindContainer
)

type HorizontalAlignment int

const (
	AlignLeft HorizontalAlignment = iota
	AlignCenter
	AlignRight
)

type VerticalAlignment int

const (
	AlignTop VerticalAlignment = iota
	AlignVCenter
	AlignBottom
)

type SizeRelative int

const (
	SizeZero SizeRelative = iota
	SizeMax
	SizeChildMax
	SizeChildSum
	SizeCustom
)

type PositionRelative int

const (
	PositionZero PositionRelative = iota
	PositionCenter
	PositionMax
	PositionCustom
	PositionMouse
)

// Color is a plain RGBA color in the 0..1 range, matching the theme file
// format's "#rrggbbaa" strings once decoded.
type Color struct {
	R, G, B, A float32
}

// Border is a four-sided spacing or margin value.
type Border struct {
	Top, Bottom, Left, Right int
}

// Size is a widget's width and height in grid cells.
type Size struct {
	Width, Height int
}

// Point is a widget's x, y position in grid cells.
type Point struct {
	X, Y int
}

// Relative describes a widget's position and size in terms of its parent,
// rather than as absolute values.
type Relative struct {
	X, Y          PositionRelative
	Width, Height SizeRelative
}

// TextParams control how a themed label's text is drawn.
type TextParams struct {
	HorizontalAlignment HorizontalAlignment
	VerticalAlignment   VerticalAlignment
	Color               Color
	Scale               float32
	Font                string
}

// RelativeBuilder holds the subset of Relative a single theme file
// actually sets; unset fields are nil and fall back to an ancestor's
// value (or the zero value) during merge.
type RelativeBuilder struct {
	X      *PositionRelative `yaml:"x,omitempty"`
	Y      *PositionRelative `yaml:"y,omitempty"`
	Width  *SizeRelative     `yaml:"width,omitempty"`
	Height *SizeRelative     `yaml:"height,omitempty"`
}

func (b *RelativeBuilder) or(other *RelativeBuilder) *RelativeBuilder {
	if other == nil {
		return b
	}
	if b == nil {
		return other
	}
	out := *b
	if out.X == nil {
		out.X = other.X
	}
	if out.Y == nil {
		out.Y = other.Y
	}
	if out.Width == nil {
		out.Width = other.Width
	}
	if out.Height == nil {
		out.Height = other.Height
	}
	return &out
}

func (b *RelativeBuilder) resolve() Relative {
	r := Relative{}
	if b == nil {
		return r
	}
	if b.X != nil {
		r.X = *b.X
	}
	if b.Y != nil {
		r.Y = *b.Y
	}
	if b.Width != nil {
		r.Width = *b.Width
	}
	if b.Height != nil {
		r.Height = *b.Height
	}
	return r
}

// TextParamsBuilder mirrors RelativeBuilder for TextParams.
type TextParamsBuilder struct {
	HorizontalAlignment *HorizontalAlignment `yaml:"horizontal_alignment,omitempty"`
	VerticalAlignment   *VerticalAlignment   `yaml:"vertical_alignment,omitempty"`
	Color               *Color               `yaml:"color,omitempty"`
	Scale               *float32             `yaml:"scale,omitempty"`
	Font                *string              `yaml:"font,omitempty"`
}

func (b *TextParamsBuilder) or(other *TextParamsBuilder) *TextParamsBuilder {
	if other == nil {
		return b
	}
	if b == nil {
		return other
	}
	out := *b
	if out.HorizontalAlignment == nil {
		out.HorizontalAlignment = other.HorizontalAlignment
	}
	if out.VerticalAlignment == nil {
		out.VerticalAlignment = other.VerticalAlignment
	}
	if out.Color == nil {
		out.Color = other.Color
	}
	if out.Scale == nil {
		out.Scale = other.Scale
	}
	if out.Font == nil {
		out.Font = other.Font
	}
	return &out
}

func (b *TextParamsBuilder) resolve() TextParams {
	t := TextParams{
		HorizontalAlignment: AlignLeft,
		VerticalAlignment:   AlignVCenter,
		Scale:               1.0,
		Font:                "normal",
	}
	if b == nil {
		return t
	}
	if b.HorizontalAlignment != nil {
		t.HorizontalAlignment = *b.HorizontalAlignment
	}
	if b.VerticalAlignment != nil {
		t.VerticalAlignment = *b.VerticalAlignment
	}
	if b.Color != nil {
		t.Color = *b.Color
	}
	if b.Scale != nil {
		t.Scale = *b.Scale
	}
	if b.Font != nil {
		t.Font = *b.Font
	}
	return t
}

// ThemeBuilder is the as-loaded, pre-inheritance-expansion form of a
// single theme node: every field is optional except the structural tree
// fields (Children, ChildrenIDs), since a node may rely entirely on a
// `from` reference or an ancestor's defaults for everything else.
type ThemeBuilder struct {
	From          *string            `yaml:"from,omitempty"`
	Kind          *Kind              `yaml:"kind,omitempty"`
	Layout        *string            `yaml:"layout,omitempty"`
	LayoutSpacing *Border            `yaml:"layout_spacing,omitempty"`
	Border        *Border            `yaml:"border,omitempty"`
	Size          *Size              `yaml:"size,omitempty"`
	Position      *Point             `yaml:"position,omitempty"`
	Relative      *RelativeBuilder   `yaml:"relative,omitempty"`
	Text          *string            `yaml:"text,omitempty"`
	TextParams    *TextParamsBuilder `yaml:"text_params,omitempty"`
	Background    *string            `yaml:"background,omitempty"`
	Foreground    *string            `yaml:"foreground,omitempty"`
	Custom        map[string]string  `yaml:"custom,omitempty"`

	Children    map[string]*ThemeBuilder `yaml:"children,omitempty"`
	ChildrenIDs []string                 `yaml:"-"`
	ParentID    *string                  `yaml:"-"`
}

// ThemeBuilderSet is a single loaded theme file: a root id (usually the
// file's directory path) plus every theme node reachable under it,
// addressed by its as-loaded (unqualified) id before flattening.
type ThemeBuilderSet struct {
	ID     string
	Themes map[string]*ThemeBuilder
}

// CreateThemeSet flattens the nested children trees into qualified,
// dotted ids and expands every `from` reference, producing the flat
// lookup table the renderer uses at runtime.
func (s *ThemeBuilderSet) CreateThemeSet() (*Set, error) {
	if err := s.flattenChildren(); err != nil {
		return nil, err
	}
	if err := s.expandFrom(); err != nil {
		return nil, err
	}

	themes := make(map[string]*Theme, len(s.Themes))
	for id, b := range s.Themes {
		themes[id] = b.build(id)
	}
	themes[DefaultThemeID] = &Theme{ID: DefaultThemeID, TextParams: (*TextParamsBuilder)(nil).resolve()}

	return newSet(themes), nil
}

func (s *ThemeBuilderSet) flattenChildren() error {
	for id := range s.Themes {
		if err := s.flattenChildrenRecursive(id); err != nil {
			return err
		}
	}
	return nil
}

func (s *ThemeBuilderSet) flattenChildrenRecursive(id string) error {
	parent, ok := s.Themes[id]
	if !ok {
		return nil
	}

	for childID, child := range parent.Children {
		newID := id + "." + childID
		if _, exists := s.Themes[newID]; exists {
			return fmt.Errorf("theme: computed id %q is already present", newID)
		}

		parentID := id
		child.ParentID = &parentID
		parent.ChildrenIDs = append(parent.ChildrenIDs, newID)
		s.Themes[newID] = child

		if err := s.flattenChildrenRecursive(newID); err != nil {
			return err
		}
	}
	parent.Children = nil

	return nil
}

func (s *ThemeBuilderSet) expandFrom() error {
	for id := range s.Themes {
		if err := s.expandFromRecursive(id, 0); err != nil {
			return err
		}
	}
	return nil
}

func (s *ThemeBuilderSet) expandFromRecursive(id string, depth int) error {
	if depth > maxFromDepth {
		return fmt.Errorf("theme: from reference depth exceeds %d for %q, likely a circular reference", maxFromDepth, id)
	}

	theme := s.Themes[id]
	if theme == nil || theme.From == nil {
		return nil
	}
	fromID := *theme.From

	fromTheme, ok := s.Themes[fromID]
	if !ok {
		return fmt.Errorf("theme: from reference %q is invalid", fromID)
	}
	if err := s.expandFromRecursive(fromID, depth+1); err != nil {
		return err
	}

	s.copyFromTheme(theme, fromTheme, id)
	theme.From = nil // prevent re-expansion if this node is visited again
	return nil
}

func (s *ThemeBuilderSet) copyFromTheme(into, from *ThemeBuilder, intoID string) {
	if into.Kind == nil {
		into.Kind = from.Kind
	}
	if into.Layout == nil {
		into.Layout = from.Layout
	}
	if into.LayoutSpacing == nil {
		into.LayoutSpacing = from.LayoutSpacing
	}
	if into.Border == nil {
		into.Border = from.Border
	}
	if into.Size == nil {
		into.Size = from.Size
	}
	if into.Position == nil {
		into.Position = from.Position
	}
	into.Relative = into.Relative.or(from.Relative)
	if into.Text == nil {
		into.Text = from.Text
	}
	into.TextParams = into.TextParams.or(from.TextParams)
	if into.Background == nil {
		into.Background = from.Background
	}
	if into.Foreground == nil {
		into.Foreground = from.Foreground
	}

	if len(from.Custom) > 0 {
		if into.Custom == nil {
			into.Custom = map[string]string{}
		}
		for k, v := range from.Custom {
			if _, ok := into.Custom[k]; !ok {
				into.Custom[k] = v
			}
		}
	}

	for _, childID := range from.ChildrenIDs {
		fromChild := s.Themes[childID]
		if fromChild == nil {
			continue
		}
		ownChildID := intoID + "." + lastSegment(childID)
		if ownChild, ok := s.Themes[ownChildID]; ok {
			s.copyFromTheme(ownChild, fromChild, ownChildID)
			continue
		}

		copied := *fromChild
		copied.ParentID = &intoID
		copied.ChildrenIDs = nil
		s.Themes[ownChildID] = &copied
		into.ChildrenIDs = append(into.ChildrenIDs, ownChildID)
		s.copyFromTheme(&copied, fromChild, ownChildID)
	}
}

func lastSegment(id string) string {
	for i := len(id) - 1; i >= 0; i-- {
		if id[i] == '.' {
			return id[i+1:]
		}
	}
	return id
}

func (b *ThemeBuilder) build(id string) *Theme {
	t := &Theme{
		ID:         id,
		Kind:       KindRef,
		Relative:   b.Relative.resolve(),
		TextParams: b.TextParams.resolve(),
		Children:   append([]string(nil), b.ChildrenIDs...),
	}
	if b.Kind != nil {
		t.Kind = *b.Kind
	}
	if b.Layout != nil {
		t.Layout = *b.Layout
	}
	if b.LayoutSpacing != nil {
		t.LayoutSpacing = *b.LayoutSpacing
	}
	if b.Border != nil {
		t.Border = *b.Border
	}
	if b.Size != nil {
		t.Size = *b.Size
	}
	if b.Position != nil {
		t.Position = *b.Position
	}
	t.Text = b.Text
	t.Background = b.Background
	t.Foreground = b.Foreground
	t.Custom = b.Custom
	if b.ParentID != nil {
		t.ParentID = *b.ParentID
	}
	return t
}
