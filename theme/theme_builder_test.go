package theme

import "testing"

func strPtr(s string) *string { return &s }

func TestFlattenChildrenProducesQualifiedIDs(t *testing.T) {
	root := &ThemeBuilder{
		Children: map[string]*ThemeBuilder{
			"panel": {
				Children: map[string]*ThemeBuilder{
					"title": {Text: strPtr("Hello")},
				},
			},
		},
	}
	set := &ThemeBuilderSet{ID: "root", Themes: map[string]*ThemeBuilder{"root": root}}

	if err := set.flattenChildren(); err != nil {
		t.Fatalf("flattenChildren: %v", err)
	}

	panel, ok := set.Themes["root.panel"]
	if !ok {
		t.Fatalf("expected root.panel to be present")
	}
	if panel.ParentID == nil || *panel.ParentID != "root" {
		t.Fatalf("expected root.panel's parent id to be root")
	}

	title, ok := set.Themes["root.panel.title"]
	if !ok {
		t.Fatalf("expected root.panel.title to be present")
	}
	if title.Text == nil || *title.Text != "Hello" {
		t.Fatalf("expected title text to survive flattening")
	}
}

func TestFlattenChildrenRejectsIDCollision(t *testing.T) {
	set := &ThemeBuilderSet{
		Themes: map[string]*ThemeBuilder{
			"root": {
				Children: map[string]*ThemeBuilder{
					"panel": {},
				},
			},
			"root.panel": {},
		},
	}

	if err := set.flattenChildren(); err == nil {
		t.Fatalf("expected a collision error when root.panel already exists")
	}
}

func TestExpandFromMergesAncestorFields(t *testing.T) {
	labelKind := KindLabel
	base := &ThemeBuilder{Kind: &labelKind, Background: strPtr("base_bg")}
	from := "base"
	derived := &ThemeBuilder{From: &from, Text: strPtr("Derived")}

	set := &ThemeBuilderSet{Themes: map[string]*ThemeBuilder{
		"base":    base,
		"derived": derived,
	}}

	if err := set.expandFrom(); err != nil {
		t.Fatalf("expandFrom: %v", err)
	}

	if derived.Kind == nil || *derived.Kind != KindLabel {
		t.Fatalf("expected derived to inherit kind from base")
	}
	if derived.Background == nil || *derived.Background != "base_bg" {
		t.Fatalf("expected derived to inherit background from base")
	}
	if derived.Text == nil || *derived.Text != "Derived" {
		t.Fatalf("expected derived's own text to be preserved")
	}
}

func TestExpandFromRejectsInvalidReference(t *testing.T) {
	from := "missing"
	set := &ThemeBuilderSet{Themes: map[string]*ThemeBuilder{
		"derived": {From: &from},
	}}

	if err := set.expandFrom(); err == nil {
		t.Fatalf("expected an error for a from reference to a missing theme")
	}
}

func TestExpandFromRejectsCircularReference(t *testing.T) {
	a, b := "b", "a"
	set := &ThemeBuilderSet{Themes: map[string]*ThemeBuilder{
		"a": {From: &a},
		"b": {From: &b},
	}}

	if err := set.expandFrom(); err == nil {
		t.Fatalf("expected an error for a circular from reference")
	}
}

func TestCreateThemeSetIncludesDefaultTheme(t *testing.T) {
	set := &ThemeBuilderSet{Themes: map[string]*ThemeBuilder{
		"root": {},
	}}

	result, err := set.CreateThemeSet()
	if err != nil {
		t.Fatalf("CreateThemeSet: %v", err)
	}
	if result.DefaultTheme() == nil {
		t.Fatalf("expected a default theme to always be present")
	}
	if !result.Contains("root") {
		t.Fatalf("expected root theme to carry through")
	}
}
