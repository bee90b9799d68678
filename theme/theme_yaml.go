package theme

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// UnmarshalYAML lets theme files write Kind as a bare string ("container",
// "label", "ref") instead of an integer.
func (k *Kind) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	switch strings.ToLower(s) {
	case "ref", "":
		*k = KindRef
	case "label":
		*k = KindLabel
	case "container":
		*k = KindContainer
	default:
		return fmt.Errorf("theme: unknown kind %q", s)
	}
	return nil
}

func (a *HorizontalAlignment) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	switch strings.ToLower(s) {
	case "left":
		*a = AlignLeft
	case "center", "":
		*a = AlignCenter
	case "right":
		*a = AlignRight
	default:
		return fmt.Errorf("theme: unknown horizontal alignment %q", s)
	}
	return nil
}

func (a *VerticalAlignment) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	switch strings.ToLower(s) {
	case "top":
		*a = AlignTop
	case "center", "":
		*a = AlignVCenter
	case "bottom":
		*a = AlignBottom
	default:
		return fmt.Errorf("theme: unknown vertical alignment %q", s)
	}
	return nil
}

func (r *SizeRelative) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	switch strings.ToLower(s) {
	case "zero", "":
		*r = SizeZero
	case "max":
		*r = SizeMax
	case "childmax", "child_max":
		*r = SizeChildMax
	case "childsum", "child_sum":
		*r = SizeChildSum
	case "custom":
		*r = SizeCustom
	default:
		return fmt.Errorf("theme: unknown size relative %q", s)
	}
	return nil
}

func (r *PositionRelative) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	switch strings.ToLower(s) {
	case "zero", "":
		*r = PositionZero
	case "center":
		*r = PositionCenter
	case "max":
		*r = PositionMax
	case "custom":
		*r = PositionCustom
	case "mouse":
		*r = PositionMouse
	default:
		return fmt.Errorf("theme: unknown position relative %q", s)
	}
	return nil
}

// UnmarshalYAML parses a "#rrggbb" or "#rrggbbaa" hex string into a Color.
func (c *Color) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := parseHexColor(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func parseHexColor(s string) (Color, error) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 && len(s) != 8 {
		return Color{}, fmt.Errorf("theme: invalid color %q, expected #rrggbb or #rrggbbaa", s)
	}

	channel := func(hex string) (float32, error) {
		v, err := strconv.ParseUint(hex, 16, 8)
		if err != nil {
			return 0, fmt.Errorf("theme: invalid color channel %q: %w", hex, err)
		}
		return float32(v) / 255.0, nil
	}

	r, err := channel(s[0:2])
	if err != nil {
		return Color{}, err
	}
	g, err := channel(s[2:4])
	if err != nil {
		return Color{}, err
	}
	b, err := channel(s[4:6])
	if err != nil {
		return Color{}, err
	}
	a := float32(1.0)
	if len(s) == 8 {
		a, err = channel(s[6:8])
		if err != nil {
			return Color{}, err
		}
	}

	return Color{R: r, G: g, B: b, A: a}, nil
}
