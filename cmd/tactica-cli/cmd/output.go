package cmd

import (
	"encoding/json"
	"fmt"
	"strings"
)

// OutputFormatter renders a command's result as text or JSON, per the
// --json global flag, and prefixes text output with [DRYRUN] when
// --dryrun is set so a preview run is never mistaken for a committed one.
type OutputFormatter struct {
	JSON   bool
	Dryrun bool
}

func NewOutputFormatter() *OutputFormatter {
	return &OutputFormatter{JSON: isJSONOutput(), Dryrun: isDryrun()}
}

func (f *OutputFormatter) prefix(text string) string {
	if !f.Dryrun {
		return text
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = "[DRYRUN] " + line
		}
	}
	return strings.Join(lines, "\n")
}

func (f *OutputFormatter) Print(data any) error {
	if f.JSON {
		return f.PrintJSON(data)
	}
	return f.PrintText(data)
}

func (f *OutputFormatter) PrintJSON(data any) error {
	output := map[string]any{"data": data, "dryrun": f.Dryrun}
	jsonBytes, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal JSON: %w", err)
	}
	fmt.Println(string(jsonBytes))
	return nil
}

func (f *OutputFormatter) PrintText(data any) error {
	var text string
	switch v := data.(type) {
	case string:
		text = v
	case fmt.Stringer:
		text = v.String()
	default:
		text = fmt.Sprintf("%v", v)
	}
	fmt.Println(f.prefix(text))
	return nil
}
