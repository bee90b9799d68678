package resource

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadManifestParsesModuleInfo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "module.toml")
	content := `
[module]
id = "ashfall"
name = "Ashfall Tactics"
authors = ["a", "b"]
version = "1.0.0"

[engine]
min_version = "0.3.0"

[content]
starting_area = "town"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	m, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	if m.Module.ID != "ashfall" || len(m.Module.Authors) != 2 {
		t.Fatalf("unexpected module info: %+v", m.Module)
	}
	if m.Engine.MinVersion != "0.3.0" {
		t.Fatalf("unexpected engine info: %+v", m.Engine)
	}
	if m.Content.StartingArea != "town" {
		t.Fatalf("unexpected content info: %+v", m.Content)
	}
}

func TestLoadManifestRequiresModuleID(t *testing.T) {
	path := filepath.Join(t.TempDir(), "module.toml")
	if err := os.WriteFile(path, []byte("[module]\nname = \"No ID\"\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if _, err := LoadManifest(path); err == nil {
		t.Fatalf("expected an error for a manifest missing module.id")
	}
}
