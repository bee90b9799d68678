package resource

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Manifest is the authored, per-module metadata file (module.toml) at the
// root of a content root: who made it, and which engine versions it was
// built against. Unlike the YAML resource tree, a module has exactly one
// manifest and it is never merged across roots.
type Manifest struct {
	Module  ModuleInfo  `toml:"module"`
	Engine  EngineInfo  `toml:"engine"`
	Content ContentInfo `toml:"content"`
}

type ModuleInfo struct {
	ID      string   `toml:"id"`
	Name    string   `toml:"name"`
	Authors []string `toml:"authors"`
	Version string   `toml:"version"`
}

// EngineInfo records the engine version range this module was authored
// against. LoadManifest parses it but does not check it against the
// running engine.
type EngineInfo struct {
	MinVersion string `toml:"min_version"`
	MaxVersion string `toml:"max_version"`
}

type ContentInfo struct {
	DefaultArea  string `toml:"default_area"`
	StartingArea string `toml:"starting_area"`
}

func defaultManifest() *Manifest {
	return &Manifest{
		Engine: EngineInfo{MinVersion: "0.0.0"},
	}
}

// LoadManifest reads and parses the module manifest at path.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("resource: read manifest %s: %w", path, err)
	}

	manifest := defaultManifest()
	if err := toml.Unmarshal(data, manifest); err != nil {
		return nil, fmt.Errorf("resource: parse manifest %s: %w", path, err)
	}
	if manifest.Module.ID == "" {
		return nil, fmt.Errorf("resource: manifest %s is missing module.id", path)
	}
	return manifest, nil
}
