package resource

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.opentelemetry.io/contrib/bridges/otelslog"
	"gopkg.in/yaml.v3"
)

var logger = otelslog.NewLogger("github.com/ashfall-tactics/tactica/resource")

// DirectoryKey and FileKey are the synthetic keys injected into every
// merged resource document, recording which content roots and which
// files contributed to it.
const (
	DirectoryKey = "__directory__"
	FileKey      = "__file__"
)

// Set is a content graph built up by walking one or more root
// directories, classifying each file's containing directory, and
// recursively merging documents that share a (kind, id).
type Set struct {
	resources map[Kind]map[string]*yaml.Node
}

// NewSet walks dataDir and returns the resulting resource set.
func NewSet(dataDir string) (*Set, error) {
	s := &Set{resources: map[Kind]map[string]*yaml.Node{}}
	if err := s.Append(dataDir); err != nil {
		return nil, err
	}
	return s, nil
}

// Append merges the resources found under dir into the set, in addition
// to (and layered on top of) whatever has already been loaded. Root
// order matters: for colliding scalar keys, the first-loaded value wins.
func (s *Set) Append(dir string) error {
	logger.Debug("appending resources", "dir", dir)
	readRecursive(dir, dir, kindUnresolved, s.resources)
	return nil
}

// Get returns the merged document for (kind, id), if any.
func (s *Set) Get(kind Kind, id string) (*yaml.Node, bool) {
	byID, ok := s.resources[kind]
	if !ok {
		return nil, false
	}
	n, ok := byID[id]
	return n, ok
}

// IDs returns every id loaded for kind, sorted for deterministic
// iteration.
func (s *Set) IDs(kind Kind) []string {
	byID := s.resources[kind]
	ids := make([]string, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Decode unmarshals the merged document for (kind, id) into out.
func (s *Set) Decode(kind Kind, id string, out interface{}) error {
	n, ok := s.Get(kind, id)
	if !ok {
		return &NotFoundError{Kind: kind, ID: id}
	}
	return n.Decode(out)
}

// NotFoundError is returned when a lookup misses a (kind, id) pair.
type NotFoundError struct {
	Kind Kind
	ID   string
}

func (e *NotFoundError) Error() string {
	return "resource: no " + string(e.Kind) + " with id " + e.ID
}

func readRecursive(dir, topLevel string, kind Kind, resources map[Kind]map[string]*yaml.Node) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		logger.Debug("unable to read directory", "dir", dir, "err", err)
		return
	}

	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())

		if entry.IsDir() {
			nextKind := kind
			if kind == kindUnresolved {
				rel, err := filepath.Rel(topLevel, path)
				if err != nil {
					logger.Warn("unable to compute subdir relative to root", "path", path, "root", topLevel, "err", err)
					continue
				}
				resolved, ok := kindFromRelPath(rel)
				switch {
				case !ok:
					nextKind = kindUnresolved
				case resolved == kindSkip:
					continue
				default:
					nextKind = resolved
				}
			}
			readRecursive(path, topLevel, nextKind, resources)
			continue
		}

		if kind == kindUnresolved {
			logger.Warn("skipping file not in a recognized directory", "path", path)
			continue
		}
		readFile(dir, path, kind, resources)
	}
}

func readFile(dirStr, path string, kind Kind, resources map[Kind]map[string]*yaml.Node) {
	if !strings.HasSuffix(path, ".json") && !strings.HasSuffix(path, ".yml") && !strings.HasSuffix(path, ".yaml") {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		logger.Warn("error reading file", "path", path, "err", err)
		return
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		logger.Warn("error parsing file as yaml", "path", path, "err", err)
		return
	}
	if len(doc.Content) == 0 {
		return
	}
	value := doc.Content[0]

	if value.Kind != yaml.MappingNode {
		logger.Warn("attempting to insert a value that is not a mapping", "path", path)
		return
	}

	idNode, _ := nodeMapGet(value, "id")
	if idNode == nil || idNode.Kind != yaml.ScalarNode {
		logger.Warn("unable to extract top level id", "path", path)
		return
	}
	id := idNode.Value

	byID, ok := resources[kind]
	if !ok {
		byID = map[string]*yaml.Node{}
		resources[kind] = byID
	}

	if existing, ok := byID[id]; ok {
		mergeDoc(dirStr, path, existing, value)
		return
	}

	nodeMapSet(value, DirectoryKey, stringSeq(dirStr))
	nodeMapSet(value, FileKey, stringSeq(path))
	byID[id] = value
}

func mergeDoc(dir, path string, base, incoming *yaml.Node) {
	if base.Kind != yaml.MappingNode {
		logger.Warn("unable to append to base yaml, base is not a mapping", "path", path)
		return
	}
	if dirSeq, _ := nodeMapGet(base, DirectoryKey); dirSeq != nil {
		dirSeq.Content = append(dirSeq.Content, stringScalar(dir))
	}
	if fileSeq, _ := nodeMapGet(base, FileKey); fileSeq != nil {
		fileSeq.Content = append(fileSeq.Content, stringScalar(path))
	}

	if incoming.Kind != yaml.MappingNode {
		logger.Warn("unable to append to base yaml, incoming is not a mapping", "path", path)
		return
	}
	mergeMap(dir, path, base, incoming)
}

// mergeMap merges incoming into base in place: scalars in base win,
// sequences concatenate, mappings recurse. clear_base_keys and
// remove_base_keys in incoming are consumed as directives rather than
// merged as ordinary keys.
func mergeMap(dir, path string, base, incoming *yaml.Node) {
	if clearNode, _ := nodeMapGet(incoming, "clear_base_keys"); clearNode != nil {
		nodeMapDelete(incoming, "clear_base_keys")
		var clear bool
		if err := clearNode.Decode(&clear); err != nil {
			logger.Warn("clear_base_keys must be a boolean", "path", path, "err", err)
		} else if clear {
			base.Content = base.Content[:0]
		}
	}

	if removeNode, _ := nodeMapGet(incoming, "remove_base_keys"); removeNode != nil {
		nodeMapDelete(incoming, "remove_base_keys")
		if removeNode.Kind != yaml.SequenceNode {
			logger.Warn("remove_base_keys must be a sequence of key strings", "path", path)
		} else {
			for _, keyNode := range removeNode.Content {
				nodeMapDelete(base, keyNode.Value)
			}
		}
	}

	for i := 0; i+1 < len(incoming.Content); i += 2 {
		key := incoming.Content[i]
		value := incoming.Content[i+1]

		if baseValue, idx := nodeMapGet(base, key.Value); idx >= 0 {
			switch baseValue.Kind {
			case yaml.ScalarNode:
				continue // base wins, later files only add new keys
			case yaml.SequenceNode:
				if value.Kind == yaml.SequenceNode {
					baseValue.Content = append(baseValue.Content, value.Content...)
				} else {
					logger.Warn("expected a sequence", "key", key.Value, "path", path)
				}
				continue
			case yaml.MappingNode:
				if value.Kind == yaml.MappingNode {
					mergeMap(dir, path, baseValue, value)
				} else {
					logger.Warn("expected a mapping", "key", key.Value, "path", path)
				}
				continue
			}
		}

		nodeMapSet(base, key.Value, value)
	}
}
