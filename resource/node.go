package resource

import "gopkg.in/yaml.v3"

// nodeMapGet returns the value mapped to key in a MappingNode, along with
// the index of the key node in Content, or (nil, -1) if absent.
func nodeMapGet(m *yaml.Node, key string) (*yaml.Node, int) {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return m.Content[i+1], i
		}
	}
	return nil, -1
}

// nodeMapSet inserts or overwrites key in a MappingNode.
func nodeMapSet(m *yaml.Node, key string, value *yaml.Node) {
	if _, idx := nodeMapGet(m, key); idx >= 0 {
		m.Content[idx+1] = value
		return
	}
	m.Content = append(m.Content, stringScalar(key), value)
}

// nodeMapDelete removes key (and its value) from a MappingNode, if present.
func nodeMapDelete(m *yaml.Node, key string) {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			m.Content = append(m.Content[:i], m.Content[i+2:]...)
			return
		}
	}
}

func stringScalar(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

func stringSeq(values ...string) *yaml.Node {
	n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	for _, v := range values {
		n.Content = append(n.Content, stringScalar(v))
	}
	return n
}
