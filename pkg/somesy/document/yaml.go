package document

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// YAML holds a yaml.v3 node tree. Working on the node level (instead of
// unmarshaling into Go maps) keeps comments, key order and anchors of
// the original file intact across a load/save round trip.
type YAML struct {
	root *yaml.Node // the top-level mapping node
}

// NewYAML returns an empty YAML document.
func NewYAML() *YAML {
	return &YAML{root: &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}}
}

// LoadYAML parses data into a YAML document. The top level must be a
// mapping (or empty, which is treated as an empty mapping).
func LoadYAML(data []byte) (*YAML, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}
	if len(doc.Content) == 0 {
		return NewYAML(), nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("invalid YAML: top level is not a mapping")
	}
	return &YAML{root: root}, nil
}

// Get implements Document.
func (d *YAML) Get(path []string) (interface{}, bool) {
	node := d.root
	for _, key := range path {
		if node.Kind != yaml.MappingNode {
			return nil, false
		}
		_, val := findEntry(node, key)
		if val == nil {
			return nil, false
		}
		node = val
	}
	return nodeToValue(node), true
}

// Set implements Document.
func (d *YAML) Set(path []string, value interface{}) {
	if len(path) == 0 {
		return
	}
	node := d.root
	for _, key := range path[:len(path)-1] {
		_, val := findEntry(node, key)
		if val == nil || val.Kind != yaml.MappingNode {
			val = &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
			setEntry(node, key, val)
		}
		node = val
	}
	setEntry(node, path[len(path)-1], valueToNode(value))
}

// Delete implements Document.
func (d *YAML) Delete(path []string) {
	if len(path) == 0 {
		return
	}
	node := d.root
	for _, key := range path[:len(path)-1] {
		_, val := findEntry(node, key)
		if val == nil || val.Kind != yaml.MappingNode {
			return
		}
		node = val
	}
	key := path[len(path)-1]
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			node.Content = append(node.Content[:i], node.Content[i+2:]...)
			return
		}
	}
}

// Encode implements Document, serializing with the conventional
// two-space indent.
func (d *YAML) Encode() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(d.root); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// findEntry returns the key and value nodes of a mapping entry, or nils.
func findEntry(mapping *yaml.Node, key string) (*yaml.Node, *yaml.Node) {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			return mapping.Content[i], mapping.Content[i+1]
		}
	}
	return nil, nil
}

// setEntry replaces the value of an existing mapping entry in place, or
// appends a new entry after all existing ones.
func setEntry(mapping *yaml.Node, key string, value *yaml.Node) {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			mapping.Content[i+1] = value
			return
		}
	}
	keyNode := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key}
	mapping.Content = append(mapping.Content, keyNode, value)
}

// nodeToValue converts a yaml node into the generic value vocabulary.
func nodeToValue(n *yaml.Node) interface{} {
	switch n.Kind {
	case yaml.AliasNode:
		return nodeToValue(n.Alias)
	case yaml.MappingNode:
		m := NewMap()
		for i := 0; i+1 < len(n.Content); i += 2 {
			m.Set(n.Content[i].Value, nodeToValue(n.Content[i+1]))
		}
		return m
	case yaml.SequenceNode:
		seq := make([]interface{}, 0, len(n.Content))
		for _, c := range n.Content {
			seq = append(seq, nodeToValue(c))
		}
		return seq
	default:
		var v interface{}
		if err := n.Decode(&v); err != nil {
			return n.Value
		}
		// yaml decodes small integers as int, normalize to int64
		if i, ok := v.(int); ok {
			return int64(i)
		}
		return v
	}
}

// valueToNode converts a generic value into a fresh yaml node.
func valueToNode(v interface{}) *yaml.Node {
	switch val := v.(type) {
	case *yaml.Node:
		return val
	case *Map:
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for p := val.Oldest(); p != nil; p = p.Next() {
			key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: p.Key}
			n.Content = append(n.Content, key, valueToNode(p.Value))
		}
		return n
	case []interface{}:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range val {
			n.Content = append(n.Content, valueToNode(item))
		}
		return n
	case []string:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range val {
			n.Content = append(n.Content, valueToNode(item))
		}
		return n
	default:
		n := &yaml.Node{}
		if err := n.Encode(v); err != nil {
			n.Kind = yaml.ScalarNode
			n.Tag = "!!str"
			n.Value = fmt.Sprint(v)
		}
		return n
	}
}
