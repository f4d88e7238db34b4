package document

import (
	"go.yaml.in/yaml/v4"
)

// MapGet returns the value node for a key in a MappingNode, or nil if the
// node is not a mapping or the key is absent.
func MapGet(node *yaml.Node, key string) *yaml.Node {
	if node == nil || node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Kind == yaml.ScalarNode && node.Content[i].Value == key {
			return node.Content[i+1]
		}
	}
	return nil
}

// MapKeys returns the keys of a MappingNode in their source order.
func MapKeys(node *yaml.Node) []string {
	if node == nil || node.Kind != yaml.MappingNode {
		return nil
	}
	keys := make([]string, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Kind == yaml.ScalarNode {
			keys = append(keys, node.Content[i].Value)
		}
	}
	return keys
}

// RefValue returns the $ref string of a mapping node and whether one was
// present. Only scalar $ref values count; a non-scalar $ref key is not a
// reference object.
func RefValue(node *yaml.Node) (string, bool) {
	ref := MapGet(node, "$ref")
	if ref == nil || ref.Kind != yaml.ScalarNode {
		return "", false
	}
	return ref.Value, true
}

// ScalarNode creates a string scalar yaml.Node. Used when constructing
// mapping keys for assembled documents.
func ScalarNode(value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value}
}

// NewMappingNode creates an empty MappingNode.
func NewMappingNode() *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
}

// MapAppend appends a key/value pair to a MappingNode.
func MapAppend(node *yaml.Node, key string, value *yaml.Node) {
	node.Content = append(node.Content, ScalarNode(key), value)
}

// DeepCopy returns a full copy of a node subtree. Assembled documents copy
// retained subtrees so the output never aliases the source tree. Alias
// nodes must already be dereferenced; loading does this.
func DeepCopy(node *yaml.Node) *yaml.Node {
	if node == nil {
		return nil
	}
	copied := *node
	if len(node.Content) > 0 {
		copied.Content = make([]*yaml.Node, len(node.Content))
		for i, child := range node.Content {
			copied.Content[i] = DeepCopy(child)
		}
	}
	copied.Alias = nil
	return &copied
}
