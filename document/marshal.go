package document

import (
	"bytes"
	"encoding/json"
	"fmt"

	"go.yaml.in/yaml/v4"
)

// MarshalYAML marshals the document to YAML with fields in the same order
// as the source document.
func (d *Document) MarshalYAML() ([]byte, error) {
	if d.root == nil {
		return nil, fmt.Errorf("document: cannot marshal empty document")
	}
	return yaml.Marshal(d.root)
}

// MarshalJSON marshals the document to compact JSON with fields in the same
// order as the source document.
func (d *Document) MarshalJSON() ([]byte, error) {
	if d.root == nil {
		return nil, fmt.Errorf("document: cannot marshal empty document")
	}
	var buf bytes.Buffer
	if err := writeNodeJSON(&buf, d.root); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MarshalJSONIndent marshals the document to indented JSON with fields in
// the same order as the source document.
func (d *Document) MarshalJSONIndent(prefix, indent string) ([]byte, error) {
	data, err := d.MarshalJSON()
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, data, prefix, indent); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Marshal serializes the document in the given format. Unknown formats
// default to YAML.
func (d *Document) Marshal(format SourceFormat) ([]byte, error) {
	if format == SourceFormatJSON {
		return d.MarshalJSONIndent("", "  ")
	}
	return d.MarshalYAML()
}

// writeNodeJSON writes a yaml.Node to a buffer as JSON, preserving the key
// order from the node tree.
func writeNodeJSON(buf *bytes.Buffer, node *yaml.Node) error {
	if node == nil {
		buf.WriteString("null")
		return nil
	}

	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) > 0 {
			return writeNodeJSON(buf, node.Content[0])
		}
		buf.WriteString("null")
		return nil

	case yaml.MappingNode:
		buf.WriteByte('{')
		first := true
		for i := 0; i+1 < len(node.Content); i += 2 {
			if !first {
				buf.WriteByte(',')
			}
			first = false

			keyJSON, err := json.Marshal(node.Content[i].Value)
			if err != nil {
				return err
			}
			buf.Write(keyJSON)
			buf.WriteByte(':')

			if err := writeNodeJSON(buf, node.Content[i+1]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
		return nil

	case yaml.SequenceNode:
		buf.WriteByte('[')
		for i, item := range node.Content {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeNodeJSON(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil

	case yaml.AliasNode:
		return writeNodeJSON(buf, node.Alias)

	default:
		// ScalarNode: decode to a typed Go value so numbers, booleans, and
		// nulls serialize as JSON values rather than strings.
		var v any
		if err := node.Decode(&v); err != nil {
			return fmt.Errorf("document: failed to decode scalar at line %d: %w", node.Line, err)
		}
		data, err := json.Marshal(v)
		if err != nil {
			return err
		}
		buf.Write(data)
		return nil
	}
}
