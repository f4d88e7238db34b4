package pruner

import (
	"fmt"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oasprune/document"
	"github.com/erraggy/oasprune/oaserrors"
)

// Index is the reference index of one document: every component keyed by
// category and name, plus the direct reference edges out of each component
// subtree. It is built once per document and read-only afterwards, so
// multiple prune runs against the same source may share one Index.
type Index struct {
	doc *document.Document

	components map[ComponentKey]*yaml.Node
	categories []Category
	names      map[Category][]string
	edges      map[ComponentKey][]ComponentKey
}

// BuildIndex walks every component subtree exactly once, validating each
// $ref it contains and recording a directed edge for it. A $ref that does
// not name a local component fails with MalformedReferenceError; one that
// names a component that does not exist fails with DanglingReferenceError.
func BuildIndex(doc *document.Document) (*Index, error) {
	idx := &Index{
		doc:        doc,
		components: make(map[ComponentKey]*yaml.Node),
		names:      make(map[Category][]string),
		edges:      make(map[ComponentKey][]ComponentKey),
	}

	// First pass: register every component so edge validation can
	// distinguish dangling from valid regardless of declaration order.
	components := doc.Components()
	for _, categoryName := range document.MapKeys(components) {
		category := Category(categoryName)
		if !knownCategories[category] {
			// Extensions like x-internal live beside categories; they
			// cannot be referenced so they are not indexed.
			continue
		}
		categoryNode := document.MapGet(components, categoryName)
		idx.categories = append(idx.categories, category)
		for _, name := range document.MapKeys(categoryNode) {
			key := ComponentKey{Category: category, Name: name}
			idx.components[key] = document.MapGet(categoryNode, name)
			idx.names[category] = append(idx.names[category], name)
		}
	}

	// Second pass: collect and validate the direct references of each
	// component subtree.
	for _, category := range idx.categories {
		for _, name := range idx.names[category] {
			key := ComponentKey{Category: category, Name: name}
			location := fmt.Sprintf("components.%s.%s", category, name)
			targets, err := idx.RefsIn(idx.components[key], location)
			if err != nil {
				return nil, err
			}
			idx.edges[key] = targets
		}
	}

	return idx, nil
}

// Document returns the indexed document.
func (idx *Index) Document() *document.Document {
	return idx.doc
}

// Has reports whether a component exists in the document.
func (idx *Index) Has(key ComponentKey) bool {
	_, ok := idx.components[key]
	return ok
}

// Node returns the defining subtree of a component, or nil if absent.
func (idx *Index) Node(key ComponentKey) *yaml.Node {
	return idx.components[key]
}

// Components returns every component key in source order: categories in
// their order of appearance, names in theirs.
func (idx *Index) Components() []ComponentKey {
	keys := make([]ComponentKey, 0, len(idx.components))
	for _, category := range idx.categories {
		for _, name := range idx.names[category] {
			keys = append(keys, ComponentKey{Category: category, Name: name})
		}
	}
	return keys
}

// DirectRefs returns the components a component directly references, in
// discovery order with duplicates removed.
func (idx *Index) DirectRefs(key ComponentKey) []ComponentKey {
	return idx.edges[key]
}

// RefsIn collects and validates every $ref inside a subtree, returning the
// referenced component keys in discovery order with duplicates removed.
// location anchors error messages and should name the subtree's position
// in the document.
func (idx *Index) RefsIn(node *yaml.Node, location string) ([]ComponentKey, error) {
	var targets []ComponentKey
	seen := make(map[ComponentKey]bool)

	err := walkRefs(node, location, func(ref, refLocation string) error {
		key, err := parseComponentRef(ref, refLocation)
		if err != nil {
			return err
		}
		if !idx.Has(key) {
			return &oaserrors.DanglingReferenceError{Ref: ref, Location: refLocation}
		}
		if !seen[key] {
			seen[key] = true
			targets = append(targets, key)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return targets, nil
}

// literalValueKeys are fixed fields whose values hold payload data rather
// than document structure. A "$ref" key inside an example payload is data,
// not a reference, so the walk does not descend into these. The skip only
// applies in fixed-field position: several of these words double as
// user-chosen keys elsewhere ("default" is also the catch-all status code
// of a responses map, and any of them can name a schema property), and in
// those positions the values are structure and must be walked.
var literalValueKeys = map[string]bool{
	"example": true,
	"default": true,
	"enum":    true,
	"const":   true,
	"value":   true,
}

// nameKeyedFields are fixed fields whose mapping values are keyed by
// user-chosen names (property names, status codes, media types, header
// names) rather than by fixed fields of an object.
var nameKeyedFields = map[string]bool{
	"paths":             true,
	"webhooks":          true,
	"properties":        true,
	"patternProperties": true,
	"responses":         true,
	"headers":           true,
	"content":           true,
	"encoding":          true,
	"examples":          true,
	"links":             true,
	"callbacks":         true,
	"schemas":           true,
	"parameters":        true,
	"requestBodies":     true,
	"securitySchemes":   true,
	"pathItems":         true,
}

// walkRefs walks a subtree and invokes visit for every reference
// occurrence: $ref keys with scalar values, and discriminator mapping
// values that use reference syntax. The root node is treated as an object
// with fixed fields.
func walkRefs(node *yaml.Node, location string, visit func(ref, location string) error) error {
	return walkRefsKeyed(node, location, false, visit)
}

// walkRefsKeyed carries the one piece of context the walk needs: whether
// the current mapping's keys are user-chosen names. In name-keyed position
// a key spelled "default" or "$ref" is just a name, so the literal-payload
// skip, the discriminator handling, and the mapping-level $ref check are
// all suspended for that level.
func walkRefsKeyed(node *yaml.Node, location string, nameKeyed bool, visit func(ref, location string) error) error {
	if node == nil {
		return nil
	}

	switch node.Kind {
	case yaml.MappingNode:
		if !nameKeyed {
			if ref, ok := document.RefValue(node); ok {
				if err := visit(ref, location); err != nil {
					return err
				}
			}
		}
		for i := 0; i+1 < len(node.Content); i += 2 {
			key := node.Content[i].Value
			if !nameKeyed && (key == "$ref" || literalValueKeys[key]) {
				continue
			}
			value := node.Content[i+1]
			childLocation := key
			if location != "" {
				childLocation = location + "." + key
			}
			if !nameKeyed && key == "discriminator" {
				if err := visitDiscriminatorRefs(value, childLocation, visit); err != nil {
					return err
				}
				continue
			}
			childNameKeyed := !nameKeyed && nameKeyedFields[key]
			if err := walkRefsKeyed(value, childLocation, childNameKeyed, visit); err != nil {
				return err
			}
		}
		return nil

	case yaml.SequenceNode:
		for i, item := range node.Content {
			if err := walkRefsKeyed(item, fmt.Sprintf("%s[%d]", location, i), false, visit); err != nil {
				return err
			}
		}
		return nil

	default:
		return nil
	}
}

// visitDiscriminatorRefs handles discriminator.mapping, whose values may be
// either bare schema names or reference strings. Only reference syntax is
// visited; bare names alias schemas that the surrounding oneOf/anyOf
// already references.
func visitDiscriminatorRefs(disc *yaml.Node, location string, visit func(ref, location string) error) error {
	mapping := document.MapGet(disc, "mapping")
	if mapping == nil || mapping.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		value := mapping.Content[i+1]
		if value.Kind != yaml.ScalarNode || value.Value == "" || value.Value[0] != '#' {
			continue
		}
		refLocation := fmt.Sprintf("%s.mapping.%s", location, mapping.Content[i].Value)
		if err := visit(value.Value, refLocation); err != nil {
			return err
		}
	}
	return nil
}
