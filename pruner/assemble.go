package pruner

import (
	"fmt"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oasprune/document"
	"github.com/erraggy/oasprune/oaserrors"
)

// assemble builds the output document: document-level metadata copied
// untouched in source key order, a paths section holding only the selected
// operations, and a components section holding only the closure. Every
// retained subtree is deep-copied so the output never aliases the source.
func assemble(idx *Index, selected []SelectedOperation, closure *Closure) (*document.Document, error) {
	src := idx.Document()
	root := document.NewMappingNode()

	for _, key := range document.MapKeys(src.Root()) {
		switch key {
		case "paths":
			document.MapAppend(root, "paths", assemblePaths(src, selected))
		case "components":
			if closure.Len() > 0 {
				document.MapAppend(root, "components", assembleComponents(idx, closure))
			}
		case "webhooks":
			// Webhooks are not selectable operations; a pruned surface
			// never carries them.
		default:
			document.MapAppend(root, key, document.DeepCopy(document.MapGet(src.Root(), key)))
		}
	}

	out := document.FromRoot(root, src.Version)
	if err := verifyClosure(out, closure); err != nil {
		return nil, err
	}
	return out, nil
}

// assemblePaths builds the pruned paths mapping. Paths appear in the order
// their first selected operation was requested. Within a path item,
// non-method fields (summary, description, parameters, servers) survive in
// source order, and only selected methods are kept.
func assemblePaths(src *document.Document, selected []SelectedOperation) *yaml.Node {
	paths := document.NewMappingNode()

	var pathOrder []string
	methodsByPath := make(map[string]map[Method]bool)
	for _, op := range selected {
		if methodsByPath[op.Key.Path] == nil {
			pathOrder = append(pathOrder, op.Key.Path)
			methodsByPath[op.Key.Path] = make(map[Method]bool)
		}
		methodsByPath[op.Key.Path][op.Key.Method] = true
	}

	for _, path := range pathOrder {
		srcItem := src.PathItem(path)
		item := document.NewMappingNode()
		for _, field := range document.MapKeys(srcItem) {
			if IsMethod(field) && !methodsByPath[path][Method(field)] {
				continue
			}
			document.MapAppend(item, field, document.DeepCopy(document.MapGet(srcItem, field)))
		}
		document.MapAppend(paths, path, item)
	}

	return paths
}

// assembleComponents builds the pruned components mapping. Categories keep
// their source order, as do names within each category; a category with no
// surviving members is omitted.
func assembleComponents(idx *Index, closure *Closure) *yaml.Node {
	components := document.NewMappingNode()

	for _, category := range idx.categories {
		var categoryNode *yaml.Node
		for _, name := range idx.names[category] {
			key := ComponentKey{Category: category, Name: name}
			if !closure.Contains(key) {
				continue
			}
			if categoryNode == nil {
				categoryNode = document.NewMappingNode()
			}
			document.MapAppend(categoryNode, name, document.DeepCopy(idx.Node(key)))
		}
		if categoryNode != nil {
			document.MapAppend(components, string(category), categoryNode)
		}
	}

	return components
}

// verifyClosure re-walks the assembled document and checks that every
// reference in it resolves to a component the assembly kept. With a
// correct closure this never fails; it exists so a closure bug surfaces
// here instead of in the emitted document.
func verifyClosure(out *document.Document, closure *Closure) error {
	return walkRefs(out.Root(), "", func(ref, location string) error {
		key, err := parseComponentRef(ref, location)
		if err != nil {
			return &oaserrors.IncompleteClosureError{Ref: ref, Location: location}
		}
		if !closure.Contains(key) {
			return &oaserrors.IncompleteClosureError{Ref: ref, Location: location}
		}
		return nil
	})
}

// operationLocation formats the document location of one operation for
// error messages.
func operationLocation(key OperationKey) string {
	return fmt.Sprintf("paths.%s.%s", key.Path, key.Method)
}
