package pruner

import (
	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oasprune/document"
)

// SelectedOperation pairs a requested operation key with its subtree in
// the source document.
type SelectedOperation struct {
	Key  OperationKey
	Node *yaml.Node
}

// selectOperations resolves the requested keys against the document's
// paths. The selected slice mirrors request order, not source order, since
// the caller is defining the shape of the pruned surface. Duplicate
// requests collapse to the first occurrence. Keys that do not resolve (an
// unknown path, or a known path without that method) are returned in the
// missing slice, also in request order.
func selectOperations(doc *document.Document, requested []OperationKey) (selected []SelectedOperation, missing []OperationKey) {
	seen := make(map[OperationKey]bool, len(requested))
	for _, key := range requested {
		if seen[key] {
			continue
		}
		seen[key] = true

		op := doc.Operation(key.Path, string(key.Method))
		if op == nil {
			missing = append(missing, key)
			continue
		}
		selected = append(selected, SelectedOperation{Key: key, Node: op})
	}
	return selected, missing
}
