package pruner

import "github.com/erraggy/oasprune/document"

// OperationRefs lists one selected operation's direct component references
// in discovery order.
type OperationRefs struct {
	Key  OperationKey
	Refs []ComponentKey
}

// ClosureReport describes the reference closure of a set of operations
// without assembling an output document. It is what the refs command and
// the closure MCP tool print.
type ClosureReport struct {
	// Selected lists the operation keys that resolved, in request order
	Selected []OperationKey
	// Missing lists requested keys absent from the source, in request order
	Missing []OperationKey
	// Operations holds the direct references of each selected operation
	Operations []OperationRefs
	// Closure is the full transitive closure in resolution order
	Closure []ComponentKey
	// ByCategory groups the closure's component names by category, names in
	// source order
	ByCategory map[Category][]string
	// Warnings contains non-fatal issues such as undefined security
	// scheme names
	Warnings []string
}

// Report computes the reference closure of the requested operations and
// returns it without assembling a document. Selection and closure semantics
// match Prune exactly, including strict mode.
func (p *Pruner) Report(doc *document.Document, requested []OperationKey) (*ClosureReport, error) {
	idx, err := BuildIndex(doc)
	if err != nil {
		return nil, err
	}
	return p.ReportIndexed(idx, requested)
}

// ReportIndexed reports using a previously built index. The index is only
// read, so concurrent runs may share it.
func (p *Pruner) ReportIndexed(idx *Index, requested []OperationKey) (*ClosureReport, error) {
	selected, missing, err := p.selectForRun(idx, requested)
	if err != nil {
		return nil, err
	}

	report := &ClosureReport{Missing: missing}
	for _, op := range selected {
		report.Selected = append(report.Selected, op.Key)
	}

	for _, op := range selected {
		refs, err := idx.RefsIn(op.Node, operationLocation(op.Key))
		if err != nil {
			return nil, err
		}
		report.Operations = append(report.Operations, OperationRefs{Key: op.Key, Refs: refs})
	}

	roots, warnings, err := p.collectRoots(idx, selected)
	if err != nil {
		return nil, err
	}
	report.Warnings = warnings

	closure := resolveClosure(roots, idx)
	report.Closure = closure.Keys()

	report.ByCategory = make(map[Category][]string)
	for _, key := range idx.Components() {
		if closure.Contains(key) {
			report.ByCategory[key.Category] = append(report.ByCategory[key.Category], key.Name)
		}
	}

	return report, nil
}
