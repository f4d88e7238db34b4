package pruner

import (
	"fmt"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oasprune/document"
	"github.com/erraggy/oasprune/oaserrors"
)

// Pruner reduces an OpenAPI document to the selected operations plus the
// components they transitively require.
type Pruner struct {
	// Strict escalates unresolved operation keys from result data to an
	// error. Default: false (missing keys are reported in
	// PruneResult.Missing and pruning continues with what resolved).
	Strict bool
	// Logger is the structured logger for debug output
	// If nil, logging is disabled (default)
	Logger document.Logger
}

// New creates a new Pruner instance with default settings
func New() *Pruner {
	return &Pruner{}
}

// log returns the configured logger, or a no-op logger if none is set.
func (p *Pruner) log() document.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return document.NopLogger{}
}

// PruneStats summarizes what a prune run kept and dropped.
type PruneStats struct {
	// SourcePaths is the number of path templates in the source document
	SourcePaths int
	// SourceOperations is the number of operations in the source document
	SourceOperations int
	// SourceComponents is the number of components in the source document
	SourceComponents int
	// KeptPaths is the number of path templates in the output
	KeptPaths int
	// KeptOperations is the number of operations in the output
	KeptOperations int
	// KeptComponents is the number of components in the output
	KeptComponents int
	// KeptByCategory breaks KeptComponents down by components category
	KeptByCategory map[Category]int
}

// PrunedComponents returns how many source components the run dropped.
func (s PruneStats) PrunedComponents() int {
	return s.SourceComponents - s.KeptComponents
}

// PruneResult contains the pruned document and metadata about the run.
type PruneResult struct {
	// Document is the assembled output document
	Document *document.Document
	// Selected lists the operation keys that resolved, in request order
	Selected []OperationKey
	// Missing lists requested keys absent from the source, in request order.
	// A key is missing when its path does not exist or the path exists but
	// does not define that method.
	Missing []OperationKey
	// Warnings contains non-fatal issues such as undefined security
	// scheme names
	Warnings []string
	// Stats summarizes the run
	Stats PruneStats
}

// Prune builds the reference index for doc and prunes it to the requested
// operations. For repeated prunes against one document use BuildIndex once
// and PruneIndexed.
func (p *Pruner) Prune(doc *document.Document, requested []OperationKey) (*PruneResult, error) {
	idx, err := BuildIndex(doc)
	if err != nil {
		return nil, err
	}
	return p.PruneIndexed(idx, requested)
}

// PruneIndexed prunes using a previously built index. The index is only
// read, so concurrent runs may share it.
func (p *Pruner) PruneIndexed(idx *Index, requested []OperationKey) (*PruneResult, error) {
	selected, missing, err := p.selectForRun(idx, requested)
	if err != nil {
		return nil, err
	}

	doc := idx.Document()
	result := &PruneResult{Missing: missing}
	for _, op := range selected {
		result.Selected = append(result.Selected, op.Key)
	}

	roots, warnings, err := p.collectRoots(idx, selected)
	if err != nil {
		return nil, err
	}
	result.Warnings = warnings

	closure := resolveClosure(roots, idx)
	p.log().Debug("resolved reference closure",
		"roots", len(roots),
		"closure", closure.Len(),
		"operations", len(selected))

	out, err := assemble(idx, selected, closure)
	if err != nil {
		return nil, err
	}
	out.SourcePath = doc.SourcePath
	out.SourceFormat = doc.SourceFormat
	result.Document = out

	result.Stats = buildStats(idx, selected, closure)
	p.log().Info("pruned document",
		"source", doc.SourcePath,
		"keptOperations", result.Stats.KeptOperations,
		"keptComponents", result.Stats.KeptComponents,
		"prunedComponents", result.Stats.PrunedComponents())

	return result, nil
}

// selectForRun resolves and validates the requested operations against the
// index. It rejects an empty request, a request where nothing resolved, and,
// in strict mode, any unresolved key.
func (p *Pruner) selectForRun(idx *Index, requested []OperationKey) ([]SelectedOperation, []OperationKey, error) {
	if len(requested) == 0 {
		return nil, nil, &oaserrors.ConfigError{
			Option:  "operations",
			Message: "at least one operation must be requested",
		}
	}

	doc := idx.Document()
	selected, missing := selectOperations(doc, requested)
	for _, key := range missing {
		p.log().Warn("requested operation not found", "operation", key.String())
	}
	if len(selected) == 0 {
		return nil, nil, &oaserrors.ConfigError{
			Option:  "operations",
			Message: fmt.Sprintf("none of the %d requested operations exist in %s", len(requested), doc.SourcePath),
		}
	}
	if p.Strict && len(missing) > 0 {
		return nil, nil, &oaserrors.ConfigError{
			Option:  "operations",
			Value:   missing[0].String(),
			Message: fmt.Sprintf("%d requested operations not found (strict mode)", len(missing)),
		}
	}
	return selected, missing, nil
}

// collectRoots gathers the closure's root set: the direct references of
// every selected operation, the references of the surviving non-method
// path item fields (path-level parameters chiefly), and the security
// schemes named by document-level and operation-level security
// requirements.
func (p *Pruner) collectRoots(idx *Index, selected []SelectedOperation) ([]ComponentKey, []string, error) {
	var roots []ComponentKey
	var warnings []string
	seen := make(map[ComponentKey]bool)
	addRoot := func(key ComponentKey) {
		if !seen[key] {
			seen[key] = true
			roots = append(roots, key)
		}
	}

	doc := idx.Document()

	// Direct references of each selected operation.
	for _, op := range selected {
		targets, err := idx.RefsIn(op.Node, operationLocation(op.Key))
		if err != nil {
			return nil, nil, err
		}
		for _, key := range targets {
			addRoot(key)
		}
	}

	// References in path item fields the assembly keeps alongside the
	// operations: path-level parameters, and an item-level $ref to a
	// pathItems component. The item is walked with its method fields masked
	// out so the walk sees the $ref key at the mapping level instead of its
	// bare scalar value.
	seenPaths := make(map[string]bool)
	for _, op := range selected {
		if seenPaths[op.Key.Path] {
			continue
		}
		seenPaths[op.Key.Path] = true
		item := doc.PathItem(op.Key.Path)
		masked := document.NewMappingNode()
		for i := 0; i+1 < len(item.Content); i += 2 {
			if IsMethod(item.Content[i].Value) {
				continue
			}
			masked.Content = append(masked.Content, item.Content[i], item.Content[i+1])
		}
		targets, err := idx.RefsIn(masked, fmt.Sprintf("paths.%s", op.Key.Path))
		if err != nil {
			return nil, nil, err
		}
		for _, key := range targets {
			addRoot(key)
		}
	}

	// Security schemes are referenced by name, not by $ref. Seed every
	// scheme named by the document-level security requirements and by the
	// selected operations' own.
	schemeNames := securitySchemeNames(document.MapGet(doc.Root(), "security"))
	for _, op := range selected {
		schemeNames = append(schemeNames, securitySchemeNames(document.MapGet(op.Node, "security"))...)
	}
	seenSchemes := make(map[string]bool)
	for _, name := range schemeNames {
		if seenSchemes[name] {
			continue
		}
		seenSchemes[name] = true
		key := ComponentKey{Category: CategorySecuritySchemes, Name: name}
		if !idx.Has(key) {
			warning := fmt.Sprintf("security requirement names undefined scheme %q", name)
			warnings = append(warnings, warning)
			p.log().Warn("undefined security scheme", "scheme", name)
			continue
		}
		addRoot(key)
	}

	return roots, warnings, nil
}

// securitySchemeNames extracts the scheme names from a security
// requirements sequence.
func securitySchemeNames(security *yaml.Node) []string {
	var names []string
	if security == nil || security.Kind != yaml.SequenceNode {
		return nil
	}
	for _, requirement := range security.Content {
		names = append(names, document.MapKeys(requirement)...)
	}
	return names
}

// buildStats computes the run summary.
func buildStats(idx *Index, selected []SelectedOperation, closure *Closure) PruneStats {
	doc := idx.Document()
	stats := PruneStats{
		SourceComponents: len(idx.components),
		KeptComponents:   closure.Len(),
		KeptByCategory:   make(map[Category]int),
	}

	for _, path := range document.MapKeys(doc.Paths()) {
		stats.SourcePaths++
		for _, field := range document.MapKeys(doc.PathItem(path)) {
			if IsMethod(field) {
				stats.SourceOperations++
			}
		}
	}

	stats.KeptOperations = len(selected)
	seenPaths := make(map[string]bool)
	for _, op := range selected {
		if !seenPaths[op.Key.Path] {
			seenPaths[op.Key.Path] = true
			stats.KeptPaths++
		}
	}

	for _, key := range closure.Keys() {
		stats.KeptByCategory[key.Category]++
	}

	return stats
}
