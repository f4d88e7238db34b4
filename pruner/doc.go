// Package pruner reduces an OpenAPI 3.x document to a minimal,
// self-contained subset: the selected path+method operations plus every
// component those operations transitively reference.
//
// # How it works
//
// A prune run has five stages:
//
//  1. Index: every components entry is walked once, its $ref occurrences
//     validated and recorded as edges of a reference graph.
//  2. Select: the requested (path, method) keys are resolved against the
//     document's paths; keys that do not resolve are reported, not fatal.
//  3. Resolve: the transitive closure of the selected operations' direct
//     references is computed over the graph. Cycles (recursive schemas)
//     terminate because each component is expanded at most once.
//  4. Assemble: a new document is built holding the untouched metadata,
//     only the selected operations, and only the closure's components,
//     all in source order and deep-copied.
//  5. Verify: the assembled document is re-walked; every surviving $ref
//     must resolve within it.
//
// Reference problems in the source are fatal: a $ref that is not a local
// #/components pointer fails with MalformedReferenceError, and one naming
// a missing component fails with DanglingReferenceError. Silently dropping
// either would emit a document that looks plausible but cannot be
// resolved.
//
// # Usage
//
//	result, err := pruner.PruneWithOptions(
//	    pruner.WithFilePath("api.yaml"),
//	    pruner.WithOperationSpecs("GET /pets", "POST /pets"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	out, _ := result.Document.MarshalYAML()
//	os.WriteFile("pruned.yaml", out, 0o644)
//
// For repeated prunes of one document, build the index once and share it;
// it is read-only after construction:
//
//	idx, err := pruner.BuildIndex(doc)
//	...
//	perClient, err := pruner.New().PruneIndexed(idx, clientOps)
//
// To inspect what a selection would keep without producing a document,
// use [Pruner.Report], which runs the same selection and closure stages
// and returns a ClosureReport instead of assembling output.
package pruner
