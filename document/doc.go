// Package document loads OpenAPI 3.x documents and exposes them as
// order-preserving node trees.
//
// Unlike typed document models, the node tree keeps every field of the
// source document exactly as written, including vendor extensions and
// fields added by future OAS revisions. Pruning operates on this tree so
// that surviving content round-trips byte-for-byte semantically identical
// to the source.
//
// # Loading
//
// The Loader reads from a file path, URL, io.Reader, or byte slice:
//
//	loader := document.NewLoader()
//	doc, err := loader.Load("api.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(doc.Version) // e.g. "3.0.3"
//
// Documents are parsed from YAML or JSON with automatic format detection.
// OpenAPI 2.0 (Swagger) documents are rejected with a ParseError.
//
// # Immutability
//
// Callers should treat a loaded Document as read-only after the pruner has
// indexed it. Documents assembled by the pruner deep-copy every retained
// subtree, so an assembled document never aliases its source and either
// side can be serialized or mutated independently.
package document
