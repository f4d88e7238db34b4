// Package oasprune reduces an OpenAPI 3.x document to a minimal, self-contained
// subset of itself: the operations you select, plus every reusable component
// those operations transitively reference.
//
// # Overview
//
// The library consists of two primary packages:
//
//   - document: an order-preserving in-memory model of an OAS document,
//     with loading from files, URLs, readers, and byte slices
//   - pruner: operation selection, $ref closure resolution, and assembly
//     of the pruned output document
//
// Only OpenAPI 3.x documents (3.0.0 through 3.2.0) are supported. OAS 2.0
// (Swagger) documents are rejected at load time.
//
// # Quick Start
//
// Prune a specification down to two operations:
//
//	result, err := pruner.PruneWithOptions(
//		pruner.WithFilePath("openapi.yaml"),
//		pruner.WithOperationSpecs("GET /pets", "POST /pets"),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	data, _ := result.Document.MarshalYAML()
//	os.WriteFile("pruned.yaml", data, 0o600)
//
// The emitted document keeps the source's openapi version, info, servers,
// tags, and other document-level metadata untouched. Its paths section
// contains exactly the selected operations in the order they were requested,
// and its components section contains exactly the transitive reference
// closure of those operations. Every $ref in the output resolves within the
// output.
//
// # Command Line
//
// The oasprune binary wraps the library:
//
//	oasprune prune --op "GET /pets" --op "POST /pets" -o pruned.yaml openapi.yaml
//	oasprune refs --op "GET /pets" openapi.yaml
//	oasprune mcp
package oasprune
