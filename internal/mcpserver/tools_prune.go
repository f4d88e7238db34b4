package mcpserver

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oasprune/document"
	"github.com/erraggy/oasprune/pruner"
)

type pruneInput struct {
	Spec            specInput `json:"spec"                       jsonschema:"The OAS document to prune"`
	Operations      []string  `json:"operations"                 jsonschema:"Operations to keep, one METHOD /path per entry (e.g. GET /pets)"`
	Strict          bool      `json:"strict,omitempty"           jsonschema:"Fail when any requested operation does not exist"`
	Format          string    `json:"format,omitempty"           jsonschema:"Output format: yaml or json (default: source format)"`
	Output          string    `json:"output,omitempty"           jsonschema:"File path to write the pruned document. If omitted the document is returned inline when include_document is true."`
	IncludeDocument bool      `json:"include_document,omitempty" jsonschema:"Include the full pruned document in output"`
}

type pruneOutput struct {
	Selected         []string `json:"selected"`
	Missing          []string `json:"missing,omitempty"`
	Warnings         []string `json:"warnings,omitempty"`
	KeptPaths        int      `json:"kept_paths"`
	KeptOperations   int      `json:"kept_operations"`
	KeptComponents   int      `json:"kept_components"`
	SourceComponents int      `json:"source_components"`
	PrunedComponents int      `json:"pruned_components"`
	WrittenTo        string   `json:"written_to,omitempty"`
	Document         string   `json:"document,omitempty"`
}

func handlePrune(_ context.Context, _ *mcp.CallToolRequest, input pruneInput) (*mcp.CallToolResult, pruneOutput, error) {
	keys, err := pruner.ParseOperationKeys(input.Operations)
	if err != nil {
		return errResult(err), pruneOutput{}, nil
	}

	format, err := outputFormat(input.Format)
	if err != nil {
		return errResult(err), pruneOutput{}, nil
	}

	doc, err := input.Spec.resolve()
	if err != nil {
		return errResult(err), pruneOutput{}, nil
	}

	p := pruner.New()
	p.Strict = input.Strict || cfg.Strict
	result, err := p.Prune(doc, keys)
	if err != nil {
		return errResult(err), pruneOutput{}, nil
	}

	output := pruneOutput{
		Warnings:         result.Warnings,
		KeptPaths:        result.Stats.KeptPaths,
		KeptOperations:   result.Stats.KeptOperations,
		KeptComponents:   result.Stats.KeptComponents,
		SourceComponents: result.Stats.SourceComponents,
		PrunedComponents: result.Stats.PrunedComponents(),
	}
	output.Selected = makeSlice[string](len(result.Selected))
	for _, key := range result.Selected {
		output.Selected = append(output.Selected, key.String())
	}
	output.Missing = makeSlice[string](len(result.Missing))
	for _, key := range result.Missing {
		output.Missing = append(output.Missing, key.String())
	}

	if input.Output != "" || input.IncludeDocument {
		if format == document.SourceFormatUnknown {
			format = result.Document.SourceFormat
		}
		data, err := result.Document.Marshal(format)
		if err != nil {
			return errResult(err), pruneOutput{}, nil
		}
		if input.Output != "" {
			if err := os.WriteFile(input.Output, data, 0o644); err != nil {
				return errResult(fmt.Errorf("failed to write output file: %w", err)), pruneOutput{}, nil
			}
			output.WrittenTo = input.Output
		}
		if input.IncludeDocument {
			output.Document = string(data)
		}
	}

	return nil, output, nil
}

// outputFormat parses the optional format input. An empty format returns
// SourceFormatUnknown, which defers to the source document's format.
func outputFormat(format string) (document.SourceFormat, error) {
	switch strings.ToLower(format) {
	case "":
		return document.SourceFormatUnknown, nil
	case "yaml", "yml":
		return document.SourceFormatYAML, nil
	case "json":
		return document.SourceFormatJSON, nil
	default:
		return document.SourceFormatUnknown, fmt.Errorf("invalid format %q; valid values: yaml, json", format)
	}
}
