package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oasprune/pruner"
)

type closureInput struct {
	Spec       specInput `json:"spec"             jsonschema:"The OAS document to analyze"`
	Operations []string  `json:"operations"       jsonschema:"Operations to resolve, one METHOD /path per entry (e.g. GET /pets)"`
	Strict     bool      `json:"strict,omitempty" jsonschema:"Fail when any requested operation does not exist"`
	Detail     bool      `json:"detail,omitempty" jsonschema:"Include the direct references of each selected operation"`
	Limit      int       `json:"limit,omitempty"  jsonschema:"Maximum number of closure entries to return (default 100)"`
	Offset     int       `json:"offset,omitempty" jsonschema:"Skip the first N closure entries (for pagination)"`
}

type closureComponent struct {
	Category string `json:"category"`
	Name     string `json:"name"`
	Ref      string `json:"ref"`
}

type operationRefs struct {
	Operation string   `json:"operation"`
	Refs      []string `json:"refs,omitempty"`
}

type closureOutput struct {
	Selected   []string           `json:"selected"`
	Missing    []string           `json:"missing,omitempty"`
	Warnings   []string           `json:"warnings,omitempty"`
	Total      int                `json:"total"`
	Returned   int                `json:"returned"`
	Components []closureComponent `json:"components,omitempty"`
	ByCategory map[string]int     `json:"by_category,omitempty"`
	Operations []operationRefs    `json:"operations,omitempty"`
}

func handleClosure(_ context.Context, _ *mcp.CallToolRequest, input closureInput) (*mcp.CallToolResult, closureOutput, error) {
	keys, err := pruner.ParseOperationKeys(input.Operations)
	if err != nil {
		return errResult(err), closureOutput{}, nil
	}

	doc, err := input.Spec.resolve()
	if err != nil {
		return errResult(err), closureOutput{}, nil
	}

	p := pruner.New()
	p.Strict = input.Strict || cfg.Strict
	report, err := p.Report(doc, keys)
	if err != nil {
		return errResult(err), closureOutput{}, nil
	}

	output := closureOutput{
		Warnings: report.Warnings,
		Total:    len(report.Closure),
	}
	output.Selected = makeSlice[string](len(report.Selected))
	for _, key := range report.Selected {
		output.Selected = append(output.Selected, key.String())
	}
	output.Missing = makeSlice[string](len(report.Missing))
	for _, key := range report.Missing {
		output.Missing = append(output.Missing, key.String())
	}

	paged := paginate(report.Closure, input.Offset, input.Limit)
	output.Returned = len(paged)
	output.Components = makeSlice[closureComponent](len(paged))
	for _, key := range paged {
		output.Components = append(output.Components, closureComponent{
			Category: string(key.Category),
			Name:     key.Name,
			Ref:      key.Ref(),
		})
	}

	if len(report.ByCategory) > 0 {
		output.ByCategory = make(map[string]int, len(report.ByCategory))
		for category, names := range report.ByCategory {
			output.ByCategory[string(category)] = len(names)
		}
	}

	if input.Detail {
		output.Operations = makeSlice[operationRefs](len(report.Operations))
		for _, op := range report.Operations {
			refs := makeSlice[string](len(op.Refs))
			for _, ref := range op.Refs {
				refs = append(refs, ref.Ref())
			}
			output.Operations = append(output.Operations, operationRefs{
				Operation: op.Key.String(),
				Refs:      refs,
			})
		}
	}

	return nil, output, nil
}
