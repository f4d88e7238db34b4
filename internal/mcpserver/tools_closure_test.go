package mcpserver

import (
	"context"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClosureTool(t *testing.T) {
	input := closureInput{
		Spec:       specInput{Content: testSpecYAML},
		Operations: []string{"GET /pets"},
	}
	_, output, err := handleClosure(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)

	assert.Equal(t, []string{"GET /pets"}, output.Selected)
	assert.Empty(t, output.Missing)
	assert.Equal(t, 2, output.Total)
	assert.Equal(t, 2, output.Returned)
	require.Len(t, output.Components, 2)
	assert.Equal(t, closureComponent{
		Category: "schemas",
		Name:     "Pets",
		Ref:      "#/components/schemas/Pets",
	}, output.Components[0])
	assert.Equal(t, "Pet", output.Components[1].Name)
	assert.Equal(t, map[string]int{"schemas": 2}, output.ByCategory)
	assert.Empty(t, output.Operations)
}

func TestClosureTool_Detail(t *testing.T) {
	input := closureInput{
		Spec:       specInput{Content: testSpecYAML},
		Operations: []string{"GET /pets", "GET /orders"},
		Detail:     true,
	}
	_, output, err := handleClosure(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)

	require.Len(t, output.Operations, 2)
	assert.Equal(t, "GET /pets", output.Operations[0].Operation)
	assert.Equal(t, []string{"#/components/schemas/Pets"}, output.Operations[0].Refs)
	assert.Equal(t, "GET /orders", output.Operations[1].Operation)
	assert.Equal(t, []string{"#/components/schemas/Order"}, output.Operations[1].Refs)
	assert.Equal(t, 3, output.Total)
}

func TestClosureTool_Pagination(t *testing.T) {
	input := closureInput{
		Spec:       specInput{Content: testSpecYAML},
		Operations: []string{"GET /pets", "GET /orders"},
		Limit:      2,
		Offset:     1,
	}
	_, output, err := handleClosure(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)

	assert.Equal(t, 3, output.Total)
	assert.Equal(t, 2, output.Returned)
	require.Len(t, output.Components, 2)
	assert.NotEqual(t, "Pets", output.Components[0].Name)
}

func TestClosureTool_NoOperations(t *testing.T) {
	input := closureInput{
		Spec: specInput{Content: testSpecYAML},
	}
	result, _, err := handleClosure(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.IsError)
}
