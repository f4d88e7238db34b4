package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oasprune/pruner"
)

func TestValidateOutputFormat(t *testing.T) {
	assert.NoError(t, ValidateOutputFormat(FormatText))
	assert.NoError(t, ValidateOutputFormat(FormatJSON))
	assert.NoError(t, ValidateOutputFormat(FormatYAML))
	assert.Error(t, ValidateOutputFormat("xml"))
	assert.Error(t, ValidateOutputFormat(""))
}

func TestValidateOutputPath(t *testing.T) {
	assert.NoError(t, ValidateOutputPath("out.yaml", []string{"in.yaml"}))
	assert.Error(t, ValidateOutputPath("same.yaml", []string{"same.yaml"}))
	assert.NoError(t, ValidateOutputPath("out.yaml", []string{StdinFilePath}))
}

func TestFormatSpecPath(t *testing.T) {
	assert.Equal(t, "<stdin>", FormatSpecPath(StdinFilePath))
	assert.Equal(t, "api.yaml", FormatSpecPath("api.yaml"))
}

func TestReadOpsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ops.txt")
	content := "# keep these\nGET /pets\n\nPOST /pets\n  DELETE /pets/{petId}  \n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	specs, err := ReadOpsFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"GET /pets", "POST /pets", "DELETE /pets/{petId}"}, specs)
}

func TestReadOpsFile_Missing(t *testing.T) {
	_, err := ReadOpsFile(filepath.Join(t.TempDir(), "nope.txt"))
	assert.Error(t, err)
}

func TestCollectOperations(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ops.txt")
	require.NoError(t, os.WriteFile(path, []byte("DELETE /pets/{petId}\n"), 0o600))

	keys, err := CollectOperations(
		[]string{"GET /pets"},
		[]string{"POST /pets"},
		path,
	)
	require.NoError(t, err)
	assert.Equal(t, []pruner.OperationKey{
		{Path: "/pets", Method: pruner.MethodGet},
		{Path: "/pets", Method: pruner.MethodPost},
		{Path: "/pets/{petId}", Method: pruner.MethodDelete},
	}, keys)
}

func TestCollectOperations_Invalid(t *testing.T) {
	_, err := CollectOperations([]string{"nonsense"}, nil, "")
	assert.Error(t, err)
}

func TestOpList(t *testing.T) {
	var ops opList
	require.NoError(t, ops.Set("GET /pets"))
	require.NoError(t, ops.Set("POST /pets"))
	assert.Equal(t, opList{"GET /pets", "POST /pets"}, ops)
	assert.Equal(t, "GET /pets, POST /pets", ops.String())
}
