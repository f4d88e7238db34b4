package document

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadFixture(t *testing.T, path string) *Document {
	t.Helper()
	doc, err := NewLoader().Load(path)
	require.NoError(t, err)
	return doc
}

func TestMarshalYAMLPreservesOrder(t *testing.T) {
	doc := loadFixture(t, "../testdata/petstore.yaml")
	out, err := doc.MarshalYAML()
	require.NoError(t, err)

	text := string(out)
	// Top-level keys stay in source order, not alphabetical.
	openapiIdx := strings.Index(text, "openapi:")
	infoIdx := strings.Index(text, "info:")
	pathsIdx := strings.Index(text, "paths:")
	componentsIdx := strings.Index(text, "components:")
	require.NotEqual(t, -1, openapiIdx)
	assert.Less(t, openapiIdx, infoIdx)
	assert.Less(t, infoIdx, pathsIdx)
	assert.Less(t, pathsIdx, componentsIdx)
}

func TestMarshalJSONOrderAndTypes(t *testing.T) {
	src := `openapi: 3.0.3
info:
  title: Types
  version: '1.0'
paths: {}
components:
  schemas:
    Thing:
      type: object
      properties:
        count:
          type: integer
          maximum: 100
        ratio:
          type: number
          default: 0.5
        active:
          type: boolean
          default: true
        note:
          type: string
          default: null
`
	doc, err := NewLoader().LoadBytes([]byte(src))
	require.NoError(t, err)

	out, err := doc.MarshalJSON()
	require.NoError(t, err)

	// Scalars keep their YAML types in JSON.
	text := string(out)
	assert.Contains(t, text, `"maximum":100`)
	assert.Contains(t, text, `"default":0.5`)
	assert.Contains(t, text, `"default":true`)
	assert.Contains(t, text, `"default":null`)
	// Quoted YAML scalars stay strings.
	assert.Contains(t, text, `"version":"1.0"`)

	// Output is valid JSON.
	var parsed map[string]any
	require.NoError(t, json.Unmarshal(out, &parsed))
	assert.Equal(t, "3.0.3", parsed["openapi"])
}

func TestMarshalJSONIndent(t *testing.T) {
	doc := loadFixture(t, "../testdata/petstore.yaml")
	out, err := doc.MarshalJSONIndent("", "  ")
	require.NoError(t, err)

	var parsed map[string]any
	require.NoError(t, json.Unmarshal(out, &parsed))
	assert.Contains(t, string(out), "\n  \"info\"")
}

func TestMarshalByFormat(t *testing.T) {
	doc := loadFixture(t, "../testdata/petstore.yaml")

	yamlOut, err := doc.Marshal(SourceFormatYAML)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(yamlOut), "openapi:"))

	jsonOut, err := doc.Marshal(SourceFormatJSON)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(jsonOut), "{"))
}

func TestMarshalEmptyDocument(t *testing.T) {
	d := &Document{}
	_, err := d.MarshalYAML()
	assert.Error(t, err)
	_, err = d.MarshalJSON()
	assert.Error(t, err)
}
