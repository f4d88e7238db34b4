package document

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oasprune/oaserrors"
)

func TestLoadYAMLFile(t *testing.T) {
	loader := NewLoader()
	doc, err := loader.Load("../testdata/petstore.yaml")
	require.NoError(t, err)

	assert.Equal(t, "3.0.3", doc.Version)
	assert.Equal(t, SourceFormatYAML, doc.SourceFormat)
	assert.Equal(t, "../testdata/petstore.yaml", doc.SourcePath)
	assert.Greater(t, doc.SourceSize, int64(0))

	require.NotNil(t, doc.Paths())
	assert.Contains(t, MapKeys(doc.Paths()), "/pets")
	assert.Contains(t, MapKeys(doc.Paths()), "/pets/{petId}")
}

func TestLoadBytesJSON(t *testing.T) {
	data := []byte(`{"openapi": "3.1.0", "info": {"title": "T", "version": "1"}, "paths": {}}`)
	loader := NewLoader()
	doc, err := loader.LoadBytes(data)
	require.NoError(t, err)

	assert.Equal(t, "3.1.0", doc.Version)
	assert.Equal(t, SourceFormatJSON, doc.SourceFormat)
	assert.Equal(t, "LoadBytes.json", doc.SourcePath)
}

func TestLoadReader(t *testing.T) {
	src := "openapi: 3.0.0\ninfo:\n  title: T\n  version: '1'\npaths: {}\n"
	loader := NewLoader()
	doc, err := loader.LoadReader(strings.NewReader(src))
	require.NoError(t, err)

	assert.Equal(t, "3.0.0", doc.Version)
	assert.Equal(t, "LoadReader.yaml", doc.SourcePath)
}

func TestLoadRejectsSwagger2(t *testing.T) {
	data := []byte("swagger: '2.0'\ninfo:\n  title: Old\n  version: '1'\npaths: {}\n")
	loader := NewLoader()
	_, err := loader.LoadBytes(data)
	require.Error(t, err)
	assert.True(t, errors.Is(err, oaserrors.ErrParse))
	assert.Contains(t, err.Error(), "Swagger 2.0")
}

func TestLoadRejectsMissingVersion(t *testing.T) {
	data := []byte("info:\n  title: Mystery\n  version: '1'\n")
	loader := NewLoader()
	_, err := loader.LoadBytes(data)
	require.Error(t, err)
	assert.True(t, errors.Is(err, oaserrors.ErrParse))
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	loader := NewLoader()
	_, err := loader.LoadBytes([]byte("openapi: [unclosed"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, oaserrors.ErrParse))
}

func TestLoadRejectsNonMappingRoot(t *testing.T) {
	loader := NewLoader()
	_, err := loader.LoadBytes([]byte("- just\n- a\n- list\n"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, oaserrors.ErrParse))
}

func TestLoadFromURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write([]byte("openapi: 3.0.2\ninfo:\n  title: Remote\n  version: '1'\npaths: {}\n"))
	}))
	defer srv.Close()

	loader := NewLoader()
	doc, err := loader.Load(srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "3.0.2", doc.Version)
	assert.Equal(t, SourceFormatYAML, doc.SourceFormat)
}

func TestLoadFromURLHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	loader := NewLoader()
	_, err := loader.Load(srv.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 404")
}

func TestOperationLookup(t *testing.T) {
	loader := NewLoader()
	doc, err := loader.Load("../testdata/petstore.yaml")
	require.NoError(t, err)

	op := doc.Operation("/pets", "get")
	require.NotNil(t, op)
	assert.Equal(t, "listPets", MapGet(op, "operationId").Value)

	assert.Nil(t, doc.Operation("/pets", "patch"))
	assert.Nil(t, doc.Operation("/nope", "get"))
}

func TestComponentLookup(t *testing.T) {
	loader := NewLoader()
	doc, err := loader.Load("../testdata/petstore.yaml")
	require.NoError(t, err)

	pet := doc.Component("schemas", "Pet")
	require.NotNil(t, pet)
	assert.Equal(t, "object", MapGet(pet, "type").Value)

	assert.Nil(t, doc.Component("schemas", "Ghost"))
	assert.Nil(t, doc.Component("callbacks", "Pet"))
}

func TestAliasDereference(t *testing.T) {
	src := `openapi: 3.0.3
info:
  title: Anchored
  version: '1'
paths: {}
components:
  schemas:
    Base: &base
      type: object
    Copy: *base
`
	loader := NewLoader()
	doc, err := loader.LoadBytes([]byte(src))
	require.NoError(t, err)

	copied := doc.Component("schemas", "Copy")
	require.NotNil(t, copied)
	assert.Equal(t, yaml.MappingNode, copied.Kind)
	assert.Equal(t, "object", MapGet(copied, "type").Value)

	// Aliases are gone, so marshaling never emits a dangling alias.
	out, err := doc.MarshalYAML()
	require.NoError(t, err)
	assert.NotContains(t, string(out), "*base")
}

func TestMapHelpers(t *testing.T) {
	var node yaml.Node
	require.NoError(t, yaml.Unmarshal([]byte("b: 1\na: 2\nc: 3\n"), &node))
	body := node.Content[0]

	assert.Equal(t, []string{"b", "a", "c"}, MapKeys(body))
	assert.Equal(t, "2", MapGet(body, "a").Value)
	assert.Nil(t, MapGet(body, "z"))
	assert.Nil(t, MapGet(nil, "a"))
	assert.Nil(t, MapKeys(nil))
}

func TestDeepCopy(t *testing.T) {
	var node yaml.Node
	require.NoError(t, yaml.Unmarshal([]byte("a:\n  b: [1, 2]\n  c: x\n"), &node))
	original := node.Content[0]

	copied := DeepCopy(original)
	require.NotSame(t, original, copied)
	assert.Equal(t, MapKeys(original), MapKeys(copied))

	// Mutating the copy leaves the original untouched.
	inner := MapGet(copied, "a")
	MapGet(inner, "c").Value = "changed"
	assert.Equal(t, "x", MapGet(MapGet(original, "a"), "c").Value)

	assert.Nil(t, DeepCopy(nil))
}

func TestRefValue(t *testing.T) {
	var node yaml.Node
	require.NoError(t, yaml.Unmarshal([]byte("$ref: '#/components/schemas/Pet'\n"), &node))
	ref, ok := RefValue(node.Content[0])
	require.True(t, ok)
	assert.Equal(t, "#/components/schemas/Pet", ref)

	var plain yaml.Node
	require.NoError(t, yaml.Unmarshal([]byte("type: object\n"), &plain))
	_, ok = RefValue(plain.Content[0])
	assert.False(t, ok)
}
