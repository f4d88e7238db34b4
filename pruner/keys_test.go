package pruner

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oasprune/oaserrors"
)

func TestParseMethod(t *testing.T) {
	for _, s := range []string{"get", "GET", "Post", "DELETE", "trace"} {
		m, err := ParseMethod(s)
		require.NoError(t, err, s)
		assert.NotEmpty(t, m)
	}

	_, err := ParseMethod("FETCH")
	require.Error(t, err)
	assert.True(t, errors.Is(err, oaserrors.ErrConfig))
}

func TestIsMethod(t *testing.T) {
	assert.True(t, IsMethod("get"))
	assert.True(t, IsMethod("patch"))
	assert.False(t, IsMethod("parameters"))
	assert.False(t, IsMethod("summary"))
	assert.False(t, IsMethod("x-internal"))
}

func TestParseOperationKey(t *testing.T) {
	key, err := ParseOperationKey("GET /pets")
	require.NoError(t, err)
	assert.Equal(t, OperationKey{Path: "/pets", Method: MethodGet}, key)
	assert.Equal(t, "GET /pets", key.String())

	key, err = ParseOperationKey("post   /pets/{petId}")
	require.NoError(t, err)
	assert.Equal(t, "/pets/{petId}", key.Path)
	assert.Equal(t, MethodPost, key.Method)

	for _, bad := range []string{"", "GET", "GET/pets", "GET pets", "FETCH /pets", "GET /pets extra"} {
		_, err := ParseOperationKey(bad)
		assert.Error(t, err, "input %q", bad)
		assert.True(t, errors.Is(err, oaserrors.ErrConfig), "input %q", bad)
	}
}

func TestParseOperationKeys(t *testing.T) {
	keys, err := ParseOperationKeys([]string{"GET /a", "POST /b"})
	require.NoError(t, err)
	require.Len(t, keys, 2)
	assert.Equal(t, "/a", keys[0].Path)
	assert.Equal(t, "/b", keys[1].Path)

	_, err = ParseOperationKeys([]string{"GET /a", "bogus"})
	assert.Error(t, err)
}

func TestComponentKeyRef(t *testing.T) {
	key := ComponentKey{Category: CategorySchemas, Name: "Pet"}
	assert.Equal(t, "#/components/schemas/Pet", key.Ref())
	assert.Equal(t, "schemas/Pet", key.String())
}

func TestParseComponentRef(t *testing.T) {
	tests := []struct {
		ref      string
		expected ComponentKey
	}{
		{"#/components/schemas/Pet", ComponentKey{CategorySchemas, "Pet"}},
		{"#/components/responses/Error", ComponentKey{CategoryResponses, "Error"}},
		{"#/components/securitySchemes/ApiKey", ComponentKey{CategorySecuritySchemes, "ApiKey"}},
		// Deeper pointer suffixes attribute to the named component.
		{"#/components/schemas/Pet/properties/id", ComponentKey{CategorySchemas, "Pet"}},
		// JSON Pointer escaping in names.
		{"#/components/schemas/a~1b", ComponentKey{CategorySchemas, "a/b"}},
		{"#/components/schemas/a~01", ComponentKey{CategorySchemas, "a~1"}},
		// URL percent-encoding.
		{"#/components/schemas/My%20Pet", ComponentKey{CategorySchemas, "My Pet"}},
	}

	for _, tt := range tests {
		key, err := parseComponentRef(tt.ref, "test")
		require.NoError(t, err, tt.ref)
		assert.Equal(t, tt.expected, key, tt.ref)
	}
}

func TestParseComponentRefMalformed(t *testing.T) {
	malformed := []string{
		"",
		"Pet",
		"#/definitions/Pet",
		"#/paths/~1pets",
		"#/components",
		"#/components/",
		"#/components/schemas",
		"#/components/schemas/",
		"#/components/widgets/Pet",
		"other.yaml#/components/schemas/Pet",
		"https://example.com/api.yaml#/components/schemas/Pet",
	}

	for _, ref := range malformed {
		_, err := parseComponentRef(ref, "test")
		require.Error(t, err, "ref %q", ref)
		assert.True(t, errors.Is(err, oaserrors.ErrMalformedReference), "ref %q", ref)
	}
}
