package pruner

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/erraggy/oasprune/oaserrors"
)

// Method is a lowercase HTTP method usable as a path item key.
type Method string

// HTTP methods recognized inside path items.
const (
	MethodGet     Method = "get"
	MethodPut     Method = "put"
	MethodPost    Method = "post"
	MethodDelete  Method = "delete"
	MethodOptions Method = "options"
	MethodHead    Method = "head"
	MethodPatch   Method = "patch"
	MethodTrace   Method = "trace"
)

// ParseMethod parses an HTTP method name in any case. Returns a ConfigError
// for anything that is not a path item method.
func ParseMethod(s string) (Method, error) {
	m := Method(strings.ToLower(s))
	switch m {
	case MethodGet, MethodPut, MethodPost, MethodDelete,
		MethodOptions, MethodHead, MethodPatch, MethodTrace:
		return m, nil
	}
	return "", &oaserrors.ConfigError{
		Option:  "method",
		Value:   s,
		Message: "not a valid HTTP method",
	}
}

// IsMethod reports whether a path item key is an HTTP method rather than a
// field like summary, description, parameters, or servers.
func IsMethod(key string) bool {
	_, err := ParseMethod(key)
	return err == nil
}

// OperationKey identifies one selectable operation: a path template plus an
// HTTP method.
type OperationKey struct {
	// Path is the path template exactly as it appears under paths,
	// including any {placeholders}
	Path string
	// Method is the lowercase HTTP method
	Method Method
}

// String formats the key as "METHOD /path".
func (k OperationKey) String() string {
	return strings.ToUpper(string(k.Method)) + " " + k.Path
}

// ParseOperationKey parses a "METHOD /path" token, e.g. "GET /pets" or
// "post /pets/{petId}". The method and path may be separated by any run of
// whitespace.
func ParseOperationKey(s string) (OperationKey, error) {
	fields := strings.Fields(s)
	if len(fields) != 2 {
		return OperationKey{}, &oaserrors.ConfigError{
			Option:  "operation",
			Value:   s,
			Message: `expected "METHOD /path" (e.g. "GET /pets")`,
		}
	}
	method, err := ParseMethod(fields[0])
	if err != nil {
		return OperationKey{}, err
	}
	if !strings.HasPrefix(fields[1], "/") {
		return OperationKey{}, &oaserrors.ConfigError{
			Option:  "operation",
			Value:   s,
			Message: "path template must start with /",
		}
	}
	return OperationKey{Path: fields[1], Method: method}, nil
}

// ParseOperationKeys parses a list of "METHOD /path" tokens.
func ParseOperationKeys(specs []string) ([]OperationKey, error) {
	keys := make([]OperationKey, 0, len(specs))
	for _, s := range specs {
		key, err := ParseOperationKey(s)
		if err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	return keys, nil
}

// Category names a components group (schemas, parameters, ...).
type Category string

// Component categories defined by OpenAPI 3.x.
const (
	CategorySchemas         Category = "schemas"
	CategoryParameters      Category = "parameters"
	CategoryResponses       Category = "responses"
	CategoryRequestBodies   Category = "requestBodies"
	CategoryHeaders         Category = "headers"
	CategoryExamples        Category = "examples"
	CategoryLinks           Category = "links"
	CategoryCallbacks       Category = "callbacks"
	CategorySecuritySchemes Category = "securitySchemes"
	CategoryPathItems       Category = "pathItems"
)

// componentCategories lists every valid category in conventional order.
var componentCategories = []Category{
	CategorySchemas,
	CategoryParameters,
	CategoryResponses,
	CategoryRequestBodies,
	CategoryHeaders,
	CategoryExamples,
	CategoryLinks,
	CategoryCallbacks,
	CategorySecuritySchemes,
	CategoryPathItems,
}

// knownCategories holds every valid components category.
var knownCategories = func() map[Category]bool {
	m := make(map[Category]bool, len(componentCategories))
	for _, c := range componentCategories {
		m[c] = true
	}
	return m
}()

// Categories returns every components category in conventional order.
func Categories() []Category {
	return append([]Category(nil), componentCategories...)
}

// ComponentKey identifies one reusable component definition.
type ComponentKey struct {
	Category Category
	Name     string
}

// String formats the key as "category/name".
func (k ComponentKey) String() string {
	return string(k.Category) + "/" + k.Name
}

// Ref returns the canonical reference string for this component.
func (k ComponentKey) Ref() string {
	return "#/components/" + string(k.Category) + "/" + k.Name
}

const componentRefPrefix = "#/components/"

// parseComponentRef parses a $ref string of the form
// #/components/<category>/<name>. The name segment may carry a deeper
// pointer suffix (e.g. .../Pet/properties/id), which still attributes the
// reference to the named component. Anything else, including external and
// non-components references, is a MalformedReferenceError.
func parseComponentRef(ref, location string) (ComponentKey, error) {
	if !strings.HasPrefix(ref, componentRefPrefix) {
		return ComponentKey{}, &oaserrors.MalformedReferenceError{
			Ref:      ref,
			Location: location,
			Message:  "only local #/components/... references are supported",
		}
	}

	rest := strings.TrimPrefix(ref, componentRefPrefix)
	segments := strings.Split(rest, "/")
	if len(segments) < 2 || segments[0] == "" || segments[1] == "" {
		return ComponentKey{}, &oaserrors.MalformedReferenceError{
			Ref:      ref,
			Location: location,
			Message:  "expected #/components/<category>/<name>",
		}
	}

	category := Category(unescapePointerSegment(segments[0]))
	if !knownCategories[category] {
		return ComponentKey{}, &oaserrors.MalformedReferenceError{
			Ref:      ref,
			Location: location,
			Message:  fmt.Sprintf("unknown components category %q", segments[0]),
		}
	}

	return ComponentKey{
		Category: category,
		Name:     unescapePointerSegment(segments[1]),
	}, nil
}

// unescapePointerSegment reverses JSON Pointer escaping (RFC 6901) and URL
// percent-encoding in a reference segment. Per RFC 6901, ~1 must be
// unescaped before ~0 so that "~01" decodes to "~1" and not "/".
func unescapePointerSegment(s string) string {
	if decoded, err := url.PathUnescape(s); err == nil {
		s = decoded
	}
	s = strings.ReplaceAll(s, "~1", "/")
	s = strings.ReplaceAll(s, "~0", "~")
	return s
}
