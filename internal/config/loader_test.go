package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wesleyorama2/reqspec/http"
)

const sampleYAML = `
method: post
baseUri: https://api.example.com/v1/
resource: /users/{id}/posts
segments:
  id: 42
query:
  limit: 10
  active: true
headers:
  - "Accept: application/json"
  - "X-Trace: abc123"
auth:
  scheme: Bearer
  credential: token123
json:
  title: Hello
extract:
  postId: $.id
`

func TestLoadRequestFile_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "create-post.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0o644))

	file, err := LoadRequestFile(path)
	require.NoError(t, err)
	assert.Equal(t, "post", file.Method)
	assert.Equal(t, []string{"Accept: application/json", "X-Trace: abc123"}, file.Headers)
	assert.Equal(t, map[string]string{"postId": "$.id"}, file.Extract)

	req, err := file.Apply(http.NewRequestSpec()).Resolve()
	require.NoError(t, err)

	assert.Equal(t, "POST", req.Method())
	assert.Equal(t, "https://api.example.com/v1/users/42/posts?active=true&limit=10", req.String())
	assert.Equal(t, "Bearer token123", req.Authorization())
	assert.Equal(t, "abc123", req.Header().Get("X-Trace"))
	require.NotNil(t, req.Content())
	assert.Equal(t, http.JSONMediaType, req.Content().Type)
	assert.JSONEq(t, `{"title":"Hello"}`, string(req.Content().Data))
}

func TestParseRequestFile_JSON(t *testing.T) {
	data := `{
		"uri": "https://api.example.com/search",
		"query": {"q": "go lang", "page": 2},
		"basic": {"username": "aladdin", "password": "opensesame"},
		"form": {"a": "1"}
	}`

	file, err := ParseRequestFile([]byte(data), "search.json")
	require.NoError(t, err)

	req, err := file.Apply(http.NewRequestSpec()).Resolve()
	require.NoError(t, err)
	assert.Equal(t, "GET", req.Method())
	assert.Equal(t, "https://api.example.com/search?page=2&q=go%20lang", req.String())
	assert.Equal(t, "Basic YWxhZGRpbjpvcGVuc2VzYW1l", req.Authorization())
	assert.Equal(t, http.FormMediaType, req.Content().Type)
	assert.Equal(t, "a=1", string(req.Content().Data))
}

func TestApply_FlagsOverrideFile(t *testing.T) {
	file, err := ParseRequestFile([]byte("uri: https://a.example.com\nmethod: GET\n"), "req.yml")
	require.NoError(t, err)

	spec := file.Apply(http.NewRequestSpec()).
		SetMethod("DELETE").
		SetURI("https://b.example.com/items/1")

	req, err := spec.Resolve()
	require.NoError(t, err)
	assert.Equal(t, "DELETE", req.Method())
	assert.Equal(t, "https://b.example.com/items/1", req.String())
}

func TestParseRequestFile_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
		path string
	}{
		{name: "empty", data: "  \n", path: "r.yaml"},
		{name: "null document", data: "~", path: "r.yaml"},
		{name: "malformed yaml", data: "uri: [unterminated", path: "r.yaml"},
		{name: "malformed json", data: `{"uri": `, path: "r.json"},
		{name: "no uri", data: "method: GET", path: "r.yaml"},
		{name: "unknown field", data: "uri: https://x.example.com\nurl: nope", path: "r.yaml"},
		{name: "json and form", data: "uri: https://x.example.com\njson: {}\nform: {a: b}", path: "r.yaml"},
		{name: "header without colon", data: "uri: https://x.example.com\nheaders: [nocolon]", path: "r.yaml"},
		{name: "auth without scheme", data: "uri: https://x.example.com\nauth: {credential: abc}", path: "r.yaml"},
		{name: "segment object value", data: "uri: https://x.example.com\nsegments: {id: {a: 1}}", path: "r.yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRequestFile([]byte(tt.data), tt.path)
			assert.Error(t, err)
		})
	}
}

func TestLoadRequestFile_NotFound(t *testing.T) {
	_, err := LoadRequestFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
