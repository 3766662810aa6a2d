package http

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
)

// Header is a single request header. A RequestSpec keeps headers in the order
// they were added and allows duplicates.
type Header struct {
	Name  string
	Value string
}

// Pair is a key/value entry accepted by AddHeaders and AddQueries.
type Pair struct {
	Key   string
	Value interface{}
}

// RequestSpec accumulates the pieces of an outbound request until Resolve
// folds them into a ResolvedRequest.
//
// Every configuration method returns the same RequestSpec to allow chaining.
// Single-valued setters overwrite the previous value; segment, query and
// header setters add entries without clearing earlier ones.
//
// A RequestSpec is not safe for concurrent use.
type RequestSpec struct {
	method           string
	explicitURI      string
	baseURI          string
	resourceTemplate string
	hasResource      bool

	segments *keyMap
	query    *keyMap
	headers  []Header

	authorization string
	content       *Content

	// err holds the first failed segment registration. Errors from
	// single-valued setters live in settingErrs so a later valid call
	// replaces them along with the value.
	err         error
	settingErrs map[string]error
}

const (
	settingURI     = "uri"
	settingBaseURI = "base URI"
	settingAuth    = "authentication"
	settingContent = "content"
)

var settingOrder = []string{settingURI, settingBaseURI, settingAuth, settingContent}

// NewRequestSpec creates an empty RequestSpec.
//
// Example:
//
//	spec := http.NewRequestSpec().
//	    SetBaseURI("https://api.example.com/").
//	    SetResourceURI("users/{id}").
//	    AddURISegment("id", 42).
//	    AddQuery("active", true)
//
//	req, err := spec.Resolve()
func NewRequestSpec() *RequestSpec {
	return &RequestSpec{
		segments:    newKeyMap(),
		query:       newKeyMap(),
		settingErrs: make(map[string]error),
	}
}

// NewRequestSpecFor creates a RequestSpec with a method and an explicit URI.
func NewRequestSpecFor(method, uri string) *RequestSpec {
	return NewRequestSpec().SetMethod(method).SetURI(uri)
}

// Err returns the first configuration error recorded by the builder, if any.
func (s *RequestSpec) Err() error {
	if s.err != nil {
		return s.err
	}
	for _, name := range settingOrder {
		if err := s.settingErrs[name]; err != nil {
			return err
		}
	}
	return nil
}

func (s *RequestSpec) fail(err error) *RequestSpec {
	if s.err == nil {
		s.err = err
	}
	return s
}

func (s *RequestSpec) failSetting(name string, err error) *RequestSpec {
	s.settingErrs[name] = err
	return s
}

// SetMethod sets the HTTP verb. It is upper-cased; an empty verb resolves to GET.
func (s *RequestSpec) SetMethod(method string) *RequestSpec {
	s.method = strings.ToUpper(strings.TrimSpace(method))
	return s
}

// SetURI sets an explicit URI. When present it seeds resolution instead of
// the base URI and resource template.
func (s *RequestSpec) SetURI(uri string) *RequestSpec {
	if _, err := url.Parse(uri); err != nil || strings.TrimSpace(uri) == "" {
		return s.failSetting(settingURI, invalidURI(uri, err))
	}
	delete(s.settingErrs, settingURI)
	s.explicitURI = uri
	return s
}

// SetURL sets an explicit URI from a parsed URL. url.URL.String escapes
// { and } in the path, so they are restored to keep {name} placeholders
// usable; a path that really carried %7B or %7D gets literal braces back.
func (s *RequestSpec) SetURL(u *url.URL) *RequestSpec {
	if u == nil {
		return s.failSetting(settingURI, invalidArgument("nil URL"))
	}
	return s.SetURI(templateBraces.Replace(u.String()))
}

var templateBraces = strings.NewReplacer("%7B", "{", "%7D", "}")

// SetBaseURI sets the base half of a base URI and resource template pair.
func (s *RequestSpec) SetBaseURI(uri string) *RequestSpec {
	u, err := url.Parse(uri)
	if err != nil || !u.IsAbs() {
		return s.failSetting(settingBaseURI, invalidURI(uri, err))
	}
	delete(s.settingErrs, settingBaseURI)
	s.baseURI = uri
	return s
}

// SetResourceURI sets the resource template, which may contain {name}
// placeholders filled in by AddURISegment.
func (s *RequestSpec) SetResourceURI(template string) *RequestSpec {
	s.resourceTemplate = template
	s.hasResource = true
	return s
}

// AddURISegment registers a substitution for the {name} placeholder.
// An empty name or a nil value records ErrInvalidArgument.
func (s *RequestSpec) AddURISegment(name string, value interface{}) *RequestSpec {
	if name == "" {
		return s.fail(invalidArgument("URI segment name is empty"))
	}
	if value == nil {
		return s.fail(invalidArgument("URI segment %q has no value", name))
	}
	s.segments.set(name, fmt.Sprint(value))
	return s
}

// AddHeader appends a header. Entries with an empty name or a nil value are
// skipped.
func (s *RequestSpec) AddHeader(name string, value interface{}) *RequestSpec {
	if name == "" || value == nil {
		return s
	}
	s.headers = append(s.headers, Header{Name: name, Value: fmt.Sprint(value)})
	return s
}

// AddHeaderList parses a comma-separated list of "Name: value" entries.
// Each entry is split on its first colon and both halves are trimmed.
// Malformed entries are skipped.
func (s *RequestSpec) AddHeaderList(raw string) *RequestSpec {
	for _, header := range strings.Split(raw, ",") {
		parts := strings.SplitN(header, ":", 2)
		if len(parts) == 2 {
			s.AddHeader(strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]))
		}
	}
	return s
}

// AddHeaders appends each pair as a header, in order.
func (s *RequestSpec) AddHeaders(pairs ...Pair) *RequestSpec {
	for _, p := range pairs {
		s.AddHeader(p.Key, p.Value)
	}
	return s
}

// AddQuery sets a query parameter. Keys compare case-insensitively, the
// first spelling is kept and the last value wins. Entries with an empty key or a nil value are
// skipped.
func (s *RequestSpec) AddQuery(key string, value interface{}) *RequestSpec {
	if key == "" || value == nil {
		return s
	}
	s.query.set(key, fmt.Sprint(value))
	return s
}

// AddQueries sets each pair as a query parameter, in order.
func (s *RequestSpec) AddQueries(pairs ...Pair) *RequestSpec {
	for _, p := range pairs {
		s.AddQuery(p.Key, p.Value)
	}
	return s
}

// AddQueryMap sets every entry of params as a query parameter. Keys are
// applied in sorted order so the resulting query string is stable.
func (s *RequestSpec) AddQueryMap(params map[string]string) *RequestSpec {
	keys := make([]string, 0, len(params))
	for key := range params {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		s.AddQuery(key, params[key])
	}
	return s
}

// SetAuthentication sets the Authorization header value to "scheme credential",
// replacing earlier authentication. It takes precedence over any Authorization
// header added with AddHeader.
func (s *RequestSpec) SetAuthentication(scheme, credential string) *RequestSpec {
	if scheme == "" {
		return s.failSetting(settingAuth, invalidArgument("authentication scheme is empty"))
	}
	delete(s.settingErrs, settingAuth)
	s.authorization = scheme
	if credential != "" {
		s.authorization += " " + credential
	}
	return s
}

// SetBasicAuth sets Basic authentication from a user name and password.
func (s *RequestSpec) SetBasicAuth(username, password string) *RequestSpec {
	token := base64.StdEncoding.EncodeToString([]byte(username + ":" + password))
	return s.SetAuthentication("Basic", token)
}

// SetBearerToken sets Bearer authentication.
func (s *RequestSpec) SetBearerToken(token string) *RequestSpec {
	return s.SetAuthentication("Bearer", token)
}

// SetContent attaches a request body. A nil content clears the body.
func (s *RequestSpec) SetContent(content *Content) *RequestSpec {
	delete(s.settingErrs, settingContent)
	s.content = content.clone()
	return s
}

// SetJSONContent serializes v as the request body with the JSON media type.
// See JSONContent for how strings and byte slices are treated.
func (s *RequestSpec) SetJSONContent(v interface{}, options ...JSONOption) *RequestSpec {
	content, err := JSONContent(v, options...)
	if err != nil {
		return s.failSetting(settingContent, invalidArgument("json content: %v", err))
	}
	delete(s.settingErrs, settingContent)
	s.content = content
	return s
}

// SetFormContent sets a URL-encoded form body.
func (s *RequestSpec) SetFormContent(data map[string]string) *RequestSpec {
	delete(s.settingErrs, settingContent)
	s.content = FormContent(data)
	return s
}

func (s *RequestSpec) resolvedMethod() string {
	if s.method == "" {
		return http.MethodGet
	}
	return s.method
}
