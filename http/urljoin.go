package http

import (
	"net/url"
	"strings"
)

const separators = "/\\"

// CombineURL joins URI parts with exactly one "/" between each pair. Trailing
// separators are trimmed from the left part and leading separators from the
// right part. Blank parts are skipped.
//
// Example:
//
//	http.CombineURL("https://api.example.com/", "/users") // https://api.example.com/users
func CombineURL(parts ...string) string {
	var b strings.Builder
	for _, part := range parts {
		if strings.TrimSpace(part) == "" {
			continue
		}
		if b.Len() == 0 {
			b.WriteString(strings.TrimRight(part, separators))
			continue
		}
		b.WriteByte('/')
		b.WriteString(strings.TrimLeft(part, separators))
	}
	return b.String()
}

// escapeData percent-encodes s so that only RFC 3986 unreserved characters
// (ALPHA / DIGIT / "-" / "." / "_" / "~") are left as-is. Spaces become %20.
func escapeData(s string) string {
	// QueryEscape already encodes a literal '+' as %2B, so any '+' left in the
	// output stands for a space.
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// encodeQuery renders entries as k1=v1&k2=v2 with keys and values escaped
// independently.
func encodeQuery(query *keyMap) string {
	var b strings.Builder
	query.each(func(key, value string) {
		if b.Len() > 0 {
			b.WriteByte('&')
		}
		b.WriteString(escapeData(key))
		b.WriteByte('=')
		b.WriteString(escapeData(value))
	})
	return b.String()
}

// appendQuery merges an encoded query string into uri. An existing query
// component is extended with "&" instead of opening a second "?", and a
// fragment stays at the end.
func appendQuery(uri, encoded string) string {
	if encoded == "" {
		return uri
	}

	fragment := ""
	if i := strings.IndexByte(uri, '#'); i >= 0 {
		uri, fragment = uri[:i], uri[i:]
	}

	switch i := strings.IndexByte(uri, '?'); {
	case i < 0:
		uri += "?" + encoded
	case strings.HasSuffix(uri, "?") || strings.HasSuffix(uri, "&"):
		uri += encoded
	default:
		uri += "&" + encoded
	}

	return uri + fragment
}
