package http

import (
	"testing"
)

func TestCombineURL(t *testing.T) {
	tests := []struct {
		name     string
		parts    []string
		expected string
	}{
		{
			name:     "Path without leading slash",
			parts:    []string{"https://example.com", "api/users"},
			expected: "https://example.com/api/users",
		},
		{
			name:     "Path with leading slash",
			parts:    []string{"https://example.com", "/api/users"},
			expected: "https://example.com/api/users",
		},
		{
			name:     "BaseURL with trailing slash, path without leading slash",
			parts:    []string{"https://example.com/", "api/users"},
			expected: "https://example.com/api/users",
		},
		{
			name:     "BaseURL with trailing slash, path with leading slash",
			parts:    []string{"https://example.com/", "/api/users"},
			expected: "https://example.com/api/users",
		},
		{
			name:     "Backslashes are separators",
			parts:    []string{"https://example.com\\", "\\api"},
			expected: "https://example.com/api",
		},
		{
			name:     "Blank parts are skipped",
			parts:    []string{"https://example.com", "", "  ", "v1", "users/"},
			expected: "https://example.com/v1/users/",
		},
		{
			name:     "No parts",
			parts:    nil,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CombineURL(tt.parts...); got != tt.expected {
				t.Errorf("CombineURL() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestEscapeData(t *testing.T) {
	tests := map[string]string{
		"plain":      "plain",
		"AZaz09-._~": "AZaz09-._~",
		"with space": "with%20space",
		"a+b":        "a%2Bb",
		"a/b?c#d":    "a%2Fb%3Fc%23d",
		"{id}":       "%7Bid%7D",
		"key=val&x":  "key%3Dval%26x",
		"café":       "caf%C3%A9",
		"100%":       "100%25",
		":@!$'()*,;": "%3A%40%21%24%27%28%29%2A%2C%3B",
	}

	for in, want := range tests {
		if got := escapeData(in); got != want {
			t.Errorf("escapeData(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestAppendQuery(t *testing.T) {
	tests := []struct {
		uri      string
		encoded  string
		expected string
	}{
		{"https://x.example.com/a", "k=v", "https://x.example.com/a?k=v"},
		{"https://x.example.com/a?b=1", "k=v", "https://x.example.com/a?b=1&k=v"},
		{"https://x.example.com/a?b=1&", "k=v", "https://x.example.com/a?b=1&k=v"},
		{"https://x.example.com/a?", "k=v", "https://x.example.com/a?k=v"},
		{"https://x.example.com/a#frag", "k=v", "https://x.example.com/a?k=v#frag"},
		{"https://x.example.com/a?b=1#frag", "k=v", "https://x.example.com/a?b=1&k=v#frag"},
		{"https://x.example.com/a", "", "https://x.example.com/a"},
	}

	for _, tt := range tests {
		if got := appendQuery(tt.uri, tt.encoded); got != tt.expected {
			t.Errorf("appendQuery(%q, %q) = %q, want %q", tt.uri, tt.encoded, got, tt.expected)
		}
	}
}
