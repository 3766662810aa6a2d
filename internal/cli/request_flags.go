package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/wesleyorama2/reqspec/http"
	"github.com/wesleyorama2/reqspec/internal/config"
)

// addRequestFlags registers the flags that describe a request.
func addRequestFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringP("file", "f", "", "Load the request from a YAML or JSON file; other flags override it")
	f.StringP("method", "X", "", "HTTP method (default GET)")
	f.String("uri", "", "Explicit request URI; takes precedence over --base and --resource")
	f.String("base", "", "Base URI to join with --resource")
	f.String("resource", "", "Resource URI template, e.g. users/{id}")
	f.StringArrayP("segment", "s", nil, "URI segment substitution name=value (repeatable)")
	f.StringArrayP("query", "q", nil, "Query parameter key=value (repeatable)")
	f.StringArrayP("header", "H", nil, "HTTP header \"Name: value\" (repeatable)")
	f.String("headers", "", "Comma-separated header list, e.g. \"Accept:application/json,X-Trace:1\"")
	f.String("auth", "", "Authorization \"Scheme credential\"")
	f.String("basic", "", "Basic authentication user:password")
	f.String("bearer", "", "Bearer token")
	f.String("json", "", "JSON request body, sent verbatim")
	f.StringArray("form", nil, "Form field key=value (repeatable)")
}

// buildSpec assembles a RequestSpec from the request file, if any, and flags.
// Positional args are treated as --uri.
func buildSpec(cmd *cobra.Command, args []string) (*http.RequestSpec, *config.RequestFile, error) {
	f := cmd.Flags()
	spec := http.NewRequestSpec()

	var file *config.RequestFile
	if path, _ := f.GetString("file"); path != "" {
		loaded, err := config.LoadRequestFile(path)
		if err != nil {
			return nil, nil, err
		}
		file = loaded

		// A base or resource flag replaces the file's whole URI, including
		// an explicit uri that would otherwise take precedence.
		applied := *file
		if f.Changed("base") || f.Changed("resource") {
			applied.URI = ""
		}
		applied.Apply(spec)
	}

	if method, _ := f.GetString("method"); method != "" {
		spec.SetMethod(method)
	}

	if base, _ := f.GetString("base"); f.Changed("base") {
		spec.SetBaseURI(base)
	}
	if resource, _ := f.GetString("resource"); f.Changed("resource") {
		spec.SetResourceURI(resource)
	}
	if uri, _ := f.GetString("uri"); uri != "" {
		spec.SetURI(uri)
	}
	if len(args) > 0 {
		spec.SetURI(args[0])
	}

	if err := eachKeyValue(f, "segment", func(k, v string) { spec.AddURISegment(k, v) }); err != nil {
		return nil, nil, err
	}
	if err := eachKeyValue(f, "query", func(k, v string) { spec.AddQuery(k, v) }); err != nil {
		return nil, nil, err
	}

	headers, _ := f.GetStringArray("header")
	for _, h := range headers {
		name, value, ok := strings.Cut(h, ":")
		if !ok || strings.TrimSpace(name) == "" {
			return nil, nil, fmt.Errorf("invalid --header %q: expected \"Name: value\"", h)
		}
		spec.AddHeader(strings.TrimSpace(name), strings.TrimSpace(value))
	}
	if list, _ := f.GetString("headers"); list != "" {
		spec.AddHeaderList(list)
	}

	if auth, _ := f.GetString("auth"); auth != "" {
		scheme, credential, _ := strings.Cut(strings.TrimSpace(auth), " ")
		spec.SetAuthentication(scheme, strings.TrimSpace(credential))
	}
	if basic, _ := f.GetString("basic"); basic != "" {
		user, pass, _ := strings.Cut(basic, ":")
		spec.SetBasicAuth(user, pass)
	}
	if token, _ := f.GetString("bearer"); token != "" {
		spec.SetBearerToken(token)
	}

	if body, _ := f.GetString("json"); f.Changed("json") {
		spec.SetJSONContent(body)
	}
	form := map[string]string{}
	if err := eachKeyValue(f, "form", func(k, v string) { form[k] = v }); err != nil {
		return nil, nil, err
	}
	if len(form) > 0 {
		spec.SetFormContent(form)
	}

	return spec, file, nil
}

// eachKeyValue parses a repeatable key=value flag.
func eachKeyValue(f *pflag.FlagSet, name string, fn func(key, value string)) error {
	values, err := f.GetStringArray(name)
	if err != nil {
		return err
	}
	for _, raw := range values {
		key, value, err := parseKeyValue(raw)
		if err != nil {
			return fmt.Errorf("invalid --%s %q: %w", name, raw, err)
		}
		fn(key, value)
	}
	return nil
}

func parseKeyValue(raw string) (string, string, error) {
	key, value, ok := strings.Cut(raw, "=")
	if !ok {
		return "", "", fmt.Errorf("expected key=value")
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return "", "", fmt.Errorf("empty key")
	}
	return key, value, nil
}
