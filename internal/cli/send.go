package cli

import (
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/wesleyorama2/reqspec/http"
	"github.com/wesleyorama2/reqspec/internal/config"
	"github.com/wesleyorama2/reqspec/internal/metrics"
	"github.com/wesleyorama2/reqspec/internal/output"
)

// ErrAllExchangesFailed is returned by send when no exchange succeeded.
var ErrAllExchangesFailed = errors.New("all exchanges failed")

type extraction struct {
	name string
	path string
}

func newSendCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "send [URI]",
		Short: "Resolve the request, send it and print the response",
		Example: `  reqspec send https://api.example.com/health
  reqspec send -X POST --base https://api.example.com --resource users --json '{"name":"John"}'
  reqspec send -f request.yaml --extract id=$.id --repeat 20`,
		Args: cobra.MaximumNArgs(1),
		RunE: runSend,
	}
	addRequestFlags(cmd)
	cmd.Flags().StringArrayP("extract", "e", nil, "Extract name=$.json.path from the response body (repeatable)")
	cmd.Flags().IntP("repeat", "n", 1, "Send the request this many times and print a latency summary")
	return cmd
}

func runSend(cmd *cobra.Command, args []string) error {
	repeat, _ := cmd.Flags().GetInt("repeat")
	if repeat < 1 {
		return fmt.Errorf("--repeat must be at least 1, got %d", repeat)
	}

	rt, err := newRuntime(cmd)
	if err != nil {
		return err
	}
	defer rt.close()

	spec, file, err := buildSpec(cmd, args)
	if err != nil {
		return err
	}
	extractions, err := extractionsFor(cmd, file)
	if err != nil {
		return err
	}

	req, err := spec.Resolve()
	if err != nil {
		return err
	}
	rt.print(rt.formatter.FormatRequest(req))

	transportOpts := []http.TransportOption{http.WithTimeout(rt.settings.Timeout)}
	if rt.settings.Insecure {
		transportOpts = append(transportOpts, http.WithInsecureSkipVerify())
	}

	recorder := metrics.NewLatencyRecorder()
	dispatcher := http.NewDispatcher(
		http.WithTransport(http.NewHTTPTransport(transportOpts...)),
		http.WithObserver(http.NewLogObserver(rt.logger)),
		http.WithObserver(recorder),
	)

	// With --repeat, individual failures are logged and counted but do not
	// abort the run.
	if repeat > 1 {
		dispatcher.OnError(func(err error, req *http.ResolvedRequest, xc *http.ExchangeContext) {
			xc.FailureHandled = true
		})
	}

	ctx := commandContext(cmd)
	var last *http.Response
	for i := 0; i < repeat; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		resp, err := dispatcher.Dispatch(ctx, req)
		if err != nil {
			return err
		}
		if resp != nil {
			last = resp
		}
	}

	if last != nil {
		rt.print(rt.formatter.FormatResponse(last))
		rt.print(rt.formatter.FormatExtracted(extract(last, extractions)))
	}
	if repeat > 1 {
		rt.print(rt.formatter.FormatSummary(recorder.Summary()))
	}
	if last == nil {
		return ErrAllExchangesFailed
	}
	return nil
}

// extractionsFor merges the request file's extract map, in name order,
// with --extract flags in the order given.
func extractionsFor(cmd *cobra.Command, file *config.RequestFile) ([]extraction, error) {
	var out []extraction
	if file != nil {
		names := make([]string, 0, len(file.Extract))
		for name := range file.Extract {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			out = append(out, extraction{name: name, path: file.Extract[name]})
		}
	}

	err := eachKeyValue(cmd.Flags(), "extract", func(name, path string) {
		out = append(out, extraction{name: name, path: path})
	})
	return out, err
}

func extract(resp *http.Response, extractions []extraction) []output.Extracted {
	values := make([]output.Extracted, 0, len(extractions))
	for _, e := range extractions {
		value, err := resp.Path(e.path)
		values = append(values, output.Extracted{Name: e.name, Path: e.path, Value: value, Err: err})
	}
	return values
}
