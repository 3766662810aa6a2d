package cli

import (
	"github.com/spf13/cobra"
)

func newResolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve [URI]",
		Short: "Print the resolved request without sending it",
		Example: `  reqspec resolve --base https://api.example.com --resource "users/{id}" -s id=42 -q active=true
  reqspec resolve -f request.yaml --bearer "$TOKEN"`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime(cmd)
			if err != nil {
				return err
			}
			defer rt.close()

			spec, _, err := buildSpec(cmd, args)
			if err != nil {
				return err
			}

			req, err := spec.Resolve()
			if err != nil {
				return err
			}

			rt.logger.WithField("url", req.String()).Debug("request resolved")
			rt.print(rt.formatter.FormatRequest(req))
			return nil
		},
	}
	addRequestFlags(cmd)
	return cmd
}
