package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/shubhraaj/sitecms/internal/adapters/driving/httpapi"
	"github.com/shubhraaj/sitecms/internal/adapters/driving/mcp"
)

var (
	serveAddr string
	serveMCP  bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the cached content over HTTP",
	Long: `Serves the local snapshot read-only, using the same envelope as the
content API, so a site preview keeps working while the API is down.

Routes:
  GET /api/data              full snapshot
  GET /api/{section}         about, projects, testimonials or contact
  GET /api/projects/{slug}   one project
  GET /api/status            per-section sync state
  GET /healthz               liveness
  GET /metrics               Prometheus metrics
  /mcp                       MCP streamable HTTP (with --mcp)

The scheduler and cache watcher run while the server is up.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "listen address")
	serveCmd.Flags().BoolVar(&serveMCP, "mcp", false, "also serve the MCP endpoint at /mcp")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if contentService == nil {
		return errors.New("content service not configured")
	}

	var opts []httpapi.Option
	if serveMCP {
		server, err := mcp.NewServer(&mcp.Ports{Content: contentService, Session: sessionService})
		if err != nil {
			return err
		}
		opts = append(opts, httpapi.Mount("/mcp", server.Handler()))
	}

	ctx := commandContext(cmd)
	stop := startBackground(ctx)
	defer stop()

	cmd.Printf("Serving content on %s\n", serveAddr)
	return httpapi.NewServer(contentService, opts...).Run(ctx, serveAddr)
}
