package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shubhraaj/sitecms/internal/adapters/driving/httpapi"
	"github.com/shubhraaj/sitecms/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server so an AI assistant can read and
edit the site content.

By default the server communicates over stdio using JSON-RPC. With --port
the streamable HTTP transport is served at /mcp, next to the read-only
content routes of "sitecms serve".

Examples:
  # Stdio mode (default)
  sitecms mcp serve

  # HTTP mode
  sitecms mcp serve --port 8090

Assistant configuration:
  {
    "mcpServers": {
      "sitecms": {
        "command": "/path/to/sitecms",
        "args": ["mcp", "serve"]
      }
    }
  }`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	if contentService == nil {
		return errors.New("content service not configured")
	}

	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}

	server, err := mcp.NewServer(&mcp.Ports{
		Content: contentService,
		Session: sessionService,
	})
	if err != nil {
		return err
	}

	ctx := commandContext(cmd)
	stop := startBackground(ctx)
	defer stop()

	if port > 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "MCP endpoint: http://localhost:%d/mcp\n", port)
		return httpapi.NewServer(contentService, httpapi.Mount("/mcp", server.Handler())).
			Run(ctx, fmt.Sprintf(":%d", port))
	}

	return server.Run(ctx)
}
