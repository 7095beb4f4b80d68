package cli

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/shubhraaj/sitecms/internal/adapters/driving/tui"
)

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal interface for browsing and editing the
site content. Edits made elsewhere (another sitecms process, the MCP
server, a scheduled pull) show up live.

Controls:
  ↑/k, ↓/j - Navigate
  Enter    - Select / details
  a        - Add
  d        - Delete
  r        - Pull from the API
  Esc      - Back
  ?        - Help
  q        - Quit`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	if contentService == nil {
		return errors.New("content service not configured")
	}

	ctx := commandContext(cmd)
	stop := startBackground(ctx)
	defer stop()

	app, err := tui.NewApp(&tui.Ports{
		Content:   contentService,
		Session:   sessionService,
		Settings:  settingsService,
		Scheduler: scheduler,
	})
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	app.WithContext(ctx)

	if err := app.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
