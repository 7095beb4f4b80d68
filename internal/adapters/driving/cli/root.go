// Package cli is the sitecms command line. Commands reach the core only
// through the driving ports wired in by main via SetServices.
package cli

import (
	"context"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/shubhraaj/sitecms/internal/core/domain"
	"github.com/shubhraaj/sitecms/internal/core/ports/driving"
	"github.com/shubhraaj/sitecms/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Runner is a long-running background component such as the cache watcher.
type Runner interface {
	Run(ctx context.Context) error
}

// Services holds the core services the commands operate on.
type Services struct {
	Content         driving.ContentService
	Session         driving.SessionService
	Media           driving.MediaService
	Settings        driving.SettingsService
	Scheduler       driving.Scheduler
	SchedulerConfig domain.SchedulerConfig

	// Watcher is nil for caches that are not file-backed.
	Watcher Runner
}

var (
	contentService  driving.ContentService
	sessionService  driving.SessionService
	mediaService    driving.MediaService
	settingsService driving.SettingsService
	scheduler       driving.Scheduler
	schedulerConfig domain.SchedulerConfig
	cacheWatcher    Runner
)

var (
	verboseFlag bool
	configDir   string
)

var rootCmd = &cobra.Command{
	Use:   "sitecms",
	Short: "Manage ShubhRaaj Interiors site content",
	Long: `sitecms keeps a durable local copy of the ShubhRaaj Interiors site
content and syncs edits with the content API.

Reads always succeed: when the API is unreachable the cached copy (or the
built-in defaults) is used. Edits are sent to the API and cached locally;
with the default fallback_local policy an unreachable API still saves the
edit locally and marks the section pending.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if verboseFlag {
			logger.SetVerbose(true)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configDir, "config", "", "config directory (default ~/.sitecms)")
}

// SetVersion sets the version reported by `sitecms version`.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// SetServices wires the core services into the commands.
func SetServices(s *Services) {
	if s == nil {
		return
	}
	contentService = s.Content
	sessionService = s.Session
	mediaService = s.Media
	settingsService = s.Settings
	scheduler = s.Scheduler
	schedulerConfig = s.SchedulerConfig
	cacheWatcher = s.Watcher
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// commandContext returns the command's context, or Background when the
// command runs outside Execute (tests call rootCmd.Execute directly).
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// GlobalFlags are the persistent flags main needs before the services exist.
type GlobalFlags struct {
	Verbose   bool
	ConfigDir string
}

// ParseGlobalFlags extracts --verbose and --config from args, ignoring
// every other flag. Component loggers capture their level at construction,
// so main reads these before wiring services.
func ParseGlobalFlags(args []string) GlobalFlags {
	var g GlobalFlags
	fs := pflag.NewFlagSet("global", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	fs.ParseErrorsWhitelist.UnknownFlags = true
	fs.BoolVarP(&g.Verbose, "verbose", "v", false, "")
	fs.StringVar(&g.ConfigDir, "config", "", "")
	fs.BoolP("help", "h", false, "")
	_ = fs.Parse(args)
	return g
}
