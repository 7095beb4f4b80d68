package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shubhraaj/sitecms/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and change sitecms settings: the content API, the local cache
driver, the sync policy, the background pull and the image host.

Settings are stored in ~/.sitecms/config.toml.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a setting",
	Long: `Change a single setting by key, for example:

  sitecms settings set api.base_url https://api.shubhraaj.com
  sitecms settings set cache.driver bolt
  sitecms settings set sync.policy strict

Run 'sitecms settings keys' for the full list.`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsUnsetCmd = &cobra.Command{
	Use:   "unset <key>",
	Short: "Restore a setting to its default",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsUnset,
}

var settingsKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List setting keys",
	RunE:  runSettingsKeys,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsUnsetCmd)
	settingsCmd.AddCommand(settingsKeysCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[API]")
	cmd.Printf("  Base URL: %s\n", settings.API.BaseURL)
	cmd.Printf("  Timeout: %s\n", settings.API.Timeout)
	cmd.Printf("  Rate: %d requests/s\n", settings.API.RatePerSecond)
	cmd.Println()

	cmd.Println("[Cache]")
	cmd.Printf("  Driver: %s\n", settings.Cache.Driver)
	switch {
	case settings.Cache.Driver == domain.CacheDriverRedis:
		cmd.Printf("  Redis URL: %s\n", settings.Cache.RedisURL)
	case settings.Cache.Driver.IsFileBacked():
		dir := settings.Cache.Dir
		if dir == "" {
			dir = "(default)"
		}
		cmd.Printf("  Directory: %s\n", dir)
	}
	cmd.Println()

	cmd.Println("[Sync]")
	cmd.Printf("  Policy: %s\n", settings.Sync.Policy.Description())
	cmd.Println()

	cmd.Println("[Scheduler]")
	if settings.Scheduler.Enabled {
		cmd.Printf("  Enabled: yes\n")
		cmd.Printf("  Pull interval: %s\n", settings.Scheduler.Interval())
	} else {
		cmd.Printf("  Enabled: no\n")
	}
	cmd.Println()

	cmd.Println("[Upload]")
	if settings.Upload.IsConfigured() {
		cmd.Printf("  Endpoint: %s\n", settings.Upload.Endpoint)
		cmd.Printf("  Bucket: %s\n", settings.Upload.Bucket)
		cmd.Printf("  Access Key: %s\n", maskSecret(settings.Upload.AccessKey))
		cmd.Printf("  Secret Key: %s\n", maskSecret(settings.Upload.SecretKey))
		cmd.Printf("  Folder: %s/projects/<title>\n", settings.Upload.FolderPrefix)
	} else {
		cmd.Printf("  Status: not configured\n")
	}
	cmd.Println()

	if err := settingsService.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
		cmd.Println("Run 'sitecms settings set <key> <value>' to fix configuration issues.")
	} else {
		cmd.Println("Configuration is valid.")
	}
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	if err := settingsService.Set(args[0], args[1]); err != nil {
		return err
	}
	cmd.Printf("Set %s. Changes apply to the next command.\n", args[0])
	return nil
}

func runSettingsUnset(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	if err := settingsService.Unset(args[0]); err != nil {
		return err
	}
	cmd.Printf("Restored %s to its default.\n", args[0])
	return nil
}

func runSettingsKeys(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	for _, key := range settingsService.Keys() {
		cmd.Println(key)
	}
	return nil
}
