package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/shubhraaj/sitecms/internal/core/domain"
)

var (
	showFormat  string
	showSection string
)

var pullCmd = &cobra.Command{
	Use:   "pull",
	Short: "Fetch the latest content from the API",
	Long: `Fetches the full content snapshot from the content API and replaces the
local cache with it. If the API cannot be reached the cached copy is kept.`,
	RunE: runPull,
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the cached content",
	Long: `Prints the locally cached content. Nothing is fetched; run 'sitecms pull'
first for the latest server copy.`,
	RunE: runShow,
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show sync state and session",
	RunE:  runStatus,
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Load a JSON or YAML snapshot into the local cache",
	Long: `Replaces the local cache with a snapshot read from a .json, .yaml or .yml
file. Missing sections are filled with defaults. The API is not contacted;
every section is marked pending until the next pull.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Local cache commands",
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Drop the cached content",
	Long:  `Removes the cached snapshot. The next read starts again from the defaults.`,
	RunE:  runCacheClear,
}

func init() {
	showCmd.Flags().StringVarP(&showFormat, "format", "f", "text", "output format: text, json or yaml")
	showCmd.Flags().StringVarP(&showSection, "section", "s", "", "only show one section (about, projects, testimonials, contact)")
	cacheCmd.AddCommand(cacheClearCmd)
	rootCmd.AddCommand(pullCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(cacheCmd)
}

func runPull(cmd *cobra.Command, _ []string) error {
	if contentService == nil {
		return errors.New("content service not configured")
	}

	cmd.Println("Pulling content...")
	snap, err := contentService.TryPull(commandContext(cmd))
	if err != nil {
		cmd.Printf("Could not refresh from the API: %v\n", err)
		cmd.Println("Using cached content.")
	} else {
		cmd.Println("Content updated.")
	}
	cmd.Printf("%d projects, %d testimonials, %d map locations\n",
		len(snap.Projects), len(snap.Testimonials), len(snap.Contact.MapURLs))
	return nil
}

func runShow(cmd *cobra.Command, _ []string) error {
	if contentService == nil {
		return errors.New("content service not configured")
	}

	section := domain.Section(strings.ToLower(showSection))
	if showSection != "" && !section.IsValid() {
		return fmt.Errorf("unknown section %q", showSection)
	}

	snap := contentService.Snapshot(commandContext(cmd))
	var value any = snap
	if showSection != "" {
		value = sectionValue(snap, section)
	}

	switch strings.ToLower(showFormat) {
	case "json":
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(value)
	case "yaml", "yml":
		enc := yaml.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(value)
	case "text", "":
		printSnapshot(cmd, snap, section)
		return nil
	default:
		return fmt.Errorf("unknown format %q (want text, json or yaml)", showFormat)
	}
}

func sectionValue(snap domain.Snapshot, section domain.Section) any {
	switch section {
	case domain.SectionAbout:
		return snap.About
	case domain.SectionProjects:
		return snap.Projects
	case domain.SectionTestimonials:
		return snap.Testimonials
	default:
		return snap.Contact
	}
}

func printSnapshot(cmd *cobra.Command, snap domain.Snapshot, only domain.Section) {
	show := func(s domain.Section) bool { return only == "" || only == s }

	if show(domain.SectionAbout) {
		cmd.Println("[About]")
		cmd.Printf("  Intro: %s\n", snap.About.Intro)
		cmd.Printf("  Mission: %s\n", snap.About.Mission)
		cmd.Printf("  Vision: %s\n", snap.About.Vision)
		cmd.Printf("  Philosophy: %s\n", snap.About.Philosophy)
		cmd.Println()
	}
	if show(domain.SectionProjects) {
		cmd.Printf("[Projects] (%d)\n", len(snap.Projects))
		printProjects(cmd, snap.Projects)
		cmd.Println()
	}
	if show(domain.SectionTestimonials) {
		cmd.Printf("[Testimonials] (%d)\n", len(snap.Testimonials))
		printTestimonials(cmd, snap.Testimonials)
		cmd.Println()
	}
	if show(domain.SectionContact) {
		cmd.Println("[Contact]")
		cmd.Printf("  Phone: %s\n", snap.Contact.Phone)
		cmd.Printf("  Email: %s\n", snap.Contact.Email)
		cmd.Printf("  Instagram: %s\n", snap.Contact.Socials.Instagram)
		cmd.Printf("  Facebook: %s\n", snap.Contact.Socials.Facebook)
		cmd.Printf("  LinkedIn: %s\n", snap.Contact.Socials.LinkedIn)
		cmd.Printf("  Maps (%d):\n", len(snap.Contact.MapURLs))
		printMaps(cmd, snap.Contact.MapURLs)
	}
}

func runStatus(cmd *cobra.Command, _ []string) error {
	if contentService == nil {
		return errors.New("content service not configured")
	}
	ctx := commandContext(cmd)

	cmd.Println("Sections")
	cmd.Println("========")
	for _, st := range contentService.SyncStates() {
		line := fmt.Sprintf("  %-13s %s", st.Section, st.State)
		if st.LastError != "" {
			line += " (" + st.LastError + ")"
		}
		cmd.Println(line)
	}
	cmd.Println()

	if scheduler != nil {
		printLastPull(cmd)
		cmd.Println()
	}

	cmd.Println("Session")
	cmd.Println("=======")
	if sessionService == nil {
		cmd.Println("  not configured")
		return nil
	}
	info := sessionService.Info(ctx)
	if !info.Authenticated {
		cmd.Println("  Logged out")
		return nil
	}
	cmd.Println("  Logged in")
	if info.Subject != "" {
		cmd.Printf("  User: %s\n", info.Subject)
	}
	if !info.ExpiresAt.IsZero() {
		cmd.Printf("  Expires: %s\n", info.ExpiresAt.Local().Format("2006-01-02 15:04"))
	}
	return nil
}

func printLastPull(cmd *cobra.Command) {
	cmd.Println("Background pulls")
	cmd.Println("================")
	runs, err := scheduler.History(commandContext(cmd), 1)
	switch {
	case err != nil:
		cmd.Printf("  unavailable: %v\n", err)
	case len(runs) == 0:
		cmd.Println("  No background pulls yet")
	case runs[0].OK():
		cmd.Printf("  Last: %s ok (%d projects, %d testimonials)\n",
			runs[0].Finished.Local().Format("2006-01-02 15:04"), runs[0].Projects, runs[0].Testimonials)
	default:
		cmd.Printf("  Last: %s failed (%s)\n", runs[0].Finished.Local().Format("2006-01-02 15:04"), runs[0].Err)
	}
}

func runImport(cmd *cobra.Command, args []string) error {
	if contentService == nil {
		return errors.New("content service not configured")
	}

	raw, err := readSnapshotFile(args[0])
	if err != nil {
		return err
	}
	if err := contentService.ImportSnapshot(commandContext(cmd), raw); err != nil {
		return fmt.Errorf("import failed: %w", err)
	}
	cmd.Printf("Imported %s into the local cache.\n", args[0])
	return nil
}

// readSnapshotFile returns the file as JSON, converting YAML by extension.
func readSnapshotFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		var doc map[string]any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		out, err := json.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("convert %s: %w", path, err)
		}
		return out, nil
	default:
		return data, nil
	}
}

func runCacheClear(cmd *cobra.Command, _ []string) error {
	if contentService == nil {
		return errors.New("content service not configured")
	}
	if err := contentService.ClearCache(commandContext(cmd)); err != nil {
		return err
	}
	cmd.Println("Cache cleared.")
	return nil
}
