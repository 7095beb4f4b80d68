package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shubhraaj/sitecms/internal/core/domain"
)

var (
	aboutIntro      string
	aboutMission    string
	aboutVision     string
	aboutPhilosophy string

	contactPhone     string
	contactEmail     string
	contactInstagram string
	contactFacebook  string
	contactLinkedIn  string

	mapKey  string
	mapName string
	mapURL  string
)

var aboutCmd = &cobra.Command{
	Use:   "about",
	Short: "Manage the about page copy",
}

var aboutSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update about page fields",
	Long:  `Updates only the fields given as flags; the others keep their current text.`,
	RunE:  runAboutSet,
}

var contactCmd = &cobra.Command{
	Use:   "contact",
	Short: "Manage contact details",
}

var contactSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update contact details",
	Long: `Updates only the fields given as flags. Phone and email must not end up
empty. Map locations are managed with 'sitecms maps'.`,
	RunE: runContactSet,
}

var mapsCmd = &cobra.Command{
	Use:   "maps",
	Short: "Manage office map locations",
}

var mapsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List map locations",
	RunE:  runMapsList,
}

var mapsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Append an empty map location",
	Long:  `Appends an empty location; fill it in with 'sitecms maps set <number>'.`,
	RunE:  runMapsAdd,
}

var mapsRemoveCmd = &cobra.Command{
	Use:   "remove <number>",
	Short: "Remove a map location",
	Args:  cobra.ExactArgs(1),
	RunE:  runMapsRemove,
}

var mapsSetCmd = &cobra.Command{
	Use:   "set <number>",
	Short: "Edit a map location",
	Long:  `Updates the key, name or embed URL of a location. Repeated keys get a -2, -3 suffix.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runMapsSet,
}

func init() {
	aboutSetCmd.Flags().StringVar(&aboutIntro, "intro", "", "intro paragraph")
	aboutSetCmd.Flags().StringVar(&aboutMission, "mission", "", "mission statement")
	aboutSetCmd.Flags().StringVar(&aboutVision, "vision", "", "vision statement")
	aboutSetCmd.Flags().StringVar(&aboutPhilosophy, "philosophy", "", "design philosophy")
	aboutCmd.AddCommand(aboutSetCmd)

	contactSetCmd.Flags().StringVar(&contactPhone, "phone", "", "phone number")
	contactSetCmd.Flags().StringVar(&contactEmail, "email", "", "email address")
	contactSetCmd.Flags().StringVar(&contactInstagram, "instagram", "", "Instagram URL")
	contactSetCmd.Flags().StringVar(&contactFacebook, "facebook", "", "Facebook URL")
	contactSetCmd.Flags().StringVar(&contactLinkedIn, "linkedin", "", "LinkedIn URL")
	contactCmd.AddCommand(contactSetCmd)

	mapsSetCmd.Flags().StringVar(&mapKey, "key", "", "location key, e.g. pune")
	mapsSetCmd.Flags().StringVar(&mapName, "name", "", "display name")
	mapsSetCmd.Flags().StringVar(&mapURL, "url", "", "map embed URL")
	mapsCmd.AddCommand(mapsListCmd)
	mapsCmd.AddCommand(mapsAddCmd)
	mapsCmd.AddCommand(mapsRemoveCmd)
	mapsCmd.AddCommand(mapsSetCmd)

	rootCmd.AddCommand(aboutCmd)
	rootCmd.AddCommand(contactCmd)
	rootCmd.AddCommand(mapsCmd)
}

// applyFlag copies value into dst when the flag was given.
func applyFlag(cmd *cobra.Command, name string, dst *string, value string) bool {
	if !cmd.Flags().Changed(name) {
		return false
	}
	*dst = value
	return true
}

func runAboutSet(cmd *cobra.Command, _ []string) error {
	if contentService == nil {
		return errors.New("content service not configured")
	}
	ctx := commandContext(cmd)

	about := contentService.Snapshot(ctx).About
	changed := false
	changed = applyFlag(cmd, "intro", &about.Intro, aboutIntro) || changed
	changed = applyFlag(cmd, "mission", &about.Mission, aboutMission) || changed
	changed = applyFlag(cmd, "vision", &about.Vision, aboutVision) || changed
	changed = applyFlag(cmd, "philosophy", &about.Philosophy, aboutPhilosophy) || changed
	if !changed {
		return errors.New("nothing to update; pass at least one flag")
	}

	if err := contentService.SetAbout(ctx, about); err != nil {
		return fmt.Errorf("update about: %w", err)
	}
	reportSaved(cmd, domain.SectionAbout, "About updated.")
	return nil
}

func runContactSet(cmd *cobra.Command, _ []string) error {
	if contentService == nil {
		return errors.New("content service not configured")
	}
	ctx := commandContext(cmd)

	contact := contentService.Snapshot(ctx).Contact
	changed := false
	changed = applyFlag(cmd, "phone", &contact.Phone, contactPhone) || changed
	changed = applyFlag(cmd, "email", &contact.Email, contactEmail) || changed
	changed = applyFlag(cmd, "instagram", &contact.Socials.Instagram, contactInstagram) || changed
	changed = applyFlag(cmd, "facebook", &contact.Socials.Facebook, contactFacebook) || changed
	changed = applyFlag(cmd, "linkedin", &contact.Socials.LinkedIn, contactLinkedIn) || changed
	if !changed {
		return errors.New("nothing to update; pass at least one flag")
	}
	if strings.TrimSpace(contact.Phone) == "" || strings.TrimSpace(contact.Email) == "" {
		return errors.New("phone and email are required")
	}

	if err := contentService.SetContact(ctx, contact); err != nil {
		return fmt.Errorf("update contact: %w", err)
	}
	reportSaved(cmd, domain.SectionContact, "Contact updated.")
	return nil
}

func runMapsList(cmd *cobra.Command, _ []string) error {
	if contentService == nil {
		return errors.New("content service not configured")
	}
	maps := contentService.Snapshot(commandContext(cmd)).Contact.MapURLs
	if len(maps) == 0 {
		cmd.Println("No map locations.")
		return nil
	}
	printMaps(cmd, maps)
	return nil
}

func runMapsAdd(cmd *cobra.Command, _ []string) error {
	if contentService == nil {
		return errors.New("content service not configured")
	}
	if err := contentService.AddMapLocation(commandContext(cmd)); err != nil {
		return fmt.Errorf("add map location: %w", err)
	}
	reportSaved(cmd, domain.SectionContact, "Map location added.")
	return nil
}

func runMapsRemove(cmd *cobra.Command, args []string) error {
	if contentService == nil {
		return errors.New("content service not configured")
	}
	index, err := parseNumber(args[0])
	if err != nil {
		return err
	}
	if err := contentService.RemoveMapLocation(commandContext(cmd), index); err != nil {
		return fmt.Errorf("remove map location: %w", err)
	}
	reportSaved(cmd, domain.SectionContact, "Map location removed.")
	return nil
}

func runMapsSet(cmd *cobra.Command, args []string) error {
	if contentService == nil {
		return errors.New("content service not configured")
	}
	ctx := commandContext(cmd)

	index, err := parseNumber(args[0])
	if err != nil {
		return err
	}
	maps := contentService.Snapshot(ctx).Contact.MapURLs
	if index >= len(maps) {
		return fmt.Errorf("map location %s: %w", args[0], domain.ErrNotFound)
	}

	loc := &maps[index]
	changed := false
	changed = applyFlag(cmd, "key", &loc.Key, mapKey) || changed
	changed = applyFlag(cmd, "name", &loc.Name, mapName) || changed
	changed = applyFlag(cmd, "url", &loc.URL, mapURL) || changed
	if !changed {
		return errors.New("nothing to update; pass --key, --name or --url")
	}

	if err := contentService.SetMapURLs(ctx, maps); err != nil {
		return fmt.Errorf("update map location: %w", err)
	}
	reportSaved(cmd, domain.SectionContact, "Map location updated.")
	return nil
}
