package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shubhraaj/sitecms/internal/core/domain"
)

var (
	testimonialName   string
	testimonialText   string
	testimonialRating int
)

var testimonialCmd = &cobra.Command{
	Use:   "testimonial",
	Short: "Manage client testimonials",
}

var testimonialListCmd = &cobra.Command{
	Use:   "list",
	Short: "List testimonials",
	RunE:  runTestimonialList,
}

var testimonialAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a testimonial",
	RunE:  runTestimonialAdd,
}

var testimonialRemoveCmd = &cobra.Command{
	Use:   "remove <number>",
	Short: "Remove a testimonial by its number in 'testimonial list'",
	Args:  cobra.ExactArgs(1),
	RunE:  runTestimonialRemove,
}

func init() {
	testimonialAddCmd.Flags().StringVarP(&testimonialName, "name", "n", "", "client name")
	testimonialAddCmd.Flags().StringVarP(&testimonialText, "text", "t", "", "testimonial text")
	testimonialAddCmd.Flags().IntVarP(&testimonialRating, "rating", "r", domain.DefaultRating, "star rating 1-5")

	testimonialCmd.AddCommand(testimonialListCmd)
	testimonialCmd.AddCommand(testimonialAddCmd)
	testimonialCmd.AddCommand(testimonialRemoveCmd)
	rootCmd.AddCommand(testimonialCmd)
}

func runTestimonialList(cmd *cobra.Command, _ []string) error {
	if contentService == nil {
		return errors.New("content service not configured")
	}
	testimonials := contentService.Snapshot(commandContext(cmd)).Testimonials
	if len(testimonials) == 0 {
		cmd.Println("No testimonials.")
		return nil
	}
	printTestimonials(cmd, testimonials)
	return nil
}

func runTestimonialAdd(cmd *cobra.Command, _ []string) error {
	if contentService == nil {
		return errors.New("content service not configured")
	}
	if strings.TrimSpace(testimonialName) == "" || strings.TrimSpace(testimonialText) == "" {
		return errors.New("--name and --text are required")
	}
	if !domain.ValidRating(testimonialRating) {
		return domain.ErrInvalidRating
	}

	t := domain.Testimonial{Name: testimonialName, Rating: testimonialRating, Text: testimonialText}
	if err := contentService.AddTestimonial(commandContext(cmd), t); err != nil {
		return fmt.Errorf("add testimonial: %w", err)
	}
	reportSaved(cmd, domain.SectionTestimonials, "Testimonial added.")
	return nil
}

func runTestimonialRemove(cmd *cobra.Command, args []string) error {
	if contentService == nil {
		return errors.New("content service not configured")
	}
	index, err := parseNumber(args[0])
	if err != nil {
		return err
	}
	if err := contentService.RemoveTestimonial(commandContext(cmd), index); err != nil {
		return fmt.Errorf("remove testimonial: %w", err)
	}
	reportSaved(cmd, domain.SectionTestimonials, "Testimonial removed.")
	return nil
}

// parseNumber converts a 1-based list number into a 0-based index.
func parseNumber(arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid number %q", arg)
	}
	return n - 1, nil
}
