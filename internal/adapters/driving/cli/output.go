package cli

import (
	"github.com/spf13/cobra"

	"github.com/shubhraaj/sitecms/internal/core/domain"
)

// reportSaved prints the outcome of a successful mutation, noting when
// the change only reached the local cache.
func reportSaved(cmd *cobra.Command, section domain.Section, msg string) {
	for _, st := range contentService.SyncStates() {
		if st.Section != section || st.State != domain.SectionPendingLocal {
			continue
		}
		cmd.Printf("%s (saved locally; API unavailable: %s)\n", msg, st.LastError)
		return
	}
	cmd.Println(msg)
}

func printProjects(cmd *cobra.Command, projects []domain.Project) {
	for _, p := range projects {
		cmd.Printf("  %s  %s (%d photos)\n", p.Slug, p.Title, len(p.Photos))
	}
}

func printTestimonials(cmd *cobra.Command, testimonials []domain.Testimonial) {
	for i, t := range testimonials {
		cmd.Printf("  %d. %s %s\n     %s\n", i+1, t.Name, stars(t.Rating), t.Text)
	}
}

func printMaps(cmd *cobra.Command, maps []domain.MapLocation) {
	for i, m := range maps {
		key := m.Key
		if key == "" {
			key = "(no key)"
		}
		cmd.Printf("  %d. %s  %s  %s\n", i+1, key, m.Name, m.URL)
	}
}

func stars(rating int) string {
	out := make([]rune, 0, domain.MaxRating)
	for i := domain.MinRating; i <= domain.MaxRating; i++ {
		if i <= rating {
			out = append(out, '★')
		} else {
			out = append(out, '☆')
		}
	}
	return string(out)
}
