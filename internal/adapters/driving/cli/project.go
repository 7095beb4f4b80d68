package cli

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shubhraaj/sitecms/internal/core/domain"
)

var (
	projectTitle       string
	projectSlug        string
	projectDescription string
	projectPhotoFiles  []string
	projectPhotoURLs   []string
	projectClearPhotos bool
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Manage portfolio projects",
}

var projectListCmd = &cobra.Command{
	Use:   "list",
	Short: "List projects",
	RunE:  runProjectList,
}

var projectAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a project at the top of the gallery",
	Long: `Adds a project. The slug defaults to one derived from the title.

Photos given with --photo are uploaded to the image host first, into
<folder prefix>/projects/<title>. Existing hosted images can be referenced
with --photo-url.`,
	RunE: runProjectAdd,
}

var projectUpdateCmd = &cobra.Command{
	Use:   "update <slug>",
	Short: "Update a project",
	Long: `Updates only the fields given as flags. --photo and --photo-url append to
the gallery; --clear-photos empties it first.`,
	Args: cobra.ExactArgs(1),
	RunE: runProjectUpdate,
}

var projectDeleteCmd = &cobra.Command{
	Use:   "delete <slug>",
	Short: "Delete a project",
	Args:  cobra.ExactArgs(1),
	RunE:  runProjectDelete,
}

func init() {
	for _, c := range []*cobra.Command{projectAddCmd, projectUpdateCmd} {
		c.Flags().StringVarP(&projectTitle, "title", "t", "", "project title")
		c.Flags().StringVar(&projectSlug, "slug", "", "URL slug")
		c.Flags().StringVarP(&projectDescription, "description", "d", "", "project description")
		c.Flags().StringSliceVar(&projectPhotoFiles, "photo", nil, "image file to upload (repeatable)")
		c.Flags().StringSliceVar(&projectPhotoURLs, "photo-url", nil, "hosted image URL (repeatable)")
	}
	projectUpdateCmd.Flags().BoolVar(&projectClearPhotos, "clear-photos", false, "remove existing photos first")

	projectCmd.AddCommand(projectListCmd)
	projectCmd.AddCommand(projectAddCmd)
	projectCmd.AddCommand(projectUpdateCmd)
	projectCmd.AddCommand(projectDeleteCmd)
	rootCmd.AddCommand(projectCmd)
}

func runProjectList(cmd *cobra.Command, _ []string) error {
	if contentService == nil {
		return errors.New("content service not configured")
	}
	projects := contentService.Snapshot(commandContext(cmd)).Projects
	if len(projects) == 0 {
		cmd.Println("No projects.")
		return nil
	}
	printProjects(cmd, projects)
	return nil
}

func runProjectAdd(cmd *cobra.Command, _ []string) error {
	if contentService == nil {
		return errors.New("content service not configured")
	}
	if strings.TrimSpace(projectTitle) == "" {
		return errors.New("--title is required")
	}

	photos, err := collectPhotos(cmd, projectTitle)
	if err != nil {
		return err
	}

	project := domain.Project{
		Slug:        projectSlug,
		Title:       projectTitle,
		Description: projectDescription,
		Photos:      photos,
	}
	if err := contentService.AddProject(commandContext(cmd), project); err != nil {
		return fmt.Errorf("add project: %w", err)
	}
	reportSaved(cmd, domain.SectionProjects, "Project added.")
	return nil
}

func runProjectUpdate(cmd *cobra.Command, args []string) error {
	if contentService == nil {
		return errors.New("content service not configured")
	}
	ctx := commandContext(cmd)
	slug := args[0]

	current := contentService.Snapshot(ctx)
	idx := current.FindProject(slug)
	if idx < 0 {
		return fmt.Errorf("project %q not found", slug)
	}
	existing := current.Projects[idx]

	var patch domain.ProjectPatch
	flags := cmd.Flags()
	if flags.Changed("title") {
		if strings.TrimSpace(projectTitle) == "" {
			return errors.New("--title cannot be empty")
		}
		patch.Title = &projectTitle
	}
	if flags.Changed("slug") {
		patch.Slug = &projectSlug
	}
	if flags.Changed("description") {
		patch.Description = &projectDescription
	}

	if projectClearPhotos || len(projectPhotoFiles) > 0 || len(projectPhotoURLs) > 0 {
		title := existing.Title
		if patch.Title != nil {
			title = *patch.Title
		}
		added, err := collectPhotos(cmd, title)
		if err != nil {
			return err
		}
		photos := []domain.Photo{}
		if !projectClearPhotos {
			photos = append(photos, existing.Photos...)
		}
		patch.Photos = append(photos, added...)
	}

	if patch.IsEmpty() {
		return errors.New("nothing to update; pass at least one flag")
	}
	if err := contentService.UpdateProject(ctx, slug, patch); err != nil {
		return fmt.Errorf("update project: %w", err)
	}
	reportSaved(cmd, domain.SectionProjects, "Project updated.")
	return nil
}

func runProjectDelete(cmd *cobra.Command, args []string) error {
	if contentService == nil {
		return errors.New("content service not configured")
	}
	if err := contentService.DeleteProject(commandContext(cmd), args[0]); err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	reportSaved(cmd, domain.SectionProjects, "Project deleted.")
	return nil
}

// collectPhotos uploads --photo files and appends --photo-url entries.
func collectPhotos(cmd *cobra.Command, title string) ([]domain.Photo, error) {
	photos := []domain.Photo{}

	if len(projectPhotoFiles) > 0 {
		if mediaService == nil || !mediaService.Available() {
			return nil, fmt.Errorf("cannot upload photos: %w", domain.ErrUploadUnavailable)
		}
		files, closeAll, err := openUploads(projectPhotoFiles)
		if err != nil {
			return nil, err
		}
		defer closeAll()

		cmd.Printf("Uploading %d photo(s)...\n", len(files))
		uploaded, err := mediaService.UploadProjectPhotos(commandContext(cmd), title, files)
		if err != nil {
			return nil, err
		}
		photos = append(photos, uploaded...)
	}

	for _, url := range projectPhotoURLs {
		if url = strings.TrimSpace(url); url != "" {
			photos = append(photos, domain.Photo{URL: url})
		}
	}
	return photos, nil
}

// openUploads opens each path and sniffs its content type.
func openUploads(paths []string) ([]domain.UploadFile, func(), error) {
	var opened []*os.File
	closeAll := func() {
		for _, f := range opened {
			_ = f.Close()
		}
	}

	files := make([]domain.UploadFile, 0, len(paths))
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			closeAll()
			return nil, nil, fmt.Errorf("open photo: %w", err)
		}
		opened = append(opened, f)

		info, err := f.Stat()
		if err != nil {
			closeAll()
			return nil, nil, fmt.Errorf("stat %s: %w", path, err)
		}

		head := make([]byte, 512)
		n, _ := f.Read(head)
		if _, err := f.Seek(0, 0); err != nil {
			closeAll()
			return nil, nil, fmt.Errorf("rewind %s: %w", path, err)
		}

		files = append(files, domain.UploadFile{
			Name:        filepath.Base(path),
			ContentType: http.DetectContentType(head[:n]),
			Size:        info.Size(),
			Body:        f,
		})
	}
	return files, closeAll, nil
}
