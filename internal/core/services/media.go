package services

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/shubhraaj/sitecms/internal/core/domain"
	"github.com/shubhraaj/sitecms/internal/core/ports/driven"
	"github.com/shubhraaj/sitecms/internal/core/ports/driving"
)

// Ensure MediaService implements the interface.
var _ driving.MediaService = (*MediaService)(nil)

// MediaService uploads project photos to the image host.
type MediaService struct {
	uploader     driven.ImageUploader
	folderPrefix string
}

// NewMediaService creates a media service. A nil uploader disables uploads.
func NewMediaService(uploader driven.ImageUploader, folderPrefix string) *MediaService {
	if folderPrefix == "" {
		folderPrefix = domain.DefaultFolderPrefix
	}
	return &MediaService{uploader: uploader, folderPrefix: folderPrefix}
}

// Available reports whether an image host is configured.
func (m *MediaService) Available() bool {
	return m.uploader != nil
}

// folderSeparators turns path separators in a title into dashes.
var folderSeparators = strings.NewReplacer("/", "-", "\\", "-")

// ProjectFolder returns the upload folder for a project title. The title is
// always one segment directly under <prefix>/projects.
func (m *MediaService) ProjectFolder(projectTitle string) string {
	segment := strings.TrimSpace(folderSeparators.Replace(projectTitle))
	if segment == "" || segment == "." || segment == ".." {
		segment = "untitled"
	}
	return path.Join(m.folderPrefix, "projects", segment)
}

// UploadProjectPhotos uploads files in order and returns their photos.
// Uploading stops at the first failure.
func (m *MediaService) UploadProjectPhotos(
	ctx context.Context,
	projectTitle string,
	files []domain.UploadFile,
) ([]domain.Photo, error) {
	if m.uploader == nil {
		return nil, domain.ErrUploadUnavailable
	}
	if strings.TrimSpace(projectTitle) == "" {
		return nil, fmt.Errorf("project title is required: %w", domain.ErrInvalidInput)
	}
	for _, f := range files {
		if !f.IsImage() {
			return nil, fmt.Errorf("%s is not an image (%s): %w", f.Name, f.ContentType, domain.ErrInvalidInput)
		}
	}

	folder := m.ProjectFolder(projectTitle)
	photos := make([]domain.Photo, 0, len(files))
	for _, f := range files {
		photo, err := m.uploader.Upload(ctx, folder, f)
		if err != nil {
			return photos, fmt.Errorf("upload %s: %w", f.Name, err)
		}
		photos = append(photos, photo)
	}
	return photos, nil
}
