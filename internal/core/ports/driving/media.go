package driving

import (
	"context"

	"github.com/shubhraaj/sitecms/internal/core/domain"
)

// MediaService uploads project gallery images.
type MediaService interface {
	// UploadProjectPhotos uploads files into the project's folder and
	// returns photos in the same order.
	UploadProjectPhotos(ctx context.Context, projectTitle string, files []domain.UploadFile) ([]domain.Photo, error)

	// Available reports whether an image host is configured.
	Available() bool
}
