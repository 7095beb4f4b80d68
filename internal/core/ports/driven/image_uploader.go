package driven

import (
	"context"

	"github.com/shubhraaj/sitecms/internal/core/domain"
)

// ImageUploader stores images on the external image host.
type ImageUploader interface {
	// Upload stores file under folder and returns its stable URL and identifier.
	Upload(ctx context.Context, folder string, file domain.UploadFile) (domain.Photo, error)
}
