package domain

import (
	"io"
	"strings"
)

// UploadFile is an image submitted for a project gallery.
type UploadFile struct {
	// Name is the original file name, used for the extension.
	Name string

	// ContentType is the MIME type, e.g. image/jpeg.
	ContentType string

	// Size is the byte length of Body, or -1 if unknown.
	Size int64

	// Body streams the file contents.
	Body io.Reader
}

// IsImage returns true if the content type is an image type.
func (f UploadFile) IsImage() bool {
	return strings.HasPrefix(strings.ToLower(f.ContentType), "image/")
}
