package objectstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/rs/zerolog"

	"github.com/shubhraaj/sitecms/internal/core/domain"
	"github.com/shubhraaj/sitecms/internal/core/ports/driven"
	"github.com/shubhraaj/sitecms/internal/logger"
	"github.com/shubhraaj/sitecms/internal/metrics"
)

// DefaultRegion avoids a bucket-location round trip on every upload.
const DefaultRegion = "us-east-1"

// Ensure Uploader implements the interface.
var _ driven.ImageUploader = (*Uploader)(nil)

// Config configures the uploader.
type Config struct {
	Endpoint  string
	Bucket    string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Region    string

	// PublicURL is the base URL photos are served from. Empty derives it
	// from the endpoint and bucket.
	PublicURL string
}

// objectPutter is the subset of *minio.Client the uploader needs.
type objectPutter interface {
	PutObject(ctx context.Context, bucket, object string, reader io.Reader, size int64,
		opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

// Uploader stores images in a bucket.
type Uploader struct {
	client    objectPutter
	bucket    string
	publicURL string
	log       zerolog.Logger
}

// New creates an uploader for cfg.
func New(cfg Config) (*Uploader, error) {
	if cfg.Endpoint == "" || cfg.Bucket == "" {
		return nil, fmt.Errorf("endpoint and bucket are required: %w", domain.ErrInvalidInput)
	}
	region := cfg.Region
	if region == "" {
		region = DefaultRegion
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: region,
	})
	if err != nil {
		return nil, fmt.Errorf("create object store client: %w", err)
	}

	publicURL := cfg.PublicURL
	if publicURL == "" {
		publicURL = client.EndpointURL().String() + "/" + cfg.Bucket
	}
	return newUploader(client, cfg.Bucket, publicURL), nil
}

func newUploader(client objectPutter, bucket, publicURL string) *Uploader {
	return &Uploader{
		client:    client,
		bucket:    bucket,
		publicURL: strings.TrimRight(publicURL, "/"),
		log:       logger.WithComponent("objectstore"),
	}
}

// Upload stores file under folder.
func (u *Uploader) Upload(ctx context.Context, folder string, file domain.UploadFile) (domain.Photo, error) {
	if file.Body == nil {
		return domain.Photo{}, errors.New("empty file body")
	}

	object := ObjectName(folder, file.Name)
	contentType := file.ContentType
	if contentType == "" {
		contentType = mime.TypeByExtension(filepath.Ext(file.Name))
	}

	size := file.Size
	if size < 0 {
		size = -1
	}

	info, err := u.client.PutObject(ctx, u.bucket, object, file.Body, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		metrics.UploadsTotal.WithLabelValues("error").Inc()
		return domain.Photo{}, fmt.Errorf("put object %s: %w", object, err)
	}
	metrics.UploadsTotal.WithLabelValues("ok").Inc()

	u.log.Debug().Str("object", object).Int64("size", info.Size).Msg("uploaded image")

	return domain.Photo{
		URL:        u.publicURL + "/" + object,
		ExternalID: object,
	}, nil
}

// ObjectName returns a unique object key under folder keeping the file's extension.
func ObjectName(folder, fileName string) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	return path.Join(strings.Trim(folder, "/"), uuid.NewString()+ext)
}
