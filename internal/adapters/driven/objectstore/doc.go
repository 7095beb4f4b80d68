// Package objectstore uploads project photos to an S3-compatible bucket
// (MinIO, R2, S3) using minio-go.
//
// Objects are named <folder>/<uuid><ext>. The returned photo URL is built
// from the configured public URL, or from the endpoint and bucket when no
// public URL is set. The object name doubles as the photo's ExternalID.
package objectstore
