// Package storage enumerates backup objects under a bucket prefix.
package storage

import (
	"context"
	"fmt"
	"iter"

	"github.com/hamed0406/opscheck/internal/config"
	"github.com/hamed0406/opscheck/internal/domain"
)

// Lister yields every object under prefix, across all result pages. A listing
// error is yielded once and ends the sequence.
type Lister interface {
	ListObjects(ctx context.Context, prefix string) iter.Seq2[domain.ObjectRecord, error]
}

// New picks the backend named by cfg.StorageBackend.
func New(ctx context.Context, cfg config.Config) (Lister, error) {
	switch cfg.StorageBackend {
	case config.BackendS3, "":
		return NewS3(ctx, S3Options{
			Bucket:    cfg.Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.AWSAccessKey,
			SecretKey: cfg.AWSSecretKey,
		})
	case config.BackendGCS:
		return NewGCS(ctx, GCSOptions{
			Bucket:          cfg.Bucket,
			CredentialsFile: cfg.GCSCredentialsFile,
			Endpoint:        cfg.GCSEndpoint,
		})
	}
	return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
}
