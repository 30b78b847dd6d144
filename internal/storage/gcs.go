package storage

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"os"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"github.com/hamed0406/opscheck/internal/domain"
)

type GCSOptions struct {
	Bucket          string
	CredentialsFile string // service account key; empty uses application default credentials
	Endpoint        string // emulator or private endpoint, implies no authentication
}

type GCS struct {
	client *storage.Client
	bucket string
}

func NewGCS(ctx context.Context, o GCSOptions) (*GCS, error) {
	var opts []option.ClientOption
	if o.CredentialsFile != "" {
		if _, err := os.Stat(o.CredentialsFile); err != nil {
			return nil, fmt.Errorf("service account key not found at path %s: %w", o.CredentialsFile, err)
		}
		opts = append(opts, option.WithCredentialsFile(o.CredentialsFile))
	}
	if o.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(o.Endpoint), option.WithoutAuthentication())
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS storage client: %w", err)
	}
	return &GCS{client: client, bucket: o.Bucket}, nil
}

func (g *GCS) Close() error { return g.client.Close() }

func (g *GCS) ListObjects(ctx context.Context, prefix string) iter.Seq2[domain.ObjectRecord, error] {
	return func(yield func(domain.ObjectRecord, error) bool) {
		q := &storage.Query{Prefix: prefix}
		if err := q.SetAttrSelection([]string{"Name", "Updated"}); err != nil {
			yield(domain.ObjectRecord{}, err)
			return
		}
		it := g.client.Bucket(g.bucket).Objects(ctx, q)
		for {
			attrs, err := it.Next()
			if errors.Is(err, iterator.Done) {
				return
			}
			if err != nil {
				yield(domain.ObjectRecord{}, fmt.Errorf("list gs://%s/%s: %w", g.bucket, prefix, err))
				return
			}
			if !yield(domain.ObjectRecord{Key: attrs.Name, LastModified: attrs.Updated.UTC()}, nil) {
				return
			}
		}
	}
}
