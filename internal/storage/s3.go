package storage

import (
	"context"
	"fmt"
	"iter"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/hamed0406/opscheck/internal/domain"
)

type S3Options struct {
	Bucket    string
	Region    string
	Endpoint  string // S3 compatible endpoint, path-style addressing
	AccessKey string
	SecretKey string
}

type S3 struct {
	client *s3.Client
	bucket string
}

func NewS3(ctx context.Context, o S3Options) (*S3, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(o.Region),
	}
	// without explicit keys the default chain (env, profile, IMDS) applies
	if o.AccessKey != "" || o.SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(o.AccessKey, o.SecretKey, ""),
		))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(so *s3.Options) {
		if o.Endpoint != "" {
			so.BaseEndpoint = aws.String(o.Endpoint)
			so.UsePathStyle = true
		}
	})
	return &S3{client: client, bucket: o.Bucket}, nil
}

func (s *S3) ListObjects(ctx context.Context, prefix string) iter.Seq2[domain.ObjectRecord, error] {
	return func(yield func(domain.ObjectRecord, error) bool) {
		p := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
			Bucket: aws.String(s.bucket),
			Prefix: aws.String(prefix),
		})
		for p.HasMorePages() {
			page, err := p.NextPage(ctx)
			if err != nil {
				yield(domain.ObjectRecord{}, fmt.Errorf("list s3://%s/%s: %w", s.bucket, prefix, err))
				return
			}
			for _, obj := range page.Contents {
				rec := domain.ObjectRecord{Key: aws.ToString(obj.Key)}
				if obj.LastModified != nil {
					rec.LastModified = obj.LastModified.UTC()
				}
				if !yield(rec, nil) {
					return
				}
			}
		}
	}
}
