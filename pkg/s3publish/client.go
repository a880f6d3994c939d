package s3publish

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ClientConfig selects the AWS region and an optional S3-compatible endpoint.
type ClientConfig struct {
	// Region overrides the region from the shared AWS config.
	Region string

	// Endpoint points at an S3-compatible store such as MinIO.
	// Path-style addressing is used when set.
	Endpoint string
}

// NewUploader builds a multipart upload manager from the default AWS
// credential chain.
func NewUploader(ctx context.Context, cc ClientConfig, pc PublisherConfig) (*manager.Uploader, error) {
	var opts []func(*config.LoadOptions) error
	if cc.Region != "" {
		opts = append(opts, config.WithRegion(cc.Region))
	}
	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}
	return NewUploaderWithConfig(cfg, cc, pc), nil
}

// NewUploaderWithConfig builds an upload manager from an existing AWS config.
func NewUploaderWithConfig(cfg aws.Config, cc ClientConfig, pc PublisherConfig) *manager.Uploader {
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if cc.Endpoint != "" {
			o.BaseEndpoint = aws.String(cc.Endpoint)
			o.UsePathStyle = true
		}
	})

	pc = pc.withDefaults()
	return manager.NewUploader(client, func(u *manager.Uploader) {
		u.Concurrency = pc.Concurrency
		u.PartSize = pc.PartSize
	})
}
