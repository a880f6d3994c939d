// Package s3publish uploads a results directory to S3 so benchmark
// sessions from different machines can be collected in one place.
package s3publish

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"

	"github.com/eunmann/algobench/pkg/logging"
)

const (
	contentType         = "text/plain; charset=utf-8"
	manifestContentType = "application/json"
)

// Uploader is the subset of *manager.Uploader used here.
type Uploader interface {
	Upload(ctx context.Context, input *s3.PutObjectInput, opts ...func(*manager.Uploader)) (*manager.UploadOutput, error)
}

// PublisherConfig configures uploads.
type PublisherConfig struct {
	// Concurrency is the number of parts uploaded in parallel per object.
	// Default: max(2, NumCPU/2).
	Concurrency int

	// PartSize is the multipart part size in bytes. Default and minimum 5MiB.
	PartSize int64

	// DryRun lists what would be uploaded without contacting S3.
	DryRun bool

	// Manifest uploads manifest.json with per-file sizes and checksums
	// after every result file.
	Manifest bool

	// RunID is recorded in the manifest.
	RunID string
}

func (c PublisherConfig) withDefaults() PublisherConfig {
	if c.Concurrency <= 0 {
		c.Concurrency = max(2, runtime.NumCPU()/2)
	}
	if c.PartSize < manager.MinUploadPartSize {
		c.PartSize = manager.MinUploadPartSize
	}
	return c
}

// Result summarizes a publish. Files, Bytes and Keys exclude the manifest.
type Result struct {
	Files       int
	Bytes       int64
	Keys        []string
	ManifestKey string
	Duration    time.Duration
}

// Publisher uploads files under a local directory to a Destination.
type Publisher struct {
	up  Uploader
	cfg PublisherConfig
	log zerolog.Logger
}

// NewPublisher creates a Publisher. up may be nil when cfg.DryRun is set.
func NewPublisher(up Uploader, cfg PublisherConfig, log zerolog.Logger) *Publisher {
	return &Publisher{up: up, cfg: cfg.withDefaults(), log: log}
}

// Publish uploads every regular file under dir, keyed by its path relative
// to dir. Leftover .tmp files are skipped. The manifest, when enabled, is
// uploaded last so its presence marks a complete upload.
func (p *Publisher) Publish(ctx context.Context, dir string, dest Destination) (Result, error) {
	start := time.Now()
	var res Result

	var m *Manifest
	if p.cfg.Manifest {
		m = newManifest(p.cfg.RunID)
	}

	err := walkPublishable(dir, func(rel, path string) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		key := dest.Key(rel)

		n, err := p.uploadFile(ctx, path, dest.Bucket, key)
		if err != nil {
			return err
		}
		if m != nil {
			if err := m.add(rel, path); err != nil {
				return err
			}
		}
		res.Files++
		res.Bytes += n
		res.Keys = append(res.Keys, key)
		return nil
	})
	if err == nil && m != nil {
		res.ManifestKey, err = p.uploadManifest(ctx, m, dest)
	}
	res.Duration = time.Since(start)
	if err != nil {
		return res, fmt.Errorf("publish %s to %s: %w", dir, dest, err)
	}

	logging.PhaseComplete(p.log, "publish", res.Duration).
		Str("destination", dest.String()).
		Int("files", res.Files).
		Bytes("bytes", res.Bytes).
		Str("dry_run", fmt.Sprint(p.cfg.DryRun)).
		Log("results published")
	return res, nil
}

func (p *Publisher) uploadManifest(ctx context.Context, m *Manifest, dest Destination) (string, error) {
	data, err := m.Marshal()
	if err != nil {
		return "", err
	}
	key := dest.Key(ManifestName)
	if p.cfg.DryRun {
		p.log.Info().Str("key", key).Int("files", len(m.Files)).Msg("would upload manifest")
		return key, nil
	}
	if err := p.put(ctx, dest.Bucket, key, bytes.NewReader(data), manifestContentType); err != nil {
		return "", err
	}
	return key, nil
}

func (p *Publisher) uploadFile(ctx context.Context, path, bucket, key string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	if p.cfg.DryRun {
		p.log.Info().Str("file", path).Str("key", key).Msg("would upload")
		return info.Size(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	start := time.Now()
	if err := p.put(ctx, bucket, key, f, contentType); err != nil {
		return 0, err
	}

	logging.FileWritten(p.log, "publish", time.Since(start)).
		Str("key", key).
		Bytes("bytes", info.Size()).
		LogDebug("object uploaded")
	return info.Size(), nil
}

func (p *Publisher) put(ctx context.Context, bucket, key string, body io.Reader, ctype string) error {
	_, err := p.up.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(ctype),
	}, func(u *manager.Uploader) {
		u.Concurrency = p.cfg.Concurrency
		u.PartSize = p.cfg.PartSize
	})
	if err != nil {
		return fmt.Errorf("upload s3://%s/%s: %w", bucket, key, err)
	}
	return nil
}
