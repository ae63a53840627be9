package assets

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

// BucketConfig holds the connection settings for an S3-compatible store.
type BucketConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	Region    string
}

// Bucket locates objects in an S3-compatible bucket.
type Bucket struct {
	client *minio.Client
	bucket string
	log    *zap.Logger
}

// NewBucket creates the minio client. No request is made until Exists is called.
func NewBucket(cfg BucketConfig, log *zap.Logger) (*Bucket, error) {
	if log == nil {
		log = zap.NewNop()
	}
	endpoint := strings.TrimPrefix(cfg.Endpoint, "https://")
	endpoint = strings.TrimPrefix(endpoint, "http://")

	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	log.Info("MinIO client initialized",
		zap.String("endpoint", endpoint),
		zap.String("bucket", cfg.Bucket),
		zap.Bool("use_ssl", cfg.UseSSL),
	)
	return &Bucket{client: client, bucket: cfg.Bucket, log: log}, nil
}

// Exists issues a HEAD for name. A missing key is not an error.
func (b *Bucket) Exists(ctx context.Context, name string) (bool, error) {
	clean, err := cleanName(name)
	if err != nil {
		return false, err
	}
	_, err = b.client.StatObject(ctx, b.bucket, clean, minio.StatObjectOptions{})
	if err == nil {
		return true, nil
	}
	switch minio.ToErrorResponse(err).Code {
	case "NoSuchKey", "NotFound":
		return false, nil
	}
	return false, fmt.Errorf("stat object %s/%s: %w", b.bucket, clean, err)
}

// Open returns a seekable reader over name and its modification time.
// A missing key yields an error matching fs.ErrNotExist.
func (b *Bucket) Open(ctx context.Context, name string) (io.ReadSeekCloser, time.Time, error) {
	clean, err := cleanName(name)
	if err != nil {
		return nil, time.Time{}, err
	}
	obj, err := b.client.GetObject(ctx, b.bucket, clean, minio.GetObjectOptions{})
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("get object %s/%s: %w", b.bucket, clean, err)
	}
	info, err := obj.Stat()
	if err != nil {
		obj.Close()
		switch minio.ToErrorResponse(err).Code {
		case "NoSuchKey", "NotFound":
			return nil, time.Time{}, fmt.Errorf("%s: %w", clean, fs.ErrNotExist)
		}
		return nil, time.Time{}, fmt.Errorf("stat object %s/%s: %w", b.bucket, clean, err)
	}
	b.log.Debug("Serving object", zap.String("key", clean), zap.Int64("size", info.Size))
	return obj, info.LastModified, nil
}
