package minioad

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"stayfinder/internal/adapters/observability"
)

// Store uploads hotel images to an S3-compatible bucket and returns public
// object URLs in upload order.
type Store struct {
	c          *minio.Client
	bucket     string
	publicBase string
}

func New(endpoint, accessKey, secretKey, bucket, publicBase string, useSSL bool) (*Store, error) {
	c, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, err
	}
	return &Store{c: c, bucket: bucket, publicBase: publicBase}, nil
}

// EnsureBucket creates the bucket if it does not exist yet.
func (s *Store) EnsureBucket(ctx context.Context) error {
	ok, err := s.c.BucketExists(ctx, s.bucket)
	if err != nil {
		return err
	}
	if ok {
		return nil
	}
	return s.c.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{})
}

func (s *Store) Upload(ctx context.Context, objectName, contentType string, data []byte) (string, error) {
	start := time.Now()
	_, err := s.c.PutObject(ctx, s.bucket, objectName, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	status := 200
	if err != nil {
		status = 502
	}
	observability.ObserveExternal("minio", "put_object", status, time.Since(start))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/%s/%s", s.publicBase, s.bucket, objectName), nil
}
