package export

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinIOBackend stores the blob as one object in an S3-compatible bucket.
type MinIOBackend struct {
	client *minio.Client
	bucket string
	key    string
}

// NewMinIO creates a client for endpoint, e.g. "127.0.0.1:9000". The bucket
// is created lazily by Ensure.
func NewMinIO(endpoint, accessKey, secretKey, bucket, key string, useSSL bool) (*MinIOBackend, error) {
	c, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, err
	}
	return &MinIOBackend{client: c, bucket: bucket, key: key}, nil
}

func (m *MinIOBackend) Ensure(ctx context.Context) (string, error) {
	exists, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return "", err
	}
	if !exists {
		if err := m.client.MakeBucket(ctx, m.bucket, minio.MakeBucketOptions{}); err != nil {
			return "", err
		}
	}
	return fmt.Sprintf("s3://%s/%s", m.bucket, m.key), nil
}

func (m *MinIOBackend) Put(ctx context.Context, data []byte) error {
	_, err := m.client.PutObject(ctx, m.bucket, m.key, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/octet-stream"})
	return err
}

func (m *MinIOBackend) Get(ctx context.Context) ([]byte, error) {
	obj, err := m.client.GetObject(ctx, m.bucket, m.key, minio.GetObjectOptions{})
	if err != nil {
		return nil, notExist(err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, notExist(err)
	}
	return data, nil
}

func (m *MinIOBackend) Remove(ctx context.Context) error {
	// S3 deletes of a missing key succeed.
	return m.client.RemoveObject(ctx, m.bucket, m.key, minio.RemoveObjectOptions{})
}

func notExist(err error) error {
	if minio.ToErrorResponse(err).Code == "NoSuchKey" {
		return fmt.Errorf("%w: %v", ErrNotExist, err)
	}
	return err
}
