package filestore

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ObjectAPI is the part of the minio client the store uses.
type ObjectAPI interface {
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader,
		objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error
}

type MinioOptions struct {
	Endpoint        string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	UseSSL          bool
}

// MinioStore keeps images in an S3 compatible bucket. Keys are object names.
type MinioStore struct {
	client  ObjectAPI
	bucket  string
	baseURL string
}

var _ FileStoreInterface = (*MinioStore)(nil)

func NewMinioClient(opts MinioOptions) (*minio.Client, error) {
	client, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKeyID, opts.SecretAccessKey, ""),
		Secure: opts.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("creating minio client: %w", err)
	}
	return client, nil
}

// NewMinio returns a store writing to bucket. baseURL is the public address
// objects are served from, usually "<scheme>://<endpoint>/<bucket>".
func NewMinio(client ObjectAPI, bucket, baseURL string) *MinioStore {
	return &MinioStore{
		client:  client,
		bucket:  bucket,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// PublicBaseURL returns the path-style URL of bucket on endpoint.
func PublicBaseURL(opts MinioOptions) string {
	scheme := "http"
	if opts.UseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s", scheme, opts.Endpoint, opts.Bucket)
}

func (m *MinioStore) WriteImage(
	ctx context.Context, kind Kind, name, suffix, contentType string, data []byte,
) (key string, n int, err error) {
	key, err = imagePath(kind, name, suffix)
	if err != nil {
		return "", 0, err
	}
	_, err = m.client.PutObject(ctx, m.bucket, key, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", 0, fmt.Errorf("putting object %q: %w", key, err)
	}
	return key, len(data), nil
}

func (m *MinioStore) DeleteKey(ctx context.Context, key string) error {
	key = strings.Trim(key, "/")
	if err := m.client.RemoveObject(ctx, m.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("removing object %q: %w", key, err)
	}
	return nil
}

func (m *MinioStore) FileURL(key string) string {
	return m.baseURL + "/" + strings.TrimLeft(key, "/")
}
