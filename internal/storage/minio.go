package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"docflow/internal/config"
)

// minioStorage implements the Storage interface using an S3-compatible backend
// (MinIO, AWS S3, etc.). It is safe for concurrent use by multiple goroutines.
type minioStorage struct {
	client  *minio.Client
	buckets map[Bucket]string
}

// NewMinIO creates a new S3-compatible storage client backed by MinIO.
// It validates connectivity and ensures all category buckets exist
// (creates them if missing).
func NewMinIO(cfg config.MinIOConfig) (Storage, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("minio endpoint is required")
	}
	if cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, fmt.Errorf("minio credentials are required")
	}
	if cfg.WordBucket == "" || cfg.ExcelBucket == "" || cfg.TemplateBucket == "" {
		return nil, fmt.Errorf("minio bucket names are required")
	}

	cli, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	ms := &minioStorage{
		client: cli,
		buckets: map[Bucket]string{
			BucketWord:     cfg.WordBucket,
			BucketExcel:    cfg.ExcelBucket,
			BucketTemplate: cfg.TemplateBucket,
		},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Ensure all category buckets exist.
	for _, name := range ms.buckets {
		exists, err := cli.BucketExists(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("check bucket %s existence: %w", name, err)
		}
		if !exists {
			if err := cli.MakeBucket(ctx, name, minio.MakeBucketOptions{}); err != nil {
				return nil, fmt.Errorf("create bucket %s: %w", name, err)
			}
		}
	}

	return ms, nil
}

func (m *minioStorage) bucketName(b Bucket) (string, error) {
	name, ok := m.buckets[b]
	if !ok {
		return "", fmt.Errorf("unknown bucket %q", b)
	}
	return name, nil
}

// Put uploads an object using streaming I/O only (no local disk).
func (m *minioStorage) Put(ctx context.Context, bucket Bucket, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error) {
	name, err := m.bucketName(bucket)
	if err != nil {
		return ObjectInfo{}, err
	}
	putOpts := minio.PutObjectOptions{
		ContentType:  opt.ContentType,
		UserMetadata: opt.Metadata,
	}
	info, err := m.client.PutObject(ctx, name, key, r, opt.Size, putOpts)
	if err != nil {
		return ObjectInfo{}, err
	}
	return ObjectInfo{
		Key:          key,
		Size:         info.Size,
		ETag:         info.ETag,
		ContentType:  opt.ContentType,
		LastModified: time.Now(), // MinIO PutObjectInfo doesn't return LastModified
		Metadata:     opt.Metadata,
	}, nil
}

// Get downloads an object content as a ReadCloser along with basic info.
// The stat happens up front so a missing object fails at open time.
func (m *minioStorage) Get(ctx context.Context, bucket Bucket, key string) (io.ReadCloser, ObjectInfo, error) {
	name, err := m.bucketName(bucket)
	if err != nil {
		return nil, ObjectInfo{}, err
	}
	obj, err := m.client.GetObject(ctx, name, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, ObjectInfo{}, mapNotFound(err)
	}
	// Fetch stat to populate info; avoid reading content into memory.
	st, err := obj.Stat()
	if err != nil {
		obj.Close()
		return nil, ObjectInfo{}, mapNotFound(err)
	}
	return obj, fromMinioInfo(key, st), nil
}

// Stat returns object info without opening a read stream.
func (m *minioStorage) Stat(ctx context.Context, bucket Bucket, key string) (ObjectInfo, error) {
	name, err := m.bucketName(bucket)
	if err != nil {
		return ObjectInfo{}, err
	}
	st, err := m.client.StatObject(ctx, name, key, minio.StatObjectOptions{})
	if err != nil {
		return ObjectInfo{}, mapNotFound(err)
	}
	return fromMinioInfo(key, st), nil
}

// FindByName scans the bucket for the object whose recorded original filename
// (or key) matches. Buckets hold at most a few thousand objects here, so a
// listing pass is acceptable.
func (m *minioStorage) FindByName(ctx context.Context, bucket Bucket, filename string) (ObjectInfo, error) {
	name, err := m.bucketName(bucket)
	if err != nil {
		return ObjectInfo{}, err
	}
	for obj := range m.client.ListObjects(ctx, name, minio.ListObjectsOptions{WithMetadata: true}) {
		if obj.Err != nil {
			return ObjectInfo{}, obj.Err
		}
		info := fromMinioInfo(obj.Key, obj)
		if info.Filename() == filename || obj.Key == filename {
			return m.Stat(ctx, bucket, obj.Key)
		}
	}
	return ObjectInfo{}, ErrObjectNotFound
}

// FindLatest returns the most recently modified object in the bucket.
func (m *minioStorage) FindLatest(ctx context.Context, bucket Bucket) (ObjectInfo, error) {
	name, err := m.bucketName(bucket)
	if err != nil {
		return ObjectInfo{}, err
	}
	var latest *minio.ObjectInfo
	for obj := range m.client.ListObjects(ctx, name, minio.ListObjectsOptions{WithMetadata: true}) {
		if obj.Err != nil {
			return ObjectInfo{}, obj.Err
		}
		o := obj
		if latest == nil || o.LastModified.After(latest.LastModified) {
			latest = &o
		}
	}
	if latest == nil {
		return ObjectInfo{}, ErrObjectNotFound
	}
	return m.Stat(ctx, bucket, latest.Key)
}

// Delete removes an object by key.
func (m *minioStorage) Delete(ctx context.Context, bucket Bucket, key string) error {
	name, err := m.bucketName(bucket)
	if err != nil {
		return err
	}
	return m.client.RemoveObject(ctx, name, key, minio.RemoveObjectOptions{})
}

func fromMinioInfo(key string, st minio.ObjectInfo) ObjectInfo {
	return ObjectInfo{
		Key:          key,
		Size:         st.Size,
		ETag:         st.ETag,
		ContentType:  st.ContentType,
		LastModified: st.LastModified,
		Metadata:     st.UserMetadata,
	}
}

// mapNotFound translates the backend's missing-key error into the package
// sentinel so callers can branch on the failure domain.
func mapNotFound(err error) error {
	var resp minio.ErrorResponse
	if errors.As(err, &resp) && (resp.Code == "NoSuchKey" || resp.Code == "NoSuchBucket") {
		return ErrObjectNotFound
	}
	return err
}
