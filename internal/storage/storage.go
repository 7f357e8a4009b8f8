package storage

import (
	"context"
	"errors"
	"io"
	"time"
)

// Package storage contains the blob store abstraction for office documents.
// Implementations must avoid using local disk and rely on streaming I/O only.

// Bucket names a document category. Each category maps to its own bucket in
// the underlying object store.
type Bucket string

const (
	// BucketWord holds Word documents.
	BucketWord Bucket = "word"
	// BucketExcel holds Excel files.
	BucketExcel Bucket = "excel"
	// BucketTemplate holds standard contents (document templates).
	BucketTemplate Bucket = "template"
)

// ErrObjectNotFound is returned when the requested object does not exist in
// the addressed bucket. It is a distinct failure domain from credential
// errors and must stay distinguishable at the boundary.
var ErrObjectNotFound = errors.New("object not found")

// MetaOriginalFilename is the object metadata key carrying the filename the
// caller uploaded the object under.
const MetaOriginalFilename = "original-filename"

// PutObjectOptions define optional parameters for uploading objects.
// Size should be the exact number of bytes if known; if unknown, set to -1 and
// the implementation will buffer/chunk as supported by the backend.
type PutObjectOptions struct {
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// ObjectInfo contains basic information about an object in storage.
type ObjectInfo struct {
	Key          string
	Size         int64
	ETag         string
	ContentType  string
	LastModified time.Time
	Metadata     map[string]string
}

// Filename returns the original upload filename if recorded, else the key.
func (o ObjectInfo) Filename() string {
	if name := o.Metadata[MetaOriginalFilename]; name != "" {
		return name
	}
	return o.Key
}

// Storage is a bucket-addressed blob store client. Methods use context and
// streaming readers; no local disk is used. Implementations must be safe for
// concurrent use.
type Storage interface {
	// Put uploads an object under the given key using the provided reader and options.
	Put(ctx context.Context, bucket Bucket, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error)
	// Get retrieves an object's content as a streaming reader alongside its info.
	// A missing object yields ErrObjectNotFound at open time.
	Get(ctx context.Context, bucket Bucket, key string) (io.ReadCloser, ObjectInfo, error)
	// Stat returns object info without reading content. A missing object
	// yields ErrObjectNotFound.
	Stat(ctx context.Context, bucket Bucket, key string) (ObjectInfo, error)
	// FindByName returns info for the object whose original filename (or key)
	// equals filename.
	FindByName(ctx context.Context, bucket Bucket, filename string) (ObjectInfo, error)
	// FindLatest returns info for the most recently modified object in the bucket.
	FindLatest(ctx context.Context, bucket Bucket) (ObjectInfo, error)
	// Delete removes an object by key.
	Delete(ctx context.Context, bucket Bucket, key string) error
}
