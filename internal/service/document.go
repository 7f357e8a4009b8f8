package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"docflow/internal/model"
	"docflow/internal/storage"
)

// DocumentService defines the use cases for storing and fetching documents.
type DocumentService interface {
	// Upload streams the content into the kind's bucket under a generated key.
	// originalFilename is kept in object metadata; the stored key is UUID +
	// original extension.
	Upload(ctx context.Context, kind model.DocumentKind, r io.Reader, originalFilename string, contentType string, size int64) (*model.Document, error)

	// Fetch opens a read stream for a stored document by its storage id.
	Fetch(ctx context.Context, kind model.DocumentKind, storageID string) (io.ReadCloser, storage.ObjectInfo, error)

	// FetchTemplate opens a read stream for the configured document template.
	FetchTemplate(ctx context.Context) (io.ReadCloser, storage.ObjectInfo, error)

	// FetchLatestExcel opens a read stream for the newest Excel file.
	FetchLatestExcel(ctx context.Context) (io.ReadCloser, storage.ObjectInfo, error)

	// Delete removes a stored document by its storage id.
	Delete(ctx context.Context, kind model.DocumentKind, storageID string) error
}

// documentService is a concrete implementation of DocumentService.
type documentService struct {
	store            storage.Storage
	templateFilename string
}

// NewDocumentService constructs a new DocumentService.
func NewDocumentService(store storage.Storage, templateFilename string) DocumentService {
	return &documentService{store: store, templateFilename: templateFilename}
}

func (s *documentService) Upload(ctx context.Context, kind model.DocumentKind, r io.Reader, originalFilename string, contentType string, size int64) (*model.Document, error) {
	if r == nil {
		return nil, ErrReaderNil
	}
	bucket, err := bucketFor(kind)
	if err != nil {
		return nil, err
	}

	// Generate storage key using UUID + extension
	ext := filepath.Ext(originalFilename)
	key := uuid.New().String() + ext

	info, err := s.store.Put(ctx, bucket, key, r, storage.PutObjectOptions{
		Size:        size,
		ContentType: contentType,
		Metadata: map[string]string{
			storage.MetaOriginalFilename: originalFilename,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	return &model.Document{
		StorageID:   info.Key,
		Filename:    originalFilename,
		Kind:        kind,
		Size:        info.Size,
		ContentType: info.ContentType,
		UploadedAt:  time.Now().UTC(),
	}, nil
}

func (s *documentService) Fetch(ctx context.Context, kind model.DocumentKind, storageID string) (io.ReadCloser, storage.ObjectInfo, error) {
	if storageID == "" {
		return nil, storage.ObjectInfo{}, ErrIDRequired
	}
	bucket, err := bucketFor(kind)
	if err != nil {
		return nil, storage.ObjectInfo{}, err
	}
	rc, info, err := s.store.Get(ctx, bucket, storageID)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return nil, storage.ObjectInfo{}, ErrNotFound
		}
		return nil, storage.ObjectInfo{}, err
	}
	return rc, info, nil
}

func (s *documentService) Delete(ctx context.Context, kind model.DocumentKind, storageID string) error {
	if storageID == "" {
		return ErrIDRequired
	}
	bucket, err := bucketFor(kind)
	if err != nil {
		return err
	}
	// Stat first so deleting a missing document reports not-found instead of
	// silently succeeding.
	if _, err := s.store.Stat(ctx, bucket, storageID); err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return ErrNotFound
		}
		return err
	}
	return s.store.Delete(ctx, bucket, storageID)
}

func (s *documentService) FetchTemplate(ctx context.Context) (io.ReadCloser, storage.ObjectInfo, error) {
	info, err := s.store.FindByName(ctx, storage.BucketTemplate, s.templateFilename)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return nil, storage.ObjectInfo{}, ErrNotFound
		}
		return nil, storage.ObjectInfo{}, err
	}
	rc, info, err := s.store.Get(ctx, storage.BucketTemplate, info.Key)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return nil, storage.ObjectInfo{}, ErrNotFound
		}
		return nil, storage.ObjectInfo{}, err
	}
	return rc, info, nil
}

func (s *documentService) FetchLatestExcel(ctx context.Context) (io.ReadCloser, storage.ObjectInfo, error) {
	info, err := s.store.FindLatest(ctx, storage.BucketExcel)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return nil, storage.ObjectInfo{}, ErrNotFound
		}
		return nil, storage.ObjectInfo{}, err
	}
	rc, info, err := s.store.Get(ctx, storage.BucketExcel, info.Key)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return nil, storage.ObjectInfo{}, ErrNotFound
		}
		return nil, storage.ObjectInfo{}, err
	}
	return rc, info, nil
}
