package mocks

import (
	"context"
	"io"

	"docflow/internal/model"
	"docflow/internal/storage"

	"github.com/stretchr/testify/mock"
)

type MockDocumentService struct {
	mock.Mock
}

func (m *MockDocumentService) Upload(ctx context.Context, kind model.DocumentKind, r io.Reader, originalFilename string, contentType string, size int64) (*model.Document, error) {
	args := m.Called(ctx, kind, r, originalFilename, contentType, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Document), args.Error(1)
}

func (m *MockDocumentService) Fetch(ctx context.Context, kind model.DocumentKind, storageID string) (io.ReadCloser, storage.ObjectInfo, error) {
	args := m.Called(ctx, kind, storageID)
	rc, _ := args.Get(0).(io.ReadCloser)
	return rc, args.Get(1).(storage.ObjectInfo), args.Error(2)
}

func (m *MockDocumentService) Delete(ctx context.Context, kind model.DocumentKind, storageID string) error {
	args := m.Called(ctx, kind, storageID)
	return args.Error(0)
}

func (m *MockDocumentService) FetchTemplate(ctx context.Context) (io.ReadCloser, storage.ObjectInfo, error) {
	args := m.Called(ctx)
	rc, _ := args.Get(0).(io.ReadCloser)
	return rc, args.Get(1).(storage.ObjectInfo), args.Error(2)
}

func (m *MockDocumentService) FetchLatestExcel(ctx context.Context) (io.ReadCloser, storage.ObjectInfo, error) {
	args := m.Called(ctx)
	rc, _ := args.Get(0).(io.ReadCloser)
	return rc, args.Get(1).(storage.ObjectInfo), args.Error(2)
}
