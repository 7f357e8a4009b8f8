package mocks

import (
	"context"
	"io"

	"docflow/internal/storage"

	"github.com/stretchr/testify/mock"
)

type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) Put(ctx context.Context, bucket storage.Bucket, key string, r io.Reader, opt storage.PutObjectOptions) (storage.ObjectInfo, error) {
	args := m.Called(ctx, bucket, key, r, opt)
	if f, ok := args.Get(0).(func(context.Context, storage.Bucket, string, io.Reader, storage.PutObjectOptions) storage.ObjectInfo); ok {
		return f(ctx, bucket, key, r, opt), args.Error(1)
	}
	return args.Get(0).(storage.ObjectInfo), args.Error(1)
}

func (m *MockStorage) Get(ctx context.Context, bucket storage.Bucket, key string) (io.ReadCloser, storage.ObjectInfo, error) {
	args := m.Called(ctx, bucket, key)
	rc, _ := args.Get(0).(io.ReadCloser)
	return rc, args.Get(1).(storage.ObjectInfo), args.Error(2)
}

func (m *MockStorage) Stat(ctx context.Context, bucket storage.Bucket, key string) (storage.ObjectInfo, error) {
	args := m.Called(ctx, bucket, key)
	return args.Get(0).(storage.ObjectInfo), args.Error(1)
}

func (m *MockStorage) FindByName(ctx context.Context, bucket storage.Bucket, filename string) (storage.ObjectInfo, error) {
	args := m.Called(ctx, bucket, filename)
	return args.Get(0).(storage.ObjectInfo), args.Error(1)
}

func (m *MockStorage) FindLatest(ctx context.Context, bucket storage.Bucket) (storage.ObjectInfo, error) {
	args := m.Called(ctx, bucket)
	return args.Get(0).(storage.ObjectInfo), args.Error(1)
}

func (m *MockStorage) Delete(ctx context.Context, bucket storage.Bucket, key string) error {
	args := m.Called(ctx, bucket, key)
	return args.Error(0)
}
