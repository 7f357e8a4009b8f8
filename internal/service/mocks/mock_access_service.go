package mocks

import (
	"context"
	"io"

	"docflow/internal/model"
	"docflow/internal/service"
	"docflow/internal/storage"

	"github.com/stretchr/testify/mock"
)

type MockAccessService struct {
	mock.Mock
}

func (m *MockAccessService) IssueGrant(ctx context.Context, kind model.DocumentKind, storageID string) (*service.GrantResult, error) {
	args := m.Called(ctx, kind, storageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.GrantResult), args.Error(1)
}

func (m *MockAccessService) Redeem(ctx context.Context, kind model.DocumentKind, bearerToken, storageID string) (io.ReadCloser, storage.ObjectInfo, error) {
	args := m.Called(ctx, kind, bearerToken, storageID)
	rc, _ := args.Get(0).(io.ReadCloser)
	return rc, args.Get(1).(storage.ObjectInfo), args.Error(2)
}
