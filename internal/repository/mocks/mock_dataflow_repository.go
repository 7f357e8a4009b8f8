package mocks

import (
	"context"

	"docflow/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockDataflowRepository struct {
	mock.Mock
}

func (m *MockDataflowRepository) Create(ctx context.Context, rec *model.DataflowRecord) (*model.DataflowRecord, error) {
	args := m.Called(ctx, rec)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DataflowRecord), args.Error(1)
}
