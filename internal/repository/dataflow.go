package repository

import (
	"context"

	"docflow/internal/model"
)

// DataflowRepository persists customer dataflow engagement records.
type DataflowRepository interface {
	// Create inserts a dataflow record and returns the stored row.
	Create(ctx context.Context, rec *model.DataflowRecord) (*model.DataflowRecord, error)
}
