package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"docflow/internal/model"
	"docflow/internal/repository"
)

// DataflowService persists customer dataflow engagement forms.
type DataflowService interface {
	// Save stores a dataflow record. ClientName is the only required field.
	Save(ctx context.Context, rec *model.DataflowRecord) (*model.DataflowRecord, error)
}

type dataflowService struct {
	records repository.DataflowRepository
}

// NewDataflowService constructs a new DataflowService.
func NewDataflowService(records repository.DataflowRepository) DataflowService {
	return &dataflowService{records: records}
}

func (s *dataflowService) Save(ctx context.Context, rec *model.DataflowRecord) (*model.DataflowRecord, error) {
	if rec == nil || rec.ClientName == "" {
		return nil, ErrIDRequired
	}
	rec.ID = uuid.New().String()
	rec.CreatedAt = time.Now().UTC()
	return s.records.Create(ctx, rec)
}
