package postgres

import (
	"context"
	"database/sql"

	"docflow/internal/model"
	"docflow/internal/repository"
)

// DataflowPostgres is a PostgreSQL implementation of repository.DataflowRepository.
type DataflowPostgres struct {
	db *sql.DB
}

// NewDataflowPostgres creates a new DataflowPostgres repository.
func NewDataflowPostgres(db *sql.DB) *DataflowPostgres {
	return &DataflowPostgres{db: db}
}

var _ repository.DataflowRepository = (*DataflowPostgres)(nil)

// Create inserts a dataflow record and returns the stored row.
func (r *DataflowPostgres) Create(ctx context.Context, rec *model.DataflowRecord) (*model.DataflowRecord, error) {
	const q = `
		INSERT INTO dataflow_records (
			id, client_name, dataflow_endpoint, customer_application_name,
			delivery_timeline, production_cluster_initial, production_cluster_name,
			quality_assurance_cluster_initial, quality_assurance_cluster_name,
			customer_solution_name, maximum_latency, artifactory_cluster_initial,
			artifactory_cluster_name, development_cluster_initial,
			development_cluster_name, dataflow_description,
			legacy_connectivity_description, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		RETURNING id, created_at
	`
	row := r.db.QueryRowContext(ctx, q,
		rec.ID,
		rec.ClientName,
		rec.DataflowEndpoint,
		rec.CustomerApplicationName,
		rec.DeliveryTimeline,
		rec.ProductionClusterInitial,
		rec.ProductionClusterName,
		rec.QualityAssuranceClusterInitial,
		rec.QualityAssuranceClusterName,
		rec.CustomerSolutionName,
		rec.MaximumLatency,
		rec.ArtifactoryClusterInitial,
		rec.ArtifactoryClusterName,
		rec.DevelopmentClusterInitial,
		rec.DevelopmentClusterName,
		rec.DataflowDescription,
		rec.LegacyConnectivityDescription,
		rec.CreatedAt,
	)
	out := *rec
	if err := row.Scan(&out.ID, &out.CreatedAt); err != nil {
		return nil, err
	}
	return &out, nil
}
