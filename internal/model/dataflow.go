package model

import "time"

// DataflowRecord holds the customer dataflow engagement form.
type DataflowRecord struct {
	ID                               string    `json:"id"`
	ClientName                       string    `json:"client_name"`
	DataflowEndpoint                 string    `json:"dataflow_endpoint"`
	CustomerApplicationName          string    `json:"customer_application_name"`
	DeliveryTimeline                 string    `json:"delivery_timeline"`
	ProductionClusterInitial         string    `json:"production_cluster_initial"`
	ProductionClusterName            string    `json:"production_cluster_name"`
	QualityAssuranceClusterInitial   string    `json:"quality_assurance_cluster_initial"`
	QualityAssuranceClusterName      string    `json:"quality_assurance_cluster_name"`
	CustomerSolutionName             string    `json:"customer_solution_name"`
	MaximumLatency                   string    `json:"maximum_latency"`
	ArtifactoryClusterInitial        string    `json:"artifactory_cluster_initial"`
	ArtifactoryClusterName           string    `json:"artifactory_cluster_name"`
	DevelopmentClusterInitial        string    `json:"development_cluster_initial"`
	DevelopmentClusterName           string    `json:"development_cluster_name"`
	DataflowDescription              string    `json:"dataflow_description"`
	LegacyConnectivityDescription    string    `json:"legacy_connectivity_description"`
	CreatedAt                        time.Time `json:"created_at"`
}
