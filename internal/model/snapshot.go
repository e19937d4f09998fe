package model

import "time"

// SnapshotVersion is written into every exported dataset snapshot.
const SnapshotVersion = "1.0"

// DatasetSnapshot is the single persisted artifact of the ingestion pipeline
// and the sole input to the runtime search engine.
type DatasetSnapshot struct {
	Companies []CompanyEntity  `json:"companies"`
	Metadata  SnapshotMetadata `json:"metadata"`
	Indexes   SnapshotIndexes  `json:"indexes"`
}

// SnapshotMetadata describes the export.
type SnapshotMetadata struct {
	TotalCompanies int       `json:"totalCompanies"`
	GeneratedAt    time.Time `json:"generatedAt"`
	Version        string    `json:"version"`
}

// SnapshotIndexes is a denormalized summary of the distinct index values.
// Keywords is capped at the first 1000 distinct entries; the cap is a size
// bound, not a correctness guarantee.
type SnapshotIndexes struct {
	RevenueRanges   []string `json:"revenueRanges"`
	FleetSizeRanges []string `json:"fleetSizeRanges"`
	ValuationRanges []string `json:"valuationRanges"`
	Geographies     []string `json:"geographies"`
	Keywords        []string `json:"keywords"`
}

// CSVFileMetadata describes one physical source file in the file index.
// Records are never merged across files.
type CSVFileMetadata struct {
	Filename string   `json:"filename"`
	Filepath string   `json:"filepath"`
	Number   int      `json:"number"`
	Company  string   `json:"company,omitempty"`
	Topic    string   `json:"topic,omitempty"`
	Keywords []string `json:"keywords"`
	Columns  []string `json:"columns"`
	RowCount int      `json:"rowCount"`
}

// FileIndexSnapshot is the persisted artifact of the file-metadata pipeline.
type FileIndexSnapshot struct {
	Files       []CSVFileMetadata `json:"files"`
	Companies   []string          `json:"companies"`
	Topics      []string          `json:"topics"`
	GeneratedAt time.Time         `json:"generatedAt"`
}
