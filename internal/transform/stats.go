// Package transform converts raw COXPRESdb zip archives into per-gene
// parquet artifacts and aggregates run statistics.
package transform

// DatasetStats holds per-archive processing counts. Errors collects
// human-readable messages for members or archives that failed; a non-empty
// list never aborts the run.
type DatasetStats struct {
	Dataset        string   `json:"dataset"`
	FilesProcessed int      `json:"files_processed"`
	FilesFailed    int      `json:"files_failed"`
	RecordsTotal   int      `json:"records_total"`
	Errors         []string `json:"errors"`
}

// Summary is the aggregate run log written after all archives are
// processed.
type Summary struct {
	Timestamp         string         `json:"timestamp"`
	DurationSeconds   float64        `json:"duration_seconds"`
	DatasetsProcessed int            `json:"datasets_processed"`
	TotalFiles        int            `json:"total_files"`
	TotalFailed       int            `json:"total_failed"`
	TotalRecords      int            `json:"total_records"`
	Details           []DatasetStats `json:"details"`
}
