package transform

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/gcnet/coexnet/internal/coxpresdb"
	"github.com/gcnet/coexnet/internal/parquet"
)

// DefaultLogName is the filename of the aggregate run summary, written
// into the output directory.
const DefaultLogName = "transform_log.json"

// Exporter converts every COXPRESdb archive in an input directory into
// per-gene parquet files. Processing is sequential; re-runs are idempotent
// because genes with an existing output artifact are skipped.
type Exporter struct {
	OutputDir   string
	Compression string
	// LogPath overrides where the run summary is written. Defaults to
	// DefaultLogName inside OutputDir.
	LogPath string

	writer *parquet.Writer
	logger *zap.Logger
}

// NewExporter creates an exporter writing artifacts under outputDir with
// the given parquet compression codec (e.g. "snappy").
func NewExporter(outputDir, compression string) (*Exporter, error) {
	w, err := parquet.NewWriter()
	if err != nil {
		return nil, err
	}
	return &Exporter{
		OutputDir:   outputDir,
		Compression: compression,
		writer:      w,
		logger:      zap.NewNop(),
	}, nil
}

// SetLogger sets the logger for progress and error messages.
func (e *Exporter) SetLogger(l *zap.Logger) {
	e.logger = l
}

// Close releases the underlying parquet writer.
func (e *Exporter) Close() error {
	return e.writer.Close()
}

// ProcessArchive converts a single archive. Per-gene failures are recorded
// in the returned stats and never abort the archive; an unreadable archive
// is recorded as a dataset-level error.
func (e *Exporter) ProcessArchive(zipPath string) DatasetStats {
	base := filepath.Base(zipPath)
	datasetName := strings.TrimSuffix(base, filepath.Ext(base))

	stats := DatasetStats{
		Dataset: datasetName,
		Errors:  []string{},
	}

	datasetDir := filepath.Join(e.OutputDir, datasetName)
	if err := os.MkdirAll(datasetDir, 0o755); err != nil {
		stats.Errors = append(stats.Errors, fmt.Sprintf("create output directory: %v", err))
		return stats
	}

	archive, err := coxpresdb.OpenArchive(zipPath)
	if err != nil {
		e.logger.Error("cannot open archive", zap.String("archive", zipPath), zap.Error(err))
		stats.Errors = append(stats.Errors, fmt.Sprintf("archive processing error: %v", err))
		return stats
	}
	defer archive.Close()

	parseStats := coxpresdb.NewParseStats()
	for _, m := range archive.GeneMembers(parseStats) {
		outputFile := filepath.Join(datasetDir, fmt.Sprintf("%d.parquet", m.GeneID))

		// Already written by a previous run; count and move on.
		if _, err := os.Stat(outputFile); err == nil {
			e.logger.Debug("skipping already processed gene", zap.Int64("gene_id", m.GeneID))
			stats.FilesProcessed++
			continue
		}

		records, err := m.Parse(parseStats)
		if err != nil {
			stats.FilesFailed++
			stats.Errors = append(stats.Errors,
				fmt.Sprintf("error processing gene %d: %v", m.GeneID, err))
			continue
		}

		if len(records) == 0 {
			stats.FilesProcessed++
			continue
		}

		table := coxpresdb.TableFromRecords(records)
		if err := coxpresdb.CoexpressionSchema.Validate(table); err != nil {
			e.logger.Warn("schema validation failed",
				zap.Int64("gene_id", m.GeneID), zap.Error(err))
			stats.FilesFailed++
			stats.Errors = append(stats.Errors,
				fmt.Sprintf("schema validation failed for %d", m.GeneID))
			continue
		}

		if err := e.writer.WriteTable(table, outputFile, e.Compression); err != nil {
			e.logger.Error("parquet write failed",
				zap.Int64("gene_id", m.GeneID), zap.Error(err))
			stats.FilesFailed++
			stats.Errors = append(stats.Errors,
				fmt.Sprintf("error writing gene %d: %v", m.GeneID, err))
			continue
		}

		stats.FilesProcessed++
		stats.RecordsTotal += len(records)
	}

	return stats
}

// Run processes every zip archive in inputDir and writes the aggregate run
// summary. A failing archive is recorded in its dataset stats and does not
// stop the remaining archives.
func (e *Exporter) Run(inputDir string) (*Summary, error) {
	zipFiles, err := filepath.Glob(filepath.Join(inputDir, "*.zip"))
	if err != nil {
		return nil, fmt.Errorf("glob zip archives: %w", err)
	}
	sort.Strings(zipFiles)

	if err := os.MkdirAll(e.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	if len(zipFiles) == 0 {
		e.logger.Warn("no zip archives found", zap.String("input_dir", inputDir))
	} else {
		e.logger.Info("starting transformation",
			zap.String("input_dir", inputDir),
			zap.String("output_dir", e.OutputDir),
			zap.Int("archives", len(zipFiles)))
	}

	start := time.Now()
	details := make([]DatasetStats, 0, len(zipFiles))
	for _, zipPath := range zipFiles {
		e.logger.Info("processing archive", zap.String("archive", filepath.Base(zipPath)))
		stats := e.ProcessArchive(zipPath)
		details = append(details, stats)
		e.logger.Info("completed archive",
			zap.String("dataset", stats.Dataset),
			zap.Int("files_processed", stats.FilesProcessed),
			zap.Int("files_failed", stats.FilesFailed),
			zap.Int("records", stats.RecordsTotal))
	}
	duration := time.Since(start)

	summary := &Summary{
		Timestamp:         start.Format(time.RFC3339),
		DurationSeconds:   duration.Seconds(),
		DatasetsProcessed: len(details),
		Details:           details,
	}
	for _, s := range details {
		summary.TotalFiles += s.FilesProcessed
		summary.TotalFailed += s.FilesFailed
		summary.TotalRecords += s.RecordsTotal
	}

	if err := e.writeSummary(summary); err != nil {
		return summary, err
	}

	e.logger.Info("transformation complete",
		zap.Int("datasets", summary.DatasetsProcessed),
		zap.Int("total_files", summary.TotalFiles),
		zap.Int("total_failed", summary.TotalFailed),
		zap.Int("total_records", summary.TotalRecords),
		zap.Float64("duration_seconds", summary.DurationSeconds))

	return summary, nil
}

func (e *Exporter) writeSummary(summary *Summary) error {
	logPath := e.LogPath
	if logPath == "" {
		logPath = filepath.Join(e.OutputDir, DefaultLogName)
	}
	if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err != nil {
		return fmt.Errorf("create log directory: %w", err)
	}

	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal run summary: %w", err)
	}
	if err := os.WriteFile(logPath, data, 0o644); err != nil {
		return fmt.Errorf("write run summary: %w", err)
	}
	return nil
}
