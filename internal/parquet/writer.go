// Package parquet writes coexpression tables as compressed parquet files
// through an embedded DuckDB instance.
package parquet

import (
	"database/sql"
	"fmt"
	"os"
	"strings"

	_ "github.com/marcboeker/go-duckdb"

	"github.com/gcnet/coexnet/internal/coxpresdb"
)

// Codecs supported by DuckDB's parquet COPY.
var supportedCodecs = map[string]bool{
	"snappy":       true,
	"gzip":         true,
	"zstd":         true,
	"uncompressed": true,
}

// Writer persists validated coexpression tables as parquet artifacts. It
// holds a single in-memory DuckDB connection reused across writes.
type Writer struct {
	db *sql.DB
}

// NewWriter opens an in-memory DuckDB instance for parquet export.
func NewWriter() (*Writer, error) {
	db, err := sql.Open("duckdb", "")
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}
	return &Writer{db: db}, nil
}

// Close closes the database connection.
func (w *Writer) Close() error {
	return w.db.Close()
}

// WriteTable writes the table to path as parquet with the given compression
// codec. The file appears at path only after a fully successful write; a
// partial export never leaves an artifact behind.
func (w *Writer) WriteTable(t *coxpresdb.Table, path, codec string) error {
	codec = strings.ToLower(codec)
	if !supportedCodecs[codec] {
		return fmt.Errorf("unsupported parquet compression %q", codec)
	}

	if _, err := w.db.Exec(`
		CREATE OR REPLACE TABLE coexpression (
			gene_id_1 BIGINT NOT NULL,
			gene_id_2 BIGINT NOT NULL,
			association DOUBLE NOT NULL
		)
	`); err != nil {
		return fmt.Errorf("create staging table: %w", err)
	}
	defer w.db.Exec("DROP TABLE IF EXISTS coexpression")

	if err := w.insertRecords(t.Records()); err != nil {
		return err
	}

	tmpPath := path + ".tmp"
	copyStmt := fmt.Sprintf("COPY coexpression TO '%s' (FORMAT PARQUET, COMPRESSION %s)",
		escapePath(tmpPath), codec)
	if _, err := w.db.Exec(copyStmt); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("copy to parquet: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename parquet file: %w", err)
	}
	return nil
}

// insertRecords loads records into the staging table in batches.
func (w *Writer) insertRecords(records []coxpresdb.Record) error {
	const batchSize = 512

	for start := 0; start < len(records); start += batchSize {
		end := start + batchSize
		if end > len(records) {
			end = len(records)
		}
		batch := records[start:end]

		var sb strings.Builder
		sb.WriteString("INSERT INTO coexpression VALUES ")
		args := make([]interface{}, 0, len(batch)*3)
		for i, r := range batch {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString("(?, ?, ?)")
			args = append(args, r.GeneID1, r.GeneID2, r.Association)
		}

		if _, err := w.db.Exec(sb.String(), args...); err != nil {
			return fmt.Errorf("insert records: %w", err)
		}
	}
	return nil
}

// escapePath escapes single quotes for embedding a path in a COPY statement.
func escapePath(path string) string {
	return strings.ReplaceAll(path, "'", "''")
}
