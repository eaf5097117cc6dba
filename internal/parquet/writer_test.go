package parquet

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gcnet/coexnet/internal/coxpresdb"
)

func readBack(t *testing.T, path string) []coxpresdb.Record {
	t.Helper()

	db, err := sql.Open("duckdb", "")
	require.NoError(t, err)
	defer db.Close()

	rows, err := db.Query(fmt.Sprintf(
		"SELECT gene_id_1, gene_id_2, association FROM read_parquet('%s') ORDER BY gene_id_2",
		escapePath(path)))
	require.NoError(t, err)
	defer rows.Close()

	var records []coxpresdb.Record
	for rows.Next() {
		var r coxpresdb.Record
		require.NoError(t, rows.Scan(&r.GeneID1, &r.GeneID2, &r.Association))
		records = append(records, r)
	}
	require.NoError(t, rows.Err())
	return records
}

func TestWriter_WriteTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "42.parquet")

	w, err := NewWriter()
	require.NoError(t, err)
	defer w.Close()

	table := coxpresdb.TableFromRecords([]coxpresdb.Record{
		{GeneID1: 42, GeneID2: 7, Association: 0.55},
		{GeneID1: 42, GeneID2: 9, Association: 0.25},
	})
	require.NoError(t, w.WriteTable(table, path, "snappy"))

	got := readBack(t, path)
	require.Len(t, got, 2)
	assert.Equal(t, coxpresdb.Record{GeneID1: 42, GeneID2: 7, Association: 0.55}, got[0])
	assert.Equal(t, coxpresdb.Record{GeneID1: 42, GeneID2: 9, Association: 0.25}, got[1])

	// No temp file left behind.
	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestWriter_ReusedAcrossWrites(t *testing.T) {
	dir := t.TempDir()

	w, err := NewWriter()
	require.NoError(t, err)
	defer w.Close()

	for gene := int64(1); gene <= 3; gene++ {
		table := coxpresdb.TableFromRecords([]coxpresdb.Record{
			{GeneID1: gene, GeneID2: gene + 100, Association: 0.5},
		})
		path := filepath.Join(dir, fmt.Sprintf("%d.parquet", gene))
		require.NoError(t, w.WriteTable(table, path, "snappy"))
	}

	got := readBack(t, filepath.Join(dir, "3.parquet"))
	require.Len(t, got, 1)
	assert.Equal(t, int64(3), got[0].GeneID1)
}

func TestWriter_LargeBatch(t *testing.T) {
	// More records than one insert batch.
	records := make([]coxpresdb.Record, 1500)
	for i := range records {
		records[i] = coxpresdb.Record{
			GeneID1:     1,
			GeneID2:     int64(i + 2),
			Association: float64(i) / 1500,
		}
	}

	path := filepath.Join(t.TempDir(), "1.parquet")

	w, err := NewWriter()
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, w.WriteTable(coxpresdb.TableFromRecords(records), path, "zstd"))

	got := readBack(t, path)
	assert.Len(t, got, 1500)
}

func TestWriter_UnsupportedCodec(t *testing.T) {
	w, err := NewWriter()
	require.NoError(t, err)
	defer w.Close()

	table := coxpresdb.TableFromRecords(nil)
	err = w.WriteTable(table, filepath.Join(t.TempDir(), "x.parquet"), "lzma")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported parquet compression")
}
