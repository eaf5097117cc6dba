package coxpresdb

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeArchive builds a zip file with the given member bodies. Member names
// ending in "/" become directory entries.
func writeArchive(t *testing.T, path string, members map[string]string) {
	t.Helper()

	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	zw := zip.NewWriter(f)
	for name, body := range members {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(body))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
}

func TestParseArchive_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Spo-u.v22.zip")
	writeArchive(t, path, map[string]string{
		"42": "7\t0.55\n",
	})

	records, stats, err := ParseArchive(path)
	require.NoError(t, err)

	require.Len(t, records, 1)
	assert.Equal(t, Record{GeneID1: 42, GeneID2: 7, Association: 0.55}, records[0])
	assert.Equal(t, 1, stats.MembersParsed)
	assert.Equal(t, 1, stats.RecordsParsed)
	assert.Equal(t, 0, stats.MembersSkipped)
}

func TestParseArchive_MalformedLineTolerance(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Spo-u.v22.zip")
	writeArchive(t, path, map[string]string{
		"42": "7\t0.55\n8\tnot-a-number\n",
	})

	records, stats, err := ParseArchive(path)
	require.NoError(t, err)

	require.Len(t, records, 1)
	assert.Equal(t, int64(7), records[0].GeneID2)
	assert.Equal(t, 1, stats.LinesSkipped[SkipBadScore])
}

func TestParseArchive_SkipsNonGeneMembers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Spo-u.v22.zip")
	writeArchive(t, path, map[string]string{
		"README.txt": "this is not gene data",
		"data/":      "",
		".hidden":    "junk",
		"100":        "200\t0.9\n300\t0.1\n",
	})

	records, stats, err := ParseArchive(path)
	require.NoError(t, err)

	require.Len(t, records, 2)
	for _, r := range records {
		assert.Equal(t, int64(100), r.GeneID1)
	}
	// Only README.txt counts as a skipped member; directory entries and
	// hidden files are filtered before name parsing.
	assert.Equal(t, 1, stats.MembersSkipped)
	assert.Equal(t, 1, stats.MembersParsed)
}

func TestParseArchive_LineEdgeCases(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Spo-u.v22.zip")
	writeArchive(t, path, map[string]string{
		"5": "10\t0.5\n" + // valid
			"\n" + // empty, ignored
			"missing-tab\n" + // one field
			"x\t0.3\n" + // bad gene id
			"11\t0.25\textra\tfields\n", // extra fields are allowed
	})

	records, stats, err := ParseArchive(path)
	require.NoError(t, err)

	require.Len(t, records, 2)
	assert.Equal(t, Record{GeneID1: 5, GeneID2: 10, Association: 0.5}, records[0])
	assert.Equal(t, Record{GeneID1: 5, GeneID2: 11, Association: 0.25}, records[1])

	assert.Equal(t, 1, stats.LinesSkipped[SkipShortLine])
	assert.Equal(t, 1, stats.LinesSkipped[SkipBadGeneID])
	assert.Equal(t, 0, stats.LinesSkipped[SkipBadScore])
}

func TestParseArchive_EmptyMember(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Spo-u.v22.zip")
	writeArchive(t, path, map[string]string{
		"77": "",
	})

	records, stats, err := ParseArchive(path)
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.Equal(t, 1, stats.MembersParsed)
}

func TestParseArchive_UnreadableArchive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.zip")
	require.NoError(t, os.WriteFile(path, []byte("not a zip"), 0o644))

	_, _, err := ParseArchive(path)
	require.Error(t, err)
}

func TestParseArchive_Missing(t *testing.T) {
	_, _, err := ParseArchive(filepath.Join(t.TempDir(), "nope.zip"))
	require.Error(t, err)
}
