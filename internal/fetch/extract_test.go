package fetch

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tarBytes(t *testing.T, files map[string]string) []byte {
	t.Helper()

	var buf bytes.Buffer
	tw := tar.NewWriter(&buf)
	for name, body := range files {
		require.NoError(t, tw.WriteHeader(&tar.Header{
			Name:     name,
			Mode:     0o644,
			Size:     int64(len(body)),
			Typeflag: tar.TypeReg,
		}))
		_, err := io.WriteString(tw, body)
		require.NoError(t, err)
	}
	require.NoError(t, tw.Close())
	return buf.Bytes()
}

func TestExtractTar_Plain(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "data.tar")
	require.NoError(t, os.WriteFile(archive, tarBytes(t, map[string]string{
		"orthologs/pairs.txt": "wb-gene-1\ths-gene-2\n",
	}), 0o644))

	require.NoError(t, ExtractTar(archive))

	got, err := os.ReadFile(filepath.Join(dir, "orthologs", "pairs.txt"))
	require.NoError(t, err)
	assert.Equal(t, "wb-gene-1\ths-gene-2\n", string(got))
}

func TestExtractTar_Gzip(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "data.tar.gz")

	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	_, err := gz.Write(tarBytes(t, map[string]string{"ids.txt": "a\nb\n"}))
	require.NoError(t, err)
	require.NoError(t, gz.Close())
	require.NoError(t, os.WriteFile(archive, buf.Bytes(), 0o644))

	require.NoError(t, ExtractTar(archive))

	got, err := os.ReadFile(filepath.Join(dir, "ids.txt"))
	require.NoError(t, err)
	assert.Equal(t, "a\nb\n", string(got))
}

func TestExtractTar_RejectsTraversal(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "evil.tar")
	require.NoError(t, os.WriteFile(archive, tarBytes(t, map[string]string{
		"../evil.txt": "nope",
	}), 0o644))

	err := ExtractTar(archive)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "escapes destination")
}

func TestDetectCompression(t *testing.T) {
	cases := map[Compression][]byte{
		CompressionGzip:  {0x1f, 0x8b, 0x08, 0x00, 0x00, 0x00},
		CompressionBzip2: {0x42, 0x5a, 0x68, 0x39, 0x31, 0x41},
		CompressionXZ:    {0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00},
		CompressionNone:  []byte("plain!"),
	}
	for want, sig := range cases {
		got, err := DetectCompression(bytes.NewReader(sig))
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}
