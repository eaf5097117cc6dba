package fetch

import (
	"archive/tar"
	"compress/bzip2"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xi2/xz"
)

// Compression is the detected encoding of a tar archive.
type Compression byte

const (
	CompressionNone Compression = iota
	CompressionGzip
	CompressionBzip2
	CompressionXZ
)

// Magic byte signatures, per https://stackoverflow.com/a/19127748/199475
var compressionSigs = map[Compression][]byte{
	CompressionGzip:  {0x1f, 0x8b, 0x08},
	CompressionBzip2: {0x42, 0x5a, 0x68},
	CompressionXZ:    {0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00},
}

// DetectCompression sniffs the compression encoding from the first bytes
// of a stream.
func DetectCompression(r io.Reader) (Compression, error) {
	buf := make([]byte, 6)
	if _, err := io.ReadFull(r, buf); err != nil {
		return CompressionNone, err
	}

Outer:
	for c, sig := range compressionSigs {
		for i := range sig {
			if buf[i] != sig[i] {
				continue Outer
			}
		}
		return c, nil
	}
	return CompressionNone, nil
}

// ExtractTar extracts a tar archive into the directory containing it,
// detecting gzip, bzip2, xz, or plain tar encoding. Member paths escaping
// the destination directory are rejected.
func ExtractTar(archivePath string) error {
	f, err := os.Open(archivePath)
	if err != nil {
		return fmt.Errorf("open archive: %w", err)
	}
	defer f.Close()

	compression, err := DetectCompression(f)
	if err != nil {
		return fmt.Errorf("detect compression: %w", err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("seek archive: %w", err)
	}

	var reader io.Reader
	switch compression {
	case CompressionGzip:
		gz, err := gzip.NewReader(f)
		if err != nil {
			return fmt.Errorf("gzip reader: %w", err)
		}
		defer gz.Close()
		reader = gz
	case CompressionBzip2:
		reader = bzip2.NewReader(f)
	case CompressionXZ:
		xzr, err := xz.NewReader(f, 0)
		if err != nil {
			return fmt.Errorf("xz reader: %w", err)
		}
		reader = xzr
	default:
		reader = f
	}

	destDir := filepath.Dir(archivePath)
	return untar(tar.NewReader(reader), destDir)
}

func untar(tr *tar.Reader, destDir string) error {
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read tar: %w", err)
		}

		target, err := safeJoin(destDir, hdr.Name)
		if err != nil {
			return err
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0o755); err != nil {
				return fmt.Errorf("create directory %s: %w", target, err)
			}
		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
				return fmt.Errorf("create directory for %s: %w", target, err)
			}
			out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, hdr.FileInfo().Mode())
			if err != nil {
				return fmt.Errorf("create file %s: %w", target, err)
			}
			if _, err := io.Copy(out, tr); err != nil {
				out.Close()
				return fmt.Errorf("extract %s: %w", hdr.Name, err)
			}
			out.Close()
		default:
			// Symlinks and special files are not expected in these
			// datasets; skip them.
		}
	}
}

// safeJoin joins a tar member name onto destDir, rejecting absolute paths
// and traversal outside the destination.
func safeJoin(destDir, name string) (string, error) {
	if filepath.IsAbs(name) {
		return "", fmt.Errorf("archive member %q has absolute path", name)
	}
	target := filepath.Join(destDir, name)
	if !strings.HasPrefix(target, filepath.Clean(destDir)+string(os.PathSeparator)) {
		return "", fmt.Errorf("archive member %q escapes destination directory", name)
	}
	return target, nil
}
