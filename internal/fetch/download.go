// Package fetch downloads source archives and extracts tar files for the
// ingestion pipeline.
package fetch

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"time"

	"go.uber.org/zap"
)

// DownloadLogName is the JSON log written next to downloaded files.
const DownloadLogName = "download_log.json"

// FileResult records the outcome of one download.
type FileResult struct {
	URL       string `json:"url"`
	LocalPath string `json:"local_path,omitempty"`
	Status    string `json:"status"`
	Error     string `json:"error,omitempty"`
	Timestamp string `json:"timestamp"`
}

// DownloadLog is the aggregate download log.
type DownloadLog struct {
	Timestamp string       `json:"timestamp"`
	Files     []FileResult `json:"files"`
}

// Downloader fetches source archives over HTTP. Files already present with
// a size matching the server's Content-Length are skipped.
type Downloader struct {
	client *http.Client
	logger *zap.Logger
}

// NewDownloader creates a downloader with a long timeout suitable for
// multi-gigabyte archives.
func NewDownloader() *Downloader {
	return &Downloader{
		client: &http.Client{Timeout: 30 * time.Minute},
		logger: zap.NewNop(),
	}
}

// SetLogger sets the logger for progress messages.
func (d *Downloader) SetLogger(l *zap.Logger) {
	d.logger = l
}

// Fetch downloads url to destPath. The download goes to a temp file first
// and is renamed on success, so a failed transfer never leaves a partial
// file at the destination.
func (d *Downloader) Fetch(rawURL, destPath string) error {
	resp, err := d.client.Get(rawURL)
	if err != nil {
		return fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("http error: %s", resp.Status)
	}

	// Skip when the file is already fully downloaded.
	if info, err := os.Stat(destPath); err == nil && resp.ContentLength > 0 &&
		info.Size() == resp.ContentLength {
		d.logger.Info("skipping download, size matches",
			zap.String("file", filepath.Base(destPath)),
			zap.Int64("size", info.Size()))
		return nil
	}

	tmpPath := destPath + ".tmp"
	f, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}

	pw := &progressLogger{
		total:     resp.ContentLength,
		name:      filepath.Base(destPath),
		logger:    d.logger,
		lastPrint: time.Now(),
	}
	written, err := io.Copy(f, io.TeeReader(resp.Body, pw))
	f.Close()
	if err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("download failed: %w", err)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename file: %w", err)
	}

	d.logger.Info("downloaded",
		zap.String("file", filepath.Base(destPath)),
		zap.Int64("bytes", written))
	return nil
}

// Run downloads every URL into outputDir and writes download_log.json
// there. A failed download is logged and does not stop the remaining URLs.
func (d *Downloader) Run(urls []string, outputDir string) (*DownloadLog, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	log := &DownloadLog{
		Timestamp: time.Now().Format(time.RFC3339),
		Files:     []FileResult{},
	}

	for _, rawURL := range urls {
		filename, err := FilenameFromURL(rawURL)
		if err != nil {
			log.Files = append(log.Files, FileResult{
				URL:       rawURL,
				Status:    "failed",
				Error:     err.Error(),
				Timestamp: time.Now().Format(time.RFC3339),
			})
			continue
		}
		destPath := filepath.Join(outputDir, filename)

		d.logger.Info("processing", zap.String("file", filename), zap.String("url", rawURL))

		result := FileResult{
			URL:       rawURL,
			LocalPath: destPath,
			Timestamp: time.Now().Format(time.RFC3339),
		}
		if err := d.Fetch(rawURL, destPath); err != nil {
			d.logger.Error("download failed", zap.String("url", rawURL), zap.Error(err))
			result.Status = "failed"
			result.Error = err.Error()
		} else {
			result.Status = "success"
		}
		log.Files = append(log.Files, result)
	}

	logPath := filepath.Join(outputDir, DownloadLogName)
	data, err := json.MarshalIndent(log, "", "  ")
	if err != nil {
		return log, fmt.Errorf("marshal download log: %w", err)
	}
	if err := os.WriteFile(logPath, data, 0o644); err != nil {
		return log, fmt.Errorf("write download log: %w", err)
	}

	return log, nil
}

// FilenameFromURL extracts the filename component of a URL path.
func FilenameFromURL(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parse url %q: %w", rawURL, err)
	}
	name := path.Base(u.Path)
	if name == "." || name == "/" || name == "" {
		return "", fmt.Errorf("url %q has no filename component", rawURL)
	}
	return name, nil
}

// progressLogger emits periodic transfer progress.
type progressLogger struct {
	total      int64
	downloaded int64
	name       string
	logger     *zap.Logger
	lastPrint  time.Time
}

func (p *progressLogger) Write(b []byte) (int, error) {
	n := len(b)
	p.downloaded += int64(n)

	if time.Since(p.lastPrint) > time.Second {
		fields := []zap.Field{
			zap.String("file", p.name),
			zap.Int64("downloaded", p.downloaded),
		}
		if p.total > 0 {
			fields = append(fields,
				zap.Float64("percent", float64(p.downloaded)/float64(p.total)*100))
		}
		p.logger.Info("download progress", fields...)
		p.lastPrint = time.Now()
	}
	return n, nil
}
