package main

import (
	"flag"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/gcnet/coexnet/internal/fetch"
	"github.com/gcnet/coexnet/internal/params"
)

func runDownload(args []string) int {
	fs := flag.NewFlagSet("download", flag.ExitOnError)

	var (
		paramsPath string
		outputDir  string
		extract    bool
		verbose    bool
	)

	fs.StringVar(&paramsPath, "params", "", "YAML parameter file listing files_to_download")
	fs.StringVar(&outputDir, "output", "", "Output directory (overrides parameter file)")
	fs.StringVar(&outputDir, "o", "", "Output directory (shorthand)")
	fs.BoolVar(&extract, "extract", false, "Extract downloaded tar archives in place")
	fs.BoolVar(&verbose, "v", false, "Verbose logging")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Download source archives listed in a parameter file.

Entries in files_to_download may be full URLs or bare filenames resolved
against data_url. Files already present with a matching size are skipped,
and every outcome is recorded in download_log.json in the output
directory.

Usage:
  coexnet download [options]

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  coexnet download --params params/extract.yaml
  coexnet download --params params/extract.yaml -o data/01_raw --extract
`)
	}

	if err := fs.Parse(args); err != nil {
		return ExitUsage
	}

	if paramsPath == "" {
		fmt.Fprintf(os.Stderr, "Error: --params is required\n\n")
		fs.Usage()
		return ExitUsage
	}

	cfg, err := params.LoadExtract(paramsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitError
	}
	if outputDir != "" {
		cfg.OutputDir = outputDir
	}
	if len(cfg.FilesToDownload) == 0 {
		fmt.Fprintf(os.Stderr, "Error: no files_to_download in %s\n", paramsPath)
		return ExitError
	}

	urls, err := resolveURLs(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitError
	}

	logger, err := newLogger(verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitError
	}
	defer logger.Sync()

	downloader := fetch.NewDownloader()
	downloader.SetLogger(logger)

	log, err := downloader.Run(urls, cfg.OutputDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitError
	}

	var failed int
	for _, f := range log.Files {
		if f.Status != "success" {
			failed++
			continue
		}
		if extract && strings.Contains(f.LocalPath, ".tar") {
			if err := fetch.ExtractTar(f.LocalPath); err != nil {
				fmt.Fprintf(os.Stderr, "Error extracting %s: %v\n",
					filepath.Base(f.LocalPath), err)
				failed++
			}
		}
	}

	fmt.Printf("Processed %d/%d files\n", len(log.Files)-failed, len(log.Files))
	if failed > 0 {
		return ExitError
	}
	return ExitSuccess
}

// resolveURLs turns files_to_download entries into absolute URLs. Bare
// filenames are joined onto data_url.
func resolveURLs(cfg params.Extract) ([]string, error) {
	urls := make([]string, 0, len(cfg.FilesToDownload))
	for _, entry := range cfg.FilesToDownload {
		if strings.Contains(entry, "://") {
			urls = append(urls, entry)
			continue
		}
		if cfg.DataURL == "" {
			return nil, fmt.Errorf("entry %q is not a URL and no data_url is configured", entry)
		}
		base, err := url.Parse(cfg.DataURL)
		if err != nil {
			return nil, fmt.Errorf("parse data_url: %w", err)
		}
		ref, err := url.Parse(entry)
		if err != nil {
			return nil, fmt.Errorf("parse filename %q: %w", entry, err)
		}
		urls = append(urls, base.ResolveReference(ref).String())
	}
	return urls, nil
}
