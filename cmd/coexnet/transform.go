package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gcnet/coexnet/internal/params"
	"github.com/gcnet/coexnet/internal/transform"
)

func runTransform(args []string) int {
	fs := flag.NewFlagSet("transform", flag.ExitOnError)

	var (
		paramsPath  string
		inputDir    string
		outputDir   string
		compression string
		logPath     string
		verbose     bool
	)

	fs.StringVar(&paramsPath, "params", "", "YAML parameter file (input_dir, output_dir, compression)")
	fs.StringVar(&inputDir, "input", "", "Directory containing COXPRESdb ZIP archives")
	fs.StringVar(&inputDir, "i", "", "Directory containing COXPRESdb ZIP archives (shorthand)")
	fs.StringVar(&outputDir, "output", "", "Directory for per-gene parquet output")
	fs.StringVar(&outputDir, "o", "", "Directory for per-gene parquet output (shorthand)")
	fs.StringVar(&compression, "compression", "", "Parquet compression codec (default: snappy)")
	fs.StringVar(&logPath, "log", "", "Run summary path (default: <output>/transform_log.json)")
	fs.BoolVar(&verbose, "v", false, "Verbose logging")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Convert COXPRESdb ZIP archives into per-gene parquet files.

Each archive becomes a subdirectory of the output directory holding one
parquet file per source gene. Genes with an existing output file are
skipped, so interrupted runs can be resumed by re-running the command.

Usage:
  coexnet transform [options]

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  coexnet transform --params params/transform.yaml
  coexnet transform -i data/01_raw -o data/02_transformed
  coexnet transform -i data/01_raw -o data/02_transformed --compression zstd
`)
	}

	if err := fs.Parse(args); err != nil {
		return ExitUsage
	}

	// Parameter file first, flags override.
	cfg := params.Transform{Compression: "snappy"}
	if paramsPath != "" {
		var err error
		cfg, err = params.LoadTransform(paramsPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return ExitError
		}
	}
	if inputDir != "" {
		cfg.InputDir = inputDir
	}
	if outputDir != "" {
		cfg.OutputDir = outputDir
	}
	if compression != "" {
		cfg.Compression = compression
	}

	if cfg.InputDir == "" || cfg.OutputDir == "" {
		fmt.Fprintf(os.Stderr, "Error: input and output directories are required\n\n")
		fs.Usage()
		return ExitUsage
	}

	logger, err := newLogger(verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitError
	}
	defer logger.Sync()

	exporter, err := transform.NewExporter(cfg.OutputDir, cfg.Compression)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitError
	}
	defer exporter.Close()
	exporter.SetLogger(logger)
	if logPath != "" {
		exporter.LogPath = logPath
	}

	summary, err := exporter.Run(cfg.InputDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitError
	}

	if summary.TotalFailed > 0 {
		fmt.Fprintf(os.Stderr, "Warning: %d files failed; see the run summary for details\n",
			summary.TotalFailed)
	}
	return ExitSuccess
}
