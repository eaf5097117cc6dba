package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/gcnet/coexnet/internal/coxpresdb"
	"github.com/gcnet/coexnet/internal/parquet"
)

func runLoad(args []string) int {
	fs := flag.NewFlagSet("load", flag.ExitOnError)

	var (
		species     string
		modality    string
		version     string
		dataDir     string
		outputPath  string
		compression string
		verbose     bool
	)

	fs.StringVar(&species, "species", "", "Species code, e.g. Hsa, Mmu, Spo (case-insensitive)")
	fs.StringVar(&modality, "modality", "union", "Modality: microarray, rna-seq, or union")
	fs.StringVar(&version, "dataset-version", "", "Version discriminator when multiple releases exist (e.g. Hsa2)")
	fs.StringVar(&dataDir, "data-dir", ".", "Directory containing COXPRESdb ZIP archives")
	fs.StringVar(&outputPath, "output", "", "Write the full table to this parquet file instead of just reporting")
	fs.StringVar(&outputPath, "o", "", "Parquet output file (shorthand)")
	fs.StringVar(&compression, "compression", "snappy", "Parquet compression codec")
	fs.BoolVar(&verbose, "v", false, "Verbose logging")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Load a single COXPRESdb dataset, validate it, and report its size.

Usage:
  coexnet load [options]

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  coexnet load --species Spo --modality union --data-dir data/01_raw
  coexnet load --species Hsa --modality rna-seq --dataset-version Hsa2 \
      --data-dir data/01_raw -o hsa-rnaseq.parquet
`)
	}

	if err := fs.Parse(args); err != nil {
		return ExitUsage
	}

	if species == "" {
		fmt.Fprintf(os.Stderr, "Error: --species is required\n\n")
		fs.Usage()
		return ExitUsage
	}

	m, err := coxpresdb.ParseModality(modality)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitUsage
	}

	logger, err := newLogger(verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitError
	}
	defer logger.Sync()

	loader := coxpresdb.NewLoader(dataDir)
	loader.SetLogger(logger)

	table, stats, err := loader.Load(species, m, version)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		var ambiguous *coxpresdb.AmbiguousSelectionError
		if errors.As(err, &ambiguous) {
			fmt.Fprintf(os.Stderr, "Hint: pass --dataset-version to pick one of the candidates\n")
		}
		return ExitError
	}

	fmt.Printf("Loaded %d records from %d gene files (%d members skipped)\n",
		stats.RecordsParsed, stats.MembersParsed, stats.MembersSkipped)

	if outputPath == "" {
		return ExitSuccess
	}

	writer, err := parquet.NewWriter()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitError
	}
	defer writer.Close()

	if err := writer.WriteTable(table, outputPath, compression); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitError
	}
	fmt.Printf("Wrote %s\n", outputPath)

	return ExitSuccess
}
