// Package main provides the coexnet command-line tool.
package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Exit codes
const (
	ExitSuccess = 0
	ExitError   = 1
	ExitUsage   = 2
)

// Version information (set at build time)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Global flags
	var showVersion bool
	flag.BoolVar(&showVersion, "version", false, "Show version information")

	flag.Parse()

	if showVersion {
		fmt.Printf("coexnet version %s (%s) built %s\n", version, commit, date)
		return ExitSuccess
	}

	args := flag.Args()
	if len(args) < 1 {
		printUsage()
		return ExitUsage
	}

	switch args[0] {
	case "transform":
		return runTransform(args[1:])
	case "download":
		return runDownload(args[1:])
	case "list":
		return runList(args[1:])
	case "load":
		return runLoad(args[1:])
	case "config":
		return runConfig(args[1:])
	case "help":
		printUsage()
		return ExitSuccess
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown command %q\n\n", args[0])
		printUsage()
		return ExitUsage
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `coexnet - COXPRESdb coexpression dataset tooling

Usage:
  coexnet [options] <command> [arguments]

Commands:
  download    Download source archives listed in a parameter file
  transform   Convert COXPRESdb ZIP archives to per-gene parquet files
  load        Load a single dataset and report or export it
  list        List datasets available in a data directory
  config      Manage coexnet configuration
  help        Show this help message

Global Options:
  --version   Show version information

Examples:
  # Download source archives (one-time setup)
  coexnet download --params params/extract.yaml

  # Transform all archives in a directory to parquet
  coexnet transform --input data/01_raw --output data/02_transformed

  # Load the S. pombe union dataset and print its size
  coexnet load --species Spo --modality union --data-dir data/01_raw

  # See what datasets are available
  coexnet list --dir data/01_raw

For more information on a command, use:
  coexnet <command> --help
`)
}

// newLogger builds the CLI logger written to stderr.
func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{"stderr"}
	if !verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	} else {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return cfg.Build()
}
