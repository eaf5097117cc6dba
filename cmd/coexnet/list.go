package main

import (
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/gcnet/coexnet/internal/coxpresdb"
)

func runList(args []string) int {
	fs := flag.NewFlagSet("list", flag.ExitOnError)

	var dir string
	fs.StringVar(&dir, "dir", ".", "Directory containing COXPRESdb ZIP archives")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `List COXPRESdb datasets available in a directory.

Archive filenames are decomposed into species, modality, and version
without opening the archives.

Usage:
  coexnet list [options]

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return ExitUsage
	}

	datasets, err := coxpresdb.ListDatasets(dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitError
	}

	if len(datasets) == 0 {
		fmt.Printf("No datasets found in %s\n", dir)
		return ExitSuccess
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SPECIES\tMODALITY\tVERSION\tFILENAME")
	for _, d := range datasets {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", d.Species, d.Modality, d.Version, d.Filename)
	}
	w.Flush()

	return ExitSuccess
}
