package coxpresdb

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"unicode"
)

// Locator resolves (species, modality, version) tuples to archive paths
// inside a data directory. It only reads directory listings; archives are
// never opened.
type Locator struct {
	DataDir string
}

// NewLocator creates a locator over the given data directory.
func NewLocator(dataDir string) *Locator {
	return &Locator{DataDir: dataDir}
}

// Resolve returns the path of the archive for the given species and
// modality. The species code is case-insensitive. When several versions of
// a dataset exist, version must be given (e.g. "Hsa2") and the
// lexicographically last match is taken as the most recent; filenames are
// not guaranteed to sort chronologically, so this is a convention, not a
// recency guarantee.
func (l *Locator) Resolve(species string, modality Modality, version string) (string, error) {
	if _, err := ParseModality(string(modality)); err != nil {
		return "", err
	}
	if species == "" {
		return "", &InvalidArgumentError{Field: "species", Value: species, Reason: "must not be empty"}
	}

	species = titleCase(species)

	stem := version
	if stem == "" {
		stem = species
	}
	pattern := fmt.Sprintf("%s-%s.*.zip", stem, modality.Code())

	matches, err := filepath.Glob(filepath.Join(l.DataDir, pattern))
	if err != nil {
		return "", fmt.Errorf("glob %q: %w", pattern, err)
	}
	sort.Strings(matches)

	if len(matches) == 0 {
		return "", &NotFoundError{Pattern: pattern, Dir: l.DataDir}
	}

	if len(matches) > 1 && version == "" {
		names := make([]string, len(matches))
		for i, m := range matches {
			names[i] = filepath.Base(m)
		}
		return "", &AmbiguousSelectionError{Pattern: pattern, Candidates: names}
	}

	return matches[len(matches)-1], nil
}

// DatasetInfo describes one archive discovered in a data directory,
// decomposed from its filename without opening the archive.
type DatasetInfo struct {
	Species  string `json:"species"`
	Modality string `json:"modality"`
	Version  string `json:"version"`
	Filename string `json:"filename"`
}

// ListDatasets enumerates the COXPRESdb archives in a directory. Archives
// whose filenames do not follow the
// {Species}-{modality_code}.{version}...zip convention are skipped.
func ListDatasets(dir string) ([]DatasetInfo, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.zip"))
	if err != nil {
		return nil, fmt.Errorf("glob zip archives: %w", err)
	}
	sort.Strings(matches)

	var datasets []DatasetInfo
	for _, path := range matches {
		info, ok := parseArchiveName(filepath.Base(path))
		if !ok {
			continue
		}
		datasets = append(datasets, info)
	}
	return datasets, nil
}

// parseArchiveName decomposes an archive filename like
// "Spo-u.v22.G5278-S1004.combat_pca.zip" into its dataset fields.
func parseArchiveName(filename string) (DatasetInfo, bool) {
	parts := strings.Split(strings.TrimSuffix(filename, ".zip"), ".")
	if len(parts) < 2 {
		return DatasetInfo{}, false
	}

	species, code, found := strings.Cut(parts[0], "-")
	if !found {
		return DatasetInfo{}, false
	}

	return DatasetInfo{
		Species:  species,
		Modality: ModalityFromCode(code),
		Version:  parts[1],
		Filename: filename,
	}, true
}

// titleCase normalizes a species code: first letter of each word upper,
// rest lower ("spo" -> "Spo").
func titleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) && !prevLetter {
			b.WriteRune(unicode.ToUpper(r))
		} else {
			b.WriteRune(unicode.ToLower(r))
		}
		prevLetter = unicode.IsLetter(r)
	}
	return b.String()
}
