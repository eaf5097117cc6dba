package coxpresdb

import (
	"archive/zip"
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// SkipReason classifies why a member or line was dropped during parsing.
// Malformed content is expected in COXPRESdb exports and is filtered, not
// failed; the reasons make the filtering inspectable.
type SkipReason int

const (
	// SkipShortLine: fewer than two tab-separated fields.
	SkipShortLine SkipReason = iota
	// SkipBadGeneID: first field is not an integer.
	SkipBadGeneID
	// SkipBadScore: second field is not a float.
	SkipBadScore
)

func (r SkipReason) String() string {
	switch r {
	case SkipShortLine:
		return "short line"
	case SkipBadGeneID:
		return "bad gene id"
	case SkipBadScore:
		return "bad score"
	default:
		return fmt.Sprintf("SkipReason(%d)", int(r))
	}
}

// ParseStats accumulates parse and skip counts across members.
type ParseStats struct {
	MembersParsed  int
	MembersSkipped int
	RecordsParsed  int
	LinesSkipped   map[SkipReason]int
}

// NewParseStats returns an empty stats accumulator.
func NewParseStats() *ParseStats {
	return &ParseStats{LinesSkipped: make(map[SkipReason]int)}
}

func (s *ParseStats) skipLine(reason SkipReason) {
	if s.LinesSkipped == nil {
		s.LinesSkipped = make(map[SkipReason]int)
	}
	s.LinesSkipped[reason]++
}

// Archive is an open COXPRESdb zip archive.
type Archive struct {
	reader *zip.ReadCloser
	path   string
}

// OpenArchive opens a COXPRESdb zip archive for reading.
func OpenArchive(path string) (*Archive, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("open archive %s: %w", path, err)
	}
	return &Archive{reader: r, path: path}, nil
}

// Close closes the underlying zip reader.
func (a *Archive) Close() error {
	return a.reader.Close()
}

// Member is one per-gene data file inside an archive. The member name is
// the decimal string of the source gene id.
type Member struct {
	GeneID int64
	Name   string
	file   *zip.File
}

// GeneMembers returns the archive members whose names parse as gene ids,
// in archive order. Directory entries, hidden files, and members with
// non-numeric names are counted in stats as skipped members.
func (a *Archive) GeneMembers(stats *ParseStats) []Member {
	var members []Member
	for _, f := range a.reader.File {
		name := f.Name
		if strings.HasSuffix(name, "/") || strings.HasPrefix(name, ".") {
			continue
		}
		geneID, err := strconv.ParseInt(name, 10, 64)
		if err != nil {
			stats.MembersSkipped++
			continue
		}
		members = append(members, Member{GeneID: geneID, Name: name, file: f})
	}
	return members
}

// Parse reads the member body and returns one record per well-formed line.
// Malformed lines are dropped and counted; the member itself never fails on
// content. Only I/O errors reading the member are returned.
func (m Member) Parse(stats *ParseStats) ([]Record, error) {
	rc, err := m.file.Open()
	if err != nil {
		return nil, fmt.Errorf("open member %s: %w", m.Name, err)
	}
	defer rc.Close()

	content, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read member %s: %w", m.Name, err)
	}

	records := parseLines(m.GeneID, content, stats)
	stats.MembersParsed++
	stats.RecordsParsed += len(records)
	return records, nil
}

// parseLines extracts (gene_id_2, association) pairs from a member body.
func parseLines(geneID1 int64, content []byte, stats *ParseStats) []Record {
	var records []Record

	scanner := bufio.NewScanner(bytes.NewReader(content))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) < 2 {
			stats.skipLine(SkipShortLine)
			continue
		}

		geneID2, err := strconv.ParseInt(strings.TrimSpace(fields[0]), 10, 64)
		if err != nil {
			stats.skipLine(SkipBadGeneID)
			continue
		}
		association, err := strconv.ParseFloat(strings.TrimSpace(fields[1]), 64)
		if err != nil {
			stats.skipLine(SkipBadScore)
			continue
		}

		records = append(records, Record{
			GeneID1:     geneID1,
			GeneID2:     geneID2,
			Association: association,
		})
	}

	return records
}

// ParseArchive opens an archive and parses every gene member into a single
// record slice. Best-effort: malformed members and lines are skipped and
// counted, never fatal. Only an unreadable archive returns an error.
func ParseArchive(path string) ([]Record, *ParseStats, error) {
	archive, err := OpenArchive(path)
	if err != nil {
		return nil, nil, err
	}
	defer archive.Close()

	stats := NewParseStats()
	var records []Record
	for _, m := range archive.GeneMembers(stats) {
		recs, err := m.Parse(stats)
		if err != nil {
			// Unreadable member body; treat like malformed content and
			// keep going.
			stats.MembersSkipped++
			continue
		}
		records = append(records, recs...)
	}
	return records, stats, nil
}
