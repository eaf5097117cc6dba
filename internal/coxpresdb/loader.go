package coxpresdb

import (
	"go.uber.org/zap"
)

// Loader loads single COXPRESdb datasets from a data directory into
// validated coexpression tables.
type Loader struct {
	locator *Locator
	logger  *zap.Logger
}

// NewLoader creates a loader over the given data directory.
func NewLoader(dataDir string) *Loader {
	return &Loader{
		locator: NewLocator(dataDir),
		logger:  zap.NewNop(),
	}
}

// SetLogger sets the logger for progress messages.
func (l *Loader) SetLogger(logger *zap.Logger) {
	l.logger = logger
}

// Load resolves, parses, and validates one dataset. The species code is
// case-insensitive; version is required only when multiple releases of the
// same species/modality pair are present.
func (l *Loader) Load(species string, modality Modality, version string) (*Table, *ParseStats, error) {
	path, err := l.locator.Resolve(species, modality, version)
	if err != nil {
		return nil, nil, err
	}

	l.logger.Info("loading COXPRESdb dataset", zap.String("archive", path))

	records, stats, err := ParseArchive(path)
	if err != nil {
		return nil, nil, err
	}

	table := TableFromRecords(records)
	if err := CoexpressionSchema.Validate(table); err != nil {
		return nil, stats, err
	}

	l.logger.Info("dataset loaded",
		zap.Int("records", stats.RecordsParsed),
		zap.Int("members", stats.MembersParsed),
		zap.Int("members_skipped", stats.MembersSkipped))

	return table, stats, nil
}
