package coxpresdb

import (
	"fmt"
	"strings"
)

// InvalidArgumentError reports a bad input value, detected before any
// filesystem access.
type InvalidArgumentError struct {
	Field  string
	Value  string
	Reason string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}

// NotFoundError reports that no archive matched the locator's glob pattern.
type NotFoundError struct {
	Pattern string
	Dir     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no archive found matching pattern %q in %s", e.Pattern, e.Dir)
}

// AmbiguousSelectionError reports multiple matching archives when no version
// was given to disambiguate. Candidates holds all matching filenames.
type AmbiguousSelectionError struct {
	Pattern    string
	Candidates []string
}

func (e *AmbiguousSelectionError) Error() string {
	return fmt.Sprintf("multiple versions found for pattern %q: %s; specify a version to disambiguate",
		e.Pattern, strings.Join(e.Candidates, ", "))
}

// SchemaViolationError reports a post-parse table shape or type mismatch.
type SchemaViolationError struct {
	Column string
	Want   string
	Got    string
}

func (e *SchemaViolationError) Error() string {
	return fmt.Sprintf("schema violation on column %q: want %s, got %s", e.Column, e.Want, e.Got)
}
