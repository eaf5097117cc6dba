package coxpresdb

import "fmt"

// ColumnSpec names one required column and its element type.
type ColumnSpec struct {
	Name string
	Kind Kind
}

// Schema is a fixed column contract checked against an assembled table.
// With Strict set, extra columns are rejected as well. Validation is a
// coarse batch check run once per table, not per record.
type Schema struct {
	Columns []ColumnSpec
	Strict  bool
}

// CoexpressionSchema is the contract every emitted coexpression table must
// satisfy: exactly three columns, fixed names and order, integer gene ids
// and a float association score.
var CoexpressionSchema = Schema{
	Columns: []ColumnSpec{
		{Name: "gene_id_1", Kind: KindInt},
		{Name: "gene_id_2", Kind: KindInt},
		{Name: "association", Kind: KindFloat},
	},
	Strict: true,
}

// Validate checks the table against the schema. Failures are reported as
// SchemaViolationError naming the offending column and the expected versus
// actual shape.
func (s Schema) Validate(t *Table) error {
	cols := t.Columns()

	for i, spec := range s.Columns {
		if i >= len(cols) {
			return &SchemaViolationError{
				Column: spec.Name,
				Want:   spec.Kind.String(),
				Got:    "absent",
			}
		}
		col := cols[i]
		if col.Name != spec.Name {
			return &SchemaViolationError{
				Column: spec.Name,
				Want:   fmt.Sprintf("%s at position %d", spec.Kind, i),
				Got:    fmt.Sprintf("column %q", col.Name),
			}
		}
		if col.Kind != spec.Kind {
			return &SchemaViolationError{
				Column: spec.Name,
				Want:   spec.Kind.String(),
				Got:    col.Kind.String(),
			}
		}
	}

	if s.Strict && len(cols) > len(s.Columns) {
		extra := cols[len(s.Columns)]
		return &SchemaViolationError{
			Column: extra.Name,
			Want:   "absent",
			Got:    extra.Kind.String(),
		}
	}

	// Ragged columns would mean a bug in table assembly, but the contract
	// is checked here regardless.
	n := t.NumRows()
	for _, col := range cols {
		if col.Len() != n {
			return &SchemaViolationError{
				Column: col.Name,
				Want:   fmt.Sprintf("%d rows", n),
				Got:    fmt.Sprintf("%d rows", col.Len()),
			}
		}
	}

	return nil
}
