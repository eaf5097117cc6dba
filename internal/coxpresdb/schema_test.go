package coxpresdb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoexpressionSchema_Valid(t *testing.T) {
	table := TableFromRecords([]Record{
		{GeneID1: 1, GeneID2: 2, Association: 0.5},
		{GeneID1: 1, GeneID2: 3, Association: -0.1},
	})

	require.NoError(t, CoexpressionSchema.Validate(table))
	assert.Equal(t, 2, table.NumRows())
}

func TestCoexpressionSchema_EmptyTableValid(t *testing.T) {
	table := TableFromRecords(nil)
	require.NoError(t, CoexpressionSchema.Validate(table))
	assert.Equal(t, 0, table.NumRows())
}

func TestCoexpressionSchema_RejectsWrongColumnType(t *testing.T) {
	// gene_id_1 holding text values must be rejected: no implicit
	// coercion.
	table := NewTable(
		StringColumn("gene_id_1", []string{"a"}),
		IntColumn("gene_id_2", []int64{2}),
		FloatColumn("association", []float64{0.5}),
	)

	err := CoexpressionSchema.Validate(table)
	var violation *SchemaViolationError
	require.ErrorAs(t, err, &violation)
	assert.Equal(t, "gene_id_1", violation.Column)
	assert.Equal(t, "int", violation.Want)
	assert.Equal(t, "string", violation.Got)
}

func TestCoexpressionSchema_RejectsFloatGeneIDs(t *testing.T) {
	table := NewTable(
		FloatColumn("gene_id_1", []float64{1}),
		IntColumn("gene_id_2", []int64{2}),
		FloatColumn("association", []float64{0.5}),
	)

	err := CoexpressionSchema.Validate(table)
	var violation *SchemaViolationError
	require.ErrorAs(t, err, &violation)
	assert.Equal(t, "gene_id_1", violation.Column)
}

func TestCoexpressionSchema_RejectsMissingColumn(t *testing.T) {
	table := NewTable(
		IntColumn("gene_id_1", []int64{1}),
		IntColumn("gene_id_2", []int64{2}),
	)

	err := CoexpressionSchema.Validate(table)
	var violation *SchemaViolationError
	require.ErrorAs(t, err, &violation)
	assert.Equal(t, "association", violation.Column)
	assert.Equal(t, "absent", violation.Got)
}

func TestCoexpressionSchema_RejectsExtraColumn(t *testing.T) {
	table := NewTable(
		IntColumn("gene_id_1", []int64{1}),
		IntColumn("gene_id_2", []int64{2}),
		FloatColumn("association", []float64{0.5}),
		StringColumn("comment", []string{"x"}),
	)

	err := CoexpressionSchema.Validate(table)
	var violation *SchemaViolationError
	require.ErrorAs(t, err, &violation)
	assert.Equal(t, "comment", violation.Column)
	assert.Equal(t, "absent", violation.Want)
}

func TestCoexpressionSchema_RejectsWrongOrder(t *testing.T) {
	table := NewTable(
		IntColumn("gene_id_2", []int64{2}),
		IntColumn("gene_id_1", []int64{1}),
		FloatColumn("association", []float64{0.5}),
	)

	err := CoexpressionSchema.Validate(table)
	var violation *SchemaViolationError
	require.ErrorAs(t, err, &violation)
	assert.Equal(t, "gene_id_1", violation.Column)
}

func TestTable_Records(t *testing.T) {
	in := []Record{
		{GeneID1: 42, GeneID2: 7, Association: 0.55},
		{GeneID1: 42, GeneID2: 9, Association: 0.25},
	}
	table := TableFromRecords(in)
	require.NoError(t, CoexpressionSchema.Validate(table))
	assert.Equal(t, in, table.Records())
}
