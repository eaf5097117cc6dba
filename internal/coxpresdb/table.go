package coxpresdb

import "fmt"

// Record is one directed pairwise gene-association score. Duplicates are
// permitted; a record has no identity beyond the triple.
type Record struct {
	GeneID1     int64
	GeneID2     int64
	Association float64
}

// Kind is the element type of a table column.
type Kind int

const (
	KindInt Kind = iota
	KindFloat
	KindString
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Column is a named, homogeneously typed column. Only the slice matching
// Kind is populated.
type Column struct {
	Name    string
	Kind    Kind
	Ints    []int64
	Floats  []float64
	Strings []string
}

// IntColumn builds an integer column.
func IntColumn(name string, values []int64) Column {
	return Column{Name: name, Kind: KindInt, Ints: values}
}

// FloatColumn builds a float column.
func FloatColumn(name string, values []float64) Column {
	return Column{Name: name, Kind: KindFloat, Floats: values}
}

// StringColumn builds a string column.
func StringColumn(name string, values []string) Column {
	return Column{Name: name, Kind: KindString, Strings: values}
}

// Len returns the number of values in the column.
func (c Column) Len() int {
	switch c.Kind {
	case KindInt:
		return len(c.Ints)
	case KindFloat:
		return len(c.Floats)
	default:
		return len(c.Strings)
	}
}

// Table is an immutable in-memory columnar table.
type Table struct {
	columns []Column
}

// NewTable assembles a table from columns in the given order.
func NewTable(columns ...Column) *Table {
	return &Table{columns: columns}
}

// TableFromRecords builds the canonical three-column coexpression table.
func TableFromRecords(records []Record) *Table {
	geneID1 := make([]int64, len(records))
	geneID2 := make([]int64, len(records))
	association := make([]float64, len(records))
	for i, r := range records {
		geneID1[i] = r.GeneID1
		geneID2[i] = r.GeneID2
		association[i] = r.Association
	}
	return NewTable(
		IntColumn("gene_id_1", geneID1),
		IntColumn("gene_id_2", geneID2),
		FloatColumn("association", association),
	)
}

// Columns returns the table's columns in order.
func (t *Table) Columns() []Column {
	return t.columns
}

// NumRows returns the row count, taken from the first column.
func (t *Table) NumRows() int {
	if len(t.columns) == 0 {
		return 0
	}
	return t.columns[0].Len()
}

// Records converts a table that satisfies CoexpressionSchema back into
// record form. The table must be validated first.
func (t *Table) Records() []Record {
	n := t.NumRows()
	records := make([]Record, n)
	for i := 0; i < n; i++ {
		records[i] = Record{
			GeneID1:     t.columns[0].Ints[i],
			GeneID2:     t.columns[1].Ints[i],
			Association: t.columns[2].Floats[i],
		}
	}
	return records
}
