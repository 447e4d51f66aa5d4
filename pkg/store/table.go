package store

// Table holds one entity's rows with every cell kept as text. Column order is
// significant because it is what gets written back to disk.
type Table struct {
	Columns []string
	Rows    []map[string]string
}

// NewTable creates an empty table with the given columns
func NewTable(columns []string) *Table {
	cols := make([]string, len(columns))
	copy(cols, columns)
	return &Table{Columns: cols, Rows: nil}
}

// Len returns the number of rows
func (t *Table) Len() int {
	return len(t.Rows)
}

// IsEmpty reports whether the table has no rows
func (t *Table) IsEmpty() bool {
	return len(t.Rows) == 0
}

// Cell returns the value at the given row and column, or "" when absent
func (t *Table) Cell(row int, column string) string {
	if row < 0 || row >= len(t.Rows) {
		return ""
	}
	return t.Rows[row][column]
}

// Append adds a row to the table. Cells for columns the table does not declare
// yet extend the column list, so a save writes whatever the table holds.
func (t *Table) Append(row map[string]string) {
	for column := range row {
		if !t.HasColumn(column) {
			t.Columns = append(t.Columns, column)
		}
	}

	copied := make(map[string]string, len(row))
	for k, v := range row {
		copied[k] = v
	}
	t.Rows = append(t.Rows, copied)
}

// Delete removes the row at the given index
func (t *Table) Delete(row int) {
	if row < 0 || row >= len(t.Rows) {
		return
	}
	t.Rows = append(t.Rows[:row], t.Rows[row+1:]...)
}

// HasColumn reports whether the table declares the given column
func (t *Table) HasColumn(column string) bool {
	for _, c := range t.Columns {
		if c == column {
			return true
		}
	}
	return false
}

// EnsureColumn adds a declared column with an absent marker for every row.
// Old files gain new columns transparently this way.
func (t *Table) EnsureColumn(column string) {
	if t.HasColumn(column) {
		return
	}
	t.Columns = append(t.Columns, column)
	for _, row := range t.Rows {
		row[column] = ""
	}
}

// Clone returns a deep copy of the table
func (t *Table) Clone() *Table {
	clone := NewTable(t.Columns)
	clone.Rows = make([]map[string]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		copied := make(map[string]string, len(row))
		for k, v := range row {
			copied[k] = v
		}
		clone.Rows = append(clone.Rows, copied)
	}
	return clone
}
