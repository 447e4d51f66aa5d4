package store

import "testing"

func TestTableAppendExtendsColumns(t *testing.T) {
	table := NewTable([]string{"a", "b"})
	table.Append(map[string]string{"a": "1", "b": "2", "c": "3"})

	if !table.HasColumn("c") {
		t.Error("Expected appended row to extend the column list with 'c'")
	}
	if got := table.Cell(0, "c"); got != "3" {
		t.Errorf("Expected cell '3', got %q", got)
	}
}

func TestTableEnsureColumnBackfills(t *testing.T) {
	table := NewTable([]string{"a"})
	table.Append(map[string]string{"a": "1"})
	table.Append(map[string]string{"a": "2"})

	table.EnsureColumn("b")

	if !table.HasColumn("b") {
		t.Fatal("Expected column 'b' to be declared")
	}
	for i := 0; i < table.Len(); i++ {
		if got := table.Cell(i, "b"); got != "" {
			t.Errorf("Expected backfilled empty cell at row %d, got %q", i, got)
		}
	}

	// Idempotent on an existing column
	table.EnsureColumn("a")
	if len(table.Columns) != 2 {
		t.Errorf("Expected 2 columns, got %d", len(table.Columns))
	}
}

func TestTableCloneIsDeep(t *testing.T) {
	table := NewTable([]string{"a"})
	table.Append(map[string]string{"a": "original"})

	clone := table.Clone()
	clone.Rows[0]["a"] = "changed"
	clone.Columns = append(clone.Columns, "extra")

	if got := table.Cell(0, "a"); got != "original" {
		t.Errorf("Expected original cell untouched, got %q", got)
	}
	if table.HasColumn("extra") {
		t.Error("Expected original columns untouched")
	}
}

func TestTableDeleteOutOfRange(t *testing.T) {
	table := NewTable([]string{"a"})
	table.Append(map[string]string{"a": "1"})

	table.Delete(-1)
	table.Delete(5)
	if table.Len() != 1 {
		t.Errorf("Expected 1 row after out-of-range deletes, got %d", table.Len())
	}

	table.Delete(0)
	if !table.IsEmpty() {
		t.Error("Expected empty table after deleting the only row")
	}
}
