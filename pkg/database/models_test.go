package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Structure checks only; the store itself is exercised against a real
// PostgreSQL instance in integration environments.

func TestTableRecordStructure(t *testing.T) {
	record := TableRecord{
		Entity:   "hero",
		Position: 3,
		Cells:    map[string]string{"id_hero": "101", "hero_name": "Ana"},
	}

	assert.Equal(t, "hero", record.Entity)
	assert.Equal(t, 3, record.Position)
	assert.Equal(t, "Ana", record.Cells["hero_name"])
	assert.Equal(t, "gems_records", record.TableName())
}

func TestTableColumnsStructure(t *testing.T) {
	layout := TableColumns{
		Entity:  "hero",
		Columns: []string{"id_hero", "hero_name"},
	}

	assert.Equal(t, []string{"id_hero", "hero_name"}, layout.Columns)
	assert.Equal(t, "gems_columns", layout.TableName())
}

func TestLogRecordStructure(t *testing.T) {
	record := LogRecord{
		Component: "repository",
		Level:     "info",
		Message:   "Hero created",
		Entity:    "hero",
	}

	assert.Equal(t, "repository", record.Component)
	assert.Equal(t, "gems_logs", record.TableName())
}
