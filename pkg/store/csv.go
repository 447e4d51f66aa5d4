package store

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/latoulicious/GEMS/pkg/logging"
)

// delimiter matches the file contract: semicolon-separated, UTF-8
const delimiter = ';'

// FileStore persists each entity table as a delimited flat file under dir.
// Saves rewrite the whole file; there is no locking, so concurrent writers
// race with last-write-wins semantics (single-writer deployment assumed).
type FileStore struct {
	dir     string
	factory logging.LoggerFactory
}

// NewFileStore creates a file-backed store rooted at dir
func NewFileStore(dir string, factory logging.LoggerFactory) *FileStore {
	return &FileStore{dir: dir, factory: factory}
}

// Load reads the entity table, creating the backing file with a header-only
// row on first access. Structurally unreadable files degrade to an empty
// table with the declared columns plus a warning; they never fail the caller.
func (s *FileStore) Load(entity Entity) (*Table, error) {
	logger := s.factory.CreateStoreLogger(string(entity))

	columns, err := Schema(entity)
	if err != nil {
		return nil, err
	}

	path, err := s.path(entity)
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		table := NewTable(columns)
		if err := s.Save(entity, table); err != nil {
			return nil, fmt.Errorf("failed to create %s: %w", filepath.Base(path), err)
		}
		logger.Info("Created backing file", map[string]interface{}{"path": path})
		return table, nil
	}

	f, err := os.Open(path)
	if err != nil {
		logger.Warn("Backing file unreadable, using empty table", map[string]interface{}{
			"path":  path,
			"error": err.Error(),
		})
		return NewTable(columns), nil
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil || len(records) == 0 {
		fields := map[string]interface{}{"path": path}
		if err != nil {
			fields["error"] = err.Error()
		}
		logger.Warn("Backing file malformed or empty, using empty table", fields)
		return NewTable(columns), nil
	}

	header := records[0]
	table := NewTable(header)
	for _, record := range records[1:] {
		row := make(map[string]string, len(header))
		for i, column := range header {
			if i < len(record) {
				row[column] = record[i]
			} else {
				row[column] = ""
			}
		}
		table.Rows = append(table.Rows, row)
	}

	// Forward-compatible schema migration: declared columns the file predates
	// appear with an absent marker on every row.
	for _, column := range columns {
		table.EnsureColumn(column)
	}

	logger.Debug("Loaded table", map[string]interface{}{"rows": table.Len()})
	return table, nil
}

// Save atomically overwrites the backing file with the table's current
// contents. Whatever columns the table holds are written, no filtering.
func (s *FileStore) Save(entity Entity, table *Table) error {
	logger := s.factory.CreateStoreLogger(string(entity))

	path, err := s.path(entity)
	if err != nil {
		return err
	}

	tmp := filepath.Join(s.dir, fmt.Sprintf(".%s-%s.tmp", entity, uuid.NewString()))
	if err := writeCSV(tmp, table); err != nil {
		os.Remove(tmp)
		logger.Error("Failed to write table", err, map[string]interface{}{"path": path})
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}

	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		logger.Error("Failed to replace table file", err, map[string]interface{}{"path": path})
		return fmt.Errorf("failed to replace %s: %w", filepath.Base(path), err)
	}

	logger.Info("Saved table", map[string]interface{}{"path": path, "rows": table.Len()})
	return nil
}

// path resolves the entity's backing file, lazily creating the data directory
func (s *FileStore) path(entity Entity) (string, error) {
	name, err := FileName(entity)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create data directory: %w", err)
	}
	return filepath.Join(s.dir, name), nil
}

func writeCSV(path string, table *Table) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	writer := csv.NewWriter(f)
	writer.Comma = delimiter

	if err := writer.Write(table.Columns); err != nil {
		f.Close()
		return err
	}

	record := make([]string, len(table.Columns))
	for _, row := range table.Rows {
		for i, column := range table.Columns {
			record[i] = row[column]
		}
		if err := writer.Write(record); err != nil {
			f.Close()
			return err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
