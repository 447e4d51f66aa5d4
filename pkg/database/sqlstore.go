package database

import (
	"errors"
	"fmt"
	"time"

	"github.com/latoulicious/GEMS/pkg/logging"
	"github.com/latoulicious/GEMS/pkg/store"
	"gorm.io/gorm"
)

// SQLStore implements store.Store on top of a shared PostgreSQL database.
// It keeps the same table semantics as the file store (whole-table replace,
// text-only cells) but can be shared by multiple processes.
type SQLStore struct {
	db      *gorm.DB
	factory logging.LoggerFactory
}

// NewSQLStore creates a SQL-backed store and migrates its tables
func NewSQLStore(db *gorm.DB, factory logging.LoggerFactory) (*SQLStore, error) {
	if err := db.AutoMigrate(&TableRecord{}, &TableColumns{}, &LogRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate store tables: %w", err)
	}
	return &SQLStore{db: db, factory: factory}, nil
}

// Load reads the entity table. An entity that has never been saved yields an
// empty table with the declared columns, mirroring first-run file creation.
func (s *SQLStore) Load(entity store.Entity) (*store.Table, error) {
	logger := s.factory.CreateStoreLogger(string(entity))

	columns, err := store.Schema(entity)
	if err != nil {
		return nil, err
	}

	var layout TableColumns
	err = s.db.First(&layout, "entity = ?", string(entity)).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return store.NewTable(columns), nil
	}
	if err != nil {
		logger.Warn("Stored layout unreadable, using empty table", map[string]interface{}{
			"error": err.Error(),
		})
		return store.NewTable(columns), nil
	}

	var records []TableRecord
	if err := s.db.Where("entity = ?", string(entity)).Order("position").Find(&records).Error; err != nil {
		logger.Warn("Stored rows unreadable, using empty table", map[string]interface{}{
			"error": err.Error(),
		})
		return store.NewTable(columns), nil
	}

	table := store.NewTable(layout.Columns)
	for _, record := range records {
		table.Append(record.Cells)
	}
	for _, column := range columns {
		table.EnsureColumn(column)
	}

	logger.Debug("Loaded table", map[string]interface{}{"rows": table.Len()})
	return table, nil
}

// Save replaces the entity table inside a transaction
func (s *SQLStore) Save(entity store.Entity, table *store.Table) error {
	logger := s.factory.CreateStoreLogger(string(entity))

	if _, err := store.Schema(entity); err != nil {
		return err
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("entity = ?", string(entity)).Delete(&TableRecord{}).Error; err != nil {
			return err
		}

		for i, row := range table.Rows {
			cells := make(map[string]string, len(row))
			for k, v := range row {
				cells[k] = v
			}
			record := TableRecord{
				Entity:   string(entity),
				Position: i,
				Cells:    cells,
			}
			if err := tx.Create(&record).Error; err != nil {
				return err
			}
		}

		layout := TableColumns{Entity: string(entity), Columns: table.Columns}
		return tx.Save(&layout).Error
	})
	if err != nil {
		logger.Error("Failed to save table", err, nil)
		return fmt.Errorf("failed to save %s table: %w", entity, err)
	}

	logger.Info("Saved table", map[string]interface{}{"rows": table.Len()})
	return nil
}

// LogRepositoryAdapter persists logging entries into the shared database
type LogRepositoryAdapter struct {
	DB *gorm.DB
}

// SaveLog stores one log entry
func (a *LogRepositoryAdapter) SaveLog(entry logging.LogEntry) error {
	record := LogRecord{
		Component: entry.Component,
		Level:     entry.Level,
		Message:   entry.Message,
		Error:     entry.Error,
		Fields:    entry.Fields,
		Entity:    entry.Entity,
		Timestamp: time.Now(),
	}
	return a.DB.Create(&record).Error
}
