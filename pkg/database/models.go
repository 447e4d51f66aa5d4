package database

import (
	"time"
)

// TableRecord is one row of an entity table persisted in the shared store.
// Cells are the text values keyed by column name.
type TableRecord struct {
	ID        uint              `gorm:"primaryKey" json:"id"`
	Entity    string            `gorm:"index;not null" json:"entity"`
	Position  int               `gorm:"not null" json:"position"`
	Cells     map[string]string `gorm:"type:jsonb;serializer:json" json:"cells"`
	UpdatedAt time.Time         `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for TableRecord
func (TableRecord) TableName() string {
	return "gems_records"
}

// TableColumns persists an entity's column order so saved tables round-trip
// with the same layout the caller wrote.
type TableColumns struct {
	Entity    string    `gorm:"primaryKey" json:"entity"`
	Columns   []string  `gorm:"type:jsonb;serializer:json" json:"columns"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for TableColumns
func (TableColumns) TableName() string {
	return "gems_columns"
}

// LogRecord is a persisted log entry from the centralized logging system
type LogRecord struct {
	ID        uint                   `gorm:"primaryKey" json:"id"`
	Component string                 `gorm:"index;not null" json:"component"`
	Level     string                 `gorm:"index;not null" json:"level"`
	Message   string                 `gorm:"type:text;not null" json:"message"`
	Error     string                 `gorm:"type:text" json:"error"`
	Fields    map[string]interface{} `gorm:"type:jsonb;serializer:json" json:"fields"`
	Entity    string                 `gorm:"index" json:"entity"`
	Timestamp time.Time              `gorm:"index;not null" json:"timestamp"`
}

// TableName specifies the table name for LogRecord
func (LogRecord) TableName() string {
	return "gems_logs"
}
