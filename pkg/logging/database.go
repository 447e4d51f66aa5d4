package logging

// DatabaseLogger wraps a base logger with database persistence
type DatabaseLogger struct {
	base       Logger
	component  string
	entity     string
	repository LogRepository
}

// NewDatabaseLogger creates a new database-backed logger
func NewDatabaseLogger(base Logger, component string, repository LogRepository) Logger {
	return &DatabaseLogger{
		base:       base,
		component:  component,
		repository: repository,
	}
}

// Info logs informational messages and persists the entry
func (d *DatabaseLogger) Info(msg string, fields map[string]interface{}) {
	d.base.Info(msg, fields)
	d.persistLog("INFO", msg, nil, fields)
}

// Error logs error messages and persists the entry
func (d *DatabaseLogger) Error(msg string, err error, fields map[string]interface{}) {
	d.base.Error(msg, err, fields)
	d.persistLog("ERROR", msg, err, fields)
}

// Warn logs warning messages and persists the entry
func (d *DatabaseLogger) Warn(msg string, fields map[string]interface{}) {
	d.base.Warn(msg, fields)
	d.persistLog("WARN", msg, nil, fields)
}

// Debug logs debug messages and persists the entry
func (d *DatabaseLogger) Debug(msg string, fields map[string]interface{}) {
	d.base.Debug(msg, fields)
	d.persistLog("DEBUG", msg, nil, fields)
}

// WithContext creates a new logger with additional context fields
func (d *DatabaseLogger) WithContext(ctx map[string]interface{}) Logger {
	entity := d.entity
	if e, ok := ctx["entity"].(string); ok {
		entity = e
	}

	return &DatabaseLogger{
		base:       d.base.WithContext(ctx),
		component:  d.component,
		entity:     entity,
		repository: d.repository,
	}
}

// persistLog saves the log entry through the repository
func (d *DatabaseLogger) persistLog(level, message string, err error, fields map[string]interface{}) {
	entry := LogEntry{
		Component: d.component,
		Level:     level,
		Message:   message,
		Fields:    fields,
		Entity:    d.entity,
	}

	if err != nil {
		entry.Error = err.Error()
	}

	// Non-blocking so slow persistence never stalls the caller
	go func() {
		if saveErr := d.repository.SaveLog(entry); saveErr != nil {
			d.base.Error("Failed to persist log entry", saveErr, map[string]interface{}{
				"original_message": message,
				"original_level":   level,
			})
		}
	}()
}
