package logging

import (
	"strings"
	"sync"

	"go.uber.org/zap/zapcore"
)

// DefaultLoggerFactory implements LoggerFactory using zap loggers
type DefaultLoggerFactory struct {
	loggers map[string]Logger
	level   zapcore.Level
	mu      sync.RWMutex
}

// NewLoggerFactory creates a new logger factory with the given minimum level
func NewLoggerFactory(level string) LoggerFactory {
	return &DefaultLoggerFactory{
		loggers: make(map[string]Logger),
		level:   parseLevel(level),
	}
}

// CreateLogger creates a basic logger for the specified component
func (f *DefaultLoggerFactory) CreateLogger(component string) Logger {
	f.mu.Lock()
	defer f.mu.Unlock()

	if logger, exists := f.loggers[component]; exists {
		return logger
	}

	logger := NewZapLogger(component, f.level)
	f.loggers[component] = logger
	return logger
}

// CreateStoreLogger creates a logger for record store operations on one entity
func (f *DefaultLoggerFactory) CreateStoreLogger(entity string) Logger {
	return f.CreateLogger("store").WithContext(map[string]interface{}{"entity": entity})
}

// CreateRepositoryLogger creates a logger for repository operations on one entity
func (f *DefaultLoggerFactory) CreateRepositoryLogger(entity string) Logger {
	return f.CreateLogger("repository").WithContext(map[string]interface{}{"entity": entity})
}

// CreateDashboardLogger creates a logger for the aggregation pipeline
func (f *DefaultLoggerFactory) CreateDashboardLogger() Logger {
	return f.CreateLogger("dashboard")
}

func parseLevel(level string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// DatabaseLoggerFactory extends the default factory with database persistence
type DatabaseLoggerFactory struct {
	*DefaultLoggerFactory
	repository LogRepository
}

// NewDatabaseLoggerFactory creates a logger factory that also persists entries
func NewDatabaseLoggerFactory(level string, repository LogRepository) LoggerFactory {
	return &DatabaseLoggerFactory{
		DefaultLoggerFactory: &DefaultLoggerFactory{
			loggers: make(map[string]Logger),
			level:   parseLevel(level),
		},
		repository: repository,
	}
}

// CreateLogger creates a database-backed logger for the specified component
func (f *DatabaseLoggerFactory) CreateLogger(component string) Logger {
	f.mu.Lock()
	defer f.mu.Unlock()

	if logger, exists := f.loggers[component]; exists {
		return logger
	}

	base := NewZapLogger(component, f.level)
	logger := NewDatabaseLogger(base, component, f.repository)
	f.loggers[component] = logger
	return logger
}

// CreateStoreLogger creates a persisted logger for record store operations
func (f *DatabaseLoggerFactory) CreateStoreLogger(entity string) Logger {
	return f.CreateLogger("store").WithContext(map[string]interface{}{"entity": entity})
}

// CreateRepositoryLogger creates a persisted logger for repository operations
func (f *DatabaseLoggerFactory) CreateRepositoryLogger(entity string) Logger {
	return f.CreateLogger("repository").WithContext(map[string]interface{}{"entity": entity})
}

// CreateDashboardLogger creates a persisted logger for the aggregation pipeline
func (f *DatabaseLoggerFactory) CreateDashboardLogger() Logger {
	return f.CreateLogger("dashboard")
}

// GlobalLoggerFactory provides a singleton logger factory instance
var (
	globalFactory LoggerFactory
	factoryOnce   sync.Once
)

// GetGlobalLoggerFactory returns the global logger factory instance
func GetGlobalLoggerFactory() LoggerFactory {
	factoryOnce.Do(func() {
		globalFactory = NewLoggerFactory("info")
	})
	return globalFactory
}

// SetGlobalLoggerFactory sets the global logger factory (useful for dependency injection)
func SetGlobalLoggerFactory(factory LoggerFactory) {
	globalFactory = factory
}
