package logging

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFactoryCachesLoggersPerComponent(t *testing.T) {
	factory := NewLoggerFactory("error")

	first := factory.CreateLogger("store")
	second := factory.CreateLogger("store")
	other := factory.CreateLogger("repository")

	assert.Same(t, first, second, "one logger instance per component")
	assert.NotSame(t, first, other)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"debug", "debug"},
		{" WARN ", "warn"},
		{"error", "error"},
		{"info", "info"},
		{"bogus", "info"}, // unknown levels fall back to info
		{"", "info"},
	}

	for _, tt := range tests {
		if got := parseLevel(tt.input).String(); got != tt.expected {
			t.Errorf("parseLevel(%q) = %s, expected %s", tt.input, got, tt.expected)
		}
	}
}

// mockLogRepository captures persisted entries
type mockLogRepository struct {
	mu      sync.Mutex
	entries []LogEntry
	saveErr error
}

func (m *mockLogRepository) SaveLog(entry LogEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, entry)
	return m.saveErr
}

func (m *mockLogRepository) snapshot() []LogEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]LogEntry, len(m.entries))
	copy(out, m.entries)
	return out
}

func waitForEntries(t *testing.T, repo *mockLogRepository, n int) []LogEntry {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if entries := repo.snapshot(); len(entries) >= n {
			return entries
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("Expected %d persisted entries, got %d", n, len(repo.snapshot()))
	return nil
}

func TestDatabaseLoggerPersistsEntries(t *testing.T) {
	repo := &mockLogRepository{}
	factory := NewDatabaseLoggerFactory("error", repo)

	logger := factory.CreateRepositoryLogger("hero")
	logger.Info("Hero created", map[string]interface{}{"id": 101})
	logger.Error("Save failed", errors.New("disk full"), nil)

	entries := waitForEntries(t, repo, 2)

	byLevel := make(map[string]LogEntry)
	for _, entry := range entries {
		byLevel[entry.Level] = entry
	}

	info, ok := byLevel["INFO"]
	require.True(t, ok)
	assert.Equal(t, "repository", info.Component)
	assert.Equal(t, "hero", info.Entity)
	assert.Equal(t, "Hero created", info.Message)

	errEntry, ok := byLevel["ERROR"]
	require.True(t, ok)
	assert.Equal(t, "disk full", errEntry.Error)
}

func TestGlobalLoggerFactory(t *testing.T) {
	custom := NewLoggerFactory("debug")
	SetGlobalLoggerFactory(custom)
	assert.Same(t, custom, GetGlobalLoggerFactory())
}
