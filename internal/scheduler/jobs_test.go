package scheduler

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/latoulicious/GEMS/pkg/logging"
	"github.com/latoulicious/GEMS/pkg/repository"
	"github.com/latoulicious/GEMS/pkg/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackupJobCopiesBackingFiles(t *testing.T) {
	dataDir := t.TempDir()
	backupDir := t.TempDir()

	// Only the hero table exists; the other entities must be skipped
	heroFile := filepath.Join(dataDir, "dim_hero.csv")
	require.NoError(t, os.WriteFile(heroFile, []byte("id_hero;hero_name\n101;Ana\n"), 0o644))

	job := BackupJob(dataDir, backupDir, logging.NewLoggerFactory("error"))
	require.NoError(t, job())

	snapshots, err := os.ReadDir(backupDir)
	require.NoError(t, err)
	require.Len(t, snapshots, 1)

	copied, err := os.ReadFile(filepath.Join(backupDir, snapshots[0].Name(), "dim_hero.csv"))
	require.NoError(t, err)
	assert.Equal(t, "id_hero;hero_name\n101;Ana\n", string(copied))

	entries, err := os.ReadDir(filepath.Join(backupDir, snapshots[0].Name()))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestBackupJobEmptyDataDir(t *testing.T) {
	job := BackupJob(t.TempDir(), t.TempDir(), logging.NewLoggerFactory("error"))
	assert.NoError(t, job(), "a first-run data dir is not an error")
}

func TestSweepJob(t *testing.T) {
	cache := repository.NewCache(10 * time.Millisecond)
	cache.Put(store.EntityHero, store.NewTable([]string{"a"}))
	time.Sleep(25 * time.Millisecond)

	job := SweepJob(cache, logging.NewLoggerFactory("error"))
	require.NoError(t, job())

	_, ok := cache.Get(store.EntityHero)
	assert.False(t, ok)
}

func TestAddJobRejectsInvalidSpec(t *testing.T) {
	sched := New(logging.NewLoggerFactory("error"))
	err := sched.AddJob("not a cron spec", "broken", func() error { return nil })
	assert.Error(t, err)
}
