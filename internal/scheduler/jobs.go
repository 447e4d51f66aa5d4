package scheduler

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/latoulicious/GEMS/pkg/logging"
	"github.com/latoulicious/GEMS/pkg/repository"
	"github.com/latoulicious/GEMS/pkg/store"
)

// BackupJob copies the entity backing files into a timestamped directory.
// Missing backing files are skipped; first-run data dirs are not an error.
func BackupJob(dataDir, backupDir string, factory logging.LoggerFactory) func() error {
	logger := factory.CreateLogger("backup")

	return func() error {
		target := filepath.Join(backupDir, time.Now().Format("20060102T150405"))
		if err := os.MkdirAll(target, 0o755); err != nil {
			return fmt.Errorf("failed to create backup directory: %w", err)
		}

		copied := 0
		for _, entity := range store.Entities() {
			name, err := store.FileName(entity)
			if err != nil {
				return err
			}

			src := filepath.Join(dataDir, name)
			if _, err := os.Stat(src); os.IsNotExist(err) {
				continue
			}
			if err := copyFile(src, filepath.Join(target, name)); err != nil {
				return fmt.Errorf("failed to back up %s: %w", name, err)
			}
			copied++
		}

		logger.Info("Backup completed", map[string]interface{}{"dir": target, "files": copied})
		return nil
	}
}

// SweepJob evicts expired cache entries
func SweepJob(cache *repository.Cache, factory logging.LoggerFactory) func() error {
	logger := factory.CreateLogger("cache")

	return func() error {
		removed := cache.Sweep()
		if removed > 0 {
			logger.Debug("Cache swept", map[string]interface{}{"removed": removed})
		}
		return nil
	}
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
