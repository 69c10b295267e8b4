// Package persist implements the crash-safe JSON record store backing
// the user and group collections. A save either fully replaces the
// primary file or leaves it untouched; the previous generation is kept
// as a .bak sibling and a load falls back to it.
package persist

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/FLECS-Technologies/apps-tech.flecs.fence/internal/logger"
)

const (
	backupExt = ".bak"
	tmpExt    = ".tmp"
)

// Load reads a collection from path, falling back to the .bak sibling.
// If neither file exists the zero value is returned; that is not an
// error. Any other failure propagates the primary path's error.
func Load[T any](path string) (T, error) {
	var zero T

	data, err1 := loadFile[T](path)
	if err1 == nil {
		return data, nil
	}

	data, err2 := loadFile[T](backupPath(path))
	if err2 == nil {
		return data, nil
	}

	if errors.Is(err1, fs.ErrNotExist) && errors.Is(err2, fs.ErrNotExist) {
		return zero, nil
	}
	return zero, err1
}

func loadFile[T any](path string) (T, error) {
	var data T

	raw, err := os.ReadFile(path)
	if err != nil {
		return data, fmt.Errorf("open %s: %w", path, err)
	}
	if err := json.Unmarshal(raw, &data); err != nil {
		return data, fmt.Errorf("deserialize %s: %w", path, err)
	}
	return data, nil
}

// Save writes a collection to path atomically: serialize first, write a
// .tmp sibling, fsync it, then rename over the primary. The previous
// file, if any, is copied to the .bak sibling beforehand; a backup
// failure is logged but does not abort the save.
func Save[T any](path string, data T) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	// Serialization failures must leave the primary untouched, so
	// marshal before touching the filesystem.
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("serialize %s: %w", path, err)
	}

	if _, err := os.Stat(path); err == nil {
		if err := copyFile(path, backupPath(path)); err != nil {
			logger.Warn("backup before save failed", map[string]any{
				"path":  path,
				"error": err.Error(),
			})
		}
	}

	tmp := tmpPath(path)
	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("create temporary file %s: %w", tmp, err)
	}
	if _, err := f.Write(raw); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return fmt.Errorf("flush %s: %w", tmp, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmp, err)
	}

	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename %s to %s: %w", tmp, path, err)
	}
	return nil
}

func copyFile(src, dst string) error {
	raw, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, raw, 0o644)
}

// backupPath replaces the extension with .bak, so users.json pairs with
// users.bak next to it.
func backupPath(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + backupExt
}

func tmpPath(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + tmpExt
}
