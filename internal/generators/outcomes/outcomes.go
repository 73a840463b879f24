// Package outcomes lists the recorded test-outcome files a report is built from.
package outcomes

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Outcome is one recorded test-outcome file.
type Outcome struct {
	Name     string
	Format   string
	Size     int64
	Modified time.Time
}

var recognised = map[string]string{
	".json": "json",
	".xml":  "xml",
}

// List returns the outcome files directly inside dir, sorted by name.
func List(dir string) ([]Outcome, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read outcomes from %s: %w", dir, err)
	}

	outcomes := make([]Outcome, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		format, ok := recognised[strings.ToLower(filepath.Ext(entry.Name()))]
		if !ok {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", entry.Name(), err)
		}
		outcomes = append(outcomes, Outcome{
			Name:     entry.Name(),
			Format:   format,
			Size:     info.Size(),
			Modified: info.ModTime().UTC(),
		})
	}

	sort.Slice(outcomes, func(i, j int) bool { return outcomes[i].Name < outcomes[j].Name })
	return outcomes, nil
}

// WriteFile writes data to path through a temporary file and a rename so a
// reader never sees a half-written report.
func WriteFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create report directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temporary file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write temporary file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close temporary file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("set report permissions: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename temporary file: %w", err)
	}
	return nil
}
