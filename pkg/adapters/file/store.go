// Package file persists the task list as a YAML document on the local filesystem.
package file

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aretw0/taskflow/pkg/domain"
	"gopkg.in/yaml.v3"
)

// DefaultPath is used when New is given an empty path.
const DefaultPath = "tasks.yaml"

// Store implements ports.TaskStore with a single YAML file holding a list of
// task records.
type Store struct {
	Path string
}

// New creates a new Store for path.
func New(path string) *Store {
	if path == "" {
		path = DefaultPath
	}
	return &Store{Path: path}
}

// Load reads the task list. A missing or empty file is an empty list.
func (s *Store) Load(ctx context.Context) ([]domain.Task, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return []domain.Task{}, nil
		}
		return nil, fmt.Errorf("failed to read task file: %w", err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return []domain.Task{}, nil
	}

	var tasks []domain.Task
	if err := yaml.Unmarshal(data, &tasks); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrMalformedStore, s.Path, err)
	}
	return domain.NormalizeTasks(tasks), nil
}

// Save overwrites the task file atomically.
// It writes to a temporary file in the same directory, syncs it and renames it
// over the destination.
func (s *Store) Save(ctx context.Context, tasks []domain.Task) error {
	if tasks == nil {
		tasks = []domain.Task{}
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(tasks); err != nil {
		return fmt.Errorf("failed to marshal tasks: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to marshal tasks: %w", err)
	}

	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to ensure task directory: %w", err)
	}

	// Same directory keeps the rename on one filesystem.
	tmpFile, err := os.CreateTemp(dir, ".tmp-"+filepath.Base(s.Path)+"-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmpFile.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to fsync temp file: %w", err)
	}
	// Windows cannot rename an open file.
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	// Windows rename does not replace an existing destination.
	if _, err := os.Stat(s.Path); err == nil {
		if err := os.Remove(s.Path); err != nil {
			return fmt.Errorf("failed to remove existing task file: %w", err)
		}
	}
	if err := os.Rename(tmpPath, s.Path); err != nil {
		return fmt.Errorf("failed to replace task file: %w", err)
	}
	return nil
}
