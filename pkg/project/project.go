// Package project manages the project registry: named per-project storage
// directories under the app home, each holding one SQLite database.
// Deleting a project removes its storage directory only; classified files
// on disk are never touched.
package project

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"voicesort/pkg/protocol"
)

// Registry locates and manipulates projects under a base directory.
type Registry struct {
	baseDir string
}

// NewRegistry resolves the app home (VOICESORT_HOME or ~/.voicesort),
// creates the projects directory if needed, and returns a Registry over it.
func NewRegistry() (*Registry, error) {
	base := os.Getenv("VOICESORT_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home dir: %w", err)
		}
		base = filepath.Join(home, protocol.AppDirName)
	}
	return NewRegistryAt(base)
}

// NewRegistryAt returns a Registry rooted at baseDir, creating the projects
// directory if needed.
func NewRegistryAt(baseDir string) (*Registry, error) {
	if err := os.MkdirAll(filepath.Join(baseDir, protocol.ProjectsDirName), 0o755); err != nil {
		return nil, fmt.Errorf("create projects dir: %w", err)
	}
	return &Registry{baseDir: baseDir}, nil
}

// BaseDir returns the app home directory.
func (r *Registry) BaseDir() string {
	return r.baseDir
}

// ConfigPath returns the app-level config file path.
func (r *Registry) ConfigPath() string {
	return filepath.Join(r.baseDir, protocol.ConfigFileName)
}

// projectsDir returns the directory holding all project directories.
func (r *Registry) projectsDir() string {
	return filepath.Join(r.baseDir, protocol.ProjectsDirName)
}

// DBPath returns the database path for the project key.
func (r *Registry) DBPath(key string) string {
	return filepath.Join(r.projectsDir(), key, protocol.DBFileName)
}

// Exists reports whether a project directory exists for key.
func (r *Registry) Exists(key string) bool {
	info, err := os.Stat(filepath.Join(r.projectsDir(), key))
	return err == nil && info.IsDir()
}

// List returns all project keys in sorted order.
func (r *Registry) List() ([]string, error) {
	entries, err := os.ReadDir(r.projectsDir())
	if err != nil {
		return nil, fmt.Errorf("read projects dir: %w", err)
	}
	var keys []string
	for _, e := range entries {
		if e.IsDir() {
			keys = append(keys, e.Name())
		}
	}
	sort.Strings(keys)
	return keys, nil
}

// Create sanitizes name into a project key and creates its directory.
// Creating an existing project is not an error; the key is returned either
// way.
func (r *Registry) Create(name string) (string, error) {
	key := protocol.SafeName(name)
	if err := os.MkdirAll(filepath.Join(r.projectsDir(), key), 0o755); err != nil {
		return "", fmt.Errorf("create project %s: %w", key, err)
	}
	return key, nil
}

// Rename moves a project directory to a new sanitized key. It fails if the
// source is missing or the target already exists.
func (r *Registry) Rename(oldKey, newName string) (string, error) {
	newKey := protocol.SafeName(newName)
	if newKey == oldKey {
		return newKey, nil
	}
	if !r.Exists(oldKey) {
		return "", fmt.Errorf("project %s not found", oldKey)
	}
	if r.Exists(newKey) {
		return "", fmt.Errorf("project %s already exists", newKey)
	}
	oldDir := filepath.Join(r.projectsDir(), oldKey)
	newDir := filepath.Join(r.projectsDir(), newKey)
	if err := os.Rename(oldDir, newDir); err != nil {
		return "", fmt.Errorf("rename project %s -> %s: %w", oldKey, newKey, err)
	}
	return newKey, nil
}

// Delete removes the project directory and everything in it.
func (r *Registry) Delete(key string) error {
	if !r.Exists(key) {
		return fmt.Errorf("project %s not found", key)
	}
	if err := os.RemoveAll(filepath.Join(r.projectsDir(), key)); err != nil {
		return fmt.Errorf("delete project %s: %w", key, err)
	}
	return nil
}
