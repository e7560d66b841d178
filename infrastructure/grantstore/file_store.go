// Package grantstore persists the capability grant set as a yaml file.
package grantstore

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/hostview-dev/hostview-sdk/domain/entities"
	"github.com/hostview-dev/hostview-sdk/domain/ports"
)

// fileStoreConfig holds configuration for the FileStore.
type fileStoreConfig struct {
	path     string
	dirPerm  os.FileMode
	filePerm os.FileMode
}

func defaultFileStoreConfig() fileStoreConfig {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return fileStoreConfig{
		path:     filepath.Join(home, ".hostview", "grants.yaml"),
		dirPerm:  0o755,
		filePerm: 0o600, // grants name origins; keep them user-only
	}
}

// Option configures a FileStore instance.
type Option func(*fileStoreConfig)

// WithPath sets the path of the grants file.
func WithPath(path string) Option {
	return func(c *fileStoreConfig) {
		c.path = path
	}
}

// WithFilePermissions sets the mode of the grants file. Default 0o600.
func WithFilePermissions(perm os.FileMode) Option {
	return func(c *fileStoreConfig) {
		c.filePerm = perm
	}
}

// WithDirPermissions sets the mode of created parent directories.
// Default 0o755.
func WithDirPermissions(perm os.FileMode) Option {
	return func(c *fileStoreConfig) {
		c.dirPerm = perm
	}
}

// FileStore implements ports.GrantStore over a single yaml document. Saves
// go through a temp file in the same directory and a rename, so a crash
// mid-write never truncates the previous grant set.
type FileStore struct {
	config fileStoreConfig
}

var _ ports.GrantStore = (*FileStore)(nil)

// NewFileStore creates a FileStore.
func NewFileStore(opts ...Option) *FileStore {
	cfg := defaultFileStoreConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &FileStore{config: cfg}
}

// Load reads the grant set. A store that does not exist yet is an empty
// set, not an error.
func (s *FileStore) Load() (*entities.GrantSet, error) {
	data, err := os.ReadFile(s.config.path)
	if os.IsNotExist(err) {
		return &entities.GrantSet{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read grants %s: %w", s.config.path, err)
	}

	var grants entities.GrantSet
	if err := yaml.Unmarshal(data, &grants); err != nil {
		return nil, fmt.Errorf("parse grants %s: %w", s.config.path, err)
	}
	return &grants, nil
}

// Save writes the grant set atomically.
func (s *FileStore) Save(grants *entities.GrantSet) error {
	data, err := yaml.Marshal(grants)
	if err != nil {
		return fmt.Errorf("encode grants: %w", err)
	}

	dir := filepath.Dir(s.config.path)
	if err := os.MkdirAll(dir, s.config.dirPerm); err != nil {
		return fmt.Errorf("create grants directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".grants-*.yaml")
	if err != nil {
		return fmt.Errorf("stage grants: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(s.config.filePerm); err != nil {
		tmp.Close()
		return fmt.Errorf("stage grants: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("stage grants: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("stage grants: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.config.path); err != nil {
		return fmt.Errorf("write grants %s: %w", s.config.path, err)
	}
	return nil
}

// ConfigPath returns the path of the backing file.
func (s *FileStore) ConfigPath() string {
	return s.config.path
}
