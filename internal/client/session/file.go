package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const (
	sessionDirName  = "forkline"
	sessionFileName = "session.json"
)

// FileBackend persists the session as a small JSON file under the user's
// config directory. It survives process restarts and is the choice for
// headless machines where no OS keyring is available.
type FileBackend struct {
	path string
}

// NewFileBackend creates a backend rooted at ~/.config/forkline/session.json.
func NewFileBackend() (*FileBackend, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get user home directory: %w", err)
	}

	path := filepath.Join(homeDir, ".config", sessionDirName, sessionFileName)
	return &FileBackend{path: path}, nil
}

// NewFileBackendAt creates a backend at an explicit path, used by tests.
func NewFileBackendAt(path string) *FileBackend {
	return &FileBackend{path: path}
}

func (f *FileBackend) Get(key string) (string, error) {
	values, err := f.read()
	if err != nil {
		return "", err
	}

	value, ok := values[key]
	if !ok {
		return "", ErrNotFound
	}
	return value, nil
}

func (f *FileBackend) Set(key, value string) error {
	values, err := f.read()
	if err != nil {
		return err
	}

	values[key] = value
	return f.write(values)
}

func (f *FileBackend) Delete(key string) error {
	values, err := f.read()
	if err != nil {
		return err
	}

	delete(values, key)
	return f.write(values)
}

func (f *FileBackend) read() (map[string]string, error) {
	data, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	var values map[string]string
	if err := json.Unmarshal(data, &values); err != nil {
		// A damaged session file behaves like an empty one; the next write
		// replaces it.
		return map[string]string{}, nil
	}
	return values, nil
}

func (f *FileBackend) write(values map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0755); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}

	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	// 0600: the file holds a live bearer token.
	if err := os.WriteFile(f.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	return nil
}
