package kv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"
)

const defaultFileName = "job-matcher.json"

// File stores all keys in a single JSON object on disk.
// Writes go through a temporary file and a rename, under a lock file.
type File struct {
	path string
	lock *flock.Flock
}

// NewFile returns a file store at path. The file is created on first Set.
func NewFile(path string) (*File, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("resolving config dir: %w", err)
		}
		path = filepath.Join(dir, "job-matcher", defaultFileName)
	}

	return &File{
		path: path,
		lock: flock.New(path + ".lock"),
	}, nil
}

// Path returns the location of the data file.
func (f *File) Path() string { return f.path }

// Get never creates files. A store that was never written reads as empty.
func (f *File) Get(_ context.Context, key string) (string, bool, error) {
	if _, err := os.Stat(f.path); errors.Is(err, os.ErrNotExist) {
		return "", false, nil
	}
	if err := f.lock.RLock(); err != nil {
		return "", false, fmt.Errorf("locking %s: %w", f.path, err)
	}
	defer f.lock.Unlock()

	values, err := f.read()
	if err != nil {
		return "", false, err
	}

	value, ok := values[key]
	return value, ok, nil
}

func (f *File) Set(_ context.Context, key, value string) error {
	if err := f.ensureDir(); err != nil {
		return err
	}
	if err := f.lock.Lock(); err != nil {
		return fmt.Errorf("locking %s: %w", f.path, err)
	}
	defer f.lock.Unlock()

	values, err := f.read()
	if err != nil {
		// A corrupt file is overwritten.
		values = make(map[string]string)
	}
	values[key] = value

	b, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return err
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, f.path)
}

func (f *File) Close() error {
	return f.lock.Close()
}

func (f *File) ensureDir() error {
	return os.MkdirAll(filepath.Dir(f.path), 0o755)
}

func (f *File) read() (map[string]string, error) {
	values := make(map[string]string)

	b, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return values, nil
	}
	if err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(string(b))) == 0 {
		return values, nil
	}

	if err := json.Unmarshal(b, &values); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", f.path, err)
	}
	return values, nil
}
