package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// homeFile is one owner-only file in the client's home directory. Saves
// never leave a half-written file behind: the new content is synced to a
// sibling temp file which then replaces the old one.
type homeFile struct {
	path string
}

func fileIn(dir, name string) homeFile { return homeFile{path: filepath.Join(dir, name)} }

// load returns the file's content, or nil when it does not exist.
func (f homeFile) load() ([]byte, error) {
	b, err := os.ReadFile(f.path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return nil, nil
	case err != nil:
		return nil, fmt.Errorf("read %s: %w", f.path, err)
	}
	return b, nil
}

// loadJSON decodes the file into out and reports whether it existed.
func (f homeFile) loadJSON(out any) (bool, error) {
	b, err := f.load()
	if err != nil || b == nil {
		return false, err
	}
	if err := json.Unmarshal(b, out); err != nil {
		return true, fmt.Errorf("decode %s: %w", f.path, err)
	}
	return true, nil
}

func (f homeFile) saveJSON(v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return f.save(b)
}

func (f homeFile) save(b []byte) error {
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(f.path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name()) // no-op once renamed

	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return err
	}
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("replace %s: %w", f.path, err)
	}
	return nil
}

func (f homeFile) exists() bool {
	_, err := os.Stat(f.path)
	return err == nil
}
