package export

import (
	"context"
	"os"
	"path/filepath"
)

// DirBackend stores the blob as a file in a documents-style directory,
// creating the directory on demand.
type DirBackend struct {
	Dir  string
	Name string
}

func (d DirBackend) path() string { return filepath.Join(d.Dir, d.Name) }

func (d DirBackend) Ensure(context.Context) (string, error) {
	if err := os.MkdirAll(d.Dir, 0o755); err != nil {
		return "", err
	}
	return d.path(), nil
}

func (d DirBackend) Put(_ context.Context, data []byte) error {
	tmp, err := os.CreateTemp(d.Dir, d.Name+".*.tmp")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), d.path())
}

func (d DirBackend) Get(context.Context) ([]byte, error) {
	return os.ReadFile(d.path())
}

func (d DirBackend) Remove(context.Context) error {
	return os.Remove(d.path())
}
