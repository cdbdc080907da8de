package settingsstore

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"turnos-service/internal/domain/booking"
	"turnos-service/internal/infra"

	"github.com/BurntSushi/toml"
)

// File persists the policy as TOML. Writes go to a temporary file that is renamed
// over the target, so readers never observe a partial document.
type File struct {
	mu       sync.Mutex
	path     string
	defaults booking.Policy
	logger   *slog.Logger
}

func NewFile(path string, defaults booking.Policy, logger *slog.Logger) *File {
	return &File{path: path, defaults: defaults.Clone(), logger: logger}
}

func (f *File) Get(_ context.Context) (booking.Policy, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.load()
}

func (f *File) Set(_ context.Context, patch booking.PolicyPatch) (booking.Policy, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	current, err := f.load()
	if err != nil {
		return booking.Policy{}, err
	}
	merged, err := current.Merge(patch)
	if err != nil {
		return booking.Policy{}, err
	}
	if err := f.store(merged); err != nil {
		return booking.Policy{}, err
	}
	return merged, nil
}

func (f *File) load() (booking.Policy, error) {
	var r record
	_, err := toml.DecodeFile(f.path, &r)
	if errors.Is(err, fs.ErrNotExist) {
		return f.defaults.Clone(), nil
	}
	if err != nil {
		return booking.Policy{}, infra.WrapErr(f.logger, infra.KindStoreFailure, "read settings file", err)
	}
	return r.toDomain(), nil
}

func (f *File) store(p booking.Policy) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(toRecord(p)); err != nil {
		return infra.WrapErr(f.logger, infra.KindStoreFailure, "encode settings", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return infra.WrapErr(f.logger, infra.KindStoreFailure, "create temp settings file", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return infra.WrapErr(f.logger, infra.KindStoreFailure, "write settings file", err)
	}
	if err := tmp.Close(); err != nil {
		return infra.WrapErr(f.logger, infra.KindStoreFailure, "close settings file", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return infra.WrapErr(f.logger, infra.KindStoreFailure, "replace settings file", err)
	}
	return nil
}
