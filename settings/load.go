package settings

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Validatable is an optional interface settings structs can implement to
// reject bad values before they are swapped in.
type Validatable interface {
	Validate() error
}

// Load reads a TOML settings file into a struct of type T. A missing file
// is not an error: the provided defaults are returned unchanged.
func Load[T any](path string, defaults *T) (*T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return defaults, nil
		}
		return nil, fmt.Errorf("reading settings %s: %w", path, err)
	}

	cfg := new(T)
	if defaults != nil {
		*cfg = *defaults
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing settings %s: %w", path, err)
	}

	if v, ok := any(cfg).(Validatable); ok {
		if err := v.Validate(); err != nil {
			return nil, fmt.Errorf("validating settings %s: %w", path, err)
		}
	}

	return cfg, nil
}

// Reloader re-reads a settings file into a store. It is the common reload
// path shared by the file watcher and by explicit host-triggered reloads.
type Reloader[T any] struct {
	store    *Store[T]
	path     string
	defaults *T
}

// NewReloader creates a reloader for the given store and file.
func NewReloader[T any](store *Store[T], path string, defaults *T) *Reloader[T] {
	return &Reloader[T]{store: store, path: path, defaults: defaults}
}

// Reload loads the file and swaps the result into the store.
func (r *Reloader[T]) Reload() error {
	cfg, err := Load(r.path, r.defaults)
	if err != nil {
		return err
	}
	r.store.Swap(cfg)
	return nil
}
