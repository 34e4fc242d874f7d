package config

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed defaults/tables.yaml
var embeddedDefaults embed.FS

const defaultsPath = "defaults/tables.yaml"

var (
	defaultsOnce   sync.Once
	defaultsTables Tables
)

// Default returns a copy of the embedded tables.
func Default() Tables {
	defaultsOnce.Do(func() {
		data, err := embeddedDefaults.ReadFile(defaultsPath)
		if err != nil {
			// The embed directive guarantees the file exists.
			panic(err)
		}
		var tables Tables
		if err := decode(data, &tables); err != nil {
			panic(fmt.Errorf("config: embedded defaults: %w", err))
		}
		defaultsTables = tables
	})
	return defaultsTables.clone()
}

// Load layers YAML data over the defaults. Maps merge key by key; lists and
// scalar values replace the default when present. Unknown keys are rejected.
func Load(data []byte) (Tables, error) {
	return load(data, "")
}

// LoadFile reads a YAML file and layers it over the defaults.
func LoadFile(path string) (Tables, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return Tables{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	return load(data, path)
}

// LoadFS reads name from fsys and layers it over the defaults. A nil fsys
// yields the defaults.
func LoadFS(fsys fs.FS, name string) (Tables, error) {
	if fsys == nil {
		return Default(), nil
	}
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return Tables{}, fmt.Errorf("config: read %s: %w", name, err)
	}
	return load(data, name)
}

// load decodes data over the defaults. source names the document in error
// messages and may be empty.
func load(data []byte, source string) (Tables, error) {
	where := ""
	if source != "" {
		where = " " + source
	}
	tables := Default()
	if err := decode(data, &tables); err != nil {
		return Tables{}, fmt.Errorf("config: parse%s: %w", where, err)
	}
	if err := tables.validate(); err != nil {
		return Tables{}, fmt.Errorf("config: validate%s: %w", where, err)
	}
	return tables, nil
}

func decode(data []byte, out *Tables) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}
	return nil
}
