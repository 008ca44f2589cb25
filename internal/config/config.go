// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package config locates, creates and parses the eutils preferences file and
// turns it into a validated format catalog.
//
// The file format follows the extension: .json (the default), .yaml/.yml or
// .toml. Unknown keys are rejected in every format.
package config

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/eutils/internal/format"
	"github.com/pdiddy/eutils/pkg/types"
)

// ErrConfig marks failures reading, writing, parsing or validating the
// preferences file.
var ErrConfig = errors.New("config")

// Settings is the validated result of loading the preferences file.
type Settings struct {
	WarnDangerous bool
	Journal       bool
	Catalog       *format.Catalog
}

// Load reads the preferences at loc, writing the defaults first when the
// file does not exist yet.
func Load(ctx context.Context, loc Location) (*Settings, error) {
	log := zerolog.Ctx(ctx)

	if _, err := os.Stat(loc.Path); errors.Is(err, os.ErrNotExist) {
		if err := WriteDefault(loc); err != nil {
			return nil, err
		}
		log.Info().Str("path", loc.Path).Msg("created default preferences")
	} else if err != nil {
		return nil, fmt.Errorf("%w: checking %s: %w", ErrConfig, loc.Path, err)
	}

	data, err := os.ReadFile(loc.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %w", ErrConfig, loc.Path, err)
	}

	prefs, err := Parse(loc.Path, data)
	if err != nil {
		return nil, err
	}

	catalog, err := format.NewCatalog(prefs.FileFormats)
	if err != nil {
		return nil, fmt.Errorf("%w: validating %s: %w", ErrConfig, loc.Path, err)
	}
	log.Debug().Str("path", loc.Path).Int("formats", len(prefs.FileFormats)).Msg("loaded preferences")

	return &Settings{
		WarnDangerous: prefs.WarnDangerous,
		Journal:       prefs.Journal,
		Catalog:       catalog,
	}, nil
}

// WriteDefault creates the parent directories and writes DefaultPreferences
// to loc, encoded for the file's extension.
func WriteDefault(loc Location) error {
	data, err := Encode(loc.Path, DefaultPreferences())
	if err != nil {
		return err
	}
	if err := os.MkdirAll(loc.Dir(), 0o755); err != nil {
		return fmt.Errorf("%w: creating %s: %w", ErrConfig, loc.Dir(), err)
	}
	if err := os.WriteFile(loc.Path, data, 0o644); err != nil {
		return fmt.Errorf("%w: writing %s: %w", ErrConfig, loc.Path, err)
	}
	return nil
}

// Parse decodes data according to the extension of path.
func Parse(path string, data []byte) (types.Preferences, error) {
	var (
		prefs types.Preferences
		err   error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json", "":
		prefs, err = parseJSON(data)
	case ".yaml", ".yml":
		prefs, err = parseYAML(data)
	case ".toml":
		prefs, err = parseTOML(data)
	default:
		return types.Preferences{}, fmt.Errorf("%w: unsupported preferences extension %q", ErrConfig, ext)
	}
	if err != nil {
		return types.Preferences{}, fmt.Errorf("%w: parsing %s: %w", ErrConfig, path, err)
	}
	return prefs, nil
}

// Encode renders prefs in the format matching path's extension.
func Encode(path string, prefs types.Preferences) ([]byte, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json", "":
		data, err := json.MarshalIndent(prefs, "", "    ")
		if err != nil {
			return nil, fmt.Errorf("%w: encoding JSON: %w", ErrConfig, err)
		}
		return append(data, '\n'), nil
	case ".yaml", ".yml":
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(prefs); err != nil {
			return nil, fmt.Errorf("%w: encoding YAML: %w", ErrConfig, err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("%w: encoding YAML: %w", ErrConfig, err)
		}
		return buf.Bytes(), nil
	case ".toml":
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(prefs); err != nil {
			return nil, fmt.Errorf("%w: encoding TOML: %w", ErrConfig, err)
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("%w: unsupported preferences extension %q", ErrConfig, ext)
	}
}

func parseJSON(data []byte) (types.Preferences, error) {
	var prefs types.Preferences
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&prefs); err != nil {
		return types.Preferences{}, err
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return types.Preferences{}, fmt.Errorf("unexpected content after the preferences document")
	}
	return prefs, nil
}

func parseYAML(data []byte) (types.Preferences, error) {
	var prefs types.Preferences
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&prefs); err != nil {
		return types.Preferences{}, err
	}
	return prefs, nil
}

func parseTOML(data []byte) (types.Preferences, error) {
	var prefs types.Preferences
	md, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&prefs)
	if err != nil {
		return types.Preferences{}, err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return types.Preferences{}, fmt.Errorf("unknown keys: %v", undecoded)
	}
	return prefs, nil
}
