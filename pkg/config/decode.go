package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrUnknownKeys       = errors.New("unknown keys")
	ErrTrailingContent   = errors.New("trailing content after document")
)

// Format is the encoding of a user config or collection file.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatOf picks the format from the extension of name. A name without an
// extension is TOML.
func FormatOf(name string) (Format, error) {
	switch ext := strings.ToLower(path.Ext(name)); ext {
	case "", ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w %q (want .toml, .yaml, .yml or .json)", ErrUnsupportedFormat, ext)
	}
}

// Decode reads exactly one document from r into v. Keys that v has no field
// for are rejected in every format.
func Decode(name string, r io.Reader, v any) error {
	format, err := FormatOf(name)
	if err != nil {
		return err
	}

	switch format {
	case FormatTOML:
		md, err := toml.NewDecoder(r).Decode(v)
		if err != nil {
			return err
		}
		if undec := md.Undecoded(); len(undec) > 0 {
			return fmt.Errorf("%w: %v", ErrUnknownKeys, undec)
		}
		return nil

	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		return expectEOF(dec.Decode(&struct{}{}))

	default:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(v); err != nil {
			return err
		}
		return expectEOF(dec.Decode(&struct{}{}))
	}
}

func expectEOF(err error) error {
	switch {
	case errors.Is(err, io.EOF):
		return nil
	case err == nil:
		return ErrTrailingContent
	default:
		return err
	}
}

func decodeFile(name string, v any) error {
	f, err := os.Open(name)
	if err != nil {
		return err
	}
	defer f.Close()

	return Decode(name, f, v)
}
