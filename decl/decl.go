// Package decl loads command tree declarations from YAML, TOML or JSON
// files and builds them into a *cmdtree.Tree.
//
//	description: demo tool
//	help: true
//	commands:
//	  - name: --greet
//	    aliases: [-g]
//	    description: Say hello
//	    options:
//	      - name: --name
//	        aliases: [-n]
//	        type: string
//	        required: true
package decl

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Format is a declaration file encoding
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// ErrUnknownFormat is returned for file extensions with no decoder
var ErrUnknownFormat = errors.New("unknown declaration format")

// Spec is a whole declaration
type Spec struct {
	Description string        `yaml:"description" toml:"description" json:"description"`
	Help        bool          `yaml:"help" toml:"help" json:"help"`
	Commands    []CommandSpec `yaml:"commands" toml:"commands" json:"commands"`
}

// CommandSpec declares one command. Capacity defaults to the number of
// declared options.
type CommandSpec struct {
	Name        string       `yaml:"name" toml:"name" json:"name"`
	Aliases     []string     `yaml:"aliases" toml:"aliases" json:"aliases"`
	Description string       `yaml:"description" toml:"description" json:"description"`
	Capacity    int          `yaml:"capacity" toml:"capacity" json:"capacity"`
	Options     []OptionSpec `yaml:"options" toml:"options" json:"options"`
}

// OptionSpec declares one option. Type is one of bool, int, float, string
// or []string (see cmdtree.ParseKind for accepted spellings).
type OptionSpec struct {
	Name        string   `yaml:"name" toml:"name" json:"name"`
	Aliases     []string `yaml:"aliases" toml:"aliases" json:"aliases"`
	Type        string   `yaml:"type" toml:"type" json:"type"`
	Required    bool     `yaml:"required" toml:"required" json:"required"`
	Default     any      `yaml:"default" toml:"default" json:"default"`
	Description string   `yaml:"description" toml:"description" json:"description"`
}

// FormatFromPath picks the format from the file extension
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	case ".json":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Ext(path))
}

// Load reads and decodes the declaration at path
func Load(path string) (*Spec, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	spec, err := Decode(f, format)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return spec, nil
}

// Decode reads a declaration in the given format
func Decode(r io.Reader, format Format) (*Spec, error) {
	var spec Spec
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&spec); err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
	case FormatTOML:
		md, err := toml.NewDecoder(r).Decode(&spec)
		if err != nil {
			return nil, err
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("unknown keys: %v", undecoded)
		}
	case FormatJSON:
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, err
		}
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		dec.UseNumber()
		if len(bytes.TrimSpace(data)) > 0 {
			if err := dec.Decode(&spec); err != nil {
				return nil, err
			}
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	return &spec, nil
}
