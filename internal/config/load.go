package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat indicates a config file extension with no decoder.
var ErrUnsupportedFormat = errors.New("unsupported config format")

// ParseError is a config file that could not be decoded.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Options controls Load.
type Options struct {
	// Path is the config file. A missing file is not an error.
	Path string

	// LookupEnv reads environment variables; os.LookupEnv when nil.
	LookupEnv func(string) (string, bool)
}

// Load resolves the settings layers and validates the result.
func Load(opts Options) (Settings, error) {
	s := Defaults()

	if opts.Path != "" {
		if err := loadFile(opts.Path, &s); err != nil {
			return Settings{}, err
		}
	}

	lookup := opts.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}

	// The legacy file may itself be named by the environment.
	if v, ok := lookup("REDLINE_LEGACY_FILE"); ok {
		s.LegacyFile = v
	}
	if s.LegacyFile != "" {
		if err := importLegacyFile(s.LegacyFile, &s); err != nil {
			return Settings{}, err
		}
	}

	if err := applyEnv(lookup, &s); err != nil {
		return Settings{}, err
	}

	if err := s.Validate(); err != nil {
		return Settings{}, fmt.Errorf("invalid config: %w", err)
	}
	return s, nil
}

// loadFile decodes path over s. Fields absent from the file keep their
// current value.
func loadFile(path string, s *Settings) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config file %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, s)
	case ".toml":
		err = toml.Unmarshal(data, s)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	if err != nil {
		return &ParseError{Path: path, Err: err}
	}
	return nil
}

// Marshal encodes s in the format implied by path's extension.
func Marshal(path string, s Settings) ([]byte, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Marshal(s)
	case ".toml":
		return toml.Marshal(s)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}
