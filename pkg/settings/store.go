package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultDir and DefaultFile locate the settings file under the user's home.
const (
	DefaultDir  = ".aitools"
	DefaultFile = "settings.yaml"
)

// DefaultPath returns ~/.aitools/settings.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("settings: resolve home dir: %w", err)
	}
	return filepath.Join(home, DefaultDir, DefaultFile), nil
}

// FileStore reads and writes Settings at Path. Paths ending in ".json" use
// JSON; everything else uses YAML.
type FileStore struct {
	Path   string
	Logger *slog.Logger // nil discards
}

func (s FileStore) json() bool {
	return strings.EqualFold(filepath.Ext(s.Path), ".json")
}

func (s FileStore) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return s.Logger
}

// Load returns the stored settings. A missing, unreadable or corrupt file
// yields empty settings; the latter two are logged as warnings.
func (s FileStore) Load() Settings {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.logger().Warn("settings unreadable, using defaults", "path", s.Path, "error", err)
		}
		return Settings{}
	}

	out, err := s.decode(data)
	if err != nil {
		s.logger().Warn("settings corrupt, using defaults", "path", s.Path, "error", err)
		return Settings{}
	}

	return out
}

func (s FileStore) decode(data []byte) (Settings, error) {
	out := Settings{}

	var err error
	if s.json() {
		err = json.Unmarshal(data, &out)
	} else {
		err = yaml.Unmarshal(data, &out)
	}
	if err != nil {
		return nil, err
	}

	if out == nil {
		out = Settings{}
	}
	return out, nil
}

// Encode returns settings in the store's file format.
func (s FileStore) Encode(st Settings) ([]byte, error) {
	if st == nil {
		st = Settings{}
	}

	if s.json() {
		data, err := json.MarshalIndent(st, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("settings: marshal json: %w", err)
		}
		return append(data, '\n'), nil
	}

	data, err := yaml.Marshal(map[string]string(st))
	if err != nil {
		return nil, fmt.Errorf("settings: marshal yaml: %w", err)
	}
	return data, nil
}

// Save writes st to Path, creating the parent directory. The file is
// readable only by its owner since it holds API keys.
func (s FileStore) Save(st Settings) error {
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o700); err != nil {
		return fmt.Errorf("settings: create parent dir: %w", err)
	}

	data, err := s.Encode(st)
	if err != nil {
		return err
	}

	if err := os.WriteFile(s.Path, data, 0o600); err != nil {
		return fmt.Errorf("settings: write: %w", err)
	}

	// WriteFile keeps the mode of an existing file.
	if err := os.Chmod(s.Path, 0o600); err != nil {
		return fmt.Errorf("settings: chmod: %w", err)
	}

	return nil
}
