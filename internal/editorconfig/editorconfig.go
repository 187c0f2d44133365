package editorconfig

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// DefaultPath is the path to the editor config file, relative to the process working directory.
const DefaultPath = "config/editor.json"

// Environment overrides, typically set from .env.
const (
	EnvStorage = "SCENE_EDITOR_STORAGE"
	EnvLog     = "SCENE_EDITOR_LOG"
)

// Prefs holds editor preferences. Persisted across runs; the scene itself is saved separately.
type Prefs struct {
	GridVisible bool   `json:"grid_visible"`
	ShowStatus  bool   `json:"show_status"`
	HandleMode  string `json:"handle_mode"`
	StorageDir  string `json:"storage_dir"`
	LogPath     string `json:"log_path"`

	// Optional UI overrides; empty keeps the built-in stylesheet and raylib's default font.
	StylePath string `json:"style_path,omitempty"`
	FontPath  string `json:"font_path,omitempty"`
}

// Default returns default preferences (grid and status overlay on, translate handle).
func Default() Prefs {
	return Prefs{
		GridVisible: true,
		ShowStatus:  true,
		HandleMode:  "translate",
		StorageDir:  "data",
		LogPath:     "logs/editor.txt",
	}
}

// Load reads preferences from path. If the file is missing or invalid, returns Default() and
// does not create a file. Fields absent from the file keep their defaults.
func Load(path string) (Prefs, error) {
	p := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return p, nil
	}
	if err := json.Unmarshal(data, &p); err != nil {
		return Default(), nil
	}
	return p, nil
}

// ApplyEnv overrides the storage directory and log path from the environment.
func (p Prefs) ApplyEnv() Prefs {
	if v := os.Getenv(EnvStorage); v != "" {
		p.StorageDir = v
	}
	if v := os.Getenv(EnvLog); v != "" {
		p.LogPath = v
	}
	return p
}

// Save writes preferences to path, creating the config directory if needed.
func Save(path string, p Prefs) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(p, "", "\t")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
