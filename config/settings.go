// Package config loads application settings from a JSON file, falling back
// to defaults when the file is absent.
package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// Settings holds all configurable application state.
type Settings struct {
	Window  WindowSettings  `json:"window"`
	Export  ExportSettings  `json:"export"`
	Control ControlSettings `json:"control"`
	Audio   AudioSettings   `json:"audio"`
}

// WindowSettings configures the application window.
type WindowSettings struct {
	Title  string `json:"title"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// ExportSettings configures still and video export.
type ExportSettings struct {
	OutputDir   string `json:"outputDir"`
	FPS         int    `json:"fps"`
	BitrateKbps int    `json:"bitrateKbps"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	DurationSec int    `json:"durationSec"`
	Motion      string `json:"motion"`
}

// ControlSettings configures the WebSocket control server.
type ControlSettings struct {
	Enabled bool `json:"enabled"`
	Port    int  `json:"port"`
}

// AudioSettings configures microphone capture.
type AudioSettings struct {
	Enabled    bool `json:"enabled"`
	SampleRate int  `json:"sampleRate"`
}

// Default returns the settings used when no settings file exists.
//
// Returns:
//   - Settings: the default settings
func Default() Settings {
	return Settings{
		Window: WindowSettings{
			Title:  "marcher",
			Width:  1280,
			Height: 720,
		},
		Export: ExportSettings{
			OutputDir:   ".",
			FPS:         30,
			BitrateKbps: 8000,
			Width:       1920,
			Height:      1080,
			DurationSec: 5,
			Motion:      "orbit",
		},
		Control: ControlSettings{
			Enabled: true,
			Port:    9910,
		},
		Audio: AudioSettings{
			Enabled:    true,
			SampleRate: 48000,
		},
	}
}

// Load reads settings from the given path, overlaying them onto the
// defaults. A missing file is not an error; the defaults are returned.
//
// Parameters:
//   - path: path to the settings JSON file
//
// Returns:
//   - Settings: the loaded settings
//   - error: error if the file exists but cannot be read or parsed
func Load(path string) (Settings, error) {
	settings := Default()

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return settings, nil
		}
		return settings, fmt.Errorf("opening settings file: %w", err)
	}
	defer file.Close()

	decoder := json.NewDecoder(file)
	if err := decoder.Decode(&settings); err != nil {
		return Default(), fmt.Errorf("parsing %s: %w", path, err)
	}

	return settings, nil
}
