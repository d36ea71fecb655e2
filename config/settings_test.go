package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	settings, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("missing file should not be an error: %v", err)
	}
	if settings != Default() {
		t.Fatalf("expected defaults, got %+v", settings)
	}
}

func TestLoadOverlaysOntoDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	payload := `{"window":{"width":1920,"height":1080},"control":{"enabled":false}}`
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatal(err)
	}

	settings, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if settings.Window.Width != 1920 || settings.Window.Height != 1080 {
		t.Errorf("window size not overridden: %+v", settings.Window)
	}
	if settings.Control.Enabled {
		t.Error("control.enabled override not applied")
	}
	// Fields absent from the file keep their defaults.
	if settings.Window.Title != "marcher" {
		t.Errorf("expected default title, got %q", settings.Window.Title)
	}
	if settings.Export.FPS != 30 {
		t.Errorf("expected default export fps, got %d", settings.Export.FPS)
	}
}

func TestLoadRejectsMalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(path, []byte(`{"window":`), 0o644); err != nil {
		t.Fatal(err)
	}

	settings, err := Load(path)
	if err == nil {
		t.Fatal("expected a parse error")
	}
	if settings != Default() {
		t.Error("failed load should fall back to defaults")
	}
}

func TestDefaultValues(t *testing.T) {
	settings := Default()

	if settings.Control.Port != 9910 {
		t.Errorf("unexpected default control port: %d", settings.Control.Port)
	}
	if settings.Audio.SampleRate != 48000 {
		t.Errorf("unexpected default sample rate: %d", settings.Audio.SampleRate)
	}
	if settings.Export.Motion != "orbit" {
		t.Errorf("unexpected default motion: %q", settings.Export.Motion)
	}
}
