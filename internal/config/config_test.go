package config

import (
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.ContentFile != "content.yml" {
		t.Errorf("expected default content_file %q, got %q", "content.yml", cfg.ContentFile)
	}
	if cfg.OutputDir != "public" {
		t.Errorf("expected default output_dir %q, got %q", "public", cfg.OutputDir)
	}
	if cfg.Serve.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Serve.Port)
	}
	if cfg.Scroll.FrameRate != 60 {
		t.Errorf("expected default frame_rate 60, got %d", cfg.Scroll.FrameRate)
	}
	if cfg.Scroll.Travel != 24 {
		t.Errorf("expected default travel 24, got %v", cfg.Scroll.Travel)
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.petalsite.yml")

	original := DefaultConfig()
	original.OutputDir = "dist"
	original.AssetInclude = []string{"**/*.png", "**/*.mp3"}
	original.Serve.Port = 9090
	original.Serve.Live = false
	original.Scroll.Travel = 40
	original.Watch.Enabled = true

	// Save.
	if err := original.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// Load back.
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.OutputDir != original.OutputDir {
		t.Errorf("output_dir: got %q, want %q", loaded.OutputDir, original.OutputDir)
	}
	if loaded.Serve.Port != 9090 {
		t.Errorf("serve.port: got %d, want 9090", loaded.Serve.Port)
	}
	if loaded.Serve.Live {
		t.Error("serve.live: got true, want false")
	}
	if loaded.Scroll.Travel != 40 {
		t.Errorf("scroll.travel: got %v, want 40", loaded.Scroll.Travel)
	}
	if !loaded.Watch.Enabled {
		t.Error("watch.enabled: got false, want true")
	}
	if len(loaded.AssetInclude) != len(original.AssetInclude) {
		t.Fatalf("asset_include length: got %d, want %d", len(loaded.AssetInclude), len(original.AssetInclude))
	}
	for i, v := range loaded.AssetInclude {
		if v != original.AssetInclude[i] {
			t.Errorf("asset_include[%d]: got %q, want %q", i, v, original.AssetInclude[i])
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nonexistent.yml")

	// Loading a missing file should return defaults, not an error.
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load should not fail for missing file: %v", err)
	}
	if cfg.OutputDir != "public" {
		t.Errorf("expected default output_dir, got %q", cfg.OutputDir)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yml")

	cfg := DefaultConfig()
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	t.Setenv("PETALSITE_OUTPUT_DIR", "site")
	t.Setenv("PETALSITE_SERVE__PORT", "7000")

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.OutputDir != "site" {
		t.Errorf("env override failed: got %q, want %q", loaded.OutputDir, "site")
	}
	if loaded.Serve.Port != 7000 {
		t.Errorf("nested env override failed: got %d, want 7000", loaded.Serve.Port)
	}
}

func TestValidateValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig should be valid, got: %v", err)
	}
}

func TestValidateEmptyContentFile(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ContentFile = ""
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for empty content_file")
	}
}

func TestValidateEmptyOutputDir(t *testing.T) {
	cfg := DefaultConfig()
	cfg.OutputDir = ""
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for empty output_dir")
	}
}

func TestValidateInvalidLogLevel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LogLevel = "chatty"
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for invalid log_level")
	}
}

func TestValidateFrameRate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Scroll.FrameRate = 0
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for zero frame_rate")
	}
	cfg.Scroll.FrameRate = 1000
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for excessive frame_rate")
	}
}

func TestValidateNegativeTravel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Scroll.Travel = -1
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for negative travel")
	}
}

func TestValidatePort(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Serve.Port = 70000
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for port out of range")
	}
}

func TestDebounceDelay(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
	}{
		{"", 300 * time.Millisecond},
		{"1s", time.Second},
		{"garbage", 300 * time.Millisecond},
		{"-5ms", 300 * time.Millisecond},
	}
	for _, tt := range tests {
		got := WatchConfig{Debounce: tt.in}.DebounceDelay()
		if got != tt.want {
			t.Errorf("DebounceDelay(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSplitAndTrim(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"a,b,c", []string{"a", "b", "c"}},
		{" a , b , c ", []string{"a", "b", "c"}},
		{"**/*.png", []string{"**/*.png"}},
		{"", nil},
		{"  ,  , ", nil},
	}
	for _, tt := range tests {
		got := splitAndTrim(tt.input)
		if len(got) != len(tt.want) {
			t.Errorf("splitAndTrim(%q) len = %d, want %d", tt.input, len(got), len(tt.want))
			continue
		}
		for i, v := range got {
			if v != tt.want[i] {
				t.Errorf("splitAndTrim(%q)[%d] = %q, want %q", tt.input, i, v, tt.want[i])
			}
		}
	}
}

