package config

import "time"

// DefaultAssetInclude are glob patterns, relative to the assets dir, copied
// into the generated site.
var DefaultAssetInclude = []string{
	"**/*.{svg,ico,png,jpg,jpeg,webp,gif}",
	"**/*.{mp3,ogg,wav,m4a,webm,mp4}",
	"**/*.pdf",
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		ContentFile:  "content.yml",
		OutputDir:    "public",
		AssetsDir:    "assets",
		AssetInclude: DefaultAssetInclude,
		LogLevel:     "info",
		Serve: ServeConfig{
			Port: 8080,
			Live: true,
		},
		Scroll: ScrollConfig{
			FrameRate: 60,
			Travel:    24,
		},
		Watch: WatchConfig{
			Enabled:  false,
			Debounce: "300ms",
		},
	}
}

// DebounceDelay returns the watch debounce as a duration, falling back to
// 300ms when unset or malformed.
func (w WatchConfig) DebounceDelay() time.Duration {
	if w.Debounce == "" {
		return 300 * time.Millisecond
	}
	d, err := time.ParseDuration(w.Debounce)
	if err != nil || d <= 0 {
		return 300 * time.Millisecond
	}
	return d
}
