package config

// Config is the top-level petalsite configuration, corresponding to .petalsite.yml.
type Config struct {
	ContentFile  string       `yaml:"content_file" koanf:"content_file"`
	OutputDir    string       `yaml:"output_dir" koanf:"output_dir"`
	AssetsDir    string       `yaml:"assets_dir" koanf:"assets_dir"`
	AssetInclude []string     `yaml:"asset_include" koanf:"asset_include"`
	LogLevel     string       `yaml:"log_level" koanf:"log_level"`
	Serve        ServeConfig  `yaml:"serve" koanf:"serve"`
	Scroll       ScrollConfig `yaml:"scroll" koanf:"scroll"`
	Watch        WatchConfig  `yaml:"watch" koanf:"watch"`
}

// ServeConfig controls the local preview server.
type ServeConfig struct {
	Port     int  `yaml:"port" koanf:"port"`
	AllowAll bool `yaml:"allow_all" koanf:"allow_all"`
	// Live makes served pages take their scroll state from the server's
	// driver sessions instead of computing it in the browser.
	Live bool `yaml:"live" koanf:"live"`
}

// ScrollConfig tunes the scroll-driven effects.
type ScrollConfig struct {
	FrameRate int     `yaml:"frame_rate" koanf:"frame_rate"`
	Travel    float64 `yaml:"travel" koanf:"travel"`
}

// WatchConfig controls rebuilds on content changes.
type WatchConfig struct {
	Enabled  bool   `yaml:"enabled" koanf:"enabled"`
	Debounce string `yaml:"debounce" koanf:"debounce"`
}
