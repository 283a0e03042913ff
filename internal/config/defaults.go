package config

const (
	defaultConfigPath    = "~/.config/mediaprobe/config.toml"
	projectConfigName    = "mediaprobe.toml"
	defaultFFprobeBinary = "ffprobe"
	defaultLogFormat     = "console"
	defaultLogLevel      = "info"
	defaultCatalogPath   = "~/.local/share/mediaprobe/catalog.db"
	defaultScanWorkers   = 4
	maxScanWorkers       = 64

	// FFprobeEnv overrides [ffprobe] binary when the file leaves it unset.
	FFprobeEnv = "FFPROBE_PATH"
)

var defaultScanExtensions = []string{
	"jpg", "jpeg", "png", "gif", "webp", "bmp", "tif", "tiff",
	"mp3", "flac", "ogg", "opus", "m4a", "aac", "wav",
	"mp4", "m4v", "mkv", "webm", "mov", "avi", "ts",
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		FFprobe: FFprobe{
			Binary: defaultFFprobeBinary,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		Catalog: Catalog{
			Path: defaultCatalogPath,
		},
		Scan: Scan{
			Workers:    defaultScanWorkers,
			Extensions: append([]string(nil), defaultScanExtensions...),
		},
	}
}
