package config

const (
	defaultProfile   = "epson"
	defaultDevice    = "/dev/usb/lp0"
	defaultFallback  = "?"
	defaultSpoolPath = "~/.local/share/platen/spool.db"
	defaultLogLevel  = "info"
	defaultLogFormat = "console"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Printer: Printer{
			Profile: defaultProfile,
			Device:  defaultDevice,
		},
		Encoding: Encoding{
			Fallback: defaultFallback,
		},
		Spool: Spool{
			Path: defaultSpoolPath,
		},
		Logging: Logging{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
	}
}
