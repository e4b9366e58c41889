package config

const (
	defaultLanguage       = "english"
	defaultEncoding       = "utf8"
	defaultOutputDir      = "~/.local/share/linguistica/output"
	defaultLogDir         = "~/.local/share/linguistica/logs"
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
	defaultConfigLocation = "~/.config/linguistica/config.toml"
	projectConfigName     = "linguistica.toml"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Corpus: Corpus{
			Language: defaultLanguage,
			Encoding: defaultEncoding,
		},
		Paths: Paths{
			OutputDir: defaultOutputDir,
			LogDir:    defaultLogDir,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
