package inch

import (
	"github.com/kelseyhightower/envconfig"
)

// Config holds defaults for the ambient command-line flags. Each
// field can be set in the environment with an INCH_ prefix, e.g.
// INCH_LOGLEVEL=debug. Flags override the environment.
type Config struct {
	LogLevel string `envconfig:"LOGLEVEL" default:"info"`
	Color    string `envconfig:"COLOR" default:"auto"`
	Encoding string `envconfig:"ENCODING" default:"default"`
}

func loadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("inch", &cfg)
	return cfg, err
}
