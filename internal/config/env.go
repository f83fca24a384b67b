package config

import "github.com/caarlos0/env/v11"

// Options are process-level settings read from the environment,
// separate from gameplay balance.
type Options struct {
	Addr       string `env:"AETHER_ADDR" envDefault:":8080"`
	ConfigPath string `env:"AETHER_CONFIG" envDefault:"aether_config.yml"`
	LogLevel   string `env:"AETHER_LOG_LEVEL" envDefault:"info"`
}

func OptionsFromEnv() (Options, error) {
	var o Options
	if err := env.Parse(&o); err != nil {
		return Options{}, err
	}
	return o, nil
}
