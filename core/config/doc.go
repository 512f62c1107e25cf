// Package config loads typed configuration from environment variables.
//
// A .env file in the working directory is loaded once on first use (a
// missing file is ignored, existing variables win). Structs are parsed with
// caarlos0/env and cached per type, so repeated loads return the same
// values.
//
//	type Config struct {
//		AppName string        `env:"APP_NAME" envDefault:"dashboard"`
//		TTL     time.Duration `env:"SESSION_TTL" envDefault:"168h"`
//	}
//
//	var cfg Config
//	config.MustLoad(&cfg)
package config
