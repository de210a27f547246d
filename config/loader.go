package config

import (
	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

// EnvPrefix namespaces every environment override, e.g. PRICER_TARGET_SIZE.
const EnvPrefix = "PRICER_"

// Load merges, in increasing precedence: the built-in defaults, the TOML file
// at path (skipped when path is empty), and PRICER_* environment variables,
// including any set by a .env file in the working directory. The returned
// Config has NOT been validated.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return nil, errors.Wrapf(err, "decode %s", path)
		}
	}

	// Load .env file if present (silently ignore if missing).
	_ = godotenv.Load()

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, errors.Wrap(err, "environment overrides")
	}
	return &cfg, nil
}
