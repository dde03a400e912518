package config

import (
	"errors"
	"io/fs"
	"log/slog"

	"github.com/davecgh/go-spew/spew"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// LoadDotEnv reads KEY=value pairs from the given files (.env by default)
// into the environment. Variables that are already set are left alone and
// missing files are ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}

	for _, f := range files {
		err := godotenv.Load(f)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}

		if err == nil {
			slog.Debug("loaded environment file", slog.String("path", f))
		}
	}

	return nil
}

// YAML renders the effective configuration as it would appear in the config
// file.
func (c *Config) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}

// Dump returns a verbose representation of the config for debug logs.
func (c *Config) Dump() string {
	cfg := spew.ConfigState{
		Indent:                  "  ",
		DisablePointerAddresses: true,
		DisableCapacities:       true,
		SortKeys:                true,
	}

	return cfg.Sdump(c)
}
