// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Damasc Contributors

package shell

import (
	"os"
	"path/filepath"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/laszlokorte/damasc/internal/bag"
	"github.com/laszlokorte/damasc/internal/errs"
)

// Config is the optional shell rc file, per SPEC_FULL.md's Configuration
// section: a default bag/dir, a default query result limit, display
// colorization, and a metrics listen address. Every field has a usable
// zero value, so a missing or absent config file is never an error.
type Config struct {
	DefaultBag  string `koanf:"default_bag"`
	BagDir      string `koanf:"bag_dir"`
	QueryLimit  int    `koanf:"query_limit"`
	Colorize    bool   `koanf:"colorize"`
	MetricsAddr string `koanf:"metrics_addr"`
}

// DefaultConfig returns the configuration a shell starts with before any
// file or flag is applied.
func DefaultConfig() Config {
	return Config{
		DefaultBag: bag.DefaultBagName,
		BagDir:     ".",
	}
}

// LoadConfig reads a YAML config file with github.com/knadh/koanf, the
// same provider/parser pair the teacher's core config layer uses. path
// empty means "use ~/.damasc/config.yaml if it exists"; a missing file at
// either location is not an error, since the whole file is optional.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return cfg, nil
		}
		path = filepath.Join(home, ".damasc", "config.yaml")
	}

	if _, err := os.Stat(path); err != nil {
		return cfg, nil
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return cfg, errs.BagError("config: " + err.Error())
	}
	if err := k.Unmarshal("", &cfg); err != nil {
		return cfg, errs.BagError("config: " + err.Error())
	}
	return cfg, nil
}
