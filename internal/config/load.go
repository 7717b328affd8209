package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// EnvConfigPath names the environment variable pointing at a tuning file.
const EnvConfigPath = "INVADERS_CONFIG"

// Load decodes a TOML tuning file over Default and validates the result.
// Keys the file sets but Game does not know are rejected.
func Load(path string) (Game, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Game{}, fmt.Errorf("decode %s: %w", path, err)
	}
	if err := checkUndecoded(md); err != nil {
		return Game{}, fmt.Errorf("decode %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Game{}, err
	}
	return cfg, nil
}

// Parse is Load for an in-memory document.
func Parse(doc string) (Game, error) {
	cfg := Default()
	md, err := toml.Decode(doc, &cfg)
	if err != nil {
		return Game{}, fmt.Errorf("decode: %w", err)
	}
	if err := checkUndecoded(md); err != nil {
		return Game{}, fmt.Errorf("decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Game{}, err
	}
	return cfg, nil
}

// FromEnv loads the file named by INVADERS_CONFIG, or returns Default when unset.
func FromEnv() (Game, error) {
	path := GetEnv(EnvConfigPath, "")
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

func checkUndecoded(md toml.MetaData) error {
	undecoded := md.Undecoded()
	if len(undecoded) == 0 {
		return nil
	}
	keys := make([]string, len(undecoded))
	for i, k := range undecoded {
		keys[i] = k.String()
	}
	return fmt.Errorf("%w: unknown keys %s", ErrInvalid, strings.Join(keys, ", "))
}
