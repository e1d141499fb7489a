// Package config loads the optional ednjit.toml project file, the way
// the teacher's mods package loads a module manifest: a typed struct
// with toml tags, defaults applied when the file or a field is absent.
package config

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml"
)

// OptLevel names one of the four LLVM codegen optimization levels a
// project file may request for the JIT engine.
type OptLevel string

const (
	OptNone       OptLevel = "none"
	OptLess       OptLevel = "less"
	OptDefault    OptLevel = "default"
	OptAggressive OptLevel = "aggressive"
)

// EngineConfig is the `[engine]` table of ednjit.toml.
type EngineConfig struct {
	DumpIR   bool     `toml:"dump_ir"`
	OptLevel OptLevel `toml:"opt_level"`
}

// Config is the full ednjit.toml document.
type Config struct {
	Engine EngineConfig `toml:"engine"`
}

// Default matches the always-on IR dump of the reference engine: dump
// the module before executing it, and request no optimization.
func Default() Config {
	return Config{Engine: EngineConfig{DumpIR: true, OptLevel: OptNone}}
}

// Load reads ednjit.toml from dir. A missing file yields Default()
// without error; a file that exists but cannot be read, or is
// malformed, is an error.
func Load(dir string) (Config, error) {
	cfg := Default()

	path := filepath.Join(dir, "ednjit.toml")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return Config{}, err
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}

	if cfg.Engine.OptLevel == "" {
		cfg.Engine.OptLevel = OptNone
	}

	return cfg, nil
}
