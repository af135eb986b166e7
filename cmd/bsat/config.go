package main

import (
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/go-bsat/bsat/internal/sat"
)

// fileConfig is the shape of an optional --config YAML/JSON file, layered
// underneath the CLI flags: a flag explicitly set on the command line
// always wins over a config-file value.
type fileConfig struct {
	ClauseDecay    float64 `mapstructure:"clause-decay"`
	VariableDecay  float64 `mapstructure:"variable-decay"`
	RestartFirst   int64   `mapstructure:"restart-first"`
	RestartInc     float64 `mapstructure:"restart-inc"`
	GlucoseRestart *bool   `mapstructure:"glucose-restart"`
	BCE            *bool   `mapstructure:"bce"`
	VarElim        *bool   `mapstructure:"var-elim"`
	MaxConflicts   int64   `mapstructure:"max-conflicts"`
	Timeout        string  `mapstructure:"timeout"`
}

// loadFileConfig reads path (YAML, JSON, or TOML, inferred from its
// extension) into a fileConfig.
func loadFileConfig(path string) (*fileConfig, error) {
	vp := viper.New()
	vp.SetConfigFile(filepath.Base(path))
	vp.AddConfigPath(filepath.Dir(path))
	if err := vp.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "reading config %q", path)
	}

	cfg := &fileConfig{}
	if err := vp.Unmarshal(cfg); err != nil {
		return nil, errors.Wrapf(err, "unmarshalling config %q", path)
	}
	return cfg, nil
}

// applyFileConfig overlays cfg's set fields onto opts for every flag the
// caller did not explicitly pass on the command line.
func applyFileConfig(opts *sat.Options, cfg *fileConfig, explicit map[string]bool) error {
	if cfg.ClauseDecay != 0 && !explicit["clause-decay"] {
		opts.ClauseDecay = cfg.ClauseDecay
	}
	if cfg.VariableDecay != 0 && !explicit["variable-decay"] {
		opts.VariableDecay = cfg.VariableDecay
	}
	if cfg.RestartFirst != 0 && !explicit["restart-first"] {
		opts.RestartFirst = cfg.RestartFirst
	}
	if cfg.RestartInc != 0 && !explicit["restart-inc"] {
		opts.RestartInc = cfg.RestartInc
	}
	if cfg.GlucoseRestart != nil && !explicit["glucose-restart"] {
		opts.GlucoseRestart = *cfg.GlucoseRestart
	}
	if cfg.BCE != nil && !explicit["bce"] {
		opts.BCE = *cfg.BCE
	}
	if cfg.VarElim != nil && !explicit["var-elim"] {
		opts.VarElim = *cfg.VarElim
	}
	if cfg.MaxConflicts != 0 && !explicit["max-conflicts"] {
		opts.MaxConflicts = cfg.MaxConflicts
	}
	if cfg.Timeout != "" && !explicit["timeout"] {
		d, err := time.ParseDuration(cfg.Timeout)
		if err != nil {
			return errors.Wrapf(err, "parsing config timeout %q", cfg.Timeout)
		}
		opts.Timeout = d
	}
	return nil
}
