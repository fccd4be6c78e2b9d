// Package config provides Viper-based configuration loading for the game.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
	// Output is a zap sink: "stderr", "stdout", or a file path.
	Output string `mapstructure:"output"`
}

// GameConfig holds world and hero settings.
type GameConfig struct {
	// WorldFiles lists the zone YAML files to load; the first holds the start room.
	WorldFiles []string `mapstructure:"world_files"`
	// ScriptInstructionLimit bounds each Lua hook call for zones that set none. 0 = unlimited.
	ScriptInstructionLimit int `mapstructure:"script_instruction_limit"`
	// HeroName overrides the hero declared by the world.
	HeroName string `mapstructure:"hero_name"`
	// HeroLevel overrides the declared level when > 0.
	HeroLevel int `mapstructure:"hero_level"`
	// StartingGold overrides the declared gold when > 0.
	StartingGold int `mapstructure:"starting_gold"`
}

// CLIConfig holds terminal settings.
type CLIConfig struct {
	// Plain disables styled output.
	Plain bool `mapstructure:"plain"`
	// Prompt is printed before each command.
	Prompt string `mapstructure:"prompt"`
}

// Config is the top-level application configuration.
type Config struct {
	Logging LoggingConfig `mapstructure:"logging"`
	Game    GameConfig    `mapstructure:"game"`
	CLI     CLIConfig     `mapstructure:"cli"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateGame(c.Game); err != nil {
		errs = append(errs, err.Error())
	}
	if c.CLI.Prompt == "" {
		errs = append(errs, "cli.prompt must not be empty")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateGame(g GameConfig) error {
	var errs []string
	if len(g.WorldFiles) == 0 {
		errs = append(errs, "game.world_files must name at least one file")
	}
	for i, f := range g.WorldFiles {
		if strings.TrimSpace(f) == "" {
			errs = append(errs, fmt.Sprintf("game.world_files[%d] must not be empty", i))
		}
	}
	if g.ScriptInstructionLimit < 0 {
		errs = append(errs, fmt.Sprintf("game.script_instruction_limit must be >= 0, got %d", g.ScriptInstructionLimit))
	}
	if g.HeroLevel < 0 {
		errs = append(errs, fmt.Sprintf("game.hero_level must be >= 0, got %d", g.HeroLevel))
	}
	if g.StartingGold < 0 {
		errs = append(errs, fmt.Sprintf("game.starting_gold must be >= 0, got %d", g.StartingGold))
	}
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	if l.Output == "" {
		return errors.New("logging.output must not be empty")
	}
	return nil
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result. An empty path uses defaults and the
// environment only.
//
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()

	// Environment variable overrides with VENTURE_ prefix
	v.SetEnvPrefix("VENTURE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}

	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "warn")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.output", "stderr")

	v.SetDefault("game.world_files", []string{"content/zones/village.yaml", "content/zones/caves.yaml"})
	v.SetDefault("game.script_instruction_limit", 100000)
	v.SetDefault("game.hero_name", "")
	v.SetDefault("game.hero_level", 0)
	v.SetDefault("game.starting_gold", 0)

	v.SetDefault("cli.plain", false)
	v.SetDefault("cli.prompt", "> ")
}
