package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/Kingly77/VentureTextAdventure/internal/config"
)

// Global flags available to all subcommands.
var configFile string

// NewRootCmd creates the root command. Without a subcommand it plays.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "venture",
		Short: "Venture - a room-based text adventure",
		Long: `Venture loads a world of rooms from YAML zone files and lets one hero
explore it from the terminal: move between rooms, pick up and use items,
talk to characters, and complete quests.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path")
	addGameFlags(cmd.Flags())
	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		return runPlay(cmd)
	}

	cmd.AddCommand(NewPlayCmd())
	cmd.AddCommand(NewValidateCmd())

	return cmd
}

func addGameFlags(fs *pflag.FlagSet) {
	fs.StringSlice("world", nil, "zone YAML files to load (overrides game.world_files)")
	fs.String("hero", "", "hero name (overrides game.hero_name)")
	fs.Bool("plain", false, "disable styled output")
}

// loadConfig reads the config file named by --config and applies any game
// flags the user set on fs.
func loadConfig(fs *pflag.FlagSet) (config.Config, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return config.Config{}, err
	}
	if fs == nil {
		return cfg, nil
	}
	if f := fs.Lookup("world"); f != nil && f.Changed {
		cfg.Game.WorldFiles, _ = fs.GetStringSlice("world")
	}
	if f := fs.Lookup("hero"); f != nil && f.Changed {
		cfg.Game.HeroName, _ = fs.GetString("hero")
	}
	if f := fs.Lookup("plain"); f != nil && f.Changed {
		cfg.CLI.Plain, _ = fs.GetBool("plain")
	}
	return cfg, cfg.Validate()
}
