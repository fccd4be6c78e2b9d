package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Kingly77/VentureTextAdventure/internal/cli"
	"github.com/Kingly77/VentureTextAdventure/internal/config"
	"github.com/Kingly77/VentureTextAdventure/internal/game/action"
	"github.com/Kingly77/VentureTextAdventure/internal/game/session"
	"github.com/Kingly77/VentureTextAdventure/internal/observability"
	"github.com/Kingly77/VentureTextAdventure/internal/server"
)

// NewPlayCmd creates the play subcommand.
func NewPlayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Start a game in the terminal",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPlay(cmd)
		},
	}
	addGameFlags(cmd.Flags())
	return cmd
}

func sessionOptions(cfg config.Config) session.Options {
	return session.Options{
		HeroName:               cfg.Game.HeroName,
		HeroLevel:              cfg.Game.HeroLevel,
		StartingGold:           cfg.Game.StartingGold,
		ScriptInstructionLimit: cfg.Game.ScriptInstructionLimit,
	}
}

func runPlay(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd.Flags())
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	s, err := session.Load(cfg.Game.WorldFiles, sessionOptions(cfg), logger)
	if err != nil {
		logger.Error("loading world", zap.Strings("files", cfg.Game.WorldFiles), zap.Error(err))
		return fmt.Errorf("loading world: %w", err)
	}
	defer s.Close()

	logger = observability.ForSession(logger, s.Hero.Name())
	logger.Info("session started", zap.Strings("files", cfg.Game.WorldFiles))

	term := cli.New(s, action.NewResolver(s.Bus, nil, logger), logger)
	term.In = cmd.InOrStdin()
	term.Out = cmd.OutOrStdout()
	term.Prompt = cfg.CLI.Prompt
	term.Plain = cfg.CLI.Plain

	lc := server.NewLifecycle(logger)
	lc.Add("terminal", term)
	return lc.Run(cmd.Context())
}
