package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/coreman2200/funtimes-arcanim/internal/config"
	"github.com/coreman2200/funtimes-arcanim/internal/scene"
	"github.com/coreman2200/funtimes-arcanim/internal/scenes"
)

var (
	configPath string
	logLevel   string

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "arcanim",
	Short: "arcanim drives tracked-value animation scenes",
	Long: `arcanim ticks a frame clock over tracked values and geometry bindings.
Scenes can be rendered headless to a frame dump or served live over websockets.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zerolog.TimeFieldFormat = time.RFC3339
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

		c, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("load %s: %w", configPath, err)
		}
		cfg = c

		// flag overrides config
		level := cfg.LogLevel
		if cmd.Flags().Changed("log-level") {
			level = logLevel
		}
		return setLevel(level)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.yaml", "path to config.yaml")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug | info | warn | error")
}

func setLevel(s string) error {
	if strings.TrimSpace(s) == "" {
		s = "info"
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(s))
	if err != nil {
		return fmt.Errorf("log level %q: %w", s, err)
	}
	zerolog.SetGlobalLevel(lvl)
	return nil
}

// lookup resolves a scene name against the built-in registry.
func lookup(name string) (scene.Scene, error) {
	reg, err := scenes.Registry()
	if err != nil {
		return nil, err
	}
	sc, ok := reg.Get(name)
	if !ok {
		return nil, fmt.Errorf("unknown scene %q (have %s)", name, strings.Join(reg.List(), ", "))
	}
	return sc, nil
}
