package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/coreman2200/funtimes-arcanim/internal/config"
	"github.com/coreman2200/funtimes-arcanim/internal/scenes"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage config.yaml",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config.yaml holding the defaults of every scene",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")
		if _, err := os.Stat(configPath); err == nil && !force {
			return fmt.Errorf("%s exists; use --force to overwrite", configPath)
		} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		c := config.Default()
		defaults, err := scenes.Defaults()
		if err != nil {
			return err
		}
		c.Scenes = defaults
		if err := config.Save(configPath, c); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", configPath)
		return nil
	},
}

func init() {
	configInitCmd.Flags().Bool("force", false, "overwrite an existing file")
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}
