package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/coreman2200/funtimes-arcanim/internal/scenes"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the built-in scenes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := scenes.Registry()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, name := range reg.List() {
			sc, _ := reg.Get(name)
			fmt.Fprintf(out, "%-10s %6.1fs  %s\n", name, sc.Duration(), sc.Describe())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
