package main

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"periph.io/x/conn/v3/physic"

	"github.com/coreman2200/funtimes-arcanim/internal/scene"
	"github.com/coreman2200/funtimes-arcanim/internal/scenes/timeline"
	"github.com/coreman2200/funtimes-arcanim/internal/sequence"
	"github.com/coreman2200/funtimes-arcanim/internal/sink"
)

var timelineCmd = &cobra.Command{
	Use:   "timeline <program.json|program.yaml>",
	Short: "Simulate a clip program headless and print its values",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		prog, err := sequence.LoadProgram(args[0])
		if err != nil {
			return err
		}
		sc := timeline.WithProgram(prog)
		opts, err := options(cmd, sc.Name())
		if err != nil {
			return err
		}

		var out scene.Sink
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			out = sink.NewJSONLines(cmd.OutOrStdout())
		} else {
			out = &sink.Summary{Out: cmd.OutOrStdout(), Every: int(opts.Rate / physic.Hertz)}
		}
		s, err := scene.NewRunner(log.Logger, out).Render(cmd.Context(), sc, opts)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Done at t=%.3fs after %d frames\n", s.Elapsed, s.Frames)
		return nil
	},
}

func init() {
	addRunFlags(timelineCmd)
	timelineCmd.Flags().Bool("json", false, "dump every frame as a JSON line")
	rootCmd.AddCommand(timelineCmd)
}
