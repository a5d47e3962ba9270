package main

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"periph.io/x/conn/v3/physic"

	"github.com/coreman2200/funtimes-arcanim/internal/scene"
	"github.com/coreman2200/funtimes-arcanim/internal/sink"
)

var runCmd = &cobra.Command{
	Use:   "run <scene>",
	Short: "Render a scene headless at a fixed frame period",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sc, err := lookup(args[0])
		if err != nil {
			return err
		}
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

		_, err = scene.NewRunner(log.Logger, out).Render(cmd.Context(), sc, opts)
		return err
	},
}

// options merges config values with the flags set on cmd.
func options(cmd *cobra.Command, name string) (scene.Options, error) {
	rate, err := cfg.Rate()
	if err != nil {
		return scene.Options{}, err
	}
	if cmd.Flags().Changed("fps") {
		fps, _ := cmd.Flags().GetInt("fps")
		rate = physic.Frequency(fps) * physic.Hertz
	}
	timing, err := cfg.TimingMode()
	if err != nil {
		return scene.Options{}, err
	}
	duration, _ := cmd.Flags().GetFloat64("duration")
	return scene.Options{
		Rate:     rate,
		Timing:   timing,
		Duration: duration,
		Params:   cfg.Params(name),
	}, nil
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().Int("fps", 60, "frames per second (overrides frame_rate)")
	cmd.Flags().Float64("duration", 0, "seconds to run; 0 uses the scene's own duration")
}

func init() {
	addRunFlags(runCmd)
	runCmd.Flags().Bool("json", false, "dump every frame as a JSON line")
	rootCmd.AddCommand(runCmd)
}
