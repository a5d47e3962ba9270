package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/coreman2200/funtimes-arcanim/internal/metrics"
	"github.com/coreman2200/funtimes-arcanim/internal/scene"
	"github.com/coreman2200/funtimes-arcanim/internal/ws"
)

var serveCmd = &cobra.Command{
	Use:   "serve <scene>",
	Short: "Run a scene in real time and stream its frames",
	Long: `Ticks the scene on a wall-clock ticker and streams frames on /ws,
diagnostics on /diag and metrics on /metrics. Pause, resume and stop arrive
on /control. The server keeps running after the scene ends until interrupted.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sc, err := lookup(args[0])
		if err != nil {
			return err
		}
		opts, err := options(cmd, sc.Name())
		if err != nil {
			return err
		}
		addr := cfg.Server.Addr
		if cmd.Flags().Changed("addr") || addr == "" {
			addr, _ = cmd.Flags().GetString("addr")
		}

		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector())
		m, err := metrics.New(reg, sc.Name())
		if err != nil {
			return err
		}
		opts.Observer = m

		hub := ws.NewHub(sc.Name(), reg)
		srv := &http.Server{
			Addr:         addr,
			Handler:      hub.Router(),
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		serverErrors := make(chan error, 1)
		go func() {
			log.Info().Str("addr", addr).Str("scene", sc.Name()).Msg("HTTP server starting")
			serverErrors <- srv.ListenAndServe()
		}()

		go func() {
			s, err := scene.NewRunner(log.Logger, hub).Live(ctx, sc, opts, hub.Control())
			if err != nil {
				log.Error().Err(err).Str("scene", sc.Name()).Msg("scene failed")
				hub.Fault(err)
				return
			}
			log.Info().Str("scene", s.Scene).Uint64("frames", s.Frames).Float64("elapsed", s.Elapsed).Msg("scene finished")
		}()

		select {
		case err := <-serverErrors:
			if !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		case <-ctx.Done():
		}

		log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Warn().Err(err).Msg("graceful shutdown did not complete")
			return srv.Close()
		}
		return nil
	},
}

func init() {
	addRunFlags(serveCmd)
	serveCmd.Flags().String("addr", ":8080", "HTTP listen address (overrides server.addr)")
	rootCmd.AddCommand(serveCmd)
}
