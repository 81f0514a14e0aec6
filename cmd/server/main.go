package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	router "github.com/dkeye/WatchParty/internal/adapters/http"
	"github.com/dkeye/WatchParty/internal/adapters/rtc"
	"github.com/dkeye/WatchParty/internal/app"
	"github.com/dkeye/WatchParty/internal/app/orch"
	"github.com/dkeye/WatchParty/internal/config"
	"github.com/dkeye/WatchParty/internal/protocol"
)

// Version of the build injected at build time.
var buildString = "unknown"

func setupLogger(cfg config.LogConfig) {
	if cfg.Format != "json" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	} else {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
}

func main() {
	flags := config.Flags("watchparty")
	if err := flags.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			os.Exit(0)
		}
		os.Exit(2)
	}
	if ok, _ := flags.GetBool("version"); ok {
		fmt.Println(buildString)
		os.Exit(0)
	}

	// Initialize zerolog global logger early so config.Load can use it.
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	setupLogger(config.LogConfig{Level: "info"})

	cfg, err := config.Load(flags)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	setupLogger(cfg.Log)

	iceServers, err := rtc.ICEServers(cfg.ICE.Servers)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid ice servers")
	}
	policy, err := app.PolicyFromString(cfg.Signal.SlowPolicy)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid slow policy")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	rooms := app.NewRoomManager(time.Now)
	reg := app.NewRegistry()
	dir := app.NewDirectory(rooms, cfg.Rooms.MaxIDLength, time.Now)

	o := &orch.Orchestrator{
		Registry: reg,
		Rooms:    dir,
		Playback: app.NewPlaybackStore(rooms, cfg.Rooms.MaxIDLength, time.Now),
		Relay:    &app.Relay{Registry: reg, Directory: dir, SameRoomOnly: cfg.Signal.SameRoomOnly},
		Policy:   policy,
		Encoder:  protocol.Codec{},
	}
	janitor := &app.Janitor{
		Rooms:    rooms,
		TTL:      cfg.Rooms.IdleTTL,
		Interval: cfg.Rooms.SweepInterval,
	}

	r := router.SetupRouter(ctx, cfg, o, iceServers)
	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", addr).Str("version", buildString).Msg("signaling server started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		return janitor.Run(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("Shutting down")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer shutdownCancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("server error")
		os.Exit(1)
	}
	log.Info().Msg("Server exited gracefully")
}
