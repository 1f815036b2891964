// Command server is the process entrypoint: it parses boot
// configuration, constructs the World, Command Intake, Broadcast Bus,
// and Simulation Task, wires the HTTP/SSE Edge in front of them, and
// serves until a shutdown signal arrives.
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"platformer-server/internal/broadcast"
	"platformer-server/internal/config"
	"platformer-server/internal/httpapi"
	"platformer-server/internal/intake"
	"platformer-server/internal/logging"
	"platformer-server/internal/sim"
	"platformer-server/internal/world"
)

func main() {
	var (
		addr       = flag.String("addr", envOr("ADDR", ":8080"), "HTTP listen address")
		configPath = flag.String("config", envOr("CONFIG_PATH", "config/level.yaml"), "path to level/physics YAML config")
		logFormat  = flag.String("log-format", envOr("LOG_FORMAT", ""), "log output format: \"json\" or console")
		idleTicks  = flag.Uint64("idle-eviction-ticks", 0, "evict a player idle for more than this many ticks (0 disables eviction)")
	)
	flag.Parse()

	log := logging.New(*logFormat)

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", *configPath).Msg("failed to load config")
	}

	w := world.NewWorld(cfg.Geometry())
	intakeQueue := intake.NewQueue(intake.DefaultCapacity)
	stateBus := broadcast.New[sim.StateFrame]()
	chatBus := broadcast.New[sim.ChatFrame]()

	task := sim.New(w, intakeQueue, stateBus, chatBus, sim.Config{
		DeltaTime:         cfg.DeltaTime(),
		TickRate:          cfg.TickRate(),
		Physics:           cfg.PhysicsEngineConfig(),
		IdleEvictionTicks: *idleTicks,
	}, log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go task.Run(ctx)
	log.Info().
		Int("tick_hz", cfg.Tuning.TickHz).
		Uint64("idle_eviction_ticks", *idleTicks).
		Msg("simulation task started")

	api := httpapi.New(w, intakeQueue, stateBus, chatBus, cfg, log)
	httpServer := &http.Server{
		Addr:    *addr,
		Handler: api.Router([]string{"*"}),
	}

	shutdownDone := make(chan struct{})
	go func() {
		defer close(shutdownDone)
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("http server shutdown did not complete cleanly")
		}
	}()

	log.Info().Str("addr", *addr).Msg("http server starting")
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("http server failed")
	}
	<-shutdownDone
	log.Info().Msg("server stopped")
}

// loadConfig reads the YAML config at path, falling back to the
// built-in default level when the file does not exist — convenient for
// local development without requiring a config/level.yaml on disk.
func loadConfig(path string) (*config.Config, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return config.Default(), nil
	}
	return config.Load(path)
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}
