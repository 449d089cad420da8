package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cbodonnell/ghist/pkg/config"
	"github.com/cbodonnell/ghist/pkg/game"
	"github.com/cbodonnell/ghist/pkg/log"
	"github.com/cbodonnell/ghist/pkg/messages"
	"github.com/cbodonnell/ghist/pkg/metrics"
	"github.com/cbodonnell/ghist/pkg/network"
	"github.com/cbodonnell/ghist/pkg/sessions"
	"github.com/cbodonnell/ghist/pkg/state"
	"github.com/cbodonnell/ghist/pkg/version"
	"github.com/cbodonnell/ghist/pkg/workers"
	"github.com/sasha-s/go-deadlock"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(2)
	}

	parsedLogLevel, err := log.ParseLogLevel(cfg.LogLevel)
	if err != nil {
		panic(fmt.Sprintf("Failed to parse log level: %v", err))
	}

	logger := log.New(log.Options{
		Level: parsedLogLevel,
		File:  cfg.LogFile,
	})
	log.SetDefaultLogger(logger)
	defer log.Sync()
	log.Info("Log level set to %s", parsedLogLevel)

	log.Info("Starting game server version %s", version.Get())

	deadlock.Opts.DeadlockTimeout = cfg.DeadlockTimeout
	deadlock.Opts.OnPotentialDeadlock = func() {
		log.Error("Potential deadlock on the game state lock")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	codec, err := messages.NewCodec(cfg.Codec)
	if err != nil {
		panic(fmt.Sprintf("Failed to create codec: %v", err))
	}
	log.Info("Using %s codec", codec.Name())

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	registry := sessions.NewRegistry()
	m := metrics.New()
	stateManager := state.NewInMemoryStateManager()

	gameManager := game.NewGameManager(game.NewGameManagerOptions{
		Registry:         registry,
		Codec:            codec,
		StateManager:     stateManager,
		Metrics:          m,
		GameLoopInterval: cfg.TickInterval,
		Seed:             seed,
	})
	log.Info("Server ID %s", gameManager.ServerID())

	watchdog := workers.NewTickWatchdogWorker(workers.NewTickWatchdogWorkerOptions{
		Ticks:    m,
		Metrics:  m,
		Interval: cfg.WatchdogInterval,
	})
	go watchdog.Start(ctx)

	var tlsConfig *network.TLSConfig
	if cfg.TLSEnabled() {
		tlsConfig = &network.TLSConfig{
			CertFile: cfg.TLSCertFile,
			KeyFile:  cfg.TLSKeyFile,
		}
	}
	wsServer := network.NewWSServer(network.NewWSServerOptions{
		Port:              cfg.Port,
		TLS:               tlsConfig,
		Game:              gameManager,
		Codec:             codec,
		Metrics:           m,
		StateManager:      stateManager,
		OutboundQueueSize: cfg.OutboundQueueSize,
	})
	go func() {
		if err := wsServer.Start(ctx); err != nil {
			log.Error("%v", err)
			stop()
		}
	}()

	log.Info("Starting game manager")
	if err := gameManager.Start(ctx); err != nil {
		panic(fmt.Sprintf("Failed to start game manager: %v", err))
	}
}
