package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/KirkDiggler/gameplay-effects/internal/config"
	"github.com/KirkDiggler/gameplay-effects/internal/dice"
	engineerr "github.com/KirkDiggler/gameplay-effects/internal/errors"
	"github.com/KirkDiggler/gameplay-effects/internal/events"
	"github.com/KirkDiggler/gameplay-effects/internal/repositories/snapshots"
	"github.com/KirkDiggler/gameplay-effects/internal/scenario"
	"github.com/KirkDiggler/gameplay-effects/internal/turn"
)

type runOptions struct {
	scenario string
	turns    int
	redisURL string
	verbose  bool
}

func newRunCmd() *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a scenario",
		Long: `Run a scenario for a number of turns. Defaults come from SIM_SCENARIO, SIM_TURNS
and REDIS_URL. Without a Redis URL snapshots are kept in memory.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			opts.applyDefaults(cmd, cfg)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
			defer stop()

			return runScenario(ctx, cmd, opts, cfg.Redis.SnapshotTTL)
		},
	}

	cmd.Flags().StringVarP(&opts.scenario, "scenario", "s", "", "scenario file (default $SIM_SCENARIO)")
	cmd.Flags().IntVarP(&opts.turns, "turns", "n", 0, "number of turns (default $SIM_TURNS)")
	cmd.Flags().StringVar(&opts.redisURL, "redis-url", "", "redis URL for snapshots (default $REDIS_URL)")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "print every effect event")

	return cmd
}

func (o *runOptions) applyDefaults(cmd *cobra.Command, cfg *config.Config) {
	if o.scenario == "" {
		o.scenario = cfg.Simulation.Scenario
	}
	if !cmd.Flags().Changed("turns") {
		o.turns = cfg.Simulation.Turns
	}
	if o.redisURL == "" {
		o.redisURL = cfg.Redis.URL
	}
}

func runScenario(ctx context.Context, cmd *cobra.Command, opts *runOptions, ttl time.Duration) error {
	if opts.scenario == "" {
		return engineerr.InvalidArgument("a scenario is required: pass --scenario or set SIM_SCENARIO")
	}
	if opts.turns < 0 {
		return engineerr.InvalidArgumentf("turns must not be negative, got %d", opts.turns)
	}

	s, err := scenario.LoadFile(opts.scenario)
	if err != nil {
		return err
	}
	world, err := s.Build(dice.NewRandomRoller())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if opts.verbose {
		logger := &eventLogger{out: out}
		for _, eventType := range []events.EventType{
			events.OnEffectApplied,
			events.OnEffectRejected,
			events.OnEffectExpired,
			events.OnEffectRemoved,
			events.OnPeriodicExecuted,
		} {
			world.EventBus.Subscribe(eventType, logger)
		}
	}

	repo, cleanup, err := openSnapshots(ctx, opts.redisURL, ttl)
	if err != nil {
		return err
	}
	defer cleanup()

	driver, err := turn.NewDriver(&turn.DriverConfig{
		Characters: world.Characters,
		Script:     world.Script,
		Snapshots:  repo,
		EventBus:   world.EventBus,
	})
	if err != nil {
		return err
	}

	for i := 0; i < opts.turns; i++ {
		report, err := driver.RunTurn(ctx)
		if err != nil {
			return err
		}
		printTurn(out, report, world)
	}

	return nil
}

// openSnapshots connects to Redis when a URL is given and falls back to
// memory when the URL is unusable
func openSnapshots(ctx context.Context, redisURL string, ttl time.Duration) (snapshots.Repository, func(), error) {
	noop := func() {}
	if redisURL == "" {
		return snapshots.NewInMemoryRepository(), noop, nil
	}

	client, err := connectRedis(ctx, redisURL)
	if err != nil {
		log.Printf("Failed to connect to Redis: %v", err)
		log.Println("Falling back to in-memory snapshots")
		return snapshots.NewInMemoryRepository(), noop, nil
	}

	repo, err := snapshots.NewRedis(&snapshots.RedisConfig{
		Client: client,
		TTL:    ttl,
	})
	if err != nil {
		_ = client.Close()
		return nil, noop, err
	}

	log.Println("Using Redis for snapshots")
	return repo, func() {
		if err := client.Close(); err != nil {
			log.Printf("Error closing Redis connection: %v", err)
		}
	}, nil
}

func connectRedis(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	return client, nil
}
