package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/gameplay-effects/internal/config"
	engineerr "github.com/KirkDiggler/gameplay-effects/internal/errors"
	"github.com/KirkDiggler/gameplay-effects/internal/repositories/snapshots"
)

func newHistoryCmd() *cobra.Command {
	var (
		redisURL  string
		character string
		turn      int
		purge     bool
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show snapshots persisted in Redis for a character",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if redisURL == "" {
				redisURL = cfg.Redis.URL
			}
			if redisURL == "" {
				return engineerr.InvalidArgument("history needs --redis-url or REDIS_URL")
			}
			if character == "" {
				return engineerr.InvalidArgument("--character is required")
			}

			ctx := cmd.Context()
			client, err := connectRedis(ctx, redisURL)
			if err != nil {
				return err
			}
			defer client.Close()

			repo, err := snapshots.NewRedis(&snapshots.RedisConfig{Client: client, TTL: cfg.Redis.SnapshotTTL})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch {
			case purge:
				if err := repo.DeleteByCharacter(ctx, character); err != nil {
					return err
				}
				fmt.Fprintf(out, "Deleted snapshots of %s\n", character)
				return nil
			case turn > 0:
				snapshot, err := repo.Get(ctx, character, turn)
				if err != nil {
					return err
				}
				printSnapshot(out, snapshot)
				return nil
			}

			list, err := repo.ListByCharacter(ctx, character)
			if err != nil {
				return err
			}
			if len(list) == 0 {
				fmt.Fprintf(out, "No snapshots for %s\n", character)
				return nil
			}
			for _, snapshot := range list {
				printSnapshot(out, snapshot)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&redisURL, "redis-url", "", "redis URL (default $REDIS_URL)")
	cmd.Flags().StringVarP(&character, "character", "c", "", "character name")
	cmd.Flags().IntVarP(&turn, "turn", "t", 0, "show a single turn")
	cmd.Flags().BoolVar(&purge, "delete", false, "delete every snapshot of the character")

	return cmd
}
