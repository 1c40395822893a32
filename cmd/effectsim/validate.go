package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/gameplay-effects/internal/dice"
	engineerr "github.com/KirkDiggler/gameplay-effects/internal/errors"
	"github.com/KirkDiggler/gameplay-effects/internal/scenario"
)

func newValidateCmd() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check that a scenario loads and resolves",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if path == "" {
				return engineerr.InvalidArgument("--scenario is required")
			}

			s, err := scenario.LoadFile(path)
			if err != nil {
				return err
			}
			world, err := s.Build(dice.NewRandomRoller())
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s: OK (%d attributes, %d effects, %d characters, %d script entries)\n",
				path, len(world.Attributes), len(world.Definitions), len(world.Characters), len(world.Script))
			return nil
		},
	}

	cmd.Flags().StringVarP(&path, "scenario", "s", "", "scenario file")

	return cmd
}
