package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "effectsim",
		Short: "Gameplay effect simulator",
		Long: `effectsim runs scenario files through the gameplay effect engine turn by turn,
printing attribute values and active effects and optionally persisting a snapshot
of every character after each turn.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newValidateCmd())
	rootCmd.AddCommand(newHistoryCmd())

	return rootCmd
}
