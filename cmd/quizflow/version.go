package main

import (
	"fmt"

	"github.com/aretw0/quizflow"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of quizflow",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "quizflow version %s\n", quizflow.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
