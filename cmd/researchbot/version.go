package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"researchbot"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of researchbot",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("researchbot version %s\n", researchbot.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
