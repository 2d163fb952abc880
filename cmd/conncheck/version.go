package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/conncheck"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of conncheck",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("conncheck version %s\n", strings.TrimSpace(conncheck.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
