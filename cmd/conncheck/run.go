package main

import (
	"os"

	"github.com/aretw0/conncheck/internal/cli"
	"github.com/spf13/cobra"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the interactive console",
	Long: `Starts the interactive console. It checks the backend health on start
(and fetches the todo list in the full demo), then reads commands such as
'greet', 'add', 'toggle', 'calc' and 'random'. Type 'help' inside the console.`,
	Run: func(cmd *cobra.Command, args []string) {
		opts := cliOptions(cmd)
		opts.Basic, _ = cmd.Flags().GetBool("basic")
		opts.MetricsAddr, _ = cmd.Flags().GetString("metrics-addr")
		exitOnError(cli.RunConsole(opts, os.Stdin, os.Stdout))
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().Bool("basic", false, "Run the basic demo (health and greeting only)")
	runCmd.Flags().String("metrics-addr", "", "Expose action metrics on this address (e.g. :2112)")

	rootCmd.Run = runCmd.Run
	rootCmd.Flags().AddFlagSet(runCmd.Flags())
}
