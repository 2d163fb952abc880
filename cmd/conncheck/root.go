package main

import (
	"fmt"
	"os"

	"github.com/aretw0/conncheck/internal/cli"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "conncheck",
	Short: "conncheck exercises a backend's REST endpoints",
	Long: `conncheck checks the connection between a client and a backend by calling
its health, greeting, todo, calculator and random number endpoints, tracking
per action whether it is in flight, its last error and its last result.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("api-url", "", "Backend origin (default http://localhost:5000, or CONNCHECK_API_URL / VITE_API_URL)")
	rootCmd.PersistentFlags().String("config", "", "Config file (default ./conncheck.yaml when present)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logs on stderr")
	rootCmd.PersistentFlags().Bool("json", false, "Print results as JSON")
	rootCmd.PersistentFlags().Bool("no-validate", false, "Skip OpenAPI validation of backend responses")
}

// cliOptions reads the persistent flags.
func cliOptions(cmd *cobra.Command) cli.Options {
	apiURL, _ := cmd.Flags().GetString("api-url")
	configFile, _ := cmd.Flags().GetString("config")
	debug, _ := cmd.Flags().GetBool("debug")
	jsonMode, _ := cmd.Flags().GetBool("json")
	noValidate, _ := cmd.Flags().GetBool("no-validate")
	return cli.Options{
		ConfigFile: configFile,
		APIURL:     apiURL,
		Debug:      debug,
		JSON:       jsonMode,
		NoValidate: noValidate,
	}
}

// exitOnError prints err and exits with status 1.
func exitOnError(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// runAction builds a cobra Run func for a one-shot action.
func runAction(build func(cmd *cobra.Command, args []string) (cli.ActionFunc, error)) func(*cobra.Command, []string) {
	return func(cmd *cobra.Command, args []string) {
		fn, err := build(cmd, args)
		exitOnError(err)
		exitOnError(cli.RunAction(cliOptions(cmd), os.Stdout, fn))
	}
}
