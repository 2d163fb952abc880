package main

import (
	"github.com/aretw0/conncheck/internal/cli"
	"github.com/spf13/cobra"
)

var stubCmd = &cobra.Command{
	Use:   "stub",
	Short: "Run the reference backend",
	Long: `Serves the health, greeting, todo, calculator and random number endpoints,
plus /openapi.yaml and /metrics. Todos are kept in memory unless a Redis address
is given, in which case several replicas can share the list.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		addr, _ := cmd.Flags().GetString("addr")
		redisAddr, _ := cmd.Flags().GetString("redis")
		exitOnError(cli.ServeStub(cliOptions(cmd), cli.StubOptions{
			Addr:      addr,
			RedisAddr: redisAddr,
		}))
	},
}

func init() {
	rootCmd.AddCommand(stubCmd)

	stubCmd.Flags().StringP("addr", "a", "", "Address to listen on (default :5000)")
	stubCmd.Flags().String("redis", "", "Redis address for the todo store (e.g. localhost:6379)")
}
