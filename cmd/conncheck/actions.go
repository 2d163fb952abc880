package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aretw0/conncheck/internal/cli"
	"github.com/spf13/cobra"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check whether the backend is reachable",
	Args:  cobra.NoArgs,
	Run: runAction(func(cmd *cobra.Command, args []string) (cli.ActionFunc, error) {
		return cli.HealthAction(), nil
	}),
}

var greetCmd = &cobra.Command{
	Use:   "greet",
	Short: "Fetch a greeting from the backend",
	Args:  cobra.NoArgs,
	Run: runAction(func(cmd *cobra.Command, args []string) (cli.ActionFunc, error) {
		name, _ := cmd.Flags().GetString("name")
		return cli.GreetingAction(name), nil
	}),
}

var todosCmd = &cobra.Command{
	Use:   "todos",
	Short: "List and manage todos",
	Args:  cobra.NoArgs,
	Run: runAction(func(cmd *cobra.Command, args []string) (cli.ActionFunc, error) {
		return cli.ListTodosAction(), nil
	}),
}

var todosListCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "Fetch the todo list",
	Args:    cobra.NoArgs,
	Run: runAction(func(cmd *cobra.Command, args []string) (cli.ActionFunc, error) {
		return cli.ListTodosAction(), nil
	}),
}

var todosAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a todo, then print the refreshed list",
	Args:  cobra.MinimumNArgs(1),
	Run: runAction(func(cmd *cobra.Command, args []string) (cli.ActionFunc, error) {
		return cli.AddTodoAction(strings.Join(args, " ")), nil
	}),
}

var todosToggleCmd = &cobra.Command{
	Use:   "toggle <id>",
	Short: "Toggle a todo, then print the refreshed list",
	Args:  cobra.ExactArgs(1),
	Run: runAction(func(cmd *cobra.Command, args []string) (cli.ActionFunc, error) {
		id, err := parseID(args[0])
		if err != nil {
			return nil, err
		}
		return cli.ToggleTodoAction(id), nil
	}),
}

var todosRemoveCmd = &cobra.Command{
	Use:     "rm <id>",
	Aliases: []string{"delete"},
	Short:   "Delete a todo, then print the refreshed list",
	Args:    cobra.ExactArgs(1),
	Run: runAction(func(cmd *cobra.Command, args []string) (cli.ActionFunc, error) {
		id, err := parseID(args[0])
		if err != nil {
			return nil, err
		}
		return cli.DeleteTodoAction(id), nil
	}),
}

var calcCmd = &cobra.Command{
	Use:   "calc <a> <b> <operation>",
	Short: "Ask the backend to calculate (add, subtract, multiply, divide)",
	Args:  cobra.ExactArgs(3),
	Run: runAction(func(cmd *cobra.Command, args []string) (cli.ActionFunc, error) {
		x, y, op, err := cli.ParseCalculation(args)
		if err != nil {
			return nil, err
		}
		return cli.CalculateAction(x, y, op), nil
	}),
}

var randomCmd = &cobra.Command{
	Use:   "random",
	Short: "Fetch a random number between 1 and 100",
	Args:  cobra.NoArgs,
	Run: runAction(func(cmd *cobra.Command, args []string) (cli.ActionFunc, error) {
		return cli.RandomAction(), nil
	}),
}

func parseID(raw string) (int, error) {
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid todo id %q", raw)
	}
	return id, nil
}

func init() {
	greetCmd.Flags().String("name", "", "Name to greet (default World)")

	todosCmd.AddCommand(todosListCmd, todosAddCmd, todosToggleCmd, todosRemoveCmd)
	rootCmd.AddCommand(healthCmd, greetCmd, todosCmd, calcCmd, randomCmd)
}
