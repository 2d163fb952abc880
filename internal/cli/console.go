package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/aretw0/conncheck"
	"github.com/aretw0/conncheck/internal/presentation/tui"
	"github.com/aretw0/conncheck/pkg/app"
	"github.com/aretw0/conncheck/pkg/domain"
)

var errQuit = errors.New("quit")

// Console is the interactive front end: it reads commands, dispatches them to
// the app and re-renders the view after every settled action.
type Console struct {
	in     io.Reader
	out    io.Writer
	render tui.Renderer
}

// NewConsole creates a console reading from in and writing to out.
func NewConsole(in io.Reader, out io.Writer, render tui.Renderer) *Console {
	if render == nil {
		render = tui.PlainRenderer
	}
	return &Console{in: in, out: out, render: render}
}

// Hooks prints a busy line whenever an action starts.
func (c *Console) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnActionStart: func(ctx context.Context, e *domain.ActionEvent) {
			fmt.Fprintf(c.out, "... %s\n", tui.BusyLine(e.Key))
		},
	}
}

// Run mounts the app and serves commands until quit, EOF or ctx is done.
func (c *Console) Run(ctx context.Context, a *app.App) error {
	_ = a.Mount(ctx)
	c.show(a)

	scanner := bufio.NewScanner(newConsoleInput(c.in, ctx.Done()))
	for {
		fmt.Fprint(c.out, "> ")
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return consoleExit(err)
			}
			return nil
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		err := c.Dispatch(ctx, a, line)
		switch {
		case errors.Is(err, errQuit):
			printSystemMessage(c.out, "Bye!")
			return nil
		case ctx.Err() != nil:
			return nil
		}
	}
}

// Dispatch runs one console command line.
func (c *Console) Dispatch(ctx context.Context, a *app.App, line string) error {
	fields := strings.Fields(line)
	cmd, args := strings.ToLower(fields[0]), fields[1:]

	if a.Mode() == app.ModeBasic && !basicCommands[cmd] {
		printSystemMessage(c.out, "Unknown command %q. Type 'help'.", cmd)
		return nil
	}

	var err error
	switch cmd {
	case "quit", "exit", "q":
		return errQuit
	case "help", "?":
		c.help(a.Mode())
		return nil
	case "state":
		data, _ := json.MarshalIndent(a.State(), "", "  ")
		fmt.Fprintln(c.out, string(data))
		return nil
	case "view":
		c.show(a)
		return nil
	case "health":
		err = a.CheckHealth(ctx)
	case "greet":
		err = a.FetchGreeting(ctx, strings.Join(args, " "))
	case "todos", "ls":
		err = a.FetchTodos(ctx)
	case "add":
		err = a.AddTodo(ctx, strings.Join(args, " "))
	case "toggle", "rm":
		id, perr := parseID(args)
		if perr != nil {
			return c.reject(perr)
		}
		if cmd == "toggle" {
			err = a.ToggleTodo(ctx, id)
		} else {
			err = a.DeleteTodo(ctx, id)
		}
	case "calc":
		x, y, op, perr := ParseCalculation(args)
		if perr != nil {
			return c.reject(perr)
		}
		err = a.Calculate(ctx, x, y, op)
	case "random":
		err = a.FetchRandom(ctx)
	default:
		printSystemMessage(c.out, "Unknown command %q. Type 'help'.", cmd)
		return nil
	}

	if errors.Is(err, domain.ErrEmptyTitle) || errors.Is(err, domain.ErrUnknownOperation) {
		return c.reject(err)
	}
	c.show(a)
	return err
}

// reject reports input that never reached the controller.
func (c *Console) reject(err error) error {
	printSystemMessage(c.out, "Error: %v", err)
	return err
}

var basicCommands = map[string]bool{
	"quit": true, "exit": true, "q": true, "help": true, "?": true,
	"state": true, "view": true, "health": true, "greet": true,
}

func (c *Console) show(a *app.App) {
	out, err := c.render(tui.RenderView(a))
	if err != nil {
		out = tui.RenderView(a)
	}
	fmt.Fprint(c.out, out)
}

func (c *Console) help(mode app.Mode) {
	lines := []string{
		"health              check the backend",
		"greet [name]        fetch a greeting",
	}
	if mode == app.ModeFull {
		lines = append(lines,
			"todos               refresh the todo list",
			"add <title>         add a todo",
			"toggle <id>         toggle a todo",
			"rm <id>             delete a todo",
			"calc <a> <b> <op>   op: add subtract multiply divide (or + - * /)",
			"random              fetch a random number",
		)
	}
	lines = append(lines,
		"state               print the controller state",
		"view                re-render the view",
		"quit                leave",
	)
	for _, l := range lines {
		fmt.Fprintln(c.out, "  "+l)
	}
}

func parseID(args []string) (int, error) {
	if len(args) != 1 {
		return 0, errors.New("expected a todo id")
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("invalid todo id %q", args[0])
	}
	return id, nil
}

var operatorSymbols = map[string]domain.Operation{
	"+": domain.OpAdd,
	"-": domain.OpSubtract,
	"*": domain.OpMultiply,
	"x": domain.OpMultiply,
	"/": domain.OpDivide,
}

// ParseCalculation reads "<a> <b> <op>", where op is an operation name or symbol.
func ParseCalculation(args []string) (float64, float64, domain.Operation, error) {
	if len(args) != 3 {
		return 0, 0, "", errors.New("expected <a> <b> <operation>")
	}
	x, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return 0, 0, "", fmt.Errorf("invalid number %q", args[0])
	}
	y, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return 0, 0, "", fmt.Errorf("invalid number %q", args[1])
	}
	if op, ok := operatorSymbols[args[2]]; ok {
		return x, y, op, nil
	}
	op, err := domain.ParseOperation(strings.ToLower(args[2]))
	if err != nil {
		return 0, 0, "", err
	}
	return x, y, op, nil
}

// RunConsole starts the interactive console.
func RunConsole(opts Options, in io.Reader, out io.Writer) error {
	cfg, err := LoadConfig(opts)
	if err != nil {
		return err
	}
	logger := createLogger(cfg.Debug)

	sigCtx := NewShutdownContext(context.Background())
	defer sigCtx.Cancel()

	console := NewConsole(in, out, tui.NewRenderer())
	a, err := createApp(sigCtx, cfg, opts, logger, console.Hooks())
	if err != nil {
		return err
	}

	tui.PrintBanner(out, conncheck.Version)
	printSystemMessage(out, "Backend %s (%s demo). Type 'help' for commands.", cfg.APIURL, a.Mode())

	err = console.Run(sigCtx, a)
	if sigCtx.Signal() != nil {
		fmt.Fprintln(out)
		printSystemMessage(out, "Interrupted.")
	}
	return err
}
