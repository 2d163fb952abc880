package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/aretw0/conncheck/internal/logging"
)

// ShutdownContext is cancelled when the process receives SIGINT or SIGTERM,
// so in-flight backend calls stop with the command. It remembers the signal.
type ShutdownContext struct {
	context.Context
	Cancel func()

	mu     sync.Mutex
	signal os.Signal
}

// NewShutdownContext starts watching for termination signals until parent is
// done or Cancel is called.
func NewShutdownContext(parent context.Context) *ShutdownContext {
	ctx, cancel := context.WithCancel(parent)
	sc := &ShutdownContext{Context: ctx, Cancel: cancel}

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)
	go func() {
		defer signal.Stop(signals)
		select {
		case sig := <-signals:
			sc.mu.Lock()
			sc.signal = sig
			sc.mu.Unlock()
			cancel()
		case <-ctx.Done():
		}
	}()
	return sc
}

// Signal returns the signal that stopped the command, or nil.
func (sc *ShutdownContext) Signal() os.Signal {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.signal
}

// createLogger returns a stderr debug logger, keeping stdout for views.
func createLogger(debug bool) *slog.Logger {
	if debug {
		return logging.New(slog.LevelDebug)
	}
	return logging.NewNop()
}

// printSystemMessage prints a console line prefixed with ">>>".
func printSystemMessage(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, ">>> %s\n", fmt.Sprintf(format, args...))
}

var errConsoleClosed = errors.New("console closed")

// consoleInput feeds the console scanner and stops once done is closed,
// even if the underlying reader delivered data in the meantime.
type consoleInput struct {
	r    io.Reader
	done <-chan struct{}
}

func newConsoleInput(r io.Reader, done <-chan struct{}) *consoleInput {
	return &consoleInput{r: r, done: done}
}

func (in *consoleInput) Read(p []byte) (int, error) {
	if in.closed() {
		return 0, errConsoleClosed
	}
	n, err := in.r.Read(p)
	if in.closed() {
		return 0, errConsoleClosed
	}
	return n, err
}

func (in *consoleInput) closed() bool {
	select {
	case <-in.done:
		return true
	default:
		return false
	}
}

// consoleExit turns end of input and shutdown into a clean exit.
func consoleExit(err error) error {
	if err == nil ||
		errors.Is(err, io.EOF) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, errConsoleClosed) {
		return nil
	}
	return err
}
