package cli

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConsoleInput_StopsWhenDone(t *testing.T) {
	done := make(chan struct{})
	in := newConsoleInput(strings.NewReader("health\n"), done)

	buf := make([]byte, 16)
	n, err := in.Read(buf)
	assert.NoError(t, err)
	assert.Equal(t, "health\n", string(buf[:n]))

	close(done)
	_, err = in.Read(buf)
	assert.ErrorIs(t, err, errConsoleClosed)
}

func TestConsoleExit(t *testing.T) {
	assert.NoError(t, consoleExit(nil))
	assert.NoError(t, consoleExit(io.EOF))
	assert.NoError(t, consoleExit(context.Canceled))
	assert.NoError(t, consoleExit(errConsoleClosed))

	boom := errors.New("read failed")
	assert.Equal(t, boom, consoleExit(boom))
}

func TestShutdownContext_Cancel(t *testing.T) {
	sc := NewShutdownContext(context.Background())
	sc.Cancel()

	<-sc.Done()
	assert.Nil(t, sc.Signal())
}
