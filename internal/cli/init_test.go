package cli

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"

	applog "expensetracker/internal/log"
)

func bufferLogger(buf *bytes.Buffer) *applog.Logger {
	return applog.New(applog.Config{Level: slog.LevelInfo, Format: "json", Output: buf})
}

func TestWatchSignalsLogsReceivedSignal(t *testing.T) {
	var buf bytes.Buffer
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	sigs <- syscall.SIGTERM
	watchSignals(ctx, sigs, cancel, bufferLogger(&buf))

	assert.Error(t, ctx.Err(), "a signal cancels the context")
	assert.Contains(t, buf.String(), "Shutdown signal received")
	assert.Contains(t, buf.String(), syscall.SIGTERM.String())
}

func TestWatchSignalsIsSilentOnStop(t *testing.T) {
	var buf bytes.Buffer
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	watchSignals(ctx, make(chan os.Signal), cancel, bufferLogger(&buf))

	assert.Empty(t, buf.String())
}

func TestSignalContextStopCancels(t *testing.T) {
	var buf bytes.Buffer
	ctx, stop := SignalContext(bufferLogger(&buf))
	assert.NoError(t, ctx.Err())

	stop()
	<-ctx.Done()
	assert.ErrorIs(t, ctx.Err(), context.Canceled)
}
