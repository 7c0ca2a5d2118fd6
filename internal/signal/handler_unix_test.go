//go:build unix

package signal_test

import (
	"context"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/keysweep/internal/signal"
)

func TestGuard_RealSignal(t *testing.T) {
	g := signal.Watch(context.Background())
	defer g.Stop()

	require.NoError(t, syscall.Kill(syscall.Getpid(), syscall.SIGINT))

	select {
	case <-g.Context().Done():
	case <-time.After(5 * time.Second):
		t.Fatal("SIGINT should cancel the guard context")
	}
	assert.True(t, g.Interrupted())
}
