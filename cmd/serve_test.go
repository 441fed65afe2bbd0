package cmd

import (
	"context"
	"errors"
	"net/http"
	"syscall"
	"testing"

	"github.com/rs/zerolog"
)

func TestWaitForServer_ReturnsStartupFailure(t *testing.T) {
	serverErr := make(chan error, 1)
	serverErr <- syscall.EADDRINUSE

	err := waitForServer(context.Background(), serverErr, zerolog.Nop())
	if !errors.Is(err, syscall.EADDRINUSE) {
		t.Fatalf("expected address-in-use error, got %v", err)
	}
}

func TestWaitForServer_CleanExits(t *testing.T) {
	closed := make(chan error, 1)
	closed <- http.ErrServerClosed
	if err := waitForServer(context.Background(), closed, zerolog.Nop()); err != nil {
		t.Fatalf("expected nil on server closed, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := waitForServer(ctx, make(chan error), zerolog.Nop()); err != nil {
		t.Fatalf("expected nil on signal, got %v", err)
	}
}
