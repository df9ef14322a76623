package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kkirsche/restmon"
)

func main() {
	// start mock server (see mock_server.go)
	go StartMockAPIServer(":9999")
	time.Sleep(100 * time.Millisecond)

	// text handler: records come out as space-joined key=value tokens
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	client, err := restmon.New("http://localhost:9999",
		restmon.WithEndpoints(
			"/health",          // JSON object → decoded + flattened
			"/metrics/summary", // nested JSON → dotted/indexed keys
			"/ping",            // plain text → raw-text fallback
			"/missing",         // no such route → retried, then logged
		),
		restmon.WithEnvironment("demo"),
		restmon.WithRequestTimeout(5*time.Second),
		restmon.WithLogger(logger),
	)
	if err != nil {
		slog.Error("failed to create client", "error", err)
		os.Exit(1)
	}
	defer client.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// one sweep per tick; the caller owns cadence
	ticker := time.NewTicker(15 * time.Second)
	defer ticker.Stop()

	client.Run(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			client.Run(ctx)
		}
	}
}
