package main

import (
	"encoding/json"
	"log/slog"
	"math/rand"
	"net/http"
	"time"
)

// StartMockAPIServer runs a small API exercising each decode path:
// /health returns a flat JSON object, /metrics/summary returns nested JSON
// with arrays, and /ping returns plain text.
// Call this in a goroutine before creating the restmon client.
func StartMockAPIServer(addr string) {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		// simulate small latency variance
		time.Sleep(time.Duration(10+rand.Intn(50)) * time.Millisecond)

		w.Header().Set("Content-Type", "application/json")
		resp := map[string]any{
			"status": "ok",
			"uptime": 86400 + rand.Intn(1000),
		}
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			slog.Error("failed to write response", "error", err)
		}
	})

	mux.HandleFunc("/metrics/summary", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		// nested structure: flattens to queue.depth, workers.0, workers.1, ...
		resp := map[string]any{
			"queue":   map[string]any{"depth": rand.Intn(100)},
			"workers": []string{"alpha", "beta"},
		}
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			slog.Error("failed to write response", "error", err)
		}
	})

	mux.HandleFunc("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("OK"))
	})

	if err := http.ListenAndServe(addr, mux); err != nil {
		slog.Error("mock server error", "error", err)
	}
}
