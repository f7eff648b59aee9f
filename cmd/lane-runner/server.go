package main

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/lixenwraith/lane-runner/core"
	"github.com/lixenwraith/lane-runner/feed"
	"github.com/lixenwraith/lane-runner/status"
)

// newMux serves the spectator websocket and a JSON metrics snapshot
func newMux(hub *feed.Hub, reg *status.Registry) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/ws", hub)
	mux.HandleFunc("/status", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(reg.Snapshot()); err != nil {
			log.Printf("status: encode: %v", err)
		}
	})
	return mux
}

// startServer listens on addr in the background; the returned func shuts it down
func startServer(addr string, hub *feed.Hub, reg *status.Registry) func() {
	srv := &http.Server{
		Addr:              addr,
		Handler:           newMux(hub, reg),
		ReadHeaderTimeout: 5 * time.Second,
	}
	core.Go(func() {
		log.Printf("feed: listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("feed: server: %v", err)
		}
	})
	return func() {
		hub.Close()
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}
}
