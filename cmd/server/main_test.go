package main

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plateup/backend/config"
)

func TestServe(t *testing.T) {
	t.Run("returns nil after a graceful shutdown", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		server := &http.Server{Addr: "127.0.0.1:0", Handler: http.NotFoundHandler()}

		done := make(chan error, 1)
		go func() { done <- serve(ctx, server, time.Second) }()
		cancel()

		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Fatal("serve did not return after cancellation")
		}
	})

	t.Run("reports listen failures", func(t *testing.T) {
		server := &http.Server{Addr: "127.0.0.1:-1", Handler: http.NotFoundHandler()}

		err := serve(context.Background(), server, time.Second)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "serve http")
	})
}

func TestRun_StopsOnCancel(t *testing.T) {
	cfg := &config.Config{
		Server:    config.ServerConfig{Port: "0", Environment: "test", ShutdownTimeout: time.Second},
		Icons:     config.IconsConfig{DefaultLimit: 3, MaxLimit: 10},
		Cache:     config.CacheConfig{Type: "memory", TTL: time.Minute, MaxEntries: 10},
		RateLimit: config.RateLimitConfig{PerIP: 60},
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- run(ctx, cfg) }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("run did not return after cancellation")
	}
}
