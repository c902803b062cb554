// Reelrank - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package services

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/thejerf/suture/v4"
)

var (
	_ suture.Service = (*HTTPServerService)(nil)
	_ suture.Service = (*IngestService)(nil)
	_ suture.Service = (*RetrainService)(nil)
	_ HTTPServer     = (*http.Server)(nil)
)

type mockHTTPServer struct {
	listenErr   error
	block       bool
	shutdownErr error

	listenCalls   atomic.Int32
	shutdownCalls atomic.Int32

	started  chan struct{}
	stopCh   chan struct{}
	stopOnce sync.Once
}

func newMockHTTPServer() *mockHTTPServer {
	return &mockHTTPServer{
		started: make(chan struct{}, 1),
		stopCh:  make(chan struct{}),
	}
}

func (m *mockHTTPServer) ListenAndServe() error {
	m.listenCalls.Add(1)
	select {
	case m.started <- struct{}{}:
	default:
	}
	if m.listenErr != nil {
		return m.listenErr
	}
	if m.block {
		<-m.stopCh
		return http.ErrServerClosed
	}
	return nil
}

func (m *mockHTTPServer) Shutdown(context.Context) error {
	m.shutdownCalls.Add(1)
	m.stopOnce.Do(func() { close(m.stopCh) })
	return m.shutdownErr
}

func TestNewHTTPServerService_DefaultTimeout(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, want time.Duration
	}{
		{5 * time.Second, 5 * time.Second},
		{0, 10 * time.Second},
		{-time.Second, 10 * time.Second},
	}
	for _, tt := range tests {
		svc := NewHTTPServerService(newMockHTTPServer(), tt.in)
		if svc.shutdownTimeout != tt.want {
			t.Errorf("NewHTTPServerService(%v) timeout = %v, want %v", tt.in, svc.shutdownTimeout, tt.want)
		}
	}
	if got := NewHTTPServerService(newMockHTTPServer(), 0).String(); got != "http-server" {
		t.Errorf("String() = %q, want http-server", got)
	}
}

func TestHTTPServerService_GracefulShutdown(t *testing.T) {
	t.Parallel()

	server := newMockHTTPServer()
	server.block = true
	svc := NewHTTPServerService(server, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- svc.Serve(ctx) }()

	select {
	case <-server.started:
	case <-time.After(time.Second):
		t.Fatal("server did not start")
	}
	cancel()

	select {
	case err := <-errCh:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Serve() error = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Serve() did not return after cancel")
	}
	if got := server.shutdownCalls.Load(); got != 1 {
		t.Errorf("Shutdown calls = %d, want 1", got)
	}
}

func TestHTTPServerService_ListenError(t *testing.T) {
	t.Parallel()

	bindErr := errors.New("bind: address already in use")
	server := newMockHTTPServer()
	server.listenErr = bindErr

	err := NewHTTPServerService(server, time.Second).Serve(context.Background())
	if !errors.Is(err, bindErr) {
		t.Errorf("Serve() error = %v, want %v", err, bindErr)
	}
}

func TestHTTPServerService_ShutdownError(t *testing.T) {
	t.Parallel()

	shutdownErr := errors.New("shutdown timeout")
	server := newMockHTTPServer()
	server.block = true
	server.shutdownErr = shutdownErr
	svc := NewHTTPServerService(server, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- svc.Serve(ctx) }()

	<-server.started
	cancel()

	select {
	case err := <-errCh:
		if !errors.Is(err, shutdownErr) {
			t.Errorf("Serve() error = %v, want %v", err, shutdownErr)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Serve() did not return")
	}
}
