// Copyright (C) 2026, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package api exposes the explorer to rendering front ends over JSON-RPC 2.0.
package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/ava-labs/avalanchego/utils/json"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/gorilla/rpc/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/ava-labs/stakeviz/explorer"
)

// Paths at which the [Server] handler serves.
const (
	RPCPath     = "/ext/stakeviz"
	MetricsPath = "/metrics"
)

// A Config configures construction of a new [Server].
type Config struct {
	// Addr is the TCP address to listen on, e.g. "127.0.0.1:9650".
	Addr string
	// SessionTTL is the idle period after which viewer sessions are dropped.
	// Zero disables expiry.
	SessionTTL time.Duration
	// ExpiryInterval is how often idle sessions are looked for.
	ExpiryInterval time.Duration
	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration
}

// DefaultConfig returns a [Config] listening on localhost.
func DefaultConfig() Config {
	return Config{
		Addr:            "127.0.0.1:9650",
		SessionTTL:      30 * time.Minute,
		ExpiryInterval:  time.Minute,
		ShutdownTimeout: 5 * time.Second,
	}
}

// Validate returns an error describing the first invalid field, if any.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return errors.New("empty listen address")
	}
	if c.SessionTTL < 0 {
		return fmt.Errorf("session TTL (%v) is negative", c.SessionTTL)
	}
	if c.SessionTTL > 0 && c.ExpiryInterval <= 0 {
		return fmt.Errorf("expiry interval (%v) is not positive", c.ExpiryInterval)
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown timeout (%v) is not positive", c.ShutdownTimeout)
	}
	return nil
}

type metrics struct {
	recomputations prometheus.Counter
	domainErrors   prometheus.Counter
	sessions       prometheus.GaugeFunc
}

func newMetrics(reg prometheus.Registerer, sessions *explorer.Sessions) (*metrics, error) {
	m := &metrics{
		recomputations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "stakeviz",
			Name:      "recomputations_total",
			Help:      "Number of successful output recomputations",
		}),
		domainErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "stakeviz",
			Name:      "domain_errors_total",
			Help:      "Number of inputs rejected as outside of the formula domain",
		}),
		sessions: prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: "stakeviz",
			Name:      "sessions",
			Help:      "Number of open viewer sessions",
		}, func() float64 {
			return float64(sessions.Len())
		}),
	}
	return m, errors.Join(
		reg.Register(m.recomputations),
		reg.Register(m.domainErrors),
		reg.Register(m.sessions),
	)
}

// A Server serves the explorer's JSON-RPC API and metrics over HTTP.
type Server struct {
	config   Config
	log      logging.Logger
	sessions *explorer.Sessions
	metrics  *metrics
	handler  http.Handler
}

// NewServer constructs a [Server]. Metrics are registered with, and served
// from, `reg`.
func NewServer(c Config, e *explorer.Explorer, reg *prometheus.Registry, log logging.Logger) (*Server, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid API config: %w", err)
	}
	sessions := e.NewSessions(c.SessionTTL)
	m, err := newMetrics(reg, sessions)
	if err != nil {
		return nil, fmt.Errorf("registering metrics: %w", err)
	}

	s := &Server{
		config:   c,
		log:      log,
		sessions: sessions,
		metrics:  m,
	}

	rpcServer := rpc.NewServer()
	rpcServer.RegisterCodec(json.NewCodec(), "application/json")
	rpcServer.RegisterCodec(json.NewCodec(), "application/json;charset=UTF-8")
	svc := &Service{
		explorer: e,
		sessions: s.sessions,
		metrics:  m,
		log:      log,
	}
	if err := rpcServer.RegisterService(svc, "stakeviz"); err != nil {
		return nil, fmt.Errorf("registering service: %w", err)
	}

	mux := http.NewServeMux()
	mux.Handle(RPCPath, rpcServer)
	mux.Handle(MetricsPath, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	s.handler = mux
	return s, nil
}

// Handler returns the HTTP handler serving [RPCPath] and [MetricsPath].
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Sessions returns the viewer sessions managed by the [Server].
func (s *Server) Sessions() *explorer.Sessions {
	return s.sessions
}

// Serve accepts connections on `l` until `ctx` is cancelled, after which it
// shuts down gracefully and closes all sessions. It returns nil after a clean
// shutdown.
func (s *Server) Serve(ctx context.Context, l net.Listener) error {
	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	if s.config.SessionTTL > 0 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.sessions.Run(ctx, s.config.ExpiryInterval)
		}()
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(l)
	}()
	s.log.Info("API server listening", zap.Stringer("addr", l.Addr()))

	var err error
	select {
	case err = <-errCh:
		cancel()
	case <-ctx.Done():
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
		defer cancelShutdown()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.log.Warn("Unclean API server shutdown", zap.Error(err))
		}
		err = <-errCh
	}
	wg.Wait()
	if n := s.sessions.CloseAll(); n > 0 {
		s.log.Info("Closed sessions on shutdown", zap.Int("count", n))
	}

	if errors.Is(err, http.ErrServerClosed) {
		s.log.Info("API server stopped")
		return nil
	}
	return err
}

// ListenAndServe listens on the configured address and calls [Server.Serve].
func (s *Server) ListenAndServe(ctx context.Context) error {
	var lc net.ListenConfig
	l, err := lc.Listen(ctx, "tcp", s.config.Addr)
	if err != nil {
		return fmt.Errorf("listening on %q: %w", s.config.Addr, err)
	}
	return s.Serve(ctx, l)
}
