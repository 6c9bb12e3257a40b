// Package server provides the HTTP server of the fioriscope API.
package server

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/fioriscope/fioriscope"
	"github.com/fioriscope/fioriscope/cmd/application"
	"github.com/fioriscope/fioriscope/internal/server/cache"
	"github.com/fioriscope/fioriscope/internal/server/events"
	"github.com/fioriscope/fioriscope/internal/server/events/adapters"
	"github.com/fioriscope/fioriscope/internal/server/handlers"
	"github.com/fioriscope/fioriscope/internal/server/middleware"
	"github.com/fioriscope/fioriscope/internal/server/sse"
	ws "github.com/fioriscope/fioriscope/internal/server/websocket"
)

// pruneInterval is how often idle rate limiter entries are dropped.
const pruneInterval = time.Minute

// Server holds the HTTP server state and dependencies.
type Server struct {
	client         fioriscope.Client
	cache          *cache.Cache
	broker         *events.Broker
	wsHub          *ws.Hub
	sseBroadcaster *sse.Broadcaster
	limiter        *middleware.RateLimiter
	handlers       *handlers.Handlers
	logger         *zerolog.Logger
	config         Config

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a new server instance with the given configuration.
func New(app application.Application, cfg Config) (*Server, error) {
	logger := app.Logger()

	client, err := app.Client()
	if err != nil {
		return nil, err
	}

	if cfg.ArtifactTTL <= 0 {
		cfg.ArtifactTTL = DefaultConfig().ArtifactTTL
	}

	broker := events.NewBroker(logger)
	wsHub := ws.NewHub(logger)
	sseBroadcaster := sse.NewBroadcaster(logger)

	broker.Subscribe(adapters.WebSocket(wsHub))
	broker.Subscribe(adapters.SSE(sseBroadcaster))
	logger.Debug().Int("subscribers", 2).Msg("Realtime transports subscribed to event broker")

	ctx, cancel := context.WithCancel(context.Background())

	s := &Server{
		client:         client,
		cache:          cache.New(cfg.ArtifactTTL, cfg.ArtifactTTL*2),
		broker:         broker,
		wsHub:          wsHub,
		sseBroadcaster: sseBroadcaster,
		logger:         logger,
		config:         cfg,
		ctx:            ctx,
		cancel:         cancel,
	}
	if cfg.RateLimit > 0 {
		s.limiter = middleware.NewRateLimiter(cfg.RateLimit, logger)
	}

	s.handlers = handlers.New(
		client,
		s.cache,
		broker,
		wsHub,
		sseBroadcaster,
		websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(_ *http.Request) bool {
				return true
			},
		},
		logger,
	)

	s.connectHooks()
	return s, nil
}

// connectHooks feeds client run events into the handlers, which publish them
// to the broker.
func (s *Server) connectHooks() {
	s.client.OnProgress(s.handlers.OnProgress)
	s.client.OnResults(s.handlers.OnResults)
	s.client.OnRunComplete(s.handlers.OnRunComplete)
	s.logger.Debug().Msg("Client hooks connected to event broker")
}

// Start starts background services (broker, WebSocket hub, SSE broadcaster).
func (s *Server) Start() {
	s.goBackground(s.broker.Run)
	s.goBackground(s.wsHub.Run)
	s.goBackground(s.sseBroadcaster.Run)
	if s.limiter != nil {
		s.goBackground(func(ctx context.Context) { s.limiter.Run(ctx, pruneInterval) })
	}
	s.logger.Debug().Msg("Background services started")
}

func (s *Server) goBackground(fn func(context.Context)) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		fn(s.ctx)
	}()
}

// Handler returns the configured http.Handler with middleware chain applied.
func (s *Server) Handler() http.Handler {
	return s.setupRouter()
}

// Shutdown stops the background services and waits for them, or for ctx.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info().Msg("Shutting down server background services")
	s.cancel()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info().Msg("Background services shut down")
		return nil
	case <-ctx.Done():
		s.logger.Warn().Msg("Background services shutdown timed out")
		return ctx.Err()
	}
}

// Cache returns the artifact cache.
func (s *Server) Cache() *cache.Cache {
	return s.cache
}

// Broker returns the event broker for publishing events.
func (s *Server) Broker() *events.Broker {
	return s.broker
}
