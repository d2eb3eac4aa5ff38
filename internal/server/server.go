// Package server hosts a running simulation over HTTP: JSON snapshots,
// the latest frame as WebP, viewport control and a WebSocket stream of
// snapshots and rally events.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"smartcourt/internal/sim"
)

// Controller is the part of the frame driver the server needs.
type Controller interface {
	Resize(width, height int) error
	Snapshot() (sim.Snapshot, bool)
}

// Server wires handlers to the driver, surface and hub.
type Server struct {
	ctrl    Controller
	surface *Surface
	hub     *Hub
	ctx     context.Context
	origins []string
}

// New returns a server. ctx bounds the lifetime of WebSocket pumps.
func New(ctx context.Context, ctrl Controller, surface *Surface, hub *Hub, origins []string) *Server {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return &Server{
		ctrl:    ctrl,
		surface: surface,
		hub:     hub,
		ctx:     ctx,
		origins: origins,
	}
}

// Router builds the HTTP routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.origins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", s.HealthCheck)
	r.Get("/ws", s.HandleWebSocket)

	r.Group(func(r chi.Router) {
		r.Use(chimiddleware.Timeout(10 * time.Second))

		r.Route("/api/v1", func(r chi.Router) {
			r.Get("/snapshot", s.GetSnapshot)
			r.Get("/frame.webp", s.GetFrame)
			r.Post("/viewport", s.SetViewport)
		})
		r.Post("/api/contact", s.Contact)
	})

	return r
}
