// Package httpapi exposes the chat pipeline over a small JSON API.
package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sandevgo/wayfarer/pkg/log"
)

type Server struct {
	srv    *http.Server
	router *chi.Mux
}

func NewServer(addr string, h *Handlers) *Server {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(requestLogger)

	router.Get("/health", h.health)
	router.Route("/api", func(r chi.Router) {
		r.Post("/trips", h.createTrip)
		r.Get("/trips/{id}", h.getTrip)
		r.Post("/chat/message", h.chatMessage)
	})

	return &Server{
		srv: &http.Server{
			Addr:    addr,
			Handler: router,
		},
		router: router,
	}
}

func (s *Server) Start(ctx context.Context) error {
	log.FromCtx(ctx).Info().Str("addr", s.srv.Addr).Msg("starting http api")
	s.srv.BaseContext = func(net.Listener) context.Context { return ctx }
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.srv.Shutdown(shutdownCtx)
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		log.FromCtx(r.Context()).Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("took", time.Since(start)).
			Msg("request")
	})
}
