package httpserver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

type Server struct {
	mux      *chi.Mux
	writeRPS int
}

// New builds the router. writeRPS caps form submissions per second across all clients.
func New(writeRPS int) *Server {
	m := chi.NewRouter()

	m.Use(chimw.RealIP)
	m.Use(chimw.RequestID)
	m.Use(Trace)
	m.Use(chimw.Recoverer)
	m.Use(Timeout(30 * time.Second)) // chart rendering is the slow path
	m.Use(Metrics)
	m.Use(Logger(log.Logger))

	return &Server{mux: m, writeRPS: writeRPS}
}

func (s *Server) Mux() http.Handler { return s.mux }

// Mount attaches any extra handler (e.g., /metrics) to the router.
func (s *Server) Mount(path string, h http.Handler) {
	s.mux.Handle(path, h)
}
