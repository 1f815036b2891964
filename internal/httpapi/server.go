// Package httpapi is the HTTP/SSE Edge: chi-routed request handlers
// that translate client requests into intake events, plus the
// long-lived GET /events stream that tails the Broadcast Bus. No
// handler in this package ever acquires the World's write guard.
package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"github.com/rs/zerolog"

	"platformer-server/internal/broadcast"
	"platformer-server/internal/config"
	"platformer-server/internal/intake"
	"platformer-server/internal/sim"
	"platformer-server/internal/world"
)

// Server holds everything the HTTP edge needs: the World for snapshots,
// the intake queue to enqueue into, both broadcast buses for /events,
// and the static config payload served verbatim.
type Server struct {
	world    *world.World
	intake   *intake.Queue
	stateBus *broadcast.Bus[sim.StateFrame]
	chatBus  *broadcast.Bus[sim.ChatFrame]
	cfg      *config.Config
	log      zerolog.Logger
}

// New constructs a Server. It does not start listening; call Router to
// obtain an http.Handler and pass it to an *http.Server.
func New(w *world.World, q *intake.Queue, stateBus *broadcast.Bus[sim.StateFrame], chatBus *broadcast.Bus[sim.ChatFrame], cfg *config.Config, log zerolog.Logger) *Server {
	return &Server{world: w, intake: q, stateBus: stateBus, chatBus: chatBus, cfg: cfg, log: log}
}

// Router builds the chi-routed handler tree for this Server, with CORS
// and structured request logging applied to every route (SPEC_FULL.md
// §9, §11).
func (s *Server) Router(allowedOrigins []string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Use(cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: false,
	}).Handler)

	r.Get("/health", s.handleHealth)
	r.Get("/api/config", s.handleConfig)
	r.Post("/api/player/init", s.handleInit)
	r.Post("/api/player/command", s.handleCommand)
	r.Post("/api/chat", s.handleChat)
	r.Get("/events", s.handleEvents)

	return r
}

// requestLogger logs method, path, status, and latency for every
// request via zerolog, grounded on the teacher's per-connection
// logging in network.HandleClient (SPEC_FULL.md §11).
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("latency", time.Since(start)).
			Msg("http request")
	})
}
