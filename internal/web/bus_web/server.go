package bus_web

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"

	"tarediiran-industries.com/bus-eta-services/internal/config"
	"tarediiran-industries.com/bus-eta-services/internal/plates"
	"tarediiran-industries.com/bus-eta-services/internal/session"
)

const MockPrefix = "/mock"

type ServerOptions struct {
	ListenAddress string
	Backend       session.Backend
	// Plates is optional; without it the plates page shows a load error.
	Plates     *plates.Loader
	SessionTTL time.Duration
	// Registry, when set, receives the session gauge.
	Registry *prometheus.Registry
	Logger   *slog.Logger
	// Mock, when set, is mounted under MockPrefix.
	Mock http.Handler
}

type BusWebServer struct {
	server   *http.Server
	router   chi.Router
	renderer *Renderer
	sessions *SessionStore
	plates   *plates.Loader
	logger   *slog.Logger
}

func NewBusWebServer(options ServerOptions) (*BusWebServer, error) {
	renderer, err := NewRenderer()
	if err != nil {
		return nil, err
	}

	logger := options.Logger
	if logger == nil {
		logger = slog.Default()
	}
	ttl := options.SessionTTL
	if ttl <= 0 {
		ttl = config.DefaultSessionTTLMinutes * time.Minute
	}

	backend := options.Backend
	sessions, err := NewSessionStore(ttl, func() *session.Controller {
		return session.NewController(backend, logger)
	}, options.Registry)
	if err != nil {
		return nil, err
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	httpServer := &http.Server{
		Addr:              options.ListenAddress,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	server := &BusWebServer{
		server:   httpServer,
		router:   router,
		renderer: renderer,
		sessions: sessions,
		plates:   options.Plates,
		logger:   logger,
	}

	router.Get("/", func(writer http.ResponseWriter, request *http.Request) {
		http.Redirect(writer, request, "/eta", http.StatusFound)
	})
	router.Get("/eta", server.handleEtaPage)
	router.Get("/eta/partial", server.handleEtaPartial)
	router.Post("/eta/search", server.handleSearch)
	router.Post("/eta/route", server.handleSelectRoute)
	router.Post("/eta/bus", server.handleSelectBus)
	router.Post("/eta/fetch", server.handleFetchEta)
	router.Get("/plates", server.handlePlatesPage)
	router.Get("/healthz", server.handleHealth)

	if options.Mock != nil {
		router.Mount(MockPrefix, http.StripPrefix(MockPrefix, options.Mock))
	}

	return server, nil
}

// Handler exposes the router for tests and embedding.
func (server *BusWebServer) Handler() http.Handler {
	return server.router
}

func (server *BusWebServer) startHosting() {
	err := server.server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		log.Fatalf("server error: %v", err)
	}
}

func (server *BusWebServer) Serve(ctx context.Context) {
	log.Printf("listening on %s", server.server.Addr)

	go server.startHosting()
	<-ctx.Done()

	log.Println("Shutting down.")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	server.server.Shutdown(shutdownCtx)
}

// Close drops every session and stops the session sweeper.
func (server *BusWebServer) Close() {
	server.sessions.Close()
}
