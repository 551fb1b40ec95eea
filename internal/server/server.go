package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/quistberg/ladle/internal/game"
	"github.com/quistberg/ladle/internal/handler"
	"github.com/quistberg/ladle/internal/logger"
	"github.com/quistberg/ladle/internal/metrics"
	"github.com/quistberg/ladle/internal/persist"
)

// Server hosts the game API.
type Server struct {
	httpServer *http.Server
	manager    *game.Manager
}

// NewServer wires the router and middleware stack.
func NewServer(port int, apiKey string, manager *game.Manager, repo persist.Repository, pinger handler.Pinger) *Server {
	r := chi.NewRouter()

	// Chi middleware executes in definition order, outermost first.
	r.Use(SecurityHeadersMiddleware())
	r.Use(AuthMiddleware(apiKey))
	r.Use(RequestSizeLimitMiddleware(MaxRequestBodyBytes))
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(pinger))
	r.Get("/version", handler.HandleVersion())
	r.Handle("/metrics", promhttp.Handler())

	runHandlers := handler.NewRunHandlers(manager)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/recipes", handler.HandleGetRecipeBook(repo))
		r.Get("/runs/last", handler.HandleGetLastRun(repo))

		r.Post("/runs", runHandlers.HandleCreateRun)
		r.Route("/runs/{runID}", func(r chi.Router) {
			r.Get("/", runHandlers.HandleGetRun)
			r.Delete("/", runHandlers.HandleDeleteRun)

			r.Post("/withdraw", runHandlers.HandleWithdraw)
			r.Post("/select", runHandlers.HandleSelect)
			r.Post("/combine", runHandlers.HandleCombine)
			r.Post("/split", runHandlers.HandleSplit)
			r.Post("/amplify", runHandlers.HandleAmplify)
			r.Post("/mutate", runHandlers.HandleMutate)
			r.Post("/trash", runHandlers.HandleTrash)
			r.Post("/merchant/buy", runHandlers.HandleMerchantBuy)

			r.Post("/serve", runHandlers.HandleServe)
			r.Post("/taste", runHandlers.HandleTaste)
			r.Post("/feedback/select", runHandlers.HandlePaymentSelect)
			r.Post("/collect", runHandlers.HandleCollect)

			r.Post("/consumables/use", runHandlers.HandleUseConsumable)
			r.Post("/artifacts/choose", runHandlers.HandleChooseArtifact)
			r.Post("/artifacts/decline", runHandlers.HandleDeclineArtifacts)

			r.Post("/endless", runHandlers.HandleContinueEndless)
			r.Post("/finish", runHandlers.HandleFinish)
		})
	})

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		},
		manager: manager,
	}
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		if strings.HasPrefix(r.URL.Path, "/healthz") ||
			strings.HasPrefix(r.URL.Path, "/readyz") ||
			strings.HasPrefix(r.URL.Path, "/metrics") {
			next.ServeHTTP(w, r)
			return
		}

		requestID := logger.GenerateRequestID()
		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)

		log := logger.FromContext(ctx)
		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength)

		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds())
	})
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully and halts live games.
func (s *Server) Stop(ctx context.Context) error {
	s.manager.Shutdown()
	return s.httpServer.Shutdown(ctx)
}
