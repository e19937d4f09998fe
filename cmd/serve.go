package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/waylens/terminal/internal/fileindex"
	"github.com/waylens/terminal/internal/model"
	"github.com/waylens/terminal/internal/search"
)

// httpSearchLimit caps unbounded search responses served over the API.
const httpSearchLimit = 20

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the dataset and file index over HTTP",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		api := &apiServer{
			engine:    search.NewEngine(search.NewCache(cfg.Data.SnapshotPath)),
			indexPath: cfg.Data.FileIndexPath,
		}

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: api.routes(),
		}

		zap.L().Info("starting server", zap.Int("port", port))
		return runServer(ctx, srv)
	},
}

// shutdownTimeout bounds the in-flight request drain on shutdown.
const shutdownTimeout = 10 * time.Second

// runServer serves until the context is cancelled, then drains in-flight
// requests under a fresh timeout context; the signal context is already
// cancelled at that point and would abort the drain immediately.
func runServer(ctx context.Context, srv *http.Server) error {
	go func() {
		<-ctx.Done()
		zap.L().Info("shutting down server")
		drainCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(drainCtx); err != nil {
			zap.L().Warn("shutdown", zap.Error(err))
		}
	}()

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return eris.Wrap(err, "server listen")
	}
	return nil
}

// apiServer holds the read paths served over HTTP. The company engine
// caches its snapshot internally; the file index is cached here under
// the same invalidation.
type apiServer struct {
	engine    *search.Engine
	indexPath string

	mu      sync.Mutex
	fileIdx *model.FileIndexSnapshot
}

func (a *apiServer) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))
	r.Use(rateLimiter(rate.Limit(cfg.Server.RateLimit), cfg.Server.RateBurst))

	r.Get("/health", a.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/company-data", a.handleCompanyData)
		r.Post("/search", a.handleSearch)
		r.Post("/csv-search", a.handleCSVSearch)
		r.Get("/companies/{id}", a.handleCompany)
		r.Get("/stats", a.handleStats)
		r.Post("/reload", a.handleReload)
	})
	return r
}

// rateLimiter rejects requests beyond the configured global rate with 429.
func rateLimiter(limit rate.Limit, burst int) func(http.Handler) http.Handler {
	limiter := rate.NewLimiter(limit, burst)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (a *apiServer) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (a *apiServer) handleCompanyData(w http.ResponseWriter, _ *http.Request) {
	snap, err := a.engine.Snapshot()
	if err != nil {
		serverError(w, "company-data", err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (a *apiServer) handleSearch(w http.ResponseWriter, r *http.Request) {
	var filters model.SearchFilters
	if err := json.NewDecoder(r.Body).Decode(&filters); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	results, err := a.engine.Search(filters)
	if err != nil {
		serverError(w, "search", err)
		return
	}
	if len(results) > httpSearchLimit {
		results = results[:httpSearchLimit]
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"results": results,
		"count":   len(results),
	})
}

func (a *apiServer) handleCSVSearch(w http.ResponseWriter, r *http.Request) {
	var q model.FileSearchQuery
	if err := json.NewDecoder(r.Body).Decode(&q); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	idx, err := a.fileIndex()
	if err != nil {
		serverError(w, "csv-search", err)
		return
	}

	results := fileindex.Search(idx, q)
	writeJSON(w, http.StatusOK, map[string]any{
		"results": results,
		"count":   len(results),
	})
}

func (a *apiServer) handleCompany(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ent, err := a.engine.GetByID(id)
	if err != nil {
		serverError(w, "companies", err)
		return
	}
	if ent == nil {
		writeError(w, http.StatusNotFound, "company not found")
		return
	}
	writeJSON(w, http.StatusOK, ent)
}

func (a *apiServer) handleStats(w http.ResponseWriter, _ *http.Request) {
	stats, err := a.engine.Stats()
	if err != nil {
		serverError(w, "stats", err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (a *apiServer) handleReload(w http.ResponseWriter, _ *http.Request) {
	a.engine.Invalidate()
	a.mu.Lock()
	a.fileIdx = nil
	a.mu.Unlock()

	zap.L().Info("caches invalidated")
	writeJSON(w, http.StatusOK, map[string]string{"status": "reloaded"})
}

func (a *apiServer) fileIndex() (*model.FileIndexSnapshot, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.fileIdx != nil {
		return a.fileIdx, nil
	}
	idx, err := fileindex.LoadIndex(a.indexPath)
	if err != nil {
		return nil, err
	}
	a.fileIdx = idx
	return idx, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Error("write response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func serverError(w http.ResponseWriter, op string, err error) {
	zap.L().Error(op+" failed", zap.Error(err))
	writeError(w, http.StatusInternalServerError, "internal error")
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
