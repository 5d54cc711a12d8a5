// Package http implements the dashboard server: it fetches the bill
// collection from the bills backend, derives views through the engine and
// renders HTML partials.
package http

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"bollette/internal/bills"
	"bollette/internal/cache"
	"bollette/internal/core"
	"bollette/internal/engine"
	"bollette/internal/metrics"
	"bollette/internal/middleware/ratelimit"
	"bollette/internal/middleware/security"
	"bollette/internal/middleware/trace"
	"bollette/internal/storage"
	appweb "bollette/web"
)

const billsCacheKey = "bills"

// Options carries the presentation configuration injected at construction
// time, so nothing in here reads ambient state.
type Options struct {
	UserID          string
	DefaultCurrency string
	CacheTTL        time.Duration
	CacheSize       int
	Metrics         *metrics.Metrics
}

type Server struct {
	http.Server
	templates *template.Template
	store     bills.Store
	prefs     *storage.PreferenceStore
	opts      Options

	rateLimiter *ratelimit.Limiter

	// Cached post-correction collection; fetchGen guards against a stale
	// fetch response overwriting newer state after a mutation.
	billsCache *cache.LRUCache[[]core.Bill]
	fetchGen   atomic.Uint64

	shutdownOnce sync.Once
}

// NewServer configures routes and templates, returning a ready-to-run server.
func NewServer(addr string, store bills.Store, prefs *storage.PreferenceStore, opts Options) *Server {
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = 2 * time.Minute
	}
	if opts.CacheSize <= 0 {
		opts.CacheSize = 50
	}
	if opts.DefaultCurrency == "" {
		opts.DefaultCurrency = "EUR"
	}
	if opts.UserID == "" {
		opts.UserID = "default"
	}

	mux := http.NewServeMux()

	s := &Server{
		store:       store,
		prefs:       prefs,
		opts:        opts,
		rateLimiter: ratelimit.NewLimiter(ratelimit.DefaultConfig()),
		billsCache:  cache.NewLRUCache[[]core.Bill](opts.CacheSize, opts.CacheTTL),
	}

	// Parse embedded templates at startup.
	t, err := template.ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		slog.Warn("Failed parsing templates", "error", err)
	}
	s.templates = t

	// Static assets (served from embedded FS)
	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		mux.Handle("GET /static/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", "public, max-age=3600, immutable")
			static.ServeHTTP(w, r)
		}))
	} else {
		slog.Warn("Failed to mount embedded static FS", "error", err)
	}

	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", handleReady)
	if opts.Metrics != nil {
		mux.Handle("GET /metrics", opts.Metrics.Handler())
	}

	// UI partials
	mux.HandleFunc("GET /ui/bills", s.handleBillsPartial)
	mux.HandleFunc("GET /ui/stats", s.handleStatsPartial)

	// Mutations, rate limited per client
	mux.HandleFunc("POST /bills", s.rateLimited(s.handleCreateBill))
	mux.HandleFunc("POST /bills/{id}", s.rateLimited(s.handleUpdateBill))
	mux.HandleFunc("POST /bills/{id}/delete", s.rateLimited(s.handleDeleteBill))
	mux.HandleFunc("POST /bills/{id}/pay", s.rateLimited(s.handleMarkPaid))

	// Preferences
	mux.HandleFunc("GET /prefs/currency", s.handleGetCurrency)
	mux.HandleFunc("POST /prefs/currency", s.rateLimited(s.handleSetCurrency))

	tracer := trace.NewMiddleware(security.ClientIP, opts.Metrics)
	s.Server = http.Server{
		Addr:    addr,
		Handler: tracer.Middleware(security.Headers(mux)),
	}

	return s
}

// rateLimited rejects clients above the per-minute budget for mutations.
func (s *Server) rateLimited(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clientIP := security.ClientIP(r)
		if !s.rateLimiter.Allow(clientIP) {
			slog.WarnContext(r.Context(), "Rate limit exceeded",
				"client_ip", clientIP, "method", r.Method, "path", r.URL.Path)
			w.Header().Set("Retry-After", "60")
			http.Error(w, "Rate limit exceeded. Please try again later.", http.StatusTooManyRequests)
			return
		}
		next(w, r)
	}
}

// Cache registers the bills cache with a cleanup manager.
func (s *Server) Cache() cache.Cleaner {
	return s.billsCache
}

// Shutdown gracefully shuts down the server and its helpers.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		if s.rateLimiter != nil {
			s.rateLimiter.Stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

// fetchBills returns the post-correction collection, served from cache when
// fresh. The generation counter makes sure a response from before the most
// recent mutation is discarded instead of cached.
func (s *Server) fetchBills(ctx context.Context, today core.Date) ([]core.Bill, error) {
	if items, found := s.billsCache.Get(billsCacheKey); found {
		// Re-run the correction in case a day boundary passed while cached.
		corrected, changed := engine.ApplyOverdueCorrection(items, today)
		if changed {
			s.billsCache.Set(billsCacheKey, corrected)
		}
		return corrected, nil
	}

	gen := s.fetchGen.Load()

	cctx, cancel := context.WithTimeout(ctx, 7*time.Second)
	defer cancel()
	items, err := s.store.ListBills(cctx)
	if err != nil {
		return nil, fmt.Errorf("list bills: %w", err)
	}

	// The correction is a local display concern; it is never written back
	// to the backend.
	corrected, changed := engine.ApplyOverdueCorrection(items, today)
	if changed {
		slog.DebugContext(ctx, "Overdue correction applied", "count", len(corrected))
	}

	if s.fetchGen.Load() == gen {
		s.billsCache.Set(billsCacheKey, corrected)
	} else {
		slog.DebugContext(ctx, "Discarding stale bills response", "generation", gen)
	}
	return corrected, nil
}

// invalidateBills drops the cached collection after a confirmed mutation.
func (s *Server) invalidateBills() {
	s.fetchGen.Add(1)
	s.billsCache.Delete(billsCacheKey)
}

// currency resolves the display currency: stored preference, then default.
func (s *Server) currency(ctx context.Context) string {
	if s.prefs == nil {
		return s.opts.DefaultCurrency
	}
	code, ok, err := s.prefs.GetCurrency(ctx, s.opts.UserID)
	if err != nil {
		slog.ErrorContext(ctx, "Currency preference read failed", "error", err, "user_id", s.opts.UserID)
		return s.opts.DefaultCurrency
	}
	if !ok {
		return s.opts.DefaultCurrency
	}
	return code
}

// apiErrorResponse maps a bills backend failure onto the right partial.
// Authorization failures are surfaced distinctly from generic ones.
func apiErrorResponse(err error) *HTMXResponseBuilder {
	switch {
	case errors.Is(err, bills.ErrUnauthorized):
		return ErrorResponse(http.StatusUnauthorized, "Not authorized: check your API credentials")
	case errors.Is(err, bills.ErrNotFound):
		return ErrorResponse(http.StatusNotFound, "This bill no longer exists")
	default:
		return ErrorResponse(http.StatusBadGateway, "The bills service is unavailable, try again")
	}
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if s.templates == nil {
		slog.ErrorContext(r.Context(), "Templates not loaded", "path", r.URL.Path)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	type categoryOption struct {
		Value string
		Label string
	}
	data := struct {
		Today      string
		Currency   string
		Categories []categoryOption
		Statuses   []string
		Currencies []string
	}{
		Today:    core.DateOf(time.Now()).String(),
		Currency: s.currency(r.Context()),
		Statuses: []string{string(core.StatusPending), string(core.StatusPaid), string(core.StatusOverdue)},
	}
	for _, c := range core.Categories() {
		data.Categories = append(data.Categories, categoryOption{Value: string(c), Label: c.Label()})
	}
	data.Currencies = supportedCurrencies()

	if err := s.templates.ExecuteTemplate(w, "index.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Index template execution failed", "error", err, "template", "index.html")
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
