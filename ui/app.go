package ui

import (
	"encoding/json"
	"net/http"
	"strconv"

	"listingdash/app"
	"listingdash/internal"
	"listingdash/ports"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// App is a lightweight chi front end over the same dashboard
type App struct {
	router *chi.Mux
	config Config
	*dashboard
}

// Config holds UI application configuration
type Config struct {
	Port string
}

// NewApp creates a new UI application
func NewApp(config Config, service *app.DashboardService, exporter ports.ViewExporter, logger *internal.Logger) (*App, error) {
	d, err := newDashboard(service, exporter, logger)
	if err != nil {
		return nil, err
	}
	if config.Port == "" {
		config.Port = "8080"
	}

	a := &App{router: chi.NewRouter(), config: config, dashboard: d}
	if err := a.setupMiddleware(); err != nil {
		return nil, err
	}
	a.setupRoutes()
	return a, nil
}

// setupMiddleware configures HTTP middleware
func (a *App) setupMiddleware() error {
	a.router.Use(middleware.RequestID)
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))

	staticFS, err := staticFileSystem()
	if err != nil {
		return err
	}
	a.router.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(staticFS)))
	return nil
}

func (a *App) setupRoutes() {
	a.router.Get(indexPath, a.handleIndex)
	a.router.Get(pagePath, a.handlePage)
	a.router.Get(exportPath, a.handleExport)
	a.router.Get(healthPath, a.handleHealth)
}

// Handler exposes the router, mainly for tests
func (a *App) Handler() http.Handler {
	return a.router
}

// Start starts the HTTP server
func (a *App) Start() error {
	addr := ":" + a.config.Port
	a.logger.Info("Starting dashboard UI server on %s", addr)
	return http.ListenAndServe(addr, a.router)
}

func (a *App) handleIndex(w http.ResponseWriter, r *http.Request) {
	page, err := a.page(r.Context(), r.URL.Query())
	if err != nil {
		status, resp := a.failure(err)
		a.renderError(w, status, resp.Error)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := a.writePage(w, page); err != nil {
		a.logger.Error("template error: %v", err)
		a.renderError(w, http.StatusInternalServerError, "internal error")
	}
}

func (a *App) handlePage(w http.ResponseWriter, r *http.Request) {
	page, err := a.page(r.Context(), r.URL.Query())
	if err != nil {
		status, resp := a.failure(err)
		writeJSON(w, status, resp)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (a *App) handleExport(w http.ResponseWriter, r *http.Request) {
	view, err := a.view(r.Context(), r.URL.Query())
	if err != nil {
		status, resp := a.failure(err)
		writeJSON(w, status, resp)
		return
	}

	workbook, err := a.export(view)
	if err != nil {
		status, resp := a.failure(err)
		writeJSON(w, status, resp)
		return
	}

	w.Header().Set("Content-Type", a.exporter.ContentType())
	w.Header().Set("Content-Disposition", `attachment; filename="`+a.attachmentName()+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(workbook.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := workbook.WriteTo(w); err != nil {
		a.logger.Warn("export write failed: %v", err)
	}
}

func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (a *App) renderError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := a.writeErrorPage(w, status, message); err != nil {
		a.logger.Error("template error: %v", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		internal.DefaultLogger.Error("failed to encode response: %v", err)
	}
}
