package main

import (
	"net/http"
	"time"

	"github.com/invoza/webapp/internal/api"
	"github.com/invoza/webapp/internal/config"
	"github.com/invoza/webapp/internal/handlers"
	"github.com/invoza/webapp/internal/middleware"
	"github.com/invoza/webapp/internal/view"
)

// App is the main application handler that sets up all routes.
type App struct {
	mux     *http.ServeMux
	cfg     *config.Config
	handler http.Handler
}

// NewApp wires the upstream API clients, handlers and middleware chain.
func NewApp(cfg *config.Config) (*App, error) {
	timeout := time.Duration(cfg.API.Timeout) * time.Second
	businessAPI, err := api.New(api.KindBusiness, cfg.API.BaseURL, timeout)
	if err != nil {
		return nil, err
	}
	clientAPI, err := api.New(api.KindClient, cfg.API.BaseURL, timeout)
	if err != nil {
		return nil, err
	}

	app := &App{
		mux: http.NewServeMux(),
		cfg: cfg,
	}

	bh := handlers.NewDirectoryHandler(businessAPI)
	ch := handlers.NewDirectoryHandler(clientAPI)
	sel := handlers.NewSelectorHandler(businessAPI, clientAPI)
	pv := handlers.NewPreviewHandler()
	metrics := middleware.NewHTTPMetrics("invoice-web")

	app.setupRoutes(bh, ch, sel, pv, metrics)

	// Global middleware: request IDs, metrics/access log, then identity.
	app.handler = middleware.RequestID(metrics.Middleware(middleware.Identity(app.mux)))
	return app, nil
}

// ServeHTTP implements http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.handler.ServeHTTP(w, r)
}

// setupRoutes configures all application routes.
func (a *App) setupRoutes(bh, ch *handlers.DirectoryHandler, sel *handlers.SelectorHandler, pv *handlers.PreviewHandler, metrics *middleware.HTTPMetrics) {
	a.mux.HandleFunc("GET /{$}", a.home)
	a.mux.HandleFunc("GET /healthz", handlers.Healthz)
	a.mux.Handle("GET /metrics", metrics.Handler())

	// Directory pages. Literal segments win over {id}, so bulk-delete and
	// selection stay reachable.
	for path, h := range map[string]*handlers.DirectoryHandler{
		"/businesses": bh,
		"/clients":    ch,
	} {
		a.mux.HandleFunc("GET "+path, h.List)
		a.mux.HandleFunc("POST "+path, h.Create)
		a.mux.HandleFunc("POST "+path+"/selection", h.Selection)
		a.mux.HandleFunc("POST "+path+"/bulk-delete", h.BulkDelete)
		a.mux.HandleFunc("POST "+path+"/{id}", h.Update)
		a.mux.HandleFunc("POST "+path+"/{id}/delete", h.Delete)
	}

	// Invoice composing: selector feeds and the live preview sidebar.
	a.mux.HandleFunc("GET /selector/{kind}", sel.Feed)
	a.mux.HandleFunc("GET /invoices/new", pv.Compose)
	a.mux.HandleFunc("POST /invoices/preview", pv.Totals)
	a.mux.HandleFunc("POST /invoices/preview.pdf", pv.PDF)

	a.mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir("static"))))
}

func (a *App) home(w http.ResponseWriter, r *http.Request) {
	_, loggedIn := middleware.UserIDFromContext(r.Context())
	data := map[string]any{
		"IsLoggedIn": loggedIn,
	}
	if err := view.Render(w, r, "index.html", data); err != nil {
		http.Error(w, "Failed to render template: "+err.Error(), http.StatusInternalServerError)
	}
}
