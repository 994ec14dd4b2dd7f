package server

import (
	"log/slog"
	"net/url"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/swaggest/swgui/v5emb"

	"github.com/playperu/quizdesk/internal/handler/health"
	"github.com/playperu/quizdesk/internal/workspace"
)

const (
	defaultMaxUploadBytes = 16 << 20
	defaultImportWorkers  = 4
)

func addRoutes(r chi.Router, logger *slog.Logger, workspaces *workspace.Registry, broker *Broker, opts Options) {
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = defaultMaxUploadBytes
	}
	if opts.ImportWorkers <= 0 {
		opts.ImportWorkers = defaultImportWorkers
	}

	checks := map[string]health.Checker{"workspaces": workspaces}
	for name, c := range opts.Checks {
		checks[name] = c
	}

	r.Get("/openapi.json", handleOpenAPI())
	r.Mount("/docs", v5emb.New("Quiz Desk API", "/openapi.json", "/docs"))
	r.Mount("/healthz", health.NewHandler(logger, checks).Routes())

	r.Route("/api", func(r chi.Router) {
		r.Use(workspaceMiddleware(logger, workspaces))

		r.Get("/sets", handleListSets())
		r.Post("/sets/import", handleImport(logger, broker, opts.MaxUploadBytes, opts.ImportWorkers))

		r.Route("/session", func(r chi.Router) {
			r.Get("/state", handleState())
			r.Get("/question", handleCurrentQuestion())
			r.Get("/results", handleResults())
			r.Get("/events", handleEvents(broker, opts.EventTick))
			r.Get("/ws", handleWS(logger, broker, originPatterns(opts.CORSOrigins)))

			r.Post("/select", handleIntent(broker, IntentSelect))
			r.Post("/start", handleIntent(broker, IntentStart))
			r.Post("/answer", handleIntent(broker, IntentAnswer))
			r.Post("/next", handleIntent(broker, IntentNext))
			r.Post("/previous", handleIntent(broker, IntentPrevious))
			r.Post("/finish", handleIntent(broker, IntentFinish))
			r.Post("/restart", handleIntent(broker, IntentRestart))
			r.Post("/home", handleIntent(broker, IntentHome))
		})
	})

	if opts.SPADir != "" {
		if info, err := os.Stat(opts.SPADir); err == nil && info.IsDir() {
			logger.Info("serving SPA", "dir", opts.SPADir)
			r.NotFound(handleSPA(opts.SPADir))
		}
	}
}

// originPatterns turns allowed CORS origins into WebSocket host patterns.
func originPatterns(origins []string) []string {
	var out []string
	for _, o := range origins {
		if o == "*" {
			out = append(out, "*")
			continue
		}
		if u, err := url.Parse(o); err == nil && u.Host != "" {
			out = append(out, u.Host)
		}
	}
	return out
}
