package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/playperu/quizdesk/internal/workspace"
)

type ctxKey int

const (
	ctxKeyWorkspace ctxKey = iota
)

const workspaceCookieName = "quiz_workspace"

// workspaceMiddleware resolves the caller's workspace from its cookie,
// creating a fresh one (with an empty catalog) when the cookie is missing or
// the workspace was evicted.
func workspaceMiddleware(logger *slog.Logger, workspaces *workspace.Registry) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var (
				ws  *workspace.Workspace
				err error
			)
			if cookie, cerr := r.Cookie(workspaceCookieName); cerr == nil && cookie.Value != "" {
				ws, err = workspaces.Get(cookie.Value)
			} else {
				err = workspace.ErrNotFound
			}

			if errors.Is(err, workspace.ErrNotFound) {
				ws, err = workspaces.Create()
				if err == nil {
					http.SetCookie(w, &http.Cookie{
						Name:     workspaceCookieName,
						Value:    ws.ID,
						Path:     "/",
						HttpOnly: true,
						SameSite: http.SameSiteLaxMode,
					})
				}
			}
			if err != nil {
				logger.Error("resolving workspace", "error", err)
				writeError(w, http.StatusServiceUnavailable, "service unavailable")
				return
			}

			ctx := context.WithValue(r.Context(), ctxKeyWorkspace, ws)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func workspaceFrom(r *http.Request) *workspace.Workspace {
	return r.Context().Value(ctxKeyWorkspace).(*workspace.Workspace)
}
