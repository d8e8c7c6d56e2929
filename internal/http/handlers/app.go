// Package handlers exposes the HTTP surface. Authorization decisions live in
// the services; handlers only decode requests, resolve the caller, and shape
// responses.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"server/internal/auth"
	"server/internal/circles"
	"server/internal/domain"
	"server/internal/friends"
	"server/internal/middleware"
	"server/internal/vip"
	"server/internal/ws"
)

// App is the handler container; everything it needs is injected.
type App struct {
	Logger  zerolog.Logger
	Auth    *auth.Service
	Friends *friends.Service
	VIP     *vip.Service
	Circles *circles.Service
	Users   domain.UserRepository
	Hub     *ws.Hub
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// error writes a JSON error body. An empty message falls back to the
// localized catalog entry for the code.
func (a *App) error(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	if message == "" {
		message = lookupMessage(code, middleware.LocaleFromContext(r.Context()))
	}
	a.json(w, status, errorResponse{Error: code, Message: message})
}

// fail maps a domain error to its HTTP status.
func (a *App) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		a.error(w, r, http.StatusBadRequest, "bad_request", "")
	case errors.Is(err, domain.ErrUnauthenticated):
		a.error(w, r, http.StatusUnauthorized, "unauthorized", "")
	case errors.Is(err, domain.ErrForbidden):
		a.error(w, r, http.StatusForbidden, "forbidden", "")
	case errors.Is(err, domain.ErrNotFound):
		a.error(w, r, http.StatusNotFound, "not_found", "")
	case errors.Is(err, domain.ErrConflict):
		a.error(w, r, http.StatusConflict, "conflict", "")
	default:
		a.Logger.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		a.error(w, r, http.StatusInternalServerError, "internal", "")
	}
}

func (a *App) currentUserID(r *http.Request) string {
	return middleware.UserIDFromContext(r.Context())
}

func (a *App) Health(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Realtime hands the connection to the broadcast hub. The channel does not
// require a token; upgrade failures are logged and the request ends there.
func (a *App) Realtime(w http.ResponseWriter, r *http.Request) {
	ws.Serve(a.Hub, a.Logger, w, r)
}
