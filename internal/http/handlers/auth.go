package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"server/internal/middleware"
)

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

type profileResponse struct {
	ID           string     `json:"id"`
	Username     string     `json:"username"`
	VIPTierID    *int       `json:"vip_tier_id,omitempty"`
	VIPExpiresAt *time.Time `json:"vip_expires_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

func (a *App) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, r, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}

	user, err := a.Auth.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		a.fail(w, r, err)
		return
	}

	a.Logger.Info().
		Str("user_id", user.ID).
		Str("country", middleware.CountryFromContext(r.Context())).
		Msg("user registered")
	a.json(w, http.StatusCreated, profileResponse{
		ID:        user.ID,
		Username:  user.Username,
		CreatedAt: user.CreatedAt,
	})
}

func (a *App) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, r, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}

	token, user, err := a.Auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		a.fail(w, r, err)
		return
	}

	a.Logger.Info().
		Str("user_id", user.ID).
		Str("country", middleware.CountryFromContext(r.Context())).
		Msg("user logged in")
	a.json(w, http.StatusOK, loginResponse{Token: token, Username: user.Username})
}

func (a *App) Me(w http.ResponseWriter, r *http.Request) {
	user, err := a.Users.GetByID(r.Context(), a.currentUserID(r))
	if err != nil {
		a.fail(w, r, err)
		return
	}

	a.json(w, http.StatusOK, profileResponse{
		ID:           user.ID,
		Username:     user.Username,
		VIPTierID:    user.VIPTierID,
		VIPExpiresAt: user.VIPExpiresAt,
		CreatedAt:    user.CreatedAt,
	})
}
