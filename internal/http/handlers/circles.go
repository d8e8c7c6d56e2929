package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

type createCircleRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	IsPrivate   bool   `json:"is_private"`
}

type circleResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	IsPrivate   bool      `json:"is_private"`
	CreatedAt   time.Time `json:"created_at"`
}

type inviteRequest struct {
	UserID string `json:"user_id"`
}

type createPostRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func (a *App) ListCircles(w http.ResponseWriter, r *http.Request) {
	summaries, err := a.Circles.Visible(r.Context(), a.currentUserID(r))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, summaries)
}

func (a *App) CreateCircle(w http.ResponseWriter, r *http.Request) {
	var req createCircleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, r, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}

	circle, err := a.Circles.Create(r.Context(), a.currentUserID(r), req.Name, req.Description, req.IsPrivate)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusCreated, circleResponse{
		ID:          circle.ID,
		Name:        circle.Name,
		Description: circle.Description,
		IsPrivate:   circle.IsPrivate,
		CreatedAt:   circle.CreatedAt,
	})
}

func (a *App) InviteToCircle(w http.ResponseWriter, r *http.Request) {
	var req inviteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, r, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}

	err := a.Circles.Invite(r.Context(), chi.URLParam(r, "circleID"), a.currentUserID(r), req.UserID)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *App) ListCirclePosts(w http.ResponseWriter, r *http.Request) {
	posts, err := a.Circles.Posts(r.Context(), chi.URLParam(r, "circleID"), a.currentUserID(r))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, posts)
}

func (a *App) CreateCirclePost(w http.ResponseWriter, r *http.Request) {
	var req createPostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, r, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}

	post, err := a.Circles.CreatePost(r.Context(), chi.URLParam(r, "circleID"), a.currentUserID(r), req.Title, req.Content)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusCreated, map[string]string{"post_id": post.ID})
}
