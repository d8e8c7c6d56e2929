package handlers

import (
	"encoding/json"
	"net/http"
)

type friendRequestRequest struct {
	FriendID string `json:"friend_id"`
}

type friendRespondRequest struct {
	RequestID string `json:"request_id"`
	Response  string `json:"response"` // accept or reject
}

func (a *App) SearchUsers(w http.ResponseWriter, r *http.Request) {
	results, err := a.Friends.Search(r.Context(), a.currentUserID(r), r.URL.Query().Get("query"))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, results)
}

func (a *App) SendFriendRequest(w http.ResponseWriter, r *http.Request) {
	var req friendRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, r, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}

	id, err := a.Friends.Request(r.Context(), a.currentUserID(r), req.FriendID)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusCreated, map[string]string{"request_id": id})
}

func (a *App) ListFriendRequests(w http.ResponseWriter, r *http.Request) {
	requests, err := a.Friends.PendingRequests(r.Context(), a.currentUserID(r))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, requests)
}

func (a *App) RespondFriendRequest(w http.ResponseWriter, r *http.Request) {
	var req friendRespondRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, r, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if req.Response != "accept" && req.Response != "reject" {
		a.error(w, r, http.StatusBadRequest, "bad_request", "response must be accept or reject")
		return
	}

	err := a.Friends.Respond(r.Context(), a.currentUserID(r), req.RequestID, req.Response == "accept")
	if err != nil {
		a.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *App) ListFriends(w http.ResponseWriter, r *http.Request) {
	friends, err := a.Friends.Friends(r.Context(), a.currentUserID(r))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, friends)
}
