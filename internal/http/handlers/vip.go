package handlers

import (
	"encoding/json"
	"net/http"
)

type purchaseRequest struct {
	LevelID int `json:"level_id"`
}

func (a *App) ListVIPTiers(w http.ResponseWriter, r *http.Request) {
	tiers, err := a.VIP.Tiers(r.Context())
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, tiers)
}

// PurchaseVIP assigns the tier to the caller. Payment settlement is an
// upstream concern and is assumed to have succeeded.
func (a *App) PurchaseVIP(w http.ResponseWriter, r *http.Request) {
	var req purchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, r, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}

	entitlement, err := a.VIP.Purchase(r.Context(), a.currentUserID(r), req.LevelID)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, entitlement)
}
