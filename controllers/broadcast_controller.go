package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"anonrelay_server/models"
	"anonrelay_server/services"
)

// BroadcastController triggers admin fan-out over HTTP.
type BroadcastController struct {
	Broadcast *services.BroadcastService
}

// NewBroadcastController initializes the broadcast controller
func NewBroadcastController(broadcast *services.BroadcastService) *BroadcastController {
	return &BroadcastController{Broadcast: broadcast}
}

// HandleBroadcast - fans a message out to every registered user
func (c *BroadcastController) HandleBroadcast(w http.ResponseWriter, r *http.Request) {
	var request struct {
		AdminHandle int64  `json:"adminHandle"`
		Text        string `json:"text"`
	}

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}

	report, err := c.Broadcast.Broadcast(context.TODO(), models.Handle(request.AdminHandle), request.Text)
	switch {
	case errors.Is(err, services.ErrUnauthorized):
		http.Error(w, `{"error": "Forbidden"}`, http.StatusForbidden)
		return
	case errors.Is(err, services.ErrEmptyBroadcast):
		http.Error(w, `{"error": "text is required"}`, http.StatusBadRequest)
		return
	case err != nil:
		log.Printf("❌ Broadcast failed: %v", err)
		http.Error(w, `{"error": "Broadcast failed"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(report)
}
