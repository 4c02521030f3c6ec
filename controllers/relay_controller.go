package controllers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"anonrelay_server/models"
	"anonrelay_server/services"
)

// RelayController exposes the ops-facing relay endpoints: link issuance and
// registry stats.
type RelayController struct {
	LinkService *services.LinkService
	Users       services.UserRegistry
}

// NewRelayController initializes the relay controller
func NewRelayController(linkService *services.LinkService, users services.UserRegistry) *RelayController {
	return &RelayController{LinkService: linkService, Users: users}
}

// HandleIssueLink - builds the shareable link for a handle
func (c *RelayController) HandleIssueLink(w http.ResponseWriter, r *http.Request) {
	handleStr := r.URL.Query().Get("handle")
	if handleStr == "" {
		http.Error(w, `{"error": "handle is required"}`, http.StatusBadRequest)
		return
	}

	handle, err := strconv.ParseInt(handleStr, 10, 64)
	if err != nil || handle < 0 {
		http.Error(w, `{"error": "handle must be a non-negative integer"}`, http.StatusBadRequest)
		return
	}

	link, err := c.LinkService.IssueLink(context.TODO(), models.Handle(handle))
	if err != nil {
		log.Printf("❌ Failed to issue link for %d: %v", handle, err)
		http.Error(w, `{"error": "Failed to issue link"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"handle": handle,
		"link":   link,
	})
}

// HandleStats - reports the registered-user count
func (c *RelayController) HandleStats(w http.ResponseWriter, r *http.Request) {
	users, err := c.Users.ListUsers(context.TODO())
	if err != nil {
		log.Printf("❌ Failed to list users: %v", err)
		http.Error(w, `{"error": "Failed to fetch stats"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]int{"registeredUsers": len(users)})
}
