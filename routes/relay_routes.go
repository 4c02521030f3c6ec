package routes

import (
	"anonrelay_server/controllers"
	"anonrelay_server/services"

	"github.com/gorilla/mux"
)

// RegisterRelayRoutes sets up routes for relay operations under /api/relay
func RegisterRelayRoutes(r *mux.Router, linkService *services.LinkService, users services.UserRegistry) {
	// Initialize the controller with the provided services
	controller := controllers.NewRelayController(linkService, users)

	// Create a subrouter for /api/relay
	relayRouter := r.PathPrefix("/api/relay").Subrouter()

	// Define routes and their corresponding handlers
	relayRouter.HandleFunc("/link", controller.HandleIssueLink).Methods("GET")
	relayRouter.HandleFunc("/stats", controller.HandleStats).Methods("GET")
}
