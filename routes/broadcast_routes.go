package routes

import (
	"anonrelay_server/controllers"
	"anonrelay_server/services"

	"github.com/gorilla/mux"
)

// RegisterBroadcastRoutes sets up the admin broadcast route under /api/broadcast
func RegisterBroadcastRoutes(r *mux.Router, broadcastService *services.BroadcastService) {
	controller := controllers.NewBroadcastController(broadcastService)

	r.HandleFunc("/api/broadcast", controller.HandleBroadcast).Methods("POST")
}
