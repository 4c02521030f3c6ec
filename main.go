package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"

	"anonrelay_server/models"
	"anonrelay_server/routes"
	"anonrelay_server/services"
	"anonrelay_server/socket"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

func main() {
	// Initialize DynamoDB client and service
	log.Println("Initializing DynamoDB client...")
	dynamoClient := services.InitializeDynamoDBClient()
	dynamoService := &services.DynamoService{Client: dynamoClient}
	log.Println("DynamoDB client initialized.")

	// Durable stores
	replyIndex := &services.ReplyIndexService{Dynamo: dynamoService}
	registry := &services.UserRegistryService{Dynamo: dynamoService}

	// Volatile session binding table
	sessions, err := services.NewSessionService(sessionCacheSize())
	if err != nil {
		log.Fatalf("Failed to initialize session cache: %v", err)
	}

	// Transport and relay core
	transport := socket.NewTransport(publicName())
	linkService := &services.LinkService{Transport: transport}
	broadcastService := &services.BroadcastService{
		Transport: transport,
		Users:     registry,
		Admins:    adminAllowList(),
		Pace:      services.DefaultBroadcastPace,
	}
	relayService := &services.RelayService{
		Transport:   transport,
		Replies:     replyIndex,
		Users:       registry,
		Sessions:    sessions,
		Links:       linkService,
		Broadcaster: broadcastService,
	}

	sockServer := transport.Attach(relayService)
	go func() {
		if err := sockServer.Serve(); err != nil {
			log.Fatalf("Socket server error: %v", err)
		}
	}()

	// Set up the server port
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Using server port: %s\n", port)

	// Initialize the router
	r := mux.NewRouter()

	// Register a welcome route
	r.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "Welcome to AnonRelay")
	}).Methods("GET")

	// Register a health check endpoint
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		response := map[string]string{"status": "healthy"}
		json.NewEncoder(w).Encode(response)
	}).Methods("GET")

	// Mount the socket transport
	r.Handle("/socket.io/", sockServer)

	// Register routes
	routes.RegisterRelayRoutes(r, linkService, registry)
	routes.RegisterBroadcastRoutes(r, broadcastService)

	// Add CORS middleware
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"}, // Adjust for specific domains if needed
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler(r)

	// Start the HTTP server
	log.Printf("Starting server on port %s...\n", port)
	log.Fatal(http.ListenAndServe(":"+port, corsHandler))
}

// publicName is the identifier shareable links are built from.
func publicName() string {
	if name := os.Getenv("PUBLIC_NAME"); name != "" {
		return name
	}
	return "anonrelay.local"
}

// sessionCacheSize bounds the in-memory binding table.
func sessionCacheSize() int {
	raw := os.Getenv("SESSION_CACHE_SIZE")
	if raw == "" {
		return services.DefaultSessionCacheSize
	}
	size, err := strconv.Atoi(raw)
	if err != nil || size <= 0 {
		log.Printf("Invalid SESSION_CACHE_SIZE %q, using default\n", raw)
		return services.DefaultSessionCacheSize
	}
	return size
}

// adminAllowList parses ADMIN_IDS (comma-separated handles) into the
// broadcast allow-list.
func adminAllowList() map[models.Handle]struct{} {
	admins := make(map[models.Handle]struct{})
	for _, part := range strings.Split(os.Getenv("ADMIN_IDS"), ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			log.Printf("Skipping invalid admin id %q\n", part)
			continue
		}
		admins[models.Handle(id)] = struct{}{}
	}
	if len(admins) == 0 {
		log.Println("No admin handles configured; broadcast is disabled.")
	}
	return admins
}
