package main

import (
	"log"
	"net/http"
	"os"

	"studybuddy_server/routes"
	"studybuddy_server/services"
	"studybuddy_server/socket"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

func main() {
	// Initialize DynamoDB client and service
	log.Println("Initializing DynamoDB client...")
	dynamoClient := services.InitializeDynamoDBClient()
	dynamoService := &services.DynamoService{Client: dynamoClient}
	log.Println("DynamoDB client initialized.")

	// Realtime notification channel
	socketServer := socket.NewSocketServer()
	notifier := socket.NewNotifier(socketServer)

	// Initialize Services
	userProfileService := &services.UserProfileService{Dynamo: dynamoService}
	chatService := &services.ChatService{Dynamo: dynamoService, Notify: notifier}
	matchStore := services.NewDynamoMatchStore(dynamoService)
	matchService := services.NewMatchService(matchStore, userProfileService, notifier)

	// Local file relay for avatar uploads
	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "uploads"
	}
	baseURL := os.Getenv("PUBLIC_BASE_URL")
	uploadService, err := services.NewUploadService(uploadDir, baseURL)
	if err != nil {
		log.Fatalf("Failed to initialize upload service: %v", err)
	}

	// Set up the server port
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Using server port: %s\n", port)

	// Initialize the router
	r := mux.NewRouter()
	r.Handle("/socket.io/", socketServer)

	// Register routes
	routes.RegisterRoutes(r)
	routes.RegisterMatchRoutes(r, matchService)
	routes.RegisterUserProfileRoutes(r, userProfileService)
	routes.RegisterChatRoutes(r, chatService)
	routes.RegisterUploadRoutes(r, uploadService)

	// S3 presigned URLs are optional; skip when no bucket is configured.
	if bucket := os.Getenv("S3_BUCKET_NAME"); bucket != "" {
		s3Service, err := services.NewS3Service(os.Getenv("AWS_REGION"), bucket)
		if err != nil {
			log.Fatalf("Failed to initialize S3 service: %v", err)
		}
		routes.RegisterS3Routes(r, s3Service)
	}

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
