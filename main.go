package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"kanban-project/microservices/board-service/handlers"
	"kanban-project/microservices/board-service/logging"
	"kanban-project/microservices/board-service/middleware"
	"kanban-project/microservices/board-service/services"
	"kanban-project/microservices/board-service/utils"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/sony/gobreaker"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// requireEnv returns the value of a required environment variable, fatal at
// startup when it is missing so misconfiguration never surfaces later as an
// opaque connection failure.
func requireEnv(name string) string {
	value := os.Getenv(name)
	if value == "" {
		logging.Logger.Fatalf("Event ID: CONFIG_ERROR, Description: %s is not set in the environment variables.", name)
	}
	return value
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, Role, User-ID")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func main() {
	logging.InitLogger()

	logging.Logger.Info("Event ID: SERVICE_START, Description: Starting Board Service...")
	if err := godotenv.Load(".env"); err != nil {
		logging.Logger.Warnf("Event ID: ENV_LOAD_ERROR, Description: Error loading .env file: %v", err)
	}

	mongoURI := requireEnv("MONGO_URI")
	mongoDBName := requireEnv("MONGO_DB_NAME")
	mongoCollectionName := requireEnv("MONGO_COLLECTION")
	serverPort := requireEnv("SERVER_PORT")
	requireEnv("JWT_SECRET")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	boardsClient, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		logging.Logger.Fatalf("Event ID: DB_CONNECTION_FAILED, Description: Database connection for MongoDB failed: %v", err)
	}
	defer boardsClient.Disconnect(ctx)

	if err := boardsClient.Ping(ctx, nil); err != nil {
		logging.Logger.Fatalf("Event ID: DB_PING_FAILED, Description: MongoDB connection ping error: %v", err)
	}
	logging.Logger.Infof("Event ID: DB_CONNECTED, Description: Successfully connected to MongoDB at %s.", mongoURI)

	boardsCollection := boardsClient.Database(mongoDBName).Collection(mongoCollectionName)
	logging.Logger.Infof("Event ID: DB_COLLECTION_SET, Description: Using MongoDB collection: %s/%s", mongoDBName, mongoCollectionName)

	notificationsBreaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "notifications-cb",
		MaxRequests: 1,
		Timeout:     5 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Logger.Infof("Event ID: CIRCUIT_BREAKER_STATE_CHANGE, Description: Circuit Breaker '%s' state changed from %s to %s", name, from.String(), to.String())
		},
	})

	notifier := services.NewNotifier(utils.NewHTTPClient(), notificationsBreaker, os.Getenv("NOTIFICATIONS_URL"))
	boardService := services.NewBoardService(boardsCollection, notifier)
	dragService := services.NewDragService(boardService)

	elapsedCache := services.NewElapsedCache()
	elapsedCache.Start()
	defer elapsedCache.Stop()

	boardHandler := handlers.NewBoardHandler(boardService, dragService, elapsedCache)

	r := mux.NewRouter()

	r.HandleFunc("/api/boards", boardHandler.CreateBoard).Methods(http.MethodPost)
	r.HandleFunc("/api/boards/{projectId}", boardHandler.GetBoard).Methods(http.MethodGet)
	r.HandleFunc("/api/boards/{projectId}/view", boardHandler.CloseBoard).Methods(http.MethodDelete)
	r.HandleFunc("/api/boards/{projectId}/columns", boardHandler.AddColumn).Methods(http.MethodPost)
	r.HandleFunc("/api/boards/{projectId}/columns/reorder", boardHandler.ReorderColumns).Methods(http.MethodPut)
	r.HandleFunc("/api/boards/{projectId}/tasks", boardHandler.CreateTask).Methods(http.MethodPost)
	r.HandleFunc("/api/boards/{projectId}/tasks/move", boardHandler.MoveTask).Methods(http.MethodPost)
	r.HandleFunc("/api/boards/{projectId}/tasks/{taskId}/timer/start", boardHandler.StartTimer).Methods(http.MethodPost)
	r.HandleFunc("/api/boards/{projectId}/tasks/{taskId}/timer/stop", boardHandler.StopTimer).Methods(http.MethodPost)
	r.HandleFunc("/api/boards/{projectId}/drag/begin", boardHandler.BeginDrag).Methods(http.MethodPost)
	r.HandleFunc("/api/boards/{projectId}/drag/hover", boardHandler.HoverDrag).Methods(http.MethodPost)
	r.HandleFunc("/api/boards/{projectId}/drag/drop", boardHandler.DropDrag).Methods(http.MethodPost)
	r.HandleFunc("/api/boards/{projectId}/drag/cancel", boardHandler.CancelDrag).Methods(http.MethodPost)

	corsRouter := enableCORS(middleware.JWTAuthMiddleware(r))

	serverAddress := fmt.Sprintf(":%s", serverPort)
	logging.Logger.Infof("Event ID: SERVER_START_INFO, Description: Server running on http://localhost%s", serverAddress)

	if err := http.ListenAndServe(serverAddress, corsRouter); err != nil {
		logging.Logger.Fatalf("Event ID: SERVER_FATAL_ERROR, Description: Server failed to start: %v", err)
	}
}
