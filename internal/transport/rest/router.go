package rest

import (
	"credable/internal/service"
	"credable/internal/transport/rest/handler"
	"credable/internal/transport/rest/middleware"
	"credable/internal/transport/ws"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// Container holds all dependencies for the router
type Container struct {
	DemoService    *service.DemoService
	ChatService    *service.ChatService
	BrainService   *service.BrainService
	AllowedOrigins string
	TrustedProxies *middleware.TrustedProxies
	Logger         *zap.Logger
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	decisionHandler := handler.NewDecisionHandler(c.DemoService)
	chatHandler := handler.NewChatHandler(c.ChatService, c.TrustedProxies)
	brainHandler := handler.NewBrainHandler(c.BrainService)
	wsHandler := ws.NewHandler(c.DemoService, c.AllowedOrigins, c.Logger)

	// CORS middleware (apply first)
	r.Use(corsMiddleware(c.AllowedOrigins))
	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog(c.Logger, c.TrustedProxies))

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	// Subrouters answer 404 on a method mismatch unless told otherwise
	r.MethodNotAllowedHandler = http.HandlerFunc(handler.MethodNotAllowed)
	v1.MethodNotAllowedHandler = http.HandlerFunc(handler.MethodNotAllowed)

	v1.HandleFunc("/decisions", decisionHandler.Evaluate).Methods("POST", "OPTIONS")
	v1.HandleFunc("/decisions/preview", decisionHandler.Preview).Methods("GET", "OPTIONS")
	v1.HandleFunc("/chat", chatHandler.Send).Methods("POST", "OPTIONS")
	v1.HandleFunc("/brain/layout", brainHandler.Layout).Methods("GET", "OPTIONS")
	v1.HandleFunc("/brain/tour", brainHandler.Tour).Methods("GET", "OPTIONS")

	// WebSocket routes
	v1.HandleFunc("/ws/demo", wsHandler.DemoWS).Methods("GET")

	return r
}

func corsMiddleware(allowedOrigins string) mux.MiddlewareFunc {
	if allowedOrigins == "" {
		allowedOrigins = "*"
	}

	allowedMethods := os.Getenv("CORS_ALLOWED_METHODS")
	if allowedMethods == "" {
		allowedMethods = "GET, POST, OPTIONS"
	}

	allowedHeaders := os.Getenv("CORS_ALLOWED_HEADERS")
	if allowedHeaders == "" {
		allowedHeaders = "Content-Type, X-Request-ID"
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
			w.Header().Set("Access-Control-Allow-Methods", allowedMethods)
			w.Header().Set("Access-Control-Allow-Headers", allowedHeaders)

			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
