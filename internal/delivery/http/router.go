package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"meetlink/internal/delivery/http/controllers"
)

// Middleware wraps a handler, e.g. to require or optionally resolve authentication.
type Middleware func(http.HandlerFunc) http.HandlerFunc

// NewRouter initializes the HTTP router with all application routes.
func NewRouter(
	eventController *controllers.EventController,
	registrationController *controllers.RegistrationController,
	directoryController *controllers.DirectoryController,
	connectionController *controllers.ConnectionController,
	authController *controllers.AuthController,
	requireAuth Middleware,
	optionalAuth Middleware,
) *http.ServeMux {
	mux := http.NewServeMux()

	// Events
	mux.HandleFunc("POST /events", requireAuth(eventController.CreateEvent))
	mux.HandleFunc("GET /events/{slug}", eventController.GetEvent)

	// Registration workflow
	mux.HandleFunc("GET /events/{slug}/participation", optionalAuth(registrationController.CheckParticipation))
	mux.HandleFunc("POST /events/{slug}/join", requireAuth(registrationController.Join))

	// Directory
	mux.HandleFunc("GET /events/{slug}/directory", optionalAuth(directoryController.GetDirectory))

	// Connections
	mux.HandleFunc("POST /events/{slug}/connections", requireAuth(connectionController.CreateConnection))
	mux.HandleFunc("GET /me/connections", requireAuth(connectionController.ListMyConnections))

	// Auth
	mux.HandleFunc("GET /auth/login", authController.Login)
	mux.HandleFunc("GET /auth/callback", authController.Callback)

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
