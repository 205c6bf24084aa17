package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/migillett/TranscodeTycoonGame/internal/api/handlers"
	"github.com/migillett/TranscodeTycoonGame/internal/api/middleware"
	"github.com/migillett/TranscodeTycoonGame/internal/telemetry"
)

// Router wraps mux.Router with the game's middleware and route table.
type Router struct {
	*mux.Router
	endpoint string
}

// NewRouter wires all handlers under the configured base path. Auth applies
// only to the routes that act on the caller's own account.
func NewRouter(
	userHandler *handlers.UserHandler,
	jobHandler *handlers.JobHandler,
	upgradeHandler *handlers.UpgradeHandler,
	auth middleware.Authenticator,
	endpoint string,
	version string,
) *Router {
	r := &Router{
		Router:   mux.NewRouter(),
		endpoint: endpoint,
	}

	r.Use(middleware.Logging)
	r.Use(middleware.Metrics)

	r.registerRoutes(userHandler, jobHandler, upgradeHandler, auth)

	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")
	r.Handle("/metrics", telemetry.Handler()).Methods("GET")
	r.HandleFunc("/info", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message":"Welcome to the Transcode Tycoon Game API!","version":"` + version + `"}`))
	}).Methods("GET")

	return r
}

func (r *Router) registerRoutes(
	userHandler *handlers.UserHandler,
	jobHandler *handlers.JobHandler,
	upgradeHandler *handlers.UpgradeHandler,
	auth middleware.Authenticator,
) {
	authed := middleware.Auth(auth)
	api := r.PathPrefix(r.endpoint).Subrouter()

	users := api.PathPrefix("/users").Subrouter()
	users.HandleFunc("/register", userHandler.Register).Methods("POST")
	users.HandleFunc("/leaderboard", userHandler.Leaderboard).Methods("GET")
	me := users.PathPrefix("/me").Subrouter()
	me.Use(authed)
	me.HandleFunc("", userHandler.GetMe).Methods("GET")
	me.HandleFunc("", userHandler.PatchMe).Methods("PATCH")
	users.HandleFunc("/{id}", userHandler.GetPublic).Methods("GET")

	jobs := api.PathPrefix("/jobs").Subrouter()
	jobs.HandleFunc("", jobHandler.List).Methods("GET")
	jobs.HandleFunc("/ws", jobHandler.Feed).Methods("GET")
	queue := jobs.PathPrefix("/{id}").Subrouter()
	queue.Use(authed)
	queue.HandleFunc("/claim", jobHandler.Claim).Methods("POST")
	queue.HandleFunc("", jobHandler.Delete).Methods("DELETE")

	upgrades := api.PathPrefix("/upgrades").Subrouter()
	upgrades.Use(authed)
	upgrades.HandleFunc("", upgradeHandler.List).Methods("GET")
	upgrades.HandleFunc("/purchase", upgradeHandler.Purchase).Methods("POST")
}
