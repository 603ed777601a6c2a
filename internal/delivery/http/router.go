package http

import (
	"net/http"

	"medpractice-backend/internal/delivery/graphql"
	"medpractice-backend/internal/delivery/http/handler"
	"medpractice-backend/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router               *mux.Router
	physicianHandler     *handler.PhysicianHandler
	physicianWriteHander *handler.PhysicianWriteHandler
	graphqlHandler       *graphql.Handler
	authMiddleware       *middleware.AuthMiddleware
	corsMiddleware       *middleware.CORSMiddleware
	requestIDMiddleware  *middleware.RequestIDMiddleware
}

func NewRouter(
	physicianHandler *handler.PhysicianHandler,
	physicianWriteHandler *handler.PhysicianWriteHandler,
	graphqlHandler *graphql.Handler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
	requestIDMiddleware *middleware.RequestIDMiddleware,
) *Router {
	return &Router{
		router:               mux.NewRouter(),
		physicianHandler:     physicianHandler,
		physicianWriteHander: physicianWriteHandler,
		graphqlHandler:       graphqlHandler,
		authMiddleware:       authMiddleware,
		corsMiddleware:       corsMiddleware,
		requestIDMiddleware:  requestIDMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Physician reads (public)
	api.HandleFunc("/physicians", r.physicianHandler.GetAllPhysicians).Methods(http.MethodGet)
	api.HandleFunc("/physicians/file/{id:[0-9]+}", r.physicianHandler.GetFile).Methods(http.MethodGet)
	api.HandleFunc("/physicians/{id:[0-9]+}", r.physicianHandler.GetPhysician).Methods(http.MethodGet)

	// Physician writes (any authenticated role)
	writes := api.PathPrefix("/physicians").Subrouter()
	writes.Use(r.authMiddleware.Authenticate)
	writes.Use(middleware.RequireUser)
	writes.HandleFunc("", r.physicianWriteHander.CreatePhysician).Methods(http.MethodPost)
	writes.HandleFunc("/{id:[0-9]+}", r.physicianWriteHander.UpdatePhysician).Methods(http.MethodPut)
	writes.HandleFunc("/{id:[0-9]+}/file", r.physicianWriteHander.UploadFile).Methods(http.MethodPost)

	// Physician delete (admin only)
	admin := api.PathPrefix("/physicians").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireAdmin)
	admin.HandleFunc("/{id:[0-9]+}", r.physicianWriteHander.DeletePhysician).Methods(http.MethodDelete)

	// GraphQL endpoint. Queries are public, mutations check roles inside
	// the resolver, so authentication is optional here.
	r.router.Handle("/graphql",
		r.authMiddleware.OptionalAuthenticate(http.HandlerFunc(r.graphqlHandler.Handle)),
	).Methods(http.MethodPost)

	// Router middleware only runs on matched routes, so preflight
	// requests need a route of their own. The CORS middleware answers
	// them before this handler is reached.
	r.router.PathPrefix("/").Methods(http.MethodOptions).HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	r.router.Use(r.requestIDMiddleware.Handle)
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
