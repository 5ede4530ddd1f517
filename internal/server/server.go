package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/wolfeidau/stockroom/internal/auth"
	httpmiddleware "github.com/wolfeidau/stockroom/internal/http"
	"github.com/wolfeidau/stockroom/internal/store"
)

// Server wires the identity and catalog handlers onto the HTTP surface.
type Server struct {
	identity store.IdentityStore
	products store.ProductStore
	tokens   *auth.Tokens

	bcryptCost int
}

// NewServer creates a server over the given stores. bcryptCost below the
// supported minimum is raised to auth.MinBcryptCost.
func NewServer(identity store.IdentityStore, products store.ProductStore, tokens *auth.Tokens, bcryptCost int) *Server {
	if bcryptCost < auth.MinBcryptCost {
		bcryptCost = auth.MinBcryptCost
	}

	return &Server{
		identity:   identity,
		products:   products,
		tokens:     tokens,
		bcryptCost: bcryptCost,
	}
}

// Handler returns the HTTP handler for the server. Catalog and dashboard
// routes sit behind the bearer token middleware; signup, login and the
// liveness probe do not.
func (s *Server) Handler(log zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(httpmiddleware.ClientIPMiddleware())
	r.Use(httpmiddleware.RequestLogger(log))
	r.Use(httpmiddleware.Recover())

	// Liveness probe for load balancers
	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})

	r.Post("/signup", s.handleSignup)
	r.Post("/login", s.handleLogin)

	r.Group(func(r chi.Router) {
		r.Use(s.tokens.Middleware())

		r.Route("/products", func(r chi.Router) {
			r.Post("/", s.handleCreateProduct)
			r.Get("/", s.handleListProducts)
			r.Put("/{id}", s.handleUpdateProduct)
			r.Delete("/{id}", s.handleDeleteProduct)
		})

		r.Get("/dashboard", s.handleDashboard)
		r.Get("/organization", s.handleOrganization)
	})

	return r
}
