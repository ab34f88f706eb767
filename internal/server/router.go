// Package server assembles the HTTP surface. Authentication lives with an
// external collaborator; the router only converts the identity headers it
// forwards into an explicit session context.
package server

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"reusehub/internal/availability"
	"reusehub/internal/catalog"
	"reusehub/internal/identity"
	"reusehub/internal/intake"
	"reusehub/internal/ledger"
	"reusehub/internal/location"
	"reusehub/internal/session"
	"reusehub/internal/taxonomy"
)

// Handlers carries every mounted handler.
type Handlers struct {
	Taxonomy     *taxonomy.Handler
	Location     *location.Handler
	Catalog      *catalog.Handler
	Availability *availability.Handler
	Ledger       *ledger.Handler
	Intake       *intake.Handler
	Identity     *identity.Handler
}

// New builds the router with the session middleware applied to every route.
func New(h Handlers, sessions session.Store) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(sessionMiddleware(sessions))

	h.Taxonomy.Routes(r)
	h.Location.Routes(r)
	h.Catalog.Routes(r)
	h.Availability.Routes(r)
	h.Ledger.Routes(r)
	h.Intake.Routes(r)
	h.Identity.Routes(r)

	return r
}

// sessionMiddleware turns the auth collaborator's forwarded headers into a
// session.Context and resolves the session's open-order pointer. Requests
// without the headers pass through anonymously; staff-only services reject
// them themselves.
func sessionMiddleware(sessions session.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			username := r.Header.Get("X-Acting-User")
			if username == "" {
				next.ServeHTTP(w, r)
				return
			}

			sessionID, err := uuid.Parse(r.Header.Get("X-Session-ID"))
			if err != nil {
				http.Error(w, "invalid session ID", http.StatusBadRequest)
				return
			}

			sc := session.Context{
				SessionID: sessionID,
				Username:  username,
				Staff:     r.Header.Get("X-Acting-Role") == string(identity.RoleStaff),
			}

			if orderID, ok, err := sessions.OpenOrder(r.Context(), sessionID); err != nil {
				log.Printf("load open-order pointer for session %s: %v", sessionID, err)
			} else if ok {
				sc.OpenOrderID = &orderID
			}

			next.ServeHTTP(w, r.WithContext(session.NewContext(r.Context(), sc)))
		})
	}
}
