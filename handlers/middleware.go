package handlers

import (
	"context"
	"errors"
	"net/http"

	"todo-service/database"
	"todo-service/models"

	"github.com/jmoiron/sqlx"
	"github.com/umakantv/go-utils/httpserver"
)

type ctxKey int

const (
	connCtxKey ctxKey = iota
	userCtxKey
)

// Gate scopes a database connection to each request, resolves the
// current user from the session cookie, and blocks unauthenticated
// access to protected routes.
type Gate struct {
	db       *sqlx.DB
	sessions *SessionStore
}

func NewGate(db *sqlx.DB, sessions *SessionStore) *Gate {
	return &Gate{db: db, sessions: sessions}
}

// Public wraps a handler reachable without authentication. It lends
// the request a lazy database connection, released on every exit
// path, and resolves the current user (nil for anonymous requests).
func (g *Gate) Public(next httpserver.HandlerFunc) httpserver.HandlerFunc {
	return httpserver.HandlerFunc(func(ctx context.Context, w http.ResponseWriter, r *http.Request) {
		rc := database.NewRequestConn(g.db)
		defer rc.Release()

		ctx = context.WithValue(ctx, connCtxKey, rc)
		ctx = context.WithValue(ctx, userCtxKey, g.resolveUser(ctx, r))
		next(ctx, w, r)
	})
}

// Protected additionally requires a logged-in user; anonymous
// requests are redirected to the login page with a notice and never
// reach the wrapped handler.
func (g *Gate) Protected(next httpserver.HandlerFunc) httpserver.HandlerFunc {
	return g.Public(httpserver.HandlerFunc(func(ctx context.Context, w http.ResponseWriter, r *http.Request) {
		if CurrentUser(ctx) == nil {
			flashAndRedirect(w, r, "Para continuar inicia sesión.", "/auth/login")
			return
		}
		next(ctx, w, r)
	}))
}

// resolveUser loads the user referenced by the session cookie. A
// missing cookie, bad signature, revoked session or stale user id all
// resolve to nil.
func (g *Gate) resolveUser(ctx context.Context, r *http.Request) *models.User {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		return nil
	}
	userID, ok := g.sessions.UserID(cookie.Value)
	if !ok {
		return nil
	}
	conn, err := dbConn(ctx)
	if err != nil {
		return nil
	}
	var user models.User
	err = conn.GetContext(ctx, &user, "SELECT id, username, password FROM usuario WHERE id = ?", userID)
	if err != nil {
		return nil
	}
	return &user
}

// CurrentUser returns the user resolved for this request, or nil.
func CurrentUser(ctx context.Context) *models.User {
	user, _ := ctx.Value(userCtxKey).(*models.User)
	return user
}

// dbConn returns the request-scoped database connection.
func dbConn(ctx context.Context) (*sqlx.Conn, error) {
	rc, _ := ctx.Value(connCtxKey).(*database.RequestConn)
	if rc == nil {
		return nil, errors.New("no request connection in context")
	}
	return rc.Get(ctx)
}
