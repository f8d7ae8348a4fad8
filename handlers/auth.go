package handlers

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strings"

	"todo-service/models"

	"github.com/jmoiron/sqlx"
	"github.com/umakantv/go-utils/httpserver"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// RegisterFormHandler handles GET /auth/register.
func RegisterFormHandler() httpserver.HandlerFunc {
	return httpserver.HandlerFunc(func(ctx context.Context, w http.ResponseWriter, r *http.Request) {
		render(ctx, w, r, "register.html", pageData{})
	})
}

// RegisterHandler handles POST /auth/register - creates a user with a
// bcrypt-hashed password. Registration never logs the user in; on
// success the browser is sent to the login page.
func RegisterHandler() httpserver.HandlerFunc {
	return httpserver.HandlerFunc(func(ctx context.Context, w http.ResponseWriter, r *http.Request) {
		username := strings.TrimSpace(r.FormValue("username"))
		password := strings.TrimSpace(r.FormValue("password"))

		conn, err := dbConn(ctx)
		if err != nil {
			logRequest(ctx, "error", "No database connection", zap.Error(err))
			http.Error(w, "server_error", http.StatusInternalServerError)
			return
		}

		if username == "" {
			flashAndRedirect(w, r, "Debes indicar un nombre de usuario.", "/auth/register")
			return
		}
		if password == "" {
			flashAndRedirect(w, r, "La contraseña no puede estar vacía.", "/auth/register")
			return
		}

		var existingID int
		err = conn.GetContext(ctx, &existingID, "SELECT id FROM usuario WHERE username = ?", username)
		if err == nil {
			// Same message no matter why the name is taken.
			flashAndRedirect(w, r, "El usuario ya existe.", "/auth/register")
			return
		}
		if err != sql.ErrNoRows {
			logRequest(ctx, "error", "Failed to check username", zap.Error(err))
			http.Error(w, "server_error", http.StatusInternalServerError)
			return
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(password), 12)
		if err != nil {
			logRequest(ctx, "error", "Password hashing failed", zap.Error(err))
			http.Error(w, "server_error", http.StatusInternalServerError)
			return
		}

		_, err = conn.ExecContext(ctx, "INSERT INTO usuario (username, password) VALUES (?, ?)", username, string(hashed))
		if err != nil {
			logRequest(ctx, "error", "Failed to create user", zap.Error(err))
			http.Error(w, "server_error", http.StatusInternalServerError)
			return
		}

		logRequest(ctx, "info", "User registered", zap.String("username", username))
		flashAndRedirect(w, r, "Registro exitoso. Ya puedes iniciar sesión.", "/auth/login")
	})
}

// LoginFormHandler handles GET /auth/login.
func LoginFormHandler() httpserver.HandlerFunc {
	return httpserver.HandlerFunc(func(ctx context.Context, w http.ResponseWriter, r *http.Request) {
		render(ctx, w, r, "login.html", pageData{})
	})
}

// LoginHandler handles POST /auth/login - verifies credentials and
// issues a fresh session, discarding any session the browser already
// had.
func LoginHandler(sessions *SessionStore) httpserver.HandlerFunc {
	return httpserver.HandlerFunc(func(ctx context.Context, w http.ResponseWriter, r *http.Request) {
		username := strings.TrimSpace(r.FormValue("username"))
		password := strings.TrimSpace(r.FormValue("password"))

		conn, err := dbConn(ctx)
		if err != nil {
			logRequest(ctx, "error", "No database connection", zap.Error(err))
			http.Error(w, "server_error", http.StatusInternalServerError)
			return
		}

		user, err := authenticate(ctx, conn, username, password)
		switch {
		case errors.Is(err, models.ErrUnknownUser):
			flashAndRedirect(w, r, "Nombre de usuario incorrecto.", "/auth/login")
			return
		case errors.Is(err, models.ErrWrongPassword):
			flashAndRedirect(w, r, "Contraseña incorrecta.", "/auth/login")
			return
		case err != nil:
			logRequest(ctx, "error", "Login failed", zap.Error(err))
			http.Error(w, "server_error", http.StatusInternalServerError)
			return
		}

		// Clear any previous identity before issuing the new one.
		if cookie, cookieErr := r.Cookie(sessionCookieName); cookieErr == nil {
			sessions.Destroy(cookie.Value)
		}
		setSessionCookie(w, sessions.Create(user.ID))

		logRequest(ctx, "info", "Login successful", zap.Int("user_id", user.ID))
		flashAndRedirect(w, r, "Sesión iniciada. ¡Bienvenido de nuevo!", "/tasks/")
	})
}

// LogoutHandler handles GET /auth/logout - revokes the session and
// expires the cookie. Safe to call when nobody is logged in.
func LogoutHandler(sessions *SessionStore) httpserver.HandlerFunc {
	return httpserver.HandlerFunc(func(ctx context.Context, w http.ResponseWriter, r *http.Request) {
		if cookie, err := r.Cookie(sessionCookieName); err == nil {
			sessions.Destroy(cookie.Value)
		}
		clearSessionCookie(w)
		flashAndRedirect(w, r, "Sesión cerrada correctamente.", "/auth/login")
	})
}

// authenticate looks up the user by exact username and verifies the
// password against the stored bcrypt hash.
func authenticate(ctx context.Context, q sqlx.QueryerContext, username, password string) (models.User, error) {
	var user models.User
	err := sqlx.GetContext(ctx, q, &user, "SELECT id, username, password FROM usuario WHERE username = ?", username)
	if err == sql.ErrNoRows {
		return models.User{}, models.ErrUnknownUser
	}
	if err != nil {
		return models.User{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return models.User{}, models.ErrWrongPassword
	}
	return user, nil
}
