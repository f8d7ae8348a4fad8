package handlers

import (
	"net/http"
	"testing"

	"todo-service/models"

	"golang.org/x/crypto/bcrypt"
)

func TestRegisterCreatesUser(t *testing.T) {
	app := newTestApp(t)
	client := app.newClient()

	resp := app.register(client, "nuevo", "clave")
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("expected redirect, got %d", resp.StatusCode)
	}
	if got := location(t, resp); got != "/auth/login" {
		t.Fatalf("expected redirect to login, got %s", got)
	}

	var user models.User
	if err := app.db.Get(&user, "SELECT id, username, password FROM usuario WHERE username = ?", "nuevo"); err != nil {
		t.Fatalf("user row not found: %v", err)
	}
	if user.Password == "clave" {
		t.Fatal("password stored in plaintext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("clave")); err != nil {
		t.Fatalf("stored hash does not verify against the password: %v", err)
	}
}

func TestRegisterInputValidation(t *testing.T) {
	app := newTestApp(t)
	client := app.newClient()

	resp := app.register(client, "", "clave")
	if got := flashFrom(t, resp); got != "Debes indicar un nombre de usuario." {
		t.Fatalf("unexpected notice for empty username: %q", got)
	}

	// Whitespace-only input trims down to empty.
	resp = app.register(client, "   ", "clave")
	if got := flashFrom(t, resp); got != "Debes indicar un nombre de usuario." {
		t.Fatalf("unexpected notice for blank username: %q", got)
	}

	resp = app.register(client, "nuevo", "")
	if got := flashFrom(t, resp); got != "La contraseña no puede estar vacía." {
		t.Fatalf("unexpected notice for empty password: %q", got)
	}

	var count int
	if err := app.db.Get(&count, "SELECT COUNT(*) FROM usuario"); err != nil {
		t.Fatalf("count users: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected no users after failed registrations, got %d", count)
	}
}

func TestRegisterDuplicateUsernameSameMessage(t *testing.T) {
	app := newTestApp(t)
	client := app.newClient()

	app.register(client, "usuario", "test")

	// The message must not reveal whether the password matched any
	// existing account.
	samePassword := flashFrom(t, app.register(client, "usuario", "test"))
	otherPassword := flashFrom(t, app.register(client, "usuario", "distinta"))

	if samePassword != "El usuario ya existe." {
		t.Fatalf("unexpected duplicate notice: %q", samePassword)
	}
	if samePassword != otherPassword {
		t.Fatalf("duplicate notices differ: %q vs %q", samePassword, otherPassword)
	}
}

func TestLoginAfterRegisterSucceeds(t *testing.T) {
	app := newTestApp(t)
	client := app.newClient()

	app.register(client, "usuario", "test")
	resp := app.login(client, "usuario", "test")

	if got := location(t, resp); got != "/tasks/" {
		t.Fatalf("expected redirect to dashboard, got %s", got)
	}
	if got := flashFrom(t, resp); got != "Sesión iniciada. ¡Bienvenido de nuevo!" {
		t.Fatalf("unexpected login notice: %q", got)
	}

	dashboard, body := app.get(client, "/tasks/")
	if dashboard.StatusCode != http.StatusOK {
		t.Fatalf("expected dashboard after login, got %d", dashboard.StatusCode)
	}
	if body == "" {
		t.Fatal("expected rendered dashboard body")
	}
}

func TestLoginErrorsAreDistinct(t *testing.T) {
	app := newTestApp(t)
	client := app.newClient()

	app.register(client, "usuario", "test")

	unknown := flashFrom(t, app.login(client, "desconocido", "test"))
	if unknown != "Nombre de usuario incorrecto." {
		t.Fatalf("unexpected unknown-user notice: %q", unknown)
	}

	wrongPassword := flashFrom(t, app.login(client, "usuario", "mal"))
	if wrongPassword != "Contraseña incorrecta." {
		t.Fatalf("unexpected wrong-password notice: %q", wrongPassword)
	}

	if unknown == wrongPassword {
		t.Fatal("unknown-user and wrong-password notices must differ")
	}
}

func TestLogoutClearsSession(t *testing.T) {
	app := newTestApp(t)
	client := app.signIn("usuario", "test")

	resp, _ := app.get(client, "/auth/logout")
	if got := flashFrom(t, resp); got != "Sesión cerrada correctamente." {
		t.Fatalf("unexpected logout notice: %q", got)
	}
	if got := location(t, resp); got != "/auth/login" {
		t.Fatalf("expected redirect to login, got %s", got)
	}

	dashboard, _ := app.get(client, "/tasks/")
	if dashboard.StatusCode != http.StatusFound {
		t.Fatalf("expected redirect after logout, got %d", dashboard.StatusCode)
	}

	// Logging out again is harmless.
	again, _ := app.get(client, "/auth/logout")
	if again.StatusCode != http.StatusFound {
		t.Fatalf("expected logout to stay idempotent, got %d", again.StatusCode)
	}
}

func TestStaleSessionResolvesToAnonymous(t *testing.T) {
	app := newTestApp(t)
	client := app.signIn("usuario", "test")

	if _, err := app.db.Exec("DELETE FROM usuario WHERE username = ?", "usuario"); err != nil {
		t.Fatalf("delete user: %v", err)
	}

	resp, _ := app.get(client, "/tasks/")
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("expected redirect for stale session, got %d", resp.StatusCode)
	}
	if got := location(t, resp); got != "/auth/login" {
		t.Fatalf("expected redirect to login, got %s", got)
	}
}
