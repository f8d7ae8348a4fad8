package server

import (
	"context"
	"net/http"
	"os"

	cachepackage "todo-service/cache"
	"todo-service/config"
	"todo-service/database"
	"todo-service/handlers"

	"github.com/umakantv/go-utils/httpserver"
	"github.com/umakantv/go-utils/logger"
	"go.uber.org/zap"
)

// checkAuth satisfies the httpserver constructor. Authentication here
// is cookie-based and enforced by the handlers' Gate, so every route
// registers with AuthType "none" and this hook grants nothing.
func checkAuth(r *http.Request) (bool, httpserver.RequestAuth) {
	return false, httpserver.RequestAuth{}
}

func StartServer(configPath string) {
	// Initialize logger
	logger.Init(logger.LoggerConfig{
		CallerKey:  "file",
		TimeKey:    "timestamp",
		CallerSkip: 1,
	})

	logger.Info("Starting Todo Service...")

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Error("Invalid configuration", zap.Error(err))
		os.Exit(1)
	}

	// Initialize database
	dbConn := database.Initialize(cfg)
	defer dbConn.Close()

	// Initialize session cache
	sessionCache := cachepackage.Initialize(cfg)
	defer sessionCache.Close()

	sessions := handlers.NewSessionStore(sessionCache, cfg.SecretKey)
	gate := handlers.NewGate(dbConn, sessions)

	server := httpserver.New(cfg.Port, checkAuth)

	server.Register(httpserver.Route{
		Name:     "Home",
		Method:   "GET",
		Path:     "/",
		AuthType: "none",
	}, httpserver.HandlerFunc(func(ctx context.Context, w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/tasks/", http.StatusFound)
	}))

	server.Register(httpserver.Route{
		Name:     "HealthCheck",
		Method:   "GET",
		Path:     "/health",
		AuthType: "none",
	}, httpserver.HandlerFunc(func(ctx context.Context, w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy", "service": "todo-service"}`))
	}))

	server.Register(httpserver.Route{
		Name:     "RegisterForm",
		Method:   "GET",
		Path:     "/auth/register",
		AuthType: "none",
	}, gate.Public(handlers.RegisterFormHandler()))

	server.Register(httpserver.Route{
		Name:     "Register",
		Method:   "POST",
		Path:     "/auth/register",
		AuthType: "none",
	}, gate.Public(handlers.RegisterHandler()))

	server.Register(httpserver.Route{
		Name:     "LoginForm",
		Method:   "GET",
		Path:     "/auth/login",
		AuthType: "none",
	}, gate.Public(handlers.LoginFormHandler()))

	server.Register(httpserver.Route{
		Name:     "Login",
		Method:   "POST",
		Path:     "/auth/login",
		AuthType: "none",
	}, gate.Public(handlers.LoginHandler(sessions)))

	server.Register(httpserver.Route{
		Name:     "Logout",
		Method:   "GET",
		Path:     "/auth/logout",
		AuthType: "none",
	}, gate.Public(handlers.LogoutHandler(sessions)))

	server.Register(httpserver.Route{
		Name:     "Dashboard",
		Method:   "GET",
		Path:     "/tasks/",
		AuthType: "none",
	}, gate.Protected(handlers.DashboardHandler()))

	server.Register(httpserver.Route{
		Name:     "CreateTaskForm",
		Method:   "GET",
		Path:     "/tasks/create",
		AuthType: "none",
	}, gate.Protected(handlers.CreateTaskFormHandler()))

	server.Register(httpserver.Route{
		Name:     "CreateTask",
		Method:   "POST",
		Path:     "/tasks/create",
		AuthType: "none",
	}, gate.Protected(handlers.CreateTaskHandler()))

	server.Register(httpserver.Route{
		Name:     "EditTaskForm",
		Method:   "GET",
		Path:     "/tasks/{id}/edit",
		AuthType: "none",
	}, gate.Protected(handlers.EditTaskFormHandler()))

	server.Register(httpserver.Route{
		Name:     "EditTask",
		Method:   "POST",
		Path:     "/tasks/{id}/edit",
		AuthType: "none",
	}, gate.Protected(handlers.EditTaskHandler()))

	server.Register(httpserver.Route{
		Name:     "ToggleTask",
		Method:   "POST",
		Path:     "/tasks/{id}/complete",
		AuthType: "none",
	}, gate.Protected(handlers.ToggleTaskHandler()))

	server.Register(httpserver.Route{
		Name:     "DeleteTask",
		Method:   "POST",
		Path:     "/tasks/{id}/delete",
		AuthType: "none",
	}, gate.Protected(handlers.DeleteTaskHandler()))

	logger.Info("Todo Service started on port " + cfg.Port)
	logger.Info("Health check: GET /health")
	logger.Info("Auth: /auth/register /auth/login /auth/logout")
	logger.Info("Tasks: /tasks/ /tasks/create /tasks/{id}/...")

	// Start server
	if err := server.Start(); err != nil {
		logger.Error("Server failed to start", zap.Error(err))
		os.Exit(1)
	}
}

// InitDB (re)creates the schema from the embedded script. Run once
// before the first start; running it again wipes all rows.
func InitDB(configPath string) {
	logger.Init(logger.LoggerConfig{
		CallerKey:  "file",
		TimeKey:    "timestamp",
		CallerSkip: 1,
	})

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Error("Invalid configuration", zap.Error(err))
		os.Exit(1)
	}

	dbConn := database.Initialize(cfg)
	defer dbConn.Close()

	if err := database.InitSchema(dbConn); err != nil {
		logger.Error("Error while initializing schema", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("Database schema initialized", zap.String("database", cfg.DatabasePath))
}
