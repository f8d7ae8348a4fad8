package handlers

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"todo-service/models"

	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx"
	"github.com/umakantv/go-utils/httpserver"
	"go.uber.org/zap"
)

const taskColumns = "id, titulo, COALESCE(descripcion, '') AS descripcion, completada, creado, autor_id"

// DashboardHandler handles GET /tasks/ - the current user's tasks,
// pending first, newest first within each group.
func DashboardHandler() httpserver.HandlerFunc {
	return httpserver.HandlerFunc(func(ctx context.Context, w http.ResponseWriter, r *http.Request) {
		user := CurrentUser(ctx)
		conn, err := dbConn(ctx)
		if err != nil {
			logRequest(ctx, "error", "No database connection", zap.Error(err))
			http.Error(w, "server_error", http.StatusInternalServerError)
			return
		}

		tasks, err := listForOwner(ctx, conn, user.ID)
		if err != nil {
			logRequest(ctx, "error", "Failed to query tasks", zap.Error(err))
			http.Error(w, "server_error", http.StatusInternalServerError)
			return
		}

		render(ctx, w, r, "dashboard.html", pageData{Tasks: tasks})
	})
}

// CreateTaskFormHandler handles GET /tasks/create.
func CreateTaskFormHandler() httpserver.HandlerFunc {
	return httpserver.HandlerFunc(func(ctx context.Context, w http.ResponseWriter, r *http.Request) {
		render(ctx, w, r, "create.html", pageData{})
	})
}

// CreateTaskHandler handles POST /tasks/create.
func CreateTaskHandler() httpserver.HandlerFunc {
	return httpserver.HandlerFunc(func(ctx context.Context, w http.ResponseWriter, r *http.Request) {
		user := CurrentUser(ctx)
		title := strings.TrimSpace(r.FormValue("titulo"))
		description := strings.TrimSpace(r.FormValue("descripcion"))

		if title == "" {
			flashAndRedirect(w, r, "El título es obligatorio.", "/tasks/create")
			return
		}

		conn, err := dbConn(ctx)
		if err != nil {
			logRequest(ctx, "error", "No database connection", zap.Error(err))
			http.Error(w, "server_error", http.StatusInternalServerError)
			return
		}

		_, err = conn.ExecContext(ctx,
			"INSERT INTO tarea (titulo, descripcion, completada, creado, autor_id) VALUES (?, ?, 0, ?, ?)",
			title, description, time.Now(), user.ID)
		if err != nil {
			logRequest(ctx, "error", "Failed to create task", zap.Error(err))
			http.Error(w, "server_error", http.StatusInternalServerError)
			return
		}

		logRequest(ctx, "info", "Task created", zap.Int("user_id", user.ID))
		flashAndRedirect(w, r, "Tarea creada correctamente.", "/tasks/")
	})
}

// EditTaskFormHandler handles GET /tasks/{id}/edit.
func EditTaskFormHandler() httpserver.HandlerFunc {
	return httpserver.HandlerFunc(func(ctx context.Context, w http.ResponseWriter, r *http.Request) {
		task, ok := ownedTaskFromRequest(ctx, w, r)
		if !ok {
			return
		}
		render(ctx, w, r, "update.html", pageData{Task: task})
	})
}

// EditTaskHandler handles POST /tasks/{id}/edit.
func EditTaskHandler() httpserver.HandlerFunc {
	return httpserver.HandlerFunc(func(ctx context.Context, w http.ResponseWriter, r *http.Request) {
		task, ok := ownedTaskFromRequest(ctx, w, r)
		if !ok {
			return
		}

		title := strings.TrimSpace(r.FormValue("titulo"))
		description := strings.TrimSpace(r.FormValue("descripcion"))
		if title == "" {
			flashAndRedirect(w, r, "El título es obligatorio.", "/tasks/"+strconv.Itoa(task.ID)+"/edit")
			return
		}

		conn, _ := dbConn(ctx)
		_, err := conn.ExecContext(ctx, "UPDATE tarea SET titulo = ?, descripcion = ? WHERE id = ?",
			title, description, task.ID)
		if err != nil {
			logRequest(ctx, "error", "Failed to update task", zap.Error(err), zap.Int("task_id", task.ID))
			http.Error(w, "server_error", http.StatusInternalServerError)
			return
		}

		logRequest(ctx, "info", "Task updated", zap.Int("task_id", task.ID))
		flashAndRedirect(w, r, "Tarea actualizada.", "/tasks/")
	})
}

// ToggleTaskHandler handles POST /tasks/{id}/complete - a strict flip
// of the completion flag.
func ToggleTaskHandler() httpserver.HandlerFunc {
	return httpserver.HandlerFunc(func(ctx context.Context, w http.ResponseWriter, r *http.Request) {
		task, ok := ownedTaskFromRequest(ctx, w, r)
		if !ok {
			return
		}

		nowCompleted := !task.Completed
		conn, _ := dbConn(ctx)
		_, err := conn.ExecContext(ctx, "UPDATE tarea SET completada = ? WHERE id = ?", nowCompleted, task.ID)
		if err != nil {
			logRequest(ctx, "error", "Failed to toggle task", zap.Error(err), zap.Int("task_id", task.ID))
			http.Error(w, "server_error", http.StatusInternalServerError)
			return
		}

		message := "Tarea marcada como pendiente."
		if nowCompleted {
			message = "Tarea marcada como completada."
		}
		logRequest(ctx, "info", "Task toggled", zap.Int("task_id", task.ID), zap.Bool("completed", nowCompleted))
		flashAndRedirect(w, r, message, "/tasks/")
	})
}

// DeleteTaskHandler handles POST /tasks/{id}/delete.
func DeleteTaskHandler() httpserver.HandlerFunc {
	return httpserver.HandlerFunc(func(ctx context.Context, w http.ResponseWriter, r *http.Request) {
		task, ok := ownedTaskFromRequest(ctx, w, r)
		if !ok {
			return
		}

		conn, _ := dbConn(ctx)
		_, err := conn.ExecContext(ctx, "DELETE FROM tarea WHERE id = ?", task.ID)
		if err != nil {
			logRequest(ctx, "error", "Failed to delete task", zap.Error(err), zap.Int("task_id", task.ID))
			http.Error(w, "server_error", http.StatusInternalServerError)
			return
		}

		logRequest(ctx, "info", "Task deleted", zap.Int("task_id", task.ID))
		flashAndRedirect(w, r, "Tarea eliminada.", "/tasks/")
	})
}

// listForOwner returns the owner's tasks ordered by completion state
// ascending, then creation time descending.
func listForOwner(ctx context.Context, q sqlx.QueryerContext, ownerID int) ([]models.Task, error) {
	var tasks []models.Task
	err := sqlx.SelectContext(ctx, q, &tasks,
		"SELECT "+taskColumns+" FROM tarea WHERE autor_id = ? ORDER BY completada ASC, creado DESC", ownerID)
	return tasks, err
}

// getOwnedTask fetches a task by id and checks ownership. This check
// runs before every read or mutation of an individual task.
func getOwnedTask(ctx context.Context, q sqlx.QueryerContext, taskID, ownerID int) (models.Task, error) {
	var task models.Task
	err := sqlx.GetContext(ctx, q, &task, "SELECT "+taskColumns+" FROM tarea WHERE id = ?", taskID)
	if err == sql.ErrNoRows {
		return models.Task{}, models.ErrTaskNotFound
	}
	if err != nil {
		return models.Task{}, err
	}
	if task.AuthorID != ownerID {
		return models.Task{}, models.ErrNotOwner
	}
	return task, nil
}

// ownedTaskFromRequest parses {id}, runs the ownership check and
// writes the error response itself when the task is unavailable.
func ownedTaskFromRequest(ctx context.Context, w http.ResponseWriter, r *http.Request) (models.Task, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "La tarea solicitada no existe.", http.StatusNotFound)
		return models.Task{}, false
	}

	conn, err := dbConn(ctx)
	if err != nil {
		logRequest(ctx, "error", "No database connection", zap.Error(err))
		http.Error(w, "server_error", http.StatusInternalServerError)
		return models.Task{}, false
	}

	task, err := getOwnedTask(ctx, conn, id, CurrentUser(ctx).ID)
	switch {
	case errors.Is(err, models.ErrTaskNotFound):
		http.Error(w, "La tarea solicitada no existe.", http.StatusNotFound)
		return models.Task{}, false
	case errors.Is(err, models.ErrNotOwner):
		http.Error(w, "No puedes modificar tareas de otra persona.", http.StatusForbidden)
		return models.Task{}, false
	case err != nil:
		logRequest(ctx, "error", "Task lookup failed", zap.Error(err), zap.Int("task_id", id))
		http.Error(w, "server_error", http.StatusInternalServerError)
		return models.Task{}, false
	}
	return task, true
}
