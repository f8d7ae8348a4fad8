package handlers

import (
	"context"
	"embed"
	"html/template"
	"net/http"
	"time"

	"todo-service/models"

	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.New("").Funcs(template.FuncMap{
	"humanizeDate": humanizeDate,
}).ParseFS(templateFS, "templates/*.html"))

// humanizeDate renders timestamps as dd/mm/yyyy HH:MM.
func humanizeDate(t time.Time) string {
	return t.Format("02/01/2006 15:04")
}

type pageData struct {
	User  *models.User
	Flash string
	Task  models.Task
	Tasks []models.Task
}

// render executes a page template, folding in the pending flash
// notice and the current user.
func render(ctx context.Context, w http.ResponseWriter, r *http.Request, name string, data pageData) {
	data.User = CurrentUser(ctx)
	data.Flash = popFlash(w, r)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := templates.ExecuteTemplate(w, name, data); err != nil {
		logRequest(ctx, "error", "Template execution failed", zap.String("template", name), zap.Error(err))
	}
}
