package models

import "time"

// Task represents a row of the tarea table. Column names stay in
// Spanish to match the persisted schema; the db tags carry the mapping.
type Task struct {
	ID          int       `json:"id" db:"id"`
	Title       string    `json:"titulo" db:"titulo"`
	Description string    `json:"descripcion" db:"descripcion"`
	Completed   bool      `json:"completada" db:"completada"`
	CreatedAt   time.Time `json:"creado" db:"creado"`
	AuthorID    int       `json:"autor_id" db:"autor_id"`
}
