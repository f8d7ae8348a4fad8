package models

// User represents a row of the usuario table.
// Password holds the bcrypt hash; it never leaves the server.
type User struct {
	ID       int    `json:"id" db:"id"`
	Username string `json:"username" db:"username"`
	Password string `json:"-" db:"password"`
}
