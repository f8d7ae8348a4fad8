package database

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// RequestConn lends a single database connection to one request. The
// connection is checked out of the pool on first use and reused for
// every query in that request; the owning wrapper must call Release
// when the request finishes, on every exit path.
type RequestConn struct {
	db   *sqlx.DB
	conn *sqlx.Conn
}

// NewRequestConn prepares a lazy connection holder. No connection is
// acquired until Get is called.
func NewRequestConn(db *sqlx.DB) *RequestConn {
	return &RequestConn{db: db}
}

// Get returns the request's connection, acquiring it on first call.
func (rc *RequestConn) Get(ctx context.Context) (*sqlx.Conn, error) {
	if rc.conn != nil {
		return rc.conn, nil
	}
	conn, err := rc.db.Connx(ctx)
	if err != nil {
		return nil, err
	}
	rc.conn = conn
	return rc.conn, nil
}

// Release returns the connection to the pool. Safe to call when no
// connection was ever acquired, and safe to call twice.
func (rc *RequestConn) Release() error {
	if rc.conn == nil {
		return nil
	}
	conn := rc.conn
	rc.conn = nil
	return conn.Close()
}
