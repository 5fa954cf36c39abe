package handlers

import (
	"database/sql"
)

// Handlers struct holds all dependencies for our handlers.
// The connection pool is injected from main; handlers never reach for
// package-level state.
type Handlers struct {
	DB *sql.DB
}
