package database

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/lib/pq" // PostgreSQL driver
)

var db *sql.DB

// ConnString builds a lib/pq connection string from its parts.
func ConnString(host, port, user, password, dbname, sslmode string) string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, dbname, sslmode)
}

// InitDB opens and verifies the database connection.
func InitDB(connStr string) {
	var err error
	db, err = sql.Open("postgres", connStr)
	if err != nil {
		log.Fatalf("Error opening database: %q", err)
	}

	if err = db.Ping(); err != nil {
		log.Fatalf("Error connecting to database: %q", err)
	}
}

// GetDB returns the database connection pool.
func GetDB() *sql.DB {
	return db
}
