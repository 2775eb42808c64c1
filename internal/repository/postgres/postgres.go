package postgres

import (
	"database/sql"
	"fmt"

	"chatbot-backend/internal/config"
	"chatbot-backend/internal/logger"
	"chatbot-backend/internal/repository/db"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/lib/pq"
)

// isUniqueViolation reports whether err is a Postgres unique constraint error
func isUniqueViolation(err error) bool {
	if pqErr, ok := err.(*pq.Error); ok {
		return pqErr.Code == "23505"
	}
	return false
}

// Ensure PostgresDB implements db.Database interface
var _ db.Database = (*PostgresDB)(nil)

// PostgresDB implements the db.Database interface
type PostgresDB struct {
	conn *sql.DB
}

// NewPostgresDB creates a new PostgresDB instance with a new connection
func NewPostgresDB(dbConfig config.DatabaseConfig) (*PostgresDB, error) {
	dsn := dbConfig.GetDSN()
	logger.Log.Info("Connecting to PostgreSQL")

	conn, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	// Test the connection
	if err = conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}

	logger.Log.Info("Successfully connected to PostgreSQL")

	database := &PostgresDB{conn: conn}

	// Run migrations
	if err = database.RunMigrations(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("error running migrations: %w", err)
	}

	logger.Log.Info("Migrations completed successfully")

	return database, nil
}

// NewPostgresDBWithConn wraps an existing connection without running
// migrations. Used by tests.
func NewPostgresDBWithConn(conn *sql.DB) *PostgresDB {
	return &PostgresDB{conn: conn}
}

// Close closes the database connection
func (p *PostgresDB) Close() error {
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

// RunMigrations runs database migrations using golang-migrate
func (p *PostgresDB) RunMigrations() error {
	driver, err := postgres.WithInstance(p.conn, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("error creating migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://migrations",
		"postgres", driver)
	if err != nil {
		return fmt.Errorf("error creating migration instance: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("error running migrations: %w", err)
	}

	logger.Log.Info("Database migrations applied successfully")
	return nil
}
