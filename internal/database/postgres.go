package database

import (
	"database/sql"
	"log"
	"time"

	_ "github.com/lib/pq"
)

// ConnectPostgres opens a PostgreSQL connection pool, verifies it and
// creates the schema. The caller owns the handle and closes it on shutdown.
func ConnectPostgres(postgresURI string) (*sql.DB, error) {
	db, err := sql.Open("postgres", postgresURI)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err = db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	log.Println("✅ Connected to PostgreSQL")

	if err = InitTables(db); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// InitTables creates the schema if it doesn't exist. The lower(name)
// unique indexes back the case-insensitive uniqueness rules, so a
// check-then-insert race still surfaces as a unique violation.
func InitTables(db *sql.DB) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS countries (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			created_at TIMESTAMP NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMP NOT NULL DEFAULT NOW(),
			name VARCHAR(100) NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS states (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			created_at TIMESTAMP NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMP NOT NULL DEFAULT NOW(),
			name VARCHAR(100) NOT NULL,
			country_id UUID NOT NULL REFERENCES countries(id)
		)`,

		`CREATE TABLE IF NOT EXISTS cities (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			created_at TIMESTAMP NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMP NOT NULL DEFAULT NOW(),
			name VARCHAR(100) NOT NULL,
			state_id UUID NOT NULL REFERENCES states(id)
		)`,

		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			created_at TIMESTAMP NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMP NOT NULL DEFAULT NOW(),
			name VARCHAR(255) NOT NULL,
			user_name VARCHAR(100) NOT NULL,
			email VARCHAR(255) NOT NULL,
			password VARCHAR(255) NOT NULL,
			mobile VARCHAR(10) NOT NULL,
			country_code VARCHAR(5) NOT NULL,
			country_id UUID NOT NULL REFERENCES countries(id),
			state_id UUID NOT NULL REFERENCES states(id),
			city_id UUID NOT NULL REFERENCES cities(id),
			verify BOOLEAN NOT NULL DEFAULT FALSE,
			otp VARCHAR(6),
			otp_created_at TIMESTAMP,
			otp_expires_at TIMESTAMP,
			otp_verified_at TIMESTAMP,
			otp_count INTEGER NOT NULL DEFAULT 0
		)`,

		// Case-insensitive uniqueness, scoped to the parent for states
		// and cities, global for countries and user email/username
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_countries_name_lower ON countries(LOWER(name))`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_states_country_name_lower ON states(country_id, LOWER(name))`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_cities_state_name_lower ON cities(state_id, LOWER(name))`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email_lower ON users(LOWER(email))`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_users_user_name_lower ON users(LOWER(user_name))`,

		`CREATE INDEX IF NOT EXISTS idx_states_country_id ON states(country_id)`,
		`CREATE INDEX IF NOT EXISTS idx_cities_state_id ON cities(state_id)`,
		`CREATE INDEX IF NOT EXISTS idx_countries_created_at ON countries(created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_states_created_at ON states(created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_cities_created_at ON cities(created_at)`,
	}

	for _, query := range queries {
		if _, err := db.Exec(query); err != nil {
			return err
		}
	}

	log.Println("✅ PostgreSQL tables initialized")
	return nil
}
