package storage

import (
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

const schemaVersionsDDL = `CREATE TABLE IF NOT EXISTS schema_versions (
    version TEXT PRIMARY KEY
)`

// MigrateUp applies every embedded migration not yet recorded in
// schema_versions, oldest first.
func MigrateUp(db *sql.DB) error {
	versions, applied, err := prepareMigrations(db)
	if err != nil {
		return err
	}
	for _, v := range versions {
		if applied[v] {
			continue
		}
		if err := runMigration(db, v+".up.sql", `INSERT INTO schema_versions (version) VALUES (?)`, v); err != nil {
			return err
		}
	}
	return nil
}

// MigrateDown reverts every applied migration, newest first.
func MigrateDown(db *sql.DB) error {
	versions, applied, err := prepareMigrations(db)
	if err != nil {
		return err
	}
	slices.Reverse(versions)
	for _, v := range versions {
		if !applied[v] {
			continue
		}
		if err := runMigration(db, v+".down.sql", `DELETE FROM schema_versions WHERE version = ?`, v); err != nil {
			return err
		}
	}
	return nil
}

func prepareMigrations(db *sql.DB) ([]string, map[string]bool, error) {
	if _, err := db.Exec(schemaVersionsDDL); err != nil {
		return nil, nil, fmt.Errorf("storage: create schema_versions: %w", err)
	}
	names, err := fs.Glob(migrationFiles, "migrations/*.up.sql")
	if err != nil {
		return nil, nil, fmt.Errorf("storage: glob migrations: %w", err)
	}
	versions := make([]string, 0, len(names))
	for _, name := range names {
		versions = append(versions, strings.TrimSuffix(path.Base(name), ".up.sql"))
	}
	slices.Sort(versions)

	rows, err := db.Query(`SELECT version FROM schema_versions`)
	if err != nil {
		return nil, nil, fmt.Errorf("storage: read schema_versions: %w", err)
	}
	defer rows.Close()
	applied := map[string]bool{}
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, nil, fmt.Errorf("storage: scan schema version: %w", err)
		}
		applied[v] = true
	}
	return versions, applied, rows.Err()
}

// runMigration executes one migration file and its bookkeeping statement in a
// single transaction.
func runMigration(db *sql.DB, file, bookkeeping, version string) error {
	body, err := migrationFiles.ReadFile("migrations/" + file)
	if err != nil {
		return fmt.Errorf("storage: read migration %s: %w", file, err)
	}
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("storage: begin migration %s: %w", file, err)
	}
	if _, err := tx.Exec(string(body)); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("storage: apply migration %s: %w", file, err)
	}
	if _, err := tx.Exec(bookkeeping, version); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("storage: record migration %s: %w", file, err)
	}
	return tx.Commit()
}
