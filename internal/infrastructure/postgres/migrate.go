package postgres

import (
	"context"
	"crypto/sha256"
	"embed"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/invoicer/pkg/logger"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// migrationLockID clave del advisory lock que evita dos migradores a la vez.
const migrationLockID = 7462840

// Migrate aplica en orden las migraciones embebidas que falten. Una migración ya
// aplicada cuyo contenido cambió es un error.
func Migrate(ctx context.Context, pool *pgxpool.Pool, log *logger.Logger) error {
	conn, err := pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("migrate: adquirir conexión: %w", err)
	}
	defer conn.Release()

	var locked bool
	if err := conn.QueryRow(ctx, "SELECT pg_try_advisory_lock($1)", migrationLockID).Scan(&locked); err != nil {
		return fmt.Errorf("migrate: advisory lock: %w", err)
	}
	if !locked {
		return errors.New("migrate: otro proceso está migrando")
	}
	defer func() { _, _ = conn.Exec(context.Background(), "SELECT pg_advisory_unlock($1)", migrationLockID) }()

	if _, err := conn.Exec(ctx, `
CREATE TABLE IF NOT EXISTS schema_migrations (
	version TEXT PRIMARY KEY,
	filename TEXT NOT NULL,
	checksum TEXT NOT NULL,
	applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`); err != nil {
		return fmt.Errorf("migrate: crear schema_migrations: %w", err)
	}

	files, err := migrationFiles()
	if err != nil {
		return err
	}
	for _, name := range files {
		applied, err := applyMigration(ctx, conn.Conn(), name)
		if err != nil {
			return err
		}
		if applied {
			log.Info().Str("migration", name).Msg("migración aplicada")
		}
	}
	return nil
}

func migrationFiles() ([]string, error) {
	entries, err := fs.ReadDir(migrationFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("migrate: leer migraciones: %w", err)
	}
	seen := make(map[string]bool)
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".sql") {
			continue
		}
		v, err := migrationVersion(e.Name())
		if err != nil {
			return nil, err
		}
		if seen[v] {
			return nil, fmt.Errorf("migrate: versión duplicada %s", v)
		}
		seen[v] = true
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

// migrationVersion prefijo NNN de NNN_descripcion.sql.
func migrationVersion(name string) (string, error) {
	parts := strings.SplitN(name, "_", 2)
	if len(parts) < 2 || parts[0] == "" {
		return "", fmt.Errorf("migrate: nombre inválido %s, se espera NNN_descripcion.sql", name)
	}
	return parts[0], nil
}

func applyMigration(ctx context.Context, conn *pgx.Conn, name string) (bool, error) {
	body, err := migrationFS.ReadFile("migrations/" + name)
	if err != nil {
		return false, fmt.Errorf("migrate: leer %s: %w", name, err)
	}
	version, _ := migrationVersion(name)
	sum := sha256.Sum256(body)
	checksum := hex.EncodeToString(sum[:])

	var existing string
	err = conn.QueryRow(ctx, "SELECT checksum FROM schema_migrations WHERE version = $1", version).Scan(&existing)
	switch {
	case err == nil && existing == checksum:
		return false, nil
	case err == nil:
		return false, fmt.Errorf("migrate: checksum distinto para %s", name)
	case !errors.Is(err, pgx.ErrNoRows):
		return false, fmt.Errorf("migrate: consultar %s: %w", name, err)
	}

	tx, err := conn.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("migrate: begin %s: %w", name, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()
	if _, err := tx.Exec(ctx, string(body)); err != nil {
		return false, fmt.Errorf("migrate: ejecutar %s: %w", name, err)
	}
	if _, err := tx.Exec(ctx,
		"INSERT INTO schema_migrations (version, filename, checksum) VALUES ($1, $2, $3)",
		version, name, checksum); err != nil {
		return false, fmt.Errorf("migrate: registrar %s: %w", name, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("migrate: commit %s: %w", name, err)
	}
	return true, nil
}
