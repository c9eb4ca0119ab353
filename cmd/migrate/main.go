package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/learnhub/learnhub/infrastructure/service/logger"
)

type migrationFile struct {
	version int
	name    string
	path    string
	up      bool
}

func main() {
	mode := flag.String("mode", "up", "migration mode: up or down")
	dir := flag.String("dir", "migrations", "directory holding NNN_name.up.sql / NNN_name.down.sql files")
	flag.Parse()

	_ = godotenv.Load()
	ctx := context.Background()
	log := logger.NewStructuredLogger(logger.LoggerConfig{
		Level:       "info",
		Format:      "text",
		ServiceName: "learnhub-migrate",
	})

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Error(ctx, "DATABASE_URL environment variable is required", nil, nil)
		os.Exit(1)
	}

	if err := run(ctx, log, dsn, *dir, strings.ToLower(*mode)); err != nil {
		log.Error(ctx, "Migration failed", err, map[string]interface{}{"mode": *mode})
		os.Exit(1)
	}
	log.Info(ctx, "Migration completed successfully", map[string]interface{}{"mode": *mode})
}

func run(ctx context.Context, log logger.Logger, dsn, dir, mode string) error {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}
	if err := ensureSchemaMigrations(ctx, db); err != nil {
		return fmt.Errorf("ensure schema_migrations: %w", err)
	}

	files, err := loadMigrationFiles(dir)
	if err != nil {
		return fmt.Errorf("load migrations: %w", err)
	}

	switch mode {
	case "up":
		return applyUp(ctx, log, db, files)
	case "down":
		return applyDown(ctx, log, db, files)
	default:
		return fmt.Errorf("unknown mode: %s", mode)
	}
}

func ensureSchemaMigrations(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`)
	return err
}

// loadMigrationFiles returns every versioned .up.sql/.down.sql file sorted by version.
func loadMigrationFiles(dir string) ([]migrationFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []migrationFile
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		f, err := parseMigrationName(e.Name())
		if err != nil {
			continue
		}
		f.path = filepath.Join(dir, e.Name())
		files = append(files, f)
	}

	sort.Slice(files, func(i, j int) bool { return files[i].version < files[j].version })
	return files, nil
}

// parseMigrationName accepts 001_create_users.up.sql and 001_create_users.down.sql.
func parseMigrationName(filename string) (migrationFile, error) {
	lower := strings.ToLower(filename)
	var f migrationFile
	switch {
	case strings.HasSuffix(lower, ".up.sql"):
		f.up = true
		filename = filename[:len(filename)-len(".up.sql")]
	case strings.HasSuffix(lower, ".down.sql"):
		filename = filename[:len(filename)-len(".down.sql")]
	default:
		return f, errors.New("not a migration file")
	}

	parts := strings.SplitN(filename, "_", 2)
	if len(parts) < 2 || parts[1] == "" {
		return f, errors.New("invalid filename")
	}
	version, err := strconv.Atoi(parts[0])
	if err != nil || version <= 0 {
		return f, errors.New("invalid version")
	}
	f.version = version
	f.name = parts[1]
	return f, nil
}

func alreadyApplied(ctx context.Context, db *sql.DB, version int) (bool, error) {
	var exists bool
	err := db.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version=$1)", version).Scan(&exists)
	return exists, err
}

func applyUp(ctx context.Context, log logger.Logger, db *sql.DB, files []migrationFile) error {
	for _, f := range files {
		if !f.up {
			continue
		}
		applied, err := alreadyApplied(ctx, db, f.version)
		if err != nil {
			return err
		}
		if applied {
			continue
		}

		log.Info(ctx, "Applying migration", map[string]interface{}{"version": f.version, "name": f.name})
		err = inTx(ctx, db, f.path, func(tx *sql.Tx) error {
			_, err := tx.ExecContext(ctx, "INSERT INTO schema_migrations(version, name, applied_at) VALUES($1,$2,$3)", f.version, f.name, time.Now())
			return err
		})
		if err != nil {
			return fmt.Errorf("failed applying %s: %w", f.path, err)
		}
	}
	return nil
}

func applyDown(ctx context.Context, log logger.Logger, db *sql.DB, files []migrationFile) error {
	for i := len(files) - 1; i >= 0; i-- {
		f := files[i]
		if f.up {
			continue
		}
		applied, err := alreadyApplied(ctx, db, f.version)
		if err != nil {
			return err
		}
		if !applied {
			continue
		}

		log.Info(ctx, "Reverting migration", map[string]interface{}{"version": f.version, "name": f.name})
		err = inTx(ctx, db, f.path, func(tx *sql.Tx) error {
			_, err := tx.ExecContext(ctx, "DELETE FROM schema_migrations WHERE version=$1", f.version)
			return err
		})
		if err != nil {
			return fmt.Errorf("failed reverting %s: %w", f.path, err)
		}
	}
	return nil
}

// inTx runs the SQL file and the bookkeeping statement atomically.
func inTx(ctx context.Context, db *sql.DB, path string, record func(*sql.Tx) error) error {
	script, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, string(script)); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := record(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}
