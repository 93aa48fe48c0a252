package db

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	embedsql "github.com/gyeh/claimview/internal/sql"
)

// ErrMigrationChanged is returned when an already applied migration file no
// longer matches the checksum recorded for it.
var ErrMigrationChanged = errors.New("applied migration was modified")

// Migration is one schema file.
type Migration struct {
	Name     string
	Checksum string
	SQL      string
}

// MigrationReport lists the migrations a run applied and the ones it found
// already recorded in review.schema_migrations.
type MigrationReport struct {
	Applied []string
	Skipped []string
}

// LoadMigrations reads every .sql file in dir, sorted by filename.
func LoadMigrations(fsys fs.FS, dir string) ([]Migration, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("read migrations dir: %w", err)
	}

	var out []Migration
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".sql") {
			continue
		}
		data, err := fs.ReadFile(fsys, path.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("read migration %s: %w", name, err)
		}
		sum := sha256.Sum256(data)
		out = append(out, Migration{Name: name, Checksum: hex.EncodeToString(sum[:]), SQL: string(data)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Plan splits migrations into the ones still to run and the names already
// applied. applied maps migration name to its recorded checksum.
func Plan(all []Migration, applied map[string]string) (pending []Migration, skipped []string, err error) {
	for _, m := range all {
		sum, ok := applied[m.Name]
		if !ok {
			pending = append(pending, m)
			continue
		}
		if sum != m.Checksum {
			return nil, nil, fmt.Errorf("%w: %s", ErrMigrationChanged, m.Name)
		}
		skipped = append(skipped, m.Name)
	}
	return pending, skipped, nil
}

// ApplyMigrations runs the embedded migrations that review.schema_migrations
// has no record of. Each one commits together with its record.
func ApplyMigrations(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger) (*MigrationReport, error) {
	all, err := LoadMigrations(embedsql.Migrations, "migrations")
	if err != nil {
		return nil, err
	}

	if _, err := pool.Exec(ctx, embedsql.EnsureMigrationTable); err != nil {
		return nil, fmt.Errorf("create migration table: %w", err)
	}
	applied, err := appliedMigrations(ctx, pool)
	if err != nil {
		return nil, err
	}

	pending, skipped, err := Plan(all, applied)
	if err != nil {
		return nil, err
	}
	report := &MigrationReport{Skipped: skipped}
	for _, name := range skipped {
		log.Debug().Str("migration", name).Msg("already applied")
	}

	for _, m := range pending {
		log.Info().Str("migration", m.Name).Msg("applying migration")
		err := pgx.BeginFunc(ctx, pool, func(tx pgx.Tx) error {
			if _, err := tx.Exec(ctx, m.SQL); err != nil {
				return err
			}
			_, err := tx.Exec(ctx, embedsql.RecordMigration, m.Name, m.Checksum)
			return err
		})
		if err != nil {
			return report, fmt.Errorf("execute migration %s: %w", m.Name, err)
		}
		report.Applied = append(report.Applied, m.Name)
	}

	log.Info().
		Int("applied", len(report.Applied)).
		Int("skipped", len(report.Skipped)).
		Msg("migrations complete")
	return report, nil
}

func appliedMigrations(ctx context.Context, pool *pgxpool.Pool) (map[string]string, error) {
	rows, err := pool.Query(ctx, embedsql.AppliedMigrations)
	if err != nil {
		return nil, fmt.Errorf("list applied migrations: %w", err)
	}
	defer rows.Close()

	applied := make(map[string]string)
	for rows.Next() {
		var name, sum string
		if err := rows.Scan(&name, &sum); err != nil {
			return nil, fmt.Errorf("scan applied migration: %w", err)
		}
		applied[name] = sum
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list applied migrations: %w", err)
	}
	return applied, nil
}
