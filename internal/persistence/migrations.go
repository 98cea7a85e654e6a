package persistence

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// RunMigrations applies every *.sql file under ./migrations in lexical order.
// Each file runs in its own transaction; files are expected to be idempotent
// (CREATE TABLE IF NOT EXISTS style), so no version bookkeeping table is kept.
func RunMigrations(ctx context.Context, pool *pgxpool.Pool, logger *zap.Logger) error {
	if pool == nil {
		logger.Warn("postgres not configured; skipping schema migrations")
		return nil
	}

	paths, err := filepath.Glob(filepath.Join("migrations", "*.sql"))
	if err != nil {
		return fmt.Errorf("list migrations: %w", err)
	}
	sort.Strings(paths)

	for _, path := range paths {
		stmts, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}

		tx, err := pool.Begin(ctx)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, string(stmts)); err != nil {
			_ = tx.Rollback(ctx)
			return fmt.Errorf("apply %s: %w", filepath.Base(path), err)
		}
		if err := tx.Commit(ctx); err != nil {
			return err
		}
		logger.Info("schema migration applied", zap.String("file", filepath.Base(path)))
	}

	return nil
}
