package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/halu23489/genba/internal/config"
	"github.com/halu23489/genba/internal/logging"
	"github.com/jackc/pgx/v5/pgxpool"
)

func usage() {
	fmt.Fprintln(os.Stderr, `Usage: migrate [command]

Commands:
  (default)   未適用のマイグレーションを適用
  status      適用済み・未適用のマイグレーションを表示
  fresh       全テーブルを DROP し、全マイグレーションを順番に適用`)
	os.Exit(1)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal("invalid config", "error", err)
	}
	logging.Setup(cfg.App.LogLevel)

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.Store.DatabaseURL)
	if err != nil {
		logging.Fatal("connect failed", "error", err)
	}
	defer pool.Close()

	migrationDir := findMigrationDir()

	cmd := ""
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	switch cmd {
	case "":
		runIncremental(ctx, pool, migrationDir)
	case "status":
		runStatus(ctx, pool, migrationDir)
	case "fresh":
		runDropAll(ctx, pool, migrationDir)
		runIncremental(ctx, pool, migrationDir)
	default:
		usage()
	}
}

func findMigrationDir() string {
	dir := "migrations"
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		dir = "../migrations"
	}
	return dir
}

// collectUpFiles は .up.sql ファイル名をソート済みで返す
func collectUpFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".up.sql") {
			files = append(files, e.Name())
		}
	}
	slices.Sort(files)
	return files, nil
}

// pendingMigrations は未適用のマイグレーション名を適用順で返す
func pendingMigrations(files []string, applied map[string]bool) []string {
	var pending []string
	for _, f := range files {
		name := strings.TrimSuffix(f, ".up.sql")
		if !applied[name] {
			pending = append(pending, name)
		}
	}
	return pending
}

func ensureSchemaMigrations(ctx context.Context, pool *pgxpool.Pool) {
	_, err := pool.Exec(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
		name TEXT PRIMARY KEY,
		applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`)
	if err != nil {
		logging.Fatal("create schema_migrations failed", "error", err)
	}
}

func appliedMigrations(ctx context.Context, pool *pgxpool.Pool) map[string]bool {
	rows, err := pool.Query(ctx, "SELECT name FROM schema_migrations")
	if err != nil {
		logging.Fatal("read schema_migrations failed", "error", err)
	}
	defer rows.Close()

	applied := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			logging.Fatal("scan schema_migrations failed", "error", err)
		}
		applied[name] = true
	}
	if err := rows.Err(); err != nil {
		logging.Fatal("read schema_migrations failed", "error", err)
	}
	return applied
}

func mustCollect(dir string) []string {
	files, err := collectUpFiles(dir)
	if err != nil {
		logging.Fatal("read migrations dir failed", "dir", dir, "error", err)
	}
	return files
}

// ---------------------------------------------------------------------------
// (default) 差分マイグレーション
// ---------------------------------------------------------------------------
func runIncremental(ctx context.Context, pool *pgxpool.Pool, dir string) {
	ensureSchemaMigrations(ctx, pool)

	pending := pendingMigrations(mustCollect(dir), appliedMigrations(ctx, pool))
	for _, name := range pending {
		sql, err := os.ReadFile(filepath.Join(dir, name+".up.sql"))
		if err != nil {
			logging.Fatal("read migration failed", "migration", name, "error", err)
		}

		tx, err := pool.Begin(ctx)
		if err != nil {
			logging.Fatal("begin failed", "migration", name, "error", err)
		}
		if _, err := tx.Exec(ctx, string(sql)); err != nil {
			_ = tx.Rollback(ctx)
			logging.Fatal("migration failed", "migration", name, "error", err)
		}
		if _, err := tx.Exec(ctx, "INSERT INTO schema_migrations (name) VALUES ($1)", name); err != nil {
			_ = tx.Rollback(ctx)
			logging.Fatal("record migration failed", "migration", name, "error", err)
		}
		if err := tx.Commit(ctx); err != nil {
			logging.Fatal("commit failed", "migration", name, "error", err)
		}
		slog.Info("migration completed", "migration", name)
	}

	if len(pending) == 0 {
		slog.Info("all migrations already applied")
	} else {
		slog.Info("migrations completed", "count", len(pending))
	}
}

func runStatus(ctx context.Context, pool *pgxpool.Pool, dir string) {
	ensureSchemaMigrations(ctx, pool)

	files := mustCollect(dir)
	applied := appliedMigrations(ctx, pool)
	for _, f := range files {
		name := strings.TrimSuffix(f, ".up.sql")
		state := "pending"
		if applied[name] {
			state = "applied"
		}
		fmt.Printf("%-8s %s\n", state, name)
	}
}

// ---------------------------------------------------------------------------
// 全テーブル DROP
// ---------------------------------------------------------------------------
func runDropAll(ctx context.Context, pool *pgxpool.Pool, dir string) {
	slog.Info("dropping all tables")
	sql, err := os.ReadFile(filepath.Join(dir, "000_drop_all.sql"))
	if err != nil {
		logging.Fatal("read 000_drop_all.sql failed", "error", err)
	}
	if _, err := pool.Exec(ctx, string(sql)); err != nil {
		logging.Fatal("drop all failed", "error", err)
	}
	slog.Info("all tables dropped")
}
