package db

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var embeddedMigrations embed.FS

func init() {
	// modernc регистрирует драйвер под именем "sqlite", sqlx знает только "sqlite3".
	sqlx.BindDriver("sqlite", sqlx.QUESTION)
}

// Open создаёт подключение к базе выбранного драйвера (postgres или sqlite).
func Open(ctx context.Context, driver, dsn string) (*sqlx.DB, error) {
	switch driver {
	case "postgres":
		return NewPostgres(ctx, dsn)
	case "sqlite":
		return NewSQLite(ctx, dsn)
	default:
		return nil, fmt.Errorf("db: неизвестный драйвер %q", driver)
	}
}

// NewPostgres создаёт подключение к PostgreSQL с заданным DSN.
func NewPostgres(ctx context.Context, dsn string) (*sqlx.DB, error) {
	conn, err := sqlx.ConnectContext(ctx, "postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: не удалось подключиться: %w", err)
	}

	conn.SetMaxOpenConns(25)
	conn.SetMaxIdleConns(10)
	conn.SetConnMaxLifetime(5 * time.Minute)

	return conn, nil
}

// NewSQLite открывает файл SQLite (или in-memory базу) для локальной разработки и тестов.
// SQLite не допускает параллельных писателей, поэтому пул ограничен одним соединением.
func NewSQLite(ctx context.Context, dsn string) (*sqlx.DB, error) {
	if !strings.Contains(dsn, "_pragma=foreign_keys") {
		sep := "?"
		if strings.Contains(dsn, "?") {
			sep = "&"
		}
		dsn += sep + "_pragma=foreign_keys(1)"
	}

	conn, err := sqlx.ConnectContext(ctx, "sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: не удалось открыть базу: %w", err)
	}
	conn.SetMaxOpenConns(1)

	return conn, nil
}

// RunMigrations применяет встроенные SQL миграции.
func RunMigrations(ctx context.Context, conn *sqlx.DB) error {
	sub, err := fs.Sub(embeddedMigrations, "migrations")
	if err != nil {
		return fmt.Errorf("db: не удалось открыть встроенные миграции: %w", err)
	}
	return RunMigrationsFS(ctx, conn, sub)
}

// RunMigrationsFS выполняет SQL файлы из fsys по порядку имён, пропуская уже применённые.
func RunMigrationsFS(ctx context.Context, conn *sqlx.DB, fsys fs.FS) error {
	// Создаём таблицу для отслеживания выполненных миграций
	if err := initMigrationsTable(ctx, conn); err != nil {
		return fmt.Errorf("db: не удалось инициализировать таблицу миграций: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("db: не удалось прочитать каталог миграций: %w", err)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}

		migrationName := entry.Name()

		alreadyApplied, err := isMigrationApplied(ctx, conn, migrationName)
		if err != nil {
			return fmt.Errorf("db: не удалось проверить статус миграции %s: %w", migrationName, err)
		}
		if alreadyApplied {
			continue
		}

		if err := applyMigration(ctx, conn, fsys, migrationName); err != nil {
			return err
		}
	}

	return nil
}

func initMigrationsTable(ctx context.Context, conn *sqlx.DB) error {
	query := `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			name TEXT PRIMARY KEY,
			applied_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`
	_, err := conn.ExecContext(ctx, query)
	return err
}

func isMigrationApplied(ctx context.Context, conn *sqlx.DB, migrationName string) (bool, error) {
	var count int
	query := conn.Rebind(`SELECT COUNT(*) FROM schema_migrations WHERE name = ?`)
	if err := conn.GetContext(ctx, &count, query, migrationName); err != nil {
		return false, err
	}
	return count > 0, nil
}

// applyMigration читает и выполняет конкретный SQL файл в транзакции.
func applyMigration(ctx context.Context, conn *sqlx.DB, fsys fs.FS, migrationName string) error {
	sqlBytes, err := fs.ReadFile(fsys, migrationName)
	if err != nil {
		return fmt.Errorf("db: не удалось прочитать миграцию %s: %w", migrationName, err)
	}

	tx, err := conn.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("db: не удалось начать транзакцию для миграции %s: %w", migrationName, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, string(sqlBytes)); err != nil {
		return fmt.Errorf("db: не удалось выполнить миграцию %s: %w", migrationName, err)
	}

	if _, err := tx.ExecContext(ctx, tx.Rebind(`INSERT INTO schema_migrations (name) VALUES (?)`), migrationName); err != nil {
		return fmt.Errorf("db: не удалось отметить миграцию %s как выполненную: %w", migrationName, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("db: не удалось зафиксировать транзакцию для миграции %s: %w", migrationName, err)
	}

	return nil
}
