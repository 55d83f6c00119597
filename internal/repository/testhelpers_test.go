package repository

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/portfolio-backend/internal/db"
	"github.com/ignatzorin/portfolio-backend/internal/models"
)

// newTestDB поднимает in-memory SQLite с применёнными миграциями.
func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	ctx := context.Background()
	conn, err := db.NewSQLite(ctx, "file::memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	require.NoError(t, db.RunMigrations(ctx, conn))
	return conn
}

// createUser создаёт аккаунт без визитки и настроек.
func createUser(t *testing.T, conn *sqlx.DB, email string) uuid.UUID {
	t.Helper()

	user := &models.User{
		Email:        strings.ToLower(email),
		PasswordHash: "hash",
		Role:         models.RoleAdmin,
	}
	require.NoError(t, NewUserRepository(conn).CreateAccount(context.Background(), user, nil, nil))
	return user.ID
}
