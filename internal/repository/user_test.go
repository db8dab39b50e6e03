package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUser_GetByID(t *testing.T) {
	ctx := context.Background()
	query := regexp.QuoteMeta("SELECT * FROM `users` WHERE id = ?")
	columns := []string{"id", "email", "tier", "blocked", "premium_since", "created_at", "updated_at"}

	t.Run("Found", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewUserRepository(db)

		now := time.Now()
		mock.ExpectQuery(query).WillReturnRows(sqlmock.NewRows(columns).
			AddRow(42, "student@example.uz", "free", false, nil, now, now))

		usr, err := repo.GetByID(ctx, 42)
		require.NoError(t, err)
		assert.Equal(t, int64(42), usr.ID)
		assert.Equal(t, "free", usr.Tier)
		assert.False(t, usr.Blocked)
	})

	t.Run("Not found", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewUserRepository(db)

		mock.ExpectQuery(query).WillReturnRows(sqlmock.NewRows(columns))

		_, err := repo.GetByID(ctx, 7)
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestUser_MarkPremium(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectExec(`UPDATE .users. SET .*premium_since.=COALESCE\(premium_since, \?\)`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.MarkPremium(context.Background(), 42, time.Now()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
