package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"sessioncart/internal/domain/model"
	"sessioncart/internal/infra/db"
	repo "sessioncart/internal/repository"
)

func TestUserGorm_CreateAndFind(t *testing.T) {
	ctx := context.Background()
	r := NewUserGormRepository(db.OpenTest(t))

	u := &model.User{Email: "a@example.com", PasswordHash: "hash"}
	require.NoError(t, r.Create(ctx, u))
	assert.NotZero(t, u.ID)

	byEmail, err := r.FindByEmail(ctx, "a@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byEmail.ID)

	assert.Equal(t, "hash", byEmail.PasswordHash)

	_, err = r.FindByEmail(ctx, "missing@example.com")
	assert.ErrorIs(t, err, repo.ErrNotFound)
}

func TestUserGorm_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	r := NewUserGormRepository(db.OpenTest(t))

	require.NoError(t, r.Create(ctx, &model.User{Email: "dup@example.com", PasswordHash: "h1"}))
	err := r.Create(ctx, &model.User{Email: "dup@example.com", PasswordHash: "h2"})
	assert.ErrorIs(t, err, repo.ErrDuplicateEmail)
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(gorm.ErrDuplicatedKey))
	assert.True(t, isUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isUniqueViolation(errors.New("other")))
}

func TestTranslate(t *testing.T) {
	assert.Nil(t, translate(nil))
	assert.ErrorIs(t, translate(gorm.ErrRecordNotFound), repo.ErrNotFound)

	other := errors.New("other")
	assert.Equal(t, other, translate(other))
}
