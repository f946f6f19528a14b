package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sekolahku_backend/internals/configs"
	authHelper "sekolahku_backend/internals/features/users/auth/helper"
	authModel "sekolahku_backend/internals/features/users/auth/model"
	authRepo "sekolahku_backend/internals/features/users/auth/repository"
	userModel "sekolahku_backend/internals/features/users/user/model"
	helpersAuth "sekolahku_backend/internals/helpers/auth"
	"sekolahku_backend/internals/helpers/testdb"
)


func TestAuthenticate(t *testing.T) {
	ctx := context.Background()
	db := testdb.Open(t, &userModel.UserModel{})

	hash, err := authHelper.HashPassword("rahasia123")
	require.NoError(t, err)
	active := &userModel.UserModel{UserName: "budi", Email: "budi@sekolah.id", Password: hash, IsActive: true}
	require.NoError(t, authRepo.CreateUser(ctx, db, active))
	inactive := &userModel.UserModel{UserName: "ani", Email: "ani@sekolah.id", Password: hash, IsActive: true}
	require.NoError(t, authRepo.CreateUser(ctx, db, inactive))
	require.NoError(t, db.Model(inactive).Update("is_active", false).Error)

	u, err := Authenticate(ctx, db, "budi", "rahasia123")
	require.NoError(t, err)
	assert.Equal(t, active.ID, u.ID)

	u, err = Authenticate(ctx, db, " budi@sekolah.id ", "rahasia123")
	require.NoError(t, err)
	assert.Equal(t, active.ID, u.ID)

	_, err = Authenticate(ctx, db, "budi", "salah")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = Authenticate(ctx, db, "tidak-ada", "rahasia123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = Authenticate(ctx, db, "ani", "rahasia123")
	assert.ErrorIs(t, err, ErrInactiveUser)

	_, err = Authenticate(ctx, db, "", "x")
	assert.Error(t, err)
}

func TestIssueAndRevokeAccessToken(t *testing.T) {
	ctx := context.Background()
	db := testdb.Open(t, &authModel.TokenBlacklist{})

	prev := configs.JWTSecret
	configs.JWTSecret = "unit-test-secret"
	t.Cleanup(func() { configs.JWTSecret = prev })

	now := time.Now().UTC()
	user := userModel.UserModel{UserName: "budi"}
	tok, exp, err := IssueAccessToken(user, now)
	require.NoError(t, err)
	assert.NotEmpty(t, tok)
	assert.WithinDuration(t, now.Add(accessTTL()), exp, time.Second)

	require.NoError(t, RevokeAccessToken(ctx, db, tok))
	black, err := helpersAuth.IsBlacklisted(ctx, db, tok, configs.JWTSecret)
	require.NoError(t, err)
	assert.True(t, black)

	assert.NoError(t, RevokeAccessToken(ctx, db, ""))
}
