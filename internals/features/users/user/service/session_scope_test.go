package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	usermodel "sekolahku_backend/internals/features/users/user/model"
	"sekolahku_backend/internals/helpers/testdb"
)

func openDB(t *testing.T) *gorm.DB {
	t.Helper()
	return testdb.Open(t, &usermodel.ProfileModel{}, &usermodel.UserRoleModel{})
}

func TestResolveSessionScope(t *testing.T) {
	ctx := context.Background()

	t.Run("no user means no scope", func(t *testing.T) {
		scope, ok := ResolveSessionScope(ctx, nil, nil)
		assert.False(t, ok)
		assert.Nil(t, scope)
	})

	t.Run("missing profile", func(t *testing.T) {
		db := openDB(t)
		id := uuid.New()
		require.NoError(t, GrantRole(ctx, db, id, "admin"))

		scope, ok := ResolveSessionScope(ctx, db, &id)
		assert.False(t, ok)
		assert.Nil(t, scope)
	})

	t.Run("profile without level", func(t *testing.T) {
		db := openDB(t)
		id := uuid.New()
		require.NoError(t, EnsureProfileRow(ctx, db, id, "Budi", ""))
		require.NoError(t, GrantRole(ctx, db, id, "admin"))

		_, ok := ResolveSessionScope(ctx, db, &id)
		assert.False(t, ok)
	})

	t.Run("blank or unknown level is rejected", func(t *testing.T) {
		for _, raw := range []string{"   ", "kuliah"} {
			db := openDB(t)
			id := uuid.New()
			lvl := raw
			require.NoError(t, db.Create(&usermodel.ProfileModel{ID: id, FullName: "Dodi", SchoolLevel: &lvl}).Error)
			require.NoError(t, GrantRole(ctx, db, id, "admin"))

			scope, ok := ResolveSessionScope(ctx, db, &id)
			assert.False(t, ok, "level %q", raw)
			assert.Nil(t, scope, "level %q", raw)
		}
	})

	t.Run("profile without role", func(t *testing.T) {
		db := openDB(t)
		id := uuid.New()
		require.NoError(t, EnsureProfileRow(ctx, db, id, "Budi", "sd"))

		_, ok := ResolveSessionScope(ctx, db, &id)
		assert.False(t, ok)
	})

	t.Run("highest role wins", func(t *testing.T) {
		db := openDB(t)
		id := uuid.New()
		require.NoError(t, EnsureProfileRow(ctx, db, id, "Siti", "SMP"))
		for _, r := range []string{"viewer", "admin", "staff"} {
			require.NoError(t, GrantRole(ctx, db, id, r))
		}

		scope, ok := ResolveSessionScope(ctx, db, &id)
		require.True(t, ok)
		assert.Equal(t, id, scope.UserID)
		assert.Equal(t, "smp", scope.SchoolLevel)
		assert.Equal(t, "admin", scope.Role)
		assert.True(t, scope.IsAdmin())
		assert.True(t, scope.CanEdit())
		assert.Equal(t, "SMP", scope.LevelLabel())
	})

	t.Run("viewer cannot edit", func(t *testing.T) {
		db := openDB(t)
		id := uuid.New()
		require.NoError(t, EnsureProfileRow(ctx, db, id, "Ani", "tk"))
		require.NoError(t, GrantRole(ctx, db, id, "viewer"))

		scope, ok := ResolveSessionScope(ctx, db, &id)
		require.True(t, ok)
		assert.False(t, scope.IsAdmin())
		assert.False(t, scope.CanEdit())
	})
}

func TestEnsureProfileRowIsIdempotent(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)
	id := uuid.New()

	require.NoError(t, EnsureProfileRow(ctx, db, id, "Budi", "sd"))
	require.NoError(t, EnsureProfileRow(ctx, db, id, "Budi Lain", "sma"))
	require.NoError(t, GrantRole(ctx, db, id, "staff"))
	require.NoError(t, GrantRole(ctx, db, id, "staff"))

	p, err := FindProfile(ctx, db, id)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "Budi", p.FullName)
	assert.Equal(t, "sd", *p.SchoolLevel)

	roles, err := ListRoles(ctx, db, id)
	require.NoError(t, err)
	assert.Equal(t, []string{"staff"}, roles)

	missing, err := FindProfile(ctx, db, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, missing)
}
