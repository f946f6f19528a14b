package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	model "sekolahku_backend/internals/features/school/achievements/model"
	"sekolahku_backend/internals/helpers/testdb"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func seed(t *testing.T, db *gorm.DB, level, title, date string) *model.AchievementModel {
	t.Helper()
	row, err := SaveAchievement(context.Background(), db, nil, level, AchievementFields{Title: title, Date: day(date)})
	require.NoError(t, err)
	return row
}

func titles(rows []model.AchievementModel) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.Title)
	}
	return out
}

func TestFetchAchievementsScoping(t *testing.T) {
	ctx := context.Background()
	db := testdb.Open(t, &model.AchievementModel{})

	seed(t, db, "sd", "SD lama", "2023-05-01")
	seed(t, db, "smp", "SMP baru", "2024-08-17")
	seed(t, db, "sd", "SD baru", "2024-02-10")
	seed(t, db, "", "Tanpa jenjang", "2022-01-01")

	tests := []struct {
		name  string
		role  string
		level string
		want  []string
	}{
		{"admin sd only sees sd, newest first", "admin", "sd", []string{"SD baru", "SD lama"}},
		{"admin level is case-insensitive", "admin", "SMP", []string{"SMP baru"}},
		{"admin without level sees all", "admin", "", []string{"SMP baru", "SD baru", "SD lama", "Tanpa jenjang"}},
		{"staff sees all levels", "staff", "sd", []string{"SMP baru", "SD baru", "SD lama", "Tanpa jenjang"}},
		{"viewer sees all levels", "viewer", "smp", []string{"SMP baru", "SD baru", "SD lama", "Tanpa jenjang"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := FetchAchievements(ctx, db, tt.role, tt.level)
			require.NoError(t, err)
			assert.Equal(t, tt.want, titles(rows))
			for i := 1; i < len(rows); i++ {
				assert.False(t, rows[i].Date().After(rows[i-1].Date()), "ordered by date desc")
			}
		})
	}
}

func TestFetchAchievementsEmpty(t *testing.T) {
	db := testdb.Open(t, &model.AchievementModel{})
	rows, err := FetchAchievements(context.Background(), db, "admin", "sd")
	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestSaveAchievementInsertAndUpdate(t *testing.T) {
	ctx := context.Background()
	db := testdb.Open(t, &model.AchievementModel{})

	created, err := SaveAchievement(ctx, db, nil, "SMA", AchievementFields{
		Title:       "  Juara 1 OSN  ",
		Description: "Tingkat provinsi",
		Date:        day("2024-09-01"),
		ImageURL:    "https://cdn.example/a.webp",
	})
	require.NoError(t, err)
	require.NotNil(t, created.SchoolLevel)
	assert.Equal(t, "sma", *created.SchoolLevel)
	assert.Equal(t, "Juara 1 OSN", created.Title)

	updated, err := SaveAchievement(ctx, db, &created.ID, "sd", AchievementFields{
		Title: "Juara 2 OSN",
		Date:  day("2024-09-02"),
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Juara 2 OSN", updated.Title)
	assert.Equal(t, "2024-09-02", updated.Date().Format("2006-01-02"))
	assert.Nil(t, updated.ImageURL)
	require.NotNil(t, updated.SchoolLevel)
	assert.Equal(t, "sma", *updated.SchoolLevel, "update keeps the original level")

	var n int64
	require.NoError(t, db.Model(&model.AchievementModel{}).Count(&n).Error)
	assert.Equal(t, int64(1), n)
}

func TestSaveAchievementValidationAndMissing(t *testing.T) {
	ctx := context.Background()
	db := testdb.Open(t, &model.AchievementModel{})

	_, err := SaveAchievement(ctx, db, nil, "sd", AchievementFields{Title: " ", Date: day("2024-01-01")})
	assert.ErrorIs(t, err, ErrTitleRequired)
	_, err = SaveAchievement(ctx, db, nil, "sd", AchievementFields{Title: "x"})
	assert.ErrorIs(t, err, ErrDateRequired)

	missing := uuid.New()
	_, err = SaveAchievement(ctx, db, &missing, "sd", AchievementFields{Title: "x", Date: day("2024-01-01")})
	assert.ErrorIs(t, err, ErrAchievementNotFound)
}

func TestDeleteAchievement(t *testing.T) {
	ctx := context.Background()
	db := testdb.Open(t, &model.AchievementModel{})

	keep := seed(t, db, "sd", "Tetap", "2024-01-01")
	gone := seed(t, db, "sd", "Dihapus", "2024-02-01")

	require.NoError(t, DeleteAchievement(ctx, db, gone.ID))
	assert.ErrorIs(t, DeleteAchievement(ctx, db, gone.ID), ErrAchievementNotFound)

	rows, err := FetchAchievements(ctx, db, "admin", "sd")
	require.NoError(t, err)
	for _, r := range rows {
		assert.NotEqual(t, gone.ID, r.ID)
	}
	assert.Equal(t, []string{keep.Title}, titles(rows))

	_, err = GetAchievement(ctx, db, gone.ID)
	assert.ErrorIs(t, err, ErrAchievementNotFound)
}

type fakeImages struct {
	deleted []string
}

func (f *fakeImages) DeleteByPublicURL(_ context.Context, u string) error {
	f.deleted = append(f.deleted, u)
	return nil
}

func TestRemoveAchievement(t *testing.T) {
	ctx := context.Background()
	db := testdb.Open(t, &model.AchievementModel{})
	images := &fakeImages{}

	withImage, err := SaveAchievement(ctx, db, nil, "sd", AchievementFields{
		Title: "Bergambar", Date: day("2024-01-01"), ImageURL: "https://cdn.test/a.webp",
	})
	require.NoError(t, err)
	plain := seed(t, db, "sd", "Polos", "2024-02-01")

	require.NoError(t, RemoveAchievement(ctx, db, withImage.ID, images))
	require.NoError(t, RemoveAchievement(ctx, db, plain.ID, images))
	assert.Equal(t, []string{"https://cdn.test/a.webp"}, images.deleted)

	assert.ErrorIs(t, RemoveAchievement(ctx, db, plain.ID, images), ErrAchievementNotFound)
	assert.ErrorIs(t, RemoveAchievement(ctx, db, uuid.New(), nil), ErrAchievementNotFound)
}
