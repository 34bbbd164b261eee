package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/iac-studio/projects/internal/models"
	appErr "github.com/iac-studio/projects/pkg/errors"
)

func setupProjectsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	projects := `
CREATE TABLE IF NOT EXISTS projects (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL UNIQUE,
  description TEXT,
  cloud_provider TEXT,
  settings TEXT,
  archived INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME,
  deleted_at DATETIME
);`
	require.NoError(t, db.Exec(projects).Error)

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func TestProjectRepositoryFetchAllEmpty(t *testing.T) {
	repo := NewProjectRepository(setupProjectsTestDB(t))

	out, err := repo.FetchAll(context.Background())
	require.NoError(t, err)
	require.NotNil(t, out)
	require.Empty(t, out)
}

func TestProjectRepositoryFetchAllNewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := NewProjectRepository(setupProjectsTestDB(t))

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, name := range []string{"network", "cluster", "bucket"} {
		p := models.Project{
			Name:          name,
			CloudProvider: "aws",
			Settings:      datatypes.JSON(`{"region":"us-east-1"}`),
			CreatedAt:     base.Add(time.Duration(i) * time.Hour),
		}
		require.NoError(t, repo.Create(ctx, &p))
		require.NotEqual(t, uuid.Nil, p.ID)
	}

	out, err := repo.FetchAll(ctx)
	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.Equal(t, []string{"bucket", "cluster", "network"}, []string{out[0].Name, out[1].Name, out[2].Name})
	assert.JSONEq(t, `{"region":"us-east-1"}`, string(out[0].Settings))
}

func TestProjectRepositoryFetchAllIsRepeatable(t *testing.T) {
	ctx := context.Background()
	repo := NewProjectRepository(setupProjectsTestDB(t))
	require.NoError(t, repo.Create(ctx, &models.Project{Name: "edge", CloudProvider: "gcp"}))

	first, err := repo.FetchAll(ctx)
	require.NoError(t, err)
	second, err := repo.FetchAll(ctx)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestProjectRepositoryFetchAllClosedDB(t *testing.T) {
	db := setupProjectsTestDB(t)
	repo := NewProjectRepository(db)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	out, err := repo.FetchAll(context.Background())
	require.Error(t, err)
	require.Nil(t, out)
	assert.True(t, appErr.IsCode(err, appErr.CodeInternal))
	assert.Equal(t, "sqlite", appErr.MetaOf(err)["driver"])
}

func TestProjectRepositoryFetchAllCanceled(t *testing.T) {
	repo := NewProjectRepository(setupProjectsTestDB(t))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := repo.FetchAll(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.True(t, appErr.IsCode(err, appErr.CodeCanceled))
}
