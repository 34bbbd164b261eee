package repository

import (
	"context"

	"github.com/iac-studio/projects/internal/models"
	"gorm.io/gorm"
)

type ProjectRepository interface {
	BaseRepository[models.Project]
	// FetchAll returns every project, newest first. An empty table yields an
	// empty, non-nil slice.
	FetchAll(ctx context.Context) ([]models.Project, error)
}

type projectRepository struct {
	BaseRepository[models.Project]
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{BaseRepository: NewBaseRepository[models.Project](db), db: db}
}

func (r *projectRepository) FetchAll(ctx context.Context) ([]models.Project, error) {
	out := []models.Project{}
	if err := r.db.WithContext(ctx).Order("created_at DESC").Order("id").Find(&out).Error; err != nil {
		return nil, wrapDBError(r.db, err, "list projects failed")
	}
	return out, nil
}
