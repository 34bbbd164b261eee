package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/go-playground/validator/v10"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/iac-studio/projects/internal/models"
	"github.com/iac-studio/projects/internal/repository"
)

// registerModels returns all models that need migration
func registerModels() []interface{} {
	return []interface{}{
		&models.Project{},
	}
}

// runMigrations executes all database migrations
func runMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(registerModels()...); err != nil {
		return err
	}
	return runCustomMigrations(db)
}

// runCustomMigrations handles schema changes AutoMigrate can't handle
func runCustomMigrations(db *gorm.DB) error {
	migrations := []func(*gorm.DB) error{
		addProjectListIndex,
	}
	for _, migration := range migrations {
		if err := migration(db); err != nil {
			return err
		}
	}
	return nil
}

// addProjectListIndex backs the newest-first listing of live projects.
func addProjectListIndex(db *gorm.DB) error {
	return db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_projects_live_created_at
		ON projects(created_at DESC)
		WHERE deleted_at IS NULL
	`).Error
}

type seedProject struct {
	Name          string         `json:"name" validate:"required"`
	Description   string         `json:"description"`
	CloudProvider string         `json:"cloud_provider" validate:"required,oneof=aws gcp azure do"`
	Settings      datatypes.JSON `json:"settings"`
}

// seedProjects inserts the projects in r when the table is empty and
// returns how many were inserted.
func seedProjects(ctx context.Context, repo repository.ProjectRepository, r io.Reader) (int, error) {
	var in []seedProject
	if err := json.NewDecoder(r).Decode(&in); err != nil {
		return 0, fmt.Errorf("decode seed file: %w", err)
	}

	v := validator.New(validator.WithRequiredStructEnabled())
	for i, sp := range in {
		if err := v.Struct(sp); err != nil {
			return 0, fmt.Errorf("seed project %d: %w", i, err)
		}
	}

	existing, err := repo.FetchAll(ctx)
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		return 0, nil
	}

	for _, sp := range in {
		p := models.Project{
			Name:          sp.Name,
			Description:   sp.Description,
			CloudProvider: sp.CloudProvider,
			Settings:      sp.Settings,
		}
		if err := repo.Create(ctx, &p); err != nil {
			return 0, err
		}
	}
	return len(in), nil
}
