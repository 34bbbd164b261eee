package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Project represents an IaC project. The read API treats it as an opaque
// JSON document.
type Project struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Name          string         `gorm:"not null;uniqueIndex" json:"name" validate:"required"`
	Description   string         `gorm:"type:text" json:"description,omitempty"`
	CloudProvider string         `gorm:"type:varchar(32);index" json:"cloud_provider" validate:"required,oneof=aws gcp azure do"`
	Settings      datatypes.JSON `gorm:"type:jsonb" json:"settings,omitempty"`
	Archived      bool           `gorm:"not null;default:false;index" json:"archived"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate assigns an ID when the caller did not supply one.
func (p *Project) BeforeCreate(*gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
