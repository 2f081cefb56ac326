package model

import (
	"time"

	"gorm.io/gorm"
)

// UserPG model for PostgreSQL storage
type UserPG struct {
	ID       string `gorm:"primaryKey"`
	Username string `gorm:"size:255;not null;uniqueIndex"`

	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

// TableName overrides the table name
func (UserPG) TableName() string {
	return "users"
}

// ProjectPG is a saved filter set belonging to a user
type ProjectPG struct {
	ID      string `gorm:"primaryKey"`
	UserID  string `gorm:"not null;index"`
	Name    string `gorm:"size:255;not null"`
	Filters string `gorm:"type:text;not null"` // filter set as a JSON string

	CreatedAt time.Time      `gorm:"column:created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

// TableName overrides the table name
func (ProjectPG) TableName() string {
	return "projects"
}

// Project is the in-memory/API shape of a saved filter set
type Project struct {
	Name    string `json:"name"`
	Filters string `json:"filters"`
}

// ProjectFromPG creates a Project from ProjectPG
func ProjectFromPG(pg *ProjectPG) Project {
	return Project{
		Name:    pg.Name,
		Filters: pg.Filters,
	}
}
