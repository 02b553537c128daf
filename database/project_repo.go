package database

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jcallahan/portfolio-site-backend/models"
)

type ProjectRepo struct {
	db *gorm.DB
}

func NewProjectRepo(db *gorm.DB) *ProjectRepo {
	return &ProjectRepo{db}
}

// GetDB returns the underlying database connection for debugging purposes
func (r *ProjectRepo) GetDB() *gorm.DB {
	return r.db
}

// FindAll returns all projects, newest first
func (r *ProjectRepo) FindAll() ([]*models.Project, error) {
	var projects []*models.Project
	err := r.db.Order("created_at DESC").Find(&projects).Error
	return projects, err
}

// FindFeatured returns the featured projects, newest first
func (r *ProjectRepo) FindFeatured() ([]*models.Project, error) {
	var projects []*models.Project
	err := r.db.Where("featured = ?", true).Order("created_at DESC").Find(&projects).Error
	return projects, err
}

// FindByID returns a project by its ID. A missing row surfaces as
// gorm.ErrRecordNotFound.
func (r *ProjectRepo) FindByID(id uuid.UUID) (*models.Project, error) {
	var project models.Project
	err := r.db.First(&project, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// Add inserts a new project into the database
func (r *ProjectRepo) Add(project *models.Project) error {
	return r.db.Create(project).Error
}

// Update overwrites every caller-settable field of the project in a single
// conditional statement. Zero rows affected means the project vanished (or
// never existed) and comes back as gorm.ErrRecordNotFound, so there is no
// separate existence check to race against a concurrent delete.
func (r *ProjectRepo) Update(project *models.Project) error {
	tx := r.db.Model(&models.Project{}).
		Where("id = ?", project.ID).
		Select("title", "description", "long_description", "technologies",
			"image_url", "demo_url", "github_url", "category", "featured").
		Updates(project)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes a project permanently. Like Update, not-found is decided by
// the row count of the single DELETE.
func (r *ProjectRepo) Delete(id uuid.UUID) error {
	tx := r.db.Delete(&models.Project{}, "id = ?", id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
