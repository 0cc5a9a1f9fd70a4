package repository

import (
	"context"
	"errors"

	"job_board_service/internal/chat/domain"

	"gorm.io/gorm"
)

// CatalogRepository resolves jobs and applications from the job board
// catalog. Absence is (nil, nil), matching the directory convention.
type CatalogRepository interface {
	AutoMigrate() error
	// FindApplication returns the application with the employer resolved
	// transitively through its job.
	FindApplication(ctx context.Context, id string) (*domain.Application, error)
	FindJob(ctx context.Context, id string) (*domain.Job, error)
}

type catalogRepository struct {
	db *gorm.DB
}

// NewCatalogRepository create a CatalogRepository
func NewCatalogRepository(db *gorm.DB) CatalogRepository {
	return &catalogRepository{db: db}
}

// AutoMigrate keeps the catalog tables aligned with the models. The job
// board owns this schema; migration here only serves local setups.
func (r *catalogRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Job{}, &domain.Application{})
}

func (r *catalogRepository) FindApplication(ctx context.Context, id string) (*domain.Application, error) {
	var app domain.Application
	err := r.db.WithContext(ctx).First(&app, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var job domain.Job
	err = r.db.WithContext(ctx).First(&job, "id = ?", app.JobID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// an application without its job cannot name a counterparty
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	app.EmployerID = job.EmployerID

	return &app, nil
}

func (r *catalogRepository) FindJob(ctx context.Context, id string) (*domain.Job, error) {
	var job domain.Job
	err := r.db.WithContext(ctx).First(&job, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &job, nil
}
