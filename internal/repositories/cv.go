package repositories

import (
	"fmt"

	"gorm.io/gorm"

	"jobtrackr/fit-engine/internal/models"
)

type CVRepository interface {
	FindByID(id uint) (*models.CandidateCV, error)
	Create(cv *models.CandidateCV) error
}

type cvRepository struct {
	db *gorm.DB
}

func NewCVRepository(db *gorm.DB) CVRepository {
	return &cvRepository{db: db}
}

func (r *cvRepository) FindByID(id uint) (*models.CandidateCV, error) {
	var cv models.CandidateCV
	if err := r.db.Where("id = ?", id).First(&cv).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("cv not found")
		}
		return nil, fmt.Errorf("failed to find cv: %w", err)
	}
	return &cv, nil
}

func (r *cvRepository) Create(cv *models.CandidateCV) error {
	if err := r.db.Create(cv).Error; err != nil {
		return fmt.Errorf("failed to create cv: %w", err)
	}
	return nil
}
