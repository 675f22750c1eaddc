package repositories

import (
	"fmt"

	"gorm.io/gorm"

	"jobtrackr/fit-engine/internal/models"
)

type JobRepository interface {
	FindByJobID(jobID string) (*models.JobPosting, error)
	Create(job *models.JobPosting) error
}

type jobRepository struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) JobRepository {
	return &jobRepository{db: db}
}

func (r *jobRepository) FindByJobID(jobID string) (*models.JobPosting, error) {
	var job models.JobPosting
	if err := r.db.Where("job_id = ?", jobID).First(&job).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("job not found")
		}
		return nil, fmt.Errorf("failed to find job: %w", err)
	}
	return &job, nil
}

func (r *jobRepository) Create(job *models.JobPosting) error {
	if err := r.db.Create(job).Error; err != nil {
		return fmt.Errorf("failed to create job: %w", err)
	}
	return nil
}
