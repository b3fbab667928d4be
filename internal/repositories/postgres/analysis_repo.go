package postgres

import (
	"context"

	"github.com/yoockh/jobportal/internal/models"
	"gorm.io/gorm"
)

type AnalysisRepository interface {
	Insert(ctx context.Context, log *models.AnalysisLog) error
	ListByJobSeeker(ctx context.Context, jobSeekerID string, limit int) ([]models.AnalysisLog, error)
}

type analysisRepo struct {
	db *gorm.DB
}

func NewAnalysisRepo(db *gorm.DB) AnalysisRepository {
	return &analysisRepo{db: db}
}

func (r *analysisRepo) Insert(ctx context.Context, log *models.AnalysisLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *analysisRepo) ListByJobSeeker(ctx context.Context, jobSeekerID string, limit int) ([]models.AnalysisLog, error) {
	if limit <= 0 || limit > 50 {
		limit = 20
	}

	rows := []models.AnalysisLog{}
	err := r.db.WithContext(ctx).
		Where("job_seeker_id = ?", jobSeekerID).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}
