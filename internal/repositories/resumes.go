package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/syneepse/ResumeFix/internal/models"
	"gorm.io/gorm"
)

var ErrResumeNotFound = errors.New("resume not found")

type ResumeRepository struct {
	db *gorm.DB
}

func NewResumeRepository(db *gorm.DB) *ResumeRepository {
	return &ResumeRepository{db: db}
}

func (r *ResumeRepository) Create(ctx context.Context, resume *models.Resume) error {
	return r.db.WithContext(ctx).Create(resume).Error
}

// ListByAccount returns the account's resumes, newest first.
func (r *ResumeRepository) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]models.Resume, error) {
	resumes := []models.Resume{}
	err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("upload_date DESC").
		Order("id DESC").
		Find(&resumes).Error
	return resumes, err
}

// GetForAccount returns ErrResumeNotFound both for missing ids and for other owners.
func (r *ResumeRepository) GetForAccount(ctx context.Context, accountID uuid.UUID, id uint) (*models.Resume, error) {
	var resume models.Resume
	err := r.db.WithContext(ctx).
		Where("id = ? AND account_id = ?", id, accountID).
		First(&resume).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrResumeNotFound
	}
	if err != nil {
		return nil, err
	}
	return &resume, nil
}

func (r *ResumeRepository) Delete(ctx context.Context, resume *models.Resume) error {
	result := r.db.WithContext(ctx).
		Where("account_id = ?", resume.AccountID).
		Delete(&models.Resume{}, resume.ID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrResumeNotFound
	}
	return nil
}
