package repos

import (
	"context"

	"github.com/education-platform/backend/internal/logger"
	"github.com/education-platform/backend/internal/models"
	"gorm.io/gorm"
)

type ProfessionRepo interface {
	Create(ctx context.Context, profession *models.Profession) error
	GetByID(ctx context.Context, id uint) (*models.Profession, error)
	GetByName(ctx context.Context, name string) (*models.Profession, error)
	List(ctx context.Context) ([]models.Profession, error)
	NameTaken(ctx context.Context, name string, exceptID uint) (bool, error)
	Save(ctx context.Context, profession *models.Profession) error
	// Delete removes the profession and clears it from users and competencies.
	Delete(ctx context.Context, profession *models.Profession) error
}

type professionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProfessionRepo(db *gorm.DB, baseLog *logger.Logger) ProfessionRepo {
	return &professionRepo{db: db, log: baseLog.With("repo", "ProfessionRepo")}
}

func (r *professionRepo) Create(ctx context.Context, profession *models.Profession) error {
	return r.db.WithContext(ctx).Create(profession).Error
}

func (r *professionRepo) GetByID(ctx context.Context, id uint) (*models.Profession, error) {
	var profession models.Profession
	if err := r.db.WithContext(ctx).First(&profession, id).Error; err != nil {
		return nil, err
	}
	return &profession, nil
}

func (r *professionRepo) GetByName(ctx context.Context, name string) (*models.Profession, error) {
	var profession models.Profession
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&profession).Error; err != nil {
		return nil, err
	}
	return &profession, nil
}

func (r *professionRepo) List(ctx context.Context) ([]models.Profession, error) {
	var professions []models.Profession
	if err := r.db.WithContext(ctx).Order("id").Find(&professions).Error; err != nil {
		return nil, err
	}
	return professions, nil
}

func (r *professionRepo) NameTaken(ctx context.Context, name string, exceptID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Profession{}).
		Where("name = ? AND id <> ?", name, exceptID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *professionRepo) Save(ctx context.Context, profession *models.Profession) error {
	return r.db.WithContext(ctx).Save(profession).Error
}

func (r *professionRepo) Delete(ctx context.Context, profession *models.Profession) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.User{}).
			Where("profession_id = ?", profession.ID).
			Update("profession_id", nil).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.Competence{}).
			Where("profession_id = ?", profession.ID).
			Update("profession_id", nil).Error; err != nil {
			return err
		}

		return tx.Delete(profession).Error
	})
}
