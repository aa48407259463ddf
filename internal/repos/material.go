package repos

import (
	"context"

	"github.com/education-platform/backend/internal/logger"
	"github.com/education-platform/backend/internal/models"
	"gorm.io/gorm"
)

type MaterialRepo interface {
	Create(ctx context.Context, material *models.Material) error
	// GetForCompetence only finds the material when it belongs to competenceID.
	GetForCompetence(ctx context.Context, competenceID, id uint) (*models.Material, error)
	Save(ctx context.Context, material *models.Material) error
	Delete(ctx context.Context, material *models.Material) error
}

type materialRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMaterialRepo(db *gorm.DB, baseLog *logger.Logger) MaterialRepo {
	return &materialRepo{db: db, log: baseLog.With("repo", "MaterialRepo")}
}

func (r *materialRepo) Create(ctx context.Context, material *models.Material) error {
	return r.db.WithContext(ctx).Create(material).Error
}

func (r *materialRepo) GetForCompetence(ctx context.Context, competenceID, id uint) (*models.Material, error) {
	var material models.Material
	err := r.db.WithContext(ctx).
		Where("id = ? AND competence_id = ?", id, competenceID).
		First(&material).Error
	if err != nil {
		return nil, err
	}
	return &material, nil
}

func (r *materialRepo) Save(ctx context.Context, material *models.Material) error {
	return r.db.WithContext(ctx).Save(material).Error
}

func (r *materialRepo) Delete(ctx context.Context, material *models.Material) error {
	return r.db.WithContext(ctx).Delete(material).Error
}
