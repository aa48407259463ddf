package repos

import (
	"context"

	"github.com/education-platform/backend/internal/logger"
	"github.com/education-platform/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CompetenceRepo interface {
	Create(ctx context.Context, competence *models.Competence) error
	// GetByName returns the bare row without materials or reviews.
	GetByName(ctx context.Context, name string) (*models.Competence, error)
	// GetDetail returns the row with materials and reviews loaded.
	GetDetail(ctx context.Context, name string) (*models.Competence, error)
	List(ctx context.Context, activeOnly bool) ([]models.Competence, error)
	NameTaken(ctx context.Context, name string, exceptID uint) (bool, error)
	Save(ctx context.Context, competence *models.Competence) error
}

type competenceRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCompetenceRepo(db *gorm.DB, baseLog *logger.Logger) CompetenceRepo {
	return &competenceRepo{db: db, log: baseLog.With("repo", "CompetenceRepo")}
}

func (r *competenceRepo) Create(ctx context.Context, competence *models.Competence) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(competence).Error
}

func (r *competenceRepo) GetByName(ctx context.Context, name string) (*models.Competence, error) {
	var competence models.Competence
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&competence).Error; err != nil {
		return nil, err
	}
	return &competence, nil
}

func (r *competenceRepo) GetDetail(ctx context.Context, name string) (*models.Competence, error) {
	var competence models.Competence
	err := r.withChildren(ctx, false).
		Where("name = ?", name).
		First(&competence).Error
	if err != nil {
		return nil, err
	}
	return &competence, nil
}

func (r *competenceRepo) List(ctx context.Context, activeOnly bool) ([]models.Competence, error) {
	var competences []models.Competence
	if err := r.withChildren(ctx, activeOnly).Order("id").Find(&competences).Error; err != nil {
		return nil, err
	}
	return competences, nil
}

func (r *competenceRepo) withChildren(ctx context.Context, activeOnly bool) *gorm.DB {
	q := r.db.WithContext(ctx).
		Preload("Materials", byID).
		Preload("Reviews", byID)
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	return q
}

func (r *competenceRepo) NameTaken(ctx context.Context, name string, exceptID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Competence{}).
		Where("name = ? AND id <> ?", name, exceptID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *competenceRepo) Save(ctx context.Context, competence *models.Competence) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(competence).Error
}
