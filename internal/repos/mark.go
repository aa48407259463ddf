package repos

import (
	"context"

	"github.com/education-platform/backend/internal/logger"
	"github.com/education-platform/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MarkRepo interface {
	// Create always inserts; marking a competence twice yields two rows.
	Create(ctx context.Context, mark *models.MarkedCompetence) error
	List(ctx context.Context) ([]models.MarkedCompetence, error)
	// DeleteForUser removes every mark of competenceID by userID and
	// reports how many rows went away.
	DeleteForUser(ctx context.Context, userID, competenceID uint) (int64, error)
}

type markRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMarkRepo(db *gorm.DB, baseLog *logger.Logger) MarkRepo {
	return &markRepo{db: db, log: baseLog.With("repo", "MarkRepo")}
}

func (r *markRepo) Create(ctx context.Context, mark *models.MarkedCompetence) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(mark).Error
}

func (r *markRepo) List(ctx context.Context) ([]models.MarkedCompetence, error) {
	var marks []models.MarkedCompetence
	if err := r.db.WithContext(ctx).Order("id").Find(&marks).Error; err != nil {
		return nil, err
	}
	return marks, nil
}

func (r *markRepo) DeleteForUser(ctx context.Context, userID, competenceID uint) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND competence_id = ?", userID, competenceID).
		Delete(&models.MarkedCompetence{})
	return res.RowsAffected, res.Error
}
