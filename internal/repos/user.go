package repos

import (
	"context"
	"strings"

	"github.com/education-platform/backend/internal/logger"
	"github.com/education-platform/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepo interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// GetWithMarks loads the user together with their marked competencies.
	GetWithMarks(ctx context.Context, id uint) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	EmailTaken(ctx context.Context, email string, exceptID uint) (bool, error)
	UsernameTaken(ctx context.Context, username string, exceptID uint) (bool, error)
	Save(ctx context.Context, user *models.User) error
}

type userRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo {
	return &userRepo{db: db, log: baseLog.With("repo", "UserRepo")}
}

func (r *userRepo) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(user).Error
}

func (r *userRepo) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) GetWithMarks(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Preload("MarkedCompetences", byID).
		Preload("MarkedCompetences.Competence").
		First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).
		Preload("MarkedCompetences", byID).
		Preload("MarkedCompetences.Competence").
		Order("id").
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepo) EmailTaken(ctx context.Context, email string, exceptID uint) (bool, error) {
	return r.exists(ctx, "email = ?", email, exceptID)
}

func (r *userRepo) UsernameTaken(ctx context.Context, username string, exceptID uint) (bool, error) {
	return r.exists(ctx, "username = ?", username, exceptID)
}

func (r *userRepo) exists(ctx context.Context, cond string, value string, exceptID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where(cond, value).
		Where("id <> ?", exceptID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save writes every column, including false and nil values.
func (r *userRepo) Save(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(user).Error
}
