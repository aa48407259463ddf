package repos

import (
	"github.com/education-platform/backend/internal/logger"
	"gorm.io/gorm"
)

// Repos bundles every repository over one connection pool.
type Repos struct {
	Users       UserRepo
	Professions ProfessionRepo
	Competences CompetenceRepo
	Materials   MaterialRepo
	Reviews     ReviewRepo
	Marks       MarkRepo
}

func New(db *gorm.DB, log *logger.Logger) *Repos {
	return &Repos{
		Users:       NewUserRepo(db, log),
		Professions: NewProfessionRepo(db, log),
		Competences: NewCompetenceRepo(db, log),
		Materials:   NewMaterialRepo(db, log),
		Reviews:     NewReviewRepo(db, log),
		Marks:       NewMarkRepo(db, log),
	}
}

func byID(db *gorm.DB) *gorm.DB {
	return db.Order("id")
}
