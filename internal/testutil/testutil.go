// Package testutil opens throwaway databases and seeds rows for tests.
package testutil

import (
	"context"
	"fmt"
	"testing"

	"github.com/education-platform/backend/db"
	"github.com/education-platform/backend/internal/auth"
	"github.com/education-platform/backend/internal/logger"
	"github.com/education-platform/backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormLogger "gorm.io/gorm/logger"
)

// Password is the plain text password of every seeded user.
const Password = "password123"

func Logger(tb testing.TB) *logger.Logger {
	tb.Helper()
	return logger.Nop()
}

// DB opens a private in-memory SQLite database migrated with the
// production model list. Each call gets a new database.
func DB(tb testing.TB) *gorm.DB {
	tb.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())

	cfg := db.GormConfig(Logger(tb))
	cfg.Logger = gormLogger.Default.LogMode(gormLogger.Silent)

	conn, err := gorm.Open(sqlite.Open(dsn), cfg)
	if err != nil {
		tb.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := conn.DB()
	if err != nil {
		tb.Fatalf("sql db: %v", err)
	}
	tb.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.Migrate(conn); err != nil {
		tb.Fatalf("migrate: %v", err)
	}
	return conn
}

type UserOption func(*models.User)

func Staff(u *models.User)     { u.IsStaff = true }
func Superuser(u *models.User) { u.IsSuperuser = true }

func WithProfession(id uint) UserOption {
	return func(u *models.User) { u.ProfessionID = &id }
}

func SeedUser(tb testing.TB, tx *gorm.DB, email string, opts ...UserOption) *models.User {
	tb.Helper()

	hash, err := auth.HashPassword(Password)
	if err != nil {
		tb.Fatalf("hash password: %v", err)
	}

	u := &models.User{
		Email:        email,
		Username:     email,
		PasswordHash: hash,
		IsActive:     true,
	}
	for _, opt := range opts {
		opt(u)
	}

	if err := tx.WithContext(context.Background()).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

// Deactivate flips is_active off; gorm's default tag skips false on insert.
func Deactivate(tb testing.TB, tx *gorm.DB, u *models.User) {
	tb.Helper()
	if err := tx.Model(u).Update("is_active", false).Error; err != nil {
		tb.Fatalf("deactivate user: %v", err)
	}
	u.IsActive = false
}

func SeedProfession(tb testing.TB, tx *gorm.DB, name string) *models.Profession {
	tb.Helper()
	p := &models.Profession{Name: name}
	if err := tx.Create(p).Error; err != nil {
		tb.Fatalf("seed profession: %v", err)
	}
	return p
}

func SeedCompetence(tb testing.TB, tx *gorm.DB, name string, active bool) *models.Competence {
	tb.Helper()
	c := &models.Competence{
		Name:        name,
		Description: "About " + name,
		Difficulty:  "medium",
		IsActive:    active,
	}
	if err := tx.Create(c).Error; err != nil {
		tb.Fatalf("seed competence: %v", err)
	}
	return c
}

func SeedMaterial(tb testing.TB, tx *gorm.DB, competenceID uint, title string) *models.Material {
	tb.Helper()
	content := "Read this"
	m := &models.Material{
		CompetenceID: competenceID,
		MaterialType: models.MaterialText,
		Title:        title,
		Content:      &content,
	}
	if err := tx.Create(m).Error; err != nil {
		tb.Fatalf("seed material: %v", err)
	}
	return m
}

func SeedReview(tb testing.TB, tx *gorm.DB, competenceID, userID uint, rating int) *models.Review {
	tb.Helper()
	r := &models.Review{
		CompetenceID: competenceID,
		UserID:       userID,
		Rating:       rating,
		Comment:      "Useful",
	}
	if err := tx.Create(r).Error; err != nil {
		tb.Fatalf("seed review: %v", err)
	}
	return r
}

func SeedMark(tb testing.TB, tx *gorm.DB, userID, competenceID uint) *models.MarkedCompetence {
	tb.Helper()
	m := &models.MarkedCompetence{UserID: userID, CompetenceID: competenceID}
	if err := tx.Omit(clause.Associations).Create(m).Error; err != nil {
		tb.Fatalf("seed mark: %v", err)
	}
	return m
}

func Count(tb testing.TB, tx *gorm.DB, model interface{}, query string, args ...interface{}) int64 {
	tb.Helper()
	var n int64
	q := tx.Model(model)
	if query != "" {
		q = q.Where(query, args...)
	}
	if err := q.Count(&n).Error; err != nil {
		tb.Fatalf("count %T: %v", model, err)
	}
	return n
}
