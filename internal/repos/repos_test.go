package repos

import (
	"context"
	"errors"
	"testing"

	"github.com/education-platform/backend/internal/models"
	"github.com/education-platform/backend/internal/testutil"
	"gorm.io/gorm"
)

func TestUserRepo(t *testing.T) {
	db := testutil.DB(t)
	repo := NewUserRepo(db, testutil.Logger(t))
	ctx := context.Background()

	user := &models.User{Email: "ada@example.com", Username: "ada", PasswordHash: "x", IsActive: true}
	if err := repo.Create(ctx, user); err != nil {
		t.Fatalf("Create: %v", err)
	}

	dup := &models.User{Email: "ada@example.com", Username: "other", PasswordHash: "x"}
	if err := repo.Create(ctx, dup); !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("Create duplicate: expected ErrDuplicatedKey, got %v", err)
	}

	got, err := repo.GetByEmail(ctx, "  ADA@example.com ")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if got.ID != user.ID || !got.IsActive {
		t.Fatalf("GetByEmail: unexpected user %+v", got)
	}

	taken, err := repo.EmailTaken(ctx, "ada@example.com", 0)
	if err != nil || !taken {
		t.Fatalf("EmailTaken: got %v, %v", taken, err)
	}
	taken, err = repo.EmailTaken(ctx, "ada@example.com", user.ID)
	if err != nil || taken {
		t.Fatalf("EmailTaken excluding self: got %v, %v", taken, err)
	}
	taken, err = repo.UsernameTaken(ctx, "ada", 0)
	if err != nil || !taken {
		t.Fatalf("UsernameTaken: got %v, %v", taken, err)
	}

	got.IsActive = false
	got.IsStaff = true
	if err := repo.Save(ctx, got); err != nil {
		t.Fatalf("Save: %v", err)
	}
	reloaded, err := repo.GetByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if reloaded.IsActive || !reloaded.IsStaff {
		t.Fatalf("Save did not persist flags: %+v", reloaded)
	}

	if _, err := repo.GetByID(ctx, 9999); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("GetByID missing: expected ErrRecordNotFound, got %v", err)
	}
}

func TestUserRepoMarks(t *testing.T) {
	db := testutil.DB(t)
	repo := NewUserRepo(db, testutil.Logger(t))
	ctx := context.Background()

	user := testutil.SeedUser(t, db, "marks@example.com")
	other := testutil.SeedUser(t, db, "other@example.com")
	golang := testutil.SeedCompetence(t, db, "Go", true)
	sql := testutil.SeedCompetence(t, db, "SQL", true)
	testutil.SeedMark(t, db, user.ID, golang.ID)
	testutil.SeedMark(t, db, user.ID, sql.ID)

	got, err := repo.GetWithMarks(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetWithMarks: %v", err)
	}
	if len(got.MarkedCompetences) != 2 {
		t.Fatalf("expected 2 marks, got %d", len(got.MarkedCompetences))
	}
	if got.MarkedCompetences[0].Competence.Name != "Go" || got.MarkedCompetences[1].Competence.Name != "SQL" {
		t.Fatalf("marks not ordered or not preloaded: %+v", got.MarkedCompetences)
	}

	users, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(users) != 2 || users[1].ID != other.ID || len(users[1].MarkedCompetences) != 0 {
		t.Fatalf("List: unexpected result %+v", users)
	}
}

func TestProfessionRepoDeleteClearsReferences(t *testing.T) {
	db := testutil.DB(t)
	repo := NewProfessionRepo(db, testutil.Logger(t))
	ctx := context.Background()

	backend := testutil.SeedProfession(t, db, "Backend")
	user := testutil.SeedUser(t, db, "dev@example.com", testutil.WithProfession(backend.ID))
	competence := testutil.SeedCompetence(t, db, "Go", true)
	if err := db.Model(competence).Update("profession_id", backend.ID).Error; err != nil {
		t.Fatalf("link competence: %v", err)
	}

	taken, err := repo.NameTaken(ctx, "Backend", 0)
	if err != nil || !taken {
		t.Fatalf("NameTaken: got %v, %v", taken, err)
	}

	if err := repo.Delete(ctx, backend); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if _, err := repo.GetByName(ctx, "Backend"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected profession to be gone, got %v", err)
	}

	var reloaded models.User
	if err := db.First(&reloaded, user.ID).Error; err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if reloaded.ProfessionID != nil {
		t.Fatalf("user profession should be cleared, got %v", *reloaded.ProfessionID)
	}

	var reloadedCompetence models.Competence
	if err := db.First(&reloadedCompetence, competence.ID).Error; err != nil {
		t.Fatalf("reload competence: %v", err)
	}
	if reloadedCompetence.ProfessionID != nil {
		t.Fatalf("competence profession should be cleared")
	}
}

func TestCompetenceRepo(t *testing.T) {
	db := testutil.DB(t)
	repo := NewCompetenceRepo(db, testutil.Logger(t))
	ctx := context.Background()

	active := testutil.SeedCompetence(t, db, "Go", true)
	testutil.SeedCompetence(t, db, "Rust", false)
	testutil.SeedMaterial(t, db, active.ID, "Tour of Go")
	testutil.SeedMaterial(t, db, active.ID, "Effective Go")
	author := testutil.SeedUser(t, db, "author@example.com")
	testutil.SeedReview(t, db, active.ID, author.ID, 5)

	all, err := repo.List(ctx, false)
	if err != nil {
		t.Fatalf("List all: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("List all: expected 2, got %d", len(all))
	}

	onlyActive, err := repo.List(ctx, true)
	if err != nil {
		t.Fatalf("List active: %v", err)
	}
	if len(onlyActive) != 1 || onlyActive[0].Name != "Go" {
		t.Fatalf("List active: unexpected %+v", onlyActive)
	}
	if len(onlyActive[0].Materials) != 2 || onlyActive[0].Materials[0].Title != "Tour of Go" {
		t.Fatalf("materials not preloaded in order: %+v", onlyActive[0].Materials)
	}
	if len(onlyActive[0].Reviews) != 1 {
		t.Fatalf("reviews not preloaded: %+v", onlyActive[0].Reviews)
	}

	if _, err := repo.GetDetail(ctx, "Rust"); err != nil {
		t.Fatalf("inactive detail: %v", err)
	}
	if _, err := repo.GetDetail(ctx, "Missing"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("missing detail: expected ErrRecordNotFound, got %v", err)
	}

	bare, err := repo.GetByName(ctx, "Go")
	if err != nil {
		t.Fatalf("GetByName: %v", err)
	}
	bare.IsActive = false
	if err := repo.Save(ctx, bare); err != nil {
		t.Fatalf("Save: %v", err)
	}
	onlyActive, err = repo.List(ctx, true)
	if err != nil || len(onlyActive) != 0 {
		t.Fatalf("expected no active competencies after deactivation, got %d (%v)", len(onlyActive), err)
	}

	taken, err := repo.NameTaken(ctx, "Go", bare.ID)
	if err != nil || taken {
		t.Fatalf("NameTaken excluding self: got %v, %v", taken, err)
	}
}

func TestMaterialRepoScopedToCompetence(t *testing.T) {
	db := testutil.DB(t)
	repo := NewMaterialRepo(db, testutil.Logger(t))
	ctx := context.Background()

	golang := testutil.SeedCompetence(t, db, "Go", true)
	sql := testutil.SeedCompetence(t, db, "SQL", true)
	material := testutil.SeedMaterial(t, db, golang.ID, "Tour of Go")

	if _, err := repo.GetForCompetence(ctx, sql.ID, material.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected material to be hidden under another competence, got %v", err)
	}

	got, err := repo.GetForCompetence(ctx, golang.ID, material.ID)
	if err != nil {
		t.Fatalf("GetForCompetence: %v", err)
	}

	if err := repo.Delete(ctx, got); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if n := testutil.Count(t, db, &models.Material{}, ""); n != 0 {
		t.Fatalf("expected no materials, got %d", n)
	}
}

func TestReviewRepoListByUser(t *testing.T) {
	db := testutil.DB(t)
	repo := NewReviewRepo(db, testutil.Logger(t))
	ctx := context.Background()

	competence := testutil.SeedCompetence(t, db, "Go", true)
	alice := testutil.SeedUser(t, db, "alice@example.com")
	bob := testutil.SeedUser(t, db, "bob@example.com")
	testutil.SeedReview(t, db, competence.ID, alice.ID, 4)
	testutil.SeedReview(t, db, competence.ID, bob.ID, 2)
	testutil.SeedReview(t, db, competence.ID, alice.ID, 5)

	reviews, err := repo.ListByUser(ctx, alice.ID)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(reviews) != 2 || reviews[0].Rating != 4 || reviews[1].Rating != 5 {
		t.Fatalf("unexpected reviews %+v", reviews)
	}
}

func TestMarkRepoAllowsDuplicates(t *testing.T) {
	db := testutil.DB(t)
	repo := NewMarkRepo(db, testutil.Logger(t))
	ctx := context.Background()

	user := testutil.SeedUser(t, db, "mark@example.com")
	competence := testutil.SeedCompetence(t, db, "Go", true)

	for i := 0; i < 2; i++ {
		if err := repo.Create(ctx, &models.MarkedCompetence{UserID: user.ID, CompetenceID: competence.ID}); err != nil {
			t.Fatalf("Create #%d: %v", i+1, err)
		}
	}

	marks, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(marks) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(marks))
	}

	n, err := repo.DeleteForUser(ctx, user.ID, competence.ID)
	if err != nil {
		t.Fatalf("DeleteForUser: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 deleted rows, got %d", n)
	}

	n, err = repo.DeleteForUser(ctx, user.ID, competence.ID)
	if err != nil || n != 0 {
		t.Fatalf("second DeleteForUser: got %d, %v", n, err)
	}
}
