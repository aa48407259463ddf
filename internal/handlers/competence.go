package handlers

import (
	"errors"
	"strings"

	"github.com/education-platform/backend/internal/errs"
	"github.com/education-platform/backend/internal/models"
	"github.com/education-platform/backend/internal/types"
	"github.com/education-platform/backend/internal/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	msgCompetenceNotFound = "Competence not found"
	msgCompetenceTaken    = "competence with this name already exists."
)

type CreateCompetenceRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description" binding:"required"`
	Difficulty  string `json:"difficulty" binding:"required,max=20"`
	IsActive    *bool  `json:"is_active"`
	Profession  *uint  `json:"profession"`
}

type UpdateCompetenceRequest struct {
	Name        *string    `json:"name" binding:"omitempty,min=1,max=100"`
	Description *string    `json:"description" binding:"omitempty,min=1"`
	Difficulty  *string    `json:"difficulty" binding:"omitempty,min=1,max=20"`
	IsActive    *bool      `json:"is_active"`
	Profession  OptionalID `json:"profession"`
}

// ListCompetencies returns every competence, active or not.
func (h *Handler) ListCompetencies(c *gin.Context, _ *NoBody) ([]types.CompetenceResponse, error) {
	return h.listCompetencies(c, false)
}

// ListActiveCompetencies is the user-facing catalog.
func (h *Handler) ListActiveCompetencies(c *gin.Context, _ *NoBody) ([]types.CompetenceResponse, error) {
	return h.listCompetencies(c, true)
}

func (h *Handler) listCompetencies(c *gin.Context, activeOnly bool) ([]types.CompetenceResponse, error) {
	list, err := h.repos.Competences.List(c.Request.Context(), activeOnly)
	if err != nil {
		return nil, err
	}

	return types.Competences(list, h.fileURL), nil
}

// GetCompetence serves both APIs. Inactive competencies are hidden from
// the user listing only; the detail view resolves them by name.
func (h *Handler) GetCompetence(c *gin.Context, _ *NoBody) (types.CompetenceResponse, error) {
	name, err := utils.GetNameParam(c, "name")
	if err != nil {
		return types.CompetenceResponse{}, err
	}

	competence, err := h.repos.Competences.GetDetail(c.Request.Context(), name)
	if err != nil {
		return types.CompetenceResponse{}, notFound(err, msgCompetenceNotFound)
	}

	return types.Competence(*competence, h.fileURL), nil
}

func (h *Handler) CreateCompetence(c *gin.Context, req *CreateCompetenceRequest) (types.CompetenceResponse, error) {
	ctx := c.Request.Context()

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return types.CompetenceResponse{}, errs.NewFieldError("name", msgBlank)
	}

	taken, err := h.repos.Competences.NameTaken(ctx, name, 0)
	if err != nil {
		return types.CompetenceResponse{}, err
	}
	if taken {
		return types.CompetenceResponse{}, errs.NewFieldError("name", msgCompetenceTaken)
	}

	description, err := notBlank("description", req.Description)
	if err != nil {
		return types.CompetenceResponse{}, err
	}
	difficulty, err := notBlank("difficulty", req.Difficulty)
	if err != nil {
		return types.CompetenceResponse{}, err
	}

	if err := h.checkProfession(c, req.Profession); err != nil {
		return types.CompetenceResponse{}, err
	}

	competence := models.Competence{
		Name:         name,
		Description:  description,
		Difficulty:   difficulty,
		ProfessionID: req.Profession,
	}
	if req.IsActive != nil {
		competence.IsActive = *req.IsActive
	}

	if err := h.repos.Competences.Create(ctx, &competence); err != nil {
		return types.CompetenceResponse{}, duplicate(err, "name", msgCompetenceTaken)
	}

	h.logFor(c).Info("competence created", "competence_id", competence.ID, "name", competence.Name)

	return types.Competence(competence, h.fileURL), nil
}

func (h *Handler) UpdateCompetence(c *gin.Context, _ *NoBody) (types.CompetenceResponse, error) {
	ctx := c.Request.Context()

	name, err := utils.GetNameParam(c, "name")
	if err != nil {
		return types.CompetenceResponse{}, err
	}

	competence, err := h.repos.Competences.GetByName(ctx, name)
	if err != nil {
		return types.CompetenceResponse{}, notFound(err, msgCompetenceNotFound)
	}

	var req UpdateCompetenceRequest
	if err := h.bind(c, &req); err != nil {
		return types.CompetenceResponse{}, err
	}

	if req.Name != nil {
		newName := strings.TrimSpace(*req.Name)
		if newName == "" {
			return types.CompetenceResponse{}, errs.NewFieldError("name", msgBlank)
		}
		taken, err := h.repos.Competences.NameTaken(ctx, newName, competence.ID)
		if err != nil {
			return types.CompetenceResponse{}, err
		}
		if taken {
			return types.CompetenceResponse{}, errs.NewFieldError("name", msgCompetenceTaken)
		}
		competence.Name = newName
	}
	if req.Description != nil {
		if competence.Description, err = notBlank("description", *req.Description); err != nil {
			return types.CompetenceResponse{}, err
		}
	}
	if req.Difficulty != nil {
		if competence.Difficulty, err = notBlank("difficulty", *req.Difficulty); err != nil {
			return types.CompetenceResponse{}, err
		}
	}
	if req.IsActive != nil {
		competence.IsActive = *req.IsActive
	}
	if req.Profession.Set {
		if err := h.checkProfession(c, req.Profession.Value); err != nil {
			return types.CompetenceResponse{}, err
		}
		competence.ProfessionID = req.Profession.Value
	}

	if err := h.repos.Competences.Save(ctx, competence); err != nil {
		return types.CompetenceResponse{}, duplicate(err, "name", msgCompetenceTaken)
	}

	updated, err := h.repos.Competences.GetDetail(ctx, competence.Name)
	if err != nil {
		return types.CompetenceResponse{}, err
	}

	return types.Competence(*updated, h.fileURL), nil
}

// competenceByName loads the bare competence named in the path.
func (h *Handler) competenceByName(c *gin.Context, missing string) (*models.Competence, error) {
	name, err := utils.GetNameParam(c, "name")
	if err != nil {
		return nil, errs.NewNotFoundError(missing)
	}

	competence, err := h.repos.Competences.GetByName(c.Request.Context(), name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewNotFoundError(missing)
		}
		return nil, err
	}

	return competence, nil
}
