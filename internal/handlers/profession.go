package handlers

import (
	"strings"

	"github.com/education-platform/backend/internal/errs"
	"github.com/education-platform/backend/internal/models"
	"github.com/education-platform/backend/internal/types"
	"github.com/education-platform/backend/internal/utils"
	"github.com/gin-gonic/gin"
)

const (
	msgProfessionNotFound = "Profession not found"
	msgProfessionTaken    = "profession with this name already exists."
)

type ProfessionRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

func (r *ProfessionRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return errs.NewFieldError("name", msgBlank)
	}
	return nil
}

func (h *Handler) ListProfessions(c *gin.Context, _ *NoBody) ([]types.ProfessionResponse, error) {
	list, err := h.repos.Professions.List(c.Request.Context())
	if err != nil {
		return nil, err
	}

	return types.Professions(list), nil
}

func (h *Handler) CreateProfession(c *gin.Context, req *ProfessionRequest) (types.ProfessionResponse, error) {
	ctx := c.Request.Context()

	taken, err := h.repos.Professions.NameTaken(ctx, req.Name, 0)
	if err != nil {
		return types.ProfessionResponse{}, err
	}
	if taken {
		return types.ProfessionResponse{}, errs.NewFieldError("name", msgProfessionTaken)
	}

	profession := models.Profession{Name: req.Name}
	if err := h.repos.Professions.Create(ctx, &profession); err != nil {
		return types.ProfessionResponse{}, duplicate(err, "name", msgProfessionTaken)
	}

	return types.Profession(profession), nil
}

func (h *Handler) GetProfession(c *gin.Context, _ *NoBody) (types.ProfessionResponse, error) {
	profession, err := h.professionFromPath(c)
	if err != nil {
		return types.ProfessionResponse{}, err
	}

	return types.Profession(*profession), nil
}

func (h *Handler) UpdateProfession(c *gin.Context, _ *NoBody) (types.ProfessionResponse, error) {
	ctx := c.Request.Context()

	profession, err := h.professionFromPath(c)
	if err != nil {
		return types.ProfessionResponse{}, err
	}

	var req ProfessionRequest
	if err := h.bind(c, &req); err != nil {
		return types.ProfessionResponse{}, err
	}

	taken, err := h.repos.Professions.NameTaken(ctx, req.Name, profession.ID)
	if err != nil {
		return types.ProfessionResponse{}, err
	}
	if taken {
		return types.ProfessionResponse{}, errs.NewFieldError("name", msgProfessionTaken)
	}

	profession.Name = req.Name
	if err := h.repos.Professions.Save(ctx, profession); err != nil {
		return types.ProfessionResponse{}, duplicate(err, "name", msgProfessionTaken)
	}

	return types.Profession(*profession), nil
}

func (h *Handler) DeleteProfession(c *gin.Context, _ *NoBody) error {
	profession, err := h.professionFromPath(c)
	if err != nil {
		return err
	}

	return h.repos.Professions.Delete(c.Request.Context(), profession)
}

func (h *Handler) professionFromPath(c *gin.Context) (*models.Profession, error) {
	name, err := utils.GetNameParam(c, "name")
	if err != nil {
		return nil, errs.NewNotFoundError(msgProfessionNotFound)
	}

	profession, err := h.repos.Professions.GetByName(c.Request.Context(), name)
	if err != nil {
		return nil, notFound(err, msgProfessionNotFound)
	}

	return profession, nil
}
