package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/url"
	"strings"

	"github.com/education-platform/backend/internal/errs"
	"github.com/education-platform/backend/internal/models"
	"github.com/education-platform/backend/internal/storage"
	"github.com/education-platform/backend/internal/types"
	"github.com/education-platform/backend/internal/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
)

const msgMaterialNotFound = "Competence or material not found"

// AddMaterialRequest accepts JSON or a multipart form; file only arrives
// through the form.
type AddMaterialRequest struct {
	MaterialType string                `json:"material_type" form:"material_type" binding:"required,oneof=text video audio online_course"`
	Title        string                `json:"title" form:"title" binding:"required,max=100"`
	Content      *string               `json:"content" form:"content"`
	Link         *string               `json:"link" form:"link" binding:"omitempty,max=2048"`
	File         *multipart.FileHeader `json:"-" form:"file"`
}

func (r *AddMaterialRequest) Validate() error {
	return validateLink(r.Link)
}

type UpdateMaterialRequest struct {
	MaterialType *string               `json:"material_type" form:"material_type" binding:"omitempty,oneof=text video audio online_course"`
	Title        *string               `json:"title" form:"title" binding:"omitempty,min=1,max=100"`
	Content      *string               `json:"content" form:"content"`
	Link         *string               `json:"link" form:"link" binding:"omitempty,max=2048"`
	File         *multipart.FileHeader `json:"-" form:"file"`
}

func (r *UpdateMaterialRequest) Validate() error {
	return validateLink(r.Link)
}

// validateLink accepts a missing or blank link, otherwise an absolute http(s) URL.
func validateLink(link *string) error {
	if link == nil || strings.TrimSpace(*link) == "" {
		return nil
	}
	u, err := url.Parse(strings.TrimSpace(*link))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errs.NewFieldError("link", "Enter a valid URL.")
	}
	return nil
}

func (h *Handler) AddMaterial(c *gin.Context, _ *NoBody) (types.MaterialResponse, error) {
	competence, err := h.competenceByName(c, msgCompetenceNotFound)
	if err != nil {
		return types.MaterialResponse{}, err
	}

	var req AddMaterialRequest
	if err := h.bind(c, &req); err != nil {
		return types.MaterialResponse{}, err
	}

	title, err := notBlank("title", req.Title)
	if err != nil {
		return types.MaterialResponse{}, err
	}

	material := models.Material{
		CompetenceID: competence.ID,
		MaterialType: req.MaterialType,
		Title:        title,
		Content:      optionalText(req.Content),
		Link:         optionalText(req.Link),
	}

	ctx := c.Request.Context()

	if req.File != nil {
		if err := h.attachFile(ctx, &material, req.File); err != nil {
			return types.MaterialResponse{}, err
		}
	}

	if err := h.repos.Materials.Create(ctx, &material); err != nil {
		h.discardFile(c, material.File)
		return types.MaterialResponse{}, err
	}

	h.logFor(c).Info("material added", "material_id", material.ID, "competence_id", competence.ID)

	return types.Material(material, h.fileURL), nil
}

func (h *Handler) GetMaterial(c *gin.Context, _ *NoBody) (types.MaterialResponse, error) {
	material, err := h.materialFromPath(c)
	if err != nil {
		return types.MaterialResponse{}, err
	}

	return types.Material(*material, h.fileURL), nil
}

func (h *Handler) UpdateMaterial(c *gin.Context, _ *NoBody) (types.MaterialResponse, error) {
	material, err := h.materialFromPath(c)
	if err != nil {
		return types.MaterialResponse{}, err
	}

	var req UpdateMaterialRequest
	if err := h.bind(c, &req); err != nil {
		return types.MaterialResponse{}, err
	}

	if req.MaterialType != nil {
		material.MaterialType = *req.MaterialType
	}
	if req.Title != nil {
		if material.Title, err = notBlank("title", *req.Title); err != nil {
			return types.MaterialResponse{}, err
		}
	}
	if req.Content != nil {
		material.Content = optionalText(req.Content)
	}
	if req.Link != nil {
		material.Link = optionalText(req.Link)
	}

	ctx := c.Request.Context()
	oldFile := material.File

	if req.File != nil {
		if err := h.attachFile(ctx, material, req.File); err != nil {
			return types.MaterialResponse{}, err
		}
	}

	if err := h.repos.Materials.Save(ctx, material); err != nil {
		if req.File != nil {
			h.discardFile(c, material.File)
		}
		return types.MaterialResponse{}, err
	}

	if req.File != nil {
		h.discardFile(c, oldFile)
	}

	return types.Material(*material, h.fileURL), nil
}

func (h *Handler) DeleteMaterial(c *gin.Context, _ *NoBody) error {
	material, err := h.materialFromPath(c)
	if err != nil {
		return err
	}

	if err := h.repos.Materials.Delete(c.Request.Context(), material); err != nil {
		return err
	}

	h.discardFile(c, material.File)
	return nil
}

func (h *Handler) materialFromPath(c *gin.Context) (*models.Material, error) {
	competence, err := h.competenceByName(c, msgMaterialNotFound)
	if err != nil {
		return nil, err
	}

	id, err := utils.GetIDParam(c, "id")
	if err != nil {
		return nil, errs.NewNotFoundError(msgMaterialNotFound)
	}

	material, err := h.repos.Materials.GetForCompetence(c.Request.Context(), competence.ID, id)
	if err != nil {
		return nil, notFound(err, msgMaterialNotFound)
	}

	return material, nil
}

// attachFile streams the upload to blob storage and points material at it.
func (h *Handler) attachFile(ctx context.Context, material *models.Material, fh *multipart.FileHeader) error {
	f, err := fh.Open()
	if err != nil {
		return errs.NewFieldError("file", "The submitted file could not be read.")
	}
	defer f.Close()

	contentType := fh.Header.Get("Content-Type")
	key := storage.MaterialKey(fh.Filename)

	if err := h.blobs.Put(ctx, key, f, contentType); err != nil {
		return fmt.Errorf("store material file: %w", err)
	}

	meta, err := json.Marshal(models.FileInfo{
		OriginalName: fh.Filename,
		Size:         fh.Size,
		ContentType:  contentType,
	})
	if err != nil {
		return err
	}

	material.File = &key
	material.FileMeta = datatypes.JSON(meta)
	return nil
}

// discardFile removes a blob that is no longer referenced. Failures are
// logged only; the row change has already happened.
func (h *Handler) discardFile(c *gin.Context, key *string) {
	if key == nil || *key == "" {
		return
	}
	if err := h.blobs.Delete(context.WithoutCancel(c.Request.Context()), *key); err != nil {
		h.logFor(c).Warn("failed to delete material file", "key", *key, "error", err)
	}
}
