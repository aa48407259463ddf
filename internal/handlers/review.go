package handlers

import (
	"strings"

	"github.com/education-platform/backend/internal/errs"
	"github.com/education-platform/backend/internal/models"
	"github.com/education-platform/backend/internal/types"
	"github.com/education-platform/backend/internal/utils"
	"github.com/gin-gonic/gin"
)

const msgReviewNotFound = "Review not found"

type CreateReviewRequest struct {
	Rating  *int   `json:"rating" binding:"required"`
	Comment string `json:"comment" binding:"required"`
}

type UpdateReviewRequest struct {
	Rating  *int    `json:"rating"`
	Comment *string `json:"comment" binding:"omitempty,min=1"`
}

func (h *Handler) ListMyReviews(c *gin.Context, _ *NoBody) ([]types.ReviewResponse, error) {
	userID, err := currentUserID(c)
	if err != nil {
		return nil, err
	}

	reviews, err := h.repos.Reviews.ListByUser(c.Request.Context(), userID)
	if err != nil {
		return nil, err
	}

	return types.Reviews(reviews), nil
}

func (h *Handler) CreateReview(c *gin.Context, _ *NoBody) (types.ReviewResponse, error) {
	userID, err := currentUserID(c)
	if err != nil {
		return types.ReviewResponse{}, err
	}

	competence, err := h.competenceByName(c, msgCompetenceNotFound)
	if err != nil {
		return types.ReviewResponse{}, err
	}

	var req CreateReviewRequest
	if err := h.bind(c, &req); err != nil {
		return types.ReviewResponse{}, err
	}

	comment := strings.TrimSpace(req.Comment)
	if comment == "" {
		return types.ReviewResponse{}, errs.NewFieldError("comment", msgBlank)
	}

	review := models.Review{
		CompetenceID: competence.ID,
		UserID:       userID,
		Rating:       *req.Rating,
		Comment:      comment,
	}

	if err := h.repos.Reviews.Create(c.Request.Context(), &review); err != nil {
		return types.ReviewResponse{}, err
	}

	return types.Review(review), nil
}

func (h *Handler) UpdateReview(c *gin.Context, _ *NoBody) (types.ReviewResponse, error) {
	review, err := h.ownReview(c)
	if err != nil {
		return types.ReviewResponse{}, err
	}

	var req UpdateReviewRequest
	if err := h.bind(c, &req); err != nil {
		return types.ReviewResponse{}, err
	}

	if req.Rating != nil {
		review.Rating = *req.Rating
	}
	if req.Comment != nil {
		comment := strings.TrimSpace(*req.Comment)
		if comment == "" {
			return types.ReviewResponse{}, errs.NewFieldError("comment", msgBlank)
		}
		review.Comment = comment
	}

	if err := h.repos.Reviews.Save(c.Request.Context(), review); err != nil {
		return types.ReviewResponse{}, err
	}

	return types.Review(*review), nil
}

func (h *Handler) DeleteReview(c *gin.Context, _ *NoBody) error {
	review, err := h.ownReview(c)
	if err != nil {
		return err
	}

	return h.repos.Reviews.Delete(c.Request.Context(), review)
}

// ownReview loads the review in the path: 404 when missing, 403 when
// someone else wrote it.
func (h *Handler) ownReview(c *gin.Context) (*models.Review, error) {
	userID, err := currentUserID(c)
	if err != nil {
		return nil, err
	}

	id, err := utils.GetIDParam(c, "id")
	if err != nil {
		return nil, errs.NewNotFoundError(msgReviewNotFound)
	}

	review, err := h.repos.Reviews.GetByID(c.Request.Context(), id)
	if err != nil {
		return nil, notFound(err, msgReviewNotFound)
	}

	if review.UserID != userID {
		return nil, errs.NewForbiddenError("You can only change your own reviews")
	}

	return review, nil
}
