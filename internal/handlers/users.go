package handlers

import (
	"context"
	"errors"

	"github.com/education-platform/backend/internal/errs"
	"github.com/education-platform/backend/internal/models"
	"github.com/education-platform/backend/internal/types"
	"github.com/education-platform/backend/internal/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// UpdateUserRequest is a partial update; absent fields keep their value.
type UpdateUserRequest struct {
	Email       *string    `json:"email" binding:"omitempty,email,max=254"`
	Username    *string    `json:"username" binding:"omitempty,min=1,max=140"`
	Profession  OptionalID `json:"profession"`
	IsActive    *bool      `json:"is_active"`
	IsStaff     *bool      `json:"is_staff"`
	IsSuperuser *bool      `json:"is_superuser"`
}

func (h *Handler) ListUsers(c *gin.Context, _ *NoBody) ([]types.UserAdminResponse, error) {
	users, err := h.repos.Users.List(c.Request.Context())
	if err != nil {
		return nil, err
	}

	return types.UsersAdmin(users), nil
}

func (h *Handler) GetUser(c *gin.Context, _ *NoBody) (types.UserAdminResponse, error) {
	id, err := utils.GetIDParam(c, "id")
	if err != nil {
		return types.UserAdminResponse{}, err
	}

	user, err := h.repos.Users.GetWithMarks(c.Request.Context(), id)
	if err != nil {
		return types.UserAdminResponse{}, notFound(err, "User not found")
	}

	return types.UserAdmin(*user), nil
}

func (h *Handler) UpdateUser(c *gin.Context, _ *NoBody) (types.UserAdminResponse, error) {
	ctx := c.Request.Context()

	id, err := utils.GetIDParam(c, "id")
	if err != nil {
		return types.UserAdminResponse{}, err
	}

	user, err := h.repos.Users.GetByID(ctx, id)
	if err != nil {
		return types.UserAdminResponse{}, notFound(err, "User not found")
	}

	var req UpdateUserRequest
	if err := h.bind(c, &req); err != nil {
		return types.UserAdminResponse{}, err
	}

	if req.Email != nil {
		email := normalizeEmail(*req.Email)
		taken, err := h.repos.Users.EmailTaken(ctx, email, user.ID)
		if err != nil {
			return types.UserAdminResponse{}, err
		}
		if taken {
			return types.UserAdminResponse{}, errs.NewFieldError("email", msgEmailTaken)
		}
		user.Email = email
	}

	if req.Username != nil {
		username, err := notBlank("username", *req.Username)
		if err != nil {
			return types.UserAdminResponse{}, err
		}
		taken, err := h.repos.Users.UsernameTaken(ctx, username, user.ID)
		if err != nil {
			return types.UserAdminResponse{}, err
		}
		if taken {
			return types.UserAdminResponse{}, errs.NewFieldError("username", msgUsernameTaken)
		}
		user.Username = username
	}

	if req.Profession.Set {
		if err := h.checkProfession(c, req.Profession.Value); err != nil {
			return types.UserAdminResponse{}, err
		}
		user.ProfessionID = req.Profession.Value
	}

	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	if req.IsStaff != nil {
		user.IsStaff = *req.IsStaff
	}
	if req.IsSuperuser != nil {
		user.IsSuperuser = *req.IsSuperuser
	}

	if err := h.repos.Users.Save(ctx, user); err != nil {
		return types.UserAdminResponse{}, h.duplicateUser(ctx, err, user)
	}

	updated, err := h.repos.Users.GetWithMarks(ctx, user.ID)
	if err != nil {
		return types.UserAdminResponse{}, err
	}

	return types.UserAdmin(*updated), nil
}

// ListMarks returns every marked-competence row across all users.
func (h *Handler) ListMarks(c *gin.Context, _ *NoBody) ([]types.MarkResponse, error) {
	marks, err := h.repos.Marks.List(c.Request.Context())
	if err != nil {
		return nil, err
	}

	return types.Marks(marks), nil
}

// duplicateUser maps a unique violation on user to the column that
// collided. The pre-checks can lose a race, so the table is asked again.
func (h *Handler) duplicateUser(ctx context.Context, err error, user *models.User) error {
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		return err
	}

	if taken, qerr := h.repos.Users.EmailTaken(ctx, user.Email, user.ID); qerr == nil && taken {
		return errs.NewFieldError("email", msgEmailTaken)
	}
	if taken, qerr := h.repos.Users.UsernameTaken(ctx, user.Username, user.ID); qerr == nil && taken {
		return errs.NewFieldError("username", msgUsernameTaken)
	}

	return errs.NewBadRequestError("user already exists.")
}
