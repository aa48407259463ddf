package handlers

import (
	"errors"

	"github.com/education-platform/backend/internal/auth"
	"github.com/education-platform/backend/internal/errs"
	"github.com/education-platform/backend/internal/models"
	"github.com/education-platform/backend/internal/types"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	msgEmailTaken    = "user with this email already exists."
	msgUsernameTaken = "user with this username already exists."
	msgNoAccount     = "No active account found with the given credentials"
)

type RegisterRequest struct {
	Email      string `json:"email" form:"email" binding:"required,email,max=254"`
	Password   string `json:"password" form:"password" binding:"required,min=8"`
	Username   string `json:"username" form:"username" binding:"required,max=140"`
	Profession *uint  `json:"profession" form:"profession"`
}

type TokenRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	Refresh string `json:"refresh" binding:"required"`
}

func (h *Handler) Register(c *gin.Context, req *RegisterRequest) (types.RegisterResponse, error) {
	ctx := c.Request.Context()

	email := normalizeEmail(req.Email)

	username, err := notBlank("username", req.Username)
	if err != nil {
		return types.RegisterResponse{}, err
	}

	taken, err := h.repos.Users.EmailTaken(ctx, email, 0)
	if err != nil {
		return types.RegisterResponse{}, err
	}
	if taken {
		return types.RegisterResponse{}, errs.NewFieldError("email", msgEmailTaken)
	}

	taken, err = h.repos.Users.UsernameTaken(ctx, username, 0)
	if err != nil {
		return types.RegisterResponse{}, err
	}
	if taken {
		return types.RegisterResponse{}, errs.NewFieldError("username", msgUsernameTaken)
	}

	if err := h.checkProfession(c, req.Profession); err != nil {
		return types.RegisterResponse{}, err
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return types.RegisterResponse{}, err
	}

	user := models.User{
		Email:        email,
		Username:     username,
		PasswordHash: passwordHash,
		IsActive:     true,
		ProfessionID: req.Profession,
	}

	if err := h.repos.Users.Create(ctx, &user); err != nil {
		return types.RegisterResponse{}, h.duplicateUser(ctx, err, &user)
	}

	h.logFor(c).Info("user registered", "user_id", user.ID)

	return types.Registered(user), nil
}

// ObtainToken exchanges email and password for an access/refresh pair.
func (h *Handler) ObtainToken(c *gin.Context, req *TokenRequest) (auth.TokenPair, error) {
	user, err := h.repos.Users.GetByEmail(c.Request.Context(), req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return auth.TokenPair{}, errs.NewUnauthorizedError(msgNoAccount)
		}
		return auth.TokenPair{}, err
	}

	if !auth.CheckPassword(user.PasswordHash, req.Password) || !user.IsActive {
		return auth.TokenPair{}, errs.NewUnauthorizedError(msgNoAccount)
	}

	return h.tokens.GeneratePair(user.ID, user.Email)
}

func (h *Handler) RefreshToken(c *gin.Context, req *RefreshRequest) (types.AccessResponse, error) {
	claims, err := h.tokens.Verify(req.Refresh, auth.RefreshToken)
	if err != nil {
		return types.AccessResponse{}, errs.NewUnauthorizedError("Token is invalid or expired")
	}

	user, err := h.repos.Users.GetByID(c.Request.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return types.AccessResponse{}, errs.NewUnauthorizedError(msgNoAccount)
		}
		return types.AccessResponse{}, err
	}
	if !user.IsActive {
		return types.AccessResponse{}, errs.NewUnauthorizedError(msgNoAccount)
	}

	access, err := h.tokens.Generate(user.ID, user.Email, auth.AccessToken)
	if err != nil {
		return types.AccessResponse{}, err
	}

	return types.AccessResponse{Access: access}, nil
}

func (h *Handler) Me(c *gin.Context, _ *NoBody) (types.SelfResponse, error) {
	userID, err := currentUserID(c)
	if err != nil {
		return types.SelfResponse{}, err
	}

	user, err := h.repos.Users.GetWithMarks(c.Request.Context(), userID)
	if err != nil {
		return types.SelfResponse{}, notFound(err, "User not found")
	}

	return types.Self(*user), nil
}

// ListUsersPublic is the user-facing directory of all accounts.
func (h *Handler) ListUsersPublic(c *gin.Context, _ *NoBody) ([]types.UserPublicResponse, error) {
	users, err := h.repos.Users.List(c.Request.Context())
	if err != nil {
		return nil, err
	}

	return types.UsersPublic(users), nil
}

func (h *Handler) checkProfession(c *gin.Context, id *uint) error {
	if id == nil {
		return nil
	}

	if _, err := h.repos.Professions.GetByID(c.Request.Context(), *id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.NewFieldError("profession", invalidPK(*id))
		}
		return err
	}

	return nil
}
