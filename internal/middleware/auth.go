package middleware

import (
	"errors"
	"strings"

	"github.com/education-platform/backend/internal/auth"
	"github.com/education-platform/backend/internal/errs"
	"github.com/education-platform/backend/internal/logger"
	"github.com/education-platform/backend/internal/repos"
	"github.com/education-platform/backend/internal/types"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AuthenticatedUser struct {
	ID          uint   `json:"id"`
	Email       string `json:"email"`
	Username    string `json:"username"`
	IsStaff     bool   `json:"is_staff"`
	IsSuperuser bool   `json:"is_superuser"`
}

func (u AuthenticatedUser) Role() auth.Role {
	return auth.RoleOf(u.IsStaff, u.IsSuperuser)
}

// Authenticate resolves the bearer token into an AuthenticatedUser.
// Requests without an Authorization header pass through anonymously;
// handlers decide whether that is acceptable.
func Authenticate(users repos.UserRepo, tokens *auth.TokenIssuer, log *logger.Logger) gin.HandlerFunc {
	log = log.With("middleware", "Authenticate")

	return func(ctx *gin.Context) {
		authHeader := ctx.GetHeader("Authorization")

		if authHeader == "" {
			ctx.Next()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)

		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			abort(ctx, errs.NewUnauthorizedError("Authorization header format must be Bearer {token}"))
			return
		}

		claims, err := tokens.Verify(parts[1], auth.AccessToken)

		if err != nil {
			abort(ctx, errs.NewUnauthorizedError("Given token not valid for any token type"))
			return
		}

		user, err := users.GetByID(ctx.Request.Context(), claims.UserID)

		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				log.Error("failed to load token user", "user_id", claims.UserID, "error", err)
				abort(ctx, errs.NewInternalServerError())
				return
			}
			abort(ctx, errs.NewUnauthorizedError("User not found"))
			return
		}

		if !user.IsActive {
			abort(ctx, errs.NewUnauthorizedError("User is inactive"))
			return
		}

		ctx.Set(types.ContextUserKey, AuthenticatedUser{
			ID:          user.ID,
			Email:       user.Email,
			Username:    user.Username,
			IsStaff:     user.IsStaff,
			IsSuperuser: user.IsSuperuser,
		})
		ctx.Next()
	}
}

func abort(ctx *gin.Context, err *errs.HTTPError) {
	ctx.AbortWithStatusJSON(err.Status, err)
}
