package utils

import (
	"fmt"

	"github.com/education-platform/backend/internal/auth"
	"github.com/education-platform/backend/internal/errs"
	"github.com/education-platform/backend/internal/logger"
	"github.com/education-platform/backend/internal/middleware"
	"github.com/education-platform/backend/internal/types"
	"github.com/gin-gonic/gin"
)

func GetCurrentUser(ctx *gin.Context) (middleware.AuthenticatedUser, error) {
	user, exists := ctx.Get(types.ContextUserKey)

	if !exists {
		return middleware.AuthenticatedUser{}, fmt.Errorf("User not authenticated")
	}

	authenticatedUser, ok := user.(middleware.AuthenticatedUser)

	if !ok {
		return middleware.AuthenticatedUser{}, fmt.Errorf("Invalid user type in context")
	}

	return authenticatedUser, nil
}

func GetCurrentUserID(ctx *gin.Context) (uint, error) {
	user, err := GetCurrentUser(ctx)

	if err != nil {
		return 0, err
	}

	return user.ID, nil
}

// RequireRole returns 401 for anonymous callers and 403 when the caller's
// role is below role. RoleAnonymous always passes.
func RequireRole(ctx *gin.Context, role auth.Role) (middleware.AuthenticatedUser, error) {
	if role == auth.RoleAnonymous {
		user, _ := GetCurrentUser(ctx)
		return user, nil
	}

	user, err := GetCurrentUser(ctx)

	if err != nil {
		return middleware.AuthenticatedUser{}, errs.ErrUnauthorized
	}

	if user.Role() < role {
		return middleware.AuthenticatedUser{}, errs.ErrForbidden
	}

	return user, nil
}

// GetLogger returns the request-scoped logger, or fallback if none is set.
func GetLogger(ctx *gin.Context, fallback *logger.Logger) *logger.Logger {
	if l, ok := ctx.Get(types.ContextLoggerKey); ok {
		if log, ok := l.(*logger.Logger); ok {
			return log
		}
	}
	return fallback
}
