package utils

import (
	"strconv"
	"strings"

	"github.com/education-platform/backend/internal/errs"
	"github.com/gin-gonic/gin"
)

// GetIDParam parses a positive integer path parameter.
func GetIDParam(ctx *gin.Context, name string) (uint, error) {
	raw := ctx.Param(name)

	if raw == "" {
		return 0, errs.NewNotFoundError("Not found")
	}

	id, err := strconv.ParseUint(raw, 10, 32)

	if err != nil || id == 0 {
		return 0, errs.NewNotFoundError("Not found")
	}

	return uint(id), nil
}

// GetNameParam returns a trimmed name path parameter.
func GetNameParam(ctx *gin.Context, name string) (string, error) {
	value := strings.TrimSpace(ctx.Param(name))

	if value == "" {
		return "", errs.NewNotFoundError("Not found")
	}

	return value, nil
}
