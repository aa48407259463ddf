package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

func (h *Handler) HealthCheck(c *gin.Context) {
	status := http.StatusOK
	body := gin.H{
		"status":    "ok",
		"message":   "Education platform API is running",
		"timestamp": time.Now().Format(time.RFC3339),
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	sqlDB, err := h.db.DB()
	if err == nil {
		err = sqlDB.PingContext(ctx)
	}
	if err != nil {
		h.logFor(c).Error("health check failed", "error", err)
		status = http.StatusServiceUnavailable
		body["status"] = "unavailable"
		body["database"] = "unreachable"
	} else {
		body["database"] = "ok"
	}

	c.JSON(status, body)
}
