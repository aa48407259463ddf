package handlers

import (
	"time"

	"github.com/education-platform/backend/internal/auth"
	"github.com/education-platform/backend/internal/errs"
	"github.com/education-platform/backend/internal/logger"
	"github.com/education-platform/backend/internal/repos"
	"github.com/education-platform/backend/internal/storage"
	"github.com/education-platform/backend/internal/utils"
	"github.com/education-platform/backend/internal/validation"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Handler holds the collaborators every endpoint needs. It is built once
// in main and shared by all requests.
type Handler struct {
	db     *gorm.DB
	repos  *repos.Repos
	tokens *auth.TokenIssuer
	blobs  storage.BlobStore
	log    *logger.Logger
}

func New(db *gorm.DB, r *repos.Repos, tokens *auth.TokenIssuer, blobs storage.BlobStore, log *logger.Logger) *Handler {
	validation.Setup()

	return &Handler{
		db:     db,
		repos:  r,
		tokens: tokens,
		blobs:  blobs,
		log:    log.With("component", "handlers"),
	}
}

// NoBody marks endpoints that read nothing from the request body.
type NoBody struct{}

// HandlerFunc receives the bound request and returns the response payload.
type HandlerFunc[Req any, Res any] func(c *gin.Context, req *Req) (Res, error)

type HandlerFuncNoContent[Req any] func(c *gin.Context, req *Req) error

// Handle checks role, binds Req, runs fn and writes its result as JSON
// with status. Authorization runs before binding so 401 and 403 win over 400.
func Handle[Req any, Res any](h *Handler, role auth.Role, fn HandlerFunc[Req, Res], status int) gin.HandlerFunc {
	return func(c *gin.Context) {
		h.handleRequest(c, role, "handler", func() (interface{}, error) {
			var req Req
			if err := h.bind(c, &req); err != nil {
				return nil, err
			}
			return fn(c, &req)
		}, func(result interface{}) {
			c.JSON(status, result)
		})
	}
}

// HandleNoContent is Handle for endpoints that answer with an empty body.
func HandleNoContent[Req any](h *Handler, role auth.Role, fn HandlerFuncNoContent[Req], status int) gin.HandlerFunc {
	return func(c *gin.Context) {
		h.handleRequest(c, role, "handler_no_content", func() (interface{}, error) {
			var req Req
			if err := h.bind(c, &req); err != nil {
				return nil, err
			}
			return nil, fn(c, &req)
		}, func(interface{}) {
			c.Status(status)
		})
	}
}

func (h *Handler) handleRequest(c *gin.Context, role auth.Role, operation string, run func() (interface{}, error), write func(interface{})) {
	start := time.Now()
	log := h.logFor(c).With("operation", operation, "method", c.Request.Method, "route", c.FullPath())

	if _, err := utils.RequireRole(c, role); err != nil {
		h.writeError(c, log, err)
		return
	}

	result, err := run()
	if err != nil {
		h.writeError(c, log, err)
		return
	}

	log.Debug("request completed", "duration_ms", time.Since(start).Milliseconds())
	write(result)
}

// bind fills req from the body (JSON or form) and runs any Validate method.
// NoBody requests are left untouched.
func (h *Handler) bind(c *gin.Context, req interface{}) error {
	if _, ok := req.(*NoBody); ok {
		return nil
	}

	if err := c.ShouldBind(req); err != nil {
		return validation.FromBindError(err)
	}

	if v, ok := req.(validation.Validatable); ok {
		if err := v.Validate(); err != nil {
			if httpErr, ok := errs.As(err); ok {
				return httpErr
			}
			return errs.NewBadRequestError(err.Error())
		}
	}

	return nil
}

func (h *Handler) writeError(c *gin.Context, log *logger.Logger, err error) {
	httpErr, ok := errs.As(err)
	if !ok {
		log.Error("handler failed", "error", err)
	} else if httpErr.Status >= 500 {
		log.Error("handler failed", "error", err)
	} else {
		log.Debug("request rejected", "status", httpErr.Status, "error", httpErr.Message)
	}

	c.AbortWithStatusJSON(httpErr.Status, httpErr)
}

func (h *Handler) logFor(c *gin.Context) *logger.Logger {
	return utils.GetLogger(c, h.log)
}

// currentUserID is only valid behind a RoleUser or RoleAdmin route.
func currentUserID(c *gin.Context) (uint, error) {
	id, err := utils.GetCurrentUserID(c)
	if err != nil {
		return 0, errs.ErrUnauthorized
	}
	return id, nil
}

func (h *Handler) fileURL(key string) string {
	return h.blobs.URL(key)
}
