package router

import (
	"net/http"
	"strings"

	"github.com/education-platform/backend/internal/auth"
	"github.com/education-platform/backend/internal/errs"
	"github.com/education-platform/backend/internal/handlers"
	"github.com/education-platform/backend/internal/logger"
	"github.com/education-platform/backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type Options struct {
	AllowedOrigins []string
	// Authenticate resolves bearer tokens; see middleware.Authenticate.
	Authenticate gin.HandlerFunc
	// MediaURL and MediaDir serve locally stored files. Leave MediaDir
	// empty when files live in a bucket.
	MediaURL string
	MediaDir string
	Log      *logger.Logger
}

func NewRouter(h *handlers.Handler, opts Options) *gin.Engine {
	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(middleware.RequestID(opts.Log))
	r.Use(middleware.RequestLogger(opts.Log))
	r.Use(middleware.CORS(opts.AllowedOrigins))

	r.NoRoute(func(c *gin.Context) {
		notFound := errs.NewNotFoundError("Not found")
		c.JSON(http.StatusNotFound, notFound)
	})

	if opts.MediaDir != "" && strings.HasPrefix(opts.MediaURL, "/") {
		r.Static(opts.MediaURL, opts.MediaDir)
	}

	const (
		anyone = auth.RoleAnonymous
		user   = auth.RoleUser
		admin  = auth.RoleAdmin
	)

	api := r.Group("/api")
	{
		api.GET("/health", h.HealthCheck)
	}

	v := api.Group("", opts.Authenticate)
	{
		v.POST("/register/", handlers.Handle(h, anyone, h.Register, http.StatusCreated))
		v.POST("/token/", handlers.Handle(h, anyone, h.ObtainToken, http.StatusOK))
		v.POST("/token/refresh/", handlers.Handle(h, anyone, h.RefreshToken, http.StatusOK))

		users := v.Group("/users")
		{
			users.GET("/", handlers.Handle(h, admin, h.ListUsers, http.StatusOK))
			users.GET("/competence/", handlers.Handle(h, admin, h.ListMarks, http.StatusOK))
			users.GET("/:id/", handlers.Handle(h, admin, h.GetUser, http.StatusOK))
			users.PUT("/:id/", handlers.Handle(h, admin, h.UpdateUser, http.StatusOK))
			users.PATCH("/:id/", handlers.Handle(h, admin, h.UpdateUser, http.StatusOK))
		}

		competence := v.Group("/competence")
		{
			competence.GET("/", handlers.Handle(h, admin, h.ListCompetencies, http.StatusOK))
			competence.POST("/create/", handlers.Handle(h, admin, h.CreateCompetence, http.StatusCreated))
			competence.GET("/:name", handlers.Handle(h, admin, h.GetCompetence, http.StatusOK))
			competence.PUT("/:name", handlers.Handle(h, admin, h.UpdateCompetence, http.StatusOK))
			competence.PATCH("/:name", handlers.Handle(h, admin, h.UpdateCompetence, http.StatusOK))

			// Material endpoints
			competence.POST("/:name/add_material/", handlers.Handle(h, admin, h.AddMaterial, http.StatusCreated))
			competence.GET("/:name/materials/:id/", handlers.Handle(h, admin, h.GetMaterial, http.StatusOK))
			competence.PUT("/:name/materials/:id/", handlers.Handle(h, admin, h.UpdateMaterial, http.StatusOK))
			competence.PATCH("/:name/materials/:id/", handlers.Handle(h, admin, h.UpdateMaterial, http.StatusOK))
			competence.DELETE("/:name/materials/:id/", handlers.HandleNoContent(h, admin, h.DeleteMaterial, http.StatusNoContent))
		}

		professions := v.Group("/professions")
		{
			professions.GET("/", handlers.Handle(h, anyone, h.ListProfessions, http.StatusOK))
			professions.POST("/", handlers.Handle(h, admin, h.CreateProfession, http.StatusCreated))
			professions.GET("/:name/", handlers.Handle(h, anyone, h.GetProfession, http.StatusOK))
			professions.PUT("/:name/", handlers.Handle(h, admin, h.UpdateProfession, http.StatusOK))
			professions.PATCH("/:name/", handlers.Handle(h, admin, h.UpdateProfession, http.StatusOK))
			professions.DELETE("/:name/", handlers.HandleNoContent(h, admin, h.DeleteProfession, http.StatusNoContent))
		}

		// User-facing API
		self := v.Group("/user")
		{
			self.GET("/", handlers.Handle(h, user, h.ListUsersPublic, http.StatusOK))
			self.GET("/me/", handlers.Handle(h, user, h.Me, http.StatusOK))

			self.GET("/competence/", handlers.Handle(h, user, h.ListActiveCompetencies, http.StatusOK))
			self.GET("/competence/detail/:name", handlers.Handle(h, user, h.GetCompetence, http.StatusOK))

			self.GET("/competence/me/review/", handlers.Handle(h, user, h.ListMyReviews, http.StatusOK))
			self.POST("/competence/:name/review/create", handlers.Handle(h, user, h.CreateReview, http.StatusCreated))
			self.PUT("/competence/me/review/:id", handlers.Handle(h, user, h.UpdateReview, http.StatusOK))
			self.PATCH("/competence/me/review/:id", handlers.Handle(h, user, h.UpdateReview, http.StatusOK))
			self.DELETE("/competence/me/review/:id", handlers.HandleNoContent(h, user, h.DeleteReview, http.StatusNoContent))

			self.POST("/competence/add/:name", handlers.Handle(h, user, h.MarkCompetence, http.StatusCreated))
			self.DELETE("/competence/add/:name", handlers.HandleNoContent(h, user, h.UnmarkCompetence, http.StatusNoContent))
		}
	}

	return r
}
