package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/roboreach/site-api/internal/content"
	"github.com/roboreach/site-api/internal/handler"
	"github.com/roboreach/site-api/internal/resource"
	"github.com/roboreach/site-api/internal/service"
	"github.com/roboreach/site-api/pkg/config"
	"github.com/roboreach/site-api/pkg/logger"
	corsmiddleware "github.com/roboreach/site-api/pkg/middleware/cors"
	reqidmiddleware "github.com/roboreach/site-api/pkg/middleware/requestid"
)

// Deps carries everything the route table needs.
type Deps struct {
	Config  *config.Config
	Logger  *zap.Logger
	DB      *sqlx.DB
	Metrics *service.MetricsService

	Content   *content.Registry
	Auth      *handler.AuthHandler
	Proposals *handler.ProposalHandler
	Templates *handler.TemplateHandler
	Donations *handler.DonationHandler
	Stats     *handler.StatsHandler
	Settings  *handler.SettingHandler

	AuthGate gin.HandlerFunc
	Observe  gin.HandlerFunc
}

// New builds the gin engine with the full route table.
func New(deps Deps) *gin.Engine {
	if deps.Config.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(deps.Logger))
	r.Use(corsmiddleware.New(deps.Config.CORS.AllowedOrigins))
	if deps.Observe != nil {
		r.Use(deps.Observe)
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		if deps.DB != nil {
			if err := deps.DB.PingContext(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	if deps.Config.Metrics.Enabled {
		r.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}

	if deps.Config.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(deps.Config.APIPrefix)
	{
		api.POST("/auth/login", deps.Auth.Login)
		api.GET("/auth/me", deps.AuthGate, deps.Auth.Me)

		api.GET("/projects", deps.Content.Projects.ListPublic)
		api.GET("/partners", deps.Content.Partners.ListPublic)
		api.GET("/team", deps.Content.TeamMembers.ListPublic)
		api.GET("/milestones", deps.Content.Milestones.ListPublic)
		api.GET("/timeline", deps.Content.Timeline.ListPublic)
		api.GET("/impact-metrics", deps.Content.ImpactMetrics.ListPublic)
		api.GET("/tools", deps.Content.Tools.ListPublic)
		api.GET("/resources", deps.Content.Resources.ListPublic)
		api.GET("/universities", deps.Content.PublicUniversities)
		api.GET("/settings", deps.Settings.List)

		api.POST("/proposals", deps.Proposals.Submit)

		api.POST("/donations", deps.Donations.Create)
		api.GET("/donations/total", deps.Donations.Totals)

		api.GET("/templates/download", deps.Templates.DownloadActive)
		api.GET("/templates/:id/download", deps.Templates.Download)
	}

	admin := r.Group("/admin")
	admin.Use(deps.AuthGate)
	{
		mountResource(admin, "/projects", deps.Content.Projects)
		mountResource(admin, "/partners", deps.Content.Partners)
		mountResource(admin, "/team", deps.Content.TeamMembers)
		mountResource(admin, "/milestones", deps.Content.Milestones)
		mountResource(admin, "/timeline", deps.Content.Timeline)
		mountResource(admin, "/impact-metrics", deps.Content.ImpactMetrics)
		mountResource(admin, "/tools", deps.Content.Tools)
		mountResource(admin, "/resources", deps.Content.Resources)
		mountResource(admin, "/universities", deps.Content.Universities)

		admin.GET("/proposals", deps.Proposals.List)
		admin.GET("/proposals/:id", deps.Proposals.Get)
		admin.PATCH("/proposals/:id", deps.Proposals.Review)
		admin.DELETE("/proposals/:id", deps.Proposals.Delete)

		admin.GET("/templates", deps.Templates.List)
		admin.POST("/templates", deps.Templates.Upload)
		admin.PATCH("/templates/:id", deps.Templates.Update)
		admin.DELETE("/templates/:id", deps.Templates.Delete)

		admin.GET("/donations", deps.Donations.List)
		admin.GET("/donations/export", deps.Donations.Export)

		admin.GET("/stats", deps.Stats.Dashboard)

		admin.PUT("/settings/:key", deps.Settings.Upsert)
	}

	return r
}

type resourceRoutes interface {
	List(c *gin.Context)
	Get(c *gin.Context)
	Create(c *gin.Context)
	Patch(c *gin.Context)
	Delete(c *gin.Context)
}

func mountResource(group *gin.RouterGroup, path string, h resourceRoutes) {
	group.GET(path, h.List)
	group.GET(path+"/:id", h.Get)
	group.POST(path, h.Create)
	group.PATCH(path+"/:id", h.Patch)
	group.DELETE(path+"/:id", h.Delete)
}

var _ resourceRoutes = (*resource.Handler[struct{}, struct{}, struct{}])(nil)
