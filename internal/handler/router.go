package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/DevasenapathiKS/mockomi-sub001/internal/domain/user"
	"github.com/DevasenapathiKS/mockomi-sub001/internal/handler/api"
	"github.com/DevasenapathiKS/mockomi-sub001/internal/handler/middleware"
	"github.com/DevasenapathiKS/mockomi-sub001/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(engine *gin.Engine, cfg config.Config, interviewHandler *api.InterviewHandler, adminHandler *api.AdminHandler, authMiddleware *middleware.AuthMiddleware) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, interviewHandler, adminHandler, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, interviewHandler *api.InterviewHandler, adminHandler *api.AdminHandler, authMiddleware *middleware.AuthMiddleware) {
	engine.GET("/health", healthCheck)

	apiGroup := engine.Group("/api")
	{
		interviews := apiGroup.Group("/interviews")
		interviews.Use(authMiddleware.RequireAuth())
		{
			addRoutes(interviews, []route{
				{Method: http.MethodPost, Path: "", Handler: interviewHandler.CreateRequest,
					Mw: []gin.HandlerFunc{authMiddleware.RequireRole(user.RoleJobSeeker)}},
				{Method: http.MethodGet, Path: "", Handler: interviewHandler.ListMine},
				{Method: http.MethodGet, Path: "/available", Handler: interviewHandler.ListAvailable,
					Mw: []gin.HandlerFunc{authMiddleware.RequireRole(user.RoleInterviewer)}},
				{Method: http.MethodGet, Path: "/:id", Handler: interviewHandler.GetInterview},
				{Method: http.MethodPost, Path: "/:id/claim", Handler: interviewHandler.Claim,
					Mw: []gin.HandlerFunc{authMiddleware.RequireRole(user.RoleInterviewer)}},
				{Method: http.MethodPost, Path: "/:id/start", Handler: interviewHandler.Start},
				{Method: http.MethodPost, Path: "/:id/complete", Handler: interviewHandler.Complete},
				{Method: http.MethodPost, Path: "/:id/cancel", Handler: interviewHandler.Cancel},
				{Method: http.MethodPost, Path: "/:id/feedback", Handler: interviewHandler.SubmitFeedback,
					Mw: []gin.HandlerFunc{authMiddleware.RequireRole(user.RoleInterviewer)}},
				{Method: http.MethodPost, Path: "/:id/recording", Handler: interviewHandler.AttachRecording},
			})
		}

		internal := apiGroup.Group("/internal")
		internal.Use(authMiddleware.RequireAuth(), authMiddleware.RequireRole(user.RoleAdmin))
		{
			addRoutes(internal, []route{
				{Method: http.MethodPost, Path: "/sweep-expired", Handler: adminHandler.SweepExpired},
			})
		}
	}
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
