package routes

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rakasatria/folio/internal/api/handlers"
	"github.com/rakasatria/folio/internal/api/middleware"
)

type Deps struct {
	Public      *handlers.PublicHandler
	Auth        *handlers.AuthHandler
	Admin       *handlers.AdminHandler
	Upload      *handlers.UploadHandler
	ChatWS      *handlers.ChatWSHandler
	DashboardWS *handlers.DashboardWSHandler
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	// Health-ish
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// Public site
	api := r.Group("/api")
	api.GET("/projects", d.Public.Projects)
	api.GET("/skills", d.Public.Skills)
	api.GET("/stats", d.Public.Stats)
	api.GET("/experiences", d.Public.Experiences)
	api.GET("/educations", d.Public.Educations)
	api.GET("/personal-info", d.Public.PersonalInfo)
	api.POST("/contact", middleware.Throttle(time.Minute), d.Public.SubmitContact)

	r.POST("/auth/login", d.Auth.Login)

	// Dashboard (JWT, admin only)
	admin := r.Group("/admin")
	admin.Use(middleware.JWTAuth(), middleware.RequireAdmin())

	admin.GET("/entities", d.Admin.Entities)
	admin.GET("/schema/:entity", d.Admin.Schema)
	admin.GET("/entities/:entity", d.Admin.List)
	admin.POST("/entities/:entity", d.Admin.Create)
	admin.PUT("/entities/:entity/:id", d.Admin.Update)
	admin.DELETE("/entities/:entity/:id", d.Admin.Delete)

	admin.POST("/uploads", d.Upload.Upload)
	admin.POST("/uploads/replace", d.Upload.Replace)
	admin.DELETE("/uploads", d.Upload.Delete)

	// WebSocket
	r.GET("/ws/chat", middleware.OptionalAuth(), d.ChatWS.Serve)
	r.GET("/ws/dashboard", middleware.JWTAuth(), middleware.RequireAdmin(), d.DashboardWS.Serve)
}
