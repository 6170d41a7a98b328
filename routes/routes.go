package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	config "github.com/mwangikb/event-planner-go/config"
	controllers "github.com/mwangikb/event-planner-go/controllers"
	middleware "github.com/mwangikb/event-planner-go/middleware"
)

func SetupRoutes(r *gin.Engine, cfg *config.Config) {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	// public
	api.POST("/login", controllers.Login(cfg))
	api.POST("/logout", controllers.Logout(cfg))
	api.GET("/auth/status", controllers.AuthStatus(cfg))
	api.POST("/auth/check", controllers.CheckPassword(cfg))

	events := api.Group("/events")
	events.GET("", controllers.ListEvents(cfg))
	events.GET("/:id", controllers.GetEvent(cfg))

	// protected
	gate := middleware.SessionGate(cfg)

	events.POST("", gate, controllers.CreateEvent(cfg))
	events.PUT("/:id", gate, controllers.UpdateEvent(cfg))
	events.DELETE("/:id", gate, controllers.DeleteEvent(cfg))
	events.DELETE("/:id/image", gate, controllers.DeleteEventImage(cfg))
}
