package httpserver

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"habittracker/internal/handler"
)

// Pinger reports database readiness.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Router struct {
	Engine *gin.Engine
}

func NewRouter(
	authHandler *handler.AuthHandler,
	habitHandler *handler.HabitHandler,
	userHandler *handler.UserHandler,
	jwtSecret string,
	db Pinger,
) *Router {
	r := gin.Default()
	r.Use(RequestIDMiddleware(), MetricsMiddleware())

	// Health endpoints
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.HEAD("/healthz", func(c *gin.Context) {
		c.Status(200)
	})
	r.GET("/readyz", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c, 1*time.Second)
		defer cancel()

		if err := db.Ping(ctx); err != nil {
			c.JSON(500, gin.H{"status": "db_not_ready", "error": err.Error()})
			return
		}
		c.JSON(200, gin.H{"status": "ready"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Public
	r.POST("/register", authHandler.Register)
	r.POST("/login", authHandler.Login)

	// Protected
	auth := r.Group("/")
	auth.Use(AuthMiddleware(jwtSecret))
	{
		auth.GET("/habits", habitHandler.List)
		auth.GET("/habits/owned", habitHandler.ListOwned)
		auth.POST("/habits", habitHandler.Create)
		auth.GET("/habits/:id", habitHandler.Get)
		auth.PATCH("/habits/:id", habitHandler.Update)
		auth.DELETE("/habits/:id", habitHandler.Delete)

		auth.GET("/users/:id", userHandler.Get)
		auth.PATCH("/users/:id", userHandler.Update)
	}

	return &Router{Engine: r}
}

func (r *Router) Run(port string) error {
	return r.Engine.Run(port)
}
