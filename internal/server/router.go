package server

import (
  "net/http"

  "github.com/gin-contrib/cors"
  "github.com/gin-gonic/gin"

  "github.com/yungbote/conceptbridge-backend/internal/handlers"
)

type RouterConfig struct {
  ProfessionHandler *handlers.ProfessionHandler
  TopicHandler      *handlers.TopicHandler
  AnalogyHandler    *handlers.AnalogyHandler
  HealthHandler     *handlers.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
  router := gin.Default()

  // Cors
  router.Use(cors.New(cors.Config{
    AllowOrigins: []string{
      "http://localhost:80",
      "http://localhost:3000",
      "http://localhost:5174",
    },
    AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
    AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
    AllowCredentials: true,
  }))

  router.GET("/healthcheck", handlers.HealthCheck)
  router.GET("/health", cfg.HealthHandler.Health)
  router.GET("/", func(c *gin.Context) {
    c.JSON(http.StatusOK, gin.H{
      "message": "ConceptBridge API is running",
      "version": "2.0.0",
    })
  })

  api := router.Group("/api/v1")
  {
    professions := api.Group("/professions")
    {
      professions.GET("/", cfg.ProfessionHandler.List)
      professions.GET("/:id", cfg.ProfessionHandler.Get)
    }

    topics := api.Group("/topics")
    {
      topics.GET("/", cfg.TopicHandler.List)
      topics.GET("/:id", cfg.TopicHandler.Get)
      topics.GET("/:id/subtopics", cfg.TopicHandler.ListSubtopics)
      topics.GET("/:id/with-subtopics", cfg.TopicHandler.GetWithSubtopics)
    }

    analogies := api.Group("/analogies")
    {
      analogies.POST("/generate", cfg.AnalogyHandler.Generate)
      analogies.POST("/feedback", cfg.AnalogyHandler.Feedback)
      analogies.POST("/quick-explain", cfg.AnalogyHandler.QuickExplain)
      // Same param name in both routes: gin rejects conflicting wildcard
      // names at the same position. The first is a user identifier, the
      // second a session uuid.
      analogies.GET("/sessions/:identifier", cfg.AnalogyHandler.UserSessions)
      analogies.GET("/sessions/:identifier/analogies", cfg.AnalogyHandler.SessionAnalogies)
      analogies.GET("/analytics/popular-combinations", cfg.AnalogyHandler.PopularCombinations)
      analogies.GET("/examples", cfg.AnalogyHandler.Examples)
      analogies.GET("/health", cfg.AnalogyHandler.ServiceHealth)
    }
  }

  return router
}
