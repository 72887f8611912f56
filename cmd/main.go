package main

import (
  "fmt"
  "os"

  "github.com/yungbote/conceptbridge-backend/internal/db"
  "github.com/yungbote/conceptbridge-backend/internal/handlers"
  "github.com/yungbote/conceptbridge-backend/internal/logger"
  "github.com/yungbote/conceptbridge-backend/internal/repos"
  "github.com/yungbote/conceptbridge-backend/internal/server"
  "github.com/yungbote/conceptbridge-backend/internal/services"
  "github.com/yungbote/conceptbridge-backend/internal/utils"
)

func main() {
  // Logger
  logMode := os.Getenv("LOG_MODE")
  if logMode == "" {
    logMode = "development"
  }
  log, err := logger.New(logMode)
  if err != nil {
    fmt.Printf("Failed to init logger: %v\n", err)
    os.Exit(1)
  }
  defer log.Sync()

  // Postgres
  postgresService, err := db.NewPostgresService(log)
  if err != nil {
    log.Error("Postgres init failed", "error", err)
    os.Exit(1)
  }
  if err = postgresService.AutoMigrateAll(); err != nil {
    log.Warn("Postgres auto migration failed", "error", err)
  }
  thePG := postgresService.DB()

  // Catalog seed
  if err := db.SeedCatalog(thePG, log); err != nil {
    log.Warn("Catalog seed failed", "error", err)
  }

  // Repos
  log.Info("Setting up Repos from main...")
  professionRepo := repos.NewProfessionRepo(thePG, log)
  topicRepo := repos.NewTopicRepo(thePG, log)
  subtopicRepo := repos.NewSubtopicRepo(thePG, log)
  sessionRepo := repos.NewLearningSessionRepo(thePG, log)
  analogyRepo := repos.NewGeneratedAnalogyRepo(thePG, log)

  // Services
  log.Info("Setting up Services from main...")
  aiClient, err := services.NewAIClient(log)
  if err != nil {
    log.Error("Could not init AIClient", "error", err)
    os.Exit(1)
  }
  generationService := services.NewGenerationService(log, aiClient)
  catalogService := services.NewCatalogService(thePG, log, professionRepo, topicRepo, subtopicRepo)
  analogyService := services.NewAnalogyService(thePG, log, professionRepo, topicRepo, subtopicRepo, sessionRepo, analogyRepo, generationService)

  // Handlers
  professionHandler := handlers.NewProfessionHandler(catalogService)
  topicHandler := handlers.NewTopicHandler(catalogService)
  analogyHandler := handlers.NewAnalogyHandler(analogyService, log)
  healthHandler := handlers.NewHealthHandler(postgresService, log)

  // Router
  router := server.NewRouter(server.RouterConfig{
    ProfessionHandler: professionHandler,
    TopicHandler:      topicHandler,
    AnalogyHandler:    analogyHandler,
    HealthHandler:     healthHandler,
  })

  port := utils.GetEnv("PORT", "8000", log)
  log.Info("Starting HTTP server", "port", port)
  if err := router.Run(":" + port); err != nil {
    log.Fatal("HTTP server exited", "error", err)
  }
}
