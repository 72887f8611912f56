package db

import (
  "fmt"

  "gorm.io/driver/postgres"
  "gorm.io/gorm"

  "github.com/yungbote/conceptbridge-backend/internal/logger"
  "github.com/yungbote/conceptbridge-backend/internal/types"
  "github.com/yungbote/conceptbridge-backend/internal/utils"
)

type PostgresService struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewPostgresService(log *logger.Logger) (*PostgresService, error) {
  serviceLog := log.With("service", "PostgresService")

  log.Info("Loading environment variables...")
  postgresHost := utils.GetEnv("POSTGRES_HOST", "localhost", log)
  postgresPort := utils.GetEnv("POSTGRES_PORT", "5432", log)
  postgresUser := utils.GetEnv("POSTGRES_USER", "postgres", log)
  postgresPassword := utils.GetEnv("POSTGRES_PASSWORD", "", log)
  postgresName := utils.GetEnv("POSTGRES_NAME", "conceptbridge", log)

  dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", postgresUser, postgresPassword, postgresHost, postgresPort, postgresName)

  log.Info("Connecting to Postgres...")
  gormDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
    DisableForeignKeyConstraintWhenMigrating: true,
  })
  if err != nil {
    log.Error("Failed to connect to Postgres", "error", err)
    return nil, fmt.Errorf("Failed to connect to Postgres: %w", err)
  }

  return &PostgresService{db: gormDB, log: serviceLog}, nil
}

func (s *PostgresService) AutoMigrateAll() error {
  s.log.Info("Auto migrating postgres tables...")
  if err := AutoMigrate(s.db); err != nil {
    s.log.Error("Auto migration failed for postgres tables", "error", err)
    return err
  }
  s.log.Info("Configuring foreign key relationships for postgres tables...")
  if err := s.db.Exec(`
    ALTER TABLE "subtopic"
    DROP CONSTRAINT IF EXISTS "fk_subtopic_topic_id";
    ALTER TABLE "subtopic"
    ADD CONSTRAINT "fk_subtopic_topic_id"
    FOREIGN KEY ("topic_id")
    REFERENCES "topic"("id")
    ON DELETE CASCADE
  `).Error; err != nil {
    return fmt.Errorf("Failed to add fk_subtopic_topic_id: %w", err)
  }
  if err := s.db.Exec(`
    ALTER TABLE "generated_analogy"
    DROP CONSTRAINT IF EXISTS "fk_generated_analogy_session_id";
    ALTER TABLE "generated_analogy"
    ADD CONSTRAINT "fk_generated_analogy_session_id"
    FOREIGN KEY ("session_id")
    REFERENCES "learning_session"("id")
    ON DELETE CASCADE
  `).Error; err != nil {
    return fmt.Errorf("Failed to add fk_generated_analogy_session_id: %w", err)
  }
  return nil
}

// AutoMigrate is shared with the sqlite-backed tests so both databases see
// the same schema.
func AutoMigrate(gormDB *gorm.DB) error {
  return gormDB.AutoMigrate(
    &types.Profession{},
    &types.Topic{},
    &types.Subtopic{},
    &types.LearningSession{},
    &types.GeneratedAnalogy{},
  )
}

func (s *PostgresService) DB() *gorm.DB {
  return s.db
}

func (s *PostgresService) Ping() error {
  sqlDB, err := s.db.DB()
  if err != nil {
    return err
  }
  return sqlDB.Ping()
}
