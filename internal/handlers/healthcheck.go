package handlers

import (
  "net/http"

  "github.com/gin-gonic/gin"

  "github.com/yungbote/conceptbridge-backend/internal/logger"
)

func HealthCheck(c *gin.Context) {
  c.String(http.StatusOK, "ok")
}

// DBPinger is what the health endpoint needs from the database layer.
type DBPinger interface {
  Ping() error
}

type HealthHandler struct {
  pinger DBPinger
  log    *logger.Logger
}

func NewHealthHandler(pinger DBPinger, log *logger.Logger) *HealthHandler {
  return &HealthHandler{pinger: pinger, log: log.With("handler", "HealthHandler")}
}

func (hh *HealthHandler) Health(c *gin.Context) {
  dbStatus := "connected"
  status := "healthy"
  if hh.pinger == nil {
    dbStatus = "unconfigured"
    status = "unhealthy"
  } else if err := hh.pinger.Ping(); err != nil {
    hh.log.Error("Database health check failed", "error", err)
    dbStatus = "disconnected"
    status = "unhealthy"
  }
  RespondOK(c, gin.H{
    "status":   status,
    "message":  "ConceptBridge API is running",
    "database": dbStatus,
  })
}
