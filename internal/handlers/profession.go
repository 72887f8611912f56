package handlers

import (
  "fmt"
  "net/http"

  "github.com/gin-gonic/gin"
  "github.com/google/uuid"

  "github.com/yungbote/conceptbridge-backend/internal/services"
)

type ProfessionHandler struct {
  catalogService services.CatalogService
}

func NewProfessionHandler(catalogService services.CatalogService) *ProfessionHandler {
  return &ProfessionHandler{catalogService: catalogService}
}

func (ph *ProfessionHandler) List(c *gin.Context) {
  professions, err := ph.catalogService.ListProfessions(c.Request.Context())
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, professions)
}

func (ph *ProfessionHandler) Get(c *gin.Context) {
  professionID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_request", fmt.Errorf("invalid profession id: %s", c.Param("id")))
    return
  }
  profession, err := ph.catalogService.GetProfession(c.Request.Context(), professionID)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, profession)
}
