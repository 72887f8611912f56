package handlers

import (
  "net/http"

  "github.com/gin-gonic/gin"

  "github.com/yungbote/conceptbridge-backend/internal/services"
)

type APIError struct {
  Message string `json:"message"`
  Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
  Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
  msg := "unknown error"
  if err != nil {
    msg = err.Error()
  }
  c.JSON(status, ErrorEnvelope{
    Error: APIError{
      Message: msg,
      Code:    code,
    },
  })
}

func RespondOK(c *gin.Context, payload any) {
  c.JSON(http.StatusOK, payload)
}

// RespondServiceError maps a service error onto the envelope: missing
// records become 404s, everything else a generic 500 with the original
// error logged by the caller, never echoed.
func RespondServiceError(c *gin.Context, err error) {
  if services.IsNotFound(err) {
    RespondError(c, http.StatusNotFound, "not_found", err)
    return
  }
  RespondError(c, http.StatusInternalServerError, "internal", errInternal)
}

var errInternal = internalError{}

type internalError struct{}

func (internalError) Error() string { return "internal server error" }
