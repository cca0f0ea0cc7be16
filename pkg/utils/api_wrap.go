package utils

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

type APIResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: message,
		TraceID: c.GetString("trace_id"),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: c.GetString("trace_id"),
	})
}

func HandleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		RespondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrPlanNotFound):
		RespondError(c, http.StatusNotFound, "Plan not found")
	case errors.Is(err, ErrRetrievalDisabled), errors.Is(err, ErrPersistenceDisabled):
		RespondError(c, http.StatusServiceUnavailable, err.Error())
	case errors.Is(err, ErrUpstreamUnavailable), errors.Is(err, ErrUnexpectedBehaviorOfAI):
		log.Printf("[%s] Upstream error: %v", c.GetString("trace_id"), err)
		RespondError(c, http.StatusBadGateway, "Language model is unavailable")
	case errors.Is(err, ErrDatabaseError):
		log.Printf("[%s] Database error: %v", c.GetString("trace_id"), err)
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	default:
		log.Printf("[%s] Unknown error: %v", c.GetString("trace_id"), err)
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	}
}
