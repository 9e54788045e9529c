package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/erandawijewantha/personalized-health-coach/internal/types"
)

type apiError struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

type errorEnvelope struct {
	Error apiError `json:"error"`
}

// statusForCode maps coach error codes to HTTP status codes. Codes that
// indicate bad caller input map to 4xx, upstream provider failures to
// 502, and everything else to 500.
func statusForCode(code types.ErrorCode) int {
	switch code {
	case types.WORKFLOW_INVALID_INPUT, types.RANK_INVALID_INPUT, types.CONFIG_VALIDATION_FAILED:
		return http.StatusBadRequest
	case types.DB_NOT_FOUND:
		return http.StatusNotFound
	case types.LLM_RATE_LIMITED:
		return http.StatusTooManyRequests
	case types.LLM_COMPLETION_FAILED, types.LLM_NETWORK_FAILED, types.LLM_UNAUTHORIZED, types.LLM_PROVIDER_INIT:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, err error) {
	code := types.CodeOf(err)
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(statusForCode(code), errorEnvelope{
		Error: apiError{
			Code:    string(code),
			Message: msg,
		},
	})
}

func respondBadRequest(c *gin.Context, message string, err error) {
	respondError(c, types.WrapError(types.WORKFLOW_INVALID_INPUT, message, err))
}

func respondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

func respondCreated(c *gin.Context, payload any) {
	c.JSON(http.StatusCreated, payload)
}
