package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Veraticus/harmony/internal/common"
	"github.com/Veraticus/harmony/internal/model"
)

// APIError is the body of a failed request.
type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// ErrorEnvelope wraps APIError as {"error": {...}}.
type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

// RespondError writes an error envelope.
func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = common.UserMessage(err)
	}
	c.AbortWithStatusJSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

// RespondOK writes payload with status 200.
func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

// RespondCreated writes payload with status 201.
func RespondCreated(c *gin.Context, payload any) {
	c.JSON(http.StatusCreated, payload)
}

// respondStoreError maps tracker and validation errors to a status code.
func (s *Server) respondStoreError(c *gin.Context, op string, err error) {
	if errors.Is(err, model.ErrValidation) || errors.Is(err, common.ErrInvalidInput) {
		RespondError(c, http.StatusBadRequest, "invalid_input", err)
		return
	}
	s.logger.Error(op+" failed", "error", err, "path", c.FullPath())
	RespondError(c, http.StatusInternalServerError, "internal_error", errors.New("internal error"))
}
