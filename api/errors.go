package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"api_vehicles/internal/logger"
	"api_vehicles/internal/shared"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// ErrorBody is the code and message of a failed request.
type ErrorBody struct {
	Code    string `json:"code" example:"VEHICLE_NOT_FOUND"`
	Message string `json:"message" example:"vehicle 7 not found"`
}

// ErrorResponse is returned by every endpoint on failure.
type ErrorResponse struct {
	Error     ErrorBody `json:"error"`
	RequestID string    `json:"request_id,omitempty"`
}

func abortWithError(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, ErrorResponse{
		Error:     ErrorBody{Code: code, Message: message},
		RequestID: c.GetString(logger.GinRequestIDKey),
	})
}

// handleError maps domain error kinds to HTTP statuses. Anything that is not
// a domain error is logged and reported as a 500 without details.
func handleError(c *gin.Context, err error) {
	var de *shared.DomainError
	if !errors.As(err, &de) {
		logger.FromGin(c).Error("request failed", zap.Error(err))
		_ = c.Error(err)
		abortWithError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		return
	}

	status := http.StatusInternalServerError
	switch de.Kind {
	case shared.KindValidation:
		status = http.StatusBadRequest
	case shared.KindNotFound:
		status = http.StatusNotFound
	case shared.KindInvalidState:
		status = http.StatusConflict
	}

	code := de.Code
	if code == "" {
		code = string(de.Kind)
	}
	abortWithError(c, status, code, de.Message)
}

// handleBindError reports malformed or invalid request bodies as 400s.
func handleBindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, describeFieldError(fe))
		}
		abortWithError(c, http.StatusBadRequest, string(shared.KindValidation), strings.Join(msgs, "; "))
		return
	}
	abortWithError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid request payload")
}

func describeFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "cpf":
		return fmt.Sprintf("%s is not a valid CPF", fe.Field())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	}
	return fmt.Sprintf("%s failed on %s", fe.Field(), fe.Tag())
}
