package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lenarsag/foodgram/backend/internal/logging"
	"github.com/lenarsag/foodgram/backend/internal/pagination"
	"github.com/lenarsag/foodgram/backend/internal/service"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error              string `json:"error"`
	MissingTags        []uint `json:"missing_tags,omitempty"`
	MissingIngredients []uint `json:"missing_ingredients,omitempty"`
}

// ErrorHandler turns the last error a handler attached with c.Error into
// a JSON response. Unclassified errors are logged and reported as 500.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err
		status, body := StatusFor(err)
		if status == http.StatusInternalServerError {
			logging.Ctx(c.Request.Context()).Error().Err(err).
				Str("method", c.Request.Method).
				Str("path", c.Request.URL.Path).
				Msg("request failed")
		}
		c.JSON(status, body)
	}
}

// StatusFor maps an error to its HTTP status and response body
func StatusFor(err error) (int, ErrorResponse) {
	var missing *service.MissingReferencesError
	if errors.As(err, &missing) {
		return http.StatusUnprocessableEntity, ErrorResponse{
			Error:              err.Error(),
			MissingTags:        missing.Tags,
			MissingIngredients: missing.Ingredients,
		}
	}
	var paramErr *pagination.ParamError
	if errors.As(err, &paramErr) {
		return http.StatusBadRequest, ErrorResponse{Error: err.Error()}
	}

	switch {
	case errors.Is(err, service.ErrValidation):
		return http.StatusBadRequest, ErrorResponse{Error: err.Error()}
	case errors.Is(err, service.ErrUnauthorized):
		return http.StatusUnauthorized, ErrorResponse{Error: err.Error()}
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden, ErrorResponse{Error: err.Error()}
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound, ErrorResponse{Error: err.Error()}
	case errors.Is(err, service.ErrConflict):
		return http.StatusConflict, ErrorResponse{Error: err.Error()}
	default:
		return http.StatusInternalServerError, ErrorResponse{Error: "Internal Server Error"}
	}
}

// Recovery logs panics and answers with a JSON 500
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logging.Ctx(c.Request.Context()).Error().
			Interface("panic", recovered).
			Str("path", c.Request.URL.Path).
			Msg("panic recovered")
		c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal Server Error"})
	})
}
