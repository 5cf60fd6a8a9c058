package server

import (
	"errors"
	"net/http"

	"fn-peaks/src/helpers"
	"fn-peaks/src/models"
	"fn-peaks/src/utils"

	"github.com/gin-gonic/gin"
)

// -----------------------------------------------------------------------------

// parseRange reads a query range in the configured layout and timezone.
func (s *FastAPIServer) parseRange(start, end string) (models.MTimeRange, error) {
	return utils.ParseRange(start, end, s.Config.Aggregation.TimeLayout, s.Location)
}

// -----------------------------------------------------------------------------

// statusFor maps pipeline errors to HTTP status codes.
func statusFor(err error) int {
	var invalid *helpers.InvalidTimeError
	switch {
	case errors.As(err, &invalid):
		return http.StatusBadRequest
	case errors.Is(err, helpers.ErrRangeTooLarge):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// -----------------------------------------------------------------------------

func errorBody(err error) gin.H {
	return gin.H{"error": err.Error()}
}

// -----------------------------------------------------------------------------

func errorMessage(err error) *models.MErrorMessage {
	return &models.MErrorMessage{Type: "ERROR", Error: err.Error()}
}
