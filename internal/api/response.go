package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pankajredekar/productsvc/internal/product"
	"gorm.io/gorm"
)

const statusFail = "Fail"

// ErrorBody is returned for every failed request.
type ErrorBody struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.AbortWithStatusJSON(statusCode, ErrorBody{
		Status:  statusFail,
		Message: message,
	})
}

func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, product.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// errorMessage hides persistence details from clients.
func errorMessage(err error) string {
	if mapErrorToStatus(err) == http.StatusInternalServerError {
		return "Internal server error"
	}
	return err.Error()
}
