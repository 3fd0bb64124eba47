package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/filmoteca/movie-catalog/internal/services"
	srvErrors "github.com/filmoteca/movie-catalog/pkg/errors"
)

type Handler struct {
	catalog *services.Catalog
}

func New(catalog *services.Catalog) *Handler {
	return &Handler{
		catalog: catalog,
	}
}

// abortWithServiceError maps a service error onto an HTTP response. Store
// failures stay generic towards the client; detail goes to the log only.
func abortWithServiceError(c *gin.Context, op string, err error) {
	log := zap.S().Named("movie_handler")

	switch {
	case srvErrors.IsValidationError(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case srvErrors.IsResourceNotFoundError(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case srvErrors.IsEmptyCatalogError(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case srvErrors.IsTimeoutError(err):
		log.Errorw("store call timed out", "op", op, "error", err)
		c.JSON(http.StatusGatewayTimeout, gin.H{"error": "store timeout"})
	default:
		log.Errorw("store call failed", "op", op, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
