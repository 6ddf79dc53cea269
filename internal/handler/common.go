package handler

import (
	"errors"
	"net/http"

	"material-store/internal/middleware"
	"material-store/internal/service"
	"material-store/pkg/response"

	"github.com/gin-gonic/gin"
)

// actorFrom builds the service-layer actor from the authenticated request.
// RequireRole runs before every handler that calls this, so a miss means the
// route was wired without the middleware.
func actorFrom(c *gin.Context) (service.Actor, bool) {
	id, role, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "User ID not found in context"))
		return service.Actor{}, false
	}
	return service.Actor{ID: id, Role: role}, true
}

// writeServiceError maps service-layer errors onto HTTP status codes.
// Validation failures carry their message through; everything else is reported
// generically so internals never leak to the client.
func writeServiceError(c *gin.Context, err error) {
	switch {
	case service.IsValidation(err):
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, response.Error(http.StatusForbidden, err.Error()))
	default:
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Something went wrong, please try again"))
	}
}
