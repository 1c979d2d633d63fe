package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/Denwa799/openapi-example/errors"
)

// DataResponse is the success envelope {"data": ...}.
type DataResponse struct {
	Data any `json:"data"`
}

// RespondWithError aborts with the status and body of the AppError in
// err's chain. Any other error is answered as a generic 500.
func RespondWithError(c *gin.Context, err error) {
	appErr := apperrors.Wrap(err)
	c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToResponse())
}

// RespondOK sends a 200 response wrapping data.
func RespondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, DataResponse{Data: data})
}

// RespondText sends a 200 response with the given content type.
func RespondText(c *gin.Context, contentType, body string) {
	c.Data(http.StatusOK, contentType, []byte(body))
}

// NoRoute answers unknown routes with a 404 error body.
func NoRoute() gin.HandlerFunc {
	return func(c *gin.Context) {
		RespondWithError(c, apperrors.RouteNotFound(c.Request.Method, c.Request.URL.Path))
	}
}
