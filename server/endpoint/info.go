package endpoint

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Denwa799/openapi-example/version"
)

var startedAt = time.Now()

// InfoResponse is the body served by the info endpoint.
type InfoResponse struct {
	Service string       `json:"service"`
	Build   version.Info `json:"build"`
	Uptime  string       `json:"uptime"`
	Now     time.Time    `json:"now"`
}

// Info returns a handler reporting build information and uptime.
func Info(serviceName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, InfoResponse{
			Service: serviceName,
			Build:   version.Get(),
			Uptime:  time.Since(startedAt).Round(time.Second).String(),
			Now:     time.Now().UTC(),
		})
	}
}
