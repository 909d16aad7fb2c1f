// Package router defines how HTTP routes are registered for the API.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/hufspace/classroom-finder/internal/handler"
)

// RegisterRoutes registers the health check used by load balancers.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterClassrooms registers the classroom finder API.  cache wraps the
// building list only: /find carries live occupancy and is never cached.
// limit guards occupancy reports.
func RegisterClassrooms(e *echo.Echo, h *handler.ClassroomHandler, cache, limit echo.MiddlewareFunc) {
	e.GET("/buildings", h.Buildings, cache)
	e.GET("/find", h.Find)
	e.POST("/occupancy", h.ReportOccupancy, limit)
}
