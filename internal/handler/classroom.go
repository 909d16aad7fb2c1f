// Package handler exposes the HTTP handlers of the classroom finder.
// Handlers only bind and validate transport input; domain errors coming
// back from the finder are mapped onto status codes in one place.
package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/hufspace/classroom-finder/internal/availability"
	"github.com/hufspace/classroom-finder/internal/finder"
	"github.com/hufspace/classroom-finder/internal/model"
)

// ClassroomHandler serves the free-room search, the building list and
// occupancy reports.
type ClassroomHandler struct {
	Svc    *finder.Service
	Logger *zap.Logger
}

// NewClassroomHandler wires a handler around svc.
func NewClassroomHandler(svc *finder.Service, logger *zap.Logger) *ClassroomHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ClassroomHandler{Svc: svc, Logger: logger}
}

type occupancyRequest struct {
	Classroom  string `json:"classroom"`
	CountRange string `json:"count_range"`
}

// Buildings returns the sorted building names as a JSON array.
// GET /buildings
func (h *ClassroomHandler) Buildings(c echo.Context) error {
	out, err := h.Svc.Buildings(c.Request().Context())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// Find lists the rooms free for the whole requested window.
// GET /find?day=월&startTime=10:00&endTime=11:30&buildings=인문과학관,교수학습개발원
func (h *ClassroomHandler) Find(c echo.Context) error {
	q := availability.Query{
		Day:       strings.TrimSpace(c.QueryParam("day")),
		StartTime: strings.TrimSpace(c.QueryParam("startTime")),
		EndTime:   strings.TrimSpace(c.QueryParam("endTime")),
		Buildings: availability.ParseBuildings(c.QueryParam("buildings")),
	}
	out, err := h.Svc.Find(c.Request().Context(), q)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// ReportOccupancy records a crowd-sourced headcount bucket.
// POST /occupancy {"classroom": "...", "count_range": "3명"}
func (h *ClassroomHandler) ReportOccupancy(c echo.Context) error {
	var req occupancyRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	total, err := h.Svc.ReportOccupancy(c.Request().Context(), req.Classroom, req.CountRange)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "total_occupancy": total})
}

func (h *ClassroomHandler) fail(c echo.Context, err error) error {
	switch {
	case errors.Is(err, model.ErrInvalidQuery), errors.Is(err, model.ErrInvalidBucket):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case errors.Is(err, model.ErrDataUnavailable):
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "classroom data is not available"})
	default:
		h.Logger.Error("request failed", zap.String("path", c.Path()), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
}
