package handlers

import (
	"net/http"
	"time"

	"schedulit/models"
	"schedulit/services/calendar"
	"schedulit/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CalendarHandler serves the raw event range the calendar grid renders.
type CalendarHandler struct {
	Gateways calendar.Provider
}

func NewCalendarHandler(gateways calendar.Provider) *CalendarHandler {
	return &CalendarHandler{Gateways: gateways}
}

// GetEventsHandler returns the user's events between two ISO-8601 instants.
func (h *CalendarHandler) GetEventsHandler(c *gin.Context) {
	logger := getLogger(c)
	userID := c.GetString("userID")

	start, err := parseISOInstant(c.Query("start"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Both start and end parameters are required in ISO format", "")
		return
	}
	end, err := parseISOInstant(c.Query("end"))
	if err != nil || !end.After(start) {
		utils.JSONError(c, http.StatusBadRequest, "Both start and end parameters are required in ISO format", "")
		return
	}

	gw, err := h.Gateways.ForUser(c.Request.Context(), userID)
	if err != nil {
		logger.Error("gateway unavailable", zap.String("userID", userID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to fetch calendar events", "")
		return
	}

	events, err := gw.ListEvents(c.Request.Context(), models.TimeWindow{Start: start, End: end})
	if err != nil {
		logger.Error("event listing failed", zap.String("userID", userID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to fetch calendar events", "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "events": events})
}

// parseISOInstant accepts RFC3339 and the bare "2026-03-01T00:00:00" form
// the frontend sends.
func parseISOInstant(v string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02T15:04:05", v)
}
