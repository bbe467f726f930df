package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/helpdesk/internal/services"
	"github.com/localnerve/helpdesk/internal/types"
	"gorm.io/gorm"
)

const maxEventLimit = 1000

// EventHandler serves the event log
type EventHandler struct {
	DB *gorm.DB
}

// ListEvents handles GET /api/events
// @Summary List event log entries
// @Description Newest first unless order=asc
// @Tags Events
// @Produce json
// @Param entityTypeId query int false "Entity type"
// @Param entityId query int false "Entity id"
// @Param eventTypeId query int false "Event type"
// @Param limit query int false "Max rows (default 100, max 1000)"
// @Param order query string false "asc or desc"
// @Success 200 {array} models.EventLog
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /events [get]
func (h *EventHandler) ListEvents(c *fiber.Ctx) error {
	var f services.EventFilter
	for name, dst := range map[string]*uint64{
		"entityTypeId": &f.EntityTypeID,
		"entityId":     &f.EntityID,
		"eventTypeId":  &f.EventTypeID,
	} {
		v, err := queryID(c, name)
		if err != nil {
			return fail(c, err)
		}
		if v != nil {
			*dst = *v
		}
	}

	f.Limit = 100
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > maxEventLimit {
			return fail(c, types.NewValidationError("limit must be between 1 and %d", maxEventLimit))
		}
		f.Limit = n
	}

	switch c.Query("order", "desc") {
	case "asc":
		f.Ascending = true
	case "desc":
	default:
		return fail(c, types.NewValidationError("order must be asc or desc"))
	}

	events, err := services.ListEvents(c.UserContext(), h.DB, f)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(events)
}
