package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/helpdesk/internal/models"
	"github.com/localnerve/helpdesk/internal/services"
	"github.com/localnerve/helpdesk/internal/utils"
	"gorm.io/gorm"
)

// LookupRequest is the body of lookup writes. isClosed only applies to statuses.
type LookupRequest struct {
	Name     *string `json:"name" validate:"omitempty,max=100"`
	OrderNo  *int    `json:"orderNo"`
	IsClosed *bool   `json:"isClosed"`
}

// LookupHandler serves one reference table. A nil Remove makes the table read-only.
type LookupHandler[T any, P interface {
	*T
	models.Lookup
}] struct {
	DB     *gorm.DB
	What   string
	Remove func(ctx context.Context, db *gorm.DB, id uint64) error
}

// Register mounts the table's routes on r
func (h *LookupHandler[T, P]) Register(r fiber.Router) {
	r.Get("/", h.List)
	r.Get("/:id", h.Get)
	if h.Remove == nil {
		return
	}
	r.Post("/", h.Create)
	r.Put("/:id", h.Update)
	r.Delete("/:id", h.Delete)
}

// List handles GET /api/lookups/:table
// @Summary List a reference table
// @Description Rows ordered by orderNo. Tables: statuses, priorities, privileges, entity-types, event-types
// @Tags Lookups
// @Produce json
// @Param table path string true "Table"
// @Success 200 {array} models.TicketStatus
// @Router /lookups/{table} [get]
func (h *LookupHandler[T, P]) List(c *fiber.Ctx) error {
	rows, err := services.ListLookups[T](c.UserContext(), h.DB)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(rows)
}

// Get handles GET /api/lookups/:table/:id
// @Summary Get a reference row
// @Tags Lookups
// @Produce json
// @Param table path string true "Table"
// @Param id path int true "Row ID"
// @Success 200 {object} models.TicketStatus
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /lookups/{table}/{id} [get]
func (h *LookupHandler[T, P]) Get(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	row, err := services.GetLookup[T](c.UserContext(), h.DB, id, h.What)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(row)
}

// Create handles POST /api/lookups/:table
// @Summary Create a reference row
// @Description Not available for entity-types and event-types
// @Tags Lookups
// @Accept json
// @Produce json
// @Param table path string true "Table"
// @Param row body LookupRequest true "Row"
// @Success 200 {object} models.TicketStatus
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct "Name already in use"
// @Router /lookups/{table} [post]
func (h *LookupHandler[T, P]) Create(c *fiber.Ctx) error {
	var req LookupRequest
	if err := bind(c, &req); err != nil {
		return fail(c, err)
	}
	row, err := services.CreateLookup[T, P](c.UserContext(), h.DB, req.input(), h.What)
	if err != nil {
		return fail(c, err)
	}
	return utils.SuccessResponse(c, row, fiber.StatusOK)
}

// Update handles PUT /api/lookups/:table/:id
// @Summary Update a reference row
// @Tags Lookups
// @Accept json
// @Produce json
// @Param table path string true "Table"
// @Param id path int true "Row ID"
// @Param row body LookupRequest true "Fields to change"
// @Success 200 {object} models.TicketStatus
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /lookups/{table}/{id} [put]
func (h *LookupHandler[T, P]) Update(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	var req LookupRequest
	if err := bind(c, &req); err != nil {
		return fail(c, err)
	}
	row, err := services.UpdateLookup[T, P](c.UserContext(), h.DB, id, req.input(), h.What)
	if err != nil {
		return fail(c, err)
	}
	return utils.SuccessResponse(c, row, fiber.StatusOK)
}

// Delete handles DELETE /api/lookups/:table/:id
// @Summary Delete a reference row
// @Description Rejected while a ticket (or, for privileges, a user) references the row
// @Tags Lookups
// @Produce json
// @Param table path string true "Table"
// @Param id path int true "Row ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Router /lookups/{table}/{id} [delete]
func (h *LookupHandler[T, P]) Delete(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	if err := h.Remove(c.UserContext(), h.DB, id); err != nil {
		return fail(c, err)
	}
	return utils.DeleteSuccessResponse(c)
}

func (r LookupRequest) input() services.LookupInput {
	return services.LookupInput{Name: r.Name, OrderNo: r.OrderNo, IsClosed: r.IsClosed}
}
