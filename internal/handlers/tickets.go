// tickets.go
//
// A support desk service for firms, products and their tickets
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of helpdesk.
// helpdesk is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// helpdesk is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with helpdesk.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/helpdesk/internal/actor"
	"github.com/localnerve/helpdesk/internal/services"
	"github.com/localnerve/helpdesk/internal/types"
	"github.com/localnerve/helpdesk/internal/utils"
	"gorm.io/gorm"
)

// TicketHandler handles ticket routes
type TicketHandler struct {
	DB *gorm.DB
}

// CreateTicketRequest is the body of POST /tickets. Omitted statusId and
// priorityId select the default status and priority.
type CreateTicketRequest struct {
	Title          string            `json:"title" validate:"required,max=255"`
	Description    *string           `json:"description"`
	Content        *string           `json:"content"`
	FirmID         *types.FlexUint64 `json:"firmId" swaggertype:"integer"`
	AssignedUserID *types.FlexUint64 `json:"assignedUserId" swaggertype:"integer"`
	StatusID       types.FlexUint64  `json:"statusId" swaggertype:"integer"`
	PriorityID     types.FlexUint64  `json:"priorityId" swaggertype:"integer"`
	CreatedBy      *types.FlexUint64 `json:"createdBy" swaggertype:"integer"`
}

// UpdateTicketRequest is the body of PUT /tickets/{id}. Only keys present in
// the body are applied; firmId and assignedUserId may be null.
type UpdateTicketRequest struct {
	Title          *string           `json:"title" validate:"omitempty,max=255"`
	Description    *string           `json:"description"`
	Content        *string           `json:"content"`
	FirmID         types.OptionalID  `json:"firmId" swaggertype:"integer"`
	AssignedUserID types.OptionalID  `json:"assignedUserId" swaggertype:"integer"`
	StatusID       *types.FlexUint64 `json:"statusId" swaggertype:"integer"`
	PriorityID     *types.FlexUint64 `json:"priorityId" swaggertype:"integer"`
}

// ListTickets handles GET /api/tickets
// @Summary List tickets
// @Description List tickets with firm, assignee, status and priority embedded, newest first
// @Tags Tickets
// @Produce json
// @Param statusId query int false "Status filter"
// @Param priorityId query int false "Priority filter"
// @Param firmId query int false "Firm filter"
// @Param assignedUserId query int false "Assignee filter"
// @Param closed query bool false "Only tickets whose status is (or is not) closed"
// @Success 200 {array} models.Ticket
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /tickets [get]
func (h *TicketHandler) ListTickets(c *fiber.Ctx) error {
	var (
		f   services.TicketFilter
		err error
	)
	if f.StatusID, err = queryID(c, "statusId"); err != nil {
		return fail(c, err)
	}
	if f.PriorityID, err = queryID(c, "priorityId"); err != nil {
		return fail(c, err)
	}
	if f.FirmID, err = queryID(c, "firmId"); err != nil {
		return fail(c, err)
	}
	if f.AssignedUserID, err = queryID(c, "assignedUserId"); err != nil {
		return fail(c, err)
	}
	if f.Closed, err = queryBool(c, "closed"); err != nil {
		return fail(c, err)
	}

	tickets, err := services.ListTickets(c.UserContext(), h.DB, f)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(tickets)
}

// GetTicket handles GET /api/tickets/:id
// @Summary Get a ticket
// @Tags Tickets
// @Produce json
// @Param id path int true "Ticket ID"
// @Success 200 {object} models.Ticket
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /tickets/{id} [get]
func (h *TicketHandler) GetTicket(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	ticket, err := services.GetTicket(c.UserContext(), h.DB, id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(ticket)
}

// CreateTicket handles POST /api/tickets
// @Summary Create a ticket
// @Description createdAt is always set by the server
// @Tags Tickets
// @Accept json
// @Produce json
// @Param X-User-Id header int false "Acting user"
// @Param ticket body CreateTicketRequest true "Ticket"
// @Success 200 {object} models.Ticket
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /tickets [post]
func (h *TicketHandler) CreateTicket(c *fiber.Ctx) error {
	var req CreateTicketRequest
	if err := bind(c, &req); err != nil {
		return fail(c, err)
	}

	ticket, err := services.CreateTicket(c.UserContext(), h.DB, services.TicketDraft{
		Title:          req.Title,
		Description:    req.Description,
		Content:        req.Content,
		FirmID:         flexPtr(req.FirmID),
		AssignedUserID: flexPtr(req.AssignedUserID),
		StatusID:       req.StatusID.Uint64(),
		PriorityID:     req.PriorityID.Uint64(),
		CreatedBy:      flexPtr(req.CreatedBy),
	})
	if err != nil {
		return fail(c, err)
	}
	return utils.SuccessResponse(c, ticket, fiber.StatusOK)
}

// UpdateTicket handles PUT /api/tickets/:id
// @Summary Update a ticket
// @Tags Tickets
// @Accept json
// @Produce json
// @Param id path int true "Ticket ID"
// @Param X-User-Id header int false "Acting user"
// @Param ticket body UpdateTicketRequest true "Fields to change"
// @Success 200 {object} models.Ticket
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /tickets/{id} [put]
func (h *TicketHandler) UpdateTicket(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	var req UpdateTicketRequest
	if err := bind(c, &req); err != nil {
		return fail(c, err)
	}

	ticket, err := services.UpdateTicket(c.UserContext(), h.DB, id, services.TicketPatch{
		Title:          req.Title,
		Description:    req.Description,
		Content:        req.Content,
		FirmID:         req.FirmID,
		AssignedUserID: req.AssignedUserID,
		StatusID:       flexPtr(req.StatusID),
		PriorityID:     flexPtr(req.PriorityID),
	})
	if err != nil {
		return fail(c, err)
	}
	return utils.SuccessResponse(c, ticket, fiber.StatusOK)
}

// DeleteTicket handles DELETE /api/tickets/:id
// @Summary Delete a ticket
// @Description Deletes the ticket with its tags and comments. Its event log stays.
// @Tags Tickets
// @Produce json
// @Param id path int true "Ticket ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /tickets/{id} [delete]
func (h *TicketHandler) DeleteTicket(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	if err := services.DeleteTicket(c.UserContext(), h.DB, id); err != nil {
		return fail(c, err)
	}
	return utils.DeleteSuccessResponse(c)
}

// AssignTicket handles POST /api/tickets/:id/assign/:userId
// @Summary Assign a ticket
// @Tags Tickets
// @Produce json
// @Param id path int true "Ticket ID"
// @Param userId path int true "Assignee"
// @Success 200 {object} models.Ticket
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /tickets/{id}/assign/{userId} [post]
func (h *TicketHandler) AssignTicket(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	userID, err := pathID(c, "userId")
	if err != nil {
		return fail(c, err)
	}
	ticket, err := services.AssignTicket(c.UserContext(), h.DB, id, userID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(ticket)
}

// ChangeTicketStatus handles POST /api/tickets/:id/status/:statusId
// @Summary Change a ticket's status
// @Description Any status may follow any other
// @Tags Tickets
// @Produce json
// @Param id path int true "Ticket ID"
// @Param statusId path int true "Status ID"
// @Param X-User-Id header int false "Acting user"
// @Success 200 {object} models.Ticket
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /tickets/{id}/status/{statusId} [post]
func (h *TicketHandler) ChangeTicketStatus(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	statusID, err := pathID(c, "statusId")
	if err != nil {
		return fail(c, err)
	}
	ticket, err := services.ChangeTicketStatus(c.UserContext(), h.DB, id, statusID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(ticket)
}

// ListTicketTags handles GET /api/tickets/:id/tags
// @Summary List a ticket's tags
// @Tags Tickets
// @Produce json
// @Param id path int true "Ticket ID"
// @Success 200 {array} models.TicketTag
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /tickets/{id}/tags [get]
func (h *TicketHandler) ListTicketTags(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	tags, err := services.ListTicketTags(c.UserContext(), h.DB, id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(tags)
}

// AddTicketTag handles POST /api/tickets/:id/tag/:tagId
// @Summary Attach a tag to a ticket
// @Tags Tickets
// @Produce json
// @Param id path int true "Ticket ID"
// @Param tagId path int true "Tag ID"
// @Param userId query int false "Acting user"
// @Success 200 {object} models.TicketTag
// @Failure 400 {object} utils.ErrorResponseStruct "Tag already exists"
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /tickets/{id}/tag/{tagId} [post]
func (h *TicketHandler) AddTicketTag(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	tagID, err := pathID(c, "tagId")
	if err != nil {
		return fail(c, err)
	}
	ctx := c.UserContext()
	link, err := services.AddTicketTag(ctx, h.DB, id, tagID, actor.UserIDPtr(ctx))
	if err != nil {
		return fail(c, err)
	}
	return utils.SuccessResponse(c, link, fiber.StatusOK)
}

// RemoveTicketTag handles DELETE /api/tickets/:id/tag/:tagId
// @Summary Detach a tag from a ticket
// @Tags Tickets
// @Produce json
// @Param id path int true "Ticket ID"
// @Param tagId path int true "Tag ID"
// @Param userId query int false "Acting user"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /tickets/{id}/tag/{tagId} [delete]
func (h *TicketHandler) RemoveTicketTag(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	tagID, err := pathID(c, "tagId")
	if err != nil {
		return fail(c, err)
	}
	ctx := c.UserContext()
	if err := services.RemoveTicketTag(ctx, h.DB, id, tagID, actor.UserIDPtr(ctx)); err != nil {
		return fail(c, err)
	}
	return utils.DeleteSuccessResponse(c)
}

// ListTicketEvents handles GET /api/tickets/:id/events
// @Summary A ticket's audit trail
// @Description Event log rows for the ticket, oldest first. Available after the ticket is deleted.
// @Tags Tickets
// @Produce json
// @Param id path int true "Ticket ID"
// @Success 200 {array} models.EventLog
// @Router /tickets/{id}/events [get]
func (h *TicketHandler) ListTicketEvents(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	events, err := services.ListTicketEvents(c.UserContext(), h.DB, id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(events)
}
