package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/helpdesk/internal/services"
	"github.com/localnerve/helpdesk/internal/utils"
	"gorm.io/gorm"
)

// CommentHandler handles ticket comment routes
type CommentHandler struct {
	DB *gorm.DB
}

// CreateCommentRequest is the body of POST /tickets/{id}/comments
type CreateCommentRequest struct {
	Content string `json:"content" validate:"required"`
}

// ListComments handles GET /api/tickets/:id/comments
// @Summary List a ticket's comments
// @Tags Comments
// @Produce json
// @Param id path int true "Ticket ID"
// @Success 200 {array} models.TicketComment
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /tickets/{id}/comments [get]
func (h *CommentHandler) ListComments(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	comments, err := services.ListTicketComments(c.UserContext(), h.DB, id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(comments)
}

// AddComment handles POST /api/tickets/:id/comments
// @Summary Comment on a ticket
// @Description The acting user is the author and is required
// @Tags Comments
// @Accept json
// @Produce json
// @Param id path int true "Ticket ID"
// @Param X-User-Id header int true "Author"
// @Param comment body CreateCommentRequest true "Comment"
// @Success 200 {object} models.TicketComment
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /tickets/{id}/comments [post]
func (h *CommentHandler) AddComment(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	var req CreateCommentRequest
	if err := bind(c, &req); err != nil {
		return fail(c, err)
	}
	comment, err := services.AddTicketComment(c.UserContext(), h.DB, id, req.Content)
	if err != nil {
		return fail(c, err)
	}
	return utils.SuccessResponse(c, comment, fiber.StatusOK)
}

// DeleteComment handles DELETE /api/tickets/:id/comments/:commentId
// @Summary Delete a comment
// @Tags Comments
// @Produce json
// @Param id path int true "Ticket ID"
// @Param commentId path int true "Comment ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /tickets/{id}/comments/{commentId} [delete]
func (h *CommentHandler) DeleteComment(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	commentID, err := pathID(c, "commentId")
	if err != nil {
		return fail(c, err)
	}
	if err := services.DeleteTicketComment(c.UserContext(), h.DB, id, commentID); err != nil {
		return fail(c, err)
	}
	return utils.DeleteSuccessResponse(c)
}
