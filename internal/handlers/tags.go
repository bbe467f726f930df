package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/helpdesk/internal/services"
	"github.com/localnerve/helpdesk/internal/utils"
	"gorm.io/gorm"
)

// TagHandler handles tag routes
type TagHandler struct {
	DB *gorm.DB
}

// TagRequest is the body of tag writes. colorHex accepts #rgb or #rrggbb forms.
type TagRequest struct {
	Name        *string `json:"name" validate:"omitempty,max=100"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
	ColorHex    *string `json:"colorHex" validate:"omitempty,hexcolor"`
}

func (r TagRequest) input() services.TagInput {
	return services.TagInput{Name: r.Name, Description: r.Description, ColorHex: r.ColorHex}
}

// ListTags handles GET /api/tags
// @Summary List tags
// @Tags Tags
// @Produce json
// @Success 200 {array} models.Tag
// @Router /tags [get]
func (h *TagHandler) ListTags(c *fiber.Ctx) error {
	tags, err := services.ListTags(c.UserContext(), h.DB)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(tags)
}

// GetTag handles GET /api/tags/:id
// @Summary Get a tag
// @Tags Tags
// @Produce json
// @Param id path int true "Tag ID"
// @Success 200 {object} models.Tag
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /tags/{id} [get]
func (h *TagHandler) GetTag(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	tag, err := services.GetTag(c.UserContext(), h.DB, id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(tag)
}

// CreateTag handles POST /api/tags
// @Summary Create a tag
// @Tags Tags
// @Accept json
// @Produce json
// @Param tag body TagRequest true "Tag"
// @Success 200 {object} models.Tag
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /tags [post]
func (h *TagHandler) CreateTag(c *fiber.Ctx) error {
	var req TagRequest
	if err := bind(c, &req); err != nil {
		return fail(c, err)
	}
	tag, err := services.CreateTag(c.UserContext(), h.DB, req.input())
	if err != nil {
		return fail(c, err)
	}
	return utils.SuccessResponse(c, tag, fiber.StatusOK)
}

// UpdateTag handles PUT /api/tags/:id
// @Summary Update a tag
// @Tags Tags
// @Accept json
// @Produce json
// @Param id path int true "Tag ID"
// @Param tag body TagRequest true "Fields to change"
// @Success 200 {object} models.Tag
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /tags/{id} [put]
func (h *TagHandler) UpdateTag(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	var req TagRequest
	if err := bind(c, &req); err != nil {
		return fail(c, err)
	}
	tag, err := services.UpdateTag(c.UserContext(), h.DB, id, req.input())
	if err != nil {
		return fail(c, err)
	}
	return utils.SuccessResponse(c, tag, fiber.StatusOK)
}

// DeleteTag handles DELETE /api/tags/:id
// @Summary Delete a tag
// @Description The tag is removed from every ticket carrying it
// @Tags Tags
// @Produce json
// @Param id path int true "Tag ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /tags/{id} [delete]
func (h *TagHandler) DeleteTag(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	if err := services.DeleteTag(c.UserContext(), h.DB, id); err != nil {
		return fail(c, err)
	}
	return utils.DeleteSuccessResponse(c)
}
