package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/helpdesk/internal/services"
	"github.com/localnerve/helpdesk/internal/types"
	"github.com/localnerve/helpdesk/internal/utils"
)

// UserHandler handles user routes
type UserHandler struct {
	Users *services.UserService
}

// UserRequest is the body of user writes. The password is never returned.
type UserRequest struct {
	Name     *string           `json:"name" validate:"omitempty,max=255"`
	Email    *string           `json:"email" validate:"omitempty,email,max=255"`
	Password *string           `json:"password" validate:"omitempty,min=8,max=72"`
	Phone    *string           `json:"phone" validate:"omitempty,max=50"`
	RoleID   *types.FlexUint64 `json:"roleId" swaggertype:"integer"`
}

func (r UserRequest) input() services.UserInput {
	return services.UserInput{
		Name:     r.Name,
		Email:    r.Email,
		Password: r.Password,
		Phone:    r.Phone,
		RoleID:   flexPtr(r.RoleID),
	}
}

// ListUsers handles GET /api/users
// @Summary List users
// @Tags Users
// @Produce json
// @Success 200 {array} models.User
// @Router /users [get]
func (h *UserHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.Users.List(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(users)
}

// GetUser handles GET /api/users/:id
// @Summary Get a user
// @Tags Users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} models.User
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /users/{id} [get]
func (h *UserHandler) GetUser(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	user, err := h.Users.Get(c.UserContext(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(user)
}

// CreateUser handles POST /api/users
// @Summary Create a user
// @Tags Users
// @Accept json
// @Produce json
// @Param user body UserRequest true "User"
// @Success 200 {object} models.User
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct "Email already in use"
// @Router /users [post]
func (h *UserHandler) CreateUser(c *fiber.Ctx) error {
	var req UserRequest
	if err := bind(c, &req); err != nil {
		return fail(c, err)
	}
	user, err := h.Users.Create(c.UserContext(), req.input())
	if err != nil {
		return fail(c, err)
	}
	return utils.SuccessResponse(c, user, fiber.StatusOK)
}

// UpdateUser handles PUT /api/users/:id
// @Summary Update a user
// @Tags Users
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param user body UserRequest true "Fields to change"
// @Success 200 {object} models.User
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /users/{id} [put]
func (h *UserHandler) UpdateUser(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	var req UserRequest
	if err := bind(c, &req); err != nil {
		return fail(c, err)
	}
	user, err := h.Users.Update(c.UserContext(), id, req.input())
	if err != nil {
		return fail(c, err)
	}
	return utils.SuccessResponse(c, user, fiber.StatusOK)
}

// DeleteUser handles DELETE /api/users/:id
// @Summary Delete a user
// @Description Rejected while the user manages a product or has written comments. Assigned tickets become unassigned.
// @Tags Users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Router /users/{id} [delete]
func (h *UserHandler) DeleteUser(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	if err := h.Users.Delete(c.UserContext(), id); err != nil {
		return fail(c, err)
	}
	return utils.DeleteSuccessResponse(c)
}
