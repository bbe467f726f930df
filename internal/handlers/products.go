package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/helpdesk/internal/services"
	"github.com/localnerve/helpdesk/internal/types"
	"github.com/localnerve/helpdesk/internal/utils"
	"gorm.io/gorm"
)

// ProductHandler handles product routes
type ProductHandler struct {
	DB *gorm.DB
}

// ProductRequest is the body of product writes
type ProductRequest struct {
	Name      *string           `json:"name" validate:"omitempty,max=255"`
	ManagerID *types.FlexUint64 `json:"managerId" swaggertype:"integer"`
	OrderNo   *int              `json:"orderNo"`
	Avatar    *string           `json:"avatar" validate:"omitempty,url,max=512"`
}

func (r ProductRequest) input() services.ProductInput {
	return services.ProductInput{Name: r.Name, ManagerID: flexPtr(r.ManagerID), OrderNo: r.OrderNo, Avatar: r.Avatar}
}

// ListProducts handles GET /api/products
// @Summary List products
// @Tags Products
// @Produce json
// @Success 200 {array} models.Product
// @Router /products [get]
func (h *ProductHandler) ListProducts(c *fiber.Ctx) error {
	products, err := services.ListProducts(c.UserContext(), h.DB)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(products)
}

// GetProduct handles GET /api/products/:id
// @Summary Get a product
// @Tags Products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} models.Product
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /products/{id} [get]
func (h *ProductHandler) GetProduct(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	product, err := services.GetProduct(c.UserContext(), h.DB, id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(product)
}

// CreateProduct handles POST /api/products
// @Summary Create a product
// @Tags Products
// @Accept json
// @Produce json
// @Param product body ProductRequest true "Product"
// @Success 200 {object} models.Product
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /products [post]
func (h *ProductHandler) CreateProduct(c *fiber.Ctx) error {
	var req ProductRequest
	if err := bind(c, &req); err != nil {
		return fail(c, err)
	}
	product, err := services.CreateProduct(c.UserContext(), h.DB, req.input())
	if err != nil {
		return fail(c, err)
	}
	return utils.SuccessResponse(c, product, fiber.StatusOK)
}

// UpdateProduct handles PUT /api/products/:id
// @Summary Update a product
// @Tags Products
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param product body ProductRequest true "Fields to change"
// @Success 200 {object} models.Product
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /products/{id} [put]
func (h *ProductHandler) UpdateProduct(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	var req ProductRequest
	if err := bind(c, &req); err != nil {
		return fail(c, err)
	}
	product, err := services.UpdateProduct(c.UserContext(), h.DB, id, req.input())
	if err != nil {
		return fail(c, err)
	}
	return utils.SuccessResponse(c, product, fiber.StatusOK)
}

// DeleteProduct handles DELETE /api/products/:id
// @Summary Delete a product
// @Description Firm links to the product are removed with it
// @Tags Products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /products/{id} [delete]
func (h *ProductHandler) DeleteProduct(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	if err := services.DeleteProduct(c.UserContext(), h.DB, id); err != nil {
		return fail(c, err)
	}
	return utils.DeleteSuccessResponse(c)
}
