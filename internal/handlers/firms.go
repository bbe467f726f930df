package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/helpdesk/internal/services"
	"github.com/localnerve/helpdesk/internal/types"
	"github.com/localnerve/helpdesk/internal/utils"
	"gorm.io/gorm"
)

// FirmHandler handles firm routes
type FirmHandler struct {
	DB *gorm.DB
}

// FirmRequest is the body of firm writes. On PUT only keys present are applied.
type FirmRequest struct {
	Name     *string          `json:"name" validate:"omitempty,max=255"`
	OrderNo  *int             `json:"orderNo"`
	ParentID types.OptionalID `json:"parentId" swaggertype:"integer"`
	Version  *uint8           `json:"version"`
}

func (r FirmRequest) input() services.FirmInput {
	return services.FirmInput{Name: r.Name, OrderNo: r.OrderNo, ParentID: r.ParentID, Version: r.Version}
}

// ListFirms handles GET /api/firms
// @Summary List firms
// @Tags Firms
// @Produce json
// @Success 200 {array} models.Firm
// @Router /firms [get]
func (h *FirmHandler) ListFirms(c *fiber.Ctx) error {
	firms, err := services.ListFirms(c.UserContext(), h.DB)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(firms)
}

// GetFirm handles GET /api/firms/:id
// @Summary Get a firm
// @Tags Firms
// @Produce json
// @Param id path int true "Firm ID"
// @Success 200 {object} models.Firm
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /firms/{id} [get]
func (h *FirmHandler) GetFirm(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	firm, err := services.GetFirm(c.UserContext(), h.DB, id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(firm)
}

// CreateFirm handles POST /api/firms
// @Summary Create a firm
// @Tags Firms
// @Accept json
// @Produce json
// @Param firm body FirmRequest true "Firm"
// @Success 200 {object} models.Firm
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /firms [post]
func (h *FirmHandler) CreateFirm(c *fiber.Ctx) error {
	var req FirmRequest
	if err := bind(c, &req); err != nil {
		return fail(c, err)
	}
	firm, err := services.CreateFirm(c.UserContext(), h.DB, req.input())
	if err != nil {
		return fail(c, err)
	}
	return utils.SuccessResponse(c, firm, fiber.StatusOK)
}

// UpdateFirm handles PUT /api/firms/:id
// @Summary Update a firm
// @Description A parent must exist and must not be the firm or one of its descendants
// @Tags Firms
// @Accept json
// @Produce json
// @Param id path int true "Firm ID"
// @Param firm body FirmRequest true "Fields to change"
// @Success 200 {object} models.Firm
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /firms/{id} [put]
func (h *FirmHandler) UpdateFirm(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	var req FirmRequest
	if err := bind(c, &req); err != nil {
		return fail(c, err)
	}
	firm, err := services.UpdateFirm(c.UserContext(), h.DB, id, req.input())
	if err != nil {
		return fail(c, err)
	}
	return utils.SuccessResponse(c, firm, fiber.StatusOK)
}

// DeleteFirm handles DELETE /api/firms/:id
// @Summary Delete a firm
// @Description Tickets and child firms of the firm are detached, not deleted
// @Tags Firms
// @Produce json
// @Param id path int true "Firm ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /firms/{id} [delete]
func (h *FirmHandler) DeleteFirm(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	if err := services.DeleteFirm(c.UserContext(), h.DB, id); err != nil {
		return fail(c, err)
	}
	return utils.DeleteSuccessResponse(c)
}

// ListChildren handles GET /api/firms/:id/children
// @Summary List a firm's child firms
// @Tags Firms
// @Produce json
// @Param id path int true "Firm ID"
// @Success 200 {array} models.Firm
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /firms/{id}/children [get]
func (h *FirmHandler) ListChildren(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	firms, err := services.ListFirmChildren(c.UserContext(), h.DB, id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(firms)
}

// ListProducts handles GET /api/firms/:id/products
// @Summary List the products a firm uses
// @Tags Firms
// @Produce json
// @Param id path int true "Firm ID"
// @Success 200 {array} models.Product
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /firms/{id}/products [get]
func (h *FirmHandler) ListProducts(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	products, err := services.ListFirmProducts(c.UserContext(), h.DB, id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(products)
}

// AddProduct handles POST /api/firms/:id/products/:productId
// @Summary Link a product to a firm
// @Tags Firms
// @Produce json
// @Param id path int true "Firm ID"
// @Param productId path int true "Product ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /firms/{id}/products/{productId} [post]
func (h *FirmHandler) AddProduct(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	productID, err := pathID(c, "productId")
	if err != nil {
		return fail(c, err)
	}
	if err := services.AddFirmProduct(c.UserContext(), h.DB, id, productID); err != nil {
		return fail(c, err)
	}
	return utils.DeleteSuccessResponse(c)
}

// RemoveProduct handles DELETE /api/firms/:id/products/:productId
// @Summary Unlink a product from a firm
// @Tags Firms
// @Produce json
// @Param id path int true "Firm ID"
// @Param productId path int true "Product ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /firms/{id}/products/{productId} [delete]
func (h *FirmHandler) RemoveProduct(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	productID, err := pathID(c, "productId")
	if err != nil {
		return fail(c, err)
	}
	if err := services.RemoveFirmProduct(c.UserContext(), h.DB, id, productID); err != nil {
		return fail(c, err)
	}
	return utils.DeleteSuccessResponse(c)
}
