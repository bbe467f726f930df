package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/localnerve/helpdesk/internal/models"
	"github.com/localnerve/helpdesk/internal/types"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProductInput carries the writable product fields
type ProductInput struct {
	Name      *string
	ManagerID *uint64
	OrderNo   *int
	Avatar    *string
}

// ListProducts returns all products with their manager, by orderNo
func ListProducts(ctx context.Context, db *gorm.DB) ([]models.Product, error) {
	var products []models.Product
	if err := db.WithContext(ctx).Preload("Manager").Order("order_no ASC").Order("id ASC").Find(&products).Error; err != nil {
		return nil, storeError("list products", err)
	}
	return products, nil
}

// GetProduct returns one product with its manager
func GetProduct(ctx context.Context, db *gorm.DB, id uint64) (*models.Product, error) {
	var product models.Product
	if err := first(db.WithContext(ctx).Preload("Manager"), &product, id, "product"); err != nil {
		return nil, err
	}
	return &product, nil
}

// CreateProduct inserts a product. The manager must be an existing user.
func CreateProduct(ctx context.Context, db *gorm.DB, in ProductInput) (*models.Product, error) {
	if blank(in.Name) {
		return nil, types.NewValidationError("name is required")
	}
	if in.ManagerID == nil {
		return nil, types.NewValidationError("managerId is required")
	}

	product := models.Product{
		Name:      strings.TrimSpace(*in.Name),
		ManagerID: *in.ManagerID,
		Avatar:    in.Avatar,
	}
	if in.OrderNo != nil {
		product.OrderNo = *in.OrderNo
	}

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := mustReference(tx, &models.User{}, product.ManagerID, "manager"); err != nil {
			return err
		}
		if err := tx.Omit(clause.Associations).Create(&product).Error; err != nil {
			return storeError("create product", err)
		}
		return appendActorEvent(ctx, tx, models.EntityTypeProduct, models.EventTypeCreated, product.ID,
			fmt.Sprintf("Product created: %s", product.Name))
	})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "product created", "product_id", product.ID, "manager_id", product.ManagerID)
	return GetProduct(ctx, db, product.ID)
}

// UpdateProduct applies the fields present in the input
func UpdateProduct(ctx context.Context, db *gorm.DB, id uint64, in ProductInput) (*models.Product, error) {
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var product models.Product
		if err := first(tx, &product, id, "product"); err != nil {
			return err
		}

		if in.Name != nil {
			if blank(in.Name) {
				return types.NewValidationError("name cannot be empty")
			}
			product.Name = strings.TrimSpace(*in.Name)
		}
		if in.ManagerID != nil {
			if err := mustReference(tx, &models.User{}, *in.ManagerID, "manager"); err != nil {
				return err
			}
			product.ManagerID = *in.ManagerID
		}
		if in.OrderNo != nil {
			product.OrderNo = *in.OrderNo
		}
		if in.Avatar != nil {
			product.Avatar = in.Avatar
		}

		if err := tx.Omit(clause.Associations).Save(&product).Error; err != nil {
			return storeError("update product", err)
		}
		return appendActorEvent(ctx, tx, models.EntityTypeProduct, models.EventTypeUpdated, product.ID,
			fmt.Sprintf("Product updated: %s", product.Name))
	})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "product updated", "product_id", id)
	return GetProduct(ctx, db, id)
}
