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

// FirmInput carries the writable firm fields. On update, nil and unset fields are left alone.
type FirmInput struct {
	Name     *string
	OrderNo  *int
	ParentID types.OptionalID
	Version  *uint8
}

// ListFirms returns all firms by orderNo, then name
func ListFirms(ctx context.Context, db *gorm.DB) ([]models.Firm, error) {
	var firms []models.Firm
	if err := db.WithContext(ctx).Order("order_no ASC").Order("name ASC").Find(&firms).Error; err != nil {
		return nil, storeError("list firms", err)
	}
	return firms, nil
}

// GetFirm returns one firm
func GetFirm(ctx context.Context, db *gorm.DB, id uint64) (*models.Firm, error) {
	var firm models.Firm
	if err := first(db.WithContext(ctx), &firm, id, "firm"); err != nil {
		return nil, err
	}
	return &firm, nil
}

// ListFirmChildren returns the firms whose parent is id
func ListFirmChildren(ctx context.Context, db *gorm.DB, id uint64) ([]models.Firm, error) {
	tx := db.WithContext(ctx)
	if err := mustExist(tx, &models.Firm{}, id, "firm"); err != nil {
		return nil, err
	}
	var firms []models.Firm
	if err := tx.Where("parent_id = ?", id).Order("order_no ASC").Order("name ASC").Find(&firms).Error; err != nil {
		return nil, storeError("list child firms", err)
	}
	return firms, nil
}

// CreateFirm inserts a firm. A parent, when given, must exist.
func CreateFirm(ctx context.Context, db *gorm.DB, in FirmInput) (*models.Firm, error) {
	if in.Name == nil || strings.TrimSpace(*in.Name) == "" {
		return nil, types.NewValidationError("name is required")
	}

	firm := models.Firm{
		Name:     strings.TrimSpace(*in.Name),
		OrderNo:  in.OrderNo,
		ParentID: in.ParentID.Ptr(),
		Version:  in.Version,
	}
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if firm.ParentID != nil {
			if err := mustReference(tx, &models.Firm{}, *firm.ParentID, "parent firm"); err != nil {
				return err
			}
		}
		if err := tx.Create(&firm).Error; err != nil {
			return storeError("create firm", err)
		}
		return appendActorEvent(ctx, tx, models.EntityTypeFirm, models.EventTypeCreated, firm.ID,
			fmt.Sprintf("Firm created: %s", firm.Name))
	})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "firm created", "firm_id", firm.ID)
	return &firm, nil
}

// UpdateFirm applies the fields present in the input. A new parent must
// exist and must not be the firm itself or one of its descendants.
func UpdateFirm(ctx context.Context, db *gorm.DB, id uint64, in FirmInput) (*models.Firm, error) {
	var firm models.Firm
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := first(tx, &firm, id, "firm"); err != nil {
			return err
		}

		if in.Name != nil {
			name := strings.TrimSpace(*in.Name)
			if name == "" {
				return types.NewValidationError("name cannot be empty")
			}
			firm.Name = name
		}
		if in.OrderNo != nil {
			firm.OrderNo = in.OrderNo
		}
		if in.Version != nil {
			firm.Version = in.Version
		}
		if in.ParentID.Set {
			if err := checkFirmParent(tx, id, in.ParentID.Ptr()); err != nil {
				return err
			}
			firm.ParentID = in.ParentID.Ptr()
		}

		if err := tx.Save(&firm).Error; err != nil {
			return storeError("update firm", err)
		}
		return appendActorEvent(ctx, tx, models.EntityTypeFirm, models.EventTypeUpdated, firm.ID,
			fmt.Sprintf("Firm updated: %s", firm.Name))
	})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "firm updated", "firm_id", id)
	return &firm, nil
}

// checkFirmParent walks up from parentID and fails if it reaches id
func checkFirmParent(tx *gorm.DB, id uint64, parentID *uint64) error {
	if parentID == nil {
		return nil
	}
	if *parentID == id {
		return types.NewValidationError("firm %d cannot be its own parent", id)
	}
	if err := mustReference(tx, &models.Firm{}, *parentID, "parent firm"); err != nil {
		return err
	}

	seen := map[uint64]bool{}
	for cur := parentID; cur != nil; {
		if *cur == id {
			return types.NewValidationError("parent firm %d is a descendant of firm %d", *parentID, id)
		}
		if seen[*cur] {
			// an existing loop above us that does not include id
			return nil
		}
		seen[*cur] = true

		var ancestor models.Firm
		err := tx.Select("id", "parent_id").Where("id = ?", *cur).Limit(1).Find(&ancestor).Error
		if err != nil {
			return storeError("check firm ancestry", err)
		}
		if ancestor.ID == 0 {
			// dangling parent id
			return nil
		}
		cur = ancestor.ParentID
	}
	return nil
}

// ListFirmProducts returns the products a firm uses
func ListFirmProducts(ctx context.Context, db *gorm.DB, firmID uint64) ([]models.Product, error) {
	tx := db.WithContext(ctx)
	if err := mustExist(tx, &models.Firm{}, firmID, "firm"); err != nil {
		return nil, err
	}

	var products []models.Product
	err := tx.Where("id IN (?)", tx.Model(&models.FirmProduct{}).Select("product_id").Where("firm_id = ?", firmID)).
		Order("order_no ASC").Order("id ASC").
		Find(&products).Error
	if err != nil {
		return nil, storeError("list firm products", err)
	}
	return products, nil
}

// AddFirmProduct links a product to a firm
func AddFirmProduct(ctx context.Context, db *gorm.DB, firmID, productID uint64) error {
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := mustExist(tx, &models.Firm{}, firmID, "firm"); err != nil {
			return err
		}
		if err := mustExist(tx, &models.Product{}, productID, "product"); err != nil {
			return err
		}

		n, err := countPair(tx, firmID, productID)
		if err != nil {
			return err
		}
		if n > 0 {
			return types.NewDuplicateError("Product already linked")
		}

		link := models.FirmProduct{FirmID: firmID, ProductID: productID}
		if err := tx.Omit(clause.Associations).Create(&link).Error; err != nil {
			return storeError("link firm product", err)
		}
		return appendActorEvent(ctx, tx, models.EntityTypeFirm, models.EventTypeUpdated, firmID,
			fmt.Sprintf("Product %d added", productID))
	})
	if err != nil {
		return err
	}

	slog.InfoContext(ctx, "firm product linked", "firm_id", firmID, "product_id", productID)
	return nil
}

// RemoveFirmProduct unlinks a product from a firm
func RemoveFirmProduct(ctx context.Context, db *gorm.DB, firmID, productID uint64) error {
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("firm_id = ? AND product_id = ?", firmID, productID).Delete(&models.FirmProduct{})
		if res.Error != nil {
			return storeError("unlink firm product", res.Error)
		}
		if res.RowsAffected == 0 {
			return types.NewNotFoundError("product %d is not linked to firm %d", productID, firmID)
		}
		return appendActorEvent(ctx, tx, models.EntityTypeFirm, models.EventTypeUpdated, firmID,
			fmt.Sprintf("Product %d removed", productID))
	})
	if err != nil {
		return err
	}

	slog.InfoContext(ctx, "firm product unlinked", "firm_id", firmID, "product_id", productID)
	return nil
}

func countPair(tx *gorm.DB, firmID, productID uint64) (int64, error) {
	var n int64
	err := tx.Model(&models.FirmProduct{}).Where("firm_id = ? AND product_id = ?", firmID, productID).Count(&n).Error
	if err != nil {
		return 0, storeError("check firm product", err)
	}
	return n, nil
}
