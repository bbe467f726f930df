package services

import (
	"context"
	"log/slog"
	"strings"

	"github.com/localnerve/helpdesk/internal/models"
	"github.com/localnerve/helpdesk/internal/types"
	"gorm.io/gorm"
)

// LookupInput carries the writable columns of a reference table. IsClosed
// is only applied to ticket statuses.
type LookupInput struct {
	Name     *string
	OrderNo  *int
	IsClosed *bool
}

// lookupPtr constrains P to *T where *T is a reference table model
type lookupPtr[T any] interface {
	*T
	models.Lookup
}

// ListLookups returns every row of a reference table by display order
func ListLookups[T any](ctx context.Context, db *gorm.DB) ([]T, error) {
	var rows []T
	if err := db.WithContext(ctx).Order("order_no ASC").Order("id ASC").Find(&rows).Error; err != nil {
		return nil, storeError("list lookups", err)
	}
	return rows, nil
}

// GetLookup returns one reference row
func GetLookup[T any](ctx context.Context, db *gorm.DB, id uint64, what string) (*T, error) {
	var row T
	if err := first(db.WithContext(ctx), &row, id, what); err != nil {
		return nil, err
	}
	return &row, nil
}

// CreateLookup inserts a reference row. Names are unique per table.
func CreateLookup[T any, P lookupPtr[T]](ctx context.Context, db *gorm.DB, in LookupInput, what string) (*T, error) {
	if in.Name == nil || strings.TrimSpace(*in.Name) == "" {
		return nil, types.NewValidationError("name is required")
	}

	var row T
	applyLookupInput(P(&row), in)
	if err := db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, storeError("create "+what, err)
	}

	slog.InfoContext(ctx, "lookup created", "table", P(&row).TableName(), "name", *in.Name)
	return &row, nil
}

// UpdateLookup changes the fields present in the input
func UpdateLookup[T any, P lookupPtr[T]](ctx context.Context, db *gorm.DB, id uint64, in LookupInput, what string) (*T, error) {
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return nil, types.NewValidationError("name cannot be empty")
	}

	var row T
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := first(tx, &row, id, what); err != nil {
			return err
		}
		applyLookupInput(P(&row), in)
		return storeError("update "+what, tx.Save(&row).Error)
	})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "lookup updated", "table", P(&row).TableName(), "id", id)
	return &row, nil
}

func applyLookupInput(row models.Lookup, in LookupInput) {
	var name *string
	if in.Name != nil {
		trimmed := strings.TrimSpace(*in.Name)
		name = &trimmed
	}
	row.SetLookupFields(name, in.OrderNo)
	if status, ok := row.(*models.TicketStatus); ok && in.IsClosed != nil {
		status.IsClosed = *in.IsClosed
	}
}
