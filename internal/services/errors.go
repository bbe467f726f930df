package services

import (
	"errors"
	"fmt"

	"github.com/localnerve/helpdesk/internal/types"
	"gorm.io/gorm"
)

// storeError classifies a GORM error from a read or write.
// CustomErrors pass through untouched.
func storeError(op string, err error) error {
	if err == nil {
		return nil
	}
	if _, ok := types.AsCustomError(err); ok {
		return err
	}
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return types.NewConflictError("%s: a record with the same unique value already exists", op)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return types.NewValidationError("%s: a referenced record does not exist", op)
	}
	return types.NewStoreFault(op, err)
}

// deleteError classifies a GORM error from a delete, where an FK violation
// means dependents still exist.
func deleteError(op string, err error) error {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return types.NewConflictError("%s: the record is still referenced", op)
	}
	return storeError(op, err)
}

// first loads the row with the given id into dest, or returns a not found error
func first(tx *gorm.DB, dest interface{}, id uint64, what string) error {
	err := tx.First(dest, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return types.NewNotFoundError("%s %d not found", what, id)
	}
	return storeError(fmt.Sprintf("load %s", what), err)
}

// mustReference returns a validation error when a referenced row is missing
func mustReference(tx *gorm.DB, model interface{}, id uint64, what string) error {
	var n int64
	if err := tx.Model(model).Where("id = ?", id).Count(&n).Error; err != nil {
		return storeError(fmt.Sprintf("check %s", what), err)
	}
	if n == 0 {
		return types.NewValidationError("%s %d does not exist", what, id)
	}
	return nil
}

// mustExist is mustReference for path parameters, where a missing row is a 404
func mustExist(tx *gorm.DB, model interface{}, id uint64, what string) error {
	var n int64
	if err := tx.Model(model).Where("id = ?", id).Count(&n).Error; err != nil {
		return storeError(fmt.Sprintf("check %s", what), err)
	}
	if n == 0 {
		return types.NewNotFoundError("%s %d not found", what, id)
	}
	return nil
}

// countWhere counts rows of model matching a single column condition
func countWhere(tx *gorm.DB, model interface{}, column string, value interface{}) (int64, error) {
	var n int64
	err := tx.Model(model).Where(column+" = ?", value).Count(&n).Error
	return n, err
}
