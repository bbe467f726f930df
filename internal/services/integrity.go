// integrity.go
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

package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/localnerve/helpdesk/internal/models"
	"github.com/localnerve/helpdesk/internal/types"
	"gorm.io/gorm"
)

// Delete rules between entities. Each rule runs in the same transaction as
// the delete it guards, and dependents are handled before the parent row goes.
//
//	firm      tickets.firm_id -> null, firms.parent_id -> null, firm_product cascade
//	product   firm_product cascade
//	tag       ticket_tag cascade
//	user      restricted by product.manager_id and ticket_comment.user_id,
//	          tickets.assigned_user_id -> null
//	status    restricted by tickets
//	priority  restricted by tickets
//	privilege restricted by users

// restriction names a column whose rows block a delete
type restriction struct {
	model  interface{}
	column string
	what   string
}

func checkRestrictions(tx *gorm.DB, id uint64, entity string, rules ...restriction) error {
	for _, r := range rules {
		n, err := countWhere(tx, r.model, r.column, id)
		if err != nil {
			return storeError(fmt.Sprintf("check %s references", entity), err)
		}
		if n > 0 {
			return types.NewConflictError("%s %d is still referenced by %d %s", entity, id, n, r.what)
		}
	}
	return nil
}

// DeleteFirm detaches the firm's tickets and child firms, drops its product
// links, then deletes it
func DeleteFirm(ctx context.Context, db *gorm.DB, id uint64) error {
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var firm models.Firm
		if err := first(tx, &firm, id, "firm"); err != nil {
			return err
		}

		if err := tx.Model(&models.Ticket{}).Where("firm_id = ?", id).Update("firm_id", nil).Error; err != nil {
			return storeError("detach firm tickets", err)
		}
		if err := tx.Model(&models.Firm{}).Where("parent_id = ?", id).Update("parent_id", nil).Error; err != nil {
			return storeError("detach child firms", err)
		}
		if err := tx.Where("firm_id = ?", id).Delete(&models.FirmProduct{}).Error; err != nil {
			return storeError("delete firm products", err)
		}
		if err := tx.Delete(&models.Firm{}, id).Error; err != nil {
			return deleteError("delete firm", err)
		}

		return appendActorEvent(ctx, tx, models.EntityTypeFirm, models.EventTypeDeleted, id,
			fmt.Sprintf("Firm deleted: %s", firm.Name))
	})
	if err != nil {
		slog.WarnContext(ctx, "delete firm failed", "firm_id", id, "error", err)
		return err
	}

	slog.InfoContext(ctx, "firm deleted", "firm_id", id)
	return nil
}

// DeleteProduct drops the product's firm links, then deletes it
func DeleteProduct(ctx context.Context, db *gorm.DB, id uint64) error {
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var product models.Product
		if err := first(tx, &product, id, "product"); err != nil {
			return err
		}

		if err := tx.Where("product_id = ?", id).Delete(&models.FirmProduct{}).Error; err != nil {
			return storeError("delete product firms", err)
		}
		if err := tx.Delete(&models.Product{}, id).Error; err != nil {
			return deleteError("delete product", err)
		}

		return appendActorEvent(ctx, tx, models.EntityTypeProduct, models.EventTypeDeleted, id,
			fmt.Sprintf("Product deleted: %s", product.Name))
	})
	if err != nil {
		slog.WarnContext(ctx, "delete product failed", "product_id", id, "error", err)
		return err
	}

	slog.InfoContext(ctx, "product deleted", "product_id", id)
	return nil
}

// DeleteTag removes the tag from every ticket, then deletes it
func DeleteTag(ctx context.Context, db *gorm.DB, id uint64) error {
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var tag models.Tag
		if err := first(tx, &tag, id, "tag"); err != nil {
			return err
		}

		if err := tx.Where("tag_id = ?", id).Delete(&models.TicketTag{}).Error; err != nil {
			return storeError("delete tag links", err)
		}
		if err := tx.Delete(&models.Tag{}, id).Error; err != nil {
			return deleteError("delete tag", err)
		}

		return appendActorEvent(ctx, tx, models.EntityTypeTag, models.EventTypeDeleted, id,
			fmt.Sprintf("Tag deleted: %s", tag.Name))
	})
	if err != nil {
		slog.WarnContext(ctx, "delete tag failed", "tag_id", id, "error", err)
		return err
	}

	slog.InfoContext(ctx, "tag deleted", "tag_id", id)
	return nil
}

// DeleteUser deletes a user that manages no product and authored no comment.
// Tickets assigned to the user become unassigned. Audit columns that mention
// the user are history and stay as they are.
func DeleteUser(ctx context.Context, db *gorm.DB, id uint64) error {
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := first(tx, &user, id, "user"); err != nil {
			return err
		}

		if err := checkRestrictions(tx, id, "user",
			restriction{&models.Product{}, "manager_id", "products"},
			restriction{&models.TicketComment{}, "user_id", "ticket comments"},
		); err != nil {
			return err
		}

		if err := tx.Model(&models.Ticket{}).Where("assigned_user_id = ?", id).Update("assigned_user_id", nil).Error; err != nil {
			return storeError("unassign user tickets", err)
		}
		if err := tx.Delete(&models.User{}, id).Error; err != nil {
			return deleteError("delete user", err)
		}

		return appendActorEvent(ctx, tx, models.EntityTypeUser, models.EventTypeDeleted, id,
			fmt.Sprintf("User deleted: %s", user.Name))
	})
	if err != nil {
		slog.WarnContext(ctx, "delete user failed", "user_id", id, "error", err)
		return err
	}

	slog.InfoContext(ctx, "user deleted", "user_id", id)
	return nil
}

// DeleteStatus deletes a ticket status no ticket uses
func DeleteStatus(ctx context.Context, db *gorm.DB, id uint64) error {
	return deleteLookup(ctx, db, &models.TicketStatus{}, id, "status",
		restriction{&models.Ticket{}, "status_id", "tickets"})
}

// DeletePriority deletes a ticket priority no ticket uses
func DeletePriority(ctx context.Context, db *gorm.DB, id uint64) error {
	return deleteLookup(ctx, db, &models.TicketPriority{}, id, "priority",
		restriction{&models.Ticket{}, "priority_id", "tickets"})
}

// DeletePrivilege deletes a role no user holds
func DeletePrivilege(ctx context.Context, db *gorm.DB, id uint64) error {
	return deleteLookup(ctx, db, &models.Privilege{}, id, "privilege",
		restriction{&models.User{}, "role_id", "users"})
}

func deleteLookup(ctx context.Context, db *gorm.DB, model models.Lookup, id uint64, what string, rules ...restriction) error {
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := mustExist(tx, model, id, what); err != nil {
			return err
		}
		if err := checkRestrictions(tx, id, what, rules...); err != nil {
			return err
		}
		return deleteError("delete "+what, tx.Delete(model, id).Error)
	})
	if err != nil {
		slog.WarnContext(ctx, "delete lookup failed", "table", model.TableName(), "id", id, "error", err)
		return err
	}

	slog.InfoContext(ctx, "lookup deleted", "table", model.TableName(), "id", id)
	return nil
}
