package database

import (
	"encoding/json"
	"fmt"

	"github.com/localnerve/helpdesk/data"
	"github.com/localnerve/helpdesk/internal/models"
	"gorm.io/gorm"
)

// LookupSeed is the shape of data/lookups.json
type LookupSeed struct {
	Statuses    []models.TicketStatus   `json:"statuses"`
	Priorities  []models.TicketPriority `json:"priorities"`
	Privileges  []models.Privilege      `json:"privileges"`
	EntityTypes []models.EntityType     `json:"entityTypes"`
	EventTypes  []models.EventType      `json:"eventTypes"`
}

// LoadLookupSeed parses the embedded reference data
func LoadLookupSeed() (*LookupSeed, error) {
	var seed LookupSeed
	if err := json.Unmarshal(data.Lookups, &seed); err != nil {
		return nil, fmt.Errorf("failed to parse lookup seed: %w", err)
	}
	return &seed, nil
}

// SeedLookups inserts the reference rows that are missing. Existing rows,
// including ones an admin renamed, are left alone.
func SeedLookups(db *gorm.DB) error {
	seed, err := LoadLookupSeed()
	if err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		for _, s := range seed.Statuses {
			if err := insertMissing(tx, "ticket_status", s.ID, &s); err != nil {
				return err
			}
		}
		for _, p := range seed.Priorities {
			if err := insertMissing(tx, "ticket_priority", p.ID, &p); err != nil {
				return err
			}
		}
		for _, p := range seed.Privileges {
			if err := insertMissing(tx, "privilege", p.ID, &p); err != nil {
				return err
			}
		}
		for _, e := range seed.EntityTypes {
			if err := insertMissing(tx, "entity_type", e.ID, &e); err != nil {
				return err
			}
		}
		for _, e := range seed.EventTypes {
			if err := insertMissing(tx, "event_type", e.ID, &e); err != nil {
				return err
			}
		}
		return resetSequences(tx)
	})
}

func insertMissing(tx *gorm.DB, table string, id uint64, row interface{}) error {
	var count int64
	if err := tx.Table(table).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	if tx.Dialector.Name() == "sqlserver" {
		return tx.Transaction(func(inner *gorm.DB) error {
			if err := inner.Exec(fmt.Sprintf("SET IDENTITY_INSERT %s ON", table)).Error; err != nil {
				return err
			}
			if err := inner.Create(row).Error; err != nil {
				return err
			}
			return inner.Exec(fmt.Sprintf("SET IDENTITY_INSERT %s OFF", table)).Error
		})
	}

	return tx.Create(row).Error
}

// resetSequences moves postgres serial sequences past the explicitly seeded ids
func resetSequences(tx *gorm.DB) error {
	if tx.Dialector.Name() != "postgres" {
		return nil
	}
	for _, table := range []string{"ticket_status", "ticket_priority", "privilege", "entity_type", "event_type"} {
		sql := fmt.Sprintf(
			"SELECT setval(pg_get_serial_sequence('%s', 'id'), COALESCE((SELECT MAX(id) FROM %s), 1))",
			table, table,
		)
		if err := tx.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to reset sequence for %s: %w", table, err)
		}
	}
	return nil
}
