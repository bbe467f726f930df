// testutil.go
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

// Package testutil holds database and HTTP helpers shared by package tests.
package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/localnerve/helpdesk/internal/database"
	"github.com/localnerve/helpdesk/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewTestDB creates a migrated, seeded in-memory SQLite database with foreign keys enforced.
// The pool is pinned to one connection so every query sees the same memory database.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=1"), database.GormConfig(logger.Default.LogMode(logger.Silent)))
	require.NoError(t, err, "Failed to create test database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.AutoMigrate(db), "Failed to migrate test database")
	require.NoError(t, database.SeedLookups(db), "Failed to seed test database")

	return db
}

// CreateUser inserts a user with the given role
func CreateUser(t *testing.T, db *gorm.DB, name string, roleID uint64) *models.User {
	t.Helper()
	u := &models.User{Name: name, Email: name + "@example.com", Password: "x", RoleID: roleID}
	require.NoError(t, db.Create(u).Error, "Failed to create user")
	return u
}

// CreateFirm inserts a firm, optionally under a parent
func CreateFirm(t *testing.T, db *gorm.DB, name string, parentID *uint64) *models.Firm {
	t.Helper()
	f := &models.Firm{Name: name, ParentID: parentID}
	require.NoError(t, db.Create(f).Error, "Failed to create firm")
	return f
}

// CreateProduct inserts a product managed by managerID
func CreateProduct(t *testing.T, db *gorm.DB, name string, managerID uint64) *models.Product {
	t.Helper()
	p := &models.Product{Name: name, ManagerID: managerID}
	require.NoError(t, db.Create(p).Error, "Failed to create product")
	return p
}

// CreateTag inserts a tag
func CreateTag(t *testing.T, db *gorm.DB, name string) *models.Tag {
	t.Helper()
	tag := &models.Tag{Name: name}
	require.NoError(t, db.Create(tag).Error, "Failed to create tag")
	return tag
}

// CountEvents counts event log rows for an entity
func CountEvents(t *testing.T, db *gorm.DB, entityTypeID, entityID uint64) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&models.EventLog{}).
		Where("entity_type_id = ? AND entity_id = ?", entityTypeID, entityID).
		Count(&n).Error)
	return n
}

// AssertStatus verifies the HTTP status code
func AssertStatus(t *testing.T, resp *http.Response, expected int) {
	t.Helper()
	if resp.StatusCode != expected {
		body, _ := io.ReadAll(resp.Body)
		t.Errorf("Expected status %d, got %d. Body: %s", expected, resp.StatusCode, string(body))
	}
}

// ParseJSON decodes the response body into the target
func ParseJSON(t *testing.T, resp *http.Response, target interface{}) {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "Failed to read response body")
	defer resp.Body.Close()

	if err := json.Unmarshal(body, target); err != nil {
		t.Fatalf("Failed to decode JSON: %v. Body: %s", err, string(body))
	}
}
