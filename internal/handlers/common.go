// common.go
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

package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/helpdesk/internal/types"
	"github.com/localnerve/helpdesk/internal/utils"
)

// pathID parses a positive integer path parameter
func pathID(c *fiber.Ctx, name string) (uint64, error) {
	raw := c.Params(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, types.NewValidationError("invalid %s %q", name, raw)
	}
	return id, nil
}

// queryID parses an optional positive integer query parameter
func queryID(c *fiber.Ctx, name string) (*uint64, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return nil, types.NewValidationError("invalid %s %q", name, raw)
	}
	return &id, nil
}

// queryBool parses an optional true/false query parameter
func queryBool(c *fiber.Ctx, name string) (*bool, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, types.NewValidationError("invalid %s %q", name, raw)
	}
	return &b, nil
}

// bind decodes the JSON body into dst and runs its validate tags
func bind(c *fiber.Ctx, dst interface{}) error {
	if err := c.BodyParser(dst); err != nil {
		return types.NewValidationError("Invalid request body: %v", err)
	}
	return utils.ValidateStruct(dst)
}

// fail writes err as the standard error envelope
func fail(c *fiber.Ctx, err error) error {
	return utils.ServiceErrorResponse(c, err)
}

func flexPtr(f *types.FlexUint64) *uint64 {
	if f == nil {
		return nil
	}
	v := f.Uint64()
	return &v
}
