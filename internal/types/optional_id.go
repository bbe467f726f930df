// optional_id.go
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

package types

import (
	"encoding/json"
	"fmt"
)

// OptionalID is a nullable id in a patch body. Set is false when the key is
// absent, so a patch can tell "leave alone" apart from an explicit null.
type OptionalID struct {
	Set   bool
	Valid bool
	Value uint64
}

// UnmarshalJSON implements the json.Unmarshaler interface.
// Only called when the key is present.
func (o *OptionalID) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Valid = false
		o.Value = 0
		return nil
	}
	n, err := parseID(data)
	if err != nil {
		return fmt.Errorf("OptionalID: %w", err)
	}
	o.Valid = true
	o.Value = n
	return nil
}

// MarshalJSON implements the json.Marshaler interface.
func (o OptionalID) MarshalJSON() ([]byte, error) {
	if !o.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// Ptr returns the value as a pointer, nil when null
func (o OptionalID) Ptr() *uint64 {
	if !o.Valid {
		return nil
	}
	v := o.Value
	return &v
}

// SomeID builds a present, non-null OptionalID
func SomeID(v uint64) OptionalID {
	return OptionalID{Set: true, Valid: true, Value: v}
}

// NullID builds a present, null OptionalID
func NullID() OptionalID {
	return OptionalID{Set: true}
}
