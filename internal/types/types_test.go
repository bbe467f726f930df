package types

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexUint64(t *testing.T) {
	var body struct {
		A FlexUint64 `json:"a"`
		B FlexUint64 `json:"b"`
		C FlexUint64 `json:"c"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a": 3, "b": "42", "c": null}`), &body))
	assert.Equal(t, uint64(3), body.A.Uint64())
	assert.Equal(t, uint64(42), body.B.Uint64())
	assert.Equal(t, uint64(0), body.C.Uint64())

	assert.Error(t, json.Unmarshal([]byte(`{"a": "x"}`), &body))
	assert.Error(t, json.Unmarshal([]byte(`{"a": true}`), &body))
}

func TestOptionalID(t *testing.T) {
	var patch struct {
		FirmID         OptionalID `json:"firmId"`
		AssignedUserID OptionalID `json:"assignedUserId"`
		StatusID       OptionalID `json:"statusId"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"firmId": null, "assignedUserId": "9"}`), &patch))

	assert.True(t, patch.FirmID.Set)
	assert.False(t, patch.FirmID.Valid)
	assert.Nil(t, patch.FirmID.Ptr())

	assert.True(t, patch.AssignedUserID.Set)
	require.NotNil(t, patch.AssignedUserID.Ptr())
	assert.Equal(t, uint64(9), *patch.AssignedUserID.Ptr())

	assert.False(t, patch.StatusID.Set)

	out, err := json.Marshal(SomeID(4))
	require.NoError(t, err)
	assert.Equal(t, "4", string(out))
	out, err = json.Marshal(NullID())
	require.NoError(t, err)
	assert.Equal(t, "null", string(out))
}

func TestCustomError(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", NewNotFoundError("ticket %d not found", 5))

	ce, ok := AsCustomError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, ce.Code)
	assert.Equal(t, "ticket 5 not found", ce.Message)
	assert.True(t, IsType(err, ErrorTypeNotFound))
	assert.False(t, IsType(err, ErrorTypeConflict))

	dup := NewDuplicateError("Tag already exists")
	assert.Equal(t, http.StatusBadRequest, dup.Code)
	assert.Equal(t, ErrorTypeConflict, dup.Type)

	cause := errors.New("connection reset")
	fault := NewStoreFault("update ticket", cause)
	assert.ErrorIs(t, fault, cause)
	assert.Equal(t, http.StatusInternalServerError, fault.Code)
	assert.Contains(t, fault.Error(), "connection reset")
}
