package utils

import (
	"net/http"
	"testing"

	"github.com/localnerve/helpdesk/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tagBody struct {
	Name     string  `json:"name" validate:"required,max=5"`
	ColorHex *string `json:"colorHex" validate:"omitempty,hexcolor"`
	Email    string  `json:"email" validate:"omitempty,email"`
}

func TestValidateStruct(t *testing.T) {
	red := "#ff0000"
	assert.NoError(t, ValidateStruct(&tagBody{Name: "bug", ColorHex: &red}))

	bad := "red"
	err := ValidateStruct(&tagBody{Name: "toolong", ColorHex: &bad, Email: "nope"})
	require.Error(t, err)

	ce, ok := types.AsCustomError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, ce.Code)
	assert.Contains(t, ce.Message, "name must be at most 5 characters long")
	assert.Contains(t, ce.Message, "colorHex must be a hex color")
	assert.Contains(t, ce.Message, "email must be a valid email address")

	err = ValidateStruct(&tagBody{})
	assert.Contains(t, err.Error(), "name is required")
}
