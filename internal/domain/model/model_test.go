package model

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/forkful/menuboard/internal/errors"
)

func TestCreateRestaurantRequest_Validate(t *testing.T) {
	req := CreateRestaurantRequest{Name: "Urban Burger", OwnerID: 1}
	require.NoError(t, req.Validate())

	empty := CreateRestaurantRequest{Name: "   "}
	err := empty.Validate()
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.Equal(t, "name", apperrors.GetField(err))

	long := CreateRestaurantRequest{Name: strings.Repeat("x", 251)}
	assert.True(t, apperrors.IsValidation(long.Validate()))
}

func TestCreateMenuItemRequest_Validate(t *testing.T) {
	req := CreateMenuItemRequest{Name: "Veggie Burger", Course: "Entree", Price: "$7.50"}
	require.NoError(t, req.Validate())

	noName := CreateMenuItemRequest{Course: "Entree"}
	assert.True(t, apperrors.IsValidation(noName.Validate()))

	longPrice := CreateMenuItemRequest{Name: "ok", Price: "$1234.567"}
	err := longPrice.Validate()
	require.Error(t, err)
	assert.Equal(t, "price", apperrors.GetField(err))
}

func TestUpdateMenuItemRequest_Validate(t *testing.T) {
	name := "New Name"
	req := UpdateMenuItemRequest{Name: &name}
	require.NoError(t, req.Validate())

	blank := " "
	err := (&UpdateMenuItemRequest{Name: &blank}).Validate()
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))

	// Absent fields are fine.
	require.NoError(t, (&UpdateMenuItemRequest{}).Validate())
}
