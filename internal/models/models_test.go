package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumber_AcceptsNumbersAndStrings(t *testing.T) {
	var p Product
	err := json.Unmarshal([]byte(`{"_id":"p1","productType":"Bricks","productPrice":"4500","productQuantity":12,"productRating":null}`), &p)

	require.NoError(t, err)
	assert.Equal(t, Number(4500), p.ProductPrice)
	assert.Equal(t, Number(12), p.ProductQuantity)
	assert.Equal(t, Number(0), p.ProductRating)
	assert.Equal(t, "4500", p.ProductPrice.String())
}

func TestNumber_RejectsGarbage(t *testing.T) {
	var p Product
	err := json.Unmarshal([]byte(`{"productPrice":"cheap"}`), &p)
	assert.Error(t, err)
}

func TestParseProductType(t *testing.T) {
	pt, ok := ParseProductType(" bricks ")
	assert.True(t, ok)
	assert.Equal(t, ProductTypeBricks, pt)

	_, ok = ParseProductType("Sand")
	assert.False(t, ok)
}

func TestProductOwner_Sells(t *testing.T) {
	owner := ProductOwner{ProductType: []ProductType{ProductTypeGrit, ProductTypeCement}}

	assert.True(t, owner.Sells("cement"))
	assert.False(t, owner.Sells("Bajri"))
}

func TestUser_FullNameAndAdmin(t *testing.T) {
	assert.Equal(t, "Asha Rao", User{FirstName: "Asha", LastName: "Rao"}.FullName())
	assert.Equal(t, "Rao", User{LastName: "Rao"}.FullName())
	assert.True(t, User{Type: UserTypeAdmin}.IsAdmin())
	assert.False(t, User{Type: UserTypeMerchant}.IsAdmin())
}
