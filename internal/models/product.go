package models

import (
	"strings"
)

// ProductType is a building-material category.
type ProductType string

const (
	ProductTypeBajri  ProductType = "Bajri"
	ProductTypeBricks ProductType = "Bricks"
	ProductTypeGrit   ProductType = "Grit"
	ProductTypeCement ProductType = "Cement"
)

var ProductTypes = []ProductType{
	ProductTypeBajri,
	ProductTypeBricks,
	ProductTypeGrit,
	ProductTypeCement,
}

// ParseProductType matches s case-insensitively against the known types.
func ParseProductType(s string) (ProductType, bool) {
	for _, pt := range ProductTypes {
		if strings.EqualFold(string(pt), strings.TrimSpace(s)) {
			return pt, true
		}
	}
	return "", false
}

type Product struct {
	ID              string      `json:"_id"`
	ProductType     ProductType `json:"productType"`
	ProductSize     string      `json:"productSize,omitempty"`
	ProductPrice    Number      `json:"productPrice"`
	ProductQuantity Number      `json:"productQuantity"`
	ProductRating   Number      `json:"productRating,omitempty"`
	ProductDetails  string      `json:"productDetails,omitempty"`
	ProductLocation string      `json:"productLocation,omitempty"`
	ProductOwner    string      `json:"productOwner"`
	IsVerified      bool        `json:"isVerified"`
	ProductImage    string      `json:"productImage,omitempty"`
	CreatedAt       string      `json:"createdAt,omitempty"`
	UpdatedAt       string      `json:"updatedAt,omitempty"`
}

type ProductOwner struct {
	ID               string        `json:"_id"`
	UserID           string        `json:"userId"`
	ProductOwnerName string        `json:"productOwnerName"`
	PhoneNumber      string        `json:"phoneNumber"`
	GSTNumber        string        `json:"gstNumber,omitempty"`
	ShopRating       Number        `json:"shopRating,omitempty"`
	ShopAddress      string        `json:"shopAddress,omitempty"`
	City             string        `json:"city,omitempty"`
	State            string        `json:"state,omitempty"`
	ProductType      []ProductType `json:"productType"`
	IsVerified       bool          `json:"isVerified"`
	ShopImage        string        `json:"shopImage,omitempty"`
	CreatedAt        string        `json:"createdAt,omitempty"`
	UpdatedAt        string        `json:"updatedAt,omitempty"`
}

// Sells reports whether the owner lists pt among its product types.
func (o ProductOwner) Sells(pt string) bool {
	for _, t := range o.ProductType {
		if strings.EqualFold(string(t), pt) {
			return true
		}
	}
	return false
}
