package validation

import (
	"quickload-admin/internal/models"
)

func float(f float64) *float64 { return &f }

func productTypeNames() []string {
	out := make([]string, len(models.ProductTypes))
	for i, pt := range models.ProductTypes {
		out[i] = string(pt)
	}
	return out
}

func vehicleTypeNames() []string {
	out := make([]string, len(models.VehicleTypes))
	for i, vt := range models.VehicleTypes {
		out[i] = string(vt)
	}
	return out
}

// NotificationRequestSchema requires all three fields of an outgoing notification.
var NotificationRequestSchema = FieldSchema{
	Properties: map[string]Property{
		"type":    {Type: "string", MinLength: 1, MaxLength: 64},
		"message": {Type: "string", MinLength: 1, MaxLength: 1000},
		"userId":  {Type: "string", MinLength: 1},
	},
	Required: []string{"type", "message", "userId"},
}

// ProductFormSchema covers the editable and creatable product fields.
var ProductFormSchema = FieldSchema{
	Properties: map[string]Property{
		"productType":     {Type: "string", Enum: productTypeNames()},
		"productSize":     {Type: "string"},
		"productPrice":    {Type: "number", Minimum: float(0)},
		"productQuantity": {Type: "number", Minimum: float(0)},
		"productRating":   {Type: "number", Minimum: float(0), Maximum: float(5)},
		"productDetails":  {Type: "string", MaxLength: 2000},
		"productLocation": {Type: "string"},
		"productOwner":    {Type: "string"},
		"isVerified":      {Type: "boolean"},
	},
}

var ProductOwnerFormSchema = FieldSchema{
	Properties: map[string]Property{
		"userId":           {Type: "string"},
		"productOwnerName": {Type: "string", MinLength: 1},
		"phoneNumber":      {Type: "string", Pattern: phonePattern},
		"gstNumber":        {Type: "string"},
		"shopRating":       {Type: "number", Minimum: float(0), Maximum: float(5)},
		"shopAddress":      {Type: "string"},
		"city":             {Type: "string"},
		"state":            {Type: "string"},
		"productType":      {Type: "array", Items: &Property{Type: "string", Enum: productTypeNames()}},
		"isVerified":       {Type: "boolean"},
	},
}

var VehicleFormSchema = FieldSchema{
	Properties: map[string]Property{
		"vehicleNumber": {Type: "string", MinLength: 4},
		"vehicleType":   {Type: "string", Enum: vehicleTypeNames()},
		"driverName":    {Type: "string"},
		"phoneNumber":   {Type: "string", Pattern: phonePattern},
		"isVerified":    {Type: "boolean"},
	},
}

// editableUserTypes excludes admin; the role is never granted from the dashboard.
var editableUserTypes = []string{
	string(models.UserTypeDriver),
	string(models.UserTypeMerchant),
	string(models.UserTypeMerchantDriver),
	string(models.UserTypeCustomer),
}

var UserFormSchema = FieldSchema{
	Properties: map[string]Property{
		"type":       {Type: "string", Enum: editableUserTypes},
		"firstName":  {Type: "string"},
		"lastName":   {Type: "string"},
		"email":      {Type: "string", Pattern: emailPattern},
		"phone":      {Type: "string", Pattern: phonePattern},
		"address":    {Type: "string"},
		"city":       {Type: "string"},
		"isVerified": {Type: "boolean"},
	},
}

// WithRequired returns a copy of schema that additionally requires fields.
func (s FieldSchema) WithRequired(fields ...string) FieldSchema {
	out := s
	out.Required = append(append([]string{}, s.Required...), fields...)
	return out
}
