package models

type VehicleType string

const (
	VehicleTypeOpenBody  VehicleType = "Open Body"
	VehicleTypeContainer VehicleType = "Container"
	VehicleTypeTrailer   VehicleType = "Trailer"
	VehicleTypeDumper    VehicleType = "Dumper"
)

var VehicleTypes = []VehicleType{
	VehicleTypeOpenBody,
	VehicleTypeContainer,
	VehicleTypeTrailer,
	VehicleTypeDumper,
}

type Vehicle struct {
	ID             string      `json:"_id"`
	VehicleNumber  string      `json:"vehicleNumber"`
	VehicleType    VehicleType `json:"vehicleType"`
	DriverName     string      `json:"driverName"`
	PhoneNumber    string      `json:"phoneNumber"`
	IsVerified     bool        `json:"isVerified"`
	VehicleImage   string      `json:"vehicleImage,omitempty"`
	RC             string      `json:"rc,omitempty"`
	DrivingLicence string      `json:"drivingLicence,omitempty"`
	PanCard        string      `json:"panCard,omitempty"`
	AadharCard     string      `json:"aadharCard,omitempty"`
	CreatedAt      string      `json:"createdAt,omitempty"`
	UpdatedAt      string      `json:"updatedAt,omitempty"`
}
