// internal/models/user.go
package models

// UserType is the account role assigned by the backend.
type UserType string

const (
	UserTypeDriver         UserType = "driver"
	UserTypeMerchant       UserType = "merchant"
	UserTypeMerchantDriver UserType = "merchant-driver"
	UserTypeCustomer       UserType = "customer"
	UserTypeAdmin          UserType = "admin"
)

var UserTypes = []UserType{
	UserTypeDriver,
	UserTypeMerchant,
	UserTypeMerchantDriver,
	UserTypeCustomer,
	UserTypeAdmin,
}

type User struct {
	ID         string   `json:"_id"`
	FirstName  string   `json:"firstName"`
	LastName   string   `json:"lastName"`
	Email      string   `json:"email"`
	Phone      string   `json:"phone"`
	Type       UserType `json:"type"`
	IsVerified bool     `json:"isVerified"`
	Address    string   `json:"address,omitempty"`
	City       string   `json:"city,omitempty"`
	AadharCard string   `json:"aadharCard,omitempty"`
	PanCard    string   `json:"panCard,omitempty"`
	CreatedAt  string   `json:"createdAt,omitempty"`
	UpdatedAt  string   `json:"updatedAt,omitempty"`
}

func (u User) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

func (u User) IsAdmin() bool {
	return u.Type == UserTypeAdmin
}

// LoginResult is what the backend returns for an identity-token exchange.
type LoginResult struct {
	User         User   `json:"user"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// TokenPair is returned by the refresh endpoint. RefreshToken may be empty
// when the backend does not rotate it.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken,omitempty"`
}
