package models

// Producer is the model for the 'producers' table.
// Producers come from the supplier feed and are reconciled by name,
// so 'name' is unique and every other column is feed-owned.
type Producer struct {
	ID          int64  `json:"id" db:"id"`
	Name        string `json:"name" db:"name"`
	CountryCode string `json:"countryCode" db:"country_code"`
	Street      string `json:"street" db:"street"`
	PostalCode  string `json:"postalCode" db:"postal_code"`
	City        string `json:"city" db:"city"`
	Email       string `json:"email" db:"email"`
	PhoneNumber string `json:"phoneNumber" db:"phone_number"`
}
