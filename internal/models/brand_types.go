package models

// Brand defines the struct for the 'brands' table.
// Brands are created on demand by the importer; 'name' is the natural key.
type Brand struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
	Slug string `json:"slug" db:"slug"`
}
