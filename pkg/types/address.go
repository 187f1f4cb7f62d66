package types

import "strings"

// Address is the structured shipping address snapshot stamped onto orders.
// Orders copy it by value at checkout; later edits to a buyer's saved
// address never reach historical orders.
type Address struct {
	Street     string `json:"street" validate:"required"`
	City       string `json:"city" validate:"required"`
	State      string `json:"state" validate:"required"`
	PostalCode string `json:"postal_code" validate:"required"`
	Country    string `json:"country"`
}

// Normalize trims whitespace and applies the US default country.
func (a Address) Normalize() Address {
	a.Street = strings.TrimSpace(a.Street)
	a.City = strings.TrimSpace(a.City)
	a.State = strings.TrimSpace(a.State)
	a.PostalCode = strings.TrimSpace(a.PostalCode)
	a.Country = strings.TrimSpace(a.Country)
	if a.Country == "" {
		a.Country = "US"
	}
	return a
}

// IsComplete reports whether the required fields are populated.
func (a Address) IsComplete() bool {
	n := a.Normalize()
	return n.Street != "" && n.City != "" && n.State != "" && n.PostalCode != ""
}
