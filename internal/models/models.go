package models

// Reservation is a booking request submitted by a customer. Once stored it is
// immutable; there is no update or cancel path.
type Reservation struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Date            string `json:"date"`
	Time            string `json:"time"`
	Guests          string `json:"guests"`
	SpecialRequests string `json:"specialRequests"`
	SubmittedAt     string `json:"submittedAt"`
}

// CartLine is one menu item and its selected quantity in a customer's
// in-progress order. Lines are keyed by Name; Quantity is always >= 1.
type CartLine struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}
