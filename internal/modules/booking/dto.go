package booking

// CreateBookingRequest is the body of POST /bookings. Exactly one of MenuID or
// MealID must be set. TotalPrice and Status are accepted from older clients and
// ignored: price and status are always decided server side.
type CreateBookingRequest struct {
	MenuID          string   `json:"menu_id"`
	MealID          string   `json:"meal_id"`
	DateTime        string   `json:"date_time"`
	GuestsCount     int      `json:"guests_count"`
	Address         string   `json:"address"`
	SpecialRequests string   `json:"special_requests"`
	TotalPrice      *float64 `json:"total_price,omitempty"`
	Status          string   `json:"status,omitempty"`
}
