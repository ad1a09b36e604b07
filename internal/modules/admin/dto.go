package admin

type UpdateBookingStatusRequest struct {
	Status string `json:"status"`
}

type ListBookingsRequest struct {
	Status string `form:"status"`
	Page   int    `form:"page"`
	Limit  int    `form:"limit"`
}
