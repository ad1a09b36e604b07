package domain

import "time"

type MealCategory string

const (
	MealStarter MealCategory = "starter"
	MealMain    MealCategory = "main"
	MealDessert MealCategory = "dessert"
	MealSide    MealCategory = "side"
	MealDrink   MealCategory = "drink"
)

// Meal is a standalone dish, reusable across menus through MenuMeal.
type Meal struct {
	ID            string       `json:"id"`
	Name          string       `json:"name" validate:"required"`
	Description   string       `json:"description,omitempty"`
	Price         float64      `json:"price" validate:"gte=0"`
	Category      MealCategory `json:"category" validate:"oneof=starter main dessert side drink"`
	CuisineType   string       `json:"cuisine_type,omitempty"`
	DietaryTags   []string     `json:"dietary_tags"`
	ImageURL      string       `json:"image_url,omitempty"`
	IsActive      bool         `json:"is_active"`
	TotalBookings int64        `json:"total_bookings"`
	AverageRating float64      `json:"average_rating"`
	CreatedAt     time.Time    `json:"created_at"`
}

// Quote is price * guests, rounded to cents.
func (m *Meal) Quote(guests int) float64 {
	return roundCents(m.Price * float64(guests))
}

type MenuMeal struct {
	MenuID     string `json:"menu_id"`
	MealID     string `json:"meal_id"`
	CourseType string `json:"course_type"`
	OrderIndex int    `json:"order_index"`
	Meal       *Meal  `json:"meal,omitempty"`
}
