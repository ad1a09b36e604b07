package validator

import (
	"testing"

	"foodie/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestValidate_MenuGuestRange(t *testing.T) {
	m := domain.Menu{
		ExperienceID:   "exp-1",
		Name:           "Tasting",
		BasePrice:      1000,
		PricePerPerson: 200,
		GuestMin:       8,
		GuestMax:       4,
		Status:         domain.MenuActive,
	}

	errs := Validate(m)
	assert.Equal(t, "gtefield", errs["GuestMax"])

	m.GuestMax = 10
	assert.Nil(t, Validate(m))
}

func TestValidate_NegativePrice(t *testing.T) {
	m := domain.Menu{
		ExperienceID:   "exp-1",
		Name:           "Tasting",
		BasePrice:      -1,
		PricePerPerson: 200,
		GuestMin:       1,
		GuestMax:       2,
		Status:         domain.MenuActive,
	}

	errs := Validate(m)
	assert.Equal(t, "gte", errs["BasePrice"])
	assert.Equal(t, "BasePrice: gte", Summary(errs))
}
