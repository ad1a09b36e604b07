package repository

import (
	"context"
	"time"

	"foodie/internal/domain"
	"foodie/internal/pkg/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MealRepository struct {
	db *gorm.DB
}

func NewMealRepository(db *gorm.DB) *MealRepository {
	return &MealRepository{db: db}
}

type mealModel struct {
	ID            string    `gorm:"column:id;primaryKey;type:varchar(36)"`
	Name          string    `gorm:"column:name;not null"`
	Description   string    `gorm:"column:description;type:text"`
	Price         float64   `gorm:"column:price;not null;default:0"`
	Category      string    `gorm:"column:category;index"`
	CuisineType   string    `gorm:"column:cuisine_type"`
	DietaryTags   string    `gorm:"column:dietary_tags;type:text"`
	ImageURL      string    `gorm:"column:image_url"`
	IsActive      bool      `gorm:"column:is_active;index"`
	TotalBookings int64     `gorm:"column:total_bookings;not null;default:0"`
	AverageRating float64   `gorm:"column:average_rating;not null;default:0"`
	CreatedAt     time.Time `gorm:"column:created_at"`
}

func (mealModel) TableName() string { return "meals" }

func (m *mealModel) BeforeCreate(*gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

type menuMealModel struct {
	MenuID     string `gorm:"column:menu_id;primaryKey;type:varchar(36)"`
	MealID     string `gorm:"column:meal_id;primaryKey;type:varchar(36)"`
	CourseType string `gorm:"column:course_type"`
	OrderIndex int    `gorm:"column:order_index;not null;default:0"`
}

func (menuMealModel) TableName() string { return "menu_meals" }

func toDomainMeal(m mealModel) *domain.Meal {
	return &domain.Meal{
		ID:            m.ID,
		Name:          m.Name,
		Description:   m.Description,
		Price:         m.Price,
		Category:      domain.MealCategory(m.Category),
		CuisineType:   m.CuisineType,
		DietaryTags:   utils.StringToTags(m.DietaryTags),
		ImageURL:      m.ImageURL,
		IsActive:      m.IsActive,
		TotalBookings: m.TotalBookings,
		AverageRating: m.AverageRating,
		CreatedAt:     m.CreatedAt,
	}
}

func (r *MealRepository) Create(ctx context.Context, meal *domain.Meal) error {
	m := mealModel{
		ID:            meal.ID,
		Name:          meal.Name,
		Description:   meal.Description,
		Price:         meal.Price,
		Category:      string(meal.Category),
		CuisineType:   meal.CuisineType,
		DietaryTags:   utils.TagsToString(meal.DietaryTags),
		ImageURL:      meal.ImageURL,
		IsActive:      meal.IsActive,
		TotalBookings: meal.TotalBookings,
		AverageRating: meal.AverageRating,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return translate(err)
	}
	*meal = *toDomainMeal(m)
	return nil
}

func (r *MealRepository) GetByID(ctx context.Context, id string) (*domain.Meal, error) {
	var m mealModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, translate(err)
	}
	return toDomainMeal(m), nil
}

// IncrementBookings bumps total_bookings in place so concurrent bookings never
// lose an increment.
func (r *MealRepository) IncrementBookings(ctx context.Context, id string) error {
	tx := r.db.WithContext(ctx).
		Model(&mealModel{}).
		Where("id = ?", id).
		UpdateColumn("total_bookings", gorm.Expr("total_bookings + ?", 1))
	if tx.Error != nil {
		return translate(tx.Error)
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListFeatured returns active meals ordered by popularity.
func (r *MealRepository) ListFeatured(ctx context.Context, limit int) ([]domain.Meal, error) {
	var rows []mealModel
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("total_bookings DESC").
		Order("average_rating DESC").
		Limit(pageLimit(limit)).
		Find(&rows).Error
	if err != nil {
		return nil, translate(err)
	}

	out := make([]domain.Meal, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainMeal(m))
	}
	return out, nil
}

// MealIDsForMenu returns the ids of every meal assigned to the menu.
func (r *MealRepository) MealIDsForMenu(ctx context.Context, menuID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&menuMealModel{}).
		Where("menu_id = ?", menuID).
		Order("order_index ASC").
		Pluck("meal_id", &ids).Error
	if err != nil {
		return nil, translate(err)
	}
	return ids, nil
}

// MenuMeals returns the menu's course assignments with their meals, in course order.
func (r *MealRepository) MenuMeals(ctx context.Context, menuID string) ([]domain.MenuMeal, error) {
	var links []menuMealModel
	err := r.db.WithContext(ctx).
		Where("menu_id = ?", menuID).
		Order("order_index ASC").
		Find(&links).Error
	if err != nil {
		return nil, translate(err)
	}
	if len(links) == 0 {
		return []domain.MenuMeal{}, nil
	}

	ids := make([]string, 0, len(links))
	for _, l := range links {
		ids = append(ids, l.MealID)
	}

	var meals []mealModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&meals).Error; err != nil {
		return nil, translate(err)
	}
	byID := make(map[string]*domain.Meal, len(meals))
	for _, m := range meals {
		byID[m.ID] = toDomainMeal(m)
	}

	out := make([]domain.MenuMeal, 0, len(links))
	for _, l := range links {
		out = append(out, domain.MenuMeal{
			MenuID:     l.MenuID,
			MealID:     l.MealID,
			CourseType: l.CourseType,
			OrderIndex: l.OrderIndex,
			Meal:       byID[l.MealID],
		})
	}
	return out, nil
}

// AssignToMenu replaces the menu's meal assignments.
func (r *MealRepository) AssignToMenu(ctx context.Context, menuID string, links []domain.MenuMeal) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("menu_id = ?", menuID).Delete(&menuMealModel{}).Error; err != nil {
			return translate(err)
		}
		if len(links) == 0 {
			return nil
		}

		rows := make([]menuMealModel, 0, len(links))
		for _, l := range links {
			rows = append(rows, menuMealModel{
				MenuID:     menuID,
				MealID:     l.MealID,
				CourseType: l.CourseType,
				OrderIndex: l.OrderIndex,
			})
		}
		return translate(tx.Create(&rows).Error)
	})
}
