package repository

import (
	"context"
	"time"

	"foodie/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

type bookingModel struct {
	ID              string    `gorm:"column:id;primaryKey;type:varchar(36)"`
	ClientID        string    `gorm:"column:client_id;type:varchar(36);index"`
	MenuID          *string   `gorm:"column:menu_id;type:varchar(36);index"`
	MealID          *string   `gorm:"column:meal_id;type:varchar(36);index"`
	ExperienceID    *string   `gorm:"column:experience_id;type:varchar(36)"`
	DateTime        time.Time `gorm:"column:date_time"`
	Address         string    `gorm:"column:address;type:text"`
	GuestsCount     int       `gorm:"column:guests_count"`
	TotalPrice      float64   `gorm:"column:total_price"`
	SpecialRequests *string   `gorm:"column:special_requests;type:text"`
	Status          string    `gorm:"column:status;index"`
	CreatedAt       time.Time `gorm:"column:created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at"`
}

func (bookingModel) TableName() string { return "bookings" }

func (m *bookingModel) BeforeCreate(*gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

type BookingFilter struct {
	Status domain.BookingStatus
	Limit  int
	Offset int
}

func toDomainBooking(m bookingModel) *domain.Booking {
	return &domain.Booking{
		ID:              m.ID,
		ClientID:        m.ClientID,
		MenuID:          m.MenuID,
		MealID:          m.MealID,
		ExperienceID:    m.ExperienceID,
		DateTime:        m.DateTime,
		Address:         m.Address,
		GuestsCount:     m.GuestsCount,
		TotalPrice:      m.TotalPrice,
		SpecialRequests: m.SpecialRequests,
		Status:          domain.BookingStatus(m.Status),
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

func toBookingModel(b *domain.Booking) bookingModel {
	return bookingModel{
		ID:              b.ID,
		ClientID:        b.ClientID,
		MenuID:          b.MenuID,
		MealID:          b.MealID,
		ExperienceID:    b.ExperienceID,
		DateTime:        b.DateTime,
		Address:         b.Address,
		GuestsCount:     b.GuestsCount,
		TotalPrice:      b.TotalPrice,
		SpecialRequests: b.SpecialRequests,
		Status:          string(b.Status),
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}

func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	m := toBookingModel(b)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return translate(tx.Error)
	}
	*b = *toDomainBooking(m)
	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	var m bookingModel
	tx := r.db.WithContext(ctx).Where("id = ?", id).First(&m)
	if tx.Error != nil {
		return nil, translate(tx.Error)
	}
	return toDomainBooking(m), nil
}

// UpdateStatus writes only the status column and returns the updated row.
func (r *BookingRepository) UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) (*domain.Booking, error) {
	tx := r.db.WithContext(ctx).
		Model(&bookingModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":     string(status),
			"updated_at": time.Now().UTC(),
		})
	if tx.Error != nil {
		return nil, translate(tx.Error)
	}
	if tx.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *BookingRepository) ListByClient(ctx context.Context, clientID string, limit, offset int) ([]domain.Booking, error) {
	var rows []bookingModel
	err := r.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("created_at DESC").
		Limit(pageLimit(limit)).
		Offset(offset).
		Find(&rows).Error
	if err != nil {
		return nil, translate(err)
	}

	out := make([]domain.Booking, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainBooking(m))
	}
	return out, nil
}

func (r *BookingRepository) List(ctx context.Context, f BookingFilter) ([]domain.Booking, int64, error) {
	q := r.db.WithContext(ctx).Model(&bookingModel{})
	if f.Status != "" {
		q = q.Where("status = ?", string(f.Status))
	}
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, translate(err)
	}

	var rows []bookingModel
	err := q.Order("date_time ASC").
		Limit(pageLimit(f.Limit)).
		Offset(f.Offset).
		Find(&rows).Error
	if err != nil {
		return nil, 0, translate(err)
	}

	out := make([]domain.Booking, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainBooking(m))
	}
	return out, total, nil
}
