package repository

import (
	"context"
	"time"

	"foodie/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// userModel mirrors the provider's users; ids are assigned by the provider.
type userModel struct {
	ID        string    `gorm:"column:id;primaryKey;type:varchar(36)"`
	Email     string    `gorm:"column:email;uniqueIndex"`
	Name      string    `gorm:"column:name"`
	Role      string    `gorm:"column:role;index"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (userModel) TableName() string { return "users" }

func (r *UserRepository) Upsert(ctx context.Context, u *domain.User) error {
	m := userModel{ID: u.ID, Email: u.Email, Name: u.Name, Role: string(u.Role)}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"email", "name", "role"}),
		}).
		Create(&m).Error
	return translate(err)
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	var m userModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, translate(err)
	}
	return &domain.User{
		ID:        m.ID,
		Email:     m.Email,
		Name:      m.Name,
		Role:      domain.UserRole(m.Role),
		CreatedAt: m.CreatedAt,
	}, nil
}
