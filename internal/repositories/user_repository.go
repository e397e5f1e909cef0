package repositories

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"simplifytour/internal/models/db_models"
)

type UserRepository interface {
	Create(ctx context.Context, user *db_models.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*db_models.User, error)
	FindByEmail(ctx context.Context, email string) (*db_models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	Save(ctx context.Context, user *db_models.User) error
	List(ctx context.Context, email string, limit, offset int) ([]db_models.User, int64, error)
	CountByConfirmation(ctx context.Context) (confirmed int64, unconfirmed int64, err error)

	FindProfileByUserID(ctx context.Context, userID uuid.UUID) (*db_models.Profile, error)
	SaveProfile(ctx context.Context, profile *db_models.Profile) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *db_models.User) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Omit("Profile").Create(user).Error
	})
}

func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*db_models.User, error) {
	return findOne[db_models.User](ctx, r.db.Preload("Profile"), "id = ?", id)
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*db_models.User, error) {
	return findOne[db_models.User](ctx, r.db.Preload("Profile"), "email = ?", email)
}

// EmailExists also sees deleted accounts, since the unique index does.
func (r *userRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Unscoped().Model(&db_models.User{}).
		Where("LOWER(email) = ?", strings.ToLower(email)).
		Count(&count).Error
	return count > 0, err
}

func (r *userRepository) Save(ctx context.Context, user *db_models.User) error {
	return r.db.WithContext(ctx).Omit("Profile").Save(user).Error
}

func (r *userRepository) List(ctx context.Context, email string, limit, offset int) ([]db_models.User, int64, error) {
	query := r.db.WithContext(ctx).Model(&db_models.User{})
	if email != "" {
		query = query.Where("email = ?", email)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []db_models.User
	err := query.Preload("Profile").
		Scopes(paginate(limit, offset)).
		Order("date_joined ASC, email ASC").
		Find(&users).Error
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (r *userRepository) CountByConfirmation(ctx context.Context) (int64, int64, error) {
	var confirmed, unconfirmed int64
	if err := r.db.WithContext(ctx).Model(&db_models.User{}).Where("is_confirmed = ?", true).Count(&confirmed).Error; err != nil {
		return 0, 0, err
	}
	if err := r.db.WithContext(ctx).Model(&db_models.User{}).Where("is_confirmed = ?", false).Count(&unconfirmed).Error; err != nil {
		return 0, 0, err
	}
	return confirmed, unconfirmed, nil
}

func (r *userRepository) FindProfileByUserID(ctx context.Context, userID uuid.UUID) (*db_models.Profile, error) {
	return findOne[db_models.Profile](ctx, r.db, "user_id = ?", userID)
}

func (r *userRepository) SaveProfile(ctx context.Context, profile *db_models.Profile) error {
	return r.db.WithContext(ctx).Save(profile).Error
}
