package repo

import (
	"context"

	"gorm.io/gorm"

	"WebStarter/internal/model"
)

// UserRepository is the minimal access contract the services and guards need.
type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User) (*model.User, error)
	GetUserByID(ctx context.Context, id int64) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	UpdateAvatar(ctx context.Context, id int64, avatarURL string) error

	// ListUsers pages over accounts, optionally filtered by a substring match
	// on the username.
	ListUsers(ctx context.Context, page, perPage int, search string) ([]model.User, Pagination, error)
}

type userRepo struct {
	db *gorm.DB
}

// NewUserRepository creates the gorm-backed implementation.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, storageErr("create user", err)
	}
	return user, nil
}

func (r *userRepo) GetUserByID(ctx context.Context, id int64) (*model.User, error) {
	var u model.User
	if err := r.db.WithContext(ctx).First(&u, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, err
		}
		return nil, storageErr("get user by id", err)
	}
	return &u, nil
}

func (r *userRepo) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	var u model.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&u).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, err
		}
		return nil, storageErr("get user by username", err)
	}
	return &u, nil
}

func (r *userRepo) UpdateAvatar(ctx context.Context, id int64, avatarURL string) error {
	tx := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Update("avatar", avatarURL)
	if tx.Error != nil {
		return storageErr("update avatar", tx.Error)
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *userRepo) ListUsers(ctx context.Context, page, perPage int, search string) ([]model.User, Pagination, error) {
	page, perPage = normalizePage(page, perPage)

	q := r.db.WithContext(ctx).Model(&model.User{})
	if search != "" {
		q = q.Where("username LIKE ?", "%"+search+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, Pagination{}, storageErr("count users", err)
	}

	var users []model.User
	if err := q.Order("id").Offset((page - 1) * perPage).Limit(perPage).Find(&users).Error; err != nil {
		return nil, Pagination{}, storageErr("list users", err)
	}
	return users, paginate(total, page, perPage), nil
}
