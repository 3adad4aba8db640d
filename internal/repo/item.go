package repo

import (
	"context"

	"gorm.io/gorm"

	"WebStarter/internal/model"
)

// ItemFilter describes a listing request: page slicing, a free-text search
// OR-matched against name and description, and equality filters ANDed on top.
// Zero values mean "not set".
type ItemFilter struct {
	Page       int
	PerPage    int
	Search     string
	CategoryID int64
	UserID     int64
}

type ItemRepository interface {
	CreateItem(ctx context.Context, item *model.Item) (*model.Item, error)

	// GetItemByID loads an item with its author and category preloaded.
	GetItemByID(ctx context.Context, id int64) (*model.Item, error)

	// UpdateItem persists the given columns of an existing item.
	UpdateItem(ctx context.Context, id int64, updates map[string]any) error
	DeleteItem(ctx context.Context, id int64) error
	SetFileURL(ctx context.Context, id int64, fileURL string) error

	// ListItems pages over items newest-first, applying the filter.
	ListItems(ctx context.Context, f ItemFilter) ([]model.Item, Pagination, error)
}

type itemRepo struct {
	db *gorm.DB
}

func NewItemRepository(db *gorm.DB) ItemRepository {
	return &itemRepo{db: db}
}

func (r *itemRepo) CreateItem(ctx context.Context, item *model.Item) (*model.Item, error) {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return nil, storageErr("create item", err)
	}
	return item, nil
}

func (r *itemRepo) GetItemByID(ctx context.Context, id int64) (*model.Item, error) {
	var it model.Item
	err := r.db.WithContext(ctx).Preload("User").Preload("Category").First(&it, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, err
		}
		return nil, storageErr("get item by id", err)
	}
	return &it, nil
}

func (r *itemRepo) UpdateItem(ctx context.Context, id int64, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	tx := r.db.WithContext(ctx).Model(&model.Item{}).Where("id = ?", id).Updates(updates)
	if tx.Error != nil {
		return storageErr("update item", tx.Error)
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *itemRepo) DeleteItem(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Delete(&model.Item{}, id)
	if tx.Error != nil {
		return storageErr("delete item", tx.Error)
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *itemRepo) SetFileURL(ctx context.Context, id int64, fileURL string) error {
	tx := r.db.WithContext(ctx).Model(&model.Item{}).Where("id = ?", id).Update("file_url", fileURL)
	if tx.Error != nil {
		return storageErr("set item file url", tx.Error)
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *itemRepo) ListItems(ctx context.Context, f ItemFilter) ([]model.Item, Pagination, error) {
	page, perPage := normalizePage(f.Page, f.PerPage)

	q := r.db.WithContext(ctx).Model(&model.Item{})
	if f.Search != "" {
		pattern := "%" + f.Search + "%"
		q = q.Where("name LIKE ? OR description LIKE ?", pattern, pattern)
	}
	if f.CategoryID != 0 {
		q = q.Where("category_id = ?", f.CategoryID)
	}
	if f.UserID != 0 {
		q = q.Where("user_id = ?", f.UserID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, Pagination{}, storageErr("count items", err)
	}

	var items []model.Item
	err := q.Order("timestamp DESC").
		Offset((page - 1) * perPage).Limit(perPage).
		Preload("User").Preload("Category").
		Find(&items).Error
	if err != nil {
		return nil, Pagination{}, storageErr("list items", err)
	}
	return items, paginate(total, page, perPage), nil
}
