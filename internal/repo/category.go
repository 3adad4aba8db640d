package repo

import (
	"context"

	"gorm.io/gorm"

	"WebStarter/internal/model"
)

// CategoryCount is a category row together with the number of items in it.
type CategoryCount struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Items int64  `json:"items"`
}

type CategoryRepository interface {
	CreateCategory(ctx context.Context, category *model.Category) (*model.Category, error)
	GetCategoryByID(ctx context.Context, id int64) (*model.Category, error)
	GetCategoryByName(ctx context.Context, name string) (*model.Category, error)

	// ListCategories returns every category with its item count. The reverse
	// category→items lookup is an explicit join, not a lazy collection.
	ListCategories(ctx context.Context) ([]CategoryCount, error)
}

type categoryRepo struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepo{db: db}
}

func (r *categoryRepo) CreateCategory(ctx context.Context, category *model.Category) (*model.Category, error) {
	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		return nil, storageErr("create category", err)
	}
	return category, nil
}

func (r *categoryRepo) GetCategoryByID(ctx context.Context, id int64) (*model.Category, error) {
	var c model.Category
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, err
		}
		return nil, storageErr("get category by id", err)
	}
	return &c, nil
}

func (r *categoryRepo) GetCategoryByName(ctx context.Context, name string) (*model.Category, error) {
	var c model.Category
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&c).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, err
		}
		return nil, storageErr("get category by name", err)
	}
	return &c, nil
}

func (r *categoryRepo) ListCategories(ctx context.Context) ([]CategoryCount, error) {
	var rows []CategoryCount
	err := r.db.WithContext(ctx).Model(&model.Category{}).
		Select("example_category.id, example_category.name, count(example_item.id) AS items").
		Joins("LEFT JOIN example_item ON example_item.category_id = example_category.id").
		Group("example_category.id, example_category.name").
		Order("example_category.id").
		Scan(&rows).Error
	if err != nil {
		return nil, storageErr("list categories", err)
	}
	return rows, nil
}
