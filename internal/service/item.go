package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"WebStarter/internal/model"
	"WebStarter/internal/repo"
)

var ErrCategoryNotFound = errors.New("category does not exist")

// ItemService owns item lifecycle rules: the referenced category must exist,
// and the creating user becomes the immutable owner.
type ItemService struct {
	items      repo.ItemRepository
	categories repo.CategoryRepository
}

func NewItemService(items repo.ItemRepository, categories repo.CategoryRepository) *ItemService {
	return &ItemService{items: items, categories: categories}
}

// ItemUpdate carries the optional fields of an update request; nil means
// "leave unchanged".
type ItemUpdate struct {
	Name        *string
	Description *string
	CategoryID  *int64
}

func (s *ItemService) categoryExists(ctx context.Context, id int64) error {
	if _, err := s.categories.GetCategoryByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCategoryNotFound
		}
		return err
	}
	return nil
}

// CreateItem inserts an item owned by userID and returns it with associations
// loaded for the response view.
func (s *ItemService) CreateItem(ctx context.Context, userID int64, name, description string, categoryID int64) (*model.Item, error) {
	if err := s.categoryExists(ctx, categoryID); err != nil {
		return nil, err
	}
	item, err := s.items.CreateItem(ctx, &model.Item{
		Name:        name,
		Description: description,
		CategoryID:  categoryID,
		UserID:      userID,
	})
	if err != nil {
		return nil, err
	}
	return s.items.GetItemByID(ctx, item.ID)
}

func (s *ItemService) GetItem(ctx context.Context, id int64) (*model.Item, error) {
	return s.items.GetItemByID(ctx, id)
}

// UpdateItem applies the supplied fields to an already ownership-checked item.
// Last write wins: there is no version check.
func (s *ItemService) UpdateItem(ctx context.Context, item *model.Item, upd ItemUpdate) (*model.Item, error) {
	updates := map[string]any{}
	if upd.Name != nil {
		updates["name"] = *upd.Name
	}
	if upd.Description != nil {
		updates["description"] = *upd.Description
	}
	if upd.CategoryID != nil {
		if err := s.categoryExists(ctx, *upd.CategoryID); err != nil {
			return nil, err
		}
		updates["category_id"] = *upd.CategoryID
	}
	if err := s.items.UpdateItem(ctx, item.ID, updates); err != nil {
		return nil, err
	}
	return s.items.GetItemByID(ctx, item.ID)
}

func (s *ItemService) DeleteItem(ctx context.Context, id int64) error {
	return s.items.DeleteItem(ctx, id)
}

func (s *ItemService) AttachFile(ctx context.Context, id int64, fileURL string) error {
	return s.items.SetFileURL(ctx, id, fileURL)
}

func (s *ItemService) ListItems(ctx context.Context, f repo.ItemFilter) ([]model.Item, repo.Pagination, error) {
	return s.items.ListItems(ctx, f)
}
