package repo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"WebStarter/internal/model"
)

type itemFixture struct {
	repo   ItemRepository
	userID int64
	catID  int64
}

func newItemFixture(t *testing.T) (*gorm.DB, *itemFixture) {
	t.Helper()
	db := newTestDB(t)
	ctx := context.Background()

	u, err := NewUserRepository(db).CreateUser(ctx, &model.User{Username: "owner", Password: "h"})
	assert.NoError(t, err)
	c, err := NewCategoryRepository(db).CreateCategory(ctx, &model.Category{Name: "cat"})
	assert.NoError(t, err)

	return db, &itemFixture{repo: NewItemRepository(db), userID: u.ID, catID: c.ID}
}

func (f *itemFixture) mkItem(t *testing.T, name, description string, ts time.Time) *model.Item {
	t.Helper()
	it, err := f.repo.CreateItem(context.Background(), &model.Item{
		Name:        name,
		Description: description,
		Timestamp:   ts,
		CategoryID:  f.catID,
		UserID:      f.userID,
	})
	assert.NoError(t, err)
	return it
}

func TestItemRepository_CreateAndGetWithAssociations(t *testing.T) {
	_, f := newItemFixture(t)
	ctx := context.Background()

	it := f.mkItem(t, "first", "a thing", time.Now().UTC())

	got, err := f.repo.GetItemByID(ctx, it.ID)
	assert.NoError(t, err)
	assert.Equal(t, "first", got.Name)
	// author and category come preloaded for the view
	if assert.NotNil(t, got.User) {
		assert.Equal(t, "owner", got.User.Username)
	}
	if assert.NotNil(t, got.Category) {
		assert.Equal(t, "cat", got.Category.Name)
	}

	_, err = f.repo.GetItemByID(ctx, 9999)
	assert.Equal(t, gorm.ErrRecordNotFound, err)
}

func TestItemRepository_UpdateAndDelete(t *testing.T) {
	_, f := newItemFixture(t)
	ctx := context.Background()

	it := f.mkItem(t, "old", "desc", time.Now().UTC())

	err := f.repo.UpdateItem(ctx, it.ID, map[string]any{"name": "new"})
	assert.NoError(t, err)
	got, err := f.repo.GetItemByID(ctx, it.ID)
	assert.NoError(t, err)
	assert.Equal(t, "new", got.Name)
	assert.Equal(t, "desc", got.Description) // untouched field survives

	assert.NoError(t, f.repo.SetFileURL(ctx, it.ID, "http://x/f.pdf"))
	got, _ = f.repo.GetItemByID(ctx, it.ID)
	assert.Equal(t, "http://x/f.pdf", got.FileURL)

	assert.NoError(t, f.repo.DeleteItem(ctx, it.ID))
	_, err = f.repo.GetItemByID(ctx, it.ID)
	assert.Equal(t, gorm.ErrRecordNotFound, err)

	// operations on missing rows report not-found
	assert.Equal(t, gorm.ErrRecordNotFound, f.repo.UpdateItem(ctx, it.ID, map[string]any{"name": "x"}))
	assert.Equal(t, gorm.ErrRecordNotFound, f.repo.DeleteItem(ctx, it.ID))
	assert.Equal(t, gorm.ErrRecordNotFound, f.repo.SetFileURL(ctx, it.ID, "u"))
}

func TestItemRepository_List_OrderAndPaging(t *testing.T) {
	_, f := newItemFixture(t)
	ctx := context.Background()

	base := time.Now().UTC().Add(-time.Hour)
	f.mkItem(t, "oldest", "", base)
	f.mkItem(t, "middle", "", base.Add(10*time.Minute))
	f.mkItem(t, "newest", "", base.Add(20*time.Minute))

	// newest first
	items, p, err := f.repo.ListItems(ctx, ItemFilter{Page: 1, PerPage: 10})
	assert.NoError(t, err)
	if assert.Len(t, items, 3) {
		assert.Equal(t, "newest", items[0].Name)
		assert.Equal(t, "oldest", items[2].Name)
	}
	assert.Equal(t, int64(3), p.TotalCount)
	assert.Equal(t, 1, p.TotalPages)

	// page=2 per_page=5 with 3 rows: empty list, echoed page, has_next=false
	items, p, err = f.repo.ListItems(ctx, ItemFilter{Page: 2, PerPage: 5})
	assert.NoError(t, err)
	assert.Empty(t, items)
	assert.Equal(t, 2, p.CurrentPage)
	assert.Equal(t, 5, p.PerPage)
	assert.Equal(t, int64(3), p.TotalCount)
	assert.Equal(t, 1, p.TotalPages)
	assert.False(t, p.HasNext)
	assert.True(t, p.HasPrev)

	// per_page slicing
	items, p, err = f.repo.ListItems(ctx, ItemFilter{Page: 2, PerPage: 2})
	assert.NoError(t, err)
	if assert.Len(t, items, 1) {
		assert.Equal(t, "oldest", items[0].Name)
	}
	assert.True(t, p.HasPrev)
	assert.False(t, p.HasNext)
}

func TestItemRepository_List_SearchAndFilters(t *testing.T) {
	db, f := newItemFixture(t)
	ctx := context.Background()

	otherUser, err := NewUserRepository(db).CreateUser(ctx, &model.User{Username: "other", Password: "h"})
	assert.NoError(t, err)
	otherCat, err := NewCategoryRepository(db).CreateCategory(ctx, &model.Category{Name: "cat2"})
	assert.NoError(t, err)

	now := time.Now().UTC()
	f.mkItem(t, "foo widget", "", now)
	f.mkItem(t, "plain", "contains foo inside", now.Add(time.Second))
	f.mkItem(t, "bar", "nothing here", now.Add(2*time.Second))
	_, err = f.repo.CreateItem(ctx, &model.Item{
		Name: "foo elsewhere", Timestamp: now.Add(3 * time.Second),
		CategoryID: otherCat.ID, UserID: otherUser.ID,
	})
	assert.NoError(t, err)

	// search matches name OR description
	items, p, err := f.repo.ListItems(ctx, ItemFilter{Search: "foo"})
	assert.NoError(t, err)
	assert.Len(t, items, 3)
	assert.Equal(t, int64(3), p.TotalCount)

	// search AND category filter
	items, _, err = f.repo.ListItems(ctx, ItemFilter{Search: "foo", CategoryID: f.catID})
	assert.NoError(t, err)
	assert.Len(t, items, 2)

	// user filter
	items, _, err = f.repo.ListItems(ctx, ItemFilter{UserID: otherUser.ID})
	assert.NoError(t, err)
	if assert.Len(t, items, 1) {
		assert.Equal(t, "foo elsewhere", items[0].Name)
	}

	// all filters combined
	items, _, err = f.repo.ListItems(ctx, ItemFilter{Search: "foo", CategoryID: otherCat.ID, UserID: otherUser.ID})
	assert.NoError(t, err)
	assert.Len(t, items, 1)

	// no match
	items, p, err = f.repo.ListItems(ctx, ItemFilter{Search: "zzz"})
	assert.NoError(t, err)
	assert.Empty(t, items)
	assert.Equal(t, int64(0), p.TotalCount)
	assert.Equal(t, 0, p.TotalPages)
}
