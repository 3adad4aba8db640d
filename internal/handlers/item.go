package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"WebStarter/internal/apierr"
	"WebStarter/internal/config"
	"WebStarter/internal/filestore"
	"WebStarter/internal/guard"
	"WebStarter/internal/model"
	"WebStarter/internal/repo"
	"WebStarter/internal/response"
	"WebStarter/internal/service"
)

// ItemHandler serves the /api/example surface: categories, items, item files.
type ItemHandler struct {
	Items      *service.ItemService
	Categories *service.CategoryService
	Users      guard.UserFinder
	Store      *filestore.Store
	Logger     *zap.SugaredLogger
	Config     *config.Config
}

func NewItemHandler(
	items *service.ItemService,
	categories *service.CategoryService,
	users guard.UserFinder,
	store *filestore.Store,
	logger *zap.SugaredLogger,
	cfg *config.Config,
) *ItemHandler {
	return &ItemHandler{Items: items, Categories: categories, Users: users, Store: store, Logger: logger, Config: cfg}
}

var itemFileExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".pdf": true, ".txt": true,
}

func (h *ItemHandler) CreateCategory(w http.ResponseWriter, r *http.Request) error {
	if _, err := guard.Identity(r.Context(), h.Users); err != nil {
		return err
	}

	var req struct {
		Name string `json:"name"`
	}
	if err := decodeJSON(r, &req); err != nil {
		return err
	}
	if req.Name == "" {
		return apierr.New("category name is required", http.StatusBadRequest, 0)
	}

	category, err := h.Categories.CreateCategory(r.Context(), req.Name)
	if errors.Is(err, service.ErrCategoryExists) {
		return apierr.New("category name already exists", http.StatusBadRequest, 0)
	}
	if err != nil {
		return err
	}

	response.Success(w, map[string]any{"id": category.ID, "name": category.Name}, "category created")
	return nil
}

func (h *ItemHandler) ListCategories(w http.ResponseWriter, r *http.Request) error {
	categories, err := h.Categories.ListCategories(r.Context())
	if err != nil {
		return err
	}
	response.Success(w, categories, "category list fetched")
	return nil
}

func (h *ItemHandler) CreateItem(w http.ResponseWriter, r *http.Request) error {
	identity, err := guard.Identity(r.Context(), h.Users)
	if err != nil {
		return err
	}

	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		CategoryID  int64  `json:"category_id"`
	}
	if err := decodeJSON(r, &req); err != nil {
		return err
	}
	if req.Name == "" || req.CategoryID == 0 {
		return apierr.New("item name and category_id are required", http.StatusBadRequest, 0)
	}

	item, err := h.Items.CreateItem(r.Context(), identity.ID, req.Name, req.Description, req.CategoryID)
	if errors.Is(err, service.ErrCategoryNotFound) {
		return apierr.New("category does not exist", http.StatusNotFound, 0)
	}
	if err != nil {
		return err
	}

	response.Success(w, item.View(), "item created")
	return nil
}

func (h *ItemHandler) GetItem(w http.ResponseWriter, r *http.Request) error {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return apierr.New("resource not found", http.StatusNotFound, 0)
	}

	item, err := h.Items.GetItem(r.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierr.New("item not found", http.StatusNotFound, 0)
		}
		return err
	}
	response.Success(w, item.View(), "item fetched")
	return nil
}

func (h *ItemHandler) UpdateItem(w http.ResponseWriter, r *http.Request) error {
	identity, err := guard.Identity(r.Context(), h.Users)
	if err != nil {
		return err
	}

	var req struct {
		ID          int64   `json:"id"`
		Name        *string `json:"name"`
		Description *string `json:"description"`
		CategoryID  *int64  `json:"category_id"`
	}
	if err := decodeJSON(r, &req); err != nil {
		return err
	}

	item, err := guard.ResolveOwned(r.Context(), identity, req.ID, h.Items.GetItem)
	if err != nil {
		return err
	}

	updated, err := h.Items.UpdateItem(r.Context(), item, service.ItemUpdate{
		Name:        req.Name,
		Description: req.Description,
		CategoryID:  req.CategoryID,
	})
	if errors.Is(err, service.ErrCategoryNotFound) {
		return apierr.New("new category does not exist", http.StatusNotFound, 0)
	}
	if err != nil {
		return err
	}

	response.Success(w, updated.View(), "item updated")
	return nil
}

func (h *ItemHandler) DeleteItem(w http.ResponseWriter, r *http.Request) error {
	identity, err := guard.Identity(r.Context(), h.Users)
	if err != nil {
		return err
	}

	var req struct {
		ID int64 `json:"id"`
	}
	if err := decodeJSON(r, &req); err != nil {
		return err
	}

	item, err := guard.ResolveOwned(r.Context(), identity, req.ID, h.Items.GetItem)
	if err != nil {
		return err
	}
	if err := h.Items.DeleteItem(r.Context(), item.ID); err != nil {
		return err
	}

	response.Success(w, nil, "item deleted")
	return nil
}

func (h *ItemHandler) ListItems(w http.ResponseWriter, r *http.Request) error {
	page, perPage, err := parsePageParams(r)
	if err != nil {
		return err
	}

	f := repo.ItemFilter{
		Page:    page,
		PerPage: perPage,
		Search:  r.URL.Query().Get("search"),
	}
	// malformed equality filters are treated as unset
	if raw := r.URL.Query().Get("category_id"); raw != "" {
		f.CategoryID, _ = strconv.ParseInt(raw, 10, 64)
	}
	if raw := r.URL.Query().Get("user_id"); raw != "" {
		f.UserID, _ = strconv.ParseInt(raw, 10, 64)
	}

	items, pagination, err := h.Items.ListItems(r.Context(), f)
	if err != nil {
		return err
	}

	list := make([]model.ItemView, 0, len(items))
	for i := range items {
		list = append(list, items[i].View())
	}
	response.Success(w, map[string]any{"list": list, "pagination": pagination}, "item list fetched")
	return nil
}

// UploadItemFile attaches a file to an owned item. The stored name depends only
// on the item and uploader ids, so a new upload overwrites the previous file.
func (h *ItemHandler) UploadItemFile(w http.ResponseWriter, r *http.Request) error {
	identity, err := guard.Identity(r.Context(), h.Users)
	if err != nil {
		return err
	}

	itemID, err := strconv.ParseInt(r.FormValue("item_id"), 10, 64)
	if err != nil || itemID == 0 {
		return apierr.New("item_id and file are required", http.StatusBadRequest, 0)
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		return apierr.New("item_id and file are required", http.StatusBadRequest, 0)
	}
	defer file.Close()

	item, err := guard.ResolveOwned(r.Context(), identity, itemID, h.Items.GetItem)
	if err != nil {
		return err
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !itemFileExtensions[ext] {
		return apierr.New("unsupported file type, allowed: jpg, jpeg, png, gif, pdf, txt", http.StatusBadRequest, 0)
	}

	name := fmt.Sprintf("example_item_%d_user_%d_file%s", item.ID, identity.ID, ext)
	if _, err := h.Store.Save(name, file); err != nil {
		return err
	}

	fileURL := h.Config.BaseURL + "/api/example/uploads/" + name
	if err := h.Items.AttachFile(r.Context(), item.ID, fileURL); err != nil {
		return err
	}

	response.Success(w, map[string]any{"file_url": fileURL, "item_id": item.ID}, "file uploaded")
	return nil
}

func (h *ItemHandler) ServeUpload(w http.ResponseWriter, r *http.Request) error {
	return serveFromStore(h.Store, w, r)
}
