package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"runtime/debug"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"WebStarter/internal/apierr"
	"WebStarter/internal/config"
	"WebStarter/internal/filestore"
	"WebStarter/internal/middleware"
	"WebStarter/internal/repo"
	"WebStarter/internal/response"
	"WebStarter/internal/service"
)

type Handler struct {
	Router chi.Router
}

// NewHandler wires middleware, routes and the error boundary.
func NewHandler(
	userService *service.UserService,
	categoryService *service.CategoryService,
	itemService *service.ItemService,
	store *filestore.Store,
	logger *zap.SugaredLogger,
	cfg *config.Config,
) *Handler {
	r := chi.NewRouter()

	r.Use(middleware.WithGzip)
	r.Use(middleware.WithLogging)
	r.Use(middleware.WithAuth(cfg.SecretKey))

	// Framework-level errors go through the same envelope as everything else.
	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		logger.Warnw("route not found", "method", req.Method, "uri", req.RequestURI)
		response.Fail(w, http.StatusNotFound, "resource not found", 0)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		logger.Warnw("method not allowed", "method", req.Method, "uri", req.RequestURI)
		response.Fail(w, http.StatusMethodNotAllowed, "method not allowed", 0)
	})

	userHandler := NewUserHandler(userService, store, logger, cfg)
	itemHandler := NewItemHandler(itemService, categoryService, userService, store, logger, cfg)

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", wrap(logger, userHandler.Register))
		r.Post("/login", wrap(logger, userHandler.Login))
		r.Post("/logout", wrap(logger, userHandler.Logout))
		r.Get("/status", wrap(logger, userHandler.Status))
		r.Get("/users", wrap(logger, userHandler.ListUsers))
		r.Post("/upload-simple", wrap(logger, userHandler.UploadSimple))
		r.Post("/upload-avatar", wrap(logger, userHandler.UploadAvatar))
		r.Get("/uploads/{filename}", wrap(logger, userHandler.ServeUpload))
	})

	r.Route("/api/example", func(r chi.Router) {
		r.Post("/category/create", wrap(logger, itemHandler.CreateCategory))
		r.Get("/category/list", wrap(logger, itemHandler.ListCategories))
		r.Post("/item/create", wrap(logger, itemHandler.CreateItem))
		r.Get("/item/list", wrap(logger, itemHandler.ListItems))
		r.Get("/item/{id}", wrap(logger, itemHandler.GetItem))
		r.Post("/item/update", wrap(logger, itemHandler.UpdateItem))
		r.Post("/item/delete", wrap(logger, itemHandler.DeleteItem))
		r.Post("/item/upload-file", wrap(logger, itemHandler.UploadItemFile))
		r.Get("/uploads/{filename}", wrap(logger, itemHandler.ServeUpload))
	})

	return &Handler{Router: r}
}

// handlerFunc is a route body that reports failures as errors instead of
// writing them itself.
type handlerFunc func(http.ResponseWriter, *http.Request) error

// wrap is the single boundary translator: business failures keep their status
// and code, storage failures and everything else collapse to generic 500s so
// internals never leak to clients.
func wrap(logger *zap.SugaredLogger, fn handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.Errorw("panic in handler", "uri", r.RequestURI, "panic", rec, "stack", string(debug.Stack()))
				response.Fail(w, http.StatusInternalServerError, "unexpected internal error", 0)
			}
		}()

		err := fn(w, r)
		if err == nil {
			return
		}

		var apiErr *apierr.Error
		var storeErr *repo.StorageError
		switch {
		case errors.As(err, &apiErr):
			logger.Infow("request rejected",
				"uri", r.RequestURI,
				"status", apiErr.StatusCode,
				"error_code", apiErr.ErrorCode,
				"message", apiErr.Message,
			)
			response.Fail(w, apiErr.StatusCode, apiErr.Message, apiErr.ErrorCode)
		case errors.As(err, &storeErr):
			logger.Errorw("database failure", "uri", r.RequestURI, "error", err, "stack", string(debug.Stack()))
			response.Fail(w, http.StatusInternalServerError, "database operation failed", 0)
		default:
			logger.Errorw("unhandled error", "uri", r.RequestURI, "error", err, "stack", string(debug.Stack()))
			response.Fail(w, http.StatusInternalServerError, "unexpected internal error", 0)
		}
	}
}

// decodeJSON parses the request body into v, mapping malformed bodies to a
// client error.
func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return apierr.New("invalid request body", http.StatusBadRequest, apierr.CodeInvalidParams)
	}
	return nil
}

// parsePageParams reads page/per_page query parameters. Absent values fall
// back to defaults; non-integer values are a client error.
func parsePageParams(r *http.Request) (page, perPage int, err error) {
	page, perPage = repo.DefaultPage, repo.DefaultPerPage
	if raw := r.URL.Query().Get("page"); raw != "" {
		page, err = strconv.Atoi(raw)
		if err != nil {
			return 0, 0, apierr.New("invalid pagination parameters", http.StatusBadRequest, apierr.CodeBadPagination)
		}
	}
	if raw := r.URL.Query().Get("per_page"); raw != "" {
		perPage, err = strconv.Atoi(raw)
		if err != nil {
			return 0, 0, apierr.New("invalid pagination parameters", http.StatusBadRequest, apierr.CodeBadPagination)
		}
	}
	return page, perPage, nil
}

// serveFromStore streams a stored upload, or 404s without revealing paths.
func serveFromStore(store *filestore.Store, w http.ResponseWriter, r *http.Request) error {
	name := chi.URLParam(r, "filename")
	path := store.Path(name)
	if path == "" {
		return apierr.New("file not found", http.StatusNotFound, 0)
	}
	if _, err := os.Stat(path); err != nil {
		return apierr.New("file not found", http.StatusNotFound, 0)
	}
	http.ServeFile(w, r, path)
	return nil
}
