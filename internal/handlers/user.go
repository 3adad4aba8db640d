package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"WebStarter/internal/apierr"
	"WebStarter/internal/config"
	"WebStarter/internal/filestore"
	"WebStarter/internal/guard"
	"WebStarter/internal/middleware"
	"WebStarter/internal/model"
	"WebStarter/internal/response"
	"WebStarter/internal/service"
)

// UserHandler serves the /api/auth surface: accounts, sessions, avatars.
type UserHandler struct {
	Service *service.UserService
	Store   *filestore.Store
	Logger  *zap.SugaredLogger
	Config  *config.Config
}

func NewUserHandler(svc *service.UserService, store *filestore.Store, logger *zap.SugaredLogger, cfg *config.Config) *UserHandler {
	return &UserHandler{Service: svc, Store: store, Logger: logger, Config: cfg}
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

var avatarExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true,
}

func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) error {
	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		return err
	}
	if req.Username == "" || req.Password == "" {
		return apierr.New("username and password are required", http.StatusBadRequest, apierr.CodeInvalidParams)
	}

	_, err := h.Service.Register(r.Context(), req.Username, req.Password)
	if errors.Is(err, service.ErrUsernameTaken) {
		return apierr.New("username already exists", http.StatusBadRequest, apierr.CodeUsernameTaken)
	}
	if err != nil {
		return err
	}

	response.Success(w, nil, "registered")
	return nil
}

func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) error {
	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		return err
	}
	if req.Username == "" || req.Password == "" {
		return apierr.New("username and password are required", http.StatusBadRequest, apierr.CodeInvalidParams)
	}

	user, err := h.Service.Login(r.Context(), req.Username, req.Password)
	if errors.Is(err, service.ErrInvalidCredentials) {
		return apierr.New("wrong username or password", http.StatusUnauthorized, apierr.CodeBadCredentials)
	}
	if err != nil {
		return err
	}

	if err := middleware.SetLoginCookie(w, user.ID, h.Config.SecretKey); err != nil {
		return err
	}
	response.Success(w, user.View(), "login successful")
	return nil
}

func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) error {
	middleware.ClearLoginCookie(w)
	response.Success(w, nil, "logged out")
	return nil
}

// Status reports the login state. A session referencing a deleted account is
// an error; no session at all is a successful "not logged in".
func (h *UserHandler) Status(w http.ResponseWriter, r *http.Request) error {
	uid, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Success(w, map[string]any{"logged_in": false}, "not logged in")
		return nil
	}

	user, err := h.Service.GetUserByID(r.Context(), uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierr.New("user no longer exists", http.StatusNotFound, apierr.CodeNotFound)
		}
		return err
	}

	response.Success(w, map[string]any{
		"logged_in": true,
		"user": map[string]any{
			"id":       user.ID,
			"username": user.Username,
			"avatar":   user.Avatar,
		},
	}, "logged in")
	return nil
}

func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) error {
	page, perPage, err := parsePageParams(r)
	if err != nil {
		return err
	}
	search := r.URL.Query().Get("search")

	users, pagination, err := h.Service.ListUsers(r.Context(), page, perPage, search)
	if err != nil {
		return err
	}

	list := make([]model.PublicView, 0, len(users))
	for i := range users {
		list = append(list, users[i].View())
	}
	response.Success(w, map[string]any{"list": list, "pagination": pagination}, "user list fetched")
	return nil
}

// UploadSimple stores the client-supplied file name as-is: no extension check,
// no collision handling. Demo only, disabled unless explicitly enabled, and
// the name still gets stripped of path components.
func (h *UserHandler) UploadSimple(w http.ResponseWriter, r *http.Request) error {
	if !h.Config.EnableUnsafeUpload {
		return apierr.New("resource not found", http.StatusNotFound, 0)
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return apierr.New("file is required", http.StatusBadRequest, apierr.CodeInvalidParams)
	}
	defer file.Close()

	name := filestore.SafeName(header.Filename)
	if name == "" {
		return apierr.New("invalid file name", http.StatusBadRequest, apierr.CodeInvalidParams)
	}
	path, err := h.Store.Save(name, file)
	if err != nil {
		return err
	}

	response.Success(w, map[string]any{
		"saved_filename":       name,
		"saved_path_on_server": path,
	}, "file uploaded")
	return nil
}

// UploadAvatar saves a validated avatar under a name derived from the user id
// and writes the public URL onto the account. A later upload with another
// extension leaves the previous file behind; the URL always points at the
// newest one.
func (h *UserHandler) UploadAvatar(w http.ResponseWriter, r *http.Request) error {
	identity, err := guard.Identity(r.Context(), h.Service)
	if err != nil {
		return err
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return apierr.New("file is required", http.StatusBadRequest, apierr.CodeInvalidParams)
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !avatarExtensions[ext] {
		return apierr.New("unsupported file type, allowed: jpg, jpeg, png, gif", http.StatusBadRequest, apierr.CodeBadFileType)
	}

	name := fmt.Sprintf("user_%d_avatar%s", identity.ID, ext)
	path, err := h.Store.Save(name, file)
	if err != nil {
		return err
	}

	fileURL := h.Config.BaseURL + "/api/auth/uploads/" + name
	if err := h.Service.SetAvatar(r.Context(), identity.ID, fileURL); err != nil {
		return err
	}

	response.Success(w, map[string]any{
		"saved_filename":       name,
		"saved_path_on_server": path,
		"file_url":             fileURL,
	}, "file uploaded")
	return nil
}

func (h *UserHandler) ServeUpload(w http.ResponseWriter, r *http.Request) error {
	return serveFromStore(h.Store, w, r)
}
