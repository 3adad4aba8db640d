package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"

	"WebStarter/internal/config"
	"WebStarter/internal/filestore"
	"WebStarter/internal/handlers"
	"WebStarter/internal/model"
	"WebStarter/internal/repo"
	"WebStarter/internal/service"
)

// testEnv runs the full router over an in-memory SQLite database and a
// temporary upload directory.
type testEnv struct {
	t         *testing.T
	db        *gorm.DB
	router    http.Handler
	cfg       *config.Config
	uploadDir string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(gormsqlite.Dialector{DriverName: "sqlite", DSN: dsn}, &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Category{}, &model.Item{}))

	uploadDir := t.TempDir()
	store, err := filestore.New(uploadDir)
	require.NoError(t, err)

	cfg := &config.Config{
		SecretKey: "test-secret",
		BaseURL:   "http://localhost:8080",
		UploadDir: uploadDir,
	}
	logger := zap.NewNop().Sugar()

	userRepo := repo.NewUserRepository(db)
	categoryRepo := repo.NewCategoryRepository(db)
	itemRepo := repo.NewItemRepository(db)

	h := handlers.NewHandler(
		service.NewUserService(userRepo),
		service.NewCategoryService(categoryRepo),
		service.NewItemService(itemRepo, categoryRepo),
		store,
		logger,
		cfg,
	)

	return &testEnv{t: t, db: db, router: h.Router, cfg: cfg, uploadDir: uploadDir}
}

// postJSON sends a JSON POST, attaching the given session cookies.
func (e *testEnv) postJSON(path, body string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	e.t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	return rr
}

func (e *testEnv) get(path string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	e.t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	return rr
}

// postMultipart uploads one file plus optional form fields.
func (e *testEnv) postMultipart(path, fileField, fileName, fileContent string, fields map[string]string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	e.t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(e.t, mw.WriteField(k, v))
	}
	fw, err := mw.CreateFormFile(fileField, fileName)
	require.NoError(e.t, err)
	_, err = io.Copy(fw, strings.NewReader(fileContent))
	require.NoError(e.t, err)
	require.NoError(e.t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	return rr
}

// registerAndLogin creates an account and returns its session cookies.
func (e *testEnv) registerAndLogin(username, password string) []*http.Cookie {
	e.t.Helper()
	body := fmt.Sprintf(`{"username":%q,"password":%q}`, username, password)
	rr := e.postJSON("/api/auth/register", body, nil)
	require.Equal(e.t, http.StatusOK, rr.Code, "register failed: %s", rr.Body.String())

	rr = e.postJSON("/api/auth/login", body, nil)
	require.Equal(e.t, http.StatusOK, rr.Code, "login failed: %s", rr.Body.String())
	return rr.Result().Cookies()
}

// envelope decodes a response body into the generic envelope shape.
func envelope(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body), "body: %s", rr.Body.String())
	return body
}

func envData(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	data, _ := envelope(t, rr)["data"].(map[string]any)
	require.NotNil(t, data, "data missing: %s", rr.Body.String())
	return data
}

func errorCode(t *testing.T, rr *httptest.ResponseRecorder) float64 {
	t.Helper()
	code, _ := envelope(t, rr)["error_code"].(float64)
	return code
}
