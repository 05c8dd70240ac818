package api_test

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/lenarsag/foodgram/backend/config"
	"github.com/lenarsag/foodgram/backend/internal/models"
	"github.com/lenarsag/foodgram/backend/internal/router"
	"github.com/lenarsag/foodgram/backend/internal/service"
	"github.com/lenarsag/foodgram/backend/internal/shorturl"
	"github.com/lenarsag/foodgram/backend/internal/storage"
	"github.com/lenarsag/foodgram/backend/internal/testhelpers"
)

var imagePayload = "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("png bytes"))

type testApp struct {
	t      *testing.T
	db     *gorm.DB
	auth   *service.AuthService
	router *gin.Engine
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testhelpers.SetupTestDatabase(t)
	mediaDir := t.TempDir()
	cfg := &config.Config{
		CORSOrigins:    []string{"*"},
		Pagination:     config.Pagination{MinPage: 1, DefaultPage: 1, DefaultPageSize: 6, MaxPageSize: 100},
		StorageBackend: config.StorageLocal,
		MediaDir:       mediaDir,
		MediaURL:       "/media",
	}
	store := storage.NewLocalStore(mediaDir, cfg.MediaURL)
	auth := service.NewAuthService(db, "test-secret", time.Hour, nil)
	links, err := shorturl.NewCodec("test-salt", 5)
	require.NoError(t, err)

	r, err := router.SetupRouter(router.Dependencies{
		Config:      cfg,
		DB:          db,
		Auth:        auth,
		Users:       service.NewUserService(db, store),
		Recipes:     service.NewRecipeService(db, store),
		Tags:        service.NewTagService(db),
		Ingredients: service.NewIngredientService(db),
		Links:       links,
	})
	require.NoError(t, err)

	return &testApp{t: t, db: db, auth: auth, router: r}
}

func (a *testApp) token(user *models.User) string {
	a.t.Helper()
	token, err := a.auth.GenerateToken(user.ID)
	require.NoError(a.t, err)
	return token
}

func (a *testApp) do(method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Token "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

type page[T any] struct {
	Count    int64   `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

func requireStatus(t *testing.T, w *httptest.ResponseRecorder, status int) {
	t.Helper()
	require.Equal(t, status, w.Code, w.Body.String())
}

