package api_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lenarsag/foodgram/backend/internal/testhelpers"
	"github.com/lenarsag/foodgram/backend/internal/types"
)

func TestTagsAndIngredients(t *testing.T) {
	app := newTestApp(t)
	breakfast := testhelpers.CreateTag(t, app.db, "breakfast")
	testhelpers.CreateTag(t, app.db, "lunch")
	testhelpers.CreateIngredient(t, app.db, "sugar", "g")
	salt := testhelpers.CreateIngredient(t, app.db, "salt", "g")
	testhelpers.CreateIngredient(t, app.db, "butter", "g")

	w := app.do(http.MethodGet, "/api/tags", nil, "")
	requireStatus(t, w, http.StatusOK)
	assert.Len(t, decode[[]types.TagResponse](t, w), 2)

	w = app.do(http.MethodGet, fmt.Sprintf("/api/tags/%d", breakfast.ID), nil, "")
	requireStatus(t, w, http.StatusOK)
	assert.Equal(t, types.TagResponse{ID: breakfast.ID, Name: "Tag breakfast", Slug: "breakfast"}, decode[types.TagResponse](t, w))
	requireStatus(t, app.do(http.MethodGet, "/api/tags/999", nil, ""), http.StatusNotFound)

	w = app.do(http.MethodGet, "/api/ingredients?name=s", nil, "")
	requireStatus(t, w, http.StatusOK)
	got := decode[[]types.IngredientResponse](t, w)
	require.Len(t, got, 2)
	assert.Equal(t, "salt", got[0].Name)
	assert.Equal(t, "sugar", got[1].Name)

	w = app.do(http.MethodGet, fmt.Sprintf("/api/ingredients/%d", salt.ID), nil, "")
	requireStatus(t, w, http.StatusOK)
	assert.Equal(t, "salt", decode[types.IngredientResponse](t, w).Name)
}

func TestHealthAndUnknownRoutes(t *testing.T) {
	app := newTestApp(t)

	w := app.do(http.MethodGet, "/health", nil, "")
	requireStatus(t, w, http.StatusOK)
	assert.Equal(t, "ok", decode[map[string]string](t, w)["status"])

	w = app.do(http.MethodGet, "/api/nothing-here", nil, "")
	requireStatus(t, w, http.StatusNotFound)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}
