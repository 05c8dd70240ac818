package database_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lenarsag/foodgram/backend/internal/database"
	"github.com/lenarsag/foodgram/backend/internal/models"
	"github.com/lenarsag/foodgram/backend/internal/testhelpers"
)

const catalogue = `
tags:
  - name: Breakfast
    slug: breakfast
  - name: Dinner
    slug: dinner
ingredients:
  - name: flour
    measurement_unit: g
  - name: milk
    measurement_unit: ml
  - name: milk
    measurement_unit: cup
`

func TestSeedReferenceIsIdempotent(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	path := filepath.Join(t.TempDir(), "reference.yaml")
	require.NoError(t, os.WriteFile(path, []byte(catalogue), 0o600))

	data, err := database.LoadReferenceData(path)
	require.NoError(t, err)
	require.Len(t, data.Tags, 2)
	assert.Equal(t, "ml", data.Ingredients[1].Unit)

	tags, ingredients, err := database.SeedReference(context.Background(), db, data)
	require.NoError(t, err)
	assert.EqualValues(t, 2, tags)
	assert.EqualValues(t, 3, ingredients)

	tags, ingredients, err = database.SeedReference(context.Background(), db, data)
	require.NoError(t, err)
	assert.Zero(t, tags)
	assert.Zero(t, ingredients)

	var count int64
	require.NoError(t, db.Model(&models.Ingredient{}).Count(&count).Error)
	assert.EqualValues(t, 3, count)
}

func TestLoadReferenceDataErrors(t *testing.T) {
	_, err := database.LoadReferenceData(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tags: [unclosed"), 0o600))
	_, err = database.LoadReferenceData(path)
	assert.Error(t, err)
}
