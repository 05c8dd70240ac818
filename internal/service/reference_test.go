package service

import (
	"context"
	"testing"

	"github.com/lenarsag/foodgram/backend/internal/testhelpers"
	"github.com/lenarsag/foodgram/backend/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTags(t *testing.T) {
	env := setupServices(t)
	svc := NewTagService(env.db)
	lunch := testhelpers.CreateTag(t, env.db, "lunch")
	testhelpers.CreateTag(t, env.db, "dinner")

	tags, err := svc.ListTags(context.Background())
	require.NoError(t, err)
	require.Len(t, tags, 2)
	assert.Equal(t, "lunch", tags[0].Slug)

	got, err := svc.GetTag(context.Background(), lunch.ID)
	require.NoError(t, err)
	assert.Equal(t, types.TagResponse{ID: lunch.ID, Name: "Tag lunch", Slug: "lunch"}, *got)

	_, err = svc.GetTag(context.Background(), 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestIngredientPrefixSearch(t *testing.T) {
	env := setupServices(t)
	svc := NewIngredientService(env.db)
	testhelpers.CreateIngredient(t, env.db, "Sugar", "g")
	testhelpers.CreateIngredient(t, env.db, "salt", "g")
	testhelpers.CreateIngredient(t, env.db, "sea salt", "g")
	testhelpers.CreateIngredient(t, env.db, "50%_cream", "ml")

	names := func(items []types.IngredientResponse) []string {
		out := make([]string, len(items))
		for i, it := range items {
			out[i] = it.Name
		}
		return out
	}

	all, err := svc.ListIngredients(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, all, 4)

	got, err := svc.ListIngredients(context.Background(), "S")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Sugar", "salt", "sea salt"}, names(got))

	got, err = svc.ListIngredients(context.Background(), "salt")
	require.NoError(t, err)
	assert.Equal(t, []string{"salt"}, names(got))

	// wildcards in the prefix match literally
	got, err = svc.ListIngredients(context.Background(), "50%_")
	require.NoError(t, err)
	assert.Equal(t, []string{"50%_cream"}, names(got))
	got, err = svc.ListIngredients(context.Background(), "%")
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = svc.GetIngredient(context.Background(), 999)
	assert.ErrorIs(t, err, ErrNotFound)
}
