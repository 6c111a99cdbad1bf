package persistent

import (
	"context"
	"testing"

	"rankings-admin/pkg/logger"
	"rankings-admin/pkg/slug"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeed_ImportsDocument(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	doc, err := NewJSONSource(writeFixture(t, rankingsFixture)).Load(ctx)
	require.NoError(t, err)

	result, err := Seed(ctx, db, doc, slug.MustNewGenerator(), fixedNow)
	require.NoError(t, err)
	assert.Equal(t, SeedResult{Rankings: 2, Items: 3}, result)

	rankings := NewRankingRepository(db, slug.MustNewGenerator(), logger.NewNop())
	films, err := rankings.FindBySlug(ctx, "best-films-abc123")
	require.NoError(t, err)
	require.NotNil(t, films)
	assert.NotEqual(t, "1", films.ID, "non-uuid ids are replaced")
	assert.True(t, films.AllowSuggestions)

	items, err := NewItemRepository(db, logger.NewNop()).ListByRanking(ctx, films.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Heat", "Alien"}, titles(items))
	assert.Equal(t, []int{1, 2}, positions(items))
}

func TestSeed_SecondRunSkipsExistingRows(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	doc, err := NewJSONSource(writeFixture(t, `{"rankings": [
		{"id": "0f8e2a9c-5a7d-4d5b-9a36-2f0f3c1f1a11", "title": "Best Films", "slug": "best-films-abc123", "status": "published"}
	]}`)).Load(ctx)
	require.NoError(t, err)

	first, err := Seed(ctx, db, doc, slug.MustNewGenerator(), fixedNow)
	require.NoError(t, err)
	assert.Equal(t, 1, first.Rankings)

	second, err := Seed(ctx, db, doc, slug.MustNewGenerator(), fixedNow)
	require.NoError(t, err)
	assert.Equal(t, SeedResult{Skipped: 1}, second)

	all, err := NewRankingRepository(db, slug.MustNewGenerator(), logger.NewNop()).FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.True(t, all[0].CycleEndDate.Equal(fixedNow.AddDate(0, 0, 7)), "missing cycle end defaults to a week")
}

func TestSeed_NormalizesInvalidFields(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	doc, err := NewJSONSource(writeFixture(t, `[
		{"id": "x", "title": "Odd One!", "slug": "Not A Slug", "status": "deleted"},
		{"id": "y", "title": ""}
	]`)).Load(ctx)
	require.NoError(t, err)

	result, err := Seed(ctx, db, doc, slug.MustNewGenerator(), fixedNow)
	require.NoError(t, err)
	assert.Equal(t, SeedResult{Rankings: 1, Skipped: 1}, result)

	all, err := NewRankingRepository(db, slug.MustNewGenerator(), logger.NewNop()).FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Regexp(t, `^odd-one-[a-z0-9]+$`, all[0].Slug)
	assert.Equal(t, "draft", string(all[0].Status))
}
