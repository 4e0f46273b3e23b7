package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tasaronina/MyDiary/internal/models"
)

var testSeeds = []models.AdviceItem{
	{Title: "Blood pressure", Text: "Measure morning and evening."},
	{Title: "Sleep", Text: "Seven to eight hours."},
	{Title: "Walking", Text: "Twenty minutes a day."},
}

func TestEnsureCategory_Idempotent(t *testing.T) {
	ctx := context.Background()
	db := createTestDB(t)

	id1, err := db.EnsureCategory(ctx, "General")
	require.NoError(t, err)
	assert.Positive(t, id1)

	id2, err := db.EnsureCategory(ctx, "General")
	require.NoError(t, err)
	assert.Equal(t, id1, id2)

	other, err := db.EnsureCategory(ctx, "Nutrition")
	require.NoError(t, err)
	assert.NotEqual(t, id1, other)

	cats, err := db.ListCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, cats, 2)
}

func TestGetCategory_Missing(t *testing.T) {
	db := createTestDB(t)
	c, err := db.GetCategory(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, c)
}

func TestSeedIfEmpty_OnlyOnce(t *testing.T) {
	ctx := context.Background()
	db := createTestDB(t)
	cat, err := db.EnsureCategory(ctx, "General")
	require.NoError(t, err)

	inserted, err := db.SeedIfEmpty(ctx, cat, testSeeds)
	require.NoError(t, err)
	assert.True(t, inserted)

	inserted, err = db.SeedIfEmpty(ctx, cat, testSeeds)
	require.NoError(t, err)
	assert.False(t, inserted)

	items, err := db.ListByCategory(ctx, cat)
	require.NoError(t, err)
	require.Len(t, items, len(testSeeds))
	for i, it := range items {
		assert.Equal(t, testSeeds[i].Title, it.Title)
		assert.Equal(t, testSeeds[i].Text, it.Text)
		assert.Equal(t, cat, it.CategoryID)
	}
}

func TestSeedIfEmpty_SkipsNonEmptyCategory(t *testing.T) {
	ctx := context.Background()
	db := createTestDB(t)
	cat, err := db.EnsureCategory(ctx, "General")
	require.NoError(t, err)
	_, err = db.InsertAdvice(ctx, "Mine", "user text", cat)
	require.NoError(t, err)

	inserted, err := db.SeedIfEmpty(ctx, cat, testSeeds)
	require.NoError(t, err)
	assert.False(t, inserted)

	items, err := db.ListByCategory(ctx, cat)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestSeedIfEmpty_UnknownCategory(t *testing.T) {
	db := createTestDB(t)
	_, err := db.SeedIfEmpty(context.Background(), 999, testSeeds)
	assert.ErrorIs(t, err, ErrForeignKey)
}

func TestInsertAdvice_ForeignKeyViolation(t *testing.T) {
	ctx := context.Background()
	db := createTestDB(t)
	cat, err := db.EnsureCategory(ctx, "General")
	require.NoError(t, err)
	_, err = db.InsertAdvice(ctx, "kept", "kept", cat)
	require.NoError(t, err)

	_, err = db.InsertAdvice(ctx, "orphan", "no category", cat+100)
	require.ErrorIs(t, err, ErrForeignKey)

	all, err := db.ListAdvice(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "kept", all[0].Title)
}

func TestInsertAdvices_AllOrNothing(t *testing.T) {
	ctx := context.Background()
	db := createTestDB(t)
	cat, err := db.EnsureCategory(ctx, "General")
	require.NoError(t, err)

	ids, err := db.InsertAdvices(ctx, []models.AdviceItem{
		{Title: "a", Text: "a", CategoryID: cat},
		{Title: "b", Text: "b", CategoryID: cat},
	})
	require.NoError(t, err)
	require.Len(t, ids, 2)
	assert.Less(t, ids[0], ids[1])

	_, err = db.InsertAdvices(ctx, []models.AdviceItem{
		{Title: "c", Text: "c", CategoryID: cat},
		{Title: "d", Text: "d", CategoryID: cat + 7},
	})
	require.ErrorIs(t, err, ErrForeignKey)

	items, err := db.ListByCategory(ctx, cat)
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestUpdateAdvice(t *testing.T) {
	ctx := context.Background()
	db := createTestDB(t)
	cat, err := db.EnsureCategory(ctx, "General")
	require.NoError(t, err)
	id, err := db.InsertAdvice(ctx, "old", "old text", cat)
	require.NoError(t, err)

	ok, err := db.UpdateAdvice(ctx, models.AdviceItem{ID: id, Title: "new", Text: "new text", CategoryID: cat})
	require.NoError(t, err)
	assert.True(t, ok)

	got, err := db.GetAdvice(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, models.AdviceItem{ID: id, Title: "new", Text: "new text", CategoryID: cat}, *got)
}

func TestUpdateAdvice_MissingRowIsNoop(t *testing.T) {
	ctx := context.Background()
	db := createTestDB(t)
	cat, err := db.EnsureCategory(ctx, "General")
	require.NoError(t, err)

	ok, err := db.UpdateAdvice(ctx, models.AdviceItem{ID: 42, Title: "x", Text: "y", CategoryID: cat})
	require.NoError(t, err)
	assert.False(t, ok)

	all, err := db.ListAdvice(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestUpdateAdvice_CategoryImmutable(t *testing.T) {
	ctx := context.Background()
	db := createTestDB(t)
	a, err := db.EnsureCategory(ctx, "A")
	require.NoError(t, err)
	b, err := db.EnsureCategory(ctx, "B")
	require.NoError(t, err)
	id, err := db.InsertAdvice(ctx, "t", "x", a)
	require.NoError(t, err)

	ok, err := db.UpdateAdvice(ctx, models.AdviceItem{ID: id, Title: "moved?", Text: "x", CategoryID: b})
	require.NoError(t, err)
	assert.False(t, ok)

	got, err := db.GetAdvice(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, a, got.CategoryID)
	assert.Equal(t, "t", got.Title)
}

func TestDeleteAdvice_Idempotent(t *testing.T) {
	ctx := context.Background()
	db := createTestDB(t)
	cat, err := db.EnsureCategory(ctx, "General")
	require.NoError(t, err)
	id, err := db.InsertAdvice(ctx, "t", "x", cat)
	require.NoError(t, err)

	item := models.AdviceItem{ID: id, CategoryID: cat}
	ok, err := db.DeleteAdvice(ctx, item)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = db.DeleteAdvice(ctx, item)
	require.NoError(t, err)
	assert.False(t, ok)

	got, err := db.GetAdvice(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestDeleteCategory_Cascades(t *testing.T) {
	ctx := context.Background()
	db := createTestDB(t)
	gone, err := db.EnsureCategory(ctx, "Gone")
	require.NoError(t, err)
	kept, err := db.EnsureCategory(ctx, "Kept")
	require.NoError(t, err)

	_, err = db.SeedIfEmpty(ctx, gone, testSeeds)
	require.NoError(t, err)
	_, err = db.InsertAdvice(ctx, "stay", "stay", kept)
	require.NoError(t, err)

	ok, err := db.DeleteCategory(ctx, gone)
	require.NoError(t, err)
	assert.True(t, ok)

	items, err := db.ListByCategory(ctx, gone)
	require.NoError(t, err)
	assert.Empty(t, items)

	all, err := db.ListAdvice(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, kept, all[0].CategoryID)
}

func TestClearData(t *testing.T) {
	ctx := context.Background()
	db := createTestDB(t)
	cat, err := db.EnsureCategory(ctx, "General")
	require.NoError(t, err)
	_, err = db.SeedIfEmpty(ctx, cat, testSeeds)
	require.NoError(t, err)

	require.NoError(t, db.ClearData(ctx))

	cats, err := db.ListCategories(ctx)
	require.NoError(t, err)
	assert.Empty(t, cats)
	all, err := db.ListAdvice(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}
