package catalog

import (
	"context"
	"errors"
	"io"
	"testing"

	"cafe-ordering/apperr"
	"cafe-ordering/database"
	"cafe-ordering/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flakyStore fails the nth DeleteMenuItem call (1-based).
type flakyStore struct {
	*database.Memory
	failOn int
	calls  int
}

func (f *flakyStore) DeleteMenuItem(ctx context.Context, id string) error {
	f.calls++
	if f.calls == f.failOn {
		return errors.New("network unreachable")
	}
	return f.Memory.DeleteMenuItem(ctx, id)
}

func seed(t *testing.T, c *Catalog, items ...models.NewMenuItem) []models.MenuItem {
	t.Helper()
	var out []models.MenuItem
	for _, in := range items {
		it, err := c.AddItem(context.Background(), in)
		require.NoError(t, err)
		out = append(out, it)
	}
	return out
}

func pizzas() []models.NewMenuItem {
	return []models.NewMenuItem{
		{Name: "Margherita", Price: "250", Category: "pizza"},
		{Name: "Farmhouse", Price: "320", Category: "pizza"},
		{Name: "Paneer Tikka", Price: "340", Category: "pizza"},
		{Name: "Penne", Price: "280", Category: "pasta"},
	}
}

func TestAddItemValidation(t *testing.T) {
	c := New(database.NewMemory(), zerolog.New(io.Discard))
	ctx := context.Background()

	cases := []models.NewMenuItem{
		{Name: "", Price: "10"},
		{Name: "Tea", Price: ""},
		{Name: "Tea", Price: "ten"},
		{Name: "Tea", Price: "-1"},
		{Name: "Tea", Price: "NaN"},
		{Name: "Tea", Price: "10", Category: "brunch"},
	}
	for _, in := range cases {
		_, err := c.AddItem(ctx, in)
		assert.Equal(t, apperr.Validation, apperr.KindOf(err), "%+v", in)
	}

	it, err := c.AddItem(ctx, models.NewMenuItem{Name: " Masala Chai ", Price: "25.50", Category: "Hot Beverages"})
	require.NoError(t, err)
	assert.Equal(t, "Masala Chai", it.Name)
	assert.Equal(t, 25.5, it.Price)
	assert.Equal(t, models.HotBeverages, it.Category)
	assert.True(t, it.Available)
	assert.NotEmpty(t, it.ID)

	free, err := c.AddItem(ctx, models.NewMenuItem{Name: "Water", Price: "0"})
	require.NoError(t, err)
	assert.Equal(t, models.Breakfast, free.Category)
}

func TestListByCategoryOnlyAvailable(t *testing.T) {
	c := New(database.NewMemory(), zerolog.New(io.Discard))
	ctx := context.Background()
	items := seed(t, c, pizzas()...)
	require.NoError(t, c.SetAvailability(ctx, items[1].ID, false))

	got, err := c.ListByCategory(ctx, "pizza")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Margherita", got[0].Name)
	assert.Equal(t, "Paneer Tikka", got[1].Name)

	_, err = c.ListByCategory(ctx, "lunch")
	assert.Equal(t, apperr.Validation, apperr.KindOf(err))
}

func TestDeleteCategory(t *testing.T) {
	c := New(database.NewMemory(), zerolog.New(io.Discard))
	ctx := context.Background()
	seed(t, c, pizzas()...)

	_, err := c.DeleteCategory(ctx, "pizza", false)
	assert.ErrorIs(t, err, apperr.ErrConfirmationRequired)

	res, err := c.DeleteCategory(ctx, "pizza", true)
	require.NoError(t, err)
	assert.Equal(t, CategoryDeletion{Category: models.Pizza, Matched: 3, Deleted: 3}, res)

	left, err := c.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, left, 1)
	assert.Equal(t, models.Pasta, left[0].Category)
}

func TestDeleteCategoryPartialFailure(t *testing.T) {
	store := &flakyStore{Memory: database.NewMemory(), failOn: 2}
	c := New(store, zerolog.New(io.Discard))
	ctx := context.Background()
	items := seed(t, c, pizzas()...)

	res, err := c.DeleteCategory(ctx, "pizza", true)
	require.Error(t, err)
	assert.Equal(t, apperr.RemoteOperation, apperr.KindOf(err))
	assert.Equal(t, 2, res.Deleted)
	assert.Equal(t, []string{items[1].ID}, res.Failed)

	pizza := models.Pizza
	left, err := store.ListMenuItems(ctx, models.MenuFilter{Category: &pizza})
	require.NoError(t, err)
	require.Len(t, left, 1)
	assert.Equal(t, "Farmhouse", left[0].Name)
}

func TestDeleteCategoryRejectsUnknown(t *testing.T) {
	c := New(database.NewMemory(), zerolog.New(io.Discard))
	_, err := c.DeleteCategory(context.Background(), "drinks", true)
	assert.Equal(t, apperr.Validation, apperr.KindOf(err))
}

func TestDeleteItem(t *testing.T) {
	c := New(database.NewMemory(), zerolog.New(io.Discard))
	ctx := context.Background()
	items := seed(t, c, pizzas()[0])

	assert.ErrorIs(t, c.DeleteItem(ctx, items[0].ID, false), apperr.ErrConfirmationRequired)
	require.NoError(t, c.DeleteItem(ctx, items[0].ID, true))
	assert.True(t, apperr.IsNotFound(c.DeleteItem(ctx, items[0].ID, true)))
}

func TestCategoryCounts(t *testing.T) {
	c := New(database.NewMemory(), zerolog.New(io.Discard))
	seed(t, c, pizzas()...)

	counts, err := c.CategoryCounts(context.Background())
	require.NoError(t, err)
	require.Len(t, counts, len(models.Categories))

	byCat := map[models.Category]int{}
	for _, cc := range counts {
		byCat[cc.Category] = cc.Items
	}
	assert.Equal(t, 3, byCat[models.Pizza])
	assert.Equal(t, 1, byCat[models.Pasta])
	assert.Equal(t, 0, byCat[models.Cafe])
}
