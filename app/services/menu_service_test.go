package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/rasoi/app/models"
	"github.com/shashiranjanraj/rasoi/app/policy"
)

type menuFixture struct {
	menu    *MenuService
	owner   policy.Caller
	service models.CateringService
}

func newMenuFixture(t *testing.T) *menuFixture {
	t.Helper()
	services := newFakeServiceRepo()
	categories := newFakeCategoryRepo()
	items := newFakeItemRepo()

	catalog := NewCateringService(services, categories, items)
	owner := manager()

	svc, err := catalog.Create(context.Background(), owner, ServiceInput{Name: "Sunrise", Location: "Pune"})
	require.NoError(t, err)

	return &menuFixture{
		menu:    NewMenuService(services, categories, items),
		owner:   owner,
		service: svc,
	}
}

func (f *menuFixture) addCategory(t *testing.T, name string) models.MenuCategory {
	t.Helper()
	category, err := f.menu.AddCategory(context.Background(), f.owner, CategoryInput{
		CateringServiceID: f.service.ID.Hex(),
		Name:              name,
	})
	require.NoError(t, err)
	return category
}

func (f *menuFixture) addItem(t *testing.T, category models.MenuCategory, name string, price float64) models.MenuItem {
	t.Helper()
	item, err := f.menu.AddItem(context.Background(), f.owner, ItemInput{
		CategoryID:        category.ID.Hex(),
		CateringServiceID: f.service.ID.Hex(),
		Name:              name,
		Price:             price,
	})
	require.NoError(t, err)
	return item
}

func TestAddCategoryValidatesLabel(t *testing.T) {
	f := newMenuFixture(t)

	_, err := f.menu.AddCategory(context.Background(), f.owner, CategoryInput{
		CateringServiceID: f.service.ID.Hex(),
		Name:              "Spicy",
	})
	svcErr := requireKind(t, err, KindValidation)
	assert.Equal(t, "Invalid category. Use 'Veg' or 'Non-Veg'", svcErr.Message)

	category := f.addCategory(t, "Veg")
	assert.Equal(t, models.CategoryVeg, category.Name)

	out, err := f.menu.ListCategories(context.Background(), f.service.ID.Hex())
	require.NoError(t, err)
	assert.Len(t, out, 1)
}

func TestAddCategoryOwnershipAndExistence(t *testing.T) {
	f := newMenuFixture(t)
	ctx := context.Background()

	_, err := f.menu.AddCategory(ctx, f.owner, CategoryInput{
		CateringServiceID: primitive.NewObjectID().Hex(),
		Name:              "Veg",
	})
	requireKind(t, err, KindNotFound)

	_, err = f.menu.AddCategory(ctx, manager(), CategoryInput{
		CateringServiceID: f.service.ID.Hex(),
		Name:              "Veg",
	})
	requireKind(t, err, KindForbidden)
}

func TestDeleteCategoryKeepsItems(t *testing.T) {
	f := newMenuFixture(t)
	ctx := context.Background()

	category := f.addCategory(t, "Veg")
	item := f.addItem(t, category, "Biryani", 250)

	err := f.menu.DeleteCategory(ctx, manager(), category.ID.Hex())
	requireKind(t, err, KindForbidden)

	require.NoError(t, f.menu.DeleteCategory(ctx, f.owner, category.ID.Hex()))

	// The item survives with a dangling category reference.
	items, err := f.menu.ItemsByCategory(ctx, category.ID.Hex())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, item.ID, items[0].ID)

	err = f.menu.DeleteCategory(ctx, f.owner, category.ID.Hex())
	requireKind(t, err, KindNotFound)
}

func TestAddItemChecksCategoryAndOwnership(t *testing.T) {
	f := newMenuFixture(t)
	ctx := context.Background()
	category := f.addCategory(t, "Veg")

	_, err := f.menu.AddItem(ctx, f.owner, ItemInput{
		CategoryID:        primitive.NewObjectID().Hex(),
		CateringServiceID: f.service.ID.Hex(),
		Name:              "Biryani",
		Price:             250,
	})
	svcErr := requireKind(t, err, KindNotFound)
	assert.Equal(t, "Category not found", svcErr.Message)

	_, err = f.menu.AddItem(ctx, manager(), ItemInput{
		CategoryID:        category.ID.Hex(),
		CateringServiceID: f.service.ID.Hex(),
		Name:              "Biryani",
		Price:             250,
	})
	requireKind(t, err, KindForbidden)
}

func TestUpdateItemRequiresResubmittedServiceID(t *testing.T) {
	f := newMenuFixture(t)
	ctx := context.Background()
	category := f.addCategory(t, "Veg")
	item := f.addItem(t, category, "Biryani", 250)

	// Even the owning manager is rejected without the stored service id.
	_, err := f.menu.UpdateItem(ctx, f.owner, item.ID.Hex(), UpdateItemInput{
		CateringServiceID: primitive.NewObjectID().Hex(),
		Name:              "Veg Biryani",
	})
	svcErr := requireKind(t, err, KindForbidden)
	assert.Equal(t, "Not authorized to update this menu item", svcErr.Message)

	newPrice := 300.0
	updated, err := f.menu.UpdateItem(ctx, f.owner, item.ID.Hex(), UpdateItemInput{
		CateringServiceID: f.service.ID.Hex(),
		Name:              "Veg Biryani",
		Price:             &newPrice,
	})
	require.NoError(t, err)
	assert.Equal(t, "Veg Biryani", updated.Name)
	assert.Equal(t, 300.0, updated.Price)

	// Right confirmation value but wrong manager still fails.
	_, err = f.menu.UpdateItem(ctx, manager(), item.ID.Hex(), UpdateItemInput{
		CateringServiceID: f.service.ID.Hex(),
		Name:              "Hijacked",
	})
	requireKind(t, err, KindForbidden)
}

func TestDeleteItemOwnership(t *testing.T) {
	f := newMenuFixture(t)
	ctx := context.Background()
	category := f.addCategory(t, "Veg")
	item := f.addItem(t, category, "Biryani", 250)

	err := f.menu.DeleteItem(ctx, manager(), item.ID.Hex())
	requireKind(t, err, KindForbidden)

	require.NoError(t, f.menu.DeleteItem(ctx, f.owner, item.ID.Hex()))

	err = f.menu.DeleteItem(ctx, f.owner, item.ID.Hex())
	svcErr := requireKind(t, err, KindNotFound)
	assert.Equal(t, "Menu item not found", svcErr.Message)
}

func TestListItemsPriceFilters(t *testing.T) {
	f := newMenuFixture(t)
	ctx := context.Background()
	category := f.addCategory(t, "Veg")
	f.addItem(t, category, "Biryani", 250)
	f.addItem(t, category, "Paneer", 180)
	f.addItem(t, category, "Thali", 400)

	min, max := 200.0, 300.0
	out, err := f.menu.ListItems(ctx, ItemQuery{MinPrice: &min, MaxPrice: &max})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Biryani", out[0].Name)

	neg := -1.0
	_, err = f.menu.ListItems(ctx, ItemQuery{MinPrice: &neg})
	svcErr := requireKind(t, err, KindValidation)
	assert.Equal(t, "Invalid price range", svcErr.Message)

	lo, hi := 300.0, 200.0
	_, err = f.menu.ListItems(ctx, ItemQuery{MinPrice: &lo, MaxPrice: &hi})
	requireKind(t, err, KindValidation)

	_, err = f.menu.ListItems(ctx, ItemQuery{CateringServiceID: "nope"})
	requireKind(t, err, KindValidation)
}
