package service

import (
	"testing"

	"github.com/bigsofa/bigsofa-backend/internal/app/model"
	"github.com/bigsofa/bigsofa-backend/internal/app/repository"
	"github.com/bigsofa/bigsofa-backend/internal/catalog"
	"github.com/bigsofa/bigsofa-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupFurnitureServiceTest(t *testing.T) (FurnitureService, *catalog.Loader, *gorm.DB, *model.Category) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	furnitureRepo := repository.NewFurnitureRepository(testDB)
	categoryRepo := repository.NewCategoryRepository(testDB)
	loader := catalog.NewLoader(func(q catalog.Query) ([]model.FurnitureItem, error) {
		return furnitureRepo.FindAll()
	})
	furnitureService := NewFurnitureService(furnitureRepo, categoryRepo, loader)

	category := &model.Category{Name: "Bedroom"}
	testDB.Create(category)

	return furnitureService, loader, testDB, category
}

func validInput(categoryID uint) FurnitureInput {
	return FurnitureInput{
		Name:        "Teak Bed Frame",
		Description: "King size, solid teak",
		PriceCents:  8500000,
		CategoryID:  categoryID,
		ImageURL:    "/uploads/bed.jpg",
	}
}

func TestFurnitureService_CreateItem(t *testing.T) {
	furnitureService, _, _, category := setupFurnitureServiceTest(t)

	item, err := furnitureService.CreateItem(validInput(category.ID))
	require.NoError(t, err)
	require.NotNil(t, item)
	assert.NotZero(t, item.ID)
	assert.Equal(t, "Teak Bed Frame", item.Name)
	assert.Equal(t, int64(8500000), item.PriceCents)
	assert.Equal(t, "Bedroom", item.Category.Name)
}

func TestFurnitureService_CreateItem_UnknownCategory(t *testing.T) {
	furnitureService, _, _, _ := setupFurnitureServiceTest(t)

	item, err := furnitureService.CreateItem(validInput(999))
	assert.ErrorIs(t, err, ErrCategoryNotFound)
	assert.Nil(t, item)
}

func TestFurnitureService_CreateItem_InvalidPrice(t *testing.T) {
	furnitureService, _, _, category := setupFurnitureServiceTest(t)

	input := validInput(category.ID)
	input.PriceCents = 0

	item, err := furnitureService.CreateItem(input)
	assert.ErrorIs(t, err, ErrInvalidPrice)
	assert.Nil(t, item)
}

func TestFurnitureService_CreateItem_InvalidatesCatalog(t *testing.T) {
	furnitureService, loader, _, category := setupFurnitureServiceTest(t)

	_, err := loader.Load(catalog.Query{})
	require.NoError(t, err)
	require.NotNil(t, loader.Current(0))

	_, err = furnitureService.CreateItem(validInput(category.ID))
	require.NoError(t, err)

	assert.Nil(t, loader.Current(0))
}

func TestFurnitureService_UpdateItem_PreservesImageWhenEmpty(t *testing.T) {
	furnitureService, _, _, category := setupFurnitureServiceTest(t)

	item, err := furnitureService.CreateItem(validInput(category.ID))
	require.NoError(t, err)

	update := validInput(category.ID)
	update.Name = "Teak Bed Frame XL"
	update.ImageURL = ""

	updated, err := furnitureService.UpdateItem(item.ID, update)
	require.NoError(t, err)
	assert.Equal(t, "Teak Bed Frame XL", updated.Name)
	assert.Equal(t, "/uploads/bed.jpg", updated.ImageURL)
}

func TestFurnitureService_UpdateItem_ReplacesImageWhenProvided(t *testing.T) {
	furnitureService, _, _, category := setupFurnitureServiceTest(t)

	item, err := furnitureService.CreateItem(validInput(category.ID))
	require.NoError(t, err)

	update := validInput(category.ID)
	update.ImageURL = "/uploads/bed-v2.jpg"

	updated, err := furnitureService.UpdateItem(item.ID, update)
	require.NoError(t, err)
	assert.Equal(t, "/uploads/bed-v2.jpg", updated.ImageURL)
}

func TestFurnitureService_UpdateItem_NotFound(t *testing.T) {
	furnitureService, _, _, category := setupFurnitureServiceTest(t)

	item, err := furnitureService.UpdateItem(999, validInput(category.ID))
	assert.ErrorIs(t, err, ErrItemNotFound)
	assert.Nil(t, item)
}

func TestFurnitureService_DeleteItem(t *testing.T) {
	furnitureService, _, _, category := setupFurnitureServiceTest(t)

	item, err := furnitureService.CreateItem(validInput(category.ID))
	require.NoError(t, err)

	require.NoError(t, furnitureService.DeleteItem(item.ID))

	_, err = furnitureService.GetItem(item.ID)
	assert.ErrorIs(t, err, ErrItemNotFound)

	assert.ErrorIs(t, furnitureService.DeleteItem(item.ID), ErrItemNotFound)
}
