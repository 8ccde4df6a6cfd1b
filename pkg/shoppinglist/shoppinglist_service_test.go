package shoppinglist

import (
	"context"
	"foodgram-backend/domain"
	"foodgram-backend/entities"
	"foodgram-backend/pkg/recipe"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&entities.User{},
		&entities.Tag{},
		&entities.Ingredient{},
		&entities.Recipe{},
		&entities.RecipeIngredient{},
		&entities.Favorite{},
		&entities.ShoppingCart{},
	))
	return db
}

func createUser(t *testing.T, db *gorm.DB, username string) *entities.User {
	t.Helper()
	account := &entities.User{
		ID:        uuid.New(),
		Username:  username,
		Email:     username + "@example.com",
		FirstName: "Test",
		LastName:  "User",
		Password:  "hash",
	}
	require.NoError(t, db.Create(account).Error)
	return account
}

func createIngredient(t *testing.T, db *gorm.DB, name, unit string) *entities.Ingredient {
	t.Helper()
	ingredient := &entities.Ingredient{ID: uuid.New(), Name: name, MeasurementUnit: unit}
	require.NoError(t, db.Create(ingredient).Error)
	return ingredient
}

func createRecipeWithLine(t *testing.T, db *gorm.DB, authorID uuid.UUID, name string, ingredientID uuid.UUID, amount int) *entities.Recipe {
	t.Helper()
	rec := &entities.Recipe{
		ID:          uuid.New(),
		AuthorID:    authorID,
		Name:        name,
		Text:        "test recipe",
		CookingTime: 10,
	}
	require.NoError(t, db.Create(rec).Error)
	require.NoError(t, db.Create(&entities.RecipeIngredient{
		ID:           uuid.New(),
		RecipeID:     rec.ID,
		IngredientID: ingredientID,
		Amount:       amount,
	}).Error)
	return rec
}

func addToCart(t *testing.T, db *gorm.DB, userID, recipeID uuid.UUID) {
	t.Helper()
	require.NoError(t, db.Create(&entities.ShoppingCart{
		ID:       uuid.New(),
		UserID:   userID,
		RecipeID: recipeID,
	}).Error)
}

func TestAggregateMergesByNameAndUnit(t *testing.T) {
	db := newTestDB(t)
	svc := NewShoppingListService(NewShoppingListRepository(db))
	buyer := createUser(t, db, "buyer")
	author := createUser(t, db, "chef")

	// two distinct catalog rows sharing name and unit fold into one group
	saltA := createIngredient(t, db, "Salt", "g")
	saltB := createIngredient(t, db, "Salt", "g")

	first := createRecipeWithLine(t, db, author.ID, "soup", saltA.ID, 5)
	second := createRecipeWithLine(t, db, author.ID, "stew", saltB.ID, 10)
	addToCart(t, db, buyer.ID, first.ID)
	addToCart(t, db, buyer.ID, second.ID)

	items, err := svc.Aggregate(context.Background(), buyer.ID.String())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, domain.ShoppingListItem{Name: "Salt", MeasurementUnit: "g", Total: 15}, items[0])
}

func TestAggregateKeepsUnitsApart(t *testing.T) {
	db := newTestDB(t)
	svc := NewShoppingListService(NewShoppingListRepository(db))
	buyer := createUser(t, db, "buyer")
	author := createUser(t, db, "chef")

	grams := createIngredient(t, db, "Sugar", "g")
	spoons := createIngredient(t, db, "Sugar", "tbsp")

	first := createRecipeWithLine(t, db, author.ID, "cake", grams.ID, 100)
	second := createRecipeWithLine(t, db, author.ID, "tea", spoons.ID, 2)
	addToCart(t, db, buyer.ID, first.ID)
	addToCart(t, db, buyer.ID, second.ID)

	items, err := svc.Aggregate(context.Background(), buyer.ID.String())
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, domain.ShoppingListItem{Name: "Sugar", MeasurementUnit: "g", Total: 100}, items[0])
	assert.Equal(t, domain.ShoppingListItem{Name: "Sugar", MeasurementUnit: "tbsp", Total: 2}, items[1])
}

func TestAggregateScopedToCartAndUser(t *testing.T) {
	db := newTestDB(t)
	svc := NewShoppingListService(NewShoppingListRepository(db))
	buyer := createUser(t, db, "buyer")
	other := createUser(t, db, "other")
	author := createUser(t, db, "chef")

	salt := createIngredient(t, db, "Salt", "g")
	inCart := createRecipeWithLine(t, db, author.ID, "soup", salt.ID, 5)
	notInCart := createRecipeWithLine(t, db, author.ID, "stew", salt.ID, 100)
	addToCart(t, db, buyer.ID, inCart.ID)
	addToCart(t, db, other.ID, notInCart.ID)

	items, err := svc.Aggregate(context.Background(), buyer.ID.String())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.EqualValues(t, 5, items[0].Total)
}

func TestAggregateExcludesDeletedRecipe(t *testing.T) {
	db := newTestDB(t)
	svc := NewShoppingListService(NewShoppingListRepository(db))
	buyer := createUser(t, db, "buyer")
	author := createUser(t, db, "chef")

	salt := createIngredient(t, db, "Salt", "g")
	kept := createRecipeWithLine(t, db, author.ID, "soup", salt.ID, 5)
	doomed := createRecipeWithLine(t, db, author.ID, "stew", salt.ID, 10)
	addToCart(t, db, buyer.ID, kept.ID)
	addToCart(t, db, buyer.ID, doomed.ID)

	recipeRepo := recipe.NewRecipeRepository(db)
	rec, err := recipeRepo.GetRecipeByID(context.Background(), doomed.ID.String())
	require.NoError(t, err)
	require.NoError(t, recipeRepo.DeleteRecipe(context.Background(), rec))

	items, err := svc.Aggregate(context.Background(), buyer.ID.String())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.EqualValues(t, 5, items[0].Total)
}

func TestRenderFormat(t *testing.T) {
	db := newTestDB(t)
	svc := NewShoppingListService(NewShoppingListRepository(db))
	buyer := createUser(t, db, "buyer")
	author := createUser(t, db, "chef")

	flour := createIngredient(t, db, "Flour", "g")
	salt := createIngredient(t, db, "Salt", "g")
	first := createRecipeWithLine(t, db, author.ID, "bread", flour.ID, 500)
	second := createRecipeWithLine(t, db, author.ID, "soup", salt.ID, 5)
	addToCart(t, db, buyer.ID, first.ID)
	addToCart(t, db, buyer.ID, second.ID)

	text, err := svc.Render(context.Background(), buyer.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "Shopping list:\n\nFlour - 500, g\nSalt - 5, g\n", text)
}

func TestRenderEmptyCart(t *testing.T) {
	db := newTestDB(t)
	svc := NewShoppingListService(NewShoppingListRepository(db))
	buyer := createUser(t, db, "buyer")

	text, err := svc.Render(context.Background(), buyer.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "Shopping list:\n\n", text)
}
