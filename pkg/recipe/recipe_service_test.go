package recipe

import (
	"context"
	"foodgram-backend/domain"
	"foodgram-backend/entities"
	"foodgram-backend/pkg/catalog"
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
		&entities.Follow{},
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

func createTag(t *testing.T, db *gorm.DB, name, color, slug string) *entities.Tag {
	t.Helper()
	tag := &entities.Tag{ID: uuid.New(), Name: name, Color: color, Slug: slug}
	require.NoError(t, db.Create(tag).Error)
	return tag
}

func createIngredient(t *testing.T, db *gorm.DB, name, unit string) *entities.Ingredient {
	t.Helper()
	ingredient := &entities.Ingredient{ID: uuid.New(), Name: name, MeasurementUnit: unit}
	require.NoError(t, db.Create(ingredient).Error)
	return ingredient
}

func newService(db *gorm.DB) RecipeService {
	return NewRecipeService(NewRecipeRepository(db), catalog.NewCatalogRepository(db), nil)
}

func countRows(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(model).Count(&count).Error)
	return count
}

func TestCreateRecipeReadBack(t *testing.T) {
	db := newTestDB(t)
	svc := newService(db)
	author := createUser(t, db, "chef")
	breakfast := createTag(t, db, "breakfast", "#E26C2D", "breakfast")
	dinner := createTag(t, db, "dinner", "#2DE26C", "dinner")
	salt := createIngredient(t, db, "Salt", "g")
	flour := createIngredient(t, db, "Flour", "g")

	detail, err := svc.CreateRecipe(context.Background(), domain.CreateRecipeRequest{
		Name:        "Pancakes",
		Text:        "Mix and fry",
		CookingTime: 20,
		Tags:        []string{breakfast.ID.String(), dinner.ID.String()},
		Ingredients: []domain.IngredientLineRequest{
			{ID: flour.ID.String(), Amount: 200},
			{ID: salt.ID.String(), Amount: 5},
		},
	}, author.ID.String())
	require.NoError(t, err)

	assert.Equal(t, "Pancakes", detail.Name)
	assert.Equal(t, 20, detail.CookingTime)
	assert.Equal(t, "chef", detail.Author.Username)
	assert.False(t, detail.IsFavorited)
	assert.False(t, detail.IsInShoppingCart)

	lines := map[string]int{}
	for _, line := range detail.Ingredients {
		lines[line.ID] = line.Amount
	}
	assert.Equal(t, map[string]int{
		flour.ID.String(): 200,
		salt.ID.String():  5,
	}, lines)

	slugs := map[string]bool{}
	for _, tag := range detail.Tags {
		slugs[tag.Slug] = true
	}
	assert.Equal(t, map[string]bool{"breakfast": true, "dinner": true}, slugs)

	ingredientNames := map[string]string{}
	for _, line := range detail.Ingredients {
		ingredientNames[line.Name] = line.MeasurementUnit
	}
	assert.Equal(t, "g", ingredientNames["Salt"])
}

func TestCreateRecipeDuplicateIngredient(t *testing.T) {
	db := newTestDB(t)
	svc := newService(db)
	author := createUser(t, db, "chef")
	salt := createIngredient(t, db, "Salt", "g")

	_, err := svc.CreateRecipe(context.Background(), domain.CreateRecipeRequest{
		Name:        "Salty",
		Text:        "Too much salt",
		CookingTime: 5,
		Ingredients: []domain.IngredientLineRequest{
			{ID: salt.ID.String(), Amount: 5},
			{ID: salt.ID.String(), Amount: 10},
		},
	}, author.ID.String())
	assert.ErrorIs(t, err, domain.ErrDuplicateIngredient)

	assert.Zero(t, countRows(t, db, &entities.Recipe{}))
	assert.Zero(t, countRows(t, db, &entities.RecipeIngredient{}))
}

func TestCreateRecipeInvalidCookingTime(t *testing.T) {
	db := newTestDB(t)
	svc := newService(db)
	author := createUser(t, db, "chef")
	salt := createIngredient(t, db, "Salt", "g")

	_, err := svc.CreateRecipe(context.Background(), domain.CreateRecipeRequest{
		Name:        "Raw",
		Text:        "No cooking",
		CookingTime: 0,
		Ingredients: []domain.IngredientLineRequest{{ID: salt.ID.String(), Amount: 5}},
	}, author.ID.String())
	assert.ErrorIs(t, err, domain.ErrInvalidCookingTime)
	assert.Zero(t, countRows(t, db, &entities.Recipe{}))
}

func TestCreateRecipeInvalidAmount(t *testing.T) {
	db := newTestDB(t)
	svc := newService(db)
	author := createUser(t, db, "chef")
	salt := createIngredient(t, db, "Salt", "g")

	_, err := svc.CreateRecipe(context.Background(), domain.CreateRecipeRequest{
		Name:        "Nothing",
		Text:        "Empty",
		CookingTime: 5,
		Ingredients: []domain.IngredientLineRequest{{ID: salt.ID.String(), Amount: 0}},
	}, author.ID.String())
	assert.ErrorIs(t, err, domain.ErrInvalidIngredientAmount)
	assert.Zero(t, countRows(t, db, &entities.Recipe{}))
}

func TestCreateRecipeUnknownTag(t *testing.T) {
	db := newTestDB(t)
	svc := newService(db)
	author := createUser(t, db, "chef")
	salt := createIngredient(t, db, "Salt", "g")

	_, err := svc.CreateRecipe(context.Background(), domain.CreateRecipeRequest{
		Name:        "Tagless",
		Text:        "Missing tag",
		CookingTime: 5,
		Tags:        []string{uuid.NewString()},
		Ingredients: []domain.IngredientLineRequest{{ID: salt.ID.String(), Amount: 5}},
	}, author.ID.String())
	assert.ErrorIs(t, err, domain.ErrTagNotFound)
	assert.Zero(t, countRows(t, db, &entities.Recipe{}))
}

func TestCreateRecipeUnknownIngredient(t *testing.T) {
	db := newTestDB(t)
	svc := newService(db)
	author := createUser(t, db, "chef")

	_, err := svc.CreateRecipe(context.Background(), domain.CreateRecipeRequest{
		Name:        "Ghost",
		Text:        "Missing ingredient",
		CookingTime: 5,
		Ingredients: []domain.IngredientLineRequest{{ID: uuid.NewString(), Amount: 5}},
	}, author.ID.String())
	assert.ErrorIs(t, err, domain.ErrIngredientNotFound)
	assert.Zero(t, countRows(t, db, &entities.Recipe{}))
	assert.Zero(t, countRows(t, db, &entities.RecipeIngredient{}))
}

func TestUpdateRecipeReplacesLinesAndTags(t *testing.T) {
	db := newTestDB(t)
	svc := newService(db)
	author := createUser(t, db, "chef")
	breakfast := createTag(t, db, "breakfast", "#E26C2D", "breakfast")
	dinner := createTag(t, db, "dinner", "#2DE26C", "dinner")
	salt := createIngredient(t, db, "Salt", "g")
	sugar := createIngredient(t, db, "Sugar", "g")

	created, err := svc.CreateRecipe(context.Background(), domain.CreateRecipeRequest{
		Name:        "Before",
		Text:        "Original",
		CookingTime: 10,
		Tags:        []string{breakfast.ID.String()},
		Ingredients: []domain.IngredientLineRequest{{ID: salt.ID.String(), Amount: 5}},
	}, author.ID.String())
	require.NoError(t, err)

	update := domain.UpdateRecipeRequest{
		Name:        "After",
		Text:        "Replaced",
		CookingTime: 15,
		Tags:        []string{dinner.ID.String()},
		Ingredients: []domain.IngredientLineRequest{{ID: sugar.ID.String(), Amount: 30}},
	}

	updated, err := svc.UpdateRecipe(context.Background(), created.ID, update, author.ID.String(), false)
	require.NoError(t, err)
	assert.Equal(t, "After", updated.Name)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, created.Author.ID, updated.Author.ID)
	require.Len(t, updated.Ingredients, 1)
	assert.Equal(t, sugar.ID.String(), updated.Ingredients[0].ID)
	assert.Equal(t, 30, updated.Ingredients[0].Amount)
	require.Len(t, updated.Tags, 1)
	assert.Equal(t, "dinner", updated.Tags[0].Slug)

	// idempotent by replacement: the same update applied again changes nothing
	again, err := svc.UpdateRecipe(context.Background(), created.ID, update, author.ID.String(), false)
	require.NoError(t, err)
	assert.Equal(t, updated.Ingredients, again.Ingredients)
	assert.Equal(t, updated.Tags, again.Tags)
	assert.EqualValues(t, 1, countRows(t, db, &entities.RecipeIngredient{}))
}

func TestUpdateRecipeUnauthorized(t *testing.T) {
	db := newTestDB(t)
	svc := newService(db)
	author := createUser(t, db, "chef")
	other := createUser(t, db, "stranger")
	staff := createUser(t, db, "moderator")
	salt := createIngredient(t, db, "Salt", "g")

	created, err := svc.CreateRecipe(context.Background(), domain.CreateRecipeRequest{
		Name:        "Mine",
		Text:        "Private",
		CookingTime: 10,
		Ingredients: []domain.IngredientLineRequest{{ID: salt.ID.String(), Amount: 5}},
	}, author.ID.String())
	require.NoError(t, err)

	update := domain.UpdateRecipeRequest{
		Name:        "Stolen",
		Text:        "Changed",
		CookingTime: 1,
		Ingredients: []domain.IngredientLineRequest{{ID: salt.ID.String(), Amount: 1}},
	}

	_, err = svc.UpdateRecipe(context.Background(), created.ID, update, other.ID.String(), false)
	assert.ErrorIs(t, err, domain.ErrUnauthorizedRecipeAccess)

	_, err = svc.UpdateRecipe(context.Background(), created.ID, update, staff.ID.String(), true)
	assert.NoError(t, err)
}

func TestDeleteRecipeCascades(t *testing.T) {
	db := newTestDB(t)
	svc := newService(db)
	author := createUser(t, db, "chef")
	fan := createUser(t, db, "fan")
	salt := createIngredient(t, db, "Salt", "g")

	created, err := svc.CreateRecipe(context.Background(), domain.CreateRecipeRequest{
		Name:        "Doomed",
		Text:        "Short lived",
		CookingTime: 10,
		Ingredients: []domain.IngredientLineRequest{{ID: salt.ID.String(), Amount: 5}},
	}, author.ID.String())
	require.NoError(t, err)

	recipeUUID := uuid.MustParse(created.ID)
	require.NoError(t, db.Create(&entities.Favorite{ID: uuid.New(), UserID: fan.ID, RecipeID: recipeUUID}).Error)
	require.NoError(t, db.Create(&entities.ShoppingCart{ID: uuid.New(), UserID: fan.ID, RecipeID: recipeUUID}).Error)

	require.NoError(t, svc.DeleteRecipe(context.Background(), created.ID, author.ID.String(), false))

	assert.Zero(t, countRows(t, db, &entities.Recipe{}))
	assert.Zero(t, countRows(t, db, &entities.RecipeIngredient{}))
	assert.Zero(t, countRows(t, db, &entities.Favorite{}))
	assert.Zero(t, countRows(t, db, &entities.ShoppingCart{}))
}

func TestGetRecipesFilterByTagSlug(t *testing.T) {
	db := newTestDB(t)
	svc := newService(db)
	author := createUser(t, db, "chef")
	breakfast := createTag(t, db, "breakfast", "#E26C2D", "breakfast")
	salt := createIngredient(t, db, "Salt", "g")

	_, err := svc.CreateRecipe(context.Background(), domain.CreateRecipeRequest{
		Name:        "Tagged",
		Text:        "With tag",
		CookingTime: 10,
		Tags:        []string{breakfast.ID.String()},
		Ingredients: []domain.IngredientLineRequest{{ID: salt.ID.String(), Amount: 5}},
	}, author.ID.String())
	require.NoError(t, err)
	_, err = svc.CreateRecipe(context.Background(), domain.CreateRecipeRequest{
		Name:        "Untagged",
		Text:        "No tag",
		CookingTime: 10,
		Ingredients: []domain.IngredientLineRequest{{ID: salt.ID.String(), Amount: 5}},
	}, author.ID.String())
	require.NoError(t, err)

	recipes, count, err := svc.GetRecipes(context.Background(), domain.RecipeListFilter{
		TagSlugs: []string{"breakfast"},
	}, "")
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
	require.Len(t, recipes, 1)
	assert.Equal(t, "Tagged", recipes[0].Name)
}

func TestGetRecipeDetailViewerBooleans(t *testing.T) {
	db := newTestDB(t)
	svc := newService(db)
	author := createUser(t, db, "chef")
	fan := createUser(t, db, "fan")
	salt := createIngredient(t, db, "Salt", "g")

	created, err := svc.CreateRecipe(context.Background(), domain.CreateRecipeRequest{
		Name:        "Loved",
		Text:        "Popular",
		CookingTime: 10,
		Ingredients: []domain.IngredientLineRequest{{ID: salt.ID.String(), Amount: 5}},
	}, author.ID.String())
	require.NoError(t, err)

	recipeUUID := uuid.MustParse(created.ID)
	require.NoError(t, db.Create(&entities.Favorite{ID: uuid.New(), UserID: fan.ID, RecipeID: recipeUUID}).Error)
	require.NoError(t, db.Create(&entities.Follow{ID: uuid.New(), UserID: fan.ID, AuthorID: author.ID}).Error)

	asFan, err := svc.GetRecipeDetail(context.Background(), created.ID, fan.ID.String())
	require.NoError(t, err)
	assert.True(t, asFan.IsFavorited)
	assert.False(t, asFan.IsInShoppingCart)
	assert.True(t, asFan.Author.IsSubscribed)

	anonymous, err := svc.GetRecipeDetail(context.Background(), created.ID, "")
	require.NoError(t, err)
	assert.False(t, anonymous.IsFavorited)
	assert.False(t, anonymous.Author.IsSubscribed)
}
