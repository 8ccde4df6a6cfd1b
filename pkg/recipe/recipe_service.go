package recipe

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"foodgram-backend/domain"
	"foodgram-backend/entities"
	"foodgram-backend/internal/utils/storage"
	"foodgram-backend/pkg/catalog"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	RecipeService interface {
		CreateRecipe(ctx context.Context, req domain.CreateRecipeRequest, authorID string) (domain.RecipeDetail, error)
		UpdateRecipe(ctx context.Context, recipeID string, req domain.UpdateRecipeRequest, userID string, isStaff bool) (domain.RecipeDetail, error)
		DeleteRecipe(ctx context.Context, recipeID string, userID string, isStaff bool) error
		GetRecipeDetail(ctx context.Context, recipeID string, viewerID string) (domain.RecipeDetail, error)
		GetRecipes(ctx context.Context, filter domain.RecipeListFilter, viewerID string) ([]domain.RecipeDetail, int64, error)
	}

	recipeService struct {
		recipeRepository  RecipeRepository
		catalogRepository catalog.CatalogRepository
		s3                storage.AwsS3
	}
)

func NewRecipeService(recipeRepository RecipeRepository, catalogRepository catalog.CatalogRepository, s3 storage.AwsS3) RecipeService {
	return &recipeService{
		recipeRepository:  recipeRepository,
		catalogRepository: catalogRepository,
		s3:                s3,
	}
}

// validateLines checks the raw ingredient lines before anything is written:
// every amount at least 1 and no ingredient id used twice.
func validateLines(lines []domain.IngredientLineRequest) error {
	if len(lines) == 0 {
		return domain.ErrEmptyIngredients
	}
	seen := make(map[string]bool, len(lines))
	for _, line := range lines {
		if line.Amount < 1 {
			return domain.ErrInvalidIngredientAmount
		}
		if seen[line.ID] {
			return domain.ErrDuplicateIngredient
		}
		seen[line.ID] = true
	}
	return nil
}

// resolveTags loads the referenced tags and fails if any id is unknown.
func (s *recipeService) resolveTags(ctx context.Context, tagIDs []string) ([]entities.Tag, error) {
	if len(tagIDs) == 0 {
		return []entities.Tag{}, nil
	}
	tags, err := s.catalogRepository.GetTagsByIDs(ctx, tagIDs)
	if err != nil {
		return nil, err
	}
	if len(tags) != len(tagIDs) {
		return nil, domain.ErrTagNotFound
	}
	return tags, nil
}

// resolveLines turns validated (id, amount) pairs into ingredient-line rows,
// failing if any ingredient id is unknown. Input order is preserved.
func (s *recipeService) resolveLines(ctx context.Context, lines []domain.IngredientLineRequest) ([]entities.RecipeIngredient, error) {
	ids := make([]string, 0, len(lines))
	for _, line := range lines {
		ids = append(ids, line.ID)
	}

	ingredients, err := s.catalogRepository.GetIngredientsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(ingredients) != len(lines) {
		return nil, domain.ErrIngredientNotFound
	}

	byID := make(map[string]entities.Ingredient, len(ingredients))
	for _, ingredient := range ingredients {
		byID[ingredient.ID.String()] = ingredient
	}

	result := make([]entities.RecipeIngredient, 0, len(lines))
	for _, line := range lines {
		ingredient, ok := byID[line.ID]
		if !ok {
			return nil, domain.ErrIngredientNotFound
		}
		result = append(result, entities.RecipeIngredient{
			ID:           uuid.New(),
			IngredientID: ingredient.ID,
			Amount:       line.Amount,
		})
	}
	return result, nil
}

// uploadImage stores a base64 data-URI payload and returns the object URL.
// An empty payload keeps the recipe without an image.
func (s *recipeService) uploadImage(ctx context.Context, image string, recipeID uuid.UUID) (string, error) {
	if image == "" {
		return "", nil
	}
	if strings.HasPrefix(image, "http://") || strings.HasPrefix(image, "https://") {
		// already a stored reference, keep it as-is
		return image, nil
	}

	contentType := "image/jpeg"
	payload := image
	if strings.HasPrefix(image, "data:") {
		parts := strings.SplitN(image, ";base64,", 2)
		if len(parts) != 2 {
			return "", domain.ErrInvalidImagePayload
		}
		contentType = strings.TrimPrefix(parts[0], "data:")
		payload = parts[1]
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", domain.ErrInvalidImagePayload
	}

	ext := "jpg"
	if idx := strings.Index(contentType, "/"); idx >= 0 && idx+1 < len(contentType) {
		ext = contentType[idx+1:]
	}
	key := fmt.Sprintf("recipes/%s.%s", recipeID.String(), ext)
	return s.s3.UploadFile(ctx, key, bytes.NewReader(data), contentType)
}

func (s *recipeService) CreateRecipe(ctx context.Context, req domain.CreateRecipeRequest, authorID string) (domain.RecipeDetail, error) {
	if req.CookingTime < 1 {
		return domain.RecipeDetail{}, domain.ErrInvalidCookingTime
	}
	if err := validateLines(req.Ingredients); err != nil {
		return domain.RecipeDetail{}, err
	}

	authorUUID, err := uuid.Parse(authorID)
	if err != nil {
		return domain.RecipeDetail{}, domain.ErrParseUUID
	}

	tags, err := s.resolveTags(ctx, req.Tags)
	if err != nil {
		return domain.RecipeDetail{}, err
	}
	lines, err := s.resolveLines(ctx, req.Ingredients)
	if err != nil {
		return domain.RecipeDetail{}, err
	}

	recipeID := uuid.New()
	imageURL, err := s.uploadImage(ctx, req.Image, recipeID)
	if err != nil {
		return domain.RecipeDetail{}, err
	}

	newRecipe := &entities.Recipe{
		ID:          recipeID,
		AuthorID:    authorUUID,
		Name:        req.Name,
		ImageURL:    imageURL,
		Text:        req.Text,
		CookingTime: req.CookingTime,
	}

	if err := s.recipeRepository.CreateRecipe(ctx, newRecipe, lines, tags); err != nil {
		return domain.RecipeDetail{}, err
	}

	return s.GetRecipeDetail(ctx, recipeID.String(), authorID)
}

func (s *recipeService) UpdateRecipe(ctx context.Context, recipeID string, req domain.UpdateRecipeRequest, userID string, isStaff bool) (domain.RecipeDetail, error) {
	if req.CookingTime < 1 {
		return domain.RecipeDetail{}, domain.ErrInvalidCookingTime
	}
	if err := validateLines(req.Ingredients); err != nil {
		return domain.RecipeDetail{}, err
	}

	existing, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RecipeDetail{}, domain.ErrRecipeNotFound
		}
		return domain.RecipeDetail{}, err
	}

	if existing.AuthorID.String() != userID && !isStaff {
		return domain.RecipeDetail{}, domain.ErrUnauthorizedRecipeAccess
	}

	tags, err := s.resolveTags(ctx, req.Tags)
	if err != nil {
		return domain.RecipeDetail{}, err
	}
	lines, err := s.resolveLines(ctx, req.Ingredients)
	if err != nil {
		return domain.RecipeDetail{}, err
	}

	imageURL := existing.ImageURL
	if req.Image != "" {
		imageURL, err = s.uploadImage(ctx, req.Image, existing.ID)
		if err != nil {
			return domain.RecipeDetail{}, err
		}
	}

	updated := &entities.Recipe{
		ID:          existing.ID,
		AuthorID:    existing.AuthorID,
		Name:        req.Name,
		ImageURL:    imageURL,
		Text:        req.Text,
		CookingTime: req.CookingTime,
	}

	if err := s.recipeRepository.UpdateRecipe(ctx, updated, lines, tags); err != nil {
		return domain.RecipeDetail{}, err
	}

	return s.GetRecipeDetail(ctx, recipeID, userID)
}

func (s *recipeService) DeleteRecipe(ctx context.Context, recipeID string, userID string, isStaff bool) error {
	existing, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrRecipeNotFound
		}
		return err
	}

	if existing.AuthorID.String() != userID && !isStaff {
		return domain.ErrUnauthorizedRecipeAccess
	}

	return s.recipeRepository.DeleteRecipe(ctx, existing)
}

func (s *recipeService) GetRecipeDetail(ctx context.Context, recipeID string, viewerID string) (domain.RecipeDetail, error) {
	rec, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RecipeDetail{}, domain.ErrRecipeNotFound
		}
		return domain.RecipeDetail{}, err
	}
	return s.buildDetail(ctx, rec, viewerID)
}

func (s *recipeService) GetRecipes(ctx context.Context, filter domain.RecipeListFilter, viewerID string) ([]domain.RecipeDetail, int64, error) {
	recipes, count, err := s.recipeRepository.GetRecipes(ctx, filter, viewerID)
	if err != nil {
		return nil, 0, err
	}

	result := make([]domain.RecipeDetail, 0, len(recipes))
	for _, rec := range recipes {
		detail, err := s.buildDetail(ctx, rec, viewerID)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, detail)
	}
	return result, count, nil
}

// buildDetail materializes the read projection. The favorited, cart and
// subscribed booleans depend on the viewer and stay false for anonymous.
func (s *recipeService) buildDetail(ctx context.Context, rec *entities.Recipe, viewerID string) (domain.RecipeDetail, error) {
	isFavorited := false
	isInCart := false
	isSubscribed := false
	if viewerID != "" {
		var err error
		if isFavorited, err = s.recipeRepository.IsFavorited(ctx, viewerID, rec.ID.String()); err != nil {
			return domain.RecipeDetail{}, err
		}
		if isInCart, err = s.recipeRepository.IsInShoppingCart(ctx, viewerID, rec.ID.String()); err != nil {
			return domain.RecipeDetail{}, err
		}
		if isSubscribed, err = s.recipeRepository.IsSubscribed(ctx, viewerID, rec.AuthorID.String()); err != nil {
			return domain.RecipeDetail{}, err
		}
	}

	author := domain.UserSummary{ID: rec.AuthorID.String(), IsSubscribed: isSubscribed}
	if rec.Author != nil {
		author.Email = rec.Author.Email
		author.Username = rec.Author.Username
		author.FirstName = rec.Author.FirstName
		author.LastName = rec.Author.LastName
	}

	tags := make([]domain.TagResponse, 0, len(rec.Tags))
	for i := range rec.Tags {
		tags = append(tags, catalog.TagResponse(&rec.Tags[i]))
	}

	ingredients := make([]domain.RecipeIngredientLine, 0, len(rec.RecipeIngredients))
	for _, line := range rec.RecipeIngredients {
		ingredientLine := domain.RecipeIngredientLine{
			ID:     line.IngredientID.String(),
			Amount: line.Amount,
		}
		if line.Ingredient != nil {
			ingredientLine.Name = line.Ingredient.Name
			ingredientLine.MeasurementUnit = line.Ingredient.MeasurementUnit
		}
		ingredients = append(ingredients, ingredientLine)
	}

	return domain.RecipeDetail{
		ID:               rec.ID.String(),
		Name:             rec.Name,
		Author:           author,
		Tags:             tags,
		Ingredients:      ingredients,
		IsFavorited:      isFavorited,
		IsInShoppingCart: isInCart,
		Image:            rec.ImageURL,
		Text:             rec.Text,
		CookingTime:      rec.CookingTime,
		CreatedAt:        rec.CreatedAt,
	}, nil
}

// Summary converts a recipe row to the short form used by the ledgers and
// subscription listings.
func Summary(rec *entities.Recipe) domain.RecipeSummary {
	return domain.RecipeSummary{
		ID:          rec.ID.String(),
		Name:        rec.Name,
		Image:       rec.ImageURL,
		CookingTime: rec.CookingTime,
	}
}
