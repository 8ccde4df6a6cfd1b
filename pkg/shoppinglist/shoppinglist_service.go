package shoppinglist

import (
	"context"
	"fmt"
	"foodgram-backend/domain"
	"strings"
)

// ExportFilename is the suggested attachment name for the rendered list.
const ExportFilename = "shopping_cart.txt"

type (
	ShoppingListService interface {
		Aggregate(ctx context.Context, userID string) ([]domain.ShoppingListItem, error)
		Render(ctx context.Context, userID string) (string, error)
	}

	shoppingListService struct {
		shoppingListRepository ShoppingListRepository
	}
)

func NewShoppingListService(shoppingListRepository ShoppingListRepository) ShoppingListService {
	return &shoppingListService{shoppingListRepository: shoppingListRepository}
}

func (s *shoppingListService) Aggregate(ctx context.Context, userID string) ([]domain.ShoppingListItem, error) {
	return s.shoppingListRepository.AggregateCart(ctx, userID)
}

// Render produces the plain-text shopping list document, one line per
// aggregated ingredient group.
func (s *shoppingListService) Render(ctx context.Context, userID string) (string, error) {
	items, err := s.shoppingListRepository.AggregateCart(ctx, userID)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("Shopping list:\n\n")
	for _, item := range items {
		fmt.Fprintf(&b, "%s - %d, %s\n", item.Name, item.Total, item.MeasurementUnit)
	}
	return b.String(), nil
}
