package domain

// ShoppingListItem is one aggregated line of the shopping list. Lines are
// grouped by ingredient name and measurement unit, not by catalog id, so two
// catalog rows with the same display text merge into one item.
type ShoppingListItem struct {
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Total           int    `json:"total"`
}
