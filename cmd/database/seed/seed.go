package seed

import (
	"context"
	"encoding/csv"
	"fmt"
	"foodgram-backend/pkg/catalog"
	"io"
	"os"

	"gorm.io/gorm"
)

// LoadIngredients imports catalog ingredients from a CSV file with
// name,measurement_unit rows. Existing rows are kept (get-or-create).
func LoadIngredients(db *gorm.DB, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open ingredients file: %w", err)
	}
	defer file.Close()

	repository := catalog.NewCatalogRepository(db)
	reader := csv.NewReader(file)
	loaded := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("read ingredients file: %w", err)
		}
		if len(row) < 2 {
			continue
		}
		if _, err := repository.GetOrCreateIngredient(context.Background(), row[0], row[1]); err != nil {
			return err
		}
		loaded++
	}

	fmt.Printf("Ingredients loaded: %d\n", loaded)
	return nil
}
