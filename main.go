package main

import (
	"flag"
	"foodgram-backend/cmd/config"
	migration "foodgram-backend/cmd/database/migrate"
	"foodgram-backend/cmd/database/seed"
	"foodgram-backend/internal/utils"
	"log"
)

func main() {
	migrate := flag.Bool("migrate", false, "run database migrations and exit")
	ingredients := flag.String("load-ingredients", "", "path to an ingredients CSV to import and exit")
	flag.Parse()

	utils.LoadConfig()

	db, err := config.ConnectDB()
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	if *migrate {
		if err := migration.Migrate(db); err != nil {
			log.Fatalf("migration failed: %v", err)
		}
		return
	}

	if *ingredients != "" {
		if err := seed.LoadIngredients(db, *ingredients); err != nil {
			log.Fatalf("ingredient import failed: %v", err)
		}
		return
	}

	app, err := config.NewApp(db)
	if err != nil {
		log.Fatalf("failed to set up app: %v", err)
	}

	if err := app.Listen(":8080"); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
