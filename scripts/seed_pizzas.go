package main

import (
	"errors"
	"flag"
	"fmt"
	"log"

	"github.com/franciscosanchezn/minimal-pizza-api/internal/database"
	"github.com/franciscosanchezn/minimal-pizza-api/internal/models"
	"github.com/franciscosanchezn/minimal-pizza-api/internal/services"
)

// Seeds a SQLite pizza database for local development:
//
//	go run ./scripts -db pizzas.sqlite -reset
func main() {
	path := flag.String("db", "pizzas.sqlite", "SQLite database file")
	reset := flag.Bool("reset", false, "Remove pizzas with the sample IDs before seeding")
	flag.Parse()

	db, err := database.InitDatabase(database.DatabaseConfig{Driver: "sqlite", Path: *path, MaxRetries: 1})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if err := services.AutoMigrate(db); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}
	svc := services.NewGormPizzaService(db)

	samples := []models.Pizza{
		{ID: 1, Name: "Margherita", Description: "Tomato sauce, mozzarella and basil"},
		{ID: 2, Name: "Pepperoni", Description: "Tomato sauce, mozzarella and pepperoni"},
		{ID: 3, Name: "Vegetarian", Description: "Tomato sauce, mozzarella, bell peppers and olives"},
	}

	created := 0
	for _, p := range samples {
		if *reset {
			// DeletePizza drops one row per call
			for {
				if _, err := svc.GetPizzaByID(p.ID); errors.Is(err, services.ErrPizzaNotFound) {
					break
				} else if err != nil {
					log.Fatal("Failed to look up pizza:", err)
				}
				if err := svc.DeletePizza(p.ID); err != nil {
					log.Fatal("Failed to delete pizza:", err)
				}
			}
		} else if _, err := svc.GetPizzaByID(p.ID); err == nil {
			fmt.Printf("Pizza %d already exists, skipping\n", p.ID)
			continue
		}

		if _, err := svc.CreatePizza(p); err != nil {
			log.Fatal("Failed to create pizza:", err)
		}
		created++
	}

	if err := database.Close(db); err != nil {
		log.Printf("Failed to close database: %v", err)
	}
	fmt.Printf("Seeded %d pizzas into %s\n", created, *path)
}
