package main

import (
	"context"
	"fmt"
	"os"

	"github.com/habitamx/listings_backend/config"
	"github.com/habitamx/listings_backend/models"
)

// Seeds the reference data the importer matches against: the Mexican
// states plus the default property type/status and auxiliary catalog
// values. Safe to run repeatedly.
func main() {
	ctx := context.Background()

	config.ConnectDatabaseWithRetry()
	db := config.GetDB()
	if db == nil {
		fmt.Fprintln(os.Stderr, "database not initialized (config.GetDB returned nil)")
		os.Exit(1)
	}

	models.MigrateTable()

	if err := models.SeedDefaults(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "seed failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("catalogs seeded")
}
