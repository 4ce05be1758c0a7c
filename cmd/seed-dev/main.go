package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/habitamx/listings_backend/config"
	"github.com/habitamx/listings_backend/models"
	"github.com/habitamx/listings_backend/utils"
	"github.com/shopspring/decimal"
)

var devCities = map[string][]string{
	"Jalisco":          {"Guadalajara", "Zapopan", "Tlaquepaque", "Puerto Vallarta"},
	"Ciudad de México": {"Coyoacán", "Benito Juárez", "Miguel Hidalgo"},
	"Nuevo León":       {"Monterrey", "San Pedro Garza García", "Apodaca"},
	"Querétaro":        {"Querétaro", "Corregidora", "El Marqués"},
}

// Seeds the default catalogs plus gofakeit-generated demo properties
// for local development.
func main() {
	count := flag.Int("count", 25, "How many demo properties to create")
	seed := flag.Int64("seed", 0, "gofakeit seed (0 for random)")
	flag.Parse()

	gofakeit.Seed(*seed)

	config.ConnectDatabaseWithRetry()
	db := config.GetDB()
	if db == nil {
		fmt.Fprintln(os.Stderr, "database not initialized (config.GetDB returned nil)")
		os.Exit(1)
	}
	models.MigrateTable()

	ctx := context.Background()
	if err := models.SeedDefaults(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "seed defaults failed: %v\n", err)
		os.Exit(1)
	}

	var cityIds []int
	for stateName, cityNames := range devCities {
		state, err := models.FindOrCreateState(ctx, db, stateName)
		if err != nil {
			fmt.Fprintf(os.Stderr, "state %s: %v\n", stateName, err)
			os.Exit(1)
		}
		for _, cityName := range cityNames {
			city, err := models.FindOrCreateCity(ctx, db, cityName, state.ID)
			if err != nil {
				fmt.Fprintf(os.Stderr, "city %s: %v\n", cityName, err)
				os.Exit(1)
			}
			cityIds = append(cityIds, city.ID)
		}
	}

	propertyTypes, err := models.GetCatalogValues(ctx, models.CatalogKeyPropertyType)
	if err != nil {
		fmt.Fprintf(os.Stderr, "list property types: %v\n", err)
		os.Exit(1)
	}
	statuses, err := models.GetCatalogValues(ctx, models.CatalogKeyStatus)
	if err != nil {
		fmt.Fprintf(os.Stderr, "list statuses: %v\n", err)
		os.Exit(1)
	}
	if len(propertyTypes) == 0 || len(statuses) == 0 || len(cityIds) == 0 {
		fmt.Fprintln(os.Stderr, "reference data missing; run seed-catalogs first")
		os.Exit(1)
	}

	created := 0
	for i := 0; i < *count; i++ {
		price := decimal.NewFromInt(int64(gofakeit.Number(500_000, 12_000_000)))
		input := models.NewProperty{
			PropertyId:     fmt.Sprintf("DEV-%s", gofakeit.UUID()),
			Title:          gofakeit.Sentence(4),
			Description:    gofakeit.Paragraph(1, 3, 12, " "),
			Price:          price,
			UserId:         "seed-dev",
			Availability:   utils.NewTrue(),
			PropertyTypeId: propertyTypes[gofakeit.Number(0, len(propertyTypes)-1)].ID,
			StatusId:       statuses[gofakeit.Number(0, len(statuses)-1)].ID,
			Feature: models.NewPropertyFeature{
				Bedrooms:       gofakeit.Number(1, 5),
				Bathrooms:      gofakeit.Number(1, 4),
				HalfBathrooms:  gofakeit.Number(0, 2),
				Levels:         gofakeit.Number(1, 3),
				Parking:        gofakeit.Number(0, 3),
				Age:            gofakeit.Number(0, 40),
				Pool:           gofakeit.Bool(),
				Furnished:      gofakeit.Bool(),
				TerrainM2:      decimal.NewFromInt(int64(gofakeit.Number(90, 600))),
				ConstructionM2: decimal.NewFromInt(int64(gofakeit.Number(60, 450))),
			},
			Location: models.NewPropertyLocation{
				Address: gofakeit.Street(),
				ZipCode: gofakeit.Zip(),
				CityId:  cityIds[gofakeit.Number(0, len(cityIds)-1)],
			},
		}
		if _, err := models.CreateProperty(ctx, &input); err != nil {
			fmt.Fprintf(os.Stderr, "property %d: %v\n", i, err)
			continue
		}
		created++
	}
	fmt.Printf("created %d demo properties\n", created)
}
