package models

import (
	"log"

	"github.com/habitamx/listings_backend/config"
)

func MigrateTable() {
	db := config.GetDB()

	err := db.AutoMigrate(
		&State{}, &City{},
		&PropertyType{}, &PropertyStatus{}, &Provider{},
		&PropertyRange{}, &Illumination{}, &PropertyCondition{},
		&ZoneDemand{}, &Accessibility{},
		&Property{}, &PropertyFeature{}, &PropertyLocation{}, &PropertyImage{},
	)
	if err != nil {
		log.Fatal(err)
	}
}
