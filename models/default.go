package models

import (
	"context"

	"github.com/habitamx/listings_backend/config"
	"gorm.io/gorm"
)

// The 32 federal entities of Mexico, in the canonical display form the
// import matcher resolves against.
var defaultStates = []string{
	"Aguascalientes", "Baja California", "Baja California Sur", "Campeche",
	"Chiapas", "Chihuahua", "Ciudad de México", "Coahuila", "Colima",
	"Durango", "Estado de México", "Guanajuato", "Guerrero", "Hidalgo",
	"Jalisco", "Michoacán", "Morelos", "Nayarit", "Nuevo León", "Oaxaca",
	"Puebla", "Querétaro", "Quintana Roo", "San Luis Potosí", "Sinaloa",
	"Sonora", "Tabasco", "Tamaulipas", "Tlaxcala", "Veracruz", "Yucatán",
	"Zacatecas",
}

var defaultCatalogValues = map[CatalogKey][]string{
	CatalogKeyPropertyType:      {"Casa", "Departamento", "Terreno", "Local comercial", "Oficina", "Bodega"},
	CatalogKeyStatus:            {"Venta", "Renta", "Preventa", "Vendida", "Rentada"},
	CatalogKeyPropertyRange:     {"Económica", "Media", "Residencial", "Residencial plus", "Premium"},
	CatalogKeyIllumination:      {"Baja", "Media", "Alta"},
	CatalogKeyPropertyCondition: {"Nueva", "Buena", "Regular", "A remodelar"},
	CatalogKeyZoneDemand:        {"Baja", "Media", "Alta"},
	CatalogKeyAccessibility:     {"Mala", "Regular", "Buena", "Excelente"},
}

func createDefaultStates(ctx context.Context, tx *gorm.DB) error {
	for _, name := range defaultStates {
		state := State{Name: name}
		err := tx.WithContext(ctx).Where("name = ?", name).FirstOrCreate(&state).Error
		if err != nil {
			return err
		}
	}
	return nil
}

func createDefaultCatalogValues(ctx context.Context, tx *gorm.DB) error {
	for _, key := range ValueCatalogKeys {
		for _, value := range defaultCatalogValues[key] {
			if _, err := FindOrCreateCatalogRecord(ctx, tx, key, value); err != nil {
				return err
			}
		}
	}
	return nil
}

// SeedDefaults inserts the reference data the importer expects to
// pre-exist. Safe to run repeatedly.
func SeedDefaults(ctx context.Context) error {
	db := config.GetDB()
	tx := db.Begin()

	if err := createDefaultStates(ctx, tx); err != nil {
		tx.Rollback()
		return err
	}
	if err := createDefaultCatalogValues(ctx, tx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit().Error
}
