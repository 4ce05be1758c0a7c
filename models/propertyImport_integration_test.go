package models_test

import (
	"strings"
	"testing"

	"github.com/habitamx/listings_backend/config"
	"github.com/habitamx/listings_backend/models"
	"github.com/shopspring/decimal"
)

var importTags = []string{
	"propertyId", "title", "description", "price", "availability",
	"state", "city", "propertyType", "status", "provider",
	"bedrooms", "bathrooms", "address", "zipCode", "images",
}

// buildImportCSV renders the upload format: two header rows, the tags
// row, then data rows. Values must not contain commas.
func buildImportCSV(rows ...map[string]string) []byte {
	var b strings.Builder
	b.WriteString("PLANTILLA DE PROPIEDADES,v1\n")
	b.WriteString("Notas internas,,\n")
	b.WriteString(strings.Join(importTags, ",") + "\n")
	for _, row := range rows {
		cells := make([]string, len(importTags))
		for i, tag := range importTags {
			cells[i] = row[tag]
		}
		b.WriteString(strings.Join(cells, ",") + "\n")
	}
	return []byte(b.String())
}

func toImportRow(row map[string]string) models.ImportRow {
	mapped := make(models.ImportRow, len(row))
	for tag, value := range row {
		mapped[tag] = value
	}
	return mapped
}

func TestImportPropertiesHappyPath(t *testing.T) {
	ctx := setupIntegrationTest(t)
	if err := models.SeedDefaults(ctx); err != nil {
		t.Fatalf("SeedDefaults: %v", err)
	}
	db := config.GetDB()

	jalisco, err := models.FindStateByName(ctx, db, "Jalisco")
	if err != nil || jalisco == nil {
		t.Fatalf("seeded state Jalisco missing: %v", err)
	}
	cdmx, err := models.FindStateByName(ctx, db, "Ciudad de México")
	if err != nil || cdmx == nil {
		t.Fatalf("seeded state Ciudad de México missing: %v", err)
	}
	guadalajara, err := models.FindOrCreateCity(ctx, db, "Guadalajara", jalisco.ID)
	if err != nil {
		t.Fatalf("FindOrCreateCity: %v", err)
	}
	if _, err := models.FindOrCreateCity(ctx, db, "Coyoacan", cdmx.ID); err != nil {
		t.Fatalf("FindOrCreateCity: %v", err)
	}

	data := buildImportCSV(
		map[string]string{
			"propertyId": "P-100", "title": "Casa en Chapalita", "price": "$1250000.50",
			"availability": "sí", "state": "jalisco", "city": "GUADALAJARA",
			"propertyType": "casa", "status": "venta", "provider": "Inmo Norte",
			"bedrooms": "3", "bathrooms": "2", "address": "Av. Guadalupe 123",
			"zipCode": "644",
			"images":  "https://cdn.example.com/a.jpg;https://cdn.example.com/b.jpg",
		},
		map[string]string{}, // blank row must be skipped silently
		map[string]string{
			"propertyId": "P-101", "title": "Depto en Coyoacan", "price": "2500000",
			"availability": "no", "state": "CDMX", "city": "Coyoacan",
			"propertyType": "departamento", "status": "renta", "provider": "Inmo Norte",
			"bedrooms": "2", "bathrooms": "1", "address": "Calle Aldama 45",
			"zipCode": "04100",
		},
	)

	result, err := models.ImportProperties(ctx, "listado.csv", data, "tester")
	if err != nil {
		t.Fatalf("ImportProperties: %v", err)
	}
	if len(result.FailedRows) != 0 {
		t.Fatalf("expected no failed rows, got %+v", result.FailedRows)
	}
	if result.Imported != 2 {
		t.Fatalf("expected 2 imported, got %d (%+v)", result.Imported, result)
	}
	if len(result.Errors) != 0 {
		t.Fatalf("expected no row errors, got %+v", result.Errors)
	}

	// The provider is auto-created on the first row and reused by the
	// second, so exactly one warning and one record.
	if len(result.Warnings) != 1 {
		t.Fatalf("expected 1 provider warning, got %+v", result.Warnings)
	}
	if result.Warnings[0].Field != "provider" || result.Warnings[0].Row != 4 {
		t.Fatalf("unexpected warning: %+v", result.Warnings[0])
	}
	var providerCount int64
	if err := db.WithContext(ctx).Model(&models.Provider{}).Where("value = ?", "Inmo norte").Count(&providerCount).Error; err != nil {
		t.Fatalf("count providers: %v", err)
	}
	if providerCount != 1 {
		t.Fatalf("expected 1 provider record, got %d", providerCount)
	}

	property, err := models.FindPropertyByPropertyId(ctx, db, "P-100")
	if err != nil || property == nil {
		t.Fatalf("imported property P-100 missing: %v", err)
	}
	full, err := models.GetProperty(ctx, property.ID)
	if err != nil {
		t.Fatalf("GetProperty: %v", err)
	}
	if !full.Price.Equal(decimal.RequireFromString("1250000.50")) {
		t.Fatalf("price = %s, want 1250000.50", full.Price)
	}
	if full.Availability == nil || !*full.Availability {
		t.Fatalf("expected availability true")
	}
	if full.UserId != "tester" {
		t.Fatalf("user id = %q, want tester", full.UserId)
	}
	if full.Feature.Bedrooms != 3 || full.Feature.Bathrooms != 2 {
		t.Fatalf("feature mismatch: %+v", full.Feature)
	}
	if full.Location.ZipCode != "00644" {
		t.Fatalf("zip = %q, want 00644 (left padded)", full.Location.ZipCode)
	}
	if full.Location.CityId != guadalajara.ID {
		t.Fatalf("city id = %d, want %d", full.Location.CityId, guadalajara.ID)
	}
	if len(full.Images) != 2 {
		t.Fatalf("expected 2 images, got %d", len(full.Images))
	}
	if full.ProviderId == nil {
		t.Fatalf("expected provider to be linked")
	}
}

func TestImportBlockedRowBlocksWholeBatch(t *testing.T) {
	ctx := setupIntegrationTest(t)
	if err := models.SeedDefaults(ctx); err != nil {
		t.Fatalf("SeedDefaults: %v", err)
	}
	db := config.GetDB()

	jalisco, err := models.FindStateByName(ctx, db, "Jalisco")
	if err != nil || jalisco == nil {
		t.Fatalf("seeded state Jalisco missing: %v", err)
	}
	if _, err := models.FindOrCreateCity(ctx, db, "Guadalajara", jalisco.ID); err != nil {
		t.Fatalf("FindOrCreateCity: %v", err)
	}

	typoRow := map[string]string{
		"propertyId": "P-200", "title": "Casa con estado mal escrito", "price": "900000",
		"availability": "sí", "state": "Jalsco", "city": "Guadalajara",
		"propertyType": "casa", "status": "venta",
	}
	validRow := map[string]string{
		"propertyId": "P-201", "title": "Casa correcta", "price": "1100000",
		"availability": "sí", "state": "Jalisco", "city": "Guadalajara",
		"propertyType": "casa", "status": "venta",
	}
	data := buildImportCSV(typoRow, validRow)

	result, err := models.ImportProperties(ctx, "listado.csv", data, "tester")
	if err != nil {
		t.Fatalf("ImportProperties: %v", err)
	}
	if len(result.FailedRows) != 1 {
		t.Fatalf("expected exactly 1 failed row, got %+v", result.FailedRows)
	}
	failed := result.FailedRows[0]
	if failed.Field != "state" || failed.Value != "Jalsco" || failed.Row != 4 {
		t.Fatalf("unexpected failed row: %+v", failed)
	}
	if result.Imported != 0 {
		t.Fatalf("expected 0 imported, got %d", result.Imported)
	}

	// A blocked batch must write no properties, resolvable siblings
	// included.
	var propertyCount int64
	if err := db.WithContext(ctx).Model(&models.Property{}).Count(&propertyCount).Error; err != nil {
		t.Fatalf("count properties: %v", err)
	}
	if propertyCount != 0 {
		t.Fatalf("expected 0 properties after blocked batch, got %d", propertyCount)
	}

	// Fixing with a value that matches an existing state must reuse it
	// rather than create a duplicate, and persist the corrected row.
	fixResult, err := models.FixImportRow(ctx, &models.ImportRowFix{
		Row:      4,
		Field:    "state",
		Value:    "Jalisco",
		Original: toImportRow(typoRow),
		UserId:   "tester",
	})
	if err != nil {
		t.Fatalf("FixImportRow: %v", err)
	}
	if fixResult.Record == nil || fixResult.Record.ID != jalisco.ID {
		t.Fatalf("expected fix to resolve to existing Jalisco (%d), got %+v", jalisco.ID, fixResult.Record)
	}
	if fixResult.Unresolved != nil {
		t.Fatalf("expected no further unresolved fields, got %+v", fixResult.Unresolved)
	}
	if fixResult.Property == nil {
		t.Fatalf("expected the corrected row to be persisted")
	}

	var jaliscoCount int64
	if err := db.WithContext(ctx).Model(&models.State{}).Where("name = ?", "Jalisco").Count(&jaliscoCount).Error; err != nil {
		t.Fatalf("count states: %v", err)
	}
	if jaliscoCount != 1 {
		t.Fatalf("expected 1 Jalisco state, got %d", jaliscoCount)
	}

	if err := db.WithContext(ctx).Model(&models.Property{}).Count(&propertyCount).Error; err != nil {
		t.Fatalf("count properties: %v", err)
	}
	if propertyCount != 1 {
		t.Fatalf("expected 1 property after fix, got %d", propertyCount)
	}
}

func TestImportDuplicatePropertyIdFastFail(t *testing.T) {
	ctx := setupIntegrationTest(t)
	if err := models.SeedDefaults(ctx); err != nil {
		t.Fatalf("SeedDefaults: %v", err)
	}
	db := config.GetDB()

	jalisco, err := models.FindStateByName(ctx, db, "Jalisco")
	if err != nil || jalisco == nil {
		t.Fatalf("seeded state Jalisco missing: %v", err)
	}
	city, err := models.FindOrCreateCity(ctx, db, "Guadalajara", jalisco.ID)
	if err != nil {
		t.Fatalf("FindOrCreateCity: %v", err)
	}

	types, err := models.GetCatalogValues(ctx, models.CatalogKeyPropertyType)
	if err != nil || len(types) == 0 {
		t.Fatalf("property types missing: %v", err)
	}
	statuses, err := models.GetCatalogValues(ctx, models.CatalogKeyStatus)
	if err != nil || len(statuses) == 0 {
		t.Fatalf("statuses missing: %v", err)
	}
	if _, err := models.CreateProperty(ctx, &models.NewProperty{
		PropertyId:     "P-300",
		Title:          "Propiedad existente",
		UserId:         "tester",
		PropertyTypeId: types[0].ID,
		StatusId:       statuses[0].ID,
		Location:       models.NewPropertyLocation{CityId: city.ID},
	}); err != nil {
		t.Fatalf("CreateProperty: %v", err)
	}

	data := buildImportCSV(map[string]string{
		"propertyId": "P-300", "title": "Duplicada", "price": "500000",
		"state": "Jalisco", "city": "Guadalajara",
		"propertyType": "casa", "status": "venta",
	})
	result, err := models.ImportProperties(ctx, "listado.csv", data, "tester")
	if err != nil {
		t.Fatalf("ImportProperties: %v", err)
	}
	if len(result.FailedRows) != 1 {
		t.Fatalf("expected 1 failed row, got %+v", result.FailedRows)
	}
	if result.FailedRows[0].Field != "propertyId" || result.FailedRows[0].Value != "P-300" {
		t.Fatalf("unexpected failed row: %+v", result.FailedRows[0])
	}

	var propertyCount int64
	if err := db.WithContext(ctx).Model(&models.Property{}).Count(&propertyCount).Error; err != nil {
		t.Fatalf("count properties: %v", err)
	}
	if propertyCount != 1 {
		t.Fatalf("expected only the pre-existing property, got %d", propertyCount)
	}
}
