package models

import (
	"context"
	"errors"
	"reflect"
	"strings"

	mysqlDriver "github.com/go-sql-driver/mysql"
	"github.com/habitamx/listings_backend/config"
	"github.com/habitamx/listings_backend/utils"
	"gorm.io/gorm"
)

// Flat value catalogs. Each one is a small reference table whose
// display value is unique; import rows are matched against them.

type PropertyType struct {
	ID    int    `gorm:"primary_key" json:"id"`
	Value string `gorm:"size:100;uniqueIndex;not null" json:"value"`
}

type PropertyStatus struct {
	ID    int    `gorm:"primary_key" json:"id"`
	Value string `gorm:"size:100;uniqueIndex;not null" json:"value"`
}

type Provider struct {
	ID    int    `gorm:"primary_key" json:"id"`
	Value string `gorm:"size:100;uniqueIndex;not null" json:"value"`
}

type PropertyRange struct {
	ID    int    `gorm:"primary_key" json:"id"`
	Value string `gorm:"size:100;uniqueIndex;not null" json:"value"`
}

type Illumination struct {
	ID    int    `gorm:"primary_key" json:"id"`
	Value string `gorm:"size:100;uniqueIndex;not null" json:"value"`
}

type PropertyCondition struct {
	ID    int    `gorm:"primary_key" json:"id"`
	Value string `gorm:"size:100;uniqueIndex;not null" json:"value"`
}

type ZoneDemand struct {
	ID    int    `gorm:"primary_key" json:"id"`
	Value string `gorm:"size:100;uniqueIndex;not null" json:"value"`
}

type Accessibility struct {
	ID    int    `gorm:"primary_key" json:"id"`
	Value string `gorm:"size:100;uniqueIndex;not null" json:"value"`
}

// CatalogMatch is the resolver result for one catalog lookup. On a miss
// (without auto-creation) ID is zero and Suggestions carries the
// similar values found.
type CatalogMatch struct {
	ID          int      `json:"id"`
	Value       string   `json:"value"`
	Created     bool     `json:"created"`
	Suggestions []string `json:"suggestions,omitempty"`
}

func catalogRecordId(record any) int {
	return int(reflect.ValueOf(record).Elem().FieldByName("ID").Int())
}

func catalogRecordValue(record any) string {
	return reflect.ValueOf(record).Elem().FieldByName("Value").String()
}

// exact case-insensitive lookup; nil without error on a miss
func findCatalogByValue[T any](ctx context.Context, db *gorm.DB, value string) (*T, error) {
	record := new(T)
	err := db.WithContext(ctx).Where("LOWER(value) = LOWER(?)", value).First(record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return record, nil
}

// substring suggestion search over the first 4 characters
func similarCatalogValues[T any](ctx context.Context, db *gorm.DB, value string) ([]string, error) {
	prefix := value
	if len([]rune(prefix)) > 4 {
		prefix = string([]rune(prefix)[:4])
	}
	var model T
	var values []string
	err := db.WithContext(ctx).Model(&model).
		Where("LOWER(value) LIKE LOWER(?)", "%"+prefix+"%").
		Order("value").
		Limit(config.SearchLimit).
		Pluck("value", &values).Error
	if err != nil {
		return nil, err
	}
	return values, nil
}

func isDuplicateKeyErr(err error) bool {
	var mysqlErr *mysqlDriver.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == 1062
	}
	return false
}

func createCatalogRecord[T any](ctx context.Context, db *gorm.DB, value string) (*T, error) {
	record := new(T)
	reflect.ValueOf(record).Elem().FieldByName("Value").SetString(value)
	if err := db.WithContext(ctx).Create(record).Error; err != nil {
		// a concurrent import can create the same value; the unique
		// index wins and we use whichever record landed first
		if isDuplicateKeyErr(err) {
			existing, findErr := findCatalogByValue[T](ctx, db, value)
			if findErr == nil && existing != nil {
				return existing, nil
			}
		}
		return nil, err
	}
	return record, nil
}

func matchValueCatalog[T any](ctx context.Context, db *gorm.DB, rawValue string, autoCreate bool) (*CatalogMatch, error) {
	// Match on the accent-stripped form, but store and report the
	// capitalized raw value so created records keep their diacritics.
	display := utils.CapitalizeFirst(strings.TrimSpace(rawValue))
	lookup := utils.CleanValue(rawValue)

	record, err := findCatalogByValue[T](ctx, db, lookup)
	if err != nil {
		return nil, err
	}
	if record != nil {
		return &CatalogMatch{ID: catalogRecordId(record), Value: catalogRecordValue(record)}, nil
	}

	if autoCreate {
		record, err = createCatalogRecord[T](ctx, db, display)
		if err != nil {
			return nil, err
		}
		return &CatalogMatch{ID: catalogRecordId(record), Value: catalogRecordValue(record), Created: true}, nil
	}

	suggestions, err := similarCatalogValues[T](ctx, db, lookup)
	if err != nil {
		return nil, err
	}
	return &CatalogMatch{Value: display, Suggestions: suggestions}, nil
}

// MatchCatalog resolves a raw cell value against one flat value
// catalog. autoCreate is the open-ended-catalog path (provider and the
// auxiliary amenity catalogs); mandatory catalogs return suggestions
// instead.
func MatchCatalog(ctx context.Context, db *gorm.DB, key CatalogKey, rawValue string, autoCreate bool) (*CatalogMatch, error) {
	switch key {
	case CatalogKeyPropertyType:
		return matchValueCatalog[PropertyType](ctx, db, rawValue, autoCreate)
	case CatalogKeyStatus:
		return matchValueCatalog[PropertyStatus](ctx, db, rawValue, autoCreate)
	case CatalogKeyProvider:
		return matchValueCatalog[Provider](ctx, db, rawValue, autoCreate)
	case CatalogKeyPropertyRange:
		return matchValueCatalog[PropertyRange](ctx, db, rawValue, autoCreate)
	case CatalogKeyIllumination:
		return matchValueCatalog[Illumination](ctx, db, rawValue, autoCreate)
	case CatalogKeyPropertyCondition:
		return matchValueCatalog[PropertyCondition](ctx, db, rawValue, autoCreate)
	case CatalogKeyZoneDemand:
		return matchValueCatalog[ZoneDemand](ctx, db, rawValue, autoCreate)
	case CatalogKeyAccessibility:
		return matchValueCatalog[Accessibility](ctx, db, rawValue, autoCreate)
	}
	return nil, errors.New("invalid catalog key: " + string(key))
}

// FindOrCreateCatalogRecord always resolves to a record, creating it
// with a capitalized display value when absent. Used by the correction
// loop and the catalog creation endpoint.
func FindOrCreateCatalogRecord(ctx context.Context, db *gorm.DB, key CatalogKey, value string) (*CatalogMatch, error) {
	return MatchCatalog(ctx, db, key, value, true)
}

func listValueCatalog[T any](ctx context.Context, db *gorm.DB) ([]*CatalogMatch, error) {
	var records []T
	if err := db.WithContext(ctx).Order("value").Find(&records).Error; err != nil {
		return nil, err
	}
	out := make([]*CatalogMatch, 0, len(records))
	for i := range records {
		out = append(out, &CatalogMatch{
			ID:    catalogRecordId(&records[i]),
			Value: catalogRecordValue(&records[i]),
		})
	}
	return out, nil
}

// FixAndMatch resolves a user-corrected value for any catalog key,
// creating the record when no exact match exists. City resolution
// needs the already-resolved stateId; every other key ignores it.
func FixAndMatch(ctx context.Context, db *gorm.DB, key CatalogKey, value string, stateId int) (*CatalogMatch, error) {
	switch key {
	case CatalogKeyState:
		state, err := FindOrCreateState(ctx, db, value)
		if err != nil {
			return nil, err
		}
		return &CatalogMatch{ID: state.ID, Value: state.Name}, nil
	case CatalogKeyCity:
		if stateId == 0 {
			return nil, errors.New("a resolved state is required to fix a city")
		}
		city, err := FindOrCreateCity(ctx, db, value, stateId)
		if err != nil {
			return nil, err
		}
		return &CatalogMatch{ID: city.ID, Value: city.Name}, nil
	}
	return FindOrCreateCatalogRecord(ctx, db, key, value)
}

// GetCatalogValues lists one catalog for pickers, in display order.
func GetCatalogValues(ctx context.Context, key CatalogKey) ([]*CatalogMatch, error) {
	db := config.GetDB()

	switch key {
	case CatalogKeyPropertyType:
		return listValueCatalog[PropertyType](ctx, db)
	case CatalogKeyStatus:
		return listValueCatalog[PropertyStatus](ctx, db)
	case CatalogKeyProvider:
		return listValueCatalog[Provider](ctx, db)
	case CatalogKeyPropertyRange:
		return listValueCatalog[PropertyRange](ctx, db)
	case CatalogKeyIllumination:
		return listValueCatalog[Illumination](ctx, db)
	case CatalogKeyPropertyCondition:
		return listValueCatalog[PropertyCondition](ctx, db)
	case CatalogKeyZoneDemand:
		return listValueCatalog[ZoneDemand](ctx, db)
	case CatalogKeyAccessibility:
		return listValueCatalog[Accessibility](ctx, db)
	}
	return nil, errors.New("invalid catalog key: " + string(key))
}
