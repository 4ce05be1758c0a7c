package models

import (
	"context"
	"errors"

	"github.com/habitamx/listings_backend/config"
	"github.com/habitamx/listings_backend/utils"
	"gorm.io/gorm"
)

// City names are unique within their state, not globally.
type City struct {
	ID      int    `gorm:"primary_key" json:"id"`
	Name    string `gorm:"size:100;not null;uniqueIndex:idx_cities_state_name" json:"name"`
	StateId int    `gorm:"not null;uniqueIndex:idx_cities_state_name" json:"state_id"`
}

type NewCity struct {
	Name    string `json:"name" binding:"required"`
	StateId int    `json:"state_id" binding:"required"`
}

func (input *NewCity) validate(ctx context.Context, id int) error {
	if err := utils.ValidateResourceId[State](ctx, input.StateId); err != nil {
		return errors.New("state not found")
	}
	var count int64
	var err error
	if id == 0 {
		count, err = utils.ResourceCountWhere[City](ctx, "name = ? AND state_id = ?", input.Name, input.StateId)
	} else {
		count, err = utils.ResourceCountWhere[City](ctx, "name = ? AND state_id = ? AND NOT id = ?", input.Name, input.StateId, id)
	}
	if err != nil {
		return err
	}
	if count > 0 {
		return errors.New("duplicate name")
	}
	return nil
}

func CreateCity(ctx context.Context, input *NewCity) (*City, error) {

	if err := input.validate(ctx, 0); err != nil {
		return nil, err
	}

	city := City{
		Name:    utils.CapitalizeFirst(input.Name),
		StateId: input.StateId,
	}

	db := config.GetDB()
	err := db.WithContext(ctx).Create(&city).Error
	if err != nil {
		return nil, err
	}
	return &city, nil
}

func GetCity(ctx context.Context, id int) (*City, error) {

	result, err := utils.RetrieveRedis[City](id)
	if err != nil {
		return nil, err
	}

	if result == nil {
		db := config.GetDB()
		err := db.WithContext(ctx).First(&result, id).Error
		if err != nil {
			return nil, utils.ErrorRecordNotFound
		}
		if err := utils.StoreRedis[City](result, id); err != nil {
			return nil, err
		}
	}

	return result, nil
}

func GetCities(ctx context.Context, stateId int) ([]*City, error) {
	db := config.GetDB()
	var results []*City
	dbCtx := db.WithContext(ctx)
	if stateId > 0 {
		dbCtx = dbCtx.Where("state_id = ?", stateId)
	}
	err := dbCtx.Order("name").Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

// FindCityByName performs the exact case-insensitive lookup scoped to
// the already-resolved parent state. Returns nil without error on a miss.
func FindCityByName(ctx context.Context, db *gorm.DB, name string, stateId int) (*City, error) {
	var city City
	err := db.WithContext(ctx).
		Where("LOWER(name) = LOWER(?) AND state_id = ?", name, stateId).
		First(&city).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &city, nil
}

// SimilarCityNames suggests cities in the given state whose name
// contains the first 4 characters of the unmatched name.
func SimilarCityNames(ctx context.Context, db *gorm.DB, name string, stateId int) ([]string, error) {
	prefix := name
	if len([]rune(prefix)) > 4 {
		prefix = string([]rune(prefix)[:4])
	}
	var names []string
	err := db.WithContext(ctx).Model(&City{}).
		Where("LOWER(name) LIKE LOWER(?) AND state_id = ?", "%"+prefix+"%", stateId).
		Order("name").
		Limit(config.SearchLimit).
		Pluck("name", &names).Error
	if err != nil {
		return nil, err
	}
	return names, nil
}

// FindOrCreateCity backs the correction loop: the only path through
// which new cities enter the catalog.
func FindOrCreateCity(ctx context.Context, db *gorm.DB, name string, stateId int) (*City, error) {
	city, err := FindCityByName(ctx, db, name, stateId)
	if err != nil {
		return nil, err
	}
	if city != nil {
		return city, nil
	}
	city = &City{Name: utils.CapitalizeFirst(name), StateId: stateId}
	if err := db.WithContext(ctx).Create(city).Error; err != nil {
		return nil, err
	}
	return city, nil
}
