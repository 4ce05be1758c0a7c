package models

import (
	"context"
	"errors"
	"strings"

	"github.com/habitamx/listings_backend/config"
	"github.com/habitamx/listings_backend/utils"
	"gorm.io/gorm"
)

type State struct {
	ID   int    `gorm:"primary_key" json:"id"`
	Name string `gorm:"size:100;uniqueIndex;not null" json:"name"`
}

type NewState struct {
	Name string `json:"name" binding:"required"`
}

// validate input for both create & update. (id = 0 for create)
func (input *NewState) validate(ctx context.Context, id int) error {
	if err := utils.ValidateUnique[State](ctx, "name", input.Name, id); err != nil {
		return err
	}
	return nil
}

func CreateState(ctx context.Context, input *NewState) (*State, error) {

	if err := input.validate(ctx, 0); err != nil {
		return nil, err
	}

	state := State{
		Name: utils.CapitalizeFirst(input.Name),
	}

	db := config.GetDB()
	err := db.WithContext(ctx).Create(&state).Error
	if err != nil {
		return nil, err
	}
	return &state, nil
}

func GetState(ctx context.Context, id int) (*State, error) {

	result, err := utils.RetrieveRedis[State](id)
	if err != nil {
		return nil, err
	}

	if result == nil {
		db := config.GetDB()
		// db query
		err := db.WithContext(ctx).First(&result, id).Error
		if err != nil {
			return nil, utils.ErrorRecordNotFound
		}
		// caching
		if err := utils.StoreRedis[State](result, id); err != nil {
			return nil, err
		}
	}

	return result, nil
}

func GetStates(ctx context.Context) ([]*State, error) {
	db := config.GetDB()
	var results []*State
	err := db.WithContext(ctx).Order("name").Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

func DeleteState(ctx context.Context, id int) (*State, error) {

	db := config.GetDB()
	var result State

	err := db.WithContext(ctx).First(&result, id).Error
	if err != nil {
		return nil, utils.ErrorRecordNotFound
	}

	// Do not delete while cities reference this state
	var count int64
	err = db.WithContext(ctx).Model(&City{}).Where("state_id = ?", id).Count(&count).Error
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, errors.New("used by cities")
	}

	err = db.WithContext(ctx).Delete(&result).Error
	if err != nil {
		return nil, err
	}
	if err := utils.RemoveRedisItem[State](id); err != nil {
		return nil, err
	}
	return &result, nil
}

// FindStateByName performs the exact case-insensitive lookup used by
// the import matcher. Returns nil without error on a miss.
func FindStateByName(ctx context.Context, db *gorm.DB, name string) (*State, error) {
	var state State
	err := db.WithContext(ctx).Where("LOWER(name) = LOWER(?)", name).First(&state).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &state, nil
}

// SimilarStateNames suggests states whose name contains the first
// space-delimited token of the unmatched name, in catalog order.
func SimilarStateNames(ctx context.Context, db *gorm.DB, name string) ([]string, error) {
	token := name
	if i := strings.IndexByte(name, ' '); i > 0 {
		token = name[:i]
	}
	var names []string
	err := db.WithContext(ctx).Model(&State{}).
		Where("LOWER(name) LIKE LOWER(?)", "%"+token+"%").
		Order("name").
		Limit(config.SearchLimit).
		Pluck("name", &names).Error
	if err != nil {
		return nil, err
	}
	return names, nil
}

// FindOrCreateState backs the correction loop: the only path through
// which new states enter the catalog.
func FindOrCreateState(ctx context.Context, db *gorm.DB, name string) (*State, error) {
	state, err := FindStateByName(ctx, db, name)
	if err != nil {
		return nil, err
	}
	if state != nil {
		return state, nil
	}
	state = &State{Name: utils.CapitalizeFirst(name)}
	if err := db.WithContext(ctx).Create(state).Error; err != nil {
		return nil, err
	}
	return state, nil
}
