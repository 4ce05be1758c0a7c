package models

import (
	"context"
	"errors"
	"time"

	"github.com/habitamx/listings_backend/config"
	"github.com/habitamx/listings_backend/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Property struct {
	ID           int             `gorm:"primary_key" json:"id"`
	PropertyId   string          `gorm:"size:100;uniqueIndex;not null" json:"property_id" binding:"required"`
	Title        string          `gorm:"size:255;not null" json:"title" binding:"required"`
	Description  string          `gorm:"type:text" json:"description"`
	Price        decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"price"`
	UserId       string          `gorm:"index;size:100;not null" json:"user_id" binding:"required"`
	Availability *bool           `gorm:"not null;default:true" json:"availability"`
	VideoUrl     *string         `gorm:"size:512" json:"video_url"`

	PropertyTypeId      int  `gorm:"index;not null" json:"property_type_id" binding:"required"`
	StatusId            int  `gorm:"index;not null" json:"status_id" binding:"required"`
	ProviderId          *int `json:"provider_id"`
	PropertyRangeId     *int `json:"property_range_id"`
	IlluminationId      *int `json:"illumination_id"`
	PropertyConditionId *int `json:"property_condition_id"`
	ZoneDemandId        *int `json:"zone_demand_id"`
	AccessibilityId     *int `json:"accessibility_id"`

	Feature  PropertyFeature  `gorm:"foreignKey:PropertyRefId" json:"feature"`
	Location PropertyLocation `gorm:"foreignKey:PropertyRefId" json:"location"`
	Images   []PropertyImage  `gorm:"foreignKey:PropertyRefId" json:"images"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type PropertyFeature struct {
	ID            int `gorm:"primary_key" json:"id"`
	PropertyRefId int `gorm:"uniqueIndex;not null" json:"-"`

	Bedrooms       int             `json:"bedrooms"`
	Bathrooms      int             `json:"bathrooms"`
	HalfBathrooms  int             `json:"half_bathrooms"`
	Levels         int             `json:"levels"`
	Parking        int             `json:"parking"`
	Age            int             `json:"age"`
	Balcony        bool            `json:"balcony"`
	Pool           bool            `json:"pool"`
	Furnished      bool            `json:"furnished"`
	Downtown       bool            `json:"downtown"`
	Connectivity   bool            `json:"connectivity"`
	GreenAreas     bool            `json:"green_areas"`
	AcceptsBank    bool            `json:"accepts_credit_bank"`
	AcceptsSocial  bool            `json:"accepts_credit_social"`
	TerrainM2      decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"terrain_m2"`
	ConstructionM2 decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"construction_m2"`
}

type PropertyLocation struct {
	ID            int    `gorm:"primary_key" json:"id"`
	PropertyRefId int    `gorm:"uniqueIndex;not null" json:"-"`
	Address       string `gorm:"size:255" json:"address"`
	ZipCode       string `gorm:"size:10" json:"zip_code"`
	UrlGoogleMaps string `gorm:"size:512" json:"url_google_maps"`
	CityId        int    `gorm:"index;not null" json:"city_id"`
}

type PropertyImage struct {
	ID            int    `gorm:"primary_key" json:"id"`
	PropertyRefId int    `gorm:"index;not null" json:"-"`
	Url           string `gorm:"size:512;not null" json:"url"`
}

type NewProperty struct {
	PropertyId   string          `json:"property_id" binding:"required"`
	Title        string          `json:"title" binding:"required"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
	UserId       string          `json:"user_id" binding:"required"`
	Availability *bool           `json:"availability"`
	VideoUrl     *string         `json:"video_url"`

	PropertyTypeId      int  `json:"property_type_id" binding:"required"`
	StatusId            int  `json:"status_id" binding:"required"`
	ProviderId          *int `json:"provider_id"`
	PropertyRangeId     *int `json:"property_range_id"`
	IlluminationId      *int `json:"illumination_id"`
	PropertyConditionId *int `json:"property_condition_id"`
	ZoneDemandId        *int `json:"zone_demand_id"`
	AccessibilityId     *int `json:"accessibility_id"`

	Feature  NewPropertyFeature  `json:"feature"`
	Location NewPropertyLocation `json:"location" binding:"required"`
	Images   []string            `json:"image_urls"`
}

type NewPropertyFeature struct {
	Bedrooms       int             `json:"bedrooms"`
	Bathrooms      int             `json:"bathrooms"`
	HalfBathrooms  int             `json:"half_bathrooms"`
	Levels         int             `json:"levels"`
	Parking        int             `json:"parking"`
	Age            int             `json:"age"`
	Balcony        bool            `json:"balcony"`
	Pool           bool            `json:"pool"`
	Furnished      bool            `json:"furnished"`
	Downtown       bool            `json:"downtown"`
	Connectivity   bool            `json:"connectivity"`
	GreenAreas     bool            `json:"green_areas"`
	AcceptsBank    bool            `json:"accepts_credit_bank"`
	AcceptsSocial  bool            `json:"accepts_credit_social"`
	TerrainM2      decimal.Decimal `json:"terrain_m2"`
	ConstructionM2 decimal.Decimal `json:"construction_m2"`
}

type NewPropertyLocation struct {
	Address       string `json:"address"`
	ZipCode       string `json:"zip_code"`
	UrlGoogleMaps string `json:"url_google_maps"`
	CityId        int    `json:"city_id" binding:"required"`
}

// PropertyFilter narrows GetProperties; zero values mean "no filter".
type PropertyFilter struct {
	StateId        int
	CityId         int
	PropertyTypeId int
	StatusId       int
	MinPrice       *decimal.Decimal
	MaxPrice       *decimal.Decimal
	Availability   *bool
	Limit          int
	Offset         int
}

// validate input for both create & update. (id = 0 for create)
func (input *NewProperty) validate(ctx context.Context, id int) error {
	if err := utils.ValidateUnique[Property](ctx, "property_id", input.PropertyId, id); err != nil {
		return errors.New("property id already exists")
	}
	if err := utils.ValidateResourceId[PropertyType](ctx, input.PropertyTypeId); err != nil {
		return errors.New("property type not found")
	}
	if err := utils.ValidateResourceId[PropertyStatus](ctx, input.StatusId); err != nil {
		return errors.New("status not found")
	}
	if err := utils.ValidateResourceId[City](ctx, input.Location.CityId); err != nil {
		return errors.New("city not found")
	}
	if input.ProviderId != nil && *input.ProviderId > 0 {
		if err := utils.ValidateResourceId[Provider](ctx, *input.ProviderId); err != nil {
			return errors.New("provider not found")
		}
	}
	if input.PropertyRangeId != nil && *input.PropertyRangeId > 0 {
		if err := utils.ValidateResourceId[PropertyRange](ctx, *input.PropertyRangeId); err != nil {
			return errors.New("property range not found")
		}
	}
	if input.IlluminationId != nil && *input.IlluminationId > 0 {
		if err := utils.ValidateResourceId[Illumination](ctx, *input.IlluminationId); err != nil {
			return errors.New("illumination not found")
		}
	}
	if input.PropertyConditionId != nil && *input.PropertyConditionId > 0 {
		if err := utils.ValidateResourceId[PropertyCondition](ctx, *input.PropertyConditionId); err != nil {
			return errors.New("property condition not found")
		}
	}
	if input.ZoneDemandId != nil && *input.ZoneDemandId > 0 {
		if err := utils.ValidateResourceId[ZoneDemand](ctx, *input.ZoneDemandId); err != nil {
			return errors.New("zone demand not found")
		}
	}
	if input.AccessibilityId != nil && *input.AccessibilityId > 0 {
		if err := utils.ValidateResourceId[Accessibility](ctx, *input.AccessibilityId); err != nil {
			return errors.New("accessibility not found")
		}
	}
	if input.VideoUrl != nil && *input.VideoUrl != "" && !utils.IsValidURL(*input.VideoUrl) {
		return errors.New("video url is not a valid url")
	}
	for _, url := range input.Images {
		if !utils.IsValidURL(url) {
			return errors.New("image url is not a valid url")
		}
	}
	return nil
}

func (input *NewProperty) toProperty() Property {
	availability := input.Availability
	if availability == nil {
		availability = utils.NewTrue()
	}
	images := make([]PropertyImage, 0, len(input.Images))
	for _, url := range input.Images {
		images = append(images, PropertyImage{Url: url})
	}
	return Property{
		PropertyId:          input.PropertyId,
		Title:               input.Title,
		Description:         input.Description,
		Price:               input.Price,
		UserId:              input.UserId,
		Availability:        availability,
		VideoUrl:            input.VideoUrl,
		PropertyTypeId:      input.PropertyTypeId,
		StatusId:            input.StatusId,
		ProviderId:          input.ProviderId,
		PropertyRangeId:     input.PropertyRangeId,
		IlluminationId:      input.IlluminationId,
		PropertyConditionId: input.PropertyConditionId,
		ZoneDemandId:        input.ZoneDemandId,
		AccessibilityId:     input.AccessibilityId,
		Feature: PropertyFeature{
			Bedrooms:       input.Feature.Bedrooms,
			Bathrooms:      input.Feature.Bathrooms,
			HalfBathrooms:  input.Feature.HalfBathrooms,
			Levels:         input.Feature.Levels,
			Parking:        input.Feature.Parking,
			Age:            input.Feature.Age,
			Balcony:        input.Feature.Balcony,
			Pool:           input.Feature.Pool,
			Furnished:      input.Feature.Furnished,
			Downtown:       input.Feature.Downtown,
			Connectivity:   input.Feature.Connectivity,
			GreenAreas:     input.Feature.GreenAreas,
			AcceptsBank:    input.Feature.AcceptsBank,
			AcceptsSocial:  input.Feature.AcceptsSocial,
			TerrainM2:      input.Feature.TerrainM2,
			ConstructionM2: input.Feature.ConstructionM2,
		},
		Location: PropertyLocation{
			Address:       input.Location.Address,
			ZipCode:       utils.FormatZip(input.Location.ZipCode),
			UrlGoogleMaps: input.Location.UrlGoogleMaps,
			CityId:        input.Location.CityId,
		},
		Images: images,
	}
}

func CreateProperty(ctx context.Context, input *NewProperty) (*Property, error) {
	if err := input.validate(ctx, 0); err != nil {
		return nil, err
	}

	property := input.toProperty()

	db := config.GetDB()
	tx := db.Begin()
	if err := tx.WithContext(ctx).Create(&property).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	return &property, nil
}

func GetProperty(ctx context.Context, id int) (*Property, error) {
	db := config.GetDB()
	var property Property
	err := db.WithContext(ctx).
		Preload("Feature").Preload("Location").Preload("Images").
		First(&property, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrorRecordNotFound
		}
		return nil, err
	}
	return &property, nil
}

func GetProperties(ctx context.Context, filter PropertyFilter) ([]*Property, error) {
	db := config.GetDB()

	query := db.WithContext(ctx).Model(&Property{}).
		Preload("Feature").Preload("Location").Preload("Images")

	if filter.StateId > 0 || filter.CityId > 0 {
		query = query.Joins("JOIN property_locations ON property_locations.property_ref_id = properties.id")
		if filter.CityId > 0 {
			query = query.Where("property_locations.city_id = ?", filter.CityId)
		}
		if filter.StateId > 0 {
			query = query.Joins("JOIN cities ON cities.id = property_locations.city_id").
				Where("cities.state_id = ?", filter.StateId)
		}
	}
	if filter.PropertyTypeId > 0 {
		query = query.Where("properties.property_type_id = ?", filter.PropertyTypeId)
	}
	if filter.StatusId > 0 {
		query = query.Where("properties.status_id = ?", filter.StatusId)
	}
	if filter.MinPrice != nil {
		query = query.Where("properties.price >= ?", filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		query = query.Where("properties.price <= ?", filter.MaxPrice)
	}
	if filter.Availability != nil {
		query = query.Where("properties.availability = ?", *filter.Availability)
	}

	limit := filter.Limit
	if limit <= 0 || limit > 100 {
		limit = config.SearchLimit
	}

	var properties []*Property
	err := query.Order("properties.created_at DESC").
		Limit(limit).Offset(filter.Offset).
		Find(&properties).Error
	if err != nil {
		return nil, err
	}
	return properties, nil
}

func UpdateProperty(ctx context.Context, id int, input *NewProperty) (*Property, error) {
	existing, err := GetProperty(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := input.validate(ctx, id); err != nil {
		return nil, err
	}

	db := config.GetDB()
	tx := db.Begin()

	err = tx.WithContext(ctx).Model(existing).Updates(map[string]interface{}{
		"PropertyId":          input.PropertyId,
		"Title":               input.Title,
		"Description":         input.Description,
		"Price":               input.Price,
		"UserId":              input.UserId,
		"Availability":        input.Availability,
		"VideoUrl":            input.VideoUrl,
		"PropertyTypeId":      input.PropertyTypeId,
		"StatusId":            input.StatusId,
		"ProviderId":          input.ProviderId,
		"PropertyRangeId":     input.PropertyRangeId,
		"IlluminationId":      input.IlluminationId,
		"PropertyConditionId": input.PropertyConditionId,
		"ZoneDemandId":        input.ZoneDemandId,
		"AccessibilityId":     input.AccessibilityId,
	}).Error
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	replacement := input.toProperty()
	replacement.Feature.PropertyRefId = existing.ID
	replacement.Location.PropertyRefId = existing.ID

	err = tx.WithContext(ctx).Model(&PropertyFeature{}).
		Where("property_ref_id = ?", existing.ID).
		Select("*").Omit("id", "property_ref_id").
		Updates(replacement.Feature).Error
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	err = tx.WithContext(ctx).Model(&PropertyLocation{}).
		Where("property_ref_id = ?", existing.ID).
		Select("*").Omit("id", "property_ref_id").
		Updates(replacement.Location).Error
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	if input.Images != nil {
		if err := tx.WithContext(ctx).Where("property_ref_id = ?", existing.ID).
			Delete(&PropertyImage{}).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
		for _, url := range input.Images {
			image := PropertyImage{PropertyRefId: existing.ID, Url: url}
			if err := tx.WithContext(ctx).Create(&image).Error; err != nil {
				tx.Rollback()
				return nil, err
			}
		}
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	return GetProperty(ctx, id)
}

func DeleteProperty(ctx context.Context, id int) error {
	if _, err := GetProperty(ctx, id); err != nil {
		return err
	}

	db := config.GetDB()
	tx := db.Begin()
	for _, child := range []interface{}{&PropertyFeature{}, &PropertyLocation{}, &PropertyImage{}} {
		if err := tx.WithContext(ctx).Where("property_ref_id = ?", id).Delete(child).Error; err != nil {
			tx.Rollback()
			return err
		}
	}
	if err := tx.WithContext(ctx).Delete(&Property{}, id).Error; err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit().Error
}

// FindPropertyByPropertyId is the duplicate check used by the importer.
// Returns nil without error when the external id is unused.
func FindPropertyByPropertyId(ctx context.Context, db *gorm.DB, propertyId string) (*Property, error) {
	var property Property
	err := db.WithContext(ctx).Where("property_id = ?", propertyId).First(&property).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &property, nil
}
