package main

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/habitamx/listings_backend/config"
	"github.com/habitamx/listings_backend/models"
	"github.com/habitamx/listings_backend/utils"
	"github.com/shopspring/decimal"
)

func createPropertyHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.NewProperty
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "fields": utils.ProcessValidationErrors(err)})
			return
		}
		property, err := models.CreateProperty(c.Request.Context(), &input)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, property)
	}
}

func parsePropertyFilter(c *gin.Context) models.PropertyFilter {
	filter := models.PropertyFilter{
		StateId:        utils.ParseIntOrZero(c.Query("stateId")),
		CityId:         utils.ParseIntOrZero(c.Query("cityId")),
		PropertyTypeId: utils.ParseIntOrZero(c.Query("propertyTypeId")),
		StatusId:       utils.ParseIntOrZero(c.Query("statusId")),
		Limit:          utils.ParseIntOrZero(c.Query("limit")),
		Offset:         utils.ParseIntOrZero(c.Query("offset")),
	}
	if v := c.Query("minPrice"); v != "" {
		if price, err := decimal.NewFromString(v); err == nil {
			filter.MinPrice = &price
		}
	}
	if v := c.Query("maxPrice"); v != "" {
		if price, err := decimal.NewFromString(v); err == nil {
			filter.MaxPrice = &price
		}
	}
	if v := c.Query("availability"); v != "" {
		available := utils.IsAffirmative(v)
		filter.Availability = &available
	}
	return filter
}

func listPropertiesHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		properties, err := models.GetProperties(c.Request.Context(), parsePropertyFilter(c))
		if err != nil {
			config.LogError(c.Request.Context(), config.GetLogger(), "properties.go", "listPropertiesHandler", "list properties", nil, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list properties"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"properties": properties})
	}
}

func getPropertyHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil || id <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid property id"})
			return
		}
		property, err := models.GetProperty(c.Request.Context(), id)
		if err != nil {
			if errors.Is(err, utils.ErrorRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "property not found"})
				return
			}
			config.LogError(c.Request.Context(), config.GetLogger(), "properties.go", "getPropertyHandler", "get property", id, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not get property"})
			return
		}
		c.JSON(http.StatusOK, property)
	}
}

func updatePropertyHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil || id <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid property id"})
			return
		}
		var input models.NewProperty
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "fields": utils.ProcessValidationErrors(err)})
			return
		}
		property, err := models.UpdateProperty(c.Request.Context(), id, &input)
		if err != nil {
			if errors.Is(err, utils.ErrorRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "property not found"})
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, property)
	}
}

func deletePropertyHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil || id <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid property id"})
			return
		}
		if err := models.DeleteProperty(c.Request.Context(), id); err != nil {
			if errors.Is(err, utils.ErrorRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "property not found"})
				return
			}
			config.LogError(c.Request.Context(), config.GetLogger(), "properties.go", "deletePropertyHandler", "delete property", id, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete property"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"deleted": id})
	}
}
