package main

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/habitamx/listings_backend/config"
	"github.com/habitamx/listings_backend/models"
	"github.com/habitamx/listings_backend/utils"
)

func statesHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		states, err := models.GetStates(c.Request.Context())
		if err != nil {
			config.LogError(c.Request.Context(), config.GetLogger(), "catalogs.go", "statesHandler", "list states", nil, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list states"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"states": states})
	}
}

func createStateHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.NewState
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "fields": utils.ProcessValidationErrors(err)})
			return
		}
		state, err := models.CreateState(c.Request.Context(), &input)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, state)
	}
}

func getStateHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil || id <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid state id"})
			return
		}
		state, err := models.GetState(c.Request.Context(), id)
		if err != nil {
			if errors.Is(err, utils.ErrorRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "state not found"})
				return
			}
			config.LogError(c.Request.Context(), config.GetLogger(), "catalogs.go", "getStateHandler", "get state", id, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not get state"})
			return
		}
		c.JSON(http.StatusOK, state)
	}
}

func deleteStateHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil || id <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid state id"})
			return
		}
		state, err := models.DeleteState(c.Request.Context(), id)
		if err != nil {
			if errors.Is(err, utils.ErrorRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "state not found"})
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, state)
	}
}

func getCityHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil || id <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid city id"})
			return
		}
		city, err := models.GetCity(c.Request.Context(), id)
		if err != nil {
			if errors.Is(err, utils.ErrorRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "city not found"})
				return
			}
			config.LogError(c.Request.Context(), config.GetLogger(), "catalogs.go", "getCityHandler", "get city", id, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not get city"})
			return
		}
		c.JSON(http.StatusOK, city)
	}
}

func citiesHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		stateId, err := strconv.Atoi(c.Param("id"))
		if err != nil || stateId <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid state id"})
			return
		}
		cities, err := models.GetCities(c.Request.Context(), stateId)
		if err != nil {
			if errors.Is(err, utils.ErrorRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "state not found"})
				return
			}
			config.LogError(c.Request.Context(), config.GetLogger(), "catalogs.go", "citiesHandler", "list cities", stateId, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list cities"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"cities": cities})
	}
}

func createCityHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		stateId, err := strconv.Atoi(c.Param("id"))
		if err != nil || stateId <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid state id"})
			return
		}
		var body struct {
			Name string `json:"name" binding:"required"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "fields": utils.ProcessValidationErrors(err)})
			return
		}
		input := models.NewCity{Name: body.Name, StateId: stateId}
		city, err := models.CreateCity(c.Request.Context(), &input)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, city)
	}
}

func catalogHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		key, err := models.ParseCatalogKey(c.Param("key"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid catalog key"})
			return
		}
		values, err := models.GetCatalogValues(c.Request.Context(), key)
		if err != nil {
			config.LogError(c.Request.Context(), config.GetLogger(), "catalogs.go", "catalogHandler", "list catalog", key, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list catalog"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"key": key, "values": values})
	}
}

type newCatalogValue struct {
	Value   string `json:"value" binding:"required"`
	StateId int    `json:"state_id"`
}

// createCatalogValueHandler is the same find-or-create path the import
// correction loop uses, exposed for the catalog admin screens.
func createCatalogValueHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		key, err := models.ParseCatalogKey(c.Param("key"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid catalog key"})
			return
		}
		var input newCatalogValue
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "fields": utils.ProcessValidationErrors(err)})
			return
		}
		record, err := models.FixAndMatch(c.Request.Context(), config.GetDB(), key, input.Value, input.StateId)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, record)
	}
}
