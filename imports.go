package main

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/habitamx/listings_backend/config"
	"github.com/habitamx/listings_backend/models"
	"github.com/habitamx/listings_backend/utils"
)

// maxImportFileSize bounds the uploaded spreadsheet (16 MB).
const maxImportFileSize = 16 << 20

func importPropertiesHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := config.GetLogger()

		ctx, span := tracer.Start(c.Request.Context(), "import-properties")
		defer span.End()

		fileHeader, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No file"})
			return
		}
		if fileHeader.Size > maxImportFileSize {
			c.JSON(http.StatusBadRequest, gin.H{"error": "El archivo es demasiado grande."})
			return
		}

		userId := c.PostForm("userId")
		if userId == "" {
			userId = "admin"
		}
		ctx = utils.SetUserIdInContext(ctx, userId)

		// Best-effort serialization of concurrent imports per user.
		lock, err := utils.ImportLock(ctx, userId, "imports.go", "importPropertiesHandler")
		if err != nil {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		if lock != nil {
			defer func() {
				if releaseErr := lock.Release(ctx); releaseErr != nil {
					config.LogError(ctx, logger, "imports.go", "importPropertiesHandler", "release lock", userId, releaseErr)
				}
			}()
		}

		file, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No se pudo leer el archivo."})
			return
		}
		defer file.Close()
		data, err := io.ReadAll(file)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No se pudo leer el archivo."})
			return
		}

		result, err := models.ImportProperties(ctx, fileHeader.Filename, data, userId)
		if err != nil {
			if errors.Is(err, models.ErrInvalidImportFile) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Archivo inválido. No tiene suficientes filas."})
				return
			}
			config.LogError(ctx, logger, "imports.go", "importPropertiesHandler", "import", fileHeader.Filename, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error inesperado al cargar el archivo."})
			return
		}

		if len(result.FailedRows) > 0 {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":      result.Message,
				"failedRows": result.FailedRows,
				"imported":   result.Imported,
				"warnings":   result.Warnings,
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"imported": result.Imported,
			"errors":   result.Errors,
			"warnings": result.Warnings,
			"message":  result.Message,
		})
	}
}

func fixImportRowHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := config.GetLogger()

		var fix models.ImportRowFix
		if err := c.ShouldBindJSON(&fix); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "fields": utils.ProcessValidationErrors(err)})
			return
		}
		if fix.UserId == "" {
			fix.UserId = "admin"
		}

		ctx := utils.SetUserIdInContext(c.Request.Context(), fix.UserId)
		result, err := models.FixImportRow(ctx, &fix)
		if err != nil {
			if _, keyErr := models.ParseCatalogKey(fix.Field); keyErr != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid field"})
				return
			}
			config.LogError(ctx, logger, "imports.go", "fixImportRowHandler", "fix row", fix, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error inesperado al corregir el campo."})
			return
		}
		if result.Record == nil || result.Record.ID == 0 {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "No se pudo corregir el campo. Intenta con otro valor."})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"ok":         true,
			"record":     result.Record,
			"property":   result.Property,
			"unresolved": result.Unresolved,
			"warnings":   result.Warnings,
		})
	}
}
