package models

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/habitamx/listings_backend/config"
	"github.com/habitamx/listings_backend/utils"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// ErrInvalidImportFile marks structural problems with the uploaded
// file (unreadable, too few rows). Handlers map it to a 400.
var ErrInvalidImportFile = errors.New("invalid import file")

// ImportRow is one data row keyed by the column tags from the tags row.
type ImportRow map[string]string

// UnresolvedField is one blocked row: the first mandatory reference
// the matcher could not resolve, with suggestions for the corrector.
type UnresolvedField struct {
	Row         int      `json:"row"`
	Field       string   `json:"field"`
	Value       string   `json:"value"`
	State       string   `json:"state,omitempty"`
	Message     string   `json:"message"`
	Suggestions []string `json:"suggestions"`
}

// Warning records a non-blocking side effect, e.g. an auto-created
// provider.
type Warning struct {
	Row     int    `json:"row"`
	Field   string `json:"field"`
	Message string `json:"msg"`
}

// PropertyRowError is a persistence failure for one already-matched
// row. It does not abort sibling rows.
type PropertyRowError struct {
	Row     int    `json:"row"`
	Message string `json:"msg"`
}

// PropertyDraft is a fully matched row, ready to persist.
type PropertyDraft struct {
	Row       ImportRow
	RowNumber int

	StateId             int
	CityId              int
	PropertyTypeId      int
	StatusId            int
	ProviderId          *int
	PropertyRangeId     *int
	IlluminationId      *int
	PropertyConditionId *int
	ZoneDemandId        *int
	AccessibilityId     *int
}

type ImportResult struct {
	Imported   int                `json:"imported"`
	Errors     []PropertyRowError `json:"errors"`
	Warnings   []Warning          `json:"warnings"`
	FailedRows []UnresolvedField  `json:"failedRows,omitempty"`
	Message    string             `json:"message,omitempty"`
}

// ImportIssues accumulates blocked rows and warnings across phase one.
type ImportIssues struct {
	FailedRows []UnresolvedField
	Warnings   []Warning
}

func sniffDelimiter(text string) rune {
	firstLine := text
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		firstLine = text[:i]
	}
	if strings.ContainsRune(firstLine, ';') {
		return ';'
	}
	return ','
}

// ParseImportFile turns an uploaded file into raw rows. Spreadsheets
// (.xlsx) go through excelize; anything else is treated as CSV with
// the delimiter sniffed from the first line and relaxed column counts.
func ParseImportFile(filename string, data []byte) ([][]string, error) {
	if strings.HasSuffix(strings.ToLower(filename), ".xlsx") {
		file, err := excelize.OpenReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidImportFile, err.Error())
		}
		defer file.Close()
		sheets := file.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("%w: el archivo no tiene hojas", ErrInvalidImportFile)
		}
		rows, err := file.GetRows(sheets[0])
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidImportFile, err.Error())
		}
		return rows, nil
	}

	text := string(data)
	reader := csv.NewReader(strings.NewReader(text))
	reader.Comma = sniffDelimiter(text)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidImportFile, err.Error())
	}
	return rows, nil
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// mapRowTags builds the tag→value map for one data row. Cells beyond
// the tag count are dropped; missing cells map to "".
func mapRowTags(tags []string, row []string) ImportRow {
	mapped := make(ImportRow, len(tags))
	for i, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		value := ""
		if i < len(row) {
			value = strings.TrimSpace(row[i])
		}
		mapped[tag] = value
	}
	return mapped
}

// Data rows start after the two header rows and the tags row; reported
// row numbers are 1-based positions in the spreadsheet.
const (
	importTagsRowIndex  = 2
	importDataRowOffset = 3
	importMinRows       = 4
)

func importRowNumber(dataIndex int) int {
	return dataIndex + importDataRowOffset + 1
}

// MatchAndPrepareProperty resolves one row against the reference
// catalogs. The first unresolved mandatory field records exactly one
// UnresolvedField on issues and stops the row (nil draft). Open-ended
// catalogs are created on the fly with a Warning.
func MatchAndPrepareProperty(ctx context.Context, db *gorm.DB, row ImportRow, rowNumber int, issues *ImportIssues) (*PropertyDraft, error) {
	if propertyId := row["propertyId"]; propertyId != "" {
		existing, err := FindPropertyByPropertyId(ctx, db, propertyId)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			issues.FailedRows = append(issues.FailedRows, UnresolvedField{
				Row:         rowNumber,
				Field:       "propertyId",
				Value:       propertyId,
				Message:     fmt.Sprintf("La propiedad con ID '%s' ya existe.", propertyId),
				Suggestions: []string{},
			})
			return nil, nil
		}
	}

	rawState := utils.CleanValue(row["state"])
	stateName := utils.NormalizeStateName(rawState)
	state, err := FindStateByName(ctx, db, stateName)
	if err != nil {
		return nil, err
	}
	if state == nil {
		suggestions, err := SimilarStateNames(ctx, db, stateName)
		if err != nil {
			return nil, err
		}
		issues.FailedRows = append(issues.FailedRows, UnresolvedField{
			Row:         rowNumber,
			Field:       string(CatalogKeyState),
			Value:       rawState,
			Message:     fmt.Sprintf("No se encontró el estado \"%s\".", rawState),
			Suggestions: suggestions,
		})
		return nil, nil
	}

	rawCity := utils.CleanValue(row["city"])
	cityName := utils.NormalizeCityName(rawCity)
	city, err := FindCityByName(ctx, db, cityName, state.ID)
	if err != nil {
		return nil, err
	}
	if city == nil {
		suggestions, err := SimilarCityNames(ctx, db, cityName, state.ID)
		if err != nil {
			return nil, err
		}
		issues.FailedRows = append(issues.FailedRows, UnresolvedField{
			Row:         rowNumber,
			Field:       string(CatalogKeyCity),
			Value:       rawCity,
			State:       state.Name,
			Message:     fmt.Sprintf("No se encontró la ciudad \"%s\" en \"%s\".", rawCity, state.Name),
			Suggestions: suggestions,
		})
		return nil, nil
	}

	draft := PropertyDraft{
		Row:       row,
		RowNumber: rowNumber,
		StateId:   state.ID,
		CityId:    city.ID,
	}

	for _, key := range ValueCatalogKeys {
		rawValue := strings.TrimSpace(row[string(key)])
		mandatory := key.IsMandatoryCatalog()

		if rawValue == "" {
			if !mandatory {
				continue
			}
			issues.FailedRows = append(issues.FailedRows, UnresolvedField{
				Row:         rowNumber,
				Field:       string(key),
				Value:       "",
				Message:     fmt.Sprintf("No se encontró '%s' \"\".", key.Label()),
				Suggestions: []string{},
			})
			return nil, nil
		}

		match, err := MatchCatalog(ctx, db, key, rawValue, !mandatory)
		if err != nil {
			return nil, err
		}
		if match.ID == 0 {
			issues.FailedRows = append(issues.FailedRows, UnresolvedField{
				Row:         rowNumber,
				Field:       string(key),
				Value:       match.Value,
				Message:     fmt.Sprintf("No se encontró '%s' \"%s\".", key.Label(), match.Value),
				Suggestions: match.Suggestions,
			})
			return nil, nil
		}
		if match.Created {
			issues.Warnings = append(issues.Warnings, Warning{
				Row:     rowNumber,
				Field:   string(key),
				Message: fmt.Sprintf("%s '%s' agregado", key.Label(), match.Value),
			})
		}
		draft.setCatalogId(key, match.ID)
	}

	return &draft, nil
}

func (d *PropertyDraft) setCatalogId(key CatalogKey, id int) {
	switch key {
	case CatalogKeyPropertyType:
		d.PropertyTypeId = id
	case CatalogKeyStatus:
		d.StatusId = id
	case CatalogKeyProvider:
		d.ProviderId = &id
	case CatalogKeyPropertyRange:
		d.PropertyRangeId = &id
	case CatalogKeyIllumination:
		d.IlluminationId = &id
	case CatalogKeyPropertyCondition:
		d.PropertyConditionId = &id
	case CatalogKeyZoneDemand:
		d.ZoneDemandId = &id
	case CatalogKeyAccessibility:
		d.AccessibilityId = &id
	}
}

func (d *PropertyDraft) toNewProperty(userId string) *NewProperty {
	row := d.Row

	propertyId := row["propertyId"]
	if propertyId == "" {
		propertyId = uuid.NewString()
	}

	var videoUrl *string
	if v := row["videoUrl"]; v != "" {
		videoUrl = &v
	}

	var images []string
	for _, url := range strings.Split(row["images"], ";") {
		if url = strings.TrimSpace(url); url != "" {
			images = append(images, url)
		}
	}

	availability := utils.IsAffirmative(row["availability"])

	return &NewProperty{
		PropertyId:          propertyId,
		Title:               row["title"],
		Description:         row["description"],
		Price:               utils.ParsePrice(row["price"]),
		UserId:              userId,
		Availability:        &availability,
		VideoUrl:            videoUrl,
		PropertyTypeId:      d.PropertyTypeId,
		StatusId:            d.StatusId,
		ProviderId:          d.ProviderId,
		PropertyRangeId:     d.PropertyRangeId,
		IlluminationId:      d.IlluminationId,
		PropertyConditionId: d.PropertyConditionId,
		ZoneDemandId:        d.ZoneDemandId,
		AccessibilityId:     d.AccessibilityId,
		Feature: NewPropertyFeature{
			Bedrooms:       utils.ParseIntOrZero(row["bedrooms"]),
			Bathrooms:      utils.ParseIntOrZero(row["bathrooms"]),
			HalfBathrooms:  utils.ParseIntOrZero(row["halfBathrooms"]),
			Levels:         utils.ParseIntOrZero(row["levels"]),
			Parking:        utils.ParseIntOrZero(row["parking"]),
			Age:            utils.ParseIntOrZero(row["age"]),
			Balcony:        utils.IsAffirmative(row["balcon"]),
			Pool:           utils.IsAffirmative(row["pool"]),
			Furnished:      utils.IsAffirmative(row["furnished"]),
			Downtown:       utils.IsAffirmative(row["downtown"]),
			Connectivity:   utils.IsAffirmative(row["connectivity"]),
			GreenAreas:     utils.IsAffirmative(row["greenAreas"]),
			AcceptsBank:    utils.IsAffirmative(row["acceptsCreditBank"]),
			AcceptsSocial:  utils.IsAffirmative(row["acceptsCreditSocial"]),
			TerrainM2:      utils.ParsePrice(row["terrainM2"]),
			ConstructionM2: utils.ParsePrice(row["constructionM2"]),
		},
		Location: NewPropertyLocation{
			Address:       row["address"],
			ZipCode:       utils.FormatZip(row["zipCode"]),
			UrlGoogleMaps: row["urlGoogleMaps"],
			CityId:        d.CityId,
		},
		Images: images,
	}
}

// ImportProperties runs the two-phase bulk import. Phase one matches
// every data row against the catalogs; if any row is blocked, nothing
// is persisted and the blocked rows come back on FailedRows. Phase two
// persists the drafts in file order, one transaction per draft, and a
// failure on one row does not abort its siblings.
func ImportProperties(ctx context.Context, filename string, data []byte, userId string) (*ImportResult, error) {
	logger := config.GetLogger()

	rows, err := ParseImportFile(filename, data)
	if err != nil {
		return nil, err
	}
	if len(rows) < importMinRows {
		return nil, fmt.Errorf("%w: no tiene suficientes filas", ErrInvalidImportFile)
	}

	tags := rows[importTagsRowIndex]
	dataRows := rows[importDataRowOffset:]

	db := config.GetDB()
	issues := ImportIssues{}
	drafts := make([]*PropertyDraft, 0, len(dataRows))

	for dataIndex, dataRow := range dataRows {
		if isBlankRow(dataRow) {
			continue
		}
		row := mapRowTags(tags, dataRow)
		draft, err := MatchAndPrepareProperty(ctx, db, row, importRowNumber(dataIndex), &issues)
		if err != nil {
			return nil, err
		}
		if draft != nil {
			drafts = append(drafts, draft)
		}
	}

	result := ImportResult{
		Errors:   []PropertyRowError{},
		Warnings: issues.Warnings,
	}
	if result.Warnings == nil {
		result.Warnings = []Warning{}
	}

	if len(issues.FailedRows) > 0 {
		result.FailedRows = issues.FailedRows
		result.Message = "Algunas filas tienen campos obligatorios no encontrados o mal escritos."
		return &result, nil
	}

	for _, draft := range drafts {
		if _, err := CreateProperty(ctx, draft.toNewProperty(userId)); err != nil {
			config.LogError(ctx, logger, "models", "ImportProperties", "create property", draft.Row, err)
			result.Errors = append(result.Errors, PropertyRowError{
				Row:     draft.RowNumber,
				Message: fmt.Sprintf("No se pudo importar: %s", err.Error()),
			})
			continue
		}
		result.Imported++
	}

	result.Message = fmt.Sprintf("Se importaron %d propiedades.", result.Imported)
	return &result, nil
}

// ImportRowFix is the correction payload for one blocked row.
type ImportRowFix struct {
	Row      int       `json:"row"`
	Field    string    `json:"field" binding:"required"`
	Value    string    `json:"value" binding:"required"`
	StateId  int       `json:"state_id"`
	Original ImportRow `json:"original" binding:"required"`
	UserId   string    `json:"user_id"`
}

// FixRowResult carries the resolved record plus either the property
// that was persisted or the next unresolved field of the same row.
type FixRowResult struct {
	Record     *CatalogMatch    `json:"record"`
	Property   *Property        `json:"property,omitempty"`
	Unresolved *UnresolvedField `json:"unresolved,omitempty"`
	Warnings   []Warning        `json:"warnings,omitempty"`
}

// FixImportRow resolves one corrected field (finding or creating the
// record), re-matches the original row with the correction applied,
// and persists the row when it is now fully resolved. Re-sending the
// same fix resolves to the same record, so the call is idempotent up
// to the final property insert.
func FixImportRow(ctx context.Context, fix *ImportRowFix) (*FixRowResult, error) {
	key, err := ParseCatalogKey(fix.Field)
	if err != nil {
		return nil, err
	}

	db := config.GetDB()
	record, err := FixAndMatch(ctx, db, key, fix.Value, fix.StateId)
	if err != nil {
		return nil, err
	}

	merged := make(ImportRow, len(fix.Original))
	for tag, value := range fix.Original {
		merged[tag] = value
	}
	merged[fix.Field] = record.Value

	issues := ImportIssues{}
	draft, err := MatchAndPrepareProperty(ctx, db, merged, fix.Row, &issues)
	if err != nil {
		return nil, err
	}

	result := FixRowResult{Record: record, Warnings: issues.Warnings}
	if draft == nil {
		if len(issues.FailedRows) > 0 {
			result.Unresolved = &issues.FailedRows[0]
		}
		return &result, nil
	}

	property, err := CreateProperty(ctx, draft.toNewProperty(fix.UserId))
	if err != nil {
		return nil, err
	}
	result.Property = property
	return &result, nil
}
