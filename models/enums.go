package models

import (
	"errors"
)

// CatalogKey identifies one reference catalog. Import rows carry these
// as column tags; the fix endpoint carries them as field names.
type CatalogKey string

const (
	CatalogKeyState             CatalogKey = "state"
	CatalogKeyCity              CatalogKey = "city"
	CatalogKeyPropertyType      CatalogKey = "propertyType"
	CatalogKeyStatus            CatalogKey = "status"
	CatalogKeyProvider          CatalogKey = "provider"
	CatalogKeyPropertyRange     CatalogKey = "propertyRange"
	CatalogKeyIllumination      CatalogKey = "illumination"
	CatalogKeyPropertyCondition CatalogKey = "propertyCondition"
	CatalogKeyZoneDemand        CatalogKey = "zoneDemand"
	CatalogKeyAccessibility     CatalogKey = "accessibility"
)

// ValueCatalogKeys are the flat value catalogs (everything except the
// state/city hierarchy), in the order the row matcher resolves them.
var ValueCatalogKeys = []CatalogKey{
	CatalogKeyPropertyType,
	CatalogKeyStatus,
	CatalogKeyProvider,
	CatalogKeyPropertyRange,
	CatalogKeyIllumination,
	CatalogKeyPropertyCondition,
	CatalogKeyZoneDemand,
	CatalogKeyAccessibility,
}

// catalogLabels are the user-facing (Spanish) names used in import
// error messages.
var catalogLabels = map[CatalogKey]string{
	CatalogKeyState:             "Estado",
	CatalogKeyCity:              "Ciudad",
	CatalogKeyPropertyType:      "Tipo de Propiedad",
	CatalogKeyStatus:            "Estatus",
	CatalogKeyProvider:          "Proveedor",
	CatalogKeyPropertyRange:     "Rango de Propiedad",
	CatalogKeyIllumination:      "Iluminación",
	CatalogKeyPropertyCondition: "Condición",
	CatalogKeyZoneDemand:        "Demanda Zona",
	CatalogKeyAccessibility:     "Accesibilidad",
}

func (k CatalogKey) Label() string {
	if label, ok := catalogLabels[k]; ok {
		return label
	}
	return string(k)
}

func ParseCatalogKey(value string) (CatalogKey, error) {
	key := CatalogKey(value)
	if _, ok := catalogLabels[key]; !ok {
		return "", errors.New("invalid catalog key")
	}
	return key, nil
}

// IsMandatoryCatalog reports whether a miss on this catalog blocks the
// row. Mandatory reference data must pre-exist or be resolved through
// the correction loop; the open-ended catalogs auto-create instead.
func (k CatalogKey) IsMandatoryCatalog() bool {
	switch k {
	case CatalogKeyState, CatalogKeyCity, CatalogKeyPropertyType, CatalogKeyStatus:
		return true
	}
	return false
}
