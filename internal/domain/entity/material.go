package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
)

// MaterialCategory categoría cerrada de materiales. Los valores numéricos son los persistidos en la columna category.
type MaterialCategory int

const (
	CategoryDisposables MaterialCategory = iota + 1
	CategoryDurables
	CategoryUsageMaterials
	CategoryImpressionMaterials
	CategoryCementationMaterials
	CategoryRestorationMaterials
	CategoryDisponsabols
	CategoryExtracion
	CategoryBurs
	CategoryImplantAcessories
	CategoryOrtodontics
	CategoryCleaning
	CategoryEndodonticsRCT
)

var categoryNames = map[MaterialCategory]string{
	CategoryDisposables:          "Disposables",
	CategoryDurables:             "Durables",
	CategoryUsageMaterials:       "UsageMaterials",
	CategoryImpressionMaterials:  "ImpressionMaterials",
	CategoryCementationMaterials: "CementationMaterials",
	CategoryRestorationMaterials: "RestorationMaterials",
	CategoryDisponsabols:         "Disponsabols",
	CategoryExtracion:            "Extracion",
	CategoryBurs:                 "Burs",
	CategoryImplantAcessories:    "ImplantAcessories",
	CategoryOrtodontics:          "Ortodontics",
	CategoryCleaning:             "Cleaning",
	CategoryEndodonticsRCT:       "EndodonticsRCT",
}

// AllCategories devuelve las categorías en orden numérico.
func AllCategories() []MaterialCategory {
	out := make([]MaterialCategory, 0, len(categoryNames))
	for c := CategoryDisposables; c <= CategoryEndodonticsRCT; c++ {
		out = append(out, c)
	}
	return out
}

// String devuelve el nombre serializable de la categoría.
func (c MaterialCategory) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return "Unknown"
}

// Valid indica si c es un miembro de la enumeración.
func (c MaterialCategory) Valid() bool {
	_, ok := categoryNames[c]
	return ok
}

// ParseMaterialCategory convierte el nombre (sin distinguir mayúsculas) o el número a MaterialCategory.
func ParseMaterialCategory(s string) (MaterialCategory, bool) {
	s = strings.TrimSpace(s)
	for c, name := range categoryNames {
		if strings.EqualFold(name, s) {
			return c, true
		}
	}
	var n int
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
		n = n*10 + int(r-'0')
		if n > int(CategoryEndodonticsRCT) {
			return 0, false
		}
	}
	c := MaterialCategory(n)
	return c, s != "" && c.Valid()
}

// Material representa un material odontológico con su cantidad en bodega general (warehouse).
// Quantity nunca es negativa; solo se modifica mediante movimientos de stock o la actualización administrativa.
type Material struct {
	ID                string
	Name              string
	Category          MaterialCategory
	Quantity          int             // cantidad en bodega general
	Cost              decimal.Decimal // costo unitario vigente
	LastAddedQuantity int
	LastAddedTotal    decimal.Decimal
	LastAddedAt       time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// NormalizeMaterialName clave de comparación para la unicidad nombre+categoría.
// cases.Caser no es seguro entre goroutines: se crea uno por llamada.
func NormalizeMaterialName(name string) string {
	return cases.Fold().String(strings.TrimSpace(name))
}

// SameIdentity indica si el material tiene el mismo nombre (case-insensitive) y categoría.
func (m *Material) SameIdentity(name string, category MaterialCategory) bool {
	return m.Category == category && NormalizeMaterialName(m.Name) == NormalizeMaterialName(name)
}
