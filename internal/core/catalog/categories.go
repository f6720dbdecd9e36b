package catalog

import (
	"fmt"
	"sort"
	"strings"

	"garden-advisor/internal/pkg/common"
)

// Category is one node of the catalog hierarchy, flattened to a token the
// classifier can return.
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Categories returns every distinct category label across all hierarchy
// levels, sorted by name.
func (idx *Index) Categories() []Category {
	return idx.categories
}

func deriveCategories(entries []entry) []Category {
	seen := make(map[string]struct{})
	var names []string

	for _, e := range entries {
		for _, label := range e.levels.all() {
			if label == "" || label == sentinel {
				continue
			}
			if _, ok := seen[label]; ok {
				continue
			}
			seen[label] = struct{}{}
			names = append(names, label)
		}
	}

	sort.Strings(names)

	categories := make([]Category, 0, len(names))
	for _, name := range names {
		categories = append(categories, Category{
			ID:          common.Slugify(name),
			Name:        name,
			Description: categoryDescription(name),
		})
	}
	return categories
}

// categoryDescriptions maps known category labels to storefront copy.
var categoryDescriptions = map[string]string{
	"Cortacéspedes":               "Máquinas para cortar y mantener el césped",
	"Cortacéspedes de batería":    "Máquinas a batería para cortar el césped, ideales para jardines pequeños y medianos",
	"Cortacéspedes de gasolina":   "Potentes máquinas con motor de gasolina para cortar césped en jardines grandes",
	"Cortacéspedes eléctricos":    "Máquinas con cable eléctrico para cortar césped en jardines pequeños y medianos",
	"Cortacéspedes manuales":      "Máquinas sin motor para cortar césped en áreas pequeñas",
	"Robots cortacésped":          "Máquinas automáticas que cortan el césped sin supervisión",
	"Desbrozadoras":               "Máquinas para cortar hierba alta, maleza y vegetación densa",
	"Cortasetos":                  "Herramientas para recortar y dar forma a setos y arbustos",
	"Biotrituradores":             "Máquinas para triturar ramas y restos de poda",
	"Escarificadores y aireadores": "Máquinas para eliminar musgo y airear el césped",
	"Sopladores y aspiradores":    "Máquinas para limpiar hojas y residuos del jardín",
	"Motosierras":                 "Herramientas para cortar troncos y ramas gruesas",
	"Podadoras telescópicas":      "Herramientas extensibles para podar ramas altas",
	"Tijeras de jardinería":       "Herramientas manuales para poda y corte preciso",
	"Barredoras":                  "Máquinas para limpiar superficies exteriores",
	"Tractores cortacésped":       "Vehículos con asiento para cortar grandes extensiones de césped",
	"Trituradoras":                "Máquinas para reducir el volumen de restos vegetales",
	"Accesorios":                  "Complementos y piezas para máquinas de jardín",
}

func categoryDescription(name string) string {
	if desc, ok := categoryDescriptions[name]; ok {
		return desc
	}
	return fmt.Sprintf("Herramientas y máquinas para %s", strings.ToLower(name))
}
