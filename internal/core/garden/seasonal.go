package garden

import "sort"

// defaultRegion is used when a region has no seasonal table of its own.
const defaultRegion = "Madrid"

// seasonalData holds the static advice tables per region and season.
var seasonalData = map[string]map[string]SeasonalInfo{
	"Andalucía": {
		"spring": {
			Season: "primavera",
			Tasks: []string{
				"Preparar el suelo para la siembra",
				"Podar árboles y arbustos",
				"Controlar las malas hierbas",
				"Iniciar el riego regular",
				"Plantar especies de temporada",
			},
			RecommendedProducts: []string{
				"Cortacésped básico",
				"Desbrozadora eléctrica",
				"Kit de herramientas de poda",
				"Sistema de riego por goteo",
			},
			SuggestedQuestions: SuggestedQuestions{
				ProductQuestions: []string{
					"¿Qué cortacésped me recomiendas para mi jardín?",
					"¿Qué desbrozadora es mejor para mi terreno?",
				},
				OpenQuestion: "¿Qué tareas de jardinería debo realizar esta primavera?",
			},
		},
		"summer": {
			Season: "verano",
			Tasks: []string{
				"Mantener el riego adecuado",
				"Cortar el césped regularmente",
				"Controlar plagas y enfermedades",
				"Proteger plantas del calor extremo",
				"Recoger frutas y verduras",
			},
			RecommendedProducts: []string{
				"Sistema de riego automático",
				"Cortacésped profesional",
				"Pulverizador de presión",
				"Manguera extensible",
			},
			SuggestedQuestions: SuggestedQuestions{
				ProductQuestions: []string{
					"¿Qué sistema de riego necesito para el verano?",
					"¿Cómo puedo proteger mis plantas del calor?",
				},
				OpenQuestion: "¿Cómo mantener mi jardín en verano?",
			},
		},
		"autumn": {
			Season: "otoño",
			Tasks: []string{
				"Limpiar hojas caídas",
				"Preparar el suelo para el invierno",
				"Plantar bulbos de primavera",
				"Proteger plantas sensibles",
				"Realizar la última poda",
			},
			RecommendedProducts: []string{
				"Soplador de hojas",
				"Kit de herramientas de jardín",
				"Cubiertas para plantas",
				"Fertilizante de otoño",
			},
			SuggestedQuestions: SuggestedQuestions{
				ProductQuestions: []string{
					"¿Qué soplador me recomiendas para las hojas?",
					"¿Cómo proteger mis plantas del frío?",
				},
				OpenQuestion: "¿Qué preparativos necesito para el invierno?",
			},
		},
		"winter": {
			Season: "invierno",
			Tasks: []string{
				"Proteger plantas del frío",
				"Mantener herramientas",
				"Planificar la próxima temporada",
				"Realizar podas de mantenimiento",
				"Controlar el riego",
			},
			RecommendedProducts: []string{
				"Cubiertas para plantas",
				"Kit de mantenimiento de herramientas",
				"Invernadero portátil",
				"Guantes de jardinería",
			},
			SuggestedQuestions: SuggestedQuestions{
				ProductQuestions: []string{
					"¿Qué protección necesito para mis plantas?",
					"¿Cómo mantener mis herramientas en invierno?",
				},
				OpenQuestion: "¿Qué cuidados necesita mi jardín en invierno?",
			},
		},
	},
	"Madrid": {
		"spring": {
			Season: "primavera",
			Tasks: []string{
				"Preparar el jardín para la nueva temporada",
				"Realizar la primera siega del césped",
				"Plantar especies resistentes",
				"Iniciar el programa de riego",
				"Controlar plagas emergentes",
			},
			RecommendedProducts: []string{
				"Cortacésped profesional",
				"Desbrozadora profesional",
				"Kit de herramientas básicas",
				"Sistema de riego programable",
			},
			SuggestedQuestions: SuggestedQuestions{
				ProductQuestions: []string{
					"¿Qué cortacésped profesional me recomiendas?",
					"¿Qué desbrozadora es mejor para un jardín grande?",
				},
				OpenQuestion: "¿Qué tareas de jardinería debo realizar esta primavera?",
			},
		},
		"summer": {
			Season: "verano",
			Tasks: []string{
				"Mantener el riego eficiente",
				"Proteger plantas del calor",
				"Controlar el crecimiento del césped",
				"Vigilar plagas estivales",
				"Recoger frutos de temporada",
			},
			RecommendedProducts: []string{
				"Sistema de riego por aspersión",
				"Cortacésped de alto rendimiento",
				"Pulverizador de presión",
				"Kit de protección solar",
			},
			SuggestedQuestions: SuggestedQuestions{
				ProductQuestions: []string{
					"¿Qué sistema de riego es más eficiente?",
					"¿Cómo proteger mi jardín del calor extremo?",
				},
				OpenQuestion: "¿Cómo mantener mi jardín en verano?",
			},
		},
		"autumn": {
			Season: "otoño",
			Tasks: []string{
				"Preparar el jardín para el invierno",
				"Limpiar hojas y restos vegetales",
				"Plantar especies de otoño",
				"Realizar podas de formación",
				"Aplicar abono orgánico",
			},
			RecommendedProducts: []string{
				"Soplador profesional",
				"Kit de herramientas de poda",
				"Fertilizante de otoño",
				"Cubiertas para plantas",
			},
			SuggestedQuestions: SuggestedQuestions{
				ProductQuestions: []string{
					"¿Qué soplador profesional me recomiendas?",
					"¿Cómo preparar mis plantas para el invierno?",
				},
				OpenQuestion: "¿Qué preparativos necesito para el invierno?",
			},
		},
		"winter": {
			Season: "invierno",
			Tasks: []string{
				"Proteger plantas sensibles",
				"Mantener herramientas en buen estado",
				"Planificar la próxima temporada",
				"Realizar podas de mantenimiento",
				"Controlar el riego según necesidades",
			},
			RecommendedProducts: []string{
				"Invernadero portátil",
				"Kit de mantenimiento de herramientas",
				"Cubiertas térmicas",
				"Guantes de invierno",
			},
			SuggestedQuestions: SuggestedQuestions{
				ProductQuestions: []string{
					"¿Qué protección necesito para el invierno?",
					"¿Cómo mantener mis herramientas?",
				},
				OpenQuestion: "¿Qué cuidados necesita mi jardín en invierno?",
			},
		},
	},
}

// SeasonForMonth maps a month index to a season key.
func SeasonForMonth(month int) string {
	switch {
	case month >= 3 && month <= 5:
		return "spring"
	case month >= 6 && month <= 8:
		return "summer"
	case month >= 9 && month <= 11:
		return "autumn"
	default:
		return "winter"
	}
}

// SeasonalInfoFor returns the advice block for a region and month. Unknown
// regions fall back to the default region's table.
func SeasonalInfoFor(region string, month int) SeasonalInfo {
	regionInfo, ok := seasonalData[region]
	if !ok {
		regionInfo = seasonalData[defaultRegion]
	}
	return regionInfo[SeasonForMonth(month)]
}

// Regions lists the regions with a seasonal table.
func Regions() []string {
	out := make([]string, 0, len(seasonalData))
	for region := range seasonalData {
		out = append(out, region)
	}
	sort.Strings(out)
	return out
}
