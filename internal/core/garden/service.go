package garden

import (
	"fmt"

	"garden-advisor/internal/pkg/common"

	"go.uber.org/zap"
)

// Service exposes the interactive specification-gathering flow and the
// seasonal advice tables.
type Service struct {
	categories []ProductCategory
}

// NewService creates the garden service with the built-in category
// specifications.
func NewService() *Service {
	return &Service{
		categories: productCategories,
	}
}

// Categories returns the categories with interactive specifications.
func (s *Service) Categories() []ProductCategory {
	return s.categories
}

// CategoryByID returns the category with the given ID.
func (s *Service) CategoryByID(id string) (*ProductCategory, error) {
	for i := range s.categories {
		if s.categories[i].ID == id {
			return &s.categories[i], nil
		}
	}
	return nil, fmt.Errorf("unknown product category: %s", id)
}

// StartConversation begins the question sequence for a category and returns
// the fresh state along with the first specification to ask.
func (s *Service) StartConversation(categoryID string) (*ConversationState, *Specification, error) {
	category, err := s.CategoryByID(categoryID)
	if err != nil {
		return nil, nil, err
	}
	if len(category.Specifications) == 0 {
		return nil, nil, fmt.Errorf("category %s has no specifications", categoryID)
	}

	state := &ConversationState{
		CurrentCategory:        category.ID,
		CurrentSpecification:   category.Specifications[0].ID,
		AnsweredSpecifications: make(map[string]string),
	}

	common.LogDebug("started specification conversation",
		zap.String("category", category.ID),
		zap.String("first_specification", state.CurrentSpecification),
	)
	return state, &category.Specifications[0], nil
}

// Advance records the answer for the current specification and moves to the
// next one. When the sequence completes, the state is reset and done is
// true.
func (s *Service) Advance(state *ConversationState, answer string) (*Specification, bool, error) {
	if state == nil || state.CurrentCategory == "" {
		return nil, false, fmt.Errorf("conversation has no active category")
	}

	category, err := s.CategoryByID(state.CurrentCategory)
	if err != nil {
		return nil, false, err
	}

	current := -1
	for i := range category.Specifications {
		if category.Specifications[i].ID == state.CurrentSpecification {
			current = i
			break
		}
	}
	if current == -1 {
		return nil, false, fmt.Errorf("unknown specification %s in category %s",
			state.CurrentSpecification, state.CurrentCategory)
	}

	if state.AnsweredSpecifications == nil {
		state.AnsweredSpecifications = make(map[string]string)
	}
	state.AnsweredSpecifications[category.Specifications[current].ID] = answer

	if current+1 >= len(category.Specifications) {
		answered := len(state.AnsweredSpecifications)
		s.Reset(state)
		common.LogDebug("specification conversation completed",
			zap.String("category", category.ID),
			zap.Int("answered", answered),
		)
		return nil, true, nil
	}

	next := &category.Specifications[current+1]
	state.CurrentSpecification = next.ID
	return next, false, nil
}

// Reset clears the conversation state.
func (s *Service) Reset(state *ConversationState) {
	state.CurrentCategory = ""
	state.CurrentSpecification = ""
	state.AnsweredSpecifications = make(map[string]string)
}

// productCategories defines the fixed purchase questions per category.
var productCategories = []ProductCategory{
	{
		ID:          "cortacespedes-electricos",
		Name:        "Cortacéspedes Eléctricos",
		Description: "Máquinas para cortar el césped con motor eléctrico",
		Specifications: []Specification{
			{ID: "power-type", Name: "Tipo de alimentación", Type: SpecSingle, Options: []string{"eléctrico", "batería"}},
			{ID: "cutting-width", Name: "Ancho de corte", Type: SpecRange, Min: 30, Max: 46, Step: 1},
			{ID: "grass-collection", Name: "Recogida de césped", Type: SpecSingle, Options: []string{"con bolsa", "sin bolsa", "mulching"}},
			{ID: "self-propelled", Name: "Autopropulsado", Type: SpecSingle, Options: []string{"sí", "no"}},
		},
	},
	{
		ID:          "desbrozadoras",
		Name:        "Desbrozadoras",
		Description: "Máquinas para cortar hierba alta y maleza",
		Specifications: []Specification{
			{ID: "power-type", Name: "Tipo de alimentación", Type: SpecSingle, Options: []string{"eléctrico", "batería", "gasolina"}},
			{ID: "cutting-width", Name: "Ancho de corte", Type: SpecRange, Min: 25, Max: 40, Step: 1},
			{ID: "line-type", Name: "Tipo de hilo", Type: SpecSingle, Options: []string{"hilo", "disco"}},
		},
	},
	{
		ID:          "cortasetos",
		Name:        "Cortasetos",
		Description: "Herramientas para podar y dar forma a setos",
		Specifications: []Specification{
			{ID: "power-type", Name: "Tipo de alimentación", Type: SpecSingle, Options: []string{"eléctrico", "batería"}},
			{ID: "blade-length", Name: "Longitud de la hoja", Type: SpecRange, Min: 40, Max: 60, Step: 5},
			{ID: "telescopic", Name: "Mango telescópico", Type: SpecSingle, Options: []string{"sí", "no"}},
		},
	},
	{
		ID:          "tijeras-jardineria",
		Name:        "Tijeras de Jardinería",
		Description: "Herramientas manuales para podar y cortar",
		Specifications: []Specification{
			{ID: "blade-type", Name: "Tipo de hoja", Type: SpecSingle, Options: []string{"bypass", "yunque"}},
			{ID: "blade-length", Name: "Longitud de la hoja", Type: SpecRange, Min: 15, Max: 25, Step: 1},
			{ID: "handle-type", Name: "Tipo de mango", Type: SpecSingle, Options: []string{"ergonómico", "estándar"}},
		},
	},
	{
		ID:          "escarificadores",
		Name:        "Escarificadores y Aireadores",
		Description: "Máquinas para airear y escarificar el césped",
		Specifications: []Specification{
			{ID: "power-type", Name: "Tipo de alimentación", Type: SpecSingle, Options: []string{"eléctrico", "batería"}},
			{ID: "working-width", Name: "Ancho de trabajo", Type: SpecRange, Min: 30, Max: 45, Step: 5},
			{ID: "blade-type", Name: "Tipo de cuchillas", Type: SpecSingle, Options: []string{"acero", "carburo"}},
		},
	},
}
