package garden

// SpecificationType distinguishes how a purchase question is answered.
type SpecificationType string

const (
	// SpecSingle picks one option.
	SpecSingle SpecificationType = "single"
	// SpecMultiple picks several options.
	SpecMultiple SpecificationType = "multiple"
	// SpecRange picks a numeric value between Min and Max.
	SpecRange SpecificationType = "range"
)

// Specification is one purchase question asked for a product category.
type Specification struct {
	ID      string            `json:"id"`
	Name    string            `json:"name"`
	Type    SpecificationType `json:"type"`
	Options []string          `json:"options,omitempty"`
	Min     float64           `json:"min,omitempty"`
	Max     float64           `json:"max,omitempty"`
	Step    float64           `json:"step,omitempty"`
}

// ProductCategory groups the specifications asked when a user shops a
// category interactively.
type ProductCategory struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	Specifications []Specification `json:"specifications"`
}

// ConversationState tracks the fixed question sequence for one category.
// The UI drives it turn by turn; it is reset when the sequence completes.
type ConversationState struct {
	CurrentCategory        string            `json:"currentCategory"`
	CurrentSpecification   string            `json:"currentSpecification"`
	AnsweredSpecifications map[string]string `json:"answeredSpecifications"`
}

// SuggestedQuestions pairs ready-made product questions with one open
// question for a region and season.
type SuggestedQuestions struct {
	ProductQuestions []string `json:"productQuestions"`
	OpenQuestion     string   `json:"openQuestion"`
}

// SeasonalInfo is the static advice block for one region and season.
type SeasonalInfo struct {
	Season              string             `json:"season"`
	Tasks               []string           `json:"tasks"`
	RecommendedProducts []string           `json:"recommendedProducts"`
	SuggestedQuestions  SuggestedQuestions `json:"suggestedQuestions"`
}
