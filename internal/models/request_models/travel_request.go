package request_models

// TravelRequest holds the trip parameters collected from the planning form.
// Planning validates it; demo and normalize accept it partially filled.
type TravelRequest struct {
	Destination       string   `json:"destination" yaml:"destination"`
	Duration          int      `json:"duration" yaml:"duration"`
	GroupSize         int      `json:"group_size" yaml:"group_size"`
	TravelStyle       string   `json:"travel_style" yaml:"travel_style"`
	BudgetRange       string   `json:"budget_range" yaml:"budget_range"`
	AccommodationType string   `json:"accommodation_type" yaml:"accommodation_type"`
	Activities        []string `json:"activities" yaml:"activities"`
	FoodPreferences   []string `json:"food_preferences" yaml:"food_preferences"`
	Transportation    []string `json:"transportation" yaml:"transportation"`
	Pace              string   `json:"pace" yaml:"pace"`
	AdditionalNotes   string   `json:"additional_notes" yaml:"additional_notes"`
}

// PlanRequest is the body of POST /plans.
type PlanRequest struct {
	TravelRequest `yaml:",inline"`
	// Variant selects an alternative plan flavour: budget, luxury, relaxed or adventure.
	Variant string `json:"variant" yaml:"variant" binding:"omitempty,oneof=budget luxury relaxed adventure"`
}

type NormalizeRequest struct {
	ResponseText string        `json:"response_text" binding:"required"`
	Request      TravelRequest `json:"request"`
}

type IngestRequest struct {
	Source string   `json:"source" binding:"required"`
	Text   string   `json:"text" binding:"required"`
	Tags   []string `json:"tags"`
}
