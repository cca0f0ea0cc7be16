package response_models

import "time"

// Strategy names reported in NormalizedResult.Strategy.
const (
	StrategyStructured = "structured"
	StrategyFreeForm   = "free_form"
	StrategyDemo       = "demo"
)

// Activity categories, in the priority order the classifier evaluates them.
const (
	CategoryCulture  = "culture"
	CategoryNature   = "nature"
	CategoryShopping = "shopping"
	CategoryFood     = "food"
	CategoryActivity = "activity"
	CategoryOther    = "other"
)

// Meal types derived from a meal's time window.
const (
	MealBreakfast = "breakfast"
	MealLunch     = "lunch"
	MealDinner    = "dinner"
	MealSnack     = "snack"
)

type Activity struct {
	Time           string `json:"time"`
	Name           string `json:"activity"`
	Location       string `json:"location"`
	Description    string `json:"description"`
	Cost           string `json:"cost"`
	Transportation string `json:"transportation"`
	Category       string `json:"category"`
}

type Meal struct {
	Time       string `json:"time"`
	Restaurant string `json:"restaurant"`
	Cuisine    string `json:"cuisine"`
	Cost       string `json:"cost"`
	Notes      string `json:"notes"`
	MealType   string `json:"meal_type"`
}

type Accommodation struct {
	Name  string `json:"name,omitempty"`
	Type  string `json:"type,omitempty"`
	Cost  string `json:"cost,omitempty"`
	Notes string `json:"notes,omitempty"`
}

// IsZero reports whether no accommodation was given for the day.
func (a Accommodation) IsZero() bool {
	return a == Accommodation{}
}

type DayPlan struct {
	Day           int           `json:"day"`
	SourceDay     int           `json:"source_day,omitempty"`
	Date          string        `json:"date"`
	Activities    []Activity    `json:"activities"`
	Meals         []Meal        `json:"meals"`
	Accommodation Accommodation `json:"accommodation"`
	Summary       string        `json:"summary"`
}

type Recommendations struct {
	MustVisit  []string `json:"must_visit"`
	HiddenGems []string `json:"hidden_gems"`
	LocalTips  []string `json:"local_tips"`
	BudgetTips []string `json:"budget_tips"`
}

// NormalizedResult is the structured itinerary built from one LLM answer.
// Slices are never nil so the JSON form always carries empty containers.
type NormalizedResult struct {
	Strategy           string          `json:"strategy"`
	Itinerary          []DayPlan       `json:"itinerary"`
	TotalEstimatedCost string          `json:"total_estimated_cost"`
	Recommendations    Recommendations `json:"recommendations"`
	PackingList        []string        `json:"packing_list"`
	Analysis           string          `json:"agent_analysis"`
	Warnings           []string        `json:"warnings"`
}

// NewNormalizedResult returns a result with every container initialised.
func NewNormalizedResult(strategy string) *NormalizedResult {
	return &NormalizedResult{
		Strategy:  strategy,
		Itinerary: []DayPlan{},
		Recommendations: Recommendations{
			MustVisit:  []string{},
			HiddenGems: []string{},
			LocalTips:  []string{},
			BudgetTips: []string{},
		},
		PackingList: []string{},
		Warnings:    []string{},
	}
}

// ErrorResult is returned instead of a NormalizedResult when normalization
// could not complete. It keeps the raw model output for display.
type ErrorResult struct {
	RawText string `json:"raw_text"`
	Message string `json:"message"`
}

func (e *ErrorResult) Error() string {
	return e.Message
}

// Plan sources.
const (
	SourceLLM  = "llm"
	SourceDemo = "demo"
)

type PlanResponse struct {
	ID        string            `json:"id"`
	Source    string            `json:"source"`
	Notice    string            `json:"notice,omitempty"`
	Result    *NormalizedResult `json:"result,omitempty"`
	Error     *ErrorResult      `json:"error,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}

type PlanSummary struct {
	ID          string    `json:"id"`
	Destination string    `json:"destination"`
	Duration    int       `json:"duration"`
	Source      string    `json:"source"`
	Strategy    string    `json:"strategy"`
	CreatedAt   time.Time `json:"created_at"`
}

type ProviderStatus struct {
	Connected   bool    `json:"connected"`
	Provider    string  `json:"provider"`
	Model       string  `json:"model"`
	Temperature float32 `json:"temperature"`
	MaxTokens   int     `json:"max_tokens"`
	Retrieval   bool    `json:"retrieval_enabled"`
	Persistence bool    `json:"persistence_enabled"`
}

type RetrievedDocument struct {
	ID         string   `json:"id"`
	Source     string   `json:"source"`
	Content    string   `json:"content"`
	Tags       []string `json:"tags"`
	Similarity float64  `json:"similarity"`
}
