package normalizer

import (
	"fmt"
	"strings"

	"tripmate/internal/models/response_models"
)

// Locale holds the user-facing wording of generated text.
type Locale struct {
	Name           string
	summaryFormat  string
	CategoryLabels map[string]string
}

var Korean = Locale{
	Name:          "ko",
	summaryFormat: "Day %d: %d개 활동, %d회 식사",
	CategoryLabels: map[string]string{
		response_models.CategoryCulture:  "문화",
		response_models.CategoryNature:   "자연",
		response_models.CategoryShopping: "쇼핑",
		response_models.CategoryFood:     "음식",
		response_models.CategoryActivity: "액티비티",
		response_models.CategoryOther:    "관광",
	},
}

var English = Locale{
	Name:          "en",
	summaryFormat: "Day %d: %d activities, %d meals",
	CategoryLabels: map[string]string{
		response_models.CategoryCulture:  "culture",
		response_models.CategoryNature:   "nature",
		response_models.CategoryShopping: "shopping",
		response_models.CategoryFood:     "food",
		response_models.CategoryActivity: "activity",
		response_models.CategoryOther:    "sightseeing",
	},
}

// LocaleByName falls back to Korean for unknown names.
func LocaleByName(name string) Locale {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "en", "en-us", "english":
		return English
	default:
		return Korean
	}
}

func (l Locale) DaySummary(day, activities, meals int) string {
	format := l.summaryFormat
	if format == "" {
		format = Korean.summaryFormat
	}
	return fmt.Sprintf(format, day, activities, meals)
}

func (l Locale) CategoryLabel(category string) string {
	if label, ok := l.CategoryLabels[category]; ok {
		return label
	}
	return category
}
