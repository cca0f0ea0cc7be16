package normalizer

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"tripmate/internal/models/response_models"
)

// Evaluated in order; the first set with a matching keyword wins.
var categoryKeywords = []struct {
	category string
	keywords []string
}{
	{response_models.CategoryCulture, []string{"박물관", "미술관", "갤러리", "museum", "gallery"}},
	{response_models.CategoryNature, []string{"공원", "산", "바다", "자연", "park", "mountain", "beach", "sea", "nature"}},
	{response_models.CategoryShopping, []string{"쇼핑", "마켓", "몰", "shopping", "market", "mall"}},
	{response_models.CategoryFood, []string{"레스토랑", "카페", "음식", "restaurant", "cafe", "food"}},
	{response_models.CategoryActivity, []string{"운동", "스포츠", "액티비티", "exercise", "sport", "activity"}},
}

// CategorizeActivity derives the category from the activity name alone.
func CategorizeActivity(name string) string {
	lower := strings.ToLower(name)
	for _, set := range categoryKeywords {
		for _, kw := range set.keywords {
			if strings.Contains(lower, kw) {
				return set.category
			}
		}
	}
	return response_models.CategoryOther
}

var mealHours = []struct {
	mealType string
	hours    []string
}{
	{response_models.MealBreakfast, []string{"06", "07", "08", "09"}},
	{response_models.MealLunch, []string{"11", "12", "13"}},
	{response_models.MealDinner, []string{"17", "18", "19", "20"}},
}

var hourToken = regexp.MustCompile(`(?i)(\d{1,2})[ \t]*(?::[0-5]\d|시|h)`)

// ClassifyMeal buckets a meal by the hours written in its time window.
// "21:00-23:00" is a snack: only the listed hours count.
func ClassifyMeal(timeWindow string) string {
	var hours []string
	for _, m := range hourToken.FindAllStringSubmatch(timeWindow, -1) {
		h, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		hours = append(hours, fmt.Sprintf("%02d", h))
	}

	for _, bucket := range mealHours {
		for _, want := range bucket.hours {
			if len(hours) == 0 {
				if strings.Contains(timeWindow, want) {
					return bucket.mealType
				}
				continue
			}
			for _, h := range hours {
				if h == want {
					return bucket.mealType
				}
			}
		}
	}
	return response_models.MealSnack
}
