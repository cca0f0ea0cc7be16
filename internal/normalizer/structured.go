package normalizer

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"tripmate/internal/models/response_models"
	"tripmate/pkg/utils"
)

var fencedJSON = regexp.MustCompile("(?is)```[ \t]*json[ \t]*\n?(.*?)```")

var errNoKnownKeys = errors.New("decoded object has no itinerary fields")

var knownKeys = []string{"itinerary", "recommendations", "total_estimated_cost", "packing_list"}

type textSpan struct {
	start, end int
}

type structuredPayload struct {
	Itinerary       []dayPayload            `json:"itinerary"`
	Recommendations *recommendationsPayload `json:"recommendations"`
	TotalCost       flexString              `json:"total_estimated_cost"`
	PackingList     flexStrings             `json:"packing_list"`
}

type dayPayload struct {
	Day           *flexInt              `json:"day"`
	Activities    []activityPayload     `json:"activities"`
	Meals         []mealPayload         `json:"meals"`
	Accommodation *accommodationPayload `json:"accommodation"`
}

type activityPayload struct {
	Time           flexString `json:"time"`
	Activity       flexString `json:"activity"`
	Location       flexString `json:"location"`
	Description    flexString `json:"description"`
	Cost           flexString `json:"cost"`
	Transportation flexString `json:"transportation"`
}

type mealPayload struct {
	Time       flexString `json:"time"`
	Restaurant flexString `json:"restaurant"`
	Cuisine    flexString `json:"cuisine"`
	Cost       flexString `json:"cost"`
	Notes      flexString `json:"notes"`
}

type accommodationPayload struct {
	Name  flexString `json:"name"`
	Type  flexString `json:"type"`
	Cost  flexString `json:"cost"`
	Notes flexString `json:"notes"`
}

type recommendationsPayload struct {
	MustVisit  flexStrings `json:"must_visit"`
	HiddenGems flexStrings `json:"hidden_gems"`
	LocalTips  flexStrings `json:"local_tips"`
	BudgetTips flexStrings `json:"budget_tips"`
}

// flexString accepts any JSON scalar; models often emit costs as numbers.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*f = ""
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(strings.TrimSpace(s))
	default:
		*f = flexString(data)
	}
	return nil
}

// flexStrings accepts a list of scalars or a single scalar.
type flexStrings []string

func (f *flexStrings) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = nil
		return nil
	}
	if len(data) > 0 && data[0] == '[' {
		var items []flexString
		if err := json.Unmarshal(data, &items); err != nil {
			return err
		}
		out := make([]string, 0, len(items))
		for _, item := range items {
			if item != "" {
				out = append(out, string(item))
			}
		}
		*f = out
		return nil
	}
	var single flexString
	if err := json.Unmarshal(data, &single); err != nil {
		return err
	}
	if single == "" {
		*f = nil
		return nil
	}
	*f = flexStrings{string(single)}
	return nil
}

func (f flexStrings) values() []string {
	if f == nil {
		return []string{}
	}
	return []string(f)
}

// maxDayNumber bounds day numbers taken from a structured payload.
const maxDayNumber = 366

// flexInt accepts 3, 3.0 and "3". Values outside 1..maxDayNumber decode as 1.
type flexInt int

func (f *flexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		data = []byte(strings.TrimSpace(s))
	}
	v, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return fmt.Errorf("day is not a number: %s", data)
	}
	if math.IsNaN(v) || v < 1 || v > maxDayNumber {
		v = 1
	}
	*f = flexInt(v)
	return nil
}

// jsonCandidates lists the spans that may hold a structured payload: a fenced
// json block when present, otherwise the outermost braces and the first
// balanced brace span.
func jsonCandidates(text string) []textSpan {
	if m := fencedJSON.FindStringSubmatchIndex(text); m != nil {
		return []textSpan{{start: m[2], end: m[3]}}
	}
	first := strings.Index(text, "{")
	last := strings.LastIndex(text, "}")
	if first == -1 || last < first {
		return nil
	}
	spans := []textSpan{{start: first, end: last + 1}}
	if end := findMatchingBrace(text, first); end != -1 && end != last {
		spans = append(spans, textSpan{start: first, end: end + 1})
	}
	return spans
}

func extractStructured(text string) (*structuredPayload, textSpan, error) {
	var lastErr error
	for _, span := range jsonCandidates(text) {
		payload, err := decodeStructured(text[span.start:span.end])
		if err == nil {
			return payload, outerSpan(text, span), nil
		}
		lastErr = err
	}
	return nil, textSpan{}, lastErr
}

func decodeStructured(body string) (*structuredPayload, error) {
	var keys map[string]json.RawMessage
	if err := json.Unmarshal([]byte(body), &keys); err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrMalformedStructuredData, err)
	}
	found := false
	for _, k := range knownKeys {
		if _, ok := keys[k]; ok {
			found = true
			break
		}
	}
	if !found {
		return nil, errNoKnownKeys
	}

	var payload structuredPayload
	if err := json.Unmarshal([]byte(body), &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrMalformedStructuredData, err)
	}
	return &payload, nil
}

// outerSpan widens a fenced block's content span to include the fences.
func outerSpan(text string, span textSpan) textSpan {
	for _, m := range fencedJSON.FindAllStringSubmatchIndex(text, -1) {
		if m[2] == span.start && m[3] == span.end {
			return textSpan{start: m[0], end: m[1]}
		}
	}
	return span
}

// surroundingText is the prose around the structured block.
func surroundingText(text string, span textSpan) string {
	var parts []string
	if before := strings.TrimSpace(text[:span.start]); before != "" {
		parts = append(parts, before)
	}
	if after := strings.TrimSpace(text[span.end:]); after != "" {
		parts = append(parts, after)
	}
	return strings.Join(parts, "\n\n")
}

func (n *Normalizer) buildStructured(p *structuredPayload, today time.Time) *response_models.NormalizedResult {
	res := response_models.NewNormalizedResult(response_models.StrategyStructured)

	for _, d := range p.Itinerary {
		day := 1
		if d.Day != nil {
			day = int(*d.Day)
		}
		plan := response_models.DayPlan{
			Day:        day,
			Date:       DateForDay(today, day),
			Activities: make([]response_models.Activity, 0, len(d.Activities)),
			Meals:      make([]response_models.Meal, 0, len(d.Meals)),
		}
		for _, a := range d.Activities {
			plan.Activities = append(plan.Activities, response_models.Activity{
				Time:           string(a.Time),
				Name:           string(a.Activity),
				Location:       string(a.Location),
				Description:    string(a.Description),
				Cost:           string(a.Cost),
				Transportation: string(a.Transportation),
				Category:       CategorizeActivity(string(a.Activity)),
			})
		}
		for _, m := range d.Meals {
			plan.Meals = append(plan.Meals, response_models.Meal{
				Time:       string(m.Time),
				Restaurant: string(m.Restaurant),
				Cuisine:    string(m.Cuisine),
				Cost:       string(m.Cost),
				Notes:      string(m.Notes),
				MealType:   ClassifyMeal(string(m.Time)),
			})
		}
		if d.Accommodation != nil {
			plan.Accommodation = response_models.Accommodation{
				Name:  string(d.Accommodation.Name),
				Type:  string(d.Accommodation.Type),
				Cost:  string(d.Accommodation.Cost),
				Notes: string(d.Accommodation.Notes),
			}
		}
		plan.Summary = n.locale.DaySummary(day, len(plan.Activities), len(plan.Meals))
		res.Itinerary = append(res.Itinerary, plan)
	}

	if p.Recommendations != nil {
		res.Recommendations = response_models.Recommendations{
			MustVisit:  p.Recommendations.MustVisit.values(),
			HiddenGems: p.Recommendations.HiddenGems.values(),
			LocalTips:  p.Recommendations.LocalTips.values(),
			BudgetTips: p.Recommendations.BudgetTips.values(),
		}
	}
	res.TotalEstimatedCost = string(p.TotalCost)
	res.PackingList = p.PackingList.values()
	return res
}

// findMatchingBrace returns the index of the brace closing the one at start,
// skipping braces inside JSON strings, or -1.
func findMatchingBrace(s string, start int) int {
	if start >= len(s) || s[start] != '{' {
		return -1
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(s); i++ {
		char := s[i]

		if escaped {
			escaped = false
			continue
		}
		if char == '\\' && inString {
			escaped = true
			continue
		}
		if char == '"' {
			inString = !inString
			continue
		}
		if inString {
			continue
		}

		switch char {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}

	return -1
}
