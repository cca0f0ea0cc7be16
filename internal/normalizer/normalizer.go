// Package normalizer turns the free-form answer of a language model into a
// structured day-by-day itinerary.
//
// Two strategies are tried in order: a structured JSON payload (fenced or
// bare), then a heading-based scan of prose. Both assign calendar dates from
// the day index, starting at the current date.
package normalizer

import (
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"tripmate/internal/models/request_models"
	"tripmate/internal/models/response_models"
	"tripmate/pkg/utils"
)

const dateLayout = "2006-01-02"

type Option func(*Normalizer)

type Normalizer struct {
	headings []HeadingPattern
	costs    []*regexp.Regexp
	locale   Locale
	now      func() time.Time
	location *time.Location
}

func New(opts ...Option) *Normalizer {
	n := &Normalizer{
		headings: append([]HeadingPattern(nil), DefaultHeadingPatterns...),
		costs:    append([]*regexp.Regexp(nil), DefaultCostPatterns...),
		locale:   Korean,
		now:      time.Now,
		location: time.Local,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// WithClock replaces the source of "today".
func WithClock(now func() time.Time) Option {
	return func(n *Normalizer) {
		if now != nil {
			n.now = now
		}
	}
}

// WithLocation sets the time zone used to decide the current calendar day.
func WithLocation(loc *time.Location) Option {
	return func(n *Normalizer) {
		if loc != nil {
			n.location = loc
		}
	}
}

func WithLocale(l Locale) Option {
	return func(n *Normalizer) {
		n.locale = l
	}
}

// WithHeadingPatterns adds day-heading matchers after the defaults.
func WithHeadingPatterns(patterns ...HeadingPattern) Option {
	return func(n *Normalizer) {
		n.headings = append(n.headings, patterns...)
	}
}

// WithCostPatterns adds total-cost matchers after the defaults. Each pattern
// must capture the amount in its first group.
func WithCostPatterns(patterns ...*regexp.Regexp) Option {
	return func(n *Normalizer) {
		n.costs = append(n.costs, patterns...)
	}
}

// Normalize converts one model response into a NormalizedResult. It never
// panics; when normalization cannot complete the error is an
// *response_models.ErrorResult holding the raw text.
func (n *Normalizer) Normalize(responseText string, req request_models.TravelRequest) (result *response_models.NormalizedResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("normalizer: recovered while processing response: %v", r)
			result = nil
			err = &response_models.ErrorResult{
				RawText: responseText,
				Message: fmt.Sprintf("failed to process the model response: %v", r),
			}
		}
	}()

	text := strings.ReplaceAll(responseText, "\r\n", "\n")
	today := n.today()

	var warnings []string
	payload, span, decodeErr := extractStructured(text)
	if payload != nil {
		result = n.buildStructured(payload, today)
		result.Analysis = surroundingText(text, span)
	} else {
		if errors.Is(decodeErr, utils.ErrMalformedStructuredData) {
			log.Printf("normalizer: %v, falling back to free-form parsing", decodeErr)
			warnings = append(warnings, decodeErr.Error())
		}
		result = n.parseFreeForm(text, today)
	}

	result.Warnings = append(append([]string{}, warnings...), result.Warnings...)
	if req.Duration > 0 && len(result.Itinerary) > 0 && len(result.Itinerary) != req.Duration {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("requested %d days but the response describes %d", req.Duration, len(result.Itinerary)))
	}
	return result, nil
}

// Today returns the calendar day Normalize would use as day 1.
func (n *Normalizer) Today() time.Time {
	return n.today()
}

func (n *Normalizer) Locale() Locale {
	return n.locale
}

func (n *Normalizer) today() time.Time {
	t := n.now().In(n.location)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, n.location)
}

// DateForDay returns the date of the given 1-based day counted from start.
func DateForDay(start time.Time, day int) string {
	return start.AddDate(0, 0, day-1).Format(dateLayout)
}
