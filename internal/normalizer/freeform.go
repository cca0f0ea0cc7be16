package normalizer

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"tripmate/internal/models/response_models"
	"tripmate/pkg/utils"
)

// HeadingPattern recognizes the line that opens a day section. Expr must
// capture the day number in group 1 and may capture a title in group 2.
type HeadingPattern struct {
	Name string
	Expr *regexp.Regexp
}

const headingDecoration = `^[ \t>#*_\-]*`

var DefaultHeadingPatterns = []HeadingPattern{
	{Name: "day-n", Expr: regexp.MustCompile(`(?im)` + headingDecoration + `day[ \t]*(\d{1,3})\b(.*)$`)},
	{Name: "n-ilcha", Expr: regexp.MustCompile(`(?m)` + headingDecoration + `(\d{1,3})[ \t]*일차(.*)$`)},
	{Name: "je-n-il", Expr: regexp.MustCompile(`(?m)` + headingDecoration + `제[ \t]*(\d{1,3})[ \t]*일(?:차)?(.*)$`)},
}

const costAmount = `((?:약|대략|approx(?:imately)?\.?|about|around|~)?[ \t]*` +
	`(?:[₩$€¥£][ \t]?\d(?:[\d,.]*\d)?(?:[ \t]*[-~–][ \t]*[₩$€¥£]?[ \t]?\d(?:[\d,.]*\d)?)?` +
	`|\d(?:[\d,.]*\d)?[ \t]*(?:만[ \t]?원|원|엔|유로|달러|KRW|USD|EUR|JPY)))`

// costFiller skips notes such as "(2인 기준)" between the phrase and the
// amount, within the phrase's line and the line after it.
const costFiller = `[^\n]{0,40}?(?:\n[^\n]{0,40}?)?`

// DefaultCostPatterns find the total trip cost. Group 1 holds the first
// amount after the phrase, including any leading qualifier. The amount may sit
// on the line after the phrase, as under a "총 예상 비용" heading.
var DefaultCostPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:총[ \t]*예상[ \t]*비용|예상[ \t]*총[ \t]*비용|총[ \t]*비용|예상[ \t]*비용)` + costFiller + costAmount),
	regexp.MustCompile(`(?i)(?:total[ \t]+estimated[ \t]+cost|estimated[ \t]+total[ \t]+cost|total[ \t]+cost|estimated[ \t]+cost)` + costFiller + costAmount),
}

var (
	bulletLine = regexp.MustCompile(`^[ \t]*(?:[-*•·▪]|\d{1,2}[.)])[ \t]+(.+)$`)
	labelSplit = regexp.MustCompile(`^([^:：]{1,24})[:：][ \t]*(.*)$`)
)

var fieldLabels = map[string]bool{
	"시간": true, "비용": true, "예산": true, "교통": true, "교통수단": true, "메모": true, "참고": true,
	"time": true, "cost": true, "price": true, "budget": true, "transport": true,
	"transportation": true, "note": true, "notes": true,
}

var logisticsKeywords = []string{
	"도착", "체크인", "체크 인", "체크아웃", "공항", "출국", "입국",
	"arrival", "arrive", "check-in", "check in", "checkout", "check-out", "airport",
}

type daySection struct {
	sourceDay int
	title     string
	start     int
	bodyStart int
	end       int
}

func (n *Normalizer) parseFreeForm(text string, today time.Time) *response_models.NormalizedResult {
	res := response_models.NewNormalizedResult(response_models.StrategyFreeForm)
	sections := n.findSections(text)

	for i, s := range sections {
		day := i + 1
		plan := response_models.DayPlan{
			Day:        day,
			SourceDay:  s.sourceDay,
			Date:       DateForDay(today, day),
			Activities: []response_models.Activity{},
			Meals:      []response_models.Meal{},
		}
		if s.sourceDay != day {
			res.Warnings = append(res.Warnings,
				fmt.Sprintf("day heading %d appears at position %d", s.sourceDay, day))
		}
		if line, ok := representativeLine(text[s.bodyStart:s.end], s.title); ok {
			plan.Activities = append(plan.Activities, response_models.Activity{
				Name:        line,
				Description: line,
				Category:    CategorizeActivity(line),
			})
		}
		plan.Summary = n.locale.DaySummary(day, len(plan.Activities), len(plan.Meals))
		res.Itinerary = append(res.Itinerary, plan)
	}

	res.TotalEstimatedCost = n.extractCost(text)

	if len(sections) == 0 {
		res.Analysis = strings.TrimSpace(text)
		res.Warnings = append(res.Warnings, utils.ErrNoRecognizableContent.Error())
		return res
	}
	res.Analysis = strings.TrimSpace(text[sections[len(sections)-1].end:])
	return res
}

// findSections returns day sections in encounter order. A line matched by
// more than one pattern opens a single section.
func (n *Normalizer) findSections(text string) []daySection {
	var hits []daySection
	for _, p := range n.headings {
		if p.Expr == nil {
			continue
		}
		for _, m := range p.Expr.FindAllStringSubmatchIndex(text, -1) {
			if len(m) < 4 || m[2] < 0 {
				continue
			}
			num, err := strconv.Atoi(text[m[2]:m[3]])
			if err != nil {
				continue
			}
			var title string
			if len(m) >= 6 && m[4] >= 0 {
				title = cleanTitle(text[m[4]:m[5]])
			}
			hits = append(hits, daySection{sourceDay: num, title: title, start: m[0], bodyStart: m[1]})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].start < hits[j].start })

	sections := make([]daySection, 0, len(hits))
	for _, h := range hits {
		if len(sections) > 0 && h.start < sections[len(sections)-1].bodyStart {
			continue
		}
		sections = append(sections, h)
	}
	for i := range sections {
		if i+1 < len(sections) {
			sections[i].end = sections[i+1].start
		} else {
			sections[i].end = closeSection(text, sections[i].bodyStart)
		}
	}
	return sections
}

// closeSection finds where the final day section ends: at a markdown heading,
// at the first plain line following a blank line, or at the first plain
// unlabeled line following bullet or label lines.
func closeSection(text string, from int) int {
	sawBlank, sawItem := false, false
	offset := from
	for _, line := range strings.SplitAfter(text[from:], "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case offset == from:
			// remainder of the heading line
		case trimmed == "":
			sawBlank = true
		case strings.HasPrefix(trimmed, "#"):
			return offset
		case isSectionLine(line):
			sawItem = true
		case sawBlank:
			return offset
		case labelSplit.MatchString(trimmed):
			sawItem = true
		case sawItem:
			return offset
		}
		offset += len(line)
	}
	return len(text)
}

func isSectionLine(line string) bool {
	if strings.HasPrefix(line, " ") || strings.HasPrefix(line, "\t") {
		return true
	}
	if bulletLine.MatchString(line) {
		return true
	}
	trimmed := strings.TrimSpace(line)
	return strings.HasPrefix(trimmed, "**") || strings.HasPrefix(trimmed, "__")
}

// representativeLine picks the line standing for the day's main activity.
func representativeLine(body, title string) (string, bool) {
	var candidates []string
	firstBody := ""
	for _, raw := range strings.Split(body, "\n") {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		content, isCandidate := candidateContent(raw)
		cleaned := cleanLine(content)
		if cleaned == "" {
			continue
		}
		if firstBody == "" {
			firstBody = cleaned
		}
		if !isCandidate {
			continue
		}
		label, rest := splitLabel(cleaned)
		if label != "" && rest == "" {
			continue
		}
		candidates = append(candidates, cleaned)
		if fieldLabels[strings.ToLower(label)] || isLogistics(cleaned) {
			continue
		}
		return cleaned, true
	}

	switch {
	case len(candidates) > 0:
		return candidates[0], true
	case firstBody != "":
		return firstBody, true
	case title != "":
		return title, true
	}
	return "", false
}

func candidateContent(line string) (string, bool) {
	if m := bulletLine.FindStringSubmatch(line); m != nil {
		return m[1], true
	}
	trimmed := strings.TrimSpace(line)
	if strings.HasPrefix(trimmed, "**") || strings.HasPrefix(trimmed, "__") {
		return trimmed, true
	}
	return trimmed, false
}

func cleanLine(s string) string {
	s = strings.ReplaceAll(s, "**", "")
	s = strings.ReplaceAll(s, "__", "")
	return strings.TrimSpace(s)
}

func cleanTitle(s string) string {
	s = cleanLine(s)
	return strings.Trim(s, " \t:：-–—.)#*")
}

func splitLabel(line string) (label, rest string) {
	m := labelSplit.FindStringSubmatch(line)
	if m == nil {
		return "", line
	}
	return strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
}

func isLogistics(line string) bool {
	lower := strings.ToLower(line)
	for _, kw := range logisticsKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func (n *Normalizer) extractCost(text string) string {
	for _, p := range n.costs {
		if p == nil {
			continue
		}
		if m := p.FindStringSubmatch(text); len(m) > 1 {
			return strings.TrimSpace(m[1])
		}
	}
	return ""
}
