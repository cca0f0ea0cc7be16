package services

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"tripmate/internal/models/request_models"
	"tripmate/internal/models/response_models"
	"tripmate/internal/normalizer"
)

//go:embed demo/demo_activities.yaml
var demoActivitiesYAML []byte

const (
	defaultDemoDestination = "파리"
	defaultDemoDuration    = 5
	activitiesPerDemoDay   = 2
)

type DemoServiceInterface interface {
	GenerateDemoResult(req request_models.TravelRequest) *response_models.NormalizedResult
}

type DemoActivity struct {
	Activity string `yaml:"activity"`
	Location string `yaml:"location"`
	Cost     string `yaml:"cost"`
	Category string `yaml:"category"`
}

type DemoCatalog struct {
	Destinations map[string][]DemoActivity `yaml:"destinations"`
	Default      []DemoActivity            `yaml:"default"`
}

func LoadDemoCatalog(data []byte) (*DemoCatalog, error) {
	var catalog DemoCatalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("parse demo catalog: %w", err)
	}
	if len(catalog.Default) == 0 {
		return nil, fmt.Errorf("demo catalog has no default activities")
	}
	return &catalog, nil
}

func (c *DemoCatalog) activitiesFor(destination string) []DemoActivity {
	if acts, ok := c.Destinations[destination]; ok && len(acts) > 0 {
		return acts
	}
	out := make([]DemoActivity, len(c.Default))
	for i, a := range c.Default {
		a.Location = strings.ReplaceAll(a.Location, "{destination}", destination)
		out[i] = a
	}
	return out
}

type DemoService struct {
	catalog    *DemoCatalog
	normalizer *normalizer.Normalizer
}

// NewDemoService uses the embedded catalog. Dates and wording follow the
// normalizer's clock and locale so demo and model plans line up.
func NewDemoService(n *normalizer.Normalizer) (DemoServiceInterface, error) {
	catalog, err := LoadDemoCatalog(demoActivitiesYAML)
	if err != nil {
		return nil, err
	}
	return NewDemoServiceWithCatalog(catalog, n), nil
}

func NewDemoServiceWithCatalog(catalog *DemoCatalog, n *normalizer.Normalizer) *DemoService {
	return &DemoService{catalog: catalog, normalizer: n}
}

func (d *DemoService) GenerateDemoResult(req request_models.TravelRequest) *response_models.NormalizedResult {
	destination := strings.TrimSpace(req.Destination)
	if destination == "" {
		destination = defaultDemoDestination
	}
	duration := req.Duration
	if duration <= 0 {
		duration = defaultDemoDuration
	}

	locale := d.normalizer.Locale()
	today := d.normalizer.Today()
	activities := d.catalog.activitiesFor(destination)

	res := response_models.NewNormalizedResult(response_models.StrategyDemo)
	for i := 0; i < duration; i++ {
		day := i + 1
		start := i % len(activities)
		first := activities[start]
		second := DemoActivity{
			Activity: "자유 시간",
			Location: destination + " 시내",
			Cost:     "무료",
			Category: response_models.CategoryOther,
		}
		if start+1 < len(activities) {
			second = activities[start+1]
		}

		plan := response_models.DayPlan{
			Day:  day,
			Date: normalizer.DateForDay(today, day),
			Activities: []response_models.Activity{
				{
					Time:           "09:00-11:00",
					Name:           first.Activity,
					Location:       first.Location,
					Description:    fmt.Sprintf("%s의 대표적인 %s 활동을 체험합니다.", destination, locale.CategoryLabel(first.Category)),
					Cost:           first.Cost,
					Transportation: "지하철/도보",
					Category:       first.Category,
				},
				{
					Time:           "14:00-16:00",
					Name:           second.Activity,
					Location:       second.Location,
					Description:    fmt.Sprintf("%s의 %s 활동을 즐깁니다.", destination, locale.CategoryLabel(second.Category)),
					Cost:           second.Cost,
					Transportation: "도보",
					Category:       second.Category,
				},
			},
			Meals: []response_models.Meal{
				{
					Time:       "12:00-13:30",
					Restaurant: destination + " 현지 레스토랑",
					Cuisine:    "현지 전통 요리",
					Cost:       "€25-35",
					Notes:      "현지인들이 즐겨가는 맛집",
					MealType:   normalizer.ClassifyMeal("12:00-13:30"),
				},
			},
			Accommodation: response_models.Accommodation{
				Name:  "Hotel " + destination,
				Type:  "호텔",
				Cost:  "€100-150",
				Notes: "시내 중심가에 위치한 편리한 호텔",
			},
		}
		plan.Summary = locale.DaySummary(day, len(plan.Activities), len(plan.Meals))
		res.Itinerary = append(res.Itinerary, plan)
	}

	res.Recommendations = response_models.Recommendations{
		MustVisit:  []string{destination + "의 대표 관광지", destination + " 박물관", destination + " 공원"},
		HiddenGems: []string{destination + " 현지 마켓", destination + " 숨겨진 카페", destination + " 전망대"},
		LocalTips:  []string{"대중교통을 이용하면 편리합니다", "식사 시간을 피해 관광지를 방문하세요", "현지인처럼 여행해보세요"},
		BudgetTips: []string{"박물관 패스를 구매하면 할인됩니다", "현지 마켓에서 식재료를 구매하세요", "무료 관광지를 많이 활용하세요"},
	}
	res.TotalEstimatedCost = "€400-600"
	res.PackingList = []string{"여권", "카메라", "편한 신발", "우산", "어댑터", "현지 통화"}
	res.Analysis = fmt.Sprintf(
		"데모 모드: %s %d일 여행 일정입니다. 언어 모델에 연결할 수 없어 미리 준비된 활동으로 구성했습니다. "+
			"AOAI_API_KEY, AOAI_ENDPOINT, AOAI_DEPLOY_GPT4O 또는 OPENAI_API_KEY를 설정하면 맞춤형 일정을 받을 수 있습니다.",
		destination, duration)
	return res
}
