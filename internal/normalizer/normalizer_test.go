package normalizer

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripmate/internal/models/request_models"
	"tripmate/internal/models/response_models"
	"tripmate/pkg/utils"
)

const seoulResponse = `
#### **Day 1: 서울 도착 및 궁궐 탐방**
- **오전**: 인천 국제공항(ICN) 도착 후 서울 시내로 이동, 호텔 체크인.
- **오후**: 경복궁 방문 및 한복 체험. 국립고궁박물관 관람.
- **저녁**: 삼청동에서 전통 한정식 맛집 탐방 후 북촌 한옥마을 야경 감상.

#### **Day 2: 서울 현대와 전통의 조화**
- **오전**: 창덕궁과 후원(비원) 특별 관람. (사전 예약 필수)
- **오후**: 명동으로 이동하여 쇼핑 및 길거리 음식 체험.
- **저녁**: 남산 서울타워에서 야경 감상 및 로맨틱 디너.

총 예상 비용**: 약 ₩1,500,000
이 일정은 여행 스타일(역사, 문화, 미식)을 고려하여 최적화되었습니다. 추가 질문이나 수정 사항이 있다면 알려주세요!
`

const fence = "```"

var fixedNow = time.Date(2026, 3, 31, 22, 15, 0, 0, time.UTC)

func newTestNormalizer(opts ...Option) *Normalizer {
	base := []Option{WithClock(func() time.Time { return fixedNow }), WithLocation(time.UTC)}
	return New(append(base, opts...)...)
}

func seoulRequest() request_models.TravelRequest {
	return request_models.TravelRequest{
		Destination: "서울",
		Duration:    2,
		GroupSize:   2,
		TravelStyle: "역사, 문화, 미식",
	}
}

func TestNormalize_FreeFormSeoulResponse(t *testing.T) {
	n := newTestNormalizer()

	res, err := n.Normalize(seoulResponse, seoulRequest())
	require.NoError(t, err)
	require.NotNil(t, res)

	assert.Equal(t, response_models.StrategyFreeForm, res.Strategy)
	require.Len(t, res.Itinerary, 2)

	day1, day2 := res.Itinerary[0], res.Itinerary[1]
	assert.Equal(t, 1, day1.Day)
	assert.Equal(t, 2, day2.Day)
	assert.Equal(t, "2026-03-31", day1.Date)
	assert.Equal(t, "2026-04-01", day2.Date)

	require.Len(t, day1.Activities, 1)
	require.Len(t, day2.Activities, 1)
	assert.Contains(t, day1.Activities[0].Name, "경복궁 방문")
	assert.Contains(t, day2.Activities[0].Name, "창덕궁과 후원")
	assert.Equal(t, day1.Activities[0].Name, day1.Activities[0].Description)
	assert.Empty(t, day1.Activities[0].Time)
	assert.Empty(t, day1.Activities[0].Cost)
	assert.Equal(t, response_models.CategoryCulture, day1.Activities[0].Category)

	assert.Equal(t, "약 ₩1,500,000", res.TotalEstimatedCost)
	assert.Contains(t, res.Analysis, "이 일정은 여행 스타일(역사, 문화, 미식)을 고려하여 최적화되었습니다.")
	assert.NotContains(t, res.Analysis, "경복궁")
	assert.NotContains(t, res.Analysis, "남산")
	assert.Empty(t, res.Warnings)

	assert.Equal(t, "Day 1: 1개 활동, 0회 식사", day1.Summary)
	assert.NotNil(t, day1.Meals)
	assert.NotNil(t, res.PackingList)
	assert.NotNil(t, res.Recommendations.MustVisit)
}

func TestNormalize_StructuredFencedBlock(t *testing.T) {
	text := "Here is your plan.\n" + fence + "JSON\n" + `{
  "itinerary": [
    {
      "day": 1,
      "date": "2019-01-01",
      "activities": [
        {"time": "09:00-11:00", "activity": "루브르 박물관 관람", "cost": "€17", "category": "food"}
      ],
      "meals": [{"time": "12:00-13:30", "restaurant": "Le Petit", "meal_type": "dinner"}],
      "accommodation": {"name": "Hotel Paris", "cost": "€120"}
    },
    {"day": 2, "activities": [{"activity": "세느강 크루즈"}], "meals": [{"time": "19:00"}]},
    {"day": 3}
  ],
  "recommendations": {"must_visit": ["에펠탑"]},
  "total_estimated_cost": "€500",
  "packing_list": ["여권", "카메라"]
}
` + fence + "\nEnjoy the trip!"

	res, err := newTestNormalizer().Normalize(text, request_models.TravelRequest{Destination: "파리", Duration: 3, GroupSize: 1})
	require.NoError(t, err)

	assert.Equal(t, response_models.StrategyStructured, res.Strategy)
	require.Len(t, res.Itinerary, 3)
	for i, d := range res.Itinerary {
		assert.Equal(t, i+1, d.Day)
		assert.Equal(t, DateForDay(fixedNow, i+1), d.Date)
	}

	day1 := res.Itinerary[0]
	assert.Equal(t, "2026-03-31", day1.Date)
	require.Len(t, day1.Activities, 1)
	assert.Equal(t, "루브르 박물관 관람", day1.Activities[0].Name)
	assert.Equal(t, response_models.CategoryCulture, day1.Activities[0].Category)
	assert.Equal(t, "", day1.Activities[0].Location)
	require.Len(t, day1.Meals, 1)
	assert.Equal(t, response_models.MealLunch, day1.Meals[0].MealType)
	assert.Equal(t, "Hotel Paris", day1.Accommodation.Name)
	assert.Equal(t, "Day 1: 1개 활동, 1회 식사", day1.Summary)

	assert.Equal(t, response_models.MealDinner, res.Itinerary[1].Meals[0].MealType)
	assert.True(t, res.Itinerary[2].Accommodation.IsZero())
	assert.Empty(t, res.Itinerary[2].Activities)
	assert.NotNil(t, res.Itinerary[2].Activities)

	assert.Equal(t, "€500", res.TotalEstimatedCost)
	assert.Equal(t, []string{"여권", "카메라"}, res.PackingList)
	assert.Equal(t, []string{"에펠탑"}, res.Recommendations.MustVisit)
	assert.Equal(t, []string{}, res.Recommendations.HiddenGems)
	assert.Equal(t, "Here is your plan.\n\nEnjoy the trip!", res.Analysis)
}

func TestNormalize_BareJSONWithLenientFields(t *testing.T) {
	text := `Sure! {"itinerary": [{"day": "2", "activities": [{"activity": "Hiking", "cost": 30}]}], "packing_list": "umbrella", "total_estimated_cost": 450} Have fun.`

	res, err := newTestNormalizer(WithLocale(English)).Normalize(text, request_models.TravelRequest{})
	require.NoError(t, err)

	assert.Equal(t, response_models.StrategyStructured, res.Strategy)
	require.Len(t, res.Itinerary, 1)
	assert.Equal(t, 2, res.Itinerary[0].Day)
	assert.Equal(t, "2026-04-01", res.Itinerary[0].Date)
	assert.Equal(t, "30", res.Itinerary[0].Activities[0].Cost)
	assert.Equal(t, "Day 2: 1 activities, 0 meals", res.Itinerary[0].Summary)
	assert.Equal(t, "450", res.TotalEstimatedCost)
	assert.Equal(t, []string{"umbrella"}, res.PackingList)
	assert.Equal(t, "Sure!\n\nHave fun.", res.Analysis)
}

func TestNormalize_BalancedSpanWhenTrailingBraces(t *testing.T) {
	text := `{"total_estimated_cost": "$900"} and the hotel said {later}`

	res, err := newTestNormalizer().Normalize(text, request_models.TravelRequest{})
	require.NoError(t, err)

	assert.Equal(t, response_models.StrategyStructured, res.Strategy)
	assert.Equal(t, "$900", res.TotalEstimatedCost)
	assert.Equal(t, "and the hotel said {later}", res.Analysis)
}

func TestNormalize_MalformedStructuredFallsBackToFreeForm(t *testing.T) {
	text := fence + "json\n{\"itinerary\": [ {\"day\": 1,, }\n" + fence + `
Day 1: Arrival
- Visit the National Museum

Total cost: about $1,200
Thanks for planning with us.`

	res, err := newTestNormalizer().Normalize(text, request_models.TravelRequest{})
	require.NoError(t, err)

	assert.Equal(t, response_models.StrategyFreeForm, res.Strategy)
	require.Len(t, res.Itinerary, 1)
	assert.Equal(t, "Visit the National Museum", res.Itinerary[0].Activities[0].Name)
	assert.Equal(t, "about $1,200", res.TotalEstimatedCost)
	require.NotEmpty(t, res.Warnings)
	assert.Contains(t, res.Warnings[0], utils.ErrMalformedStructuredData.Error())
}

func TestNormalize_ObjectWithoutKnownKeysIsProse(t *testing.T) {
	text := "Use {\"tip\": \"bring cash\"} when shopping.\n\nDay 1\n- Street market tour"

	res, err := newTestNormalizer().Normalize(text, request_models.TravelRequest{})
	require.NoError(t, err)

	assert.Equal(t, response_models.StrategyFreeForm, res.Strategy)
	require.Len(t, res.Itinerary, 1)
	assert.Equal(t, response_models.CategoryShopping, res.Itinerary[0].Activities[0].Category)
	assert.Empty(t, res.Warnings)
}

func TestNormalize_NoRecognizableContent(t *testing.T) {
	text := "Paris is lovely in spring, but the museums get crowded."

	res, err := newTestNormalizer().Normalize(text, request_models.TravelRequest{Duration: 3})
	require.NoError(t, err)

	assert.Empty(t, res.Itinerary)
	assert.NotNil(t, res.Itinerary)
	assert.Equal(t, text, res.Analysis)
	assert.Equal(t, "", res.TotalEstimatedCost)
	assert.Equal(t, []string{utils.ErrNoRecognizableContent.Error()}, res.Warnings)
}

func TestNormalize_OutOfOrderDaysKeepEncounterOrder(t *testing.T) {
	text := `Day 2: Coast
- Beach walk
Day 2: Again
- Sea kayak
Day 1: City
- Old town tour`

	res, err := newTestNormalizer().Normalize(text, request_models.TravelRequest{})
	require.NoError(t, err)

	require.Len(t, res.Itinerary, 3)
	days := []int{res.Itinerary[0].Day, res.Itinerary[1].Day, res.Itinerary[2].Day}
	sources := []int{res.Itinerary[0].SourceDay, res.Itinerary[1].SourceDay, res.Itinerary[2].SourceDay}
	assert.Equal(t, []int{1, 2, 3}, days)
	assert.Equal(t, []int{2, 2, 1}, sources)
	assert.Equal(t, "Beach walk", res.Itinerary[0].Activities[0].Name)
	assert.Equal(t, "Old town tour", res.Itinerary[2].Activities[0].Name)
	assert.Len(t, res.Warnings, 2)
}

func TestNormalize_KoreanHeadings(t *testing.T) {
	text := `## 1일차: 부산 도착
* **오전**: 김해공항 도착
* **오후**: 해운대 해변 산책

## 제2일 - 시장 투어
1. 자갈치 시장 구경
2. 국제 마켓 쇼핑`

	res, err := newTestNormalizer().Normalize(text, request_models.TravelRequest{Duration: 2})
	require.NoError(t, err)

	require.Len(t, res.Itinerary, 2)
	assert.Equal(t, "오후: 해운대 해변 산책", res.Itinerary[0].Activities[0].Name)
	assert.Equal(t, response_models.CategoryNature, res.Itinerary[0].Activities[0].Category)
	assert.Equal(t, "자갈치 시장 구경", res.Itinerary[1].Activities[0].Name)
	assert.Empty(t, res.Analysis)
	assert.Empty(t, res.Warnings)
}

func TestNormalize_RepresentativeFallbacks(t *testing.T) {
	text := `Day 1: Arrival day
- **Time**: 09:00
- Airport pickup
Day 2: Lazy morning
Sleep in and wander the neighborhood.
Day 3: Departure`

	res, err := newTestNormalizer().Normalize(text, request_models.TravelRequest{})
	require.NoError(t, err)

	require.Len(t, res.Itinerary, 3)
	assert.Equal(t, "Time: 09:00", res.Itinerary[0].Activities[0].Name)
	assert.Equal(t, "Sleep in and wander the neighborhood.", res.Itinerary[1].Activities[0].Name)
	assert.Equal(t, "Departure", res.Itinerary[2].Activities[0].Name)
}

func TestNormalize_DurationMismatchIsWarned(t *testing.T) {
	res, err := newTestNormalizer().Normalize(seoulResponse, request_models.TravelRequest{Duration: 4})
	require.NoError(t, err)

	require.Len(t, res.Itinerary, 2)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "requested 4 days")
}

func TestNormalize_DatesIgnoreModelDates(t *testing.T) {
	text := `{"itinerary": [{"day": 1, "date": "1999-12-31"}, {"day": 2, "date": "1999-12-01"}]}`

	res, err := newTestNormalizer().Normalize(text, request_models.TravelRequest{})
	require.NoError(t, err)

	require.Len(t, res.Itinerary, 2)
	assert.Equal(t, "2026-03-31", res.Itinerary[0].Date)
	assert.Equal(t, "2026-04-01", res.Itinerary[1].Date)
}

func TestNormalize_PanicBecomesErrorResult(t *testing.T) {
	n := New(WithClock(func() time.Time { panic("clock unavailable") }))

	res, err := n.Normalize("Day 1\n- walk", request_models.TravelRequest{})

	assert.Nil(t, res)
	require.Error(t, err)
	var errResult *response_models.ErrorResult
	require.ErrorAs(t, err, &errResult)
	assert.Equal(t, "Day 1\n- walk", errResult.RawText)
	assert.Contains(t, errResult.Message, "clock unavailable")
}

func TestNormalize_CustomPatterns(t *testing.T) {
	tripDay := HeadingPattern{Name: "etape", Expr: regexp.MustCompile(`(?im)^étape[ \t]*(\d+)(.*)$`)}
	n := newTestNormalizer(WithHeadingPatterns(tripDay))

	res, err := n.Normalize("Étape 1: Lyon\n- Vieux Lyon\nÉtape 2: Annecy\n- Lac d'Annecy", request_models.TravelRequest{})
	require.NoError(t, err)
	require.Len(t, res.Itinerary, 2)
	assert.Equal(t, "Lac d'Annecy", res.Itinerary[1].Activities[0].Name)
}

func TestDateForDay(t *testing.T) {
	start := time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "2026-12-31", DateForDay(start, 1))
	assert.Equal(t, "2027-01-01", DateForDay(start, 2))
	assert.Equal(t, "2027-01-10", DateForDay(start, 11))
}

func TestNormalizer_TodayUsesLocation(t *testing.T) {
	seoul := time.FixedZone("KST", 9*60*60)
	n := New(WithClock(func() time.Time { return fixedNow }), WithLocation(seoul))

	assert.Equal(t, "2026-04-01", n.Today().Format(dateLayout))
}

func TestNormalize_LabeledFieldFormat(t *testing.T) {
	text := `## 📅 여행 일정

### Day 1: 2024-05-01
**오전 활동:**
- 시간: 09:00-11:00
- 활동: 에펠탑 방문
- 장소: 에펠탑
- 비용: €26

**점심:**
- 시간: 12:00
- 식당: Le Cafe

## 💡 추천사항
- 필수 방문지: 루브르

## 💰 총 예상 비용
€400-600`

	res, err := newTestNormalizer().Normalize(text, request_models.TravelRequest{Duration: 1})
	require.NoError(t, err)

	require.Len(t, res.Itinerary, 1)
	assert.Equal(t, "2026-03-31", res.Itinerary[0].Date)
	assert.Equal(t, "활동: 에펠탑 방문", res.Itinerary[0].Activities[0].Name)
	assert.Equal(t, "€400-600", res.TotalEstimatedCost)
	assert.True(t, strings.HasPrefix(res.Analysis, "## 💡 추천사항"))
	assert.NotContains(t, res.Analysis, "Le Cafe")
}

func TestNormalize_CostAfterGroupSizeNote(t *testing.T) {
	cases := map[string]struct {
		text string
		want string
	}{
		"korean": {
			text: "Day 1: Seoul\n- Visit Gyeongbokgung\n\n총 예상 비용 (2인 기준): 약 ₩1,500,000\n즐거운 여행 되세요.",
			want: "약 ₩1,500,000",
		},
		"english": {
			text: "Day 1: Rome\n- Colosseum tour\n\nTotal cost for 2 people: $1,200",
			want: "$1,200",
		},
		"note then next line": {
			text: "Day 1: Paris\n- Louvre\n\n## Total estimated cost (for 4 travelers)\n€2,400-3,000",
			want: "€2,400-3,000",
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			res, err := newTestNormalizer().Normalize(tc.text, request_models.TravelRequest{})
			require.NoError(t, err)
			assert.Equal(t, tc.want, res.TotalEstimatedCost)
		})
	}
}

func TestNormalize_CommentaryAfterLastBullet(t *testing.T) {
	text := "Day 1: Boston\n- Freedom Trail\nDay 2: NYC\n- Central Park\n- Time: 14:00\nThis plan balances culture and nature."

	res, err := newTestNormalizer().Normalize(text, request_models.TravelRequest{Duration: 2})
	require.NoError(t, err)

	require.Len(t, res.Itinerary, 2)
	assert.Equal(t, "Central Park", res.Itinerary[1].Activities[0].Name)
	assert.Equal(t, "This plan balances culture and nature.", res.Analysis)
}

func TestNormalize_LabelLinesStayInLastSection(t *testing.T) {
	text := "Day 1: Kyoto\nMorning: Fushimi Inari\nEvening: Gion walk\nEnjoy Kyoto!"

	res, err := newTestNormalizer().Normalize(text, request_models.TravelRequest{Duration: 1})
	require.NoError(t, err)

	require.Len(t, res.Itinerary, 1)
	assert.Equal(t, "Morning: Fushimi Inari", res.Itinerary[0].Activities[0].Name)
	assert.Equal(t, "Enjoy Kyoto!", res.Analysis)
}

func TestNormalize_StructuredDayOutOfRange(t *testing.T) {
	text := `{"itinerary": [{"day": 1e300}, {"day": -4}, {"day": "2"}]}`

	res, err := newTestNormalizer().Normalize(text, request_models.TravelRequest{})
	require.NoError(t, err)

	assert.Equal(t, response_models.StrategyStructured, res.Strategy)
	require.Len(t, res.Itinerary, 3)
	assert.Equal(t, 1, res.Itinerary[0].Day)
	assert.Equal(t, "2026-03-31", res.Itinerary[0].Date)
	assert.Equal(t, 1, res.Itinerary[1].Day)
	assert.Equal(t, 2, res.Itinerary[2].Day)
	assert.Equal(t, "2026-04-01", res.Itinerary[2].Date)
}
