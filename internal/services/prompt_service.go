package services

import (
	"fmt"
	"strings"

	"tripmate/internal/models/request_models"
	"tripmate/pkg/utils"
)

// Prompt variants accepted by BuildAlternativePrompt.
const (
	VariantBudget    = "budget"
	VariantLuxury    = "luxury"
	VariantRelaxed   = "relaxed"
	VariantAdventure = "adventure"
)

// Tips kinds accepted by BuildTipsPrompt.
const (
	TipsWeather = "weather"
	TipsLocal   = "local"
)

var alternativeAddenda = map[string]string{
	VariantBudget: `기존 일정을 더 저렴한 예산으로 조정해주세요.
무료 관광지, 할인 정보, 저렴한 식당 등을 포함해주세요.`,
	VariantLuxury: `기존 일정을 더 럭셔리한 버전으로 업그레이드해주세요.
고급 호텔, 미슐랭 레스토랑, 프리미엄 액티비티 등을 포함해주세요.`,
	VariantRelaxed: `기존 일정을 더 느긋한 페이스로 조정해주세요.
휴식 시간을 충분히 포함하고, 스트레스 없는 일정으로 만들어주세요.`,
	VariantAdventure: `기존 일정을 더 모험적인 버전으로 변경해주세요.
스릴 있는 액티비티, 오프더비트 경험, 현지인과의 교류 등을 포함해주세요.`,
}

const travelPromptTemplate = `당신은 전문 여행 플래너입니다. 다음 정보를 바탕으로 맞춤형 여행 일정을 만들어주세요.
%s
**여행 정보:**
%s

**요구사항:**
- 일정은 %d일 동안의 상세한 계획이어야 합니다
- 각 날짜별로 시간대별 활동을 구체적으로 제시해주세요
- 예산 범위(%s)에 맞는 추천을 해주세요
- %s 스타일에 맞는 일정을 구성해주세요
- 선호하는 활동과 음식을 반영해주세요
- 교통수단과 숙박 옵션을 포함해주세요

**출력 형식:**
다음 JSON 형식으로 응답해주세요:

{
    "itinerary": [
        {
            "day": 1,
            "activities": [
                {"time": "09:00-10:30", "activity": "활동명", "location": "장소", "description": "상세 설명", "cost": "예상 비용", "transportation": "교통수단"}
            ],
            "meals": [
                {"time": "12:00-13:00", "restaurant": "식당명", "cuisine": "음식 종류", "cost": "예상 비용", "notes": "특별한 점"}
            ],
            "accommodation": {"name": "숙박시설명", "type": "숙박 유형", "cost": "예상 비용", "notes": "특별한 점"}
        }
    ],
    "recommendations": {
        "must_visit": ["반드시 가봐야 할 곳들"],
        "hidden_gems": ["숨겨진 명소들"],
        "local_tips": ["현지인 팁들"],
        "budget_tips": ["예산 절약 팁들"]
    },
    "total_estimated_cost": "총 예상 비용",
    "packing_list": ["준비물 목록"]
}

**중요한 점:**
- 현실적이고 실행 가능한 일정을 만들어주세요
- 여행자의 선호사항을 최대한 반영해주세요
- 예산과 시간을 고려한 합리적인 계획을 제시해주세요
- 현지 문화와 관습을 고려한 추천을 해주세요
`

type PromptServiceInterface interface {
	BuildTravelPrompt(req request_models.TravelRequest, contextDocs []string) string
	BuildAlternativePrompt(req request_models.TravelRequest, variant string, contextDocs []string) (string, error)
	BuildTipsPrompt(destination string, duration int, kind string) (string, error)
	BuildRetrievalQuery(req request_models.TravelRequest) string
}

type PromptService struct{}

func NewPromptService() PromptServiceInterface {
	return &PromptService{}
}

func (p *PromptService) BuildTravelPrompt(req request_models.TravelRequest, contextDocs []string) string {
	var info strings.Builder
	fmt.Fprintf(&info, "- 목적지: %s\n", orNA(req.Destination))
	fmt.Fprintf(&info, "- 여행 기간: %d일\n", req.Duration)
	fmt.Fprintf(&info, "- 인원수: %d명\n", req.GroupSize)
	fmt.Fprintf(&info, "- 여행 스타일: %s\n", orNA(req.TravelStyle))
	fmt.Fprintf(&info, "- 예산 범위: %s\n", orNA(req.BudgetRange))
	fmt.Fprintf(&info, "- 숙박 유형: %s\n", orNA(req.AccommodationType))
	fmt.Fprintf(&info, "- 선호 활동: %s\n", strings.Join(req.Activities, ", "))
	fmt.Fprintf(&info, "- 음식 선호: %s\n", strings.Join(req.FoodPreferences, ", "))
	fmt.Fprintf(&info, "- 교통수단: %s\n", strings.Join(req.Transportation, ", "))
	fmt.Fprintf(&info, "- 여행 페이스: %s", orNA(req.Pace))
	if notes := strings.TrimSpace(req.AdditionalNotes); notes != "" {
		fmt.Fprintf(&info, "\n- 추가 요구사항: %s", notes)
	}

	contextSection := ""
	if len(contextDocs) > 0 {
		contextSection = "\n**참조할 여행 정보:**\n" + strings.Join(contextDocs, "\n") + "\n"
	}

	return fmt.Sprintf(travelPromptTemplate,
		contextSection,
		info.String(),
		req.Duration,
		orNA(req.BudgetRange),
		orNA(req.TravelStyle),
	)
}

func (p *PromptService) BuildAlternativePrompt(req request_models.TravelRequest, variant string, contextDocs []string) (string, error) {
	base := p.BuildTravelPrompt(req, contextDocs)
	if variant == "" {
		return base, nil
	}
	addendum, ok := alternativeAddenda[variant]
	if !ok {
		return "", fmt.Errorf("%w: unknown variant %q", utils.ErrInvalidInput, variant)
	}
	return base + "\n\n" + addendum, nil
}

func (p *PromptService) BuildTipsPrompt(destination string, duration int, kind string) (string, error) {
	destination = strings.TrimSpace(destination)
	if destination == "" {
		return "", fmt.Errorf("%w: destination is required", utils.ErrInvalidInput)
	}

	switch kind {
	case TipsWeather:
		if duration <= 0 {
			duration = defaultDemoDuration
		}
		return fmt.Sprintf(`%s의 %d일간 여행에 대한 날씨 정보와 준비사항을 알려주세요.

다음 정보를 포함해주세요:
- 계절별 평균 기온과 강수량
- 여행 시기별 날씨 특징
- 날씨에 따른 준비물 추천
- 날씨가 여행 계획에 미치는 영향
- 대안 계획 제안`, destination, duration), nil
	case TipsLocal:
		return fmt.Sprintf(`%s에 대한 현지인만 아는 팁과 정보를 알려주세요.

다음 정보를 포함해주세요:
- 관광객이 모르는 숨겨진 명소
- 현지인들이 즐겨가는 식당과 카페
- 관광객 함정 피하는 방법
- 현지 문화와 예절
- 교통 이용 팁
- 쇼핑 팁
- 안전 주의사항`, destination), nil
	default:
		return "", fmt.Errorf("%w: unknown tips kind %q", utils.ErrInvalidInput, kind)
	}
}

// BuildRetrievalQuery is the semantic search query for a trip.
func (p *PromptService) BuildRetrievalQuery(req request_models.TravelRequest) string {
	return strings.TrimSpace(fmt.Sprintf("%s 여행 정보 %s %s",
		req.Destination, req.TravelStyle, strings.Join(req.Activities, " ")))
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}
