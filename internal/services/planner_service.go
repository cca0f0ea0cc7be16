package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"tripmate/internal/models/db_models"
	"tripmate/internal/models/request_models"
	"tripmate/internal/models/response_models"
	"tripmate/internal/normalizer"
	"tripmate/internal/repositories"
	mem "tripmate/pkg/memcache"
	"tripmate/pkg/utils"
)

const (
	finalAnswerMarker = "Final Answer:"
	actionMarker      = "Action:"
	defaultListLimit  = 20
	maxListLimit      = 100
	maxTripDays       = 30
)

type PlannerServiceInterface interface {
	PlanTravel(ctx context.Context, req request_models.PlanRequest) (*response_models.PlanResponse, error)
	GenerateDemo(req request_models.TravelRequest) *response_models.PlanResponse
	Normalize(responseText string, req request_models.TravelRequest) *response_models.PlanResponse
	GetPlan(ctx context.Context, planID string) (*response_models.PlanResponse, error)
	ListPlans(ctx context.Context, limit int) ([]response_models.PlanSummary, error)
	DestinationTips(ctx context.Context, destination string, duration int, kind string) (string, error)
	Status() response_models.ProviderStatus
}

type PlannerOptions struct {
	RetrievalK        int
	MinResponseLength int
	CacheTTL          time.Duration
	RequestTimeout    time.Duration
	Temperature       float32
	MaxTokens         int
}

type PlannerService struct {
	prompts    PromptServiceInterface
	demo       DemoServiceInterface
	retrieval  RetrievalServiceInterface
	llm        utils.LLMClientInterface
	planRepo   repositories.IPlanRepository
	cache      mem.CompletionStore
	normalizer *normalizer.Normalizer
	opts       PlannerOptions
}

// NewPlannerService accepts nil for llm, planRepo and cache; the matching
// feature is then skipped.
func NewPlannerService(
	prompts PromptServiceInterface,
	demo DemoServiceInterface,
	retrieval RetrievalServiceInterface,
	llm utils.LLMClientInterface,
	planRepo repositories.IPlanRepository,
	cache mem.CompletionStore,
	n *normalizer.Normalizer,
	opts PlannerOptions,
) PlannerServiceInterface {
	return &PlannerService{
		prompts:    prompts,
		demo:       demo,
		retrieval:  retrieval,
		llm:        llm,
		planRepo:   planRepo,
		cache:      cache,
		normalizer: n,
		opts:       opts,
	}
}

func (p *PlannerService) PlanTravel(ctx context.Context, req request_models.PlanRequest) (*response_models.PlanResponse, error) {
	if err := validateTravelRequest(req.TravelRequest); err != nil {
		return nil, err
	}

	contextDocs := p.retrieveContext(ctx, req.TravelRequest)

	prompt, err := p.prompts.BuildAlternativePrompt(req.TravelRequest, req.Variant, contextDocs)
	if err != nil {
		return nil, err
	}

	if p.llm == nil {
		resp := p.demoResponse(req.TravelRequest, utils.ErrUpstreamUnavailable)
		p.persist(ctx, req, resp, "")
		return resp, nil
	}

	raw, err := p.complete(ctx, prompt)
	if err != nil {
		log.Printf("LLM call failed for %s: %v", req.Destination, err)
		resp := p.demoResponse(req.TravelRequest, utils.ErrUpstreamUnavailable)
		p.persist(ctx, req, resp, "")
		return resp, nil
	}

	answer, err := p.extractFinalAnswer(raw)
	if err != nil {
		log.Printf("Unusable LLM response for %s: %v", req.Destination, err)
		resp := p.demoResponse(req.TravelRequest, err)
		p.persist(ctx, req, resp, raw)
		return resp, nil
	}

	p.remember(prompt, raw)
	resp := p.normalizedResponse(answer, req.TravelRequest)
	p.persist(ctx, req, resp, raw)
	return resp, nil
}

func (p *PlannerService) GenerateDemo(req request_models.TravelRequest) *response_models.PlanResponse {
	return &response_models.PlanResponse{
		ID:        uuid.NewString(),
		Source:    response_models.SourceDemo,
		Result:    p.demo.GenerateDemoResult(req),
		CreatedAt: time.Now(),
	}
}

func (p *PlannerService) Normalize(responseText string, req request_models.TravelRequest) *response_models.PlanResponse {
	return p.normalizedResponse(responseText, req)
}

func (p *PlannerService) GetPlan(ctx context.Context, planID string) (*response_models.PlanResponse, error) {
	if p.planRepo == nil {
		return nil, utils.ErrPersistenceDisabled
	}
	if _, err := uuid.Parse(planID); err != nil {
		return nil, utils.ErrPlanNotFound
	}

	plan, err := p.planRepo.GetPlanByID(ctx, planID)
	if err != nil {
		log.Printf("Error loading plan %s: %v", planID, err)
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if plan == nil {
		return nil, utils.ErrPlanNotFound
	}

	resp := &response_models.PlanResponse{
		ID:        plan.ID.String(),
		Source:    plan.Source,
		Notice:    plan.Notice,
		CreatedAt: utils.FromUnixSeconds(plan.CreatedAt, time.Local),
	}
	if plan.ResultJSON != "" {
		var result response_models.NormalizedResult
		if err := json.Unmarshal([]byte(plan.ResultJSON), &result); err != nil {
			return nil, fmt.Errorf("%w: decode stored result: %v", utils.ErrDatabaseError, err)
		}
		resp.Result = &result
	}
	if plan.ErrorMessage != "" {
		resp.Error = &response_models.ErrorResult{RawText: plan.RawResponse, Message: plan.ErrorMessage}
	}
	return resp, nil
}

func (p *PlannerService) ListPlans(ctx context.Context, limit int) ([]response_models.PlanSummary, error) {
	if p.planRepo == nil {
		return nil, utils.ErrPersistenceDisabled
	}
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	plans, err := p.planRepo.ListRecentPlans(ctx, limit)
	if err != nil {
		log.Printf("Error listing plans: %v", err)
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	summaries := make([]response_models.PlanSummary, 0, len(plans))
	for _, plan := range plans {
		summaries = append(summaries, response_models.PlanSummary{
			ID:          plan.ID.String(),
			Destination: plan.Destination,
			Duration:    plan.Duration,
			Source:      plan.Source,
			Strategy:    plan.Strategy,
			CreatedAt:   utils.FromUnixSeconds(plan.CreatedAt, time.Local),
		})
	}
	return summaries, nil
}

// DestinationTips asks the model for weather or local advice and returns its
// text unparsed.
func (p *PlannerService) DestinationTips(ctx context.Context, destination string, duration int, kind string) (string, error) {
	prompt, err := p.prompts.BuildTipsPrompt(destination, duration, kind)
	if err != nil {
		return "", err
	}
	if p.llm == nil {
		return "", utils.ErrUpstreamUnavailable
	}
	tips, err := p.complete(ctx, prompt)
	if err != nil {
		log.Printf("Tips request failed for %s: %v", destination, err)
		if errors.Is(err, utils.ErrUpstreamUnavailable) || errors.Is(err, utils.ErrUnexpectedBehaviorOfAI) {
			return "", err
		}
		return "", fmt.Errorf("%w: %v", utils.ErrUpstreamUnavailable, err)
	}
	p.remember(prompt, tips)
	return strings.TrimSpace(tips), nil
}

func (p *PlannerService) Status() response_models.ProviderStatus {
	status := response_models.ProviderStatus{
		Connected:   p.llm != nil,
		Temperature: p.opts.Temperature,
		MaxTokens:   p.opts.MaxTokens,
		Retrieval:   p.retrieval != nil && p.retrieval.Enabled(),
		Persistence: p.planRepo != nil,
	}
	if p.llm != nil {
		status.Provider = p.llm.Provider()
		status.Model = p.llm.Model()
	}
	return status
}

func (p *PlannerService) retrieveContext(ctx context.Context, req request_models.TravelRequest) []string {
	if p.retrieval == nil || !p.retrieval.Enabled() {
		return nil
	}
	docs, err := p.retrieval.RetrieveContext(ctx, p.prompts.BuildRetrievalQuery(req), p.opts.RetrievalK)
	if err != nil {
		log.Printf("Retrieval skipped for %s: %v", req.Destination, err)
		return nil
	}
	contents := make([]string, 0, len(docs))
	for _, d := range docs {
		contents = append(contents, d.Content)
	}
	log.Printf("Retrieved %d documents for %s", len(contents), req.Destination)
	return contents
}

// complete calls the model, serving repeated prompts from the cache. Callers
// decide whether the answer is worth keeping via remember.
func (p *PlannerService) complete(ctx context.Context, prompt string) (string, error) {
	if p.cache != nil {
		if cached, ok := p.cache.Get(p.cacheKey(prompt)); ok {
			log.Println("Cache hit for completion")
			return cached, nil
		}
	}

	callCtx := ctx
	if p.opts.RequestTimeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, p.opts.RequestTimeout)
		defer cancel()
	}

	return p.llm.GenerateText(callCtx, prompt)
}

func (p *PlannerService) remember(prompt, completion string) {
	if p.cache == nil || strings.TrimSpace(completion) == "" {
		return
	}
	p.cache.Set(p.cacheKey(prompt), completion, p.opts.CacheTTL)
}

func (p *PlannerService) cacheKey(prompt string) string {
	return utils.HashKey(p.llm.Provider(), p.llm.Model(), prompt)
}

// extractFinalAnswer rejects answers too short to hold a plan and agent
// traces that stop at a tool call, and strips the "Final Answer:" prefix.
func (p *PlannerService) extractFinalAnswer(raw string) (string, error) {
	text := strings.TrimSpace(raw)
	if utf8.RuneCountInString(text) <= p.opts.MinResponseLength {
		return "", fmt.Errorf("%w: response has %d characters", utils.ErrUnexpectedBehaviorOfAI, utf8.RuneCountInString(text))
	}
	hasFinal := strings.Contains(text, finalAnswerMarker)
	if strings.Contains(text, actionMarker) && !hasFinal {
		return "", utils.ErrToolOnlyResponse
	}
	if hasFinal {
		text = strings.TrimSpace(text[strings.LastIndex(text, finalAnswerMarker)+len(finalAnswerMarker):])
	}
	return text, nil
}

func (p *PlannerService) normalizedResponse(text string, req request_models.TravelRequest) *response_models.PlanResponse {
	resp := &response_models.PlanResponse{
		ID:        uuid.NewString(),
		Source:    response_models.SourceLLM,
		CreatedAt: time.Now(),
	}

	result, err := p.normalizer.Normalize(text, req)
	if err != nil {
		var errResult *response_models.ErrorResult
		if !errors.As(err, &errResult) {
			errResult = &response_models.ErrorResult{RawText: text, Message: err.Error()}
		}
		resp.Error = errResult
		return resp
	}
	resp.Result = result
	return resp
}

func (p *PlannerService) demoResponse(req request_models.TravelRequest, cause error) *response_models.PlanResponse {
	resp := p.GenerateDemo(req)
	resp.Notice = fmt.Sprintf("%v; showing a demo itinerary", cause)
	return resp
}

// persist stores the outcome. Failures are logged and never reach the caller.
func (p *PlannerService) persist(ctx context.Context, req request_models.PlanRequest, resp *response_models.PlanResponse, raw string) {
	if p.planRepo == nil {
		return
	}

	id, err := uuid.Parse(resp.ID)
	if err != nil {
		log.Printf("Skipping persistence, bad plan id %q: %v", resp.ID, err)
		return
	}
	requestJSON, _ := json.Marshal(req)

	plan := &db_models.TravelPlan{
		BaseModel:   db_models.BaseModel{ID: id},
		Destination: req.Destination,
		Duration:    req.Duration,
		Variant:     req.Variant,
		Source:      resp.Source,
		Notice:      resp.Notice,
		RequestJSON: string(requestJSON),
		RawResponse: raw,
	}
	if resp.Result != nil {
		resultJSON, err := json.Marshal(resp.Result)
		if err != nil {
			log.Printf("Skipping persistence of plan %s: %v", resp.ID, err)
			return
		}
		plan.ResultJSON = string(resultJSON)
		plan.Strategy = resp.Result.Strategy
	}
	if resp.Error != nil {
		plan.ErrorMessage = resp.Error.Message
	}

	if err := p.planRepo.SavePlan(ctx, plan); err != nil {
		log.Printf("Error saving plan %s: %v", resp.ID, err)
	}
}

func validateTravelRequest(req request_models.TravelRequest) error {
	switch {
	case strings.TrimSpace(req.Destination) == "":
		return fmt.Errorf("%w: destination is required", utils.ErrInvalidInput)
	case req.Duration <= 0 || req.Duration > maxTripDays:
		return fmt.Errorf("%w: duration must be between 1 and %d", utils.ErrInvalidInput, maxTripDays)
	case req.GroupSize <= 0:
		return fmt.Errorf("%w: group size must be positive", utils.ErrInvalidInput)
	}
	return nil
}
