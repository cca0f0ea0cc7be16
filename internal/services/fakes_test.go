package services

import (
	"context"
	"sync"
	"time"

	"github.com/pgvector/pgvector-go"
	"github.com/stretchr/testify/mock"

	"tripmate/internal/models/db_models"
	"tripmate/internal/normalizer"
)

var fixedNow = time.Date(2026, 3, 31, 22, 15, 0, 0, time.UTC)

func newTestNormalizer() *normalizer.Normalizer {
	return normalizer.New(
		normalizer.WithClock(func() time.Time { return fixedNow }),
		normalizer.WithLocation(time.UTC),
	)
}

type mockLLM struct {
	mock.Mock
}

func (m *mockLLM) GenerateText(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

func (m *mockLLM) GetEmbedding(ctx context.Context, text string) (pgvector.Vector, error) {
	args := m.Called(ctx, text)
	return args.Get(0).(pgvector.Vector), args.Error(1)
}

func (m *mockLLM) Provider() string { return "openai" }

func (m *mockLLM) Model() string { return "gpt-test" }

func (m *mockLLM) Close() error { return nil }

type fakePlanRepo struct {
	mu      sync.Mutex
	plans   []db_models.TravelPlan
	saveErr error
}

func (f *fakePlanRepo) SavePlan(_ context.Context, plan *db_models.TravelPlan) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	stored := *plan
	stored.CreatedAt = fixedNow.Unix()
	f.plans = append(f.plans, stored)
	return nil
}

func (f *fakePlanRepo) GetPlanByID(_ context.Context, planID string) (*db_models.TravelPlan, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.plans {
		if f.plans[i].ID.String() == planID {
			p := f.plans[i]
			return &p, nil
		}
	}
	return nil, nil
}

func (f *fakePlanRepo) ListRecentPlans(_ context.Context, limit int) ([]db_models.TravelPlan, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]db_models.TravelPlan, 0, limit)
	for i := len(f.plans) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, f.plans[i])
	}
	return out, nil
}

type fakeDocRepo struct {
	stored    []db_models.TravelDocument
	matches   []db_models.DocumentMatch
	searchErr error
	lastK     int
}

func (f *fakeDocRepo) CreateDocuments(_ context.Context, docs []db_models.TravelDocument) error {
	f.stored = append(f.stored, docs...)
	return nil
}

func (f *fakeDocRepo) SearchByVector(_ context.Context, _ pgvector.Vector, k int, _ float64) ([]db_models.DocumentMatch, error) {
	f.lastK = k
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.matches, nil
}

func (f *fakeDocRepo) CountDocuments(_ context.Context) (int64, error) {
	return int64(len(f.stored)), nil
}
