package services

import (
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/pvpk06/quiz-analysis-service/internal/cache"
	"github.com/pvpk06/quiz-analysis-service/internal/events"
	"github.com/pvpk06/quiz-analysis-service/internal/models"
	"github.com/pvpk06/quiz-analysis-service/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// MockQuizRepository is a mock implementation of QuizRepository
type MockQuizRepository struct {
	mock.Mock
}

func (m *MockQuizRepository) GetByToken(ctx context.Context, token string) (*models.Quiz, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Quiz), args.Error(1)
}

func (m *MockQuizRepository) ExistsByToken(ctx context.Context, token string) (bool, error) {
	args := m.Called(ctx, token)
	return args.Bool(0), args.Error(1)
}

// MockResponseRepository is a mock implementation of ResponseRepository
type MockResponseRepository struct {
	mock.Mock
}

func (m *MockResponseRepository) GetByToken(ctx context.Context, token string, filters repositories.ResponseFilters) ([]models.QuizResponse, error) {
	args := m.Called(ctx, token, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.QuizResponse), args.Error(1)
}

func (m *MockResponseRepository) CountByToken(ctx context.Context, token string) (int64, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(int64), args.Error(1)
}

type mockRepository struct {
	quiz     *MockQuizRepository
	response *MockResponseRepository
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		quiz:     new(MockQuizRepository),
		response: new(MockResponseRepository),
	}
}

func (m *mockRepository) Quiz() repositories.QuizRepository         { return m.quiz }
func (m *mockRepository) Response() repositories.ResponseRepository { return m.response }

// memoryCache is a minimal CacheService for tests
type memoryCache struct {
	data map[string][]byte
}

func newMemoryCache() *memoryCache {
	return &memoryCache{data: make(map[string][]byte)}
}

func (c *memoryCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.data[key] = data
	return nil
}

func (c *memoryCache) Get(ctx context.Context, key string, dest interface{}) error {
	data, ok := c.data[key]
	if !ok {
		return cache.ErrCacheMiss
	}
	return json.Unmarshal(data, dest)
}

func (c *memoryCache) Delete(ctx context.Context, key string) error {
	delete(c.data, key)
	return nil
}

func (c *memoryCache) DeletePattern(ctx context.Context, pattern string) error {
	return nil
}

func testQuiz(token string) *models.Quiz {
	return &models.Quiz{
		Token: token,
		Title: "Backend Basics",
		Pages: []models.Page{
			{Questions: []models.Question{
				{Text: "2+2?", Options: datatypes.NewJSONSlice([]string{"3", "4", "5"}), CorrectAnswer: "4"},
			}},
		},
	}
}

func testResponses() []models.QuizResponse {
	email := "a@example.com"
	domain := "engineering"
	scoreA := 80.0
	scoreB := 60.0
	gradeA := "A"
	gradeB := "B"
	start, _ := time.Parse(time.RFC3339, "2024-08-09T10:00:00Z")
	end := start.Add(10 * time.Minute)

	return []models.QuizResponse{
		{
			UserName:  "Alice",
			UserEmail: &email,
			Domain:    &domain,
			StartTime: models.NewWireTime(start),
			EndTime:   models.NewWireTime(end),
			Duration:  600,
			Score:     &scoreA,
			Grade:     &gradeA,
			Answers: datatypes.NewJSONSlice([]models.Answer{
				{QuestionText: "2+2?", Answer: "4"},
			}),
		},
		{
			UserName: "Bob",
			Duration: 300,
			Score:    &scoreB,
			Grade:    &gradeB,
		},
	}
}

func TestGetQuizResponses(t *testing.T) {
	repo := newMockRepository()
	publisher := events.NewMockEventPublisher(slog.Default())
	svc := NewAnalysisService(repo, newMemoryCache(), publisher, slog.Default(), time.Minute)

	repo.quiz.On("GetByToken", mock.Anything, "abc123").Return(testQuiz("abc123"), nil).Once()
	repo.response.On("GetByToken", mock.Anything, "abc123", mock.Anything).Return(testResponses(), nil).Once()

	payload, err := svc.GetQuizResponses(context.Background(), "abc123")
	require.NoError(t, err)
	assert.Len(t, payload.Responses, 2)
	assert.Len(t, payload.Pages, 1)

	// Second call hits the cache; the repo mocks allow only one call each.
	cached, err := svc.GetQuizResponses(context.Background(), "abc123")
	require.NoError(t, err)
	assert.Len(t, cached.Responses, 2)

	repo.quiz.AssertExpectations(t)
	repo.response.AssertExpectations(t)

	// One viewed event per served payload, cached or not.
	require.Len(t, publisher.Events, 2)
	assert.Equal(t, events.EventResponsesViewed, publisher.Events[0].Type)
}

func TestGetQuizResponsesNotFound(t *testing.T) {
	repo := newMockRepository()
	svc := NewAnalysisService(repo, nil, nil, slog.Default(), time.Minute)

	repo.quiz.On("GetByToken", mock.Anything, "missing").Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.GetQuizResponses(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrQuizNotFound)
}

func TestGetSummary(t *testing.T) {
	repo := newMockRepository()
	svc := NewAnalysisService(repo, nil, nil, slog.Default(), time.Minute)

	repo.quiz.On("GetByToken", mock.Anything, "abc123").Return(testQuiz("abc123"), nil)
	repo.response.On("GetByToken", mock.Anything, "abc123", mock.Anything).Return(testResponses(), nil)

	summary, err := svc.GetSummary(context.Background(), "abc123")
	require.NoError(t, err)

	assert.Equal(t, "abc123", summary.QuizToken)
	assert.Equal(t, 1, summary.QuestionCount)
	assert.Equal(t, 2, summary.ResponseCount)
	require.NotNil(t, summary.AverageScore)
	assert.InDelta(t, 70.0, *summary.AverageScore, 0.001)
	assert.Equal(t, "00:07:30", summary.AverageDuration) // (600+300)/2 = 450s
	assert.Equal(t, map[string]int{"A": 1, "B": 1}, summary.GradeCounts)
}

func TestBuildRespondentRow(t *testing.T) {
	row := BuildRespondentRow(testResponses()[0])

	assert.Equal(t, "Alice", row.UserName)
	assert.Equal(t, "a@example.com", row.UserEmail)
	assert.Equal(t, "engineering", row.Domain)
	assert.Equal(t, "2024-08-09 10:00:00", row.NormalizedStart)
	assert.Equal(t, "2024-08-09 10:10:00", row.NormalizedEnd)
	assert.Equal(t, "00:10:00", row.FormattedDuration)
	require.NotNil(t, row.Score)
	assert.Equal(t, 80.0, *row.Score)
	assert.Equal(t, "A", row.Grade)
}

func TestBuildRespondentRowAbsentFields(t *testing.T) {
	row := BuildRespondentRow(models.QuizResponse{UserName: "Bob"})

	assert.Equal(t, "Bob", row.UserName)
	assert.Empty(t, row.UserEmail)
	assert.Empty(t, row.Domain)
	assert.Empty(t, row.NormalizedStart)
	assert.Empty(t, row.NormalizedEnd)
	assert.Equal(t, "00:00:00", row.FormattedDuration)
	assert.Nil(t, row.Score)
	assert.Empty(t, row.Grade)
}

func TestBuildRespondentRowDegradedFields(t *testing.T) {
	response := models.QuizResponse{
		UserName:  "Carol",
		StartTime: models.WireTime{Raw: "not a date"},
		Duration:  -5,
	}

	row := BuildRespondentRow(response)

	// Bad fields degrade to the marker; the row itself survives.
	assert.Equal(t, FieldUnavailable, row.NormalizedStart)
	assert.Equal(t, FieldUnavailable, row.FormattedDuration)
	assert.Empty(t, row.NormalizedEnd)
}
