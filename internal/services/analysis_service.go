package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/pvpk06/quiz-analysis-service/internal/cache"
	"github.com/pvpk06/quiz-analysis-service/internal/events"
	"github.com/pvpk06/quiz-analysis-service/internal/format"
	"github.com/pvpk06/quiz-analysis-service/internal/models"
	"github.com/pvpk06/quiz-analysis-service/internal/repositories"
)

// FieldUnavailable marks a display field whose stored value could not be
// normalized. The listing never fails because of one bad field.
const FieldUnavailable = "unavailable"

// ===== VIEW MODEL STRUCTS =====

// RespondentRow is the presentation-ready aggregate for one respondent.
// Graded answers are not part of the row; they are computed only when the
// respondent is opened in the detail view.
type RespondentRow struct {
	UserName          string   `json:"user_name"`
	UserEmail         string   `json:"user_email"`
	Domain            string   `json:"domain"`
	NormalizedStart   string   `json:"normalized_start"`
	NormalizedEnd     string   `json:"normalized_end"`
	FormattedDuration string   `json:"formatted_duration"`
	Score             *float64 `json:"score"`
	Grade             string   `json:"grade"`
}

// QuizSummary aggregates timing and score statistics across all respondents.
type QuizSummary struct {
	QuizToken       string         `json:"quiz_token"`
	Title           string         `json:"title"`
	QuestionCount   int            `json:"question_count"`
	ResponseCount   int            `json:"response_count"`
	AverageScore    *float64       `json:"average_score"`
	AverageDuration string         `json:"average_duration"`
	GradeCounts     map[string]int `json:"grade_counts"`
}

// ===== SERVICE =====

// AnalysisService assembles the per-token response payload and its derived
// aggregates for the admin analysis views.
type AnalysisService interface {
	GetQuizResponses(ctx context.Context, token string) (*models.QuizResponsesPayload, error)
	GetSummary(ctx context.Context, token string) (*QuizSummary, error)
}

type analysisService struct {
	repo      repositories.Repository
	cache     cache.CacheService
	publisher events.EventPublisher
	logger    *slog.Logger
	cacheTTL  time.Duration
}

func NewAnalysisService(
	repo repositories.Repository,
	cacheService cache.CacheService,
	publisher events.EventPublisher,
	logger *slog.Logger,
	cacheTTL time.Duration,
) AnalysisService {
	return &analysisService{
		repo:      repo,
		cache:     cacheService,
		publisher: publisher,
		logger:    logger,
		cacheTTL:  cacheTTL,
	}
}

func responsesCacheKey(token string) string {
	return "quiz_responses:" + token
}

// GetQuizResponses returns the full `{responses, pages_data}` payload for a
// quiz token, serving from the Redis cache when possible.
func (s *analysisService) GetQuizResponses(ctx context.Context, token string) (*models.QuizResponsesPayload, error) {
	if s.cache != nil {
		var cached models.QuizResponsesPayload
		if err := s.cache.Get(ctx, responsesCacheKey(token), &cached); err == nil {
			s.publishViewed(ctx, token, len(cached.Responses))
			return &cached, nil
		}
	}

	payload, err := s.loadPayload(ctx, token)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, responsesCacheKey(token), payload, s.cacheTTL); err != nil {
			s.logger.Warn("failed to cache quiz responses", "token", token, "error", err)
		}
	}

	s.publishViewed(ctx, token, len(payload.Responses))
	return payload, nil
}

func (s *analysisService) loadPayload(ctx context.Context, token string) (*models.QuizResponsesPayload, error) {
	quiz, err := s.repo.Quiz().GetByToken(ctx, token)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrQuizNotFound
		}
		return nil, fmt.Errorf("failed to get quiz: %w", err)
	}

	responses, err := s.repo.Response().GetByToken(ctx, token, repositories.ResponseFilters{})
	if err != nil {
		return nil, fmt.Errorf("failed to get responses: %w", err)
	}

	return &models.QuizResponsesPayload{
		Responses: responses,
		Pages:     quiz.Pages,
	}, nil
}

// GetSummary folds score and timing aggregates across all respondents.
func (s *analysisService) GetSummary(ctx context.Context, token string) (*QuizSummary, error) {
	quiz, err := s.repo.Quiz().GetByToken(ctx, token)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrQuizNotFound
		}
		return nil, fmt.Errorf("failed to get quiz: %w", err)
	}

	responses, err := s.repo.Response().GetByToken(ctx, token, repositories.ResponseFilters{})
	if err != nil {
		return nil, fmt.Errorf("failed to get responses: %w", err)
	}

	questionCount := 0
	for _, page := range quiz.Pages {
		questionCount += len(page.Questions)
	}

	summary := &QuizSummary{
		QuizToken:     token,
		Title:         quiz.Title,
		QuestionCount: questionCount,
		ResponseCount: len(responses),
		GradeCounts:   make(map[string]int),
	}

	scoreSum := 0.0
	scored := 0
	durationSum := 0
	timed := 0
	for i := range responses {
		if responses[i].Score != nil {
			scoreSum += *responses[i].Score
			scored++
		}
		if responses[i].Duration >= 0 {
			durationSum += responses[i].Duration
			timed++
		}
		if responses[i].Grade != nil {
			summary.GradeCounts[*responses[i].Grade]++
		}
	}

	if scored > 0 {
		avg := scoreSum / float64(scored)
		summary.AverageScore = &avg
	}
	if timed > 0 {
		if formatted, err := format.FormatDuration(durationSum / timed); err == nil {
			summary.AverageDuration = formatted
		} else {
			summary.AverageDuration = FieldUnavailable
		}
	}

	return summary, nil
}

func (s *analysisService) publishViewed(ctx context.Context, token string, responseCount int) {
	if s.publisher == nil {
		return
	}
	event := events.NewResponsesViewedEvent(token, responseCount)
	if err := s.publisher.PublishAnalysisEvent(ctx, event); err != nil {
		s.logger.Warn("failed to publish responses.viewed event", "token", token, "error", err)
	}
}

// ===== AGGREGATION HELPERS =====

// BuildRespondentRow normalizes one response into its display row. Absent
// optional fields come through empty; fields whose stored value cannot be
// normalized degrade to the FieldUnavailable marker.
func BuildRespondentRow(response models.QuizResponse) RespondentRow {
	row := RespondentRow{
		UserName: response.UserName,
		Score:    response.Score,
	}

	if response.UserEmail != nil {
		row.UserEmail = *response.UserEmail
	}
	if response.Domain != nil {
		row.Domain = *response.Domain
	}
	if response.Grade != nil {
		row.Grade = *response.Grade
	}

	row.NormalizedStart = normalizeWireTime(response.StartTime)
	row.NormalizedEnd = normalizeWireTime(response.EndTime)

	if formatted, err := format.FormatDuration(response.Duration); err == nil {
		row.FormattedDuration = formatted
	} else {
		row.FormattedDuration = FieldUnavailable
	}

	return row
}

// BuildRespondentRows maps every response through BuildRespondentRow.
func BuildRespondentRows(responses []models.QuizResponse) []RespondentRow {
	rows := make([]RespondentRow, 0, len(responses))
	for i := range responses {
		rows = append(rows, BuildRespondentRow(responses[i]))
	}
	return rows
}

func normalizeWireTime(wt models.WireTime) string {
	switch {
	case wt.Valid:
		return format.NormalizeTime(wt.Time)
	case wt.Raw != "":
		// Recorded but unparsable; surface a marker, never a bogus date.
		return FieldUnavailable
	default:
		return ""
	}
}
