package analyzer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/pvpk06/quiz-analysis-service/internal/models"
	"github.com/pvpk06/quiz-analysis-service/internal/services"
)

// Phase is the outer lifecycle state of one analysis view.
type Phase string

const (
	PhaseIdle    Phase = "idle"
	PhaseLoading Phase = "loading"
	PhaseLoaded  Phase = "loaded"
	PhaseError   Phase = "error"
)

var (
	ErrNotLoaded          = errors.New("quiz data not loaded")
	ErrRespondentNotFound = errors.New("respondent not found")
)

// Selection holds the respondent currently open in the detail overlay,
// including the graded detail computed when the selection was made.
type Selection struct {
	Row      services.RespondentRow
	Response models.QuizResponse
	Detail   []models.GradedQuestion
}

// Controller drives one analysis view instance: one load cycle per token,
// plus the orthogonal detail-overlay selection. Grading runs only when a
// respondent is selected, and only for that respondent.
//
// Every load is tagged with a generation; a completion whose generation is
// no longer current is discarded, so the exposed state always reflects the
// most recently requested token.
type Controller struct {
	fetcher Fetcher
	grading services.GradingService
	logger  *slog.Logger

	mu         sync.Mutex
	generation uint64
	phase      Phase
	token      string
	payload    *models.QuizResponsesPayload
	errMsg     string
	selected   *Selection
}

func NewController(fetcher Fetcher, grading services.GradingService, logger *slog.Logger) *Controller {
	return &Controller{
		fetcher: fetcher,
		grading: grading,
		logger:  logger,
		phase:   PhaseIdle,
	}
}

// Load starts a fresh lifecycle for token: any previous payload, error and
// selection are dropped and the view enters the loading phase. The call
// blocks until the fetch resolves; run it on its own goroutine when the
// caller must stay responsive. There is no automatic retry - a failed load
// ends the cycle until Load is called again.
func (c *Controller) Load(ctx context.Context, token string) {
	c.mu.Lock()
	c.generation++
	gen := c.generation
	c.phase = PhaseLoading
	c.token = token
	c.payload = nil
	c.errMsg = ""
	c.selected = nil
	c.mu.Unlock()

	payload, err := c.fetcher.FetchQuizResponses(ctx, token)

	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.generation {
		// The token changed while this fetch was in flight.
		c.logger.Debug("discarding stale fetch result", "token", token)
		return
	}

	if err != nil {
		c.phase = PhaseError
		c.errMsg = fetchMessage(err)
		c.logger.Warn("quiz data fetch failed", "token", token, "error", err)
		return
	}

	c.phase = PhaseLoaded
	c.payload = payload
	c.logger.Info("quiz data loaded",
		"token", token,
		"responses", len(payload.Responses))
}

// fetchMessage prefers the server-provided error text over a generic one.
func fetchMessage(err error) string {
	var fetchErr *FetchError
	if errors.As(err, &fetchErr) && fetchErr.Message != "" {
		return fetchErr.Message
	}
	return genericFetchMessage
}

// Phase returns the current lifecycle phase.
func (c *Controller) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// Token returns the most recently requested token.
func (c *Controller) Token() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}

// ErrorMessage returns the message of the error phase, if any.
func (c *Controller) ErrorMessage() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errMsg
}

// Rows returns the normalized respondent listing for the loaded payload.
func (c *Controller) Rows() ([]services.RespondentRow, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.phase != PhaseLoaded {
		return nil, ErrNotLoaded
	}
	return services.BuildRespondentRows(c.payload.Responses), nil
}

// SelectRespondent opens the detail overlay for the respondent at index,
// grading all of their answers across all pages. The graded detail lives
// only inside the selection.
func (c *Controller) SelectRespondent(index int) (*Selection, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.phase != PhaseLoaded {
		return nil, ErrNotLoaded
	}
	if index < 0 || index >= len(c.payload.Responses) {
		return nil, fmt.Errorf("%w: index %d", ErrRespondentNotFound, index)
	}

	response := c.payload.Responses[index]
	c.selected = &Selection{
		Row:      services.BuildRespondentRow(response),
		Response: response,
		Detail:   c.grading.GradeResponse(c.payload.Pages, response),
	}
	return c.selected, nil
}

// Selection returns the open detail overlay, if any.
func (c *Controller) Selection() (*Selection, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.selected == nil {
		return nil, false
	}
	return c.selected, true
}

// CloseSelection drops the detail overlay and its graded data.
func (c *Controller) CloseSelection() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selected = nil
}
