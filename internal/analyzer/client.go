// Package analyzer is the admin-side core of the response review tool: it
// fetches a quiz's submitted responses, grades the selected respondent on
// demand and exposes a stable view model to the rendering layer.
package analyzer

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/pvpk06/quiz-analysis-service/internal/models"
)

// genericFetchMessage is shown when the server gives no error text.
const genericFetchMessage = "Error fetching quiz data"

// FetchError carries the server-provided error text for a failed load.
type FetchError struct {
	StatusCode int
	Message    string
}

func (e *FetchError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("fetch failed (%d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("fetch failed (%d)", e.StatusCode)
}

// Fetcher is the single suspension point of the controller.
type Fetcher interface {
	FetchQuizResponses(ctx context.Context, token string) (*models.QuizResponsesPayload, error)
}

// Client fetches quiz response payloads over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// FetchQuizResponses issues GET /quiz-responses/{token}. A non-2xx status
// yields a FetchError carrying the `{error}` body text when present.
func (c *Client) FetchQuizResponses(ctx context.Context, token string) (*models.QuizResponsesPayload, error) {
	url := fmt.Sprintf("%s/quiz-responses/%s", c.baseURL, token)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		fetchErr := &FetchError{StatusCode: resp.StatusCode}
		var body struct {
			Error string `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&body); err == nil {
			fetchErr.Message = body.Error
		}
		return nil, fetchErr
	}

	var payload models.QuizResponsesPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode payload: %w", err)
	}
	return &payload, nil
}
