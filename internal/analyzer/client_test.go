package analyzer

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientFetchSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/quiz-responses/abc123", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"responses": [
				{
					"user_name": "Alice",
					"user_email": "a@example.com",
					"start_time": "2024-08-09T10:00:00Z",
					"end_time": "2024-08-09 10:10:00",
					"duration": 600,
					"score": 80,
					"grade": "A",
					"responses": [{"questionText": "2+2?", "answer": "4"}]
				}
			],
			"pages_data": [
				{"question_list": [{"question_text": "2+2?", "options_list": ["3", "4", "5"], "correct_answer": "4"}]}
			]
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	payload, err := client.FetchQuizResponses(context.Background(), "abc123")
	require.NoError(t, err)

	require.Len(t, payload.Responses, 1)
	resp := payload.Responses[0]
	assert.Equal(t, "Alice", resp.UserName)
	require.NotNil(t, resp.UserEmail)
	assert.True(t, resp.StartTime.Valid)
	assert.True(t, resp.EndTime.Valid)
	require.Len(t, resp.Answers, 1)
	assert.Equal(t, "2+2?", resp.Answers[0].QuestionText)

	require.Len(t, payload.Pages, 1)
	require.Len(t, payload.Pages[0].Questions, 1)
	assert.Equal(t, []string{"3", "4", "5"}, []string(payload.Pages[0].Questions[0].Options))
}

func TestClientFetchMalformedTimestampKeptAsRaw(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"responses": [{"user_name": "Bob", "start_time": "yesterday-ish"}], "pages_data": []}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	payload, err := client.FetchQuizResponses(context.Background(), "abc123")
	require.NoError(t, err)

	// A malformed timestamp must not fail the whole payload.
	require.Len(t, payload.Responses, 1)
	start := payload.Responses[0].StartTime
	assert.False(t, start.Valid)
	assert.Equal(t, "yesterday-ish", start.Raw)
	assert.True(t, start.Present())
}

func TestClientFetchServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error": "quiz not found"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.FetchQuizResponses(context.Background(), "abc123")
	require.Error(t, err)

	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, http.StatusNotFound, fetchErr.StatusCode)
	assert.Equal(t, "quiz not found", fetchErr.Message)
}

func TestClientFetchServerErrorWithoutBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.FetchQuizResponses(context.Background(), "abc123")

	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Empty(t, fetchErr.Message)
}
