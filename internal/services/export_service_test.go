package services

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/pvpk06/quiz-analysis-service/internal/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

func TestExportResponses(t *testing.T) {
	repo := newMockRepository()
	publisher := events.NewMockEventPublisher(slog.Default())
	svc := NewExportService(repo, NewGradingService(slog.Default()), publisher, slog.Default())

	repo.quiz.On("GetByToken", mock.Anything, "abc123").Return(testQuiz("abc123"), nil)
	repo.response.On("GetByToken", mock.Anything, "abc123", mock.Anything).Return(testResponses(), nil)

	data, err := svc.ExportResponses(context.Background(), "abc123")
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Responses")
	require.NoError(t, err)
	require.Len(t, rows, 3) // header + two respondents

	assert.Equal(t, "Name", rows[0][0])
	assert.Equal(t, "Correct Answers", rows[0][8])

	assert.Equal(t, "Alice", rows[1][0])
	assert.Equal(t, "2024-08-09 10:00:00", rows[1][3])
	assert.Equal(t, "00:10:00", rows[1][5])
	assert.Equal(t, "80", rows[1][6])
	assert.Equal(t, "A", rows[1][7])
	assert.Equal(t, "1", rows[1][8]) // Alice answered the single question correctly

	assert.Equal(t, "Bob", rows[2][0])
	assert.Equal(t, "0", rows[2][8]) // Bob answered nothing

	require.Len(t, publisher.Events, 1)
	assert.Equal(t, events.EventResponsesExported, publisher.Events[0].Type)
}

func TestExportResponsesQuizNotFound(t *testing.T) {
	repo := newMockRepository()
	svc := NewExportService(repo, NewGradingService(slog.Default()), nil, slog.Default())

	repo.quiz.On("GetByToken", mock.Anything, "missing").Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.ExportResponses(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrQuizNotFound)
}
