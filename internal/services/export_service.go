package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pvpk06/quiz-analysis-service/internal/events"
	"github.com/pvpk06/quiz-analysis-service/internal/repositories"
	"github.com/xuri/excelize/v2"
)

// ExportService renders a quiz's graded responses as an Excel workbook.
type ExportService interface {
	ExportResponses(ctx context.Context, token string) ([]byte, error)
}

type exportService struct {
	repo      repositories.Repository
	grading   GradingService
	publisher events.EventPublisher
	logger    *slog.Logger
}

func NewExportService(
	repo repositories.Repository,
	grading GradingService,
	publisher events.EventPublisher,
	logger *slog.Logger,
) ExportService {
	return &exportService{
		repo:      repo,
		grading:   grading,
		publisher: publisher,
		logger:    logger,
	}
}

func (s *exportService) ExportResponses(ctx context.Context, token string) ([]byte, error) {
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

	f := excelize.NewFile()
	sheetName := "Responses"

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create Excel sheet: %w", err)
	}
	f.SetActiveSheet(index)

	headers := []string{
		"Name", "Email", "Domain", "Start Time", "End Time", "Duration",
		"Score", "Grade", "Correct Answers", "Answered Questions", "Total Questions",
	}

	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
	}

	for rowIndex, response := range responses {
		graded := s.grading.GradeResponse(quiz.Pages, response)
		correct := 0
		answered := 0
		for _, g := range graded {
			if g.Answer.IsCorrect {
				correct++
			}
			if g.Answer.IsAnswered {
				answered++
			}
		}

		vm := BuildRespondentRow(response)

		row := []interface{}{
			vm.UserName,
			vm.UserEmail,
			vm.Domain,
			vm.NormalizedStart,
			vm.NormalizedEnd,
			vm.FormattedDuration,
		}

		if vm.Score != nil {
			row = append(row, *vm.Score)
		} else {
			row = append(row, "")
		}

		row = append(row, vm.Grade, correct, answered, len(graded))

		for colIndex, value := range row {
			cell := fmt.Sprintf("%c%d", 'A'+colIndex, rowIndex+2)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}

	s.publishExported(ctx, token, len(responses))

	return buf.Bytes(), nil
}

func (s *exportService) publishExported(ctx context.Context, token string, responseCount int) {
	if s.publisher == nil {
		return
	}
	event := events.NewResponsesExportedEvent(token, responseCount)
	if err := s.publisher.PublishAnalysisEvent(ctx, event); err != nil {
		s.logger.Warn("failed to publish responses.exported event", "token", token, "error", err)
	}
}
