package services

import (
	"log/slog"

	"github.com/pvpk06/quiz-analysis-service/internal/models"
)

// GradingService matches free-form answer records against a quiz's question
// schema and judges correctness. Evaluation is pure and happens on demand,
// for one respondent at a time.
type GradingService interface {
	Evaluate(question models.Question, answers []models.Answer) models.GradedAnswer
	ClassifyOption(option string, question models.Question, graded models.GradedAnswer) models.OptionState
	GradeResponse(pages []models.Page, response models.QuizResponse) []models.GradedQuestion
}

type gradingService struct {
	logger *slog.Logger
}

func NewGradingService(logger *slog.Logger) GradingService {
	return &gradingService{logger: logger}
}

// Evaluate finds the respondent's answer for a question and judges it.
// The join key is the exact question text; the first answer in recorded
// order wins when question texts collide. No answer means unanswered, which
// is never an error.
func (s *gradingService) Evaluate(question models.Question, answers []models.Answer) models.GradedAnswer {
	graded := models.GradedAnswer{QuestionText: question.Text}

	for i := range answers {
		if answers[i].QuestionText != question.Text {
			continue
		}
		chosen := answers[i].Answer
		graded.ChosenOption = &chosen
		graded.IsAnswered = true
		graded.IsCorrect = chosen == question.CorrectAnswer
		break
	}

	return graded
}

// ClassifyOption resolves exactly one presentation state for an option.
// The correct answer always classifies as correct, even when chosen.
func (s *gradingService) ClassifyOption(option string, question models.Question, graded models.GradedAnswer) models.OptionState {
	switch {
	case option == question.CorrectAnswer:
		return models.OptionCorrect
	case graded.ChosenOption != nil && option == *graded.ChosenOption:
		return models.OptionIncorrectChosen
	default:
		return models.OptionNeutral
	}
}

// GradeResponse evaluates every question of every page, in page order, for
// one respondent. Question numbers run continuously across pages.
func (s *gradingService) GradeResponse(pages []models.Page, response models.QuizResponse) []models.GradedQuestion {
	var graded []models.GradedQuestion
	number := 0

	for _, page := range pages {
		for _, question := range page.Questions {
			number++

			answer := s.Evaluate(question, response.Answers)

			options := make([]models.OptionView, 0, len(question.Options))
			for _, option := range question.Options {
				options = append(options, models.OptionView{
					Text:  option,
					State: s.ClassifyOption(option, question, answer),
				})
			}

			graded = append(graded, models.GradedQuestion{
				Number:        number,
				QuestionText:  question.Text,
				CorrectAnswer: question.CorrectAnswer,
				Options:       options,
				Answer:        answer,
			})
		}
	}

	s.logger.Debug("graded response",
		"response_id", response.ID,
		"questions", number)

	return graded
}
