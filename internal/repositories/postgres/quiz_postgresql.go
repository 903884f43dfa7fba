package postgres

import (
	"context"
	"fmt"

	"github.com/pvpk06/quiz-analysis-service/internal/models"
	"github.com/pvpk06/quiz-analysis-service/internal/repositories"
	"gorm.io/gorm"
)

type quizRepository struct {
	db *gorm.DB
}

func NewQuizRepository(db *gorm.DB) repositories.QuizRepository {
	return &quizRepository{db: db}
}

// GetByToken loads a quiz with its pages and questions in stored order.
func (r *quizRepository) GetByToken(ctx context.Context, token string) (*models.Quiz, error) {
	var quiz models.Quiz
	err := r.db.WithContext(ctx).
		Preload("Pages", func(db *gorm.DB) *gorm.DB {
			return db.Order("quiz_pages.page_order ASC")
		}).
		Preload("Pages.Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("quiz_questions.question_order ASC")
		}).
		Where("token = ?", token).
		First(&quiz).Error
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (r *quizRepository) ExistsByToken(ctx context.Context, token string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Quiz{}).
		Where("token = ?", token).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check quiz existence: %w", err)
	}
	return count > 0, nil
}
