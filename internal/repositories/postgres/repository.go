package postgres

import (
	"github.com/pvpk06/quiz-analysis-service/internal/repositories"
	"gorm.io/gorm"
)

type gormRepository struct {
	db       *gorm.DB
	quiz     repositories.QuizRepository
	response repositories.ResponseRepository
}

// NewRepository builds the gorm-backed repository aggregate.
func NewRepository(db *gorm.DB) repositories.Repository {
	return &gormRepository{
		db:       db,
		quiz:     NewQuizRepository(db),
		response: NewResponseRepository(db),
	}
}

func (r *gormRepository) Quiz() repositories.QuizRepository {
	return r.quiz
}

func (r *gormRepository) Response() repositories.ResponseRepository {
	return r.response
}
