package postgres

import (
	"context"
	"fmt"

	"github.com/pvpk06/quiz-analysis-service/internal/models"
	"github.com/pvpk06/quiz-analysis-service/internal/repositories"
	"gorm.io/gorm"
)

type responseRepository struct {
	db *gorm.DB
}

func NewResponseRepository(db *gorm.DB) repositories.ResponseRepository {
	return &responseRepository{db: db}
}

func (r *responseRepository) GetByToken(ctx context.Context, token string, filters repositories.ResponseFilters) ([]models.QuizResponse, error) {
	query := r.db.WithContext(ctx).
		Model(&models.QuizResponse{}).
		Where("quiz_token = ?", token)

	query = applyResponseFilters(query, filters)

	var responses []models.QuizResponse
	if err := query.Find(&responses).Error; err != nil {
		return nil, fmt.Errorf("failed to get responses: %w", err)
	}
	return responses, nil
}

func (r *responseRepository) CountByToken(ctx context.Context, token string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.QuizResponse{}).
		Where("quiz_token = ?", token).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count responses: %w", err)
	}
	return count, nil
}

func applyResponseFilters(query *gorm.DB, filters repositories.ResponseFilters) *gorm.DB {
	if filters.Domain != nil {
		query = query.Where("domain = ?", *filters.Domain)
	}
	if filters.DateFrom != nil {
		query = query.Where("start_time >= ?", *filters.DateFrom)
	}
	if filters.DateTo != nil {
		query = query.Where("start_time <= ?", *filters.DateTo)
	}

	sortBy := filters.SortBy
	switch sortBy {
	case "start_time", "score", "created_at":
	default:
		sortBy = "created_at"
	}
	sortOrder := "ASC"
	if filters.SortOrder == "desc" {
		sortOrder = "DESC"
	}
	query = query.Order(fmt.Sprintf("%s %s", sortBy, sortOrder))

	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}
	return query
}
