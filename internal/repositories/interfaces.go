package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/pvpk06/quiz-analysis-service/internal/models"
	"gorm.io/gorm"
)

// ===== SHARED FILTER STRUCTS =====

type ResponseFilters struct {
	Domain    *string    `json:"domain"`
	DateFrom  *time.Time `json:"date_from"`
	DateTo    *time.Time `json:"date_to"`
	Limit     int        `json:"limit"`
	Offset    int        `json:"offset"`
	SortBy    string     `json:"sort_by"`    // "created_at", "start_time", "score"
	SortOrder string     `json:"sort_order"` // "asc", "desc"
}

// ===== REPOSITORY INTERFACES =====

// QuizRepository reads quiz definitions. All reads preload pages and
// questions in their stored order.
type QuizRepository interface {
	GetByToken(ctx context.Context, token string) (*models.Quiz, error)
	ExistsByToken(ctx context.Context, token string) (bool, error)
}

// ResponseRepository reads submitted quiz attempts.
type ResponseRepository interface {
	GetByToken(ctx context.Context, token string, filters ResponseFilters) ([]models.QuizResponse, error)
	CountByToken(ctx context.Context, token string) (int64, error)
}

// Repository aggregates the per-entity repositories behind one handle.
type Repository interface {
	Quiz() QuizRepository
	Response() ResponseRepository
}

// IsNotFoundError reports whether err is the storage layer's not-found error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
