package models

import (
	"time"

	"gorm.io/datatypes"
)

// Answer associates a question (by its text) with the option the respondent
// picked. Answers are stored in recorded order.
type Answer struct {
	QuestionText string `json:"questionText"`
	Answer       string `json:"answer"`
}

// QuizResponse is one submitted quiz attempt. Email, domain, timing and grade
// fields are optional in stored data; consumers check presence explicitly.
type QuizResponse struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	QuizToken string `json:"-" gorm:"not null;size:64;index"`

	UserName  string  `json:"user_name" gorm:"size:100"`
	UserEmail *string `json:"user_email" gorm:"size:200"`
	Domain    *string `json:"domain" gorm:"size:100"`

	StartTime WireTime `json:"start_time" gorm:"type:timestamptz"`
	EndTime   WireTime `json:"end_time" gorm:"type:timestamptz"`
	Duration  int      `json:"duration"` // seconds

	Score *float64 `json:"score"`
	Grade *string  `json:"grade" gorm:"size:20"`

	Answers datatypes.JSONSlice[Answer] `json:"responses" gorm:"type:jsonb"`

	CreatedAt time.Time `json:"created_at"`
}

func (QuizResponse) TableName() string {
	return "quiz_responses"
}

// QuizResponsesPayload is the wire shape of GET /quiz-responses/:token.
type QuizResponsesPayload struct {
	Responses []QuizResponse `json:"responses"`
	Pages     []Page         `json:"pages_data"`
}
