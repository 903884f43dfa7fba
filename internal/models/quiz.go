package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Quiz is the stored quiz definition, addressed by its opaque share token.
// The analysis service only ever reads quizzes; authoring lives elsewhere.
type Quiz struct {
	ID    uint   `json:"id" gorm:"primaryKey"`
	Token string `json:"token" gorm:"not null;size:64;uniqueIndex" validate:"required"`
	Title string `json:"title" gorm:"size:200"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Pages []Page `json:"pages_data" gorm:"foreignKey:QuizID"`
}

// Page groups an ordered run of questions.
type Page struct {
	ID        uint `json:"id" gorm:"primaryKey"`
	QuizID    uint `json:"-" gorm:"not null;index"`
	PageOrder int  `json:"page_order" gorm:"not null;default:0"`

	// Relations
	Questions []Question `json:"question_list" gorm:"foreignKey:PageID"`
}

// Question carries its options inline as JSONB; question text is the join
// key against recorded answers.
type Question struct {
	ID            uint                        `json:"id" gorm:"primaryKey"`
	PageID        uint                        `json:"-" gorm:"not null;index"`
	QuestionOrder int                         `json:"question_order" gorm:"not null;default:0"`
	Text          string                      `json:"question_text" gorm:"not null;type:text"`
	Options       datatypes.JSONSlice[string] `json:"options_list" gorm:"type:jsonb"`
	CorrectAnswer string                      `json:"correct_answer" gorm:"not null;type:text"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

func (Page) TableName() string {
	return "quiz_pages"
}

func (Question) TableName() string {
	return "quiz_questions"
}
