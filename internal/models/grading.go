package models

// OptionState is the presentation state of a single option in the detail
// view. States are mutually exclusive: an option is the correct answer, a
// wrong pick, or neither.
type OptionState string

const (
	OptionCorrect         OptionState = "correct"
	OptionIncorrectChosen OptionState = "incorrect_chosen"
	OptionNeutral         OptionState = "neutral"
)

// GradedAnswer is the correctness judgment for one question of one
// respondent. Derived on demand, never persisted.
type GradedAnswer struct {
	QuestionText string  `json:"question_text"`
	ChosenOption *string `json:"chosen_option"`
	IsCorrect    bool    `json:"is_correct"`
	IsAnswered   bool    `json:"is_answered"`
}

// OptionView pairs an option's text with its resolved presentation state.
type OptionView struct {
	Text  string      `json:"text"`
	State OptionState `json:"state"`
}

// GradedQuestion is one row of the detail overlay: the question, its graded
// answer and every option classified. Number is the flat position across
// pages, starting at 1.
type GradedQuestion struct {
	Number        int          `json:"number"`
	QuestionText  string       `json:"question_text"`
	CorrectAnswer string       `json:"correct_answer"`
	Options       []OptionView `json:"options"`
	Answer        GradedAnswer `json:"answer"`
}
