package models

import "strings"

// Option labels for the four alternatives of a question. Stored lowercase;
// comparisons against user input are case-insensitive.
const (
	LabelA = "a"
	LabelB = "b"
	LabelC = "c"
	LabelD = "d"
)

// Labels lists the closed set of valid option labels in display order.
var Labels = []string{LabelA, LabelB, LabelC, LabelD}

type Question struct {
	ID        int64  `json:"id"`
	Number    int    `json:"number"`
	Statement string `json:"statement"`
	OptionA   string `json:"option_a"`
	OptionB   string `json:"option_b"`
	OptionC   string `json:"option_c"`
	OptionD   string `json:"option_d"`
	Source    string `json:"source"`
	Answer    string `json:"answer"` // correct option label, one of Labels
}

// Options returns the alternatives keyed by option label.
func (q Question) Options() map[string]string {
	return map[string]string{
		LabelA: q.OptionA,
		LabelB: q.OptionB,
		LabelC: q.OptionC,
		LabelD: q.OptionD,
	}
}

// ValidAnswer reports whether the correct-option label is one of the four
// option keys.
func (q Question) ValidAnswer() bool {
	for _, l := range Labels {
		if strings.EqualFold(q.Answer, l) {
			return true
		}
	}
	return false
}

type QuestionFilter struct {
	Search string
	Source string
	Limit  int
	Offset int
}

// QuestionView is the display-ready shape of the current question. The
// correct label is deliberately absent.
type QuestionView struct {
	Index     int               `json:"index"` // 1-based position in the run
	Total     int               `json:"total"`
	Number    int               `json:"number"`
	Statement string            `json:"statement"`
	Options   map[string]string `json:"options"`
	Source    string            `json:"source"`
}

// QuizState describes the progress of the active quiz run.
type QuizState struct {
	SessionID string   `json:"session_id"`
	Total     int      `json:"total"`
	Position  int      `json:"position"`
	Correct   int      `json:"correct"`
	Finished  bool     `json:"finished"`
	Notices   []string `json:"notices,omitempty"`
}

// QuizChoices lists the request totals offered by the entry screen.
type QuizChoices struct {
	Choices []int `json:"choices"`
	Default int   `json:"default"`
}

// AnswerFeedback is the result of submitting one answer label.
type AnswerFeedback struct {
	Correct      bool   `json:"correct"`
	CorrectLabel string `json:"correct_label,omitempty"`
	Finished     bool   `json:"finished"`
}
