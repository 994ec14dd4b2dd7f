// Package quiz defines the question model, the catalog of imported question
// sets and the session state machine that drives one attempt.
// It has no dependencies outside the standard library.
package quiz

import (
	"fmt"
	"strings"
)

// OptionCount is the number of answer choices every question carries.
const OptionCount = 4

// QuestionRecord is one validated question. Options are numbered 1..4.
type QuestionRecord struct {
	Text          string
	Options       [OptionCount]string
	CorrectOption int
}

// NewQuestionRecord validates and builds a question record.
func NewQuestionRecord(text string, options [OptionCount]string, correct int) (QuestionRecord, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return QuestionRecord{}, fmt.Errorf("question text is empty")
	}
	if !ValidOption(correct) {
		return QuestionRecord{}, fmt.Errorf("correct option %d: %w", correct, ErrInvalidOption)
	}
	return QuestionRecord{
		Text:          text,
		Options:       options,
		CorrectOption: correct,
	}, nil
}

// Option returns the text of the 1-based option n.
func (q QuestionRecord) Option(n int) (string, bool) {
	if !ValidOption(n) {
		return "", false
	}
	return q.Options[n-1], true
}

// CorrectText returns the text of the correct option.
func (q QuestionRecord) CorrectText() string {
	s, _ := q.Option(q.CorrectOption)
	return s
}

// ValidOption reports whether n is an option number.
func ValidOption(n int) bool {
	return n >= 1 && n <= OptionCount
}

// QuizSet is a named, ordered, immutable collection of questions.
type QuizSet struct {
	name      string
	questions []QuestionRecord
}

// NewQuizSet copies questions into a new set.
func NewQuizSet(name string, questions []QuestionRecord) *QuizSet {
	qs := make([]QuestionRecord, len(questions))
	copy(qs, questions)
	return &QuizSet{name: name, questions: qs}
}

func (s *QuizSet) Name() string { return s.name }

func (s *QuizSet) Len() int { return len(s.questions) }

// Question returns the question at 0-based index i.
func (s *QuizSet) Question(i int) (QuestionRecord, bool) {
	if i < 0 || i >= len(s.questions) {
		return QuestionRecord{}, false
	}
	return s.questions[i], true
}

// Questions returns a copy of the questions in order.
func (s *QuizSet) Questions() []QuestionRecord {
	out := make([]QuestionRecord, len(s.questions))
	copy(out, s.questions)
	return out
}

// Phase is the coarse state of a quiz attempt.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseInProgress
	PhaseFinished
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseInProgress:
		return "in_progress"
	case PhaseFinished:
		return "finished"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Phase) UnmarshalText(b []byte) error {
	switch string(b) {
	case "idle":
		*p = PhaseIdle
	case "in_progress":
		*p = PhaseInProgress
	case "finished":
		*p = PhaseFinished
	default:
		return fmt.Errorf("unknown phase %q", b)
	}
	return nil
}
