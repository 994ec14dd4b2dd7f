package quiz

import (
	"time"
)

// Session tracks one user's attempt at one question set.
//
// Every method either applies fully or returns an error and leaves the
// session untouched. A Session is not safe for concurrent use; callers
// serialize intents.
type Session struct {
	catalog *Catalog
	now     func() time.Time

	setName string
	set     *QuizSet // captured at selection; re-imports apply on Restart

	phase       Phase
	index       int
	answers     map[int]int
	correctness map[int]bool
	startedAt   time.Time
	elapsed     time.Duration // frozen by Finish
}

type SessionOption func(*Session)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) SessionOption {
	return func(s *Session) { s.now = now }
}

func NewSession(catalog *Catalog, opts ...SessionOption) *Session {
	s := &Session{
		catalog:     catalog,
		now:         time.Now,
		answers:     make(map[int]int),
		correctness: make(map[int]bool),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Feedback is returned for every recorded answer.
type Feedback struct {
	IsCorrect     bool `json:"isCorrect"`
	CorrectOption int  `json:"correctOption"`
}

// SelectSet makes name the active set and discards all progress.
func (s *Session) SelectSet(name string) error {
	set, err := s.catalog.Get(name)
	if err != nil {
		return err
	}
	s.reset()
	s.setName = name
	s.set = set
	return nil
}

// Start begins (or resumes after Finish) the attempt at question 0.
// Answers recorded before a Finish are kept; Restart clears them.
func (s *Session) Start() error {
	if s.set == nil {
		return ErrNoActiveSet
	}
	if s.phase == PhaseInProgress {
		return ErrAlreadyStarted
	}
	s.startedAt = s.now()
	s.elapsed = 0
	s.phase = PhaseInProgress
	s.index = 0
	return nil
}

// Restart clears progress and timer for the active set, reloading it from
// the catalog.
func (s *Session) Restart() error {
	if s.set == nil {
		return ErrNoActiveSet
	}
	return s.SelectSet(s.setName)
}

// Home leaves the active set.
func (s *Session) Home() {
	s.reset()
}

func (s *Session) reset() {
	s.setName = ""
	s.set = nil
	s.phase = PhaseIdle
	s.index = 0
	s.answers = make(map[int]int)
	s.correctness = make(map[int]bool)
	s.startedAt = time.Time{}
	s.elapsed = 0
}

// Answer records option for the current question. Re-answering overwrites.
func (s *Session) Answer(option int) (Feedback, error) {
	if s.phase != PhaseInProgress {
		return Feedback{}, ErrNotInProgress
	}
	if !ValidOption(option) {
		return Feedback{}, ErrInvalidOption
	}
	q, ok := s.set.Question(s.index)
	if !ok {
		return Feedback{}, ErrNoQuestion
	}

	correct := option == q.CorrectOption
	s.answers[s.index] = option
	s.correctness[s.index] = correct

	return Feedback{IsCorrect: correct, CorrectOption: q.CorrectOption}, nil
}

// Next moves forward. At the last question it is a no-op.
func (s *Session) Next() error {
	if !s.navigable() {
		return ErrNotInProgress
	}
	if s.index < s.set.Len()-1 {
		s.index++
	}
	return nil
}

// Previous moves back. At the first question it is a no-op.
func (s *Session) Previous() error {
	if !s.navigable() {
		return ErrNotInProgress
	}
	if s.index > 0 {
		s.index--
	}
	return nil
}

// navigable reports whether the question cursor may move: during the
// attempt and while reviewing after Finish.
func (s *Session) navigable() bool {
	return s.set != nil && (s.phase == PhaseInProgress || s.phase == PhaseFinished)
}

// Finish ends the attempt and freezes the elapsed time.
func (s *Session) Finish() error {
	if s.phase != PhaseInProgress {
		return ErrNotInProgress
	}
	s.elapsed = s.now().Sub(s.startedAt)
	s.phase = PhaseFinished
	return nil
}

func (s *Session) Phase() Phase { return s.phase }

// ActiveSet returns the selected set name.
func (s *Session) ActiveSet() (string, bool) {
	return s.setName, s.set != nil
}

// Index returns the 0-based cursor into the active set.
func (s *Session) Index() int { return s.index }

// Answers returns a copy of the recorded option per question index.
func (s *Session) Answers() map[int]int {
	out := make(map[int]int, len(s.answers))
	for k, v := range s.answers {
		out[k] = v
	}
	return out
}

// Correctness returns a copy of the per-question correctness.
func (s *Session) Correctness() map[int]bool {
	out := make(map[int]bool, len(s.correctness))
	for k, v := range s.correctness {
		out[k] = v
	}
	return out
}

// Elapsed is live while in progress and frozen after Finish.
func (s *Session) Elapsed() time.Duration {
	switch s.phase {
	case PhaseInProgress:
		return s.now().Sub(s.startedAt)
	case PhaseFinished:
		return s.elapsed
	default:
		return 0
	}
}

// CurrentQuestion is the question under the cursor as the renderer shows it.
type CurrentQuestion struct {
	Index         int                 `json:"index"`
	Total         int                 `json:"total"`
	Text          string              `json:"text"`
	Options       [OptionCount]string `json:"options"`
	Selected      int                 `json:"selected,omitempty"`
	IsCorrect     *bool               `json:"isCorrect,omitempty"`
	CorrectOption int                 `json:"correctOption,omitempty"`
}

// CurrentQuestion returns false when there is no question to show: no set,
// not started, or an empty set.
func (s *Session) CurrentQuestion() (CurrentQuestion, bool) {
	if !s.navigable() {
		return CurrentQuestion{}, false
	}
	q, ok := s.set.Question(s.index)
	if !ok {
		return CurrentQuestion{}, false
	}
	cq := CurrentQuestion{
		Index:   s.index,
		Total:   s.set.Len(),
		Text:    q.Text,
		Options: q.Options,
	}
	if sel, ok := s.answers[s.index]; ok {
		correct := s.correctness[s.index]
		cq.Selected = sel
		cq.IsCorrect = &correct
		cq.CorrectOption = q.CorrectOption
	}
	return cq, true
}

// Snapshot is the observable session state handed to the renderer after
// every intent.
type Snapshot struct {
	ActiveSet      string           `json:"activeSet"`
	Phase          Phase            `json:"phase" enum:"idle,in_progress,finished"`
	Index          int              `json:"index"`
	Total          int              `json:"total"`
	Answered       int              `json:"answered"`
	StartedAt      *time.Time       `json:"startedAt"`
	ElapsedSeconds int              `json:"elapsedSeconds"`
	HasPrevious    bool             `json:"hasPrevious"`
	HasNext        bool             `json:"hasNext"`
	Question       *CurrentQuestion `json:"question"`
}

func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		ActiveSet:      s.setName,
		Phase:          s.phase,
		Index:          s.index,
		Answered:       len(s.answers),
		ElapsedSeconds: int(s.Elapsed() / time.Second),
	}
	if s.set != nil {
		snap.Total = s.set.Len()
	}
	if !s.startedAt.IsZero() {
		t := s.startedAt
		snap.StartedAt = &t
	}
	if cq, ok := s.CurrentQuestion(); ok {
		snap.Question = &cq
		snap.HasPrevious = s.index > 0
		snap.HasNext = s.index < snap.Total-1
	}
	return snap
}
