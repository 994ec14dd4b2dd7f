package server

import (
	"errors"
	"fmt"

	"github.com/playperu/quizdesk/internal/quiz"
	"github.com/playperu/quizdesk/internal/workspace"
)

// Intent is one user action forwarded by the browser.
type Intent struct {
	Type   string `json:"type" enum:"select,start,answer,next,previous,finish,restart,home"`
	Name   string `json:"name,omitempty"`
	Option int    `json:"option,omitempty"`
}

const (
	IntentSelect   = "select"
	IntentStart    = "start"
	IntentAnswer   = "answer"
	IntentNext     = "next"
	IntentPrevious = "previous"
	IntentFinish   = "finish"
	IntentRestart  = "restart"
	IntentHome     = "home"
)

var errUnknownIntent = errors.New("unknown intent")

// applyIntent maps one intent to one session transition. Feedback is only
// set for answers.
func applyIntent(s *quiz.Session, in Intent) (*quiz.Feedback, error) {
	switch in.Type {
	case IntentSelect:
		return nil, s.SelectSet(in.Name)
	case IntentStart:
		return nil, s.Start()
	case IntentAnswer:
		fb, err := s.Answer(in.Option)
		if err != nil {
			return nil, err
		}
		return &fb, nil
	case IntentNext:
		return nil, s.Next()
	case IntentPrevious:
		return nil, s.Previous()
	case IntentFinish:
		return nil, s.Finish()
	case IntentRestart:
		return nil, s.Restart()
	case IntentHome:
		s.Home()
		return nil, nil
	default:
		return nil, fmt.Errorf("%w %q", errUnknownIntent, in.Type)
	}
}

// runIntent applies in under the workspace lock and returns the resulting
// snapshot.
func runIntent(ws *workspace.Workspace, in Intent) (*quiz.Feedback, quiz.Snapshot, error) {
	var (
		fb   *quiz.Feedback
		snap quiz.Snapshot
	)
	err := ws.Do(func(_ *quiz.Catalog, s *quiz.Session) error {
		var err error
		if fb, err = applyIntent(s, in); err != nil {
			return err
		}
		snap = s.Snapshot()
		return nil
	})
	return fb, snap, err
}
