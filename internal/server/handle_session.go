package server

import (
	"net/http"

	"github.com/playperu/quizdesk/internal/quiz"
)

type SelectRequest struct {
	Name string `json:"name"`
}

type AnswerRequest struct {
	Option int `json:"option"`
}

// StateResponse is returned by every session intent.
type StateResponse struct {
	State quiz.Snapshot `json:"state"`
}

type AnswerResponse struct {
	IsCorrect     bool          `json:"isCorrect"`
	CorrectOption int           `json:"correctOption"`
	State         quiz.Snapshot `json:"state"`
}

type QuestionResponse struct {
	Question *quiz.CurrentQuestion `json:"question"`
}

// handleIntent runs one fixed intent against the caller's session.
func handleIntent(broker *Broker, intentType string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		in := Intent{Type: intentType}

		switch intentType {
		case IntentSelect:
			var req SelectRequest
			if err := readJSON(r, &req); err != nil {
				writeError(w, http.StatusBadRequest, "invalid request body")
				return
			}
			if req.Name == "" {
				writeError(w, http.StatusBadRequest, "name is required")
				return
			}
			in.Name = req.Name
		case IntentAnswer:
			var req AnswerRequest
			if err := readJSON(r, &req); err != nil {
				writeError(w, http.StatusBadRequest, "invalid request body")
				return
			}
			in.Option = req.Option
		}

		ws := workspaceFrom(r)
		fb, snap, err := runIntent(ws, in)
		if err != nil {
			writeSessionError(w, err)
			return
		}

		broker.Publish(ws.ID, Event{Type: EventState, State: &snap})

		if fb != nil {
			writeJSON(w, http.StatusOK, AnswerResponse{
				IsCorrect:     fb.IsCorrect,
				CorrectOption: fb.CorrectOption,
				State:         snap,
			})
			return
		}
		writeJSON(w, http.StatusOK, StateResponse{State: snap})
	}
}

func handleState() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, StateResponse{State: workspaceFrom(r).Snapshot()})
	}
}

func handleCurrentQuestion() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var resp QuestionResponse
		workspaceFrom(r).Do(func(_ *quiz.Catalog, s *quiz.Session) error {
			if cq, ok := s.CurrentQuestion(); ok {
				resp.Question = &cq
			}
			return nil
		})
		writeJSON(w, http.StatusOK, resp)
	}
}

func handleResults() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var res quiz.Results
		err := workspaceFrom(r).Do(func(_ *quiz.Catalog, s *quiz.Session) error {
			var err error
			res, err = s.Results()
			return err
		})
		if err != nil {
			writeSessionError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, res)
	}
}
