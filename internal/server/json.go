package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/playperu/quizdesk/internal/quiz"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func readJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}

// writeSessionError answers a rejected intent. State is left unchanged by
// the session, so the client only needs the reason.
func writeSessionError(w http.ResponseWriter, err error) {
	status, code := classify(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "internal error"
	}
	writeJSON(w, status, ErrorResponse{Error: msg, Code: code})
}

func classify(err error) (status int, code string) {
	switch {
	case errors.Is(err, quiz.ErrUnknownSet):
		return http.StatusNotFound, "unknown_set"
	case errors.Is(err, quiz.ErrInvalidOption):
		return http.StatusBadRequest, "invalid_option"
	case errors.Is(err, errUnknownIntent):
		return http.StatusBadRequest, "unknown_intent"
	case errors.Is(err, quiz.ErrNotInProgress):
		return http.StatusConflict, "not_in_progress"
	case errors.Is(err, quiz.ErrAlreadyStarted):
		return http.StatusConflict, "already_started"
	case errors.Is(err, quiz.ErrNoActiveSet):
		return http.StatusConflict, "no_active_set"
	case errors.Is(err, quiz.ErrNotFinished):
		return http.StatusConflict, "not_finished"
	case errors.Is(err, quiz.ErrNoQuestion):
		return http.StatusConflict, "no_question"
	default:
		return http.StatusInternalServerError, "internal"
	}
}
