package quiz

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrMissingColumns = errors.New("missing required columns")
	ErrMalformedRow   = errors.New("malformed row")
	ErrUnknownSet     = errors.New("unknown question set")
	ErrInvalidOption  = errors.New("option must be between 1 and 4")
	ErrNotFinished    = errors.New("quiz is not finished")
	ErrNotInProgress  = errors.New("quiz is not in progress")
	ErrAlreadyStarted = errors.New("quiz already in progress")
	ErrNoActiveSet    = errors.New("no question set selected")
	ErrNoQuestion     = errors.New("question set has no questions")
)

// MissingColumnsError lists every required column absent from a sheet header.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMissingColumns, strings.Join(e.Columns, ", "))
}

func (e *MissingColumnsError) Is(target error) bool { return target == ErrMissingColumns }

// MalformedRowError identifies the sheet row (1-based, header is row 1) that
// could not be turned into a question.
type MalformedRowError struct {
	Row    int
	Column string
	Reason string
}

func (e *MalformedRowError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("%s %d: %s", ErrMalformedRow, e.Row, e.Reason)
	}
	return fmt.Sprintf("%s %d, column %q: %s", ErrMalformedRow, e.Row, e.Column, e.Reason)
}

func (e *MalformedRowError) Is(target error) bool { return target == ErrMalformedRow }

type UnknownSetError struct {
	Name string
}

func (e *UnknownSetError) Error() string {
	return fmt.Sprintf("%s %q", ErrUnknownSet, e.Name)
}

func (e *UnknownSetError) Is(target error) bool { return target == ErrUnknownSet }
