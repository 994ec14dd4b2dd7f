package server

import (
	"encoding/json"
	"net/http"

	openapi "github.com/swaggest/openapi-go"
	"github.com/swaggest/openapi-go/openapi3"

	"github.com/playperu/quizdesk/internal/handler/health"
	"github.com/playperu/quizdesk/internal/quiz"
)

// ErrorResponse is returned for all error responses. Code is set for
// rejected session intents.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func newOpenAPISpec() *openapi3.Spec {
	r := openapi3.NewReflector()
	r.Spec.Info.Title = "Quiz Desk API"
	r.Spec.Info.Version = "0.1.0"
	r.Spec.Info.WithDescription("Multiple-choice quiz runner. Every browser gets its own workspace (quiz_workspace cookie) holding its imported question sets and quiz session.")

	// GET /healthz
	getHealthz, _ := r.NewOperationContext(http.MethodGet, "/healthz")
	getHealthz.SetSummary("Health check")
	getHealthz.AddRespStructure(health.Response{}, openapi.WithHTTPStatus(http.StatusOK))
	getHealthz.AddRespStructure(health.Response{}, openapi.WithHTTPStatus(http.StatusServiceUnavailable))
	_ = r.AddOperation(getHealthz)

	// GET /api/sets
	listSets, _ := r.NewOperationContext(http.MethodGet, "/api/sets")
	listSets.SetSummary("List question sets")
	listSets.SetDescription("Imported question sets in import order, with question counts.")
	listSets.AddRespStructure(SetsResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(listSets)

	// POST /api/sets/import
	importSets, _ := r.NewOperationContext(http.MethodPost, "/api/sets/import")
	importSets.SetSummary("Import question sets")
	importSets.SetDescription("Upload one or more spreadsheets. Each file is validated on its own; a rejected file does not block the others. Re-importing a name replaces that set.")
	importSets.AddReqStructure(importForm{})
	importSets.AddRespStructure(ImportResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	importSets.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	importSets.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusRequestEntityTooLarge))
	_ = r.AddOperation(importSets)

	// GET /api/session/state
	getState, _ := r.NewOperationContext(http.MethodGet, "/api/session/state")
	getState.SetSummary("Session state")
	getState.AddRespStructure(StateResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(getState)

	// GET /api/session/question
	getQuestion, _ := r.NewOperationContext(http.MethodGet, "/api/session/question")
	getQuestion.SetSummary("Current question")
	getQuestion.SetDescription("The question under the cursor, or null before the attempt starts.")
	getQuestion.AddRespStructure(QuestionResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(getQuestion)

	// GET /api/session/results
	getResults, _ := r.NewOperationContext(http.MethodGet, "/api/session/results")
	getResults.SetSummary("Results")
	getResults.SetDescription("Score and missed questions. Only available after finish.")
	getResults.AddRespStructure(quiz.Results{}, openapi.WithHTTPStatus(http.StatusOK))
	getResults.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	_ = r.AddOperation(getResults)

	// GET /api/session/events
	getEvents, _ := r.NewOperationContext(http.MethodGet, "/api/session/events")
	getEvents.SetSummary("SSE event stream")
	getEvents.SetDescription("Server-Sent Events: a state snapshot after every intent and once per tick while the attempt runs; a sets event after imports.")
	getEvents.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK),
		openapi.WithContentType("text/event-stream"))
	_ = r.AddOperation(getEvents)

	// GET /api/session/ws
	getWS, _ := r.NewOperationContext(http.MethodGet, "/api/session/ws")
	getWS.SetSummary("WebSocket intents")
	getWS.SetDescription("Send Intent JSON messages; every message is answered with a WSMessage.")
	getWS.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusSwitchingProtocols),
		openapi.WithContentType("text/plain"))
	_ = r.AddOperation(getWS)

	// POST /api/session/select
	postSelect, _ := r.NewOperationContext(http.MethodPost, "/api/session/select")
	postSelect.SetSummary("Select set")
	postSelect.SetDescription("Makes a set active and discards any progress on the previous one.")
	postSelect.AddReqStructure(SelectRequest{})
	postSelect.AddRespStructure(StateResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postSelect.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	postSelect.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	_ = r.AddOperation(postSelect)

	// POST /api/session/answer
	postAnswer, _ := r.NewOperationContext(http.MethodPost, "/api/session/answer")
	postAnswer.SetSummary("Submit answer")
	postAnswer.SetDescription("Records option 1-4 for the current question. Answering again overwrites.")
	postAnswer.AddReqStructure(AnswerRequest{})
	postAnswer.AddRespStructure(AnswerResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postAnswer.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	postAnswer.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	_ = r.AddOperation(postAnswer)

	for _, op := range []struct{ path, summary, desc string }{
		{"/api/session/start", "Start", "Starts the timer at question 1. Resuming after finish keeps recorded answers."},
		{"/api/session/next", "Next question", "No-op at the last question."},
		{"/api/session/previous", "Previous question", "No-op at the first question. Also allowed while reviewing after finish."},
		{"/api/session/finish", "Finish", "Ends the attempt and freezes the timer."},
		{"/api/session/restart", "Restart", "Clears answers and timer for the active set."},
		{"/api/session/home", "Home", "Leaves the active set."},
	} {
		oc, _ := r.NewOperationContext(http.MethodPost, op.path)
		oc.SetSummary(op.summary)
		oc.SetDescription(op.desc)
		oc.AddRespStructure(StateResponse{}, openapi.WithHTTPStatus(http.StatusOK))
		oc.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
		_ = r.AddOperation(oc)
	}

	return r.Spec
}

func handleOpenAPI() http.HandlerFunc {
	spec := newOpenAPISpec()
	data, _ := json.MarshalIndent(spec, "", "  ")

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}
