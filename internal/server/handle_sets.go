package server

import (
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/playperu/quizdesk/internal/quiz"
	"github.com/playperu/quizdesk/internal/sheet"
)

type SetsResponse struct {
	Sets []quiz.SetSummary `json:"sets"`
}

// ImportResult reports the outcome for one uploaded file.
type ImportResult struct {
	File           string   `json:"file"`
	Name           string   `json:"name,omitempty"`
	Status         string   `json:"status" enum:"ok,error"`
	QuestionCount  int      `json:"questionCount,omitempty"`
	Error          string   `json:"error,omitempty"`
	MissingColumns []string `json:"missingColumns,omitempty"`
	Row            int      `json:"row,omitempty"`
	Column         string   `json:"column,omitempty"`
}

type ImportResponse struct {
	Results []ImportResult    `json:"results"`
	Sets    []quiz.SetSummary `json:"sets"`
}

// importForm documents the multipart body for the OpenAPI reflector.
type importForm struct {
	Files []*multipart.FileHeader `formData:"files" description:"Spreadsheets (.xlsx or .csv)."`
	Names []string                `formData:"names" description:"Optional set names, in the same order as files."`
}

func handleListSets() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var resp SetsResponse
		workspaceFrom(r).Do(func(c *quiz.Catalog, _ *quiz.Session) error {
			resp.Sets = c.Summaries()
			return nil
		})
		writeJSON(w, http.StatusOK, resp)
	}
}

// handleImport parses every uploaded file independently. A bad file is
// reported in its own result and never blocks the others.
func handleImport(logger *slog.Logger, broker *Broker, maxBytes int64, workers int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
		if err := r.ParseMultipartForm(maxBytes); err != nil {
			var tooBig *http.MaxBytesError
			if errors.As(err, &tooBig) {
				writeError(w, http.StatusRequestEntityTooLarge, "upload too large")
				return
			}
			writeError(w, http.StatusBadRequest, "invalid multipart body")
			return
		}
		defer r.MultipartForm.RemoveAll()

		files := r.MultipartForm.File["files"]
		if len(files) == 0 {
			writeError(w, http.StatusBadRequest, "at least one file is required")
			return
		}
		names := r.MultipartForm.Value["names"]

		sets := make([]*quiz.QuizSet, len(files))
		results := make([]ImportResult, len(files))

		var g errgroup.Group
		if workers > 0 {
			g.SetLimit(workers)
		}
		for i, fh := range files {
			proposed := ""
			if i < len(names) {
				proposed = names[i]
			}
			g.Go(func() error {
				sets[i], results[i] = importFile(fh, proposed)
				return nil
			})
		}
		g.Wait()

		ws := workspaceFrom(r)
		var summaries []quiz.SetSummary
		ws.Do(func(c *quiz.Catalog, _ *quiz.Session) error {
			for _, set := range sets {
				if set != nil {
					c.AddOrReplace(set)
				}
			}
			summaries = c.Summaries()
			return nil
		})

		for _, res := range results {
			if res.Status == "ok" {
				logger.LogAttrs(r.Context(), slog.LevelInfo, "question set imported",
					slog.String("workspace", ws.ID),
					slog.String("file", res.File),
					slog.String("name", res.Name),
					slog.Int("questions", res.QuestionCount),
				)
				continue
			}
			logger.LogAttrs(r.Context(), slog.LevelWarn, "question set rejected",
				slog.String("workspace", ws.ID),
				slog.String("file", res.File),
				slog.String("error", res.Error),
			)
		}

		broker.Publish(ws.ID, Event{Type: EventSets, Sets: summaries})
		writeJSON(w, http.StatusOK, ImportResponse{Results: results, Sets: summaries})
	}
}

func importFile(fh *multipart.FileHeader, proposedName string) (*quiz.QuizSet, ImportResult) {
	res := ImportResult{File: fh.Filename, Status: "error"}

	f, err := fh.Open()
	if err != nil {
		res.Error = "cannot read upload"
		return nil, res
	}
	defer f.Close()

	set, err := sheet.Import(f, fh.Filename, proposedName)
	if err != nil {
		res.Error = err.Error()
		var missing *quiz.MissingColumnsError
		if errors.As(err, &missing) {
			res.MissingColumns = missing.Columns
		}
		var malformed *quiz.MalformedRowError
		if errors.As(err, &malformed) {
			res.Row = malformed.Row
			res.Column = malformed.Column
		}
		return nil, res
	}

	res.Status = "ok"
	res.Name = set.Name()
	res.QuestionCount = set.Len()
	return set, res
}
