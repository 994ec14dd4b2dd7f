package quiz

import "time"

// Rating buckets a percentage the way the results page praises it.
type Rating string

const (
	RatingExcellent      Rating = "excellent"
	RatingGood           Rating = "good"
	RatingKeepPracticing Rating = "keep_practicing"
)

func RatingFor(percent float64) Rating {
	switch {
	case percent >= 80:
		return RatingExcellent
	case percent >= 60:
		return RatingGood
	default:
		return RatingKeepPracticing
	}
}

// WrongAnswer describes one missed question. Selected is 0 when the
// question was never answered.
type WrongAnswer struct {
	Index         int                 `json:"index"`
	Text          string              `json:"text"`
	Options       [OptionCount]string `json:"options"`
	Selected      int                 `json:"selected"`
	SelectedText  string              `json:"selectedText"`
	Unanswered    bool                `json:"unanswered"`
	CorrectOption int                 `json:"correctOption"`
	CorrectText   string              `json:"correctText"`
}

type Results struct {
	SetName        string        `json:"setName"`
	Total          int           `json:"total"`
	CorrectCount   int           `json:"correctCount"`
	Percent        float64       `json:"percent"`
	ElapsedSeconds int           `json:"elapsedSeconds"`
	Rating         Rating        `json:"rating"`
	Wrong          []WrongAnswer `json:"wrong"`
}

// Results scores a finished attempt. Unanswered questions count as wrong.
func (s *Session) Results() (Results, error) {
	if s.phase != PhaseFinished {
		return Results{}, ErrNotFinished
	}
	return score(s.set, s.answers, s.correctness, s.elapsed), nil
}

func score(set *QuizSet, answers map[int]int, correctness map[int]bool, elapsed time.Duration) Results {
	r := Results{
		SetName:        set.Name(),
		Total:          set.Len(),
		ElapsedSeconds: int(elapsed / time.Second),
		Wrong:          []WrongAnswer{},
	}

	for i, q := range set.questions {
		if correctness[i] {
			r.CorrectCount++
			continue
		}
		w := WrongAnswer{
			Index:         i,
			Text:          q.Text,
			Options:       q.Options,
			CorrectOption: q.CorrectOption,
			CorrectText:   q.CorrectText(),
		}
		if sel, ok := answers[i]; ok {
			w.Selected = sel
			w.SelectedText, _ = q.Option(sel)
		} else {
			w.Unanswered = true
		}
		r.Wrong = append(r.Wrong, w)
	}

	if r.Total > 0 {
		r.Percent = 100 * float64(r.CorrectCount) / float64(r.Total)
	}
	r.Rating = RatingFor(r.Percent)
	return r
}
