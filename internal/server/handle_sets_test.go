package server

import (
	"bytes"
	"net/http"
	"strings"
	"testing"

	"github.com/playperu/quizdesk/internal/sheet"
)

func TestImportBatchReportsEachFile(t *testing.T) {
	ts, _, _ := newTestServer(t, Options{ImportWorkers: 2})
	c := newClient(t)

	status, resp := importSets(t, c, ts.URL,
		upload{filename: "math.csv", data: csvFile("1,1+1?,1,2,3,4,2", "2,2+2?,2,3,4,5,3")},
		upload{filename: "broken.csv", data: []byte("STT,CÂU HỎI,ĐÁP ÁN 1\n1,q,a\n")},
		upload{filename: "typo.csv", data: csvFile("1,1+1?,1,2,3,4,two")},
		upload{filename: "notes.txt", data: []byte("hello")},
		upload{filename: "history.csv", name: "Lịch sử", data: csvFile("1,Năm 1945?,a,b,c,d,4")},
	)
	if status != http.StatusOK {
		t.Fatalf("status = %d", status)
	}
	if len(resp.Results) != 5 {
		t.Fatalf("results = %d, want 5", len(resp.Results))
	}

	ok := resp.Results[0]
	if ok.Status != "ok" || ok.Name != "math" || ok.QuestionCount != 2 {
		t.Errorf("math = %+v", ok)
	}

	missing := resp.Results[1]
	if missing.Status != "error" {
		t.Fatalf("broken = %+v", missing)
	}
	want := []string{sheet.ColumnOption2, sheet.ColumnOption3, sheet.ColumnOption4, sheet.ColumnCorrect}
	if strings.Join(missing.MissingColumns, "|") != strings.Join(want, "|") {
		t.Errorf("missing columns = %v, want %v", missing.MissingColumns, want)
	}

	malformed := resp.Results[2]
	if malformed.Status != "error" || malformed.Row != 2 || malformed.Column != sheet.ColumnCorrect {
		t.Errorf("typo = %+v", malformed)
	}

	if resp.Results[3].Status != "error" || resp.Results[3].Error == "" {
		t.Errorf("notes = %+v", resp.Results[3])
	}

	if resp.Results[4].Status != "ok" || resp.Results[4].Name != "Lịch sử" {
		t.Errorf("history = %+v", resp.Results[4])
	}

	if len(resp.Sets) != 2 || resp.Sets[0].Name != "math" || resp.Sets[1].Name != "Lịch sử" {
		t.Errorf("sets = %+v", resp.Sets)
	}
}

func TestImportReplacesSameName(t *testing.T) {
	ts, _, _ := newTestServer(t, Options{})
	c := newClient(t)

	importSets(t, c, ts.URL,
		upload{filename: "math.csv", data: csvFile("1,1+1?,1,2,3,4,2")},
		upload{filename: "art.csv", data: csvFile("1,Màu?,đỏ,xanh,vàng,tím,1")},
	)
	_, resp := importSets(t, c, ts.URL,
		upload{filename: "math.csv", data: csvFile("1,1+1?,1,2,3,4,2", "2,3+3?,5,6,7,8,2", "3,0+0?,0,1,2,3,1")},
	)

	if len(resp.Sets) != 2 {
		t.Fatalf("sets = %+v", resp.Sets)
	}
	if resp.Sets[0].Name != "math" || resp.Sets[0].QuestionCount != 3 {
		t.Errorf("replaced set = %+v", resp.Sets[0])
	}
}

func TestImportRequiresFiles(t *testing.T) {
	ts, _, _ := newTestServer(t, Options{})
	c := newClient(t)

	status, _ := importSets(t, c, ts.URL)
	if status != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", status, http.StatusBadRequest)
	}

	resp, err := c.Post(ts.URL+"/api/sets/import", "application/json", bytes.NewReader([]byte(`{}`)))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("non-multipart status = %d, want %d", resp.StatusCode, http.StatusBadRequest)
	}
}

func TestListSetsEmpty(t *testing.T) {
	ts, _, _ := newTestServer(t, Options{})
	c := newClient(t)

	resp, err := c.Get(ts.URL + "/api/sets")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()

	var buf bytes.Buffer
	buf.ReadFrom(resp.Body)
	if got := strings.TrimSpace(buf.String()); got != `{"sets":[]}` {
		t.Errorf("body = %s, want empty list", got)
	}
}
