package transcript

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"chess5d/internal/bootstrap"
	"chess5d/internal/domain/transcript"
	apperrors "chess5d/internal/errors"
	transcriptuc "chess5d/internal/usecase/transcript"
)

type memStore struct {
	records map[string]transcript.Transcript
}

func (m *memStore) PutTranscript(_ context.Context, record transcript.Transcript) error {
	m.records[record.ID] = record
	return nil
}

func (m *memStore) GetTranscript(_ context.Context, id string) (transcript.Transcript, error) {
	record, ok := m.records[id]
	if !ok {
		return transcript.Transcript{}, apperrors.ErrTranscriptNotFound
	}
	return record, nil
}

func (m *memStore) ListTranscripts(_ context.Context, _ int) ([]transcript.Transcript, error) {
	out := make([]transcript.Transcript, 0, len(m.records))
	for _, r := range m.records {
		out = append(out, r)
	}
	return out, nil
}

func (m *memStore) DeleteTranscript(_ context.Context, id string) error {
	if _, ok := m.records[id]; !ok {
		return apperrors.ErrTranscriptNotFound
	}
	delete(m.records, id)
	return nil
}

type memCache struct {
	views map[string]*transcript.ReplayView
}

func (m *memCache) SaveReplay(_ context.Context, id string, view *transcript.ReplayView) error {
	m.views[id] = view
	return nil
}

func (m *memCache) LoadReplay(_ context.Context, id string) (*transcript.ReplayView, error) {
	view, ok := m.views[id]
	if !ok {
		return nil, apperrors.ErrCacheMiss
	}
	return view, nil
}

func (m *memCache) DropReplay(_ context.Context, id string) error {
	delete(m.views, id)
	return nil
}

type envelope struct {
	Status int             `json:"Status"`
	Body   json.RawMessage `json:"Body"`
}

func newRouter(t *testing.T) http.Handler {
	t.Helper()
	log := zap.NewNop().Sugar()
	store := &memStore{records: map[string]transcript.Transcript{}}
	cache := &memCache{views: map[string]*transcript.ReplayView{}}
	uc := transcriptuc.NewTranscriptUseCase(store, cache, log)
	h := NewTranscriptHandler(bootstrap.Config{ReplayIntervalMs: 1}, log, uc)
	r := chi.NewRouter()
	h.Routes(r)
	return r
}

func do(t *testing.T, h http.Handler, method, path string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env envelope
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("%s %s: bad json %q: %v", method, path, rec.Body.String(), err)
		}
	}
	return rec, env
}

func create(t *testing.T, h http.Handler, text string) string {
	t.Helper()
	rec, env := do(t, h, http.MethodPost, "/transcripts", transcript.CreateTranscriptRequest{Title: "test", Text: text})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", rec.Code, rec.Body.String())
	}
	var resp transcript.TranscriptCreateResponse
	if err := json.Unmarshal(env.Body, &resp); err != nil {
		t.Fatalf("decode create response: %v", err)
	}
	if resp.ID == "" || resp.Replay == nil {
		t.Fatalf("create response incomplete: %+v", resp)
	}
	return resp.ID
}

func TestHandleParse(t *testing.T) {
	h := newRouter(t)

	rec, env := do(t, h, http.MethodPost, "/parse", transcript.ParseRequest{Text: "1. c4 .. e6"})
	if rec.Code != http.StatusOK {
		t.Fatalf("parse status = %d", rec.Code)
	}
	var view transcript.ReplayView
	if err := json.Unmarshal(env.Body, &view); err != nil {
		t.Fatalf("decode view: %v", err)
	}
	if len(view.States) != 3 || view.Failed {
		t.Fatalf("parse view = %d states, failed %v", len(view.States), view.Failed)
	}

	rec, _ = do(t, h, http.MethodPost, "/parse", transcript.ParseRequest{Text: "   "})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("empty transcript status = %d, want 400", rec.Code)
	}

	req := httptest.NewRequest(http.MethodPost, "/parse", strings.NewReader("{"))
	raw := httptest.NewRecorder()
	h.ServeHTTP(raw, req)
	if raw.Code != http.StatusBadRequest {
		t.Fatalf("malformed json status = %d, want 400", raw.Code)
	}
}

func TestTranscriptLifecycle(t *testing.T) {
	h := newRouter(t)
	id := create(t, h, "1. e4 .. e5 2. Nf3")

	rec, env := do(t, h, http.MethodGet, "/transcripts/"+id, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d", rec.Code)
	}
	var record transcript.Transcript
	if err := json.Unmarshal(env.Body, &record); err != nil {
		t.Fatalf("decode record: %v", err)
	}
	if record.Title != "test" || record.Failed {
		t.Fatalf("record = %+v", record)
	}

	rec, env = do(t, h, http.MethodGet, "/transcripts/"+id+"/states/1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("state status = %d", rec.Code)
	}
	var state transcript.StateView
	if err := json.Unmarshal(env.Body, &state); err != nil {
		t.Fatalf("decode state: %v", err)
	}
	if state.Label != "1W" {
		t.Fatalf("state 1 label = %q, want 1W", state.Label)
	}

	if rec, _ = do(t, h, http.MethodGet, "/transcripts/"+id+"/states/99", nil); rec.Code != http.StatusNotFound {
		t.Fatalf("out of range state status = %d, want 404", rec.Code)
	}
	if rec, _ = do(t, h, http.MethodGet, "/transcripts/"+id+"/states/x", nil); rec.Code != http.StatusBadRequest {
		t.Fatalf("bad index status = %d, want 400", rec.Code)
	}

	rec, env = do(t, h, http.MethodGet, "/transcripts?page=1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}
	var list transcript.TranscriptListResponse
	if err := json.Unmarshal(env.Body, &list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(list.Transcripts) != 1 || list.PageNum != 1 {
		t.Fatalf("list = %+v", list)
	}
	if rec, _ = do(t, h, http.MethodGet, "/transcripts?page=0", nil); rec.Code != http.StatusBadRequest {
		t.Fatalf("page=0 status = %d, want 400", rec.Code)
	}

	if rec, _ = do(t, h, http.MethodDelete, "/transcripts/"+id, nil); rec.Code != http.StatusOK {
		t.Fatalf("delete status = %d", rec.Code)
	}
	if rec, _ = do(t, h, http.MethodGet, "/transcripts/"+id, nil); rec.Code != http.StatusNotFound {
		t.Fatalf("get after delete status = %d, want 404", rec.Code)
	}
	if rec, _ = do(t, h, http.MethodDelete, "/transcripts/"+id, nil); rec.Code != http.StatusNotFound {
		t.Fatalf("second delete status = %d, want 404", rec.Code)
	}
}

func TestHandlePDF(t *testing.T) {
	h := newRouter(t)
	id := create(t, h, "1. e4 .. e5 2. Qz9")

	rec, _ := do(t, h, http.MethodGet, "/transcripts/"+id+"/pdf", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("pdf status = %d, body %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Fatalf("content type = %q", ct)
	}
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")) {
		t.Fatalf("body is not a PDF")
	}

	if rec, _ = do(t, h, http.MethodGet, "/transcripts/missing/pdf", nil); rec.Code != http.StatusNotFound {
		t.Fatalf("missing pdf status = %d, want 404", rec.Code)
	}
}

func TestHandleReplay(t *testing.T) {
	h := newRouter(t)
	id := create(t, h, "1. d4 .. d5")

	srv := httptest.NewServer(h)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/transcripts/" + id + "/replay"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	var labels []string
	for i := 0; i < 3; i++ {
		var state transcript.StateView
		if err = conn.ReadJSON(&state); err != nil {
			t.Fatalf("read state %d: %v", i, err)
		}
		labels = append(labels, state.Label)
	}
	if strings.Join(labels, ",") != "start,1W,1B" {
		t.Fatalf("streamed labels = %v", labels)
	}

	var summary transcript.ReplaySummary
	if err = conn.ReadJSON(&summary); err != nil {
		t.Fatalf("read summary: %v", err)
	}
	if !summary.Done || summary.StateCount != 3 || summary.Failed {
		t.Fatalf("summary = %+v", summary)
	}
}

func TestHandleReplayMissing(t *testing.T) {
	h := newRouter(t)
	srv := httptest.NewServer(h)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/transcripts/missing/replay"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err == nil {
		t.Fatalf("dial to a missing transcript succeeded")
	}
	if resp == nil || resp.StatusCode != http.StatusNotFound {
		t.Fatalf("handshake response = %v, want 404", resp)
	}
}
