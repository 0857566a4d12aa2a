package api

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/lsatarcade/internal/drill"
	"github.com/abhisek/lsatarcade/internal/llm"
	"github.com/abhisek/lsatarcade/internal/logging"
	"github.com/abhisek/lsatarcade/internal/tutor"
)

type stubTutor struct {
	got []tutor.Message
}

func (s *stubTutor) Reply(_ context.Context, history []tutor.Message) string {
	s.got = history
	return "hint: find the gap"
}

type panicDrills struct{}

func (panicDrills) Generate(context.Context, string) drill.Drill { panic("boom") }

func quietLogger() *slog.Logger {
	return logging.Discard()
}

func newTestRouter(t *testing.T, drills DrillGenerator, tut Tutor) http.Handler {
	t.Helper()
	if drills == nil {
		drills = drill.NewService(nil, drill.DefaultConfig())
	}
	if tut == nil {
		tut = tutor.NewService(nil, tutor.DefaultConfig())
	}
	return NewRouter(DefaultConfig(), Deps{
		Drills: drills,
		Tutor:  tut,
		Mode:   llm.ModeOffline,
		Logger: quietLogger(),
	})
}

func post(t *testing.T, h http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestLSAT_DrillIsDefaultMode(t *testing.T) {
	h := newTestRouter(t, nil, nil)

	for _, body := range []string{``, `{}`, `{"mode":"drill","topic":"flaw"}`, `{"mode":"DRILL"}`} {
		rec := post(t, h, "/api/lsat", body)
		require.Equal(t, http.StatusOK, rec.Code, "body %q", body)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

		var d drill.Drill
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &d))
		assert.NoError(t, d.Validate())
	}
}

func TestLSAT_LiveDrill(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Text: `{"question":"Which weakens?","choices":{"A":"a","B":"b","C":"c","D":"d","E":"e"},"answer":"2"}`,
	})
	svc := drill.NewService(mock, drill.DefaultConfig(), drill.WithLogger(quietLogger()))
	h := newTestRouter(t, svc, nil)

	rec := post(t, h, "/api/lsat", `{"topic":"weaken"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var d drill.Drill
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &d))
	assert.Equal(t, "Which weakens?", d.Question)
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, d.Choices)
	assert.Equal(t, "B", d.Answer)
	assert.NotEmpty(t, d.Explanation)

	req, _ := mock.LastCall()
	assert.Contains(t, req.Messages[0].Content, "weaken")
}

func TestLSAT_TutorMode(t *testing.T) {
	tut := &stubTutor{}
	h := newTestRouter(t, nil, tut)

	rec := post(t, h, "/api/lsat", `{"mode":"tutor","messages":[{"role":"user","content":"help"}]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"reply":"hint: find the gap"}`, rec.Body.String())
	require.Len(t, tut.got, 1)
	assert.Equal(t, "help", tut.got[0].Content)
}

func TestLSAT_OfflineTutorMode(t *testing.T) {
	h := newTestRouter(t, nil, nil)

	rec := post(t, h, "/api/lsat", `{"mode":"tutor","messages":[{"role":"user","content":"Is B a sampling flaw?"}]}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp TutorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, strings.HasPrefix(resp.Reply, "Mock tutor:"))
	assert.Contains(t, resp.Reply, "“Is B a sampling flaw?”")
}

func TestLSAT_InvalidMode(t *testing.T) {
	rec := post(t, newTestRouter(t, nil, nil), "/api/lsat", `{"mode":"essay"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"invalid mode"}`, rec.Body.String())
}

func TestLSAT_BadJSON(t *testing.T) {
	rec := post(t, newTestRouter(t, nil, nil), "/api/lsat", `{"mode":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var e errResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &e))
	assert.Contains(t, e.Error, "invalid JSON body")
}

func TestLSAT_BodyTooLarge(t *testing.T) {
	h := NewRouter(Config{MaxBodyBytes: 64, CORSOrigins: []string{"*"}}, Deps{
		Drills: drill.NewService(nil, drill.DefaultConfig()),
		Tutor:  tutor.NewService(nil, tutor.DefaultConfig()),
		Logger: quietLogger(),
	})
	body := `{"topic":"` + strings.Repeat("x", 200) + `"}`
	rec := post(t, h, "/api/lsat", body)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestTutorEndpoint(t *testing.T) {
	tut := &stubTutor{}
	rec := post(t, newTestRouter(t, nil, tut), "/api/tutor", `{"messages":[{"role":"assistant","content":"hi"},{"role":"user","content":"why C?"}]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"reply":"hint: find the gap"}`, rec.Body.String())
	assert.Len(t, tut.got, 2)
}

func TestHealthProbes(t *testing.T) {
	h := newTestRouter(t, nil, nil)
	for _, path := range []string{"/healthz", "/readyz"} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		require.Equal(t, http.StatusOK, rec.Code, path)
		assert.JSONEq(t, `{"status":"ok","mode":"offline"}`, rec.Body.String())
	}
}

func TestPanicBecomesJSON500(t *testing.T) {
	rec := post(t, newTestRouter(t, panicDrills{}, nil), "/api/lsat", `{}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"internal error"}`, rec.Body.String())
}

func TestRequestLogging(t *testing.T) {
	var buf bytes.Buffer
	h := NewRouter(DefaultConfig(), Deps{
		Drills: drill.NewService(nil, drill.DefaultConfig()),
		Tutor:  tutor.NewService(nil, tutor.DefaultConfig()),
		Mode:   llm.ModeOffline,
		Logger: slog.New(slog.NewJSONHandler(&buf, nil)),
	})

	post(t, h, "/api/lsat", `{"mode":"nope"}`)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &rec))
	assert.Equal(t, "http_request", rec["msg"])
	assert.Equal(t, "/api/lsat", rec["path"])
	assert.EqualValues(t, 400, rec["status"])
	assert.NotEmpty(t, rec["request_id"])
}

func TestCORSPreflight(t *testing.T) {
	h := NewRouter(Config{CORSOrigins: []string{"http://localhost:19006"}}, Deps{
		Drills: drill.NewService(nil, drill.DefaultConfig()),
		Tutor:  tutor.NewService(nil, tutor.DefaultConfig()),
		Logger: quietLogger(),
	})

	req := httptest.NewRequest(http.MethodOptions, "/api/lsat", nil)
	req.Header.Set("Origin", "http://localhost:19006")
	req.Header.Set("Access-Control-Request-Method", "POST")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "http://localhost:19006", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("LSAT_HTTP_ADDR", "127.0.0.1:9090")
	t.Setenv("LSAT_CORS_ORIGINS", " http://a.test , ,http://b.test")

	cfg := ConfigFromEnv()
	assert.Equal(t, "127.0.0.1:9090", cfg.Addr)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
}

func TestServeShutsDownOnCancel(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- serveListener(ctx, ln, newTestRouter(t, nil, nil), quietLogger()) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
