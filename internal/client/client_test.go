package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/lsatarcade/internal/api"
	"github.com/abhisek/lsatarcade/internal/drill"
	"github.com/abhisek/lsatarcade/internal/llm"
	"github.com/abhisek/lsatarcade/internal/logging"
	"github.com/abhisek/lsatarcade/internal/tutor"
)

func quiet() Option {
	return WithLogger(logging.Discard())
}

func fixedMock() Option {
	return WithMock(func() drill.Drill {
		return drill.NewSeededMocker(3).Drill()
	})
}

func serve(t *testing.T, status int, body string, check func(*http.Request, map[string]any)) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var got map[string]any
		_ = json.NewDecoder(r.Body).Decode(&got)
		if check != nil {
			check(r, got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestGenerate_SendsDrillRequest(t *testing.T) {
	srv := serve(t, http.StatusOK,
		`{"question":"Q?","choices":["a","b","c","d","e"],"answer":"E","explanation":"why"}`,
		func(r *http.Request, body map[string]any) {
			assert.Equal(t, "/api/lsat", r.URL.Path)
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "drill", body["mode"])
			assert.Equal(t, "flaw", body["topic"])
		})

	d := New(srv.URL+"/", quiet()).Generate(context.Background(), "flaw")
	assert.Equal(t, "Q?", d.Question)
	assert.Equal(t, "E", d.Answer)
}

func TestGenerate_NormalizesMapChoices(t *testing.T) {
	srv := serve(t, http.StatusOK,
		`{"question":"Q?","choices":{"A":"one","B":"two","C":"three","D":"four","E":"five"},"answer":4}`, nil)

	d := New(srv.URL, quiet()).Generate(context.Background(), "")
	require.NoError(t, d.Validate())
	assert.Equal(t, []string{"one", "two", "three", "four", "five"}, d.Choices)
	assert.Equal(t, "D", d.Answer)
}

func TestGenerate_FallsBackToMock(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"server error", http.StatusInternalServerError, `{"error":"boom"}`},
		{"bad request", http.StatusBadRequest, `{"error":"invalid mode"}`},
		{"not json", http.StatusOK, `<html>gateway</html>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := serve(t, tt.status, tt.body, nil)
			d := New(srv.URL, quiet(), fixedMock()).Generate(context.Background(), "")
			require.NoError(t, d.Validate())
			assert.Contains(t, d.Question, "study method")
		})
	}
}

func TestGenerate_UnreachableServer(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	d := New(url, quiet()).Generate(context.Background(), "")
	assert.NoError(t, d.Validate())
}

func TestReply(t *testing.T) {
	srv := serve(t, http.StatusOK, `{"reply":"Name the assumption."}`,
		func(_ *http.Request, body map[string]any) {
			assert.Equal(t, "tutor", body["mode"])
			msgs, ok := body["messages"].([]any)
			require.True(t, ok)
			assert.Len(t, msgs, 1)
		})

	reply := New(srv.URL, quiet()).Reply(context.Background(), []tutor.Message{{Role: "user", Content: "help"}})
	assert.Equal(t, "Name the assumption.", reply)
}

func TestReply_Fallbacks(t *testing.T) {
	empty := serve(t, http.StatusOK, `{"reply":""}`, nil)
	assert.Equal(t, tutor.EmptyReply, New(empty.URL, quiet()).Reply(context.Background(), nil))

	missing := serve(t, http.StatusOK, `{}`, nil)
	assert.Equal(t, tutor.EmptyReply, New(missing.URL, quiet()).Reply(context.Background(), nil))

	failing := serve(t, http.StatusBadGateway, `upstream down`, nil)
	assert.Equal(t, tutor.UnavailableReply, New(failing.URL, quiet()).Reply(context.Background(), nil))
}

func TestAgainstRealRouter(t *testing.T) {
	router := api.NewRouter(api.DefaultConfig(), api.Deps{
		Drills: drill.NewService(nil, drill.DefaultConfig()),
		Tutor:  tutor.NewService(nil, tutor.DefaultConfig()),
		Mode:   llm.ModeOffline,
		Logger: logging.Discard(),
	})
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	c := New(srv.URL, quiet())
	d := c.Generate(context.Background(), "logical_reasoning")
	require.NoError(t, d.Validate())

	reply := c.Reply(context.Background(), []tutor.Message{{Role: "user", Content: "What is a necessary assumption?"}})
	assert.Contains(t, reply, "“What is a necessary assumption?”")
}
