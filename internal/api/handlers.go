package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/abhisek/lsatarcade/internal/llm"
	"github.com/abhisek/lsatarcade/internal/tutor"
)

// Request modes accepted by /api/lsat.
const (
	ModeDrill = "drill"
	ModeTutor = "tutor"
)

// LSATRequest is the body of POST /api/lsat. Every field is optional.
type LSATRequest struct {
	Mode     string          `json:"mode,omitempty"`
	Topic    string          `json:"topic,omitempty"`
	Messages []tutor.Message `json:"messages,omitempty"`
}

// TutorRequest is the body of POST /api/tutor.
type TutorRequest struct {
	Messages []tutor.Message `json:"messages"`
}

// TutorResponse carries a tutor reply.
type TutorResponse struct {
	Reply string `json:"reply"`
}

// HealthResponse is returned by the probes.
type HealthResponse struct {
	Status string   `json:"status"`
	Mode   llm.Mode `json:"mode"`
}

// LSATHandler dispatches on mode: drill (the default) returns a question,
// tutor returns a reply, anything else is rejected.
func LSATHandler(drills DrillGenerator, tut Tutor, maxBody int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LSATRequest
		if status, err := decodeBody(w, r, maxBody, &req); err != nil {
			writeErr(w, status, err.Error())
			return
		}

		switch strings.ToLower(strings.TrimSpace(req.Mode)) {
		case "", ModeDrill:
			writeJSON(w, http.StatusOK, drills.Generate(r.Context(), req.Topic))
		case ModeTutor:
			writeJSON(w, http.StatusOK, TutorResponse{Reply: tut.Reply(r.Context(), req.Messages)})
		default:
			writeErr(w, http.StatusBadRequest, "invalid mode")
		}
	}
}

// TutorHandler answers a tutoring conversation.
func TutorHandler(tut Tutor, maxBody int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req TutorRequest
		if status, err := decodeBody(w, r, maxBody, &req); err != nil {
			writeErr(w, status, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, TutorResponse{Reply: tut.Reply(r.Context(), req.Messages)})
	}
}

// HealthHandler reports liveness and the configured mode.
func HealthHandler(mode llm.Mode) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Mode: mode})
	}
}

// decodeBody reads a JSON object into v. An empty body leaves v untouched.
func decodeBody(w http.ResponseWriter, r *http.Request, maxBody int64, v any) (int, error) {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody))
	if err := dec.Decode(v); err != nil {
		var tooBig *http.MaxBytesError
		switch {
		case errors.Is(err, io.EOF):
			return 0, nil
		case errors.As(err, &tooBig):
			return http.StatusRequestEntityTooLarge, fmt.Errorf("request body exceeds %d bytes", tooBig.Limit)
		default:
			return http.StatusBadRequest, fmt.Errorf("invalid JSON body: %w", err)
		}
	}
	return 0, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errResp struct {
	Error string `json:"error"`
}

func writeErr(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errResp{Error: msg})
}
