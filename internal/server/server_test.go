package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/matzehuels/dagviz/pkg/errors"
)

func TestWriteErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid graph", errors.New(errors.ErrCodeInvalidGraph, "bad graph"), http.StatusBadRequest},
		{"invalid node id", errors.New(errors.ErrCodeInvalidNodeID, "bad id"), http.StatusBadRequest},
		{"invalid config", errors.New(errors.ErrCodeInvalidConfig, "bad config"), http.StatusBadRequest},
		{"invalid format", errors.New(errors.ErrCodeInvalidFormat, "bad body"), http.StatusBadRequest},
		{"not found", errors.New(errors.ErrCodeNotFound, "no geometry"), http.StatusNotFound},
		{"graph not found", errors.New(errors.ErrCodeGraphNotFound, "no such graph"), http.StatusNotFound},
		{"internal", errors.New(errors.ErrCodeInternal, "boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeError(rec, tt.err)

			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
			var body errorResponse
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if body.Code != string(errors.GetCode(tt.err)) {
				t.Errorf("body code = %q, want %q", body.Code, errors.GetCode(tt.err))
			}
			if body.Message == "" {
				t.Error("body message is empty")
			}
		})
	}
}

func TestWriteJSONSetsContentType(t *testing.T) {
	rec := httptest.NewRecorder()
	writeJSON(rec, http.StatusCreated, map[string]string{"ok": "yes"})

	if rec.Code != http.StatusCreated {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusCreated)
	}
	if got := rec.Header().Get("Content-Type"); got != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", got)
	}
}
