package logger

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestResponseLogger(t *testing.T) {
	rr := httptest.NewRecorder()
	l := New(rr)

	if l.Status() != http.StatusOK {
		t.Errorf("want default status %v, got %v", http.StatusOK, l.Status())
	}

	l.Header().Set("Content-Type", "application/json")
	l.WriteHeader(http.StatusUnprocessableEntity)
	io.WriteString(l, `{"profane":true}`)

	if l.Status() != http.StatusUnprocessableEntity {
		t.Errorf("want status %v, got %v", http.StatusUnprocessableEntity, l.Status())
	}
	if l.Bytes() != len(`{"profane":true}`) {
		t.Errorf("want %d bytes, got %d", len(`{"profane":true}`), l.Bytes())
	}
	if rr.Code != http.StatusUnprocessableEntity {
		t.Errorf("want recorder status %v, got %v", http.StatusUnprocessableEntity, rr.Code)
	}
	if got := rr.Header().Get("Content-Type"); got != "application/json" {
		t.Errorf("want Content-Type header to pass through, got %q", got)
	}
}
