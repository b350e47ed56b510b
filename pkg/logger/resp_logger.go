// Package logger records what a handler wrote so it can be reported after
// the request completes.
package logger

import "net/http"

// ResponseLogger wraps an http.ResponseWriter and remembers the status code
// and the number of body bytes written.
type ResponseLogger struct {
	w      http.ResponseWriter
	status int
	bytes  int
}

func New(w http.ResponseWriter) *ResponseLogger {
	return &ResponseLogger{w: w, status: http.StatusOK}
}

func (l *ResponseLogger) WriteHeader(code int) {
	l.status = code
	l.w.WriteHeader(code)
}

func (l *ResponseLogger) Write(b []byte) (int, error) {
	n, err := l.w.Write(b)
	l.bytes += n
	return n, err
}

func (l *ResponseLogger) Header() http.Header {
	return l.w.Header()
}

func (l *ResponseLogger) Status() int {
	return l.status
}

// Bytes returns the number of body bytes written so far.
func (l *ResponseLogger) Bytes() int {
	return l.bytes
}
