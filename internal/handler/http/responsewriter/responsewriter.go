// Package responsewriter lets middleware observe the status code and body size
// a handler produced.
package responsewriter

import "net/http"

// Recorder is an http.ResponseWriter that remembers what was sent through it.
type Recorder struct {
	http.ResponseWriter
	status int
	size   int
}

// Wrap returns a Recorder around w. Wrapping a Recorder returns it unchanged,
// so every middleware in a chain reads the same numbers.
func Wrap(w http.ResponseWriter) *Recorder {
	if rec, ok := w.(*Recorder); ok {
		return rec
	}
	return &Recorder{ResponseWriter: w}
}

// WriteHeader forwards the first status code only.
func (r *Recorder) WriteHeader(code int) {
	if r.status != 0 {
		return
	}
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *Recorder) Write(b []byte) (int, error) {
	r.WriteHeader(http.StatusOK)
	n, err := r.ResponseWriter.Write(b)
	r.size += n
	return n, err
}

// Flush implements http.Flusher when the wrapped writer does.
func (r *Recorder) Flush() {
	r.WriteHeader(http.StatusOK)
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// StatusCode is the status sent, or 200 if the handler has not written yet.
func (r *Recorder) StatusCode() int {
	if r.status == 0 {
		return http.StatusOK
	}
	return r.status
}

// BytesWritten is the body size so far.
func (r *Recorder) BytesWritten() int { return r.size }

// Written reports whether headers went out.
func (r *Recorder) Written() bool { return r.status != 0 }

// Unwrap exposes the wrapped writer to http.ResponseController.
func (r *Recorder) Unwrap() http.ResponseWriter { return r.ResponseWriter }
