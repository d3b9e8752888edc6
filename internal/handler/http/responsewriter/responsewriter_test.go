package responsewriter

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrap_FreshRecorder(t *testing.T) {
	rec := Wrap(httptest.NewRecorder())

	assert.Equal(t, http.StatusOK, rec.StatusCode())
	assert.Zero(t, rec.BytesWritten())
	assert.False(t, rec.Written())
}

func TestWrap_IsIdempotent(t *testing.T) {
	inner := Wrap(httptest.NewRecorder())
	assert.Same(t, inner, Wrap(inner))
}

func TestRecorder_FirstStatusWins(t *testing.T) {
	tests := []struct {
		name  string
		codes []int
		want  int
	}{
		{name: "created note", codes: []int{http.StatusCreated}, want: http.StatusCreated},
		{name: "deleted note", codes: []int{http.StatusNoContent, http.StatusOK}, want: http.StatusNoContent},
		{name: "forbidden then ok", codes: []int{http.StatusForbidden, http.StatusOK}, want: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := httptest.NewRecorder()
			rec := Wrap(base)
			for _, c := range tt.codes {
				rec.WriteHeader(c)
			}

			assert.Equal(t, tt.want, rec.StatusCode())
			assert.Equal(t, tt.want, base.Code)
			assert.True(t, rec.Written())
		})
	}
}

func TestRecorder_WriteCountsBytes(t *testing.T) {
	base := httptest.NewRecorder()
	rec := Wrap(base)

	n, err := rec.Write([]byte(`{"summary":"Cats are great."}`))
	require.NoError(t, err)
	_, _ = rec.Write([]byte("\n"))

	assert.Equal(t, 29, n)
	assert.Equal(t, 30, rec.BytesWritten())
	assert.Equal(t, http.StatusOK, rec.StatusCode())
	assert.Equal(t, http.StatusOK, base.Code)
}

func TestRecorder_WriteAfterErrorStatus(t *testing.T) {
	base := httptest.NewRecorder()
	rec := Wrap(base)

	rec.WriteHeader(http.StatusNotFound)
	_, _ = rec.Write([]byte(`{"error":"note not found"}`))

	assert.Equal(t, http.StatusNotFound, rec.StatusCode())
	assert.Equal(t, http.StatusNotFound, base.Code)
}

func TestRecorder_Flush(t *testing.T) {
	base := httptest.NewRecorder()
	rec := Wrap(base)

	rec.Flush()

	assert.True(t, base.Flushed)
	assert.True(t, rec.Written())
}

func TestRecorder_ResponseController(t *testing.T) {
	base := httptest.NewRecorder()
	rec := Wrap(base)

	assert.Same(t, base, rec.Unwrap())
	// httptest.ResponseRecorder has no deadline support; the controller must reach it through Unwrap.
	err := http.NewResponseController(rec).SetWriteDeadline(time.Now().Add(time.Second))
	assert.ErrorIs(t, err, http.ErrNotSupported)
}

func TestRecorder_SharedAcrossMiddleware(t *testing.T) {
	var outerStatus, outerSize int
	outer := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec := Wrap(w)
			next.ServeHTTP(rec, r)
			outerStatus, outerSize = rec.StatusCode(), rec.BytesWritten()
		})
	}
	inner := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(Wrap(w), r)
		})
	}

	h := outer(inner(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"error":"title is required"}`))
	})))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/notes", nil))

	assert.Equal(t, http.StatusUnprocessableEntity, outerStatus)
	assert.Equal(t, len(`{"error":"title is required"}`), outerSize)
}
