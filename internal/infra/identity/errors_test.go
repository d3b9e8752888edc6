package identity

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractMessage(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{name: "msg field", status: 400, body: `{"msg":"Signup requires a valid password"}`, want: "Signup requires a valid password"},
		{name: "error_description wins over error", status: 400, body: `{"error":"invalid_grant","error_description":"Invalid login credentials"}`, want: "Invalid login credentials"},
		{name: "message field", status: 401, body: `{"message":"invalid JWT"}`, want: "invalid JWT"},
		{name: "error field only", status: 403, body: `{"error":"forbidden"}`, want: "forbidden"},
		{name: "blank fields are skipped", status: 400, body: `{"msg":"  ","error":"bad"}`, want: "bad"},
		{name: "plain text body", status: 502, body: `upstream down`, want: "upstream down"},
		{name: "empty body", status: 503, body: ``, want: http.StatusText(503)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractMessage(tt.status, []byte(tt.body)))
		})
	}
}

func TestProviderError(t *testing.T) {
	err := fmt.Errorf("SignIn: %w", &ProviderError{StatusCode: 400, Message: "Invalid login credentials"})

	assert.Equal(t, "SignIn: identity provider error (400): Invalid login credentials", err.Error())
	assert.True(t, IsClientError(err))
	assert.False(t, isRetryable(err))

	server := &ProviderError{StatusCode: 503, Message: "down"}
	assert.False(t, IsClientError(server))
	assert.True(t, isRetryable(server))
	assert.True(t, isRetryable(&ProviderError{StatusCode: 429}))
	assert.False(t, IsClientError(errors.New("boom")))
}
