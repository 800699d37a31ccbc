package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/uniconnect/ama-service/pkg/errs"
)

func TestMapError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		kind error
		code int
	}{
		{"api 401", genai.APIError{Code: 401, Status: "UNAUTHENTICATED"}, errs.ErrUpstreamAuth, http.StatusInternalServerError},
		{"key text", errors.New("400 Bad Request: API_KEY_INVALID"), errs.ErrUpstreamAuth, http.StatusInternalServerError},
		{"api 429", genai.APIError{Code: 429, Status: "RESOURCE_EXHAUSTED"}, errs.ErrUpstreamQuota, http.StatusTooManyRequests},
		{"quota text", fmt.Errorf("call: %w", errors.New("QUOTA_EXCEEDED")), errs.ErrUpstreamQuota, http.StatusTooManyRequests},
		{"other", errors.New("deadline exceeded"), errs.ErrUpstream, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := MapError(tc.err)
			assert.ErrorIs(t, got, tc.kind)
			assert.Equal(t, tc.code, errs.ToHTTP(got))
		})
	}
	assert.NoError(t, MapError(nil))
}

func TestMapError_KeepsTypedErrors(t *testing.T) {
	in := errs.New(errs.ErrUpstreamQuota, "x")
	assert.Same(t, in, MapError(in))
}

func TestNew_RequiresKey(t *testing.T) {
	_, err := New(context.Background(), Config{})
	assert.ErrorIs(t, err, errs.ErrUpstreamAuth)
}

func fakeGemini(t *testing.T, status int, body string) *Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, ":generateContent"), r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	c, err := New(context.Background(), Config{APIKey: "test", BaseURL: srv.URL})
	require.NoError(t, err)
	return c
}

func TestGenerate_OK(t *testing.T) {
	c := fakeGemini(t, http.StatusOK,
		`{"candidates":[{"content":{"role":"model","parts":[{"text":"Subject: Hello\n\nHi there"}]}}]}`)

	out, err := c.Generate(context.Background(), "prompt")
	require.NoError(t, err)
	assert.Equal(t, "Subject: Hello\n\nHi there", out)
}

func TestGenerate_Quota(t *testing.T) {
	c := fakeGemini(t, http.StatusTooManyRequests,
		`{"error":{"code":429,"message":"Quota exceeded","status":"RESOURCE_EXHAUSTED"}}`)

	_, err := c.Generate(context.Background(), "prompt")
	assert.ErrorIs(t, err, errs.ErrUpstreamQuota)
}

func TestGenerate_EmptyCandidates(t *testing.T) {
	c := fakeGemini(t, http.StatusOK, `{"candidates":[]}`)

	_, err := c.Generate(context.Background(), "prompt")
	assert.ErrorIs(t, err, errs.ErrUpstream)
}
