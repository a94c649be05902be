package chat

import (
	"context"
	"credable/internal/config"
	"credable/internal/model"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newTestClient(url, key string) *Client {
	return NewClient(config.ChatConfig{
		URL:        url,
		APIKey:     key,
		Timeout:    config.Duration(2 * time.Second),
		MaxRetries: 2,
	}, zap.NewNop())
}

func respondWith(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		io.WriteString(w, body)
	}
}

func TestForward_SendsMessageHistoryAndKey(t *testing.T) {
	var got struct {
		Message string      `json:"message"`
		History [][2]string `json:"history"`
	}
	var header http.Header

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header = r.Header.Clone()
		assert.Equal(t, http.MethodPost, r.Method)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		io.WriteString(w, `{"response":"hello"}`)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, "secret")
	reply := c.Forward(context.Background(), "what is credable?", []model.Turn{{"hi", "hey"}})

	assert.Equal(t, "hello", reply.Reply)
	assert.False(t, reply.Degraded)
	assert.Equal(t, "what is credable?", got.Message)
	assert.Equal(t, [][2]string{{"hi", "hey"}}, got.History)
	assert.Equal(t, "application/json", header.Get("Content-Type"))
	assert.Equal(t, "secret", header.Get("X-API-Key"))
}

func TestForward_NoKeyNoHeader(t *testing.T) {
	var body map[string]json.RawMessage
	var hasKey bool

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hasKey = r.Header["X-Api-Key"]
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		io.WriteString(w, `"plain answer"`)
	}))
	defer srv.Close()

	reply := newTestClient(srv.URL, "").Forward(context.Background(), "hi", nil)

	assert.Equal(t, "plain answer", reply.Reply)
	assert.False(t, hasKey)
	assert.JSONEq(t, `[]`, string(body["history"]), "nil history goes out as an empty list")
}

func TestForward_ReplyNormalization(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		want     string
		degraded bool
	}{
		{"response field", 200, `{"response":"R"}`, "R", false},
		{"reply beats answer", 200, `{"reply":"A","answer":"B"}`, "A", false},
		{"response beats everything", 200, `{"message":"M","answer":"B","reply":"A","response":"R"}`, "R", false},
		{"message last", 200, `{"message":"M","other":"x"}`, "M", false},
		{"empty string skipped", 200, `{"response":"","answer":"B"}`, "B", false},
		{"non-string skipped", 200, `{"response":42,"reply":"A"}`, "A", false},
		{"bare string", 200, `"just text"`, "just text", false},
		{"no known field", 200, `{"data":"x"}`, FallbackReply, false},
		{"json array", 200, `["a"]`, FallbackReply, false},
		{"not json", 200, `<html>oops</html>`, FallbackReply, true},
		{"server error", 500, `{"response":"ignored"}`, FallbackReply, true},
		{"not found", 404, `{}`, FallbackReply, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(respondWith(tt.status, tt.body))
			defer srv.Close()

			reply := newTestClient(srv.URL, "").Forward(context.Background(), "hi", nil)
			assert.Equal(t, tt.want, reply.Reply)
			assert.Equal(t, tt.degraded, reply.Degraded)
		})
	}
}

func TestForward_NetworkFailure(t *testing.T) {
	srv := httptest.NewServer(respondWith(200, `{"reply":"never"}`))
	url := srv.URL
	srv.Close()

	reply := newTestClient(url, "").Forward(context.Background(), "hi", nil)
	assert.Equal(t, FallbackReply, reply.Reply)
	assert.True(t, reply.Degraded)
}

func TestForward_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	c := NewClient(config.ChatConfig{
		URL:        srv.URL,
		Timeout:    config.Duration(50 * time.Millisecond),
		MaxRetries: 1,
	}, zap.NewNop())

	reply := c.Forward(context.Background(), "hi", nil)
	assert.Equal(t, FallbackReply, reply.Reply)
	assert.True(t, reply.Degraded)
}

func TestForward_RetriesRateLimit(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		io.WriteString(w, `{"answer":"second time lucky"}`)
	}))
	defer srv.Close()

	reply := newTestClient(srv.URL, "").Forward(context.Background(), "hi", nil)
	assert.Equal(t, "second time lucky", reply.Reply)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestForward_RateLimitExhausted(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	reply := newTestClient(srv.URL, "").Forward(context.Background(), "hi", nil)
	assert.Equal(t, FallbackReply, reply.Reply)
	assert.True(t, reply.Degraded)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestForward_CanceledContext(t *testing.T) {
	srv := httptest.NewServer(respondWith(200, `{"reply":"never"}`))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	reply := newTestClient(srv.URL, "").Forward(ctx, "hi", nil)
	assert.Equal(t, FallbackReply, reply.Reply)
	assert.True(t, reply.Degraded)
}
