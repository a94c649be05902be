// Package chat relays widget messages to the hosted chatbot and normalizes
// whatever it answers into a single displayable string.
package chat

import (
	"bytes"
	"context"
	"credable/internal/config"
	"credable/internal/model"
	"encoding/json"
	"io"
	"math"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// FallbackReply is returned whenever no usable answer came back
const FallbackReply = "Chat service temporarily unavailable."

// maxBodyBytes caps how much of an upstream reply is read
const maxBodyBytes = 1 << 20

var errRateLimited = eris.New("chatbot rate limited")

// Client forwards messages to the chatbot endpoint
type Client struct {
	url        string
	apiKey     string
	httpClient *http.Client
	maxRetries int
	backoff    time.Duration
	logger     *zap.Logger
}

// NewClient creates a chatbot client from cfg
func NewClient(cfg config.ChatConfig, logger *zap.Logger) *Client {
	maxRetries := cfg.MaxRetries
	if maxRetries < 1 {
		maxRetries = 1
	}
	return &Client{
		url:    cfg.URL,
		apiKey: cfg.APIKey,
		httpClient: &http.Client{
			Timeout: cfg.Timeout.Std(),
		},
		maxRetries: maxRetries,
		backoff:    cfg.RetryBackoff.Std(),
		logger:     logger.Named("chat"),
	}
}

// Forward sends message and the completed turns before it, and returns the
// chatbot's answer. It never fails: any transport, status or decoding problem
// yields FallbackReply with Degraded set.
func (c *Client) Forward(ctx context.Context, message string, history []model.Turn) model.ChatReply {
	if history == nil {
		history = []model.Turn{}
	}
	payload, err := json.Marshal(model.ChatUpstreamRequest{Message: message, History: history})
	if err != nil {
		c.logger.Error("encode chat request", zap.Error(err))
		return model.ChatReply{Reply: FallbackReply, Degraded: true}
	}

	body, err := c.doRequest(ctx, payload)
	if err != nil {
		c.logger.Warn("chatbot unreachable", zap.Error(err))
		return model.ChatReply{Reply: FallbackReply, Degraded: true}
	}

	reply, err := ExtractReply(body)
	if err != nil {
		c.logger.Warn("chatbot returned unreadable body", zap.Error(err), zap.Int("bytes", len(body)))
		return model.ChatReply{Reply: FallbackReply, Degraded: true}
	}
	if reply == "" {
		c.logger.Info("chatbot reply had no known field")
		return model.ChatReply{Reply: FallbackReply}
	}
	return model.ChatReply{Reply: reply}
}

// doRequest posts payload, retrying only when the chatbot rate limits us
func (c *Client) doRequest(ctx context.Context, payload []byte) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt < c.maxRetries; attempt++ {
		if attempt > 0 {
			wait := time.Duration(math.Pow(2, float64(attempt-1))) * c.backoff
			c.logger.Info("retrying chatbot request",
				zap.Int("attempt", attempt+1),
				zap.Int("maxRetries", c.maxRetries),
				zap.Duration("backoff", wait))
			if err := sleep(ctx, wait); err != nil {
				return nil, eris.Wrap(err, "waiting to retry")
			}
		}

		body, err := c.post(ctx, payload)
		if eris.Is(err, errRateLimited) {
			lastErr = err
			continue
		}
		return body, err
	}
	return nil, eris.Wrapf(lastErr, "gave up after %d attempts", c.maxRetries)
}

func (c *Client) post(ctx context.Context, payload []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return nil, eris.Wrap(err, "build request")
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "post to chatbot")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, eris.Wrap(err, "read chatbot response")
	}

	c.logger.Debug("chatbot responded",
		zap.Int("status", resp.StatusCode),
		zap.Int("bytes", len(body)),
		zap.Duration("took", time.Since(start)))

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, errRateLimited
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, eris.Errorf("chatbot returned status %d", resp.StatusCode)
	}
	return body, nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
