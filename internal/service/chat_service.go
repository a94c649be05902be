package service

import (
	"context"
	"credable/internal/cache"
	"credable/internal/chat"
	"credable/internal/model"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

var (
	ErrEmptyMessage = eris.New("message is required")
	ErrRateLimited  = eris.New("too many chat messages, slow down")
)

// ChatForwarder relays a message to the chatbot
type ChatForwarder interface {
	Forward(ctx context.Context, message string, history []model.Turn) model.ChatReply
}

// ChatService validates widget messages, applies the per-client rate limit
// and forwards to the chatbot
type ChatService struct {
	forwarder ChatForwarder
	limiter   cache.RateLimiter
	logger    *zap.Logger
}

// NewChatService creates a chat service. limiter may be nil to disable rate
// limiting.
func NewChatService(forwarder ChatForwarder, limiter cache.RateLimiter, logger *zap.Logger) *ChatService {
	return &ChatService{
		forwarder: forwarder,
		limiter:   limiter,
		logger:    logger.Named("chat"),
	}
}

// Send forwards req on behalf of clientKey. Upstream failures never surface
// as errors; they come back as a degraded reply.
func (s *ChatService) Send(ctx context.Context, clientKey string, req model.ChatRequest) (model.ChatReply, error) {
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return model.ChatReply{}, ErrEmptyMessage
	}

	if s.limiter != nil {
		ok, err := s.limiter.Allow(ctx, clientKey)
		switch {
		case err != nil:
			// redis trouble must not take the widget down
			s.logger.Warn("rate limiter unavailable", zap.Error(err))
		case !ok:
			s.logger.Info("chat rate limited", zap.String("client", clientKey))
			return model.ChatReply{}, ErrRateLimited
		}
	}

	history := req.History
	if len(history) == 0 && len(req.Messages) > 0 {
		history = chat.BuildHistory(req.Messages)
	}

	reply := s.forwarder.Forward(ctx, message, history)
	if reply.Degraded {
		s.logger.Warn("chat reply degraded", zap.String("client", clientKey))
	}
	return reply, nil
}
