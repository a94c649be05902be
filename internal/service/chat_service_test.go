package service

import (
	"context"
	"credable/internal/model"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeForwarder struct {
	calls   int
	message string
	history []model.Turn
	reply   model.ChatReply
}

func (f *fakeForwarder) Forward(_ context.Context, message string, history []model.Turn) model.ChatReply {
	f.calls++
	f.message = message
	f.history = history
	return f.reply
}

type fakeLimiter struct {
	allow bool
	err   error
}

func (l fakeLimiter) Allow(context.Context, string) (bool, error) {
	return l.allow, l.err
}

func TestChatSendEmptyMessage(t *testing.T) {
	fwd := &fakeForwarder{}
	svc := NewChatService(fwd, nil, zap.NewNop())

	_, err := svc.Send(context.Background(), "1.2.3.4", model.ChatRequest{Message: "   "})
	assert.ErrorIs(t, err, ErrEmptyMessage)
	assert.Zero(t, fwd.calls)
}

func TestChatSendBuildsHistoryFromMessages(t *testing.T) {
	fwd := &fakeForwarder{reply: model.ChatReply{Reply: "ok"}}
	svc := NewChatService(fwd, nil, zap.NewNop())

	reply, err := svc.Send(context.Background(), "c", model.ChatRequest{
		Message: "  next?  ",
		Messages: []model.ChatMessage{
			{Role: model.RoleUser, Content: "hi"},
			{Role: model.RoleAssistant, Content: "hello"},
			{Role: model.RoleUser, Content: "next?"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", reply.Reply)
	assert.Equal(t, "next?", fwd.message)
	assert.Equal(t, []model.Turn{{"hi", "hello"}}, fwd.history)
}

func TestChatSendExplicitHistoryWins(t *testing.T) {
	fwd := &fakeForwarder{}
	svc := NewChatService(fwd, nil, zap.NewNop())

	_, err := svc.Send(context.Background(), "c", model.ChatRequest{
		Message:  "q",
		History:  []model.Turn{{"a", "b"}},
		Messages: []model.ChatMessage{{Role: model.RoleUser, Content: "x"}, {Role: model.RoleAssistant, Content: "y"}},
	})
	require.NoError(t, err)
	assert.Equal(t, []model.Turn{{"a", "b"}}, fwd.history)
}

func TestChatSendRateLimited(t *testing.T) {
	fwd := &fakeForwarder{}
	svc := NewChatService(fwd, fakeLimiter{allow: false}, zap.NewNop())

	_, err := svc.Send(context.Background(), "c", model.ChatRequest{Message: "hi"})
	assert.ErrorIs(t, err, ErrRateLimited)
	assert.Zero(t, fwd.calls)
}

func TestChatSendLimiterFailsOpen(t *testing.T) {
	fwd := &fakeForwarder{reply: model.ChatReply{Reply: "ok"}}
	svc := NewChatService(fwd, fakeLimiter{err: errors.New("redis down")}, zap.NewNop())

	reply, err := svc.Send(context.Background(), "c", model.ChatRequest{Message: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "ok", reply.Reply)
	assert.Equal(t, 1, fwd.calls)
}

func TestChatSendDegradedIsNotAnError(t *testing.T) {
	fwd := &fakeForwarder{reply: model.ChatReply{Reply: "down", Degraded: true}}
	svc := NewChatService(fwd, fakeLimiter{allow: true}, zap.NewNop())

	reply, err := svc.Send(context.Background(), "c", model.ChatRequest{Message: "hi"})
	require.NoError(t, err)
	assert.True(t, reply.Degraded)
}
