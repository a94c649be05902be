package service

import (
	"context"
	"credable/internal/config"
	"credable/internal/decision"
	"credable/internal/model"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestDemoRunEmitsTraceInOrder(t *testing.T) {
	svc := NewDemoService(config.DemoConfig{Pacing: 0}, zap.NewNop())

	var got []model.TraceLine
	d, err := svc.Run(context.Background(), "ACME Traders", func(line model.TraceLine) error {
		got = append(got, line)
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, decision.Evaluate("ACME Traders"), d)
	assert.Equal(t, decision.Trace(d), got)
}

func TestDemoRunPacing(t *testing.T) {
	// 1% of the site timing: the full run takes ~25ms
	svc := NewDemoService(config.DemoConfig{Pacing: 0.01}, zap.NewNop())

	start := time.Now()
	var last time.Duration
	_, err := svc.Run(context.Background(), "Initech", func(model.TraceLine) error {
		last = time.Since(start)
		return nil
	})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, last, 25*time.Millisecond)
}

func TestDemoRunCanceled(t *testing.T) {
	svc := NewDemoService(config.DemoConfig{Pacing: 1}, zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())

	emitted := 0
	_, err := svc.Run(ctx, "Initech", func(model.TraceLine) error {
		emitted++
		cancel()
		return nil
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	// the next line checks ctx even when already due
	assert.Equal(t, 1, emitted)
}

func TestDemoRunEmitError(t *testing.T) {
	svc := NewDemoService(config.DemoConfig{}, zap.NewNop())
	boom := errors.New("socket closed")

	_, err := svc.Run(context.Background(), "", func(model.TraceLine) error { return boom })
	assert.ErrorIs(t, err, boom)
}

func TestDemoPreview(t *testing.T) {
	svc := NewDemoService(config.DemoConfig{}, zap.NewNop())
	assert.False(t, svc.Preview("AC").Ready)
	assert.True(t, svc.Preview("ACME Traders").Ready)
}

func TestDemoScale(t *testing.T) {
	tests := []struct {
		pacing float64
		offset int
		want   time.Duration
	}{
		{pacing: 1, offset: 2550, want: 2550 * time.Millisecond},
		{pacing: 0.5, offset: 900, want: 450 * time.Millisecond},
		{pacing: 0, offset: 1900, want: 0},
		{pacing: -1, offset: 450, want: 0},
	}
	for _, tt := range tests {
		svc := &DemoService{pacing: tt.pacing}
		assert.Equal(t, tt.want, svc.scale(tt.offset), "pacing %v offset %d", tt.pacing, tt.offset)
	}
}
