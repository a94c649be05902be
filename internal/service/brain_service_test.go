package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBrainService(t *testing.T) {
	svc := NewBrainService()
	assert.Len(t, svc.Layout().Layers, 5)
	assert.Equal(t, 2868, svc.Layout().Connections)
	assert.Len(t, svc.Tour(), 5)
}
