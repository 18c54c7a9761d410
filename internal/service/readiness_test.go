package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReadiness_Transitions(t *testing.T) {
	readiness := NewReadiness()
	assert.True(t, readiness.IsReady())

	readiness.MarkNotReady()
	assert.False(t, readiness.IsReady())

	readiness.MarkReady()
	assert.True(t, readiness.IsReady())
}
