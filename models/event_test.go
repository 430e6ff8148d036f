package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartInstant(t *testing.T) {
	e := Event{Date: "2026-09-10", StartTime: "18:30"}

	got, err := e.StartInstant(time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 9, 10, 18, 30, 0, 0, time.UTC), got)
}

func TestStartInstantBadDate(t *testing.T) {
	e := Event{Date: "10/09/2026", StartTime: "18:30"}

	_, err := e.StartInstant(time.UTC)
	assert.Error(t, err)
}

func TestCapacitySemantics(t *testing.T) {
	unlimited := Event{Capacity: 0, RegisteredCount: 10000}
	assert.True(t, unlimited.Unlimited())
	assert.False(t, unlimited.IsFull())

	open := Event{Capacity: 10, RegisteredCount: 9}
	assert.False(t, open.Unlimited())
	assert.False(t, open.IsFull())

	full := Event{Capacity: 10, RegisteredCount: 10}
	assert.True(t, full.IsFull())
}
