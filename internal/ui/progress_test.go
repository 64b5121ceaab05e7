package ui

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"swiftformat/internal/driver"
)

func TestStatusLabel(t *testing.T) {
	tests := []struct {
		ev   driver.Event
		want string
	}{
		{driver.Event{Status: driver.FileQueued}, "queued"},
		{driver.Event{Status: driver.FileStarted}, "formatting"},
		{driver.Event{Status: driver.FileDone}, "unchanged"},
		{driver.Event{Status: driver.FileDone, Changed: true}, "changed"},
		{driver.Event{Status: driver.FileDone, Cached: true}, "cached"},
		{driver.Event{Status: driver.FileDone, Changed: true, Err: errors.New("x")}, "error"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, statusLabel(tt.ev))
	}
}

func TestProgressModelTracksFiles(t *testing.T) {
	events := make(chan driver.Event)
	m := NewProgressModel("format", []string{"a.swift"}, events).(*progressModel)

	m.applyEvent(driver.Event{Path: "a.swift", Status: driver.FileStarted})
	m.applyEvent(driver.Event{Path: "b.swift", Status: driver.FileQueued})
	m.applyEvent(driver.Event{Path: "a.swift", Status: driver.FileDone, Changed: true})
	m.applyEvent(driver.Event{Path: "a.swift", Status: driver.FileDone, Changed: true})

	require.Len(t, m.items, 2)
	assert.Equal(t, 1, m.finished, "repeated events count once")
	assert.Equal(t, "changed", m.items[0].status)
	assert.Equal(t, "queued", m.items[1].status)

	view := m.View()
	assert.True(t, strings.Contains(view, "format (1/2)"), view)
	assert.Contains(t, view, "b.swift")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	got := truncate("abcdefghij", 7)
	assert.True(t, strings.HasSuffix(got, "..."), got)
	assert.LessOrEqual(t, len(got), 7)
	assert.Equal(t, "ab", truncate("abcdefghij", 2))
}
