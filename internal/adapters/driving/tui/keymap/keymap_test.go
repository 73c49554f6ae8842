package keymap

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultKeyMap(t *testing.T) {
	km := DefaultKeyMap()

	require.NotNil(t, km)
}

func TestDefaultKeyMap_Keys(t *testing.T) {
	km := DefaultKeyMap()

	tests := []struct {
		name    string
		binding key.Binding
		keys    []string
	}{
		{"Quit", km.Quit, []string{"q", "ctrl+c"}},
		{"Help", km.Help, []string{"?"}},
		{"Back", km.Back, []string{"esc"}},
		{"Ask", km.Ask, []string{"enter"}},
		{"Up", km.Up, []string{"up", "k"}},
		{"Down", km.Down, []string{"down", "j"}},
		{"NewQuestion", km.NewQuestion, []string{"n"}},
		{"PrevPeriod", km.PrevPeriod, []string{"left", "h"}},
		{"NextPeriod", km.NextPeriod, []string{"right", "l"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.keys, tt.binding.Keys())
			assert.NotEmpty(t, tt.binding.Help().Key, "binding should have help key")
		})
	}
}

func TestShortHelp(t *testing.T) {
	km := DefaultKeyMap()

	bindings := km.ShortHelp()

	require.Len(t, bindings, 2)
	assert.Equal(t, km.Ask, bindings[0])
	assert.Equal(t, km.Back, bindings[1])
}

func TestAnswerHelp(t *testing.T) {
	km := DefaultKeyMap()

	bindings := km.AnswerHelp()

	require.Len(t, bindings, 4)
	assert.Equal(t, km.NewQuestion, bindings[0])
}

func TestRecordsHelp(t *testing.T) {
	km := DefaultKeyMap()

	bindings := km.RecordsHelp()

	require.Len(t, bindings, 5)
	assert.Equal(t, km.PrevPeriod, bindings[0])
	assert.Equal(t, km.NextPeriod, bindings[1])
}

func TestFullHelp(t *testing.T) {
	km := DefaultKeyMap()

	bindings := km.FullHelp()

	assert.Len(t, bindings, 4)
	assert.Len(t, bindings[0], 3) // Up, Down, Select
	assert.Len(t, bindings[1], 3) // Ask, NewQuestion, Back
	assert.Len(t, bindings[2], 2) // PrevPeriod, NextPeriod
	assert.Len(t, bindings[3], 2) // Help, Quit
}

func TestMatches(t *testing.T) {
	km := DefaultKeyMap()

	assert.True(t, Matches("q", km.Quit))
	assert.True(t, Matches("ctrl+c", km.Quit))
	assert.True(t, Matches("l", km.NextPeriod))
	assert.False(t, Matches("x", km.Quit))
	assert.False(t, Matches("down", km.Up))
}
