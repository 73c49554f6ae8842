package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrors_AreDistinct(t *testing.T) {
	errs := []error{
		ErrMissingQueryService,
		ErrMissingRecordService,
		ErrInvalidPorts,
	}

	seen := make(map[string]bool)
	for _, err := range errs {
		msg := err.Error()
		assert.False(t, seen[msg], "duplicate error message: %s", msg)
		seen[msg] = true
	}
}

func TestErrors_Messages(t *testing.T) {
	assert.Contains(t, ErrMissingQueryService.Error(), "query service")
	assert.Contains(t, ErrMissingRecordService.Error(), "record service")
	assert.Contains(t, ErrInvalidPorts.Error(), "invalid ports")
}
