package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestErrors_Existence tests that all error variables exist and are not nil
func TestErrors_Existence(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrNotFound", ErrNotFound},
		{"ErrAlreadyExists", ErrAlreadyExists},
		{"ErrInvalidInput", ErrInvalidInput},
		{"ErrInvalidPattern", ErrInvalidPattern},
		{"ErrUnsupportedType", ErrUnsupportedType},
		{"ErrDocumentUnreadable", ErrDocumentUnreadable},
		{"ErrEmbeddingUnavailable", ErrEmbeddingUnavailable},
		{"ErrVectorIndexUnavailable", ErrVectorIndexUnavailable},
		{"ErrDimensionMismatch", ErrDimensionMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

func TestErrors_Distinct(t *testing.T) {
	all := []error{
		ErrNotFound, ErrAlreadyExists, ErrInvalidInput, ErrInvalidPattern, ErrUnsupportedType,
		ErrDocumentUnreadable, ErrEmbeddingUnavailable, ErrVectorIndexUnavailable, ErrDimensionMismatch,
	}
	for i := range all {
		for j := range all {
			if i == j {
				continue
			}
			assert.False(t, errors.Is(all[i], all[j]), "%v should not match %v", all[i], all[j])
		}
	}
}

func TestErrors_WrappedStillMatch(t *testing.T) {
	wrapped := fmt.Errorf("adding metric %q: %w", "PAT", ErrAlreadyExists)
	assert.True(t, errors.Is(wrapped, ErrAlreadyExists))
	assert.Contains(t, wrapped.Error(), "already exists")

	unreadable := fmt.Errorf("reading report.pdf: %w", ErrDocumentUnreadable)
	assert.True(t, errors.Is(unreadable, ErrDocumentUnreadable))
}
