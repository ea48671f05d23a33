package shared

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainError_IsMatchesKindSentinel(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{"not found", NewNotFoundError("INVOICE_NOT_FOUND", "invoice not found"), ErrNotFound},
		{"forbidden", NewForbiddenError("ROLE_NOT_ALLOWED", "role not allowed"), ErrForbidden},
		{"validation", NewValidationError("INVALID_STATUS", "invalid status"), ErrInvalidInput},
		{"integrity", NewIntegrityError("CORRUPT_NUMBER", "bad number"), ErrIntegrity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, errors.Is(tt.err, tt.sentinel))
			wrapped := fmt.Errorf("outer: %w", tt.err)
			assert.True(t, errors.Is(wrapped, tt.sentinel))
		})
	}
}

func TestDomainError_IsDoesNotCrossKinds(t *testing.T) {
	err := NewNotFoundError("ORDER_NOT_FOUND", "order not found")
	assert.False(t, errors.Is(err, ErrForbidden))
	assert.False(t, errors.Is(err, ErrInvalidInput))
}

func TestDomainError_IsMatchesSameCode(t *testing.T) {
	a := NewValidationError("ALREADY_VOIDED", "invoice already voided")
	b := NewValidationError("ALREADY_VOIDED", "different message")
	c := NewValidationError("INVALID_STATUS", "invalid status")

	assert.True(t, errors.Is(a, b))
	assert.False(t, errors.Is(a, c))
}

func TestDomainError_WithCause(t *testing.T) {
	cause := errors.New("unique violation")
	err := NewIntegrityError("INVOICE_EXISTS", "order already invoiced").WithCause(cause)

	assert.True(t, errors.Is(err, cause))
	assert.True(t, errors.Is(err, ErrIntegrity))
	assert.Contains(t, err.Error(), "unique violation")
}

func TestKindOf(t *testing.T) {
	kind, ok := KindOf(fmt.Errorf("wrapped: %w", NewForbiddenError("X", "x")))
	assert.True(t, ok)
	assert.Equal(t, KindForbidden, kind)

	_, ok = KindOf(errors.New("plain"))
	assert.False(t, ok)
}
