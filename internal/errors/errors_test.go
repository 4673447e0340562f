package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainError_Is(t *testing.T) {
	wrapped := fmt.Errorf("transition: %w", ErrCaseNotFound)
	copied := &DomainError{Code: CodeNotFound, Message: "KYC case not found", Err: stderrors.New("row missing")}

	assert.ErrorIs(t, wrapped, ErrCaseNotFound)
	assert.ErrorIs(t, copied, ErrCaseNotFound)

	// same code, different message
	assert.NotErrorIs(t, ErrUserNotFound, ErrCaseNotFound)
	assert.NotErrorIs(t, ErrInvalidAction, ErrEmptyNote)
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, CodeThrottled, CodeOf(fmt.Errorf("login: %w", ErrTooManyAttempts)))
	assert.Equal(t, CodeInternal, CodeOf(stderrors.New("boom")))
	assert.Equal(t, CodeInternal, CodeOf(Internal(stderrors.New("boom"))))
}
