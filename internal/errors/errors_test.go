package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	"eeg-insight/internal/errors"

	"github.com/stretchr/testify/assert"
)

func TestAppErrorMessage(t *testing.T) {
	assert.Equal(t, "Invalid request", errors.New(errors.ErrValidation).Error())
	assert.Equal(t, "question cannot be empty", errors.Validation("question cannot be empty").Error())

	wrapped := errors.Wrap(errors.ErrAIProvider, stderrors.New("timeout"))
	assert.Equal(t, "AI provider request failed: timeout", wrapped.Error())
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, errors.ErrValidation, errors.CodeOf(errors.Validation("bad")))
	assert.Equal(t, errors.ErrInternal, errors.CodeOf(stderrors.New("boom")))

	nested := fmt.Errorf("analyze: %w", errors.New(errors.ErrEmptyInput))
	assert.Equal(t, errors.ErrEmptyInput, errors.CodeOf(nested))
}

func TestIsValidation(t *testing.T) {
	assert.True(t, errors.IsValidation(fmt.Errorf("wrap: %w", errors.Validation("x"))))
	assert.False(t, errors.IsValidation(errors.New(errors.ErrAIProvider)))
	assert.False(t, errors.IsValidation(stderrors.New("plain")))
}

func TestUnknownCodeMessage(t *testing.T) {
	assert.Equal(t, "something_else", errors.GetErrorMessage("something_else"))
}
