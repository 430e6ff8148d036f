package types

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(ErrEventNotFound))
	assert.True(t, IsNotFound(ErrRegistrationNotFound))
	assert.True(t, IsNotFound(ErrNotificationNotFound))
	assert.True(t, IsNotFound(ErrUserNotFound))
	assert.False(t, IsNotFound(ErrEventFull))
	assert.False(t, IsNotFound(errors.New("boom")))
	assert.False(t, IsNotFound(nil))
}

func TestIsValidation(t *testing.T) {
	assert.True(t, IsValidation(ErrInvalidCategory))
	assert.True(t, IsValidation(ErrInvalidTimes))
	assert.True(t, IsValidation(ErrInvalidCapacity))
	assert.True(t, IsValidation(ErrMissingFields))
	assert.False(t, IsValidation(ErrEventNotFound))
}

func TestIsRegistrationClosed(t *testing.T) {
	assert.True(t, IsRegistrationClosed(ErrEventFull))
	assert.True(t, IsRegistrationClosed(ErrEventStarted))
	assert.False(t, IsRegistrationClosed(ErrAlreadyRegistered))
}

func TestIsConflict(t *testing.T) {
	assert.True(t, IsConflict(ErrEventFull))
	assert.True(t, IsConflict(ErrEventStarted))
	assert.True(t, IsConflict(ErrAlreadyRegistered))
	assert.True(t, IsConflict(ErrEmailTaken))
	assert.False(t, IsConflict(ErrEventNotFound))
}

func TestClassifiersSeeThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("register: %w", ErrEventFull)
	assert.True(t, IsRegistrationClosed(wrapped))
	assert.True(t, IsConflict(wrapped))
}
