package domain

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyConfirmationRecoversInterruptedSuccess(t *testing.T) {
	err := &ProviderError{
		Code:    CodeIntentUnexpectedState,
		Message: "intent is in an unexpected state",
		Intent: &IntentSnapshot{
			ID:          "pi_123",
			Status:      IntentStatusSucceeded,
			AmountCents: 5000,
			Currency:    "usd",
		},
	}

	result := ClassifyConfirmation(nil, err)

	assert.Equal(t, OutcomeSucceeded, result.Outcome)
	assert.True(t, result.Recovered)
	assert.Equal(t, "pi_123", result.Intent.ID)
}

func TestClassifyConfirmationUnexpectedStateNotSucceeded(t *testing.T) {
	// 错误码匹配但意图并未成功：不得改判
	err := &ProviderError{
		Code:   CodeIntentUnexpectedState,
		Intent: &IntentSnapshot{ID: "pi_123", Status: IntentStatusRequiresPaymentMethod},
	}

	result := ClassifyConfirmation(nil, err)

	assert.Equal(t, OutcomeFailed, result.Outcome)
	assert.False(t, result.Recovered)
}

func TestClassifyConfirmationGenuineDecline(t *testing.T) {
	err := &ProviderError{Code: "card_declined", Message: "Your card was declined."}

	result := ClassifyConfirmation(nil, err)

	assert.Equal(t, OutcomeFailed, result.Outcome)
	assert.Equal(t, "Your card was declined.", result.FailureMessage)
}

func TestClassifyConfirmationTimeout(t *testing.T) {
	result := ClassifyConfirmation(nil, context.DeadlineExceeded)

	assert.Equal(t, OutcomeFailed, result.Outcome)
	assert.Equal(t, "payment confirmation timed out", result.FailureMessage)
}

func TestClassifyConfirmationWrappedProviderError(t *testing.T) {
	wrapped := errors.Join(errors.New("confirm failed"), &ProviderError{
		Code:   CodeIntentUnexpectedState,
		Intent: &IntentSnapshot{ID: "pi_9", Status: IntentStatusSucceeded},
	})

	result := ClassifyConfirmation(nil, wrapped)

	assert.Equal(t, OutcomeSucceeded, result.Outcome)
	assert.True(t, result.Recovered)
}

func TestClassifyConfirmationByStatus(t *testing.T) {
	tests := []struct {
		status IntentStatus
		want   Outcome
	}{
		{IntentStatusSucceeded, OutcomeSucceeded},
		{IntentStatusProcessing, OutcomeProcessing},
		{IntentStatusRequiresAction, OutcomeProcessing},
		{IntentStatusRequiresPaymentMethod, OutcomeFailed},
		{IntentStatusCanceled, OutcomeFailed},
	}
	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			result := ClassifyConfirmation(&IntentSnapshot{ID: "pi_1", Status: tt.status}, nil)
			assert.Equal(t, tt.want, result.Outcome)
			assert.False(t, result.Recovered)
		})
	}
}
