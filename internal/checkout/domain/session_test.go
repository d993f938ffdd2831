package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	payment "github.com/wyfcoding/artsfoundation/internal/payment/domain"
)

func newDonationSession() *CheckoutSession {
	return &CheckoutSession{
		ID:       "cs-1",
		Purpose:  payment.PurposeDonation,
		State:    StatePending,
		Amount:   decimal.NewFromInt(50),
		Currency: "usd",
		Donation: &DonationDetails{Anonymous: true},
	}
}

func TestValidatePayloadExclusive(t *testing.T) {
	session := newDonationSession()
	assert.NoError(t, session.Validate())

	session.General = &GeneralDetails{}
	assert.Error(t, session.Validate())

	session.General = nil
	session.Donation = nil
	assert.Error(t, session.Validate())
}

func TestValidatePayloadMatchesPurpose(t *testing.T) {
	session := newDonationSession()
	session.Purpose = payment.PurposeCartCheckout
	assert.Error(t, session.Validate())
}

func TestBeginSubmissionRequiresClientSecret(t *testing.T) {
	session := newDonationSession()

	err := session.BeginSubmission()

	assert.ErrorIs(t, err, ErrNoClientSecret)
	assert.Equal(t, StatePending, session.State)
}

func TestLifecycleHappyPath(t *testing.T) {
	session := newDonationSession()
	session.AttachIntent(&payment.IntentSnapshot{ID: "pi_1", ClientSecret: "pi_1_secret", AmountCents: 5000, Currency: "usd"})
	assert.Equal(t, StateAwaitingPayment, session.State)

	require.NoError(t, session.BeginSubmission())
	assert.Equal(t, StateSubmitting, session.State)

	session.Complete(payment.ConfirmationResult{
		Outcome: payment.OutcomeSucceeded,
		Intent:  &payment.IntentSnapshot{ID: "pi_1", Status: payment.IntentStatusSucceeded, AmountCents: 5000},
	})
	assert.Equal(t, StateCompleted, session.State)
	require.NotNil(t, session.Completed)
	assert.Equal(t, payment.PurposeDonation, session.Completed.PaymentType)
	assert.Equal(t, int64(5000), session.Completed.AmountCents)
	assert.Equal(t, "pi_1", session.Completed.IntentID)
}

func TestFailedSessionIsRetryable(t *testing.T) {
	session := newDonationSession()
	session.AttachIntent(&payment.IntentSnapshot{ID: "pi_1", ClientSecret: "pi_1_secret"})

	require.NoError(t, session.BeginSubmission())
	session.Fail("Your card was declined.")
	assert.Equal(t, StateFailed, session.State)
	assert.Equal(t, "Your card was declined.", session.FailureMessage)

	// 失败后允许再次提交，且上次的失败信息被清除
	require.NoError(t, session.BeginSubmission())
	assert.Empty(t, session.FailureMessage)
}

func TestCompletedSessionCannotResubmit(t *testing.T) {
	session := newDonationSession()
	session.AttachIntent(&payment.IntentSnapshot{ID: "pi_1", ClientSecret: "pi_1_secret"})
	require.NoError(t, session.BeginSubmission())
	session.Complete(payment.ConfirmationResult{Outcome: payment.OutcomeSucceeded})

	assert.ErrorIs(t, session.BeginSubmission(), ErrInvalidState)
}

func TestConsumeReceiptOneShot(t *testing.T) {
	session := newDonationSession()

	// 未完成的会话没有回执
	assert.ErrorIs(t, session.ConsumeReceipt(), ErrInvalidState)

	session.AttachIntent(&payment.IntentSnapshot{ID: "pi_1", ClientSecret: "pi_1_secret"})
	require.NoError(t, session.BeginSubmission())
	session.Complete(payment.ConfirmationResult{Outcome: payment.OutcomeSucceeded})

	require.NoError(t, session.ConsumeReceipt())
	assert.ErrorIs(t, session.ConsumeReceipt(), ErrReceiptConsumed)
}
