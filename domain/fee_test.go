package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFeeStatusDerivation(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	past := now.AddDate(0, 0, -10)
	future := now.AddDate(0, 0, 10)

	t.Run("pending before due date", func(t *testing.T) {
		fee := FeeRecord{Amount: 500, DueDate: future}
		assert.Equal(t, FeePending, fee.Status(now))
	})

	t.Run("partial payment before due date", func(t *testing.T) {
		fee := FeeRecord{Amount: 500, PaidAmount: 200, DueDate: future}
		assert.Equal(t, FeePartial, fee.Status(now))
	})

	t.Run("past due date", func(t *testing.T) {
		fee := FeeRecord{Amount: 500, DueDate: past}
		assert.Equal(t, FeeOverdue, fee.Status(now))
	})

	t.Run("partial payment past due date is still overdue", func(t *testing.T) {
		fee := FeeRecord{Amount: 500, PaidAmount: 200, DueDate: past}
		assert.Equal(t, FeeOverdue, fee.Status(now))
	})

	t.Run("full payment leaves overdue", func(t *testing.T) {
		fee := FeeRecord{Amount: 500, PaidAmount: 500, DueDate: past}
		assert.Equal(t, FeePaid, fee.Status(now))
	})

	t.Run("waiver leaves overdue", func(t *testing.T) {
		reason := "scholarship"
		fee := FeeRecord{Amount: 500, Waived: true, WaiveReason: &reason, DueDate: past}
		assert.Equal(t, FeePaid, fee.Status(now))
	})

	t.Run("overpayment counts as paid", func(t *testing.T) {
		fee := FeeRecord{Amount: 500, PaidAmount: 600, DueDate: future}
		assert.Equal(t, FeePaid, fee.Status(now))
	})
}

func TestApplyPayment(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	t.Run("partial payment keeps record open", func(t *testing.T) {
		fee := FeeRecord{Amount: 500}
		assert.NoError(t, fee.ApplyPayment(200, "transfer", now))
		assert.Equal(t, 200.0, fee.PaidAmount)
		assert.Nil(t, fee.PaidAt)
	})

	t.Run("clearing payment stamps paid_at", func(t *testing.T) {
		fee := FeeRecord{Amount: 500, PaidAmount: 300}
		assert.NoError(t, fee.ApplyPayment(200, "cash", now))
		assert.Equal(t, 500.0, fee.PaidAmount)
		if assert.NotNil(t, fee.PaidAt) {
			assert.Equal(t, now, *fee.PaidAt)
		}
	})

	t.Run("settled record rejects further payments", func(t *testing.T) {
		fee := FeeRecord{Amount: 500, PaidAmount: 500}
		var transition *InvalidTransitionError
		assert.ErrorAs(t, fee.ApplyPayment(50, "cash", now), &transition)
		assert.Equal(t, 500.0, fee.PaidAmount)
	})

	t.Run("waived record rejects payments", func(t *testing.T) {
		fee := FeeRecord{Amount: 500, Waived: true}
		var transition *InvalidTransitionError
		assert.ErrorAs(t, fee.ApplyPayment(50, "cash", now), &transition)
	})
}

func TestWaive(t *testing.T) {
	t.Run("open record can be waived", func(t *testing.T) {
		fee := FeeRecord{Amount: 500, PaidAmount: 200}
		assert.NoError(t, fee.Waive("scholarship"))
		assert.True(t, fee.Waived)
		if assert.NotNil(t, fee.WaiveReason) {
			assert.Equal(t, "scholarship", *fee.WaiveReason)
		}
	})

	t.Run("settled record cannot be waived", func(t *testing.T) {
		fee := FeeRecord{Amount: 500, PaidAmount: 500}
		var transition *InvalidTransitionError
		assert.ErrorAs(t, fee.Waive("scholarship"), &transition)
		assert.False(t, fee.Waived)
	})
}
