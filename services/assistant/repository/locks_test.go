package repository

import (
	"sync"
	"testing"
	"time"

	"assistant/domain"

	"github.com/stretchr/testify/assert"
)

// Two concurrent payments on the same fee must both end up in the balance;
// without the student lock held across read and write the second Save
// overwrites the first.
func TestStudentLockSerializesPayments(t *testing.T) {
	locks := newKeyedLocks()
	fee := &domain.FeeRecord{FeeID: "fee-1", StudentID: "student-1", Amount: 500}

	var wg sync.WaitGroup
	for _, amount := range []float64{200, 300} {
		wg.Add(1)
		go func(amount float64) {
			defer wg.Done()
			unlock := locks.lock(fee.StudentID)
			defer unlock()
			assert.NoError(t, fee.ApplyPayment(amount, "transfer", time.Now()))
		}(amount)
	}
	wg.Wait()

	assert.Equal(t, 500.0, fee.PaidAmount)
	assert.NotNil(t, fee.PaidAt)
}

func TestKeyedLocksAreIndependentPerKey(t *testing.T) {
	locks := newKeyedLocks()

	unlockA := locks.lock("student-a")
	defer unlockA()

	done := make(chan struct{})
	go func() {
		unlockB := locks.lock("student-b")
		unlockB()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("lock on a different student blocked")
	}
}
