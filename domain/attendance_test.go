package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAttendanceDay(t *testing.T) {
	jakarta := time.FixedZone("WIB", 7*60*60)
	bogota := time.FixedZone("COT", -5*60*60)

	t.Run("utc timestamp keeps its day", func(t *testing.T) {
		in := time.Date(2026, 3, 15, 12, 30, 0, 0, time.UTC)
		assert.Equal(t, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), AttendanceDay(in))
	})

	t.Run("local midnight east of utc stays on the same date", func(t *testing.T) {
		in := time.Date(2026, 3, 15, 0, 0, 0, 0, jakarta)
		assert.Equal(t, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), AttendanceDay(in))
	})

	t.Run("late evening west of utc stays on the same date", func(t *testing.T) {
		in := time.Date(2026, 3, 15, 23, 30, 0, 0, bogota)
		assert.Equal(t, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), AttendanceDay(in))
	})
}

func TestPlanMark(t *testing.T) {
	payload := &MarkAttendancePayload{
		StudentID: "student-1",
		Status:    AttendancePresent,
		Method:    MethodQR,
	}

	t.Run("no existing record creates", func(t *testing.T) {
		assert.Equal(t, MarkCreate, PlanMark(nil, payload))
	})

	t.Run("identical re-mark is a no-op", func(t *testing.T) {
		existing := &AttendanceRecord{Status: AttendancePresent, Method: MethodQR}
		assert.Equal(t, MarkNoop, PlanMark(existing, payload))
	})

	t.Run("status change corrects", func(t *testing.T) {
		existing := &AttendanceRecord{Status: AttendanceAbsent, Method: MethodQR}
		assert.Equal(t, MarkCorrect, PlanMark(existing, payload))
	})

	t.Run("method change corrects", func(t *testing.T) {
		existing := &AttendanceRecord{Status: AttendancePresent, Method: MethodManual}
		assert.Equal(t, MarkCorrect, PlanMark(existing, payload))
	})
}
