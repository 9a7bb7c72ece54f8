package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarizeAttendance(t *testing.T) {
	records := make([]AttendanceRecord, 0, 23)
	for i := 0; i < 18; i++ {
		records = append(records, AttendanceRecord{Status: AttendancePresent})
	}
	records = append(records,
		AttendanceRecord{Status: AttendanceAbsent},
		AttendanceRecord{Status: AttendanceLate},
		AttendanceRecord{Status: AttendanceLate},
		AttendanceRecord{Status: AttendanceExcused},
		AttendanceRecord{Status: AttendanceExcused},
	)

	summary := SummarizeAttendance(records)

	assert.Equal(t, 18, summary.Present)
	assert.Equal(t, 1, summary.Absent)
	assert.Equal(t, 2, summary.Late)
	assert.Equal(t, 2, summary.Excused)
	// 18 of 21 counted days; excused days stay out of the denominator.
	assert.Equal(t, 85.7, summary.Percentage)
}

func TestSummarizeAttendanceEmpty(t *testing.T) {
	summary := SummarizeAttendance(nil)
	assert.Equal(t, 0.0, summary.Percentage)
}

func TestSummarizeAttendanceAllExcused(t *testing.T) {
	records := []AttendanceRecord{
		{Status: AttendanceExcused},
		{Status: AttendanceExcused},
	}
	summary := SummarizeAttendance(records)
	assert.Equal(t, 2, summary.Excused)
	assert.Equal(t, 0.0, summary.Percentage)
}
