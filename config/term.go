package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const termDateLayout = "2006-01-02"

// TermBounds returns the inclusive start and end dates of the current
// school term. Attendance may only be recorded inside these bounds.
func TermBounds() (time.Time, time.Time, error) {
	startEnv := os.Getenv("TERM_START")
	endEnv := os.Getenv("TERM_END")
	if startEnv == "" || endEnv == "" {
		return time.Time{}, time.Time{}, fmt.Errorf("term bounds are not configured, TERM_START: %s, TERM_END: %s", startEnv, endEnv)
	}

	start, err := time.Parse(termDateLayout, startEnv)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid TERM_START: %w", err)
	}

	end, err := time.Parse(termDateLayout, endEnv)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid TERM_END: %w", err)
	}

	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("TERM_END %s is before TERM_START %s", endEnv, startEnv)
	}

	return start, end, nil
}

// GetAutonomyThreshold returns the confidence score a capability must
// reach before the assistant may act on its own.
func GetAutonomyThreshold() int {
	env := os.Getenv("AUTONOMY_THRESHOLD")
	if env == "" {
		return 80
	}

	v, err := strconv.Atoi(env)
	if err != nil || v < 0 || v > 100 {
		return 80
	}
	return v
}
