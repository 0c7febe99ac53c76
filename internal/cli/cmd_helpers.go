package cli

import (
	"fmt"
	"time"

	"github.com/alexanderramin/chronos/internal/domain"
)

// parseDateFlag parses a YYYY-MM-DD flag value, defaulting to today
// when empty.
func parseDateFlag(value string) (time.Time, error) {
	if value == "" {
		return domain.DateOf(time.Now().UTC()), nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", value)
	}
	return t, nil
}

func timeNowUTC() time.Time {
	return time.Now().UTC()
}

// parseTimeFlag parses a "YYYY-MM-DD HH:MM" flag value.
func parseTimeFlag(value string) (time.Time, error) {
	t, err := time.Parse("2006-01-02 15:04", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q (expected YYYY-MM-DD HH:MM)", value)
	}
	return t.UTC(), nil
}
