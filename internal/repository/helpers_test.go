package repository

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

func itoa(n int64) string {
	return strconv.FormatInt(n, 10)
}

func upper(s string) string {
	return strings.ToUpper(s)
}

// uuid8 returns a short lowercase prefix unique to one test run
func uuid8() string {
	return "g" + strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

func dateOf(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}
