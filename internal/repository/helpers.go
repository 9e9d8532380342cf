package repository

import (
	"errors"
	"time"

	sqlite "modernc.org/sqlite"
)

// Order and payment timestamps are stored as RFC3339 UTC text. Second
// precision keeps the stored strings fixed width, so BETWEEN comparisons
// in SQL order the same way the times do.
func formatTime(t time.Time) string {
	return t.UTC().Truncate(time.Second).Format(time.RFC3339)
}

func parseTime(value string) (time.Time, error) {
	return time.Parse(time.RFC3339, value)
}

// isConstraintViolation reports whether err is a SQLite constraint failure
// with one of the given extended result codes.
func isConstraintViolation(err error, codes ...int) bool {
	var sqlErr *sqlite.Error
	if !errors.As(err, &sqlErr) {
		return false
	}
	for _, code := range codes {
		if sqlErr.Code() == code {
			return true
		}
	}
	return false
}

// nullableString maps the empty string to NULL so UNIQUE columns treat
// absent values as absent instead of colliding on "".
func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
