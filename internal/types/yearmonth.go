package types

import (
	"encoding/json"
	"fmt"
	"time"
)

const yearMonthLayout = "2006-01"

// YearMonth is a calendar month without a day component, serialized as "YYYY-MM".
type YearMonth struct {
	Year  int
	Month time.Month
}

// NewYearMonth returns the YearMonth for the given year and month.
func NewYearMonth(year int, month time.Month) YearMonth {
	return YearMonth{Year: year, Month: month}
}

// YearMonthOf truncates t to its calendar month.
func YearMonthOf(t time.Time) YearMonth {
	return YearMonth{Year: t.Year(), Month: t.Month()}
}

// ParseYearMonth parses "YYYY-MM". An empty string yields the zero value.
func ParseYearMonth(s string) (YearMonth, error) {
	if s == "" {
		return YearMonth{}, nil
	}
	t, err := time.Parse(yearMonthLayout, s)
	if err != nil {
		return YearMonth{}, fmt.Errorf("invalid year-month %q: %w", s, err)
	}
	return YearMonthOf(t), nil
}

// IsZero reports whether the value is unset.
func (ym YearMonth) IsZero() bool {
	return ym.Year == 0 && ym.Month == 0
}

// String returns the "YYYY-MM" form, or "" for the zero value.
func (ym YearMonth) String() string {
	if ym.IsZero() {
		return ""
	}
	return fmt.Sprintf("%04d-%02d", ym.Year, int(ym.Month))
}

// index is the number of months since year zero.
func (ym YearMonth) index() int {
	return ym.Year*12 + int(ym.Month) - 1
}

// Before reports whether ym is strictly earlier than other.
func (ym YearMonth) Before(other YearMonth) bool {
	return ym.index() < other.index()
}

// MonthsUntil returns the signed number of months from ym to other.
func (ym YearMonth) MonthsUntil(other YearMonth) int {
	return other.index() - ym.index()
}

// MarshalJSON implements json.Marshaler.
func (ym YearMonth) MarshalJSON() ([]byte, error) {
	return json.Marshal(ym.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (ym *YearMonth) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("year-month must be a string: %w", err)
	}
	parsed, err := ParseYearMonth(s)
	if err != nil {
		return err
	}
	*ym = parsed
	return nil
}
