package domain

import (
	"strings"
	"time"

	"github.com/SscSPs/bookkeeping_app/internal/apperrors"
)

const dateLayout = "2006-01-02"

// DateRange is an inclusive period. A nil bound is unbounded on that side.
type DateRange struct {
	From *time.Time `json:"from,omitempty"`
	To   *time.Time `json:"to,omitempty"`
}

// Unbounded covers all time.
func Unbounded() DateRange { return DateRange{} }

// Contains reports whether t falls inside the range, bounds included.
func (r DateRange) Contains(t time.Time) bool {
	if r.From != nil && t.Before(*r.From) {
		return false
	}
	if r.To != nil && t.After(*r.To) {
		return false
	}
	return true
}

// IsUnbounded reports whether neither bound is set.
func (r DateRange) IsUnbounded() bool {
	return r.From == nil && r.To == nil
}

// ParseDateRange builds a range from user supplied bounds. Each bound may be
// empty, a date (YYYY-MM-DD) or an RFC 3339 timestamp. A date-only upper bound
// covers the whole day.
//
// The returned range is always usable: a malformed bound is dropped (treated
// as unbounded) and an inverted range is dropped entirely. In those cases a
// *apperrors.RangeError is returned alongside so the caller can log it.
func ParseDateRange(from, to string) (DateRange, error) {
	var r DateRange
	var rangeErr error

	if t, ok, err := parseBound(from, false); err != nil {
		rangeErr = &apperrors.RangeError{Field: "from", Value: from, Reason: err.Error()}
	} else if ok {
		r.From = &t
	}
	if t, ok, err := parseBound(to, true); err != nil {
		if rangeErr == nil {
			rangeErr = &apperrors.RangeError{Field: "to", Value: to, Reason: err.Error()}
		}
	} else if ok {
		r.To = &t
	}

	if r.From != nil && r.To != nil && r.From.After(*r.To) {
		return Unbounded(), &apperrors.RangeError{Field: "from", Value: from, Reason: "from is after to"}
	}
	return r, rangeErr
}

func parseBound(s string, endOfDay bool) (time.Time, bool, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false, nil
	}
	if t, err := time.Parse(dateLayout, s); err == nil {
		if endOfDay {
			t = t.Add(24*time.Hour - time.Nanosecond)
		}
		return t, true, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, false, err
	}
	return t, true, nil
}
