package services

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/ansuman15/salon-software-sub002/internal/common"
	"github.com/shopspring/decimal"
)

// Field limits shared by the services.
const (
	maxNameLen  = 100
	maxNotesLen = 1000
	maxShortLen = 64
)

var phoneRe = regexp.MustCompile(`^\+?[0-9]{7,15}$`)

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", common.ErrorValidation, fmt.Sprintf(format, args...))
}

func stripControl(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
}

// CleanName trims, drops control characters and collapses inner whitespace.
func CleanName(field, s string, max int) (string, error) {
	s = strings.Join(strings.Fields(stripControl(s)), " ")
	if s == "" {
		return "", invalid("%s is required", field)
	}
	if utf8.RuneCountInString(s) > max {
		return "", invalid("%s must be at most %d characters", field, max)
	}
	return s, nil
}

// CleanText is CleanName for optional free text; newlines survive.
func CleanText(field, s string, max int) (string, error) {
	s = strings.TrimSpace(stripControl(s))
	if utf8.RuneCountInString(s) > max {
		return "", invalid("%s must be at most %d characters", field, max)
	}
	return s, nil
}

// NormalizePhone drops common separators and checks for 7 to 15 digits with
// an optional leading plus.
func NormalizePhone(s string) (string, error) {
	s = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "", ".", "").Replace(strings.TrimSpace(s))
	if !phoneRe.MatchString(s) {
		return "", invalid("phone must contain 7 to 15 digits")
	}
	return s, nil
}

// NormalizeEmail accepts an empty value.
func NormalizeEmail(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", nil
	}
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s || len(s) > 254 {
		return "", invalid("email is not valid")
	}
	return strings.ToLower(s), nil
}

func oneOf(field, v string, allowed ...string) error {
	for _, a := range allowed {
		if v == a {
			return nil
		}
	}
	return invalid("%s must be one of %s", field, strings.Join(allowed, ", "))
}

func nonNegative(field string, d decimal.Decimal) error {
	if d.IsNegative() {
		return invalid("%s must not be negative", field)
	}
	return nil
}

// ParseDate reads a YYYY-MM-DD calendar date in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	d, err := time.ParseInLocation(common.DateLayout, strings.TrimSpace(s), loc)
	if err != nil {
		return time.Time{}, invalid("date must be YYYY-MM-DD")
	}
	return d, nil
}

// dayStart truncates t to midnight in loc.
func dayStart(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}
