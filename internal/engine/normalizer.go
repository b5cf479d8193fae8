package engine

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/gostatement/internal/domain"
)

var (
	numericDatePattern = regexp.MustCompile(`^(\d{1,2})[./-](\d{1,2})[./-](\d{2,4})$`)
	isoDatePattern     = regexp.MustCompile(`^(\d{4})[./-](\d{1,2})[./-](\d{1,2})$`)
	namedMonthPattern  = regexp.MustCompile(`^(\d{1,2})\s+([A-Za-z]{3,9})\.?\s+(\d{2,4})$`)
)

var monthNames = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
}

// Normalizer canonicalizes raw date and amount strings from a statement.
// The zero value is not usable; construct via NewNormalizer.
type Normalizer struct {
	dayFirst bool
	asOf     time.Time
	earliest time.Time
}

// NewNormalizer creates a normalizer.
//
// dayFirst resolves numeric dates where both leading components could be
// a month ("05/03/2024"): true reads day/month/year, false month/day/year.
// Dates after asOf or more than maxAgeYears before it are rejected.
func NewNormalizer(dayFirst bool, asOf time.Time, maxAgeYears int) *Normalizer {
	asOf = asOf.UTC().Truncate(24 * time.Hour)
	return &Normalizer{
		dayFirst: dayFirst,
		asOf:     asOf,
		earliest: asOf.AddDate(-maxAgeYears, 0, 0),
	}
}

// ParseDate parses raw into a calendar date (midnight UTC). Supported
// formats, tried in order: numeric day/month/year with "/", "-" or "."
// separators, ISO year-month-day, and "02 Jan 2006" style named months.
func (n *Normalizer) ParseDate(raw string) (time.Time, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, domain.ErrDateUnparseable
	}

	if m := numericDatePattern.FindStringSubmatch(s); m != nil {
		a, _ := strconv.Atoi(m[1])
		b, _ := strconv.Atoi(m[2])
		year, err := normalizeYear(m[3])
		if err != nil {
			return time.Time{}, err
		}

		day, month := a, b
		switch {
		case a > 12 && b > 12:
			return time.Time{}, fmt.Errorf("%w: %q", domain.ErrDateUnparseable, raw)
		case a > 12:
			// First component cannot be a month.
		case b > 12:
			day, month = b, a
		case !n.dayFirst:
			day, month = b, a
		}
		return n.buildDate(year, time.Month(month), day, raw)
	}

	if m := isoDatePattern.FindStringSubmatch(s); m != nil {
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		day, _ := strconv.Atoi(m[3])
		return n.buildDate(year, time.Month(month), day, raw)
	}

	if m := namedMonthPattern.FindStringSubmatch(s); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, ok := monthNames[strings.ToLower(m[2])[:3]]
		if !ok {
			return time.Time{}, fmt.Errorf("%w: unknown month in %q", domain.ErrDateUnparseable, raw)
		}
		year, err := normalizeYear(m[3])
		if err != nil {
			return time.Time{}, err
		}
		return n.buildDate(year, month, day, raw)
	}

	return time.Time{}, fmt.Errorf("%w: %q", domain.ErrDateUnparseable, raw)
}

func (n *Normalizer) buildDate(year int, month time.Month, day int, raw string) (time.Time, error) {
	if month < time.January || month > time.December || day < 1 || day > 31 {
		return time.Time{}, fmt.Errorf("%w: %q", domain.ErrDateUnparseable, raw)
	}

	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	// time.Date normalizes overflow (31 Feb -> 2 Mar); a shifted
	// component means the calendar date never existed.
	if d.Year() != year || d.Month() != month || d.Day() != day {
		return time.Time{}, fmt.Errorf("%w: %q", domain.ErrDateUnparseable, raw)
	}

	if d.After(n.asOf) || d.Before(n.earliest) {
		return time.Time{}, fmt.Errorf("%w: %s", domain.ErrDateOutOfRange, d.Format("2006-01-02"))
	}
	return d, nil
}

// normalizeYear expands two-digit years: below 50 maps into the 2000s,
// 50 and above into the 1900s.
func normalizeYear(s string) (int, error) {
	year, err := strconv.Atoi(s)
	if err != nil {
		return 0, domain.ErrDateUnparseable
	}
	if len(s) == 2 {
		if year < 50 {
			return 2000 + year, nil
		}
		return 1900 + year, nil
	}
	return year, nil
}

// ParseAmount parses raw into an exact signed decimal. Currency symbols
// and whitespace are stripped. When both "," and "." appear, whichever
// comes last is the decimal point and the other is removed as a thousands
// separator. A single separator followed by more than two digits, or one
// appearing more than once, is treated as thousands-only. Parentheses and
// a leading or trailing minus sign mark the value negative.
func (n *Normalizer) ParseAmount(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Decimal{}, domain.ErrAmountUnparseable
	}

	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = s[1 : len(s)-1]
	}

	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' || r == ',' || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}
	s = b.String()

	if strings.HasPrefix(s, "-") {
		negative = true
		s = s[1:]
	}
	if strings.HasSuffix(s, "-") {
		negative = true
		s = s[:len(s)-1]
	}
	if s == "" || strings.Contains(s, "-") {
		return decimal.Decimal{}, fmt.Errorf("%w: %q", domain.ErrAmountUnparseable, raw)
	}

	s = resolveSeparators(s)

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: %q", domain.ErrAmountUnparseable, raw)
	}
	if negative {
		d = d.Neg()
	}
	return d, nil
}

func resolveSeparators(s string) string {
	lastComma := strings.LastIndex(s, ",")
	lastDot := strings.LastIndex(s, ".")

	switch {
	case lastComma >= 0 && lastDot >= 0:
		if lastDot > lastComma {
			// 1,234.56
			return strings.ReplaceAll(s, ",", "")
		}
		// 1.234,56
		s = strings.ReplaceAll(s, ".", "")
		return strings.Replace(s, ",", ".", 1)
	case lastComma >= 0:
		if strings.Count(s, ",") == 1 && len(s)-lastComma-1 <= 2 {
			return strings.Replace(s, ",", ".", 1)
		}
		return strings.ReplaceAll(s, ",", "")
	case lastDot >= 0:
		if strings.Count(s, ".") == 1 && len(s)-lastDot-1 <= 2 {
			return s
		}
		return strings.ReplaceAll(s, ".", "")
	default:
		return s
	}
}
