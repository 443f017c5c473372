package util

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrInvalidPrice = errors.New("invalid price")

// ParseMajorUnits converts a human-entered price in major currency units to
// minor units. Thousands separators and surrounding whitespace are ignored,
// so "150,000" becomes 15000000 and "1,234.56" becomes 123456. Fractions
// beyond two decimal places round half up. Negative prices are rejected.
func ParseMajorUnits(input string) (int64, error) {
	s := strings.TrimSpace(input)
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, " ", "")
	if s == "" {
		return 0, ErrInvalidPrice
	}
	if strings.HasPrefix(s, "-") {
		return 0, ErrInvalidPrice
	}

	whole := s
	frac := ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		whole, frac = s[:i], s[i+1:]
		if strings.IndexByte(frac, '.') >= 0 {
			return 0, ErrInvalidPrice
		}
	}
	if whole == "" {
		whole = "0"
	}

	major, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, ErrInvalidPrice
	}

	// Take two fractional digits, rounding on the third.
	var cents int64
	switch {
	case frac == "":
	case len(frac) == 1:
		d, err := strconv.ParseInt(frac, 10, 64)
		if err != nil {
			return 0, ErrInvalidPrice
		}
		cents = d * 10
	default:
		d, err := strconv.ParseInt(frac[:2], 10, 64)
		if err != nil {
			return 0, ErrInvalidPrice
		}
		cents = d
		if len(frac) > 2 {
			if _, err := strconv.ParseInt(frac[2:], 10, 64); err != nil {
				return 0, ErrInvalidPrice
			}
			if firstDigit(frac[2:]) >= 5 {
				cents++
			}
		}
	}

	return major*100 + cents, nil
}

func firstDigit(s string) int {
	return int(s[0] - '0')
}

// FormatTZS renders minor units as a display price, e.g. 3500000 becomes
// "TZS 35,000.00".
func FormatTZS(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	major := cents / 100
	minor := cents % 100
	return fmt.Sprintf("%sTZS %s.%02d", sign, groupThousands(major), minor)
}

func groupThousands(n int64) string {
	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
