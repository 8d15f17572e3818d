package domain

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

type Currency string

const (
	CurrencyINR Currency = "INR"
	CurrencyUSD Currency = "USD"
)

var (
	ErrUnsupportedCurrency = errors.New("unsupported currency")
	ErrInvalidAmount       = errors.New("invalid amount")
)

func ParseCurrency(s string) (Currency, error) {
	switch Currency(strings.ToUpper(strings.TrimSpace(s))) {
	case CurrencyINR:
		return CurrencyINR, nil
	case CurrencyUSD:
		return CurrencyUSD, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedCurrency, s)
	}
}

// Symbol is display only; prices are never converted between currencies.
func (c Currency) Symbol() string {
	if c == CurrencyUSD {
		return "$"
	}
	return "₹"
}

// MinorUnits is the number of minor units (paise, cents) in one major unit.
func (c Currency) MinorUnits() int64 {
	return 100
}

func (c Currency) String() string {
	return string(c)
}

// ToMinorUnits converts a decimal price into minor units of c. The conversion
// works on the shortest decimal text of the float, so 4.99 becomes 499 and not
// 498. Digits past the minor unit are rounded half up.
func ToMinorUnits(price float64, c Currency) (int64, error) {
	if math.IsNaN(price) || math.IsInf(price, 0) || price < 0 {
		return 0, fmt.Errorf("%w: %v", ErrInvalidAmount, price)
	}

	digits := 0
	for m := c.MinorUnits(); m > 1; m /= 10 {
		digits++
	}

	text := strconv.FormatFloat(price, 'f', -1, 64)
	whole, frac, _ := strings.Cut(text, ".")

	major, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidAmount, price)
	}

	for len(frac) <= digits {
		frac += "0"
	}
	minor, err := strconv.ParseInt(frac[:digits], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidAmount, price)
	}
	if frac[digits] >= '5' {
		minor++
	}

	if major > (math.MaxInt64-minor)/c.MinorUnits() {
		return 0, fmt.Errorf("%w: %v overflows", ErrInvalidAmount, price)
	}
	return major*c.MinorUnits() + minor, nil
}
