package types

import (
	"fmt"
	"math/big"
	"strings"
)

// Numeric values are NUMERIC(78,0) columns carried as base 10 strings.

// ParseNumeric parses a base 10 integer string
func ParseNumeric(s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("empty numeric value")
	}
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("invalid numeric value: %q", s)
	}
	return v, nil
}

// NumericOrZero parses s and falls back to zero on empty or invalid input
func NumericOrZero(s *string) *big.Int {
	if s == nil {
		return new(big.Int)
	}
	v, err := ParseNumeric(*s)
	if err != nil {
		return new(big.Int)
	}
	return v
}

// AddNumeric returns a + b
func AddNumeric(a, b string) (string, error) {
	x, y, err := parsePair(a, b)
	if err != nil {
		return "", err
	}
	return x.Add(x, y).String(), nil
}

// SubNumeric returns a - b. The result may be negative.
func SubNumeric(a, b string) (string, error) {
	x, y, err := parsePair(a, b)
	if err != nil {
		return "", err
	}
	return x.Sub(x, y).String(), nil
}

// MulNumeric returns a * b
func MulNumeric(a, b string) (string, error) {
	x, y, err := parsePair(a, b)
	if err != nil {
		return "", err
	}
	return x.Mul(x, y).String(), nil
}

// DivNumeric returns a / b truncated toward zero. Division by zero yields "0".
func DivNumeric(a, b string) (string, error) {
	x, y, err := parsePair(a, b)
	if err != nil {
		return "", err
	}
	if y.Sign() == 0 {
		return "0", nil
	}
	return x.Quo(x, y).String(), nil
}

// CompareNumeric returns -1, 0 or +1 as a is less than, equal to or greater than b
func CompareNumeric(a, b string) (int, error) {
	x, y, err := parsePair(a, b)
	if err != nil {
		return 0, err
	}
	return x.Cmp(y), nil
}

// SumNumeric adds all values
func SumNumeric(values []string) (string, error) {
	sum := new(big.Int)
	for _, s := range values {
		v, err := ParseNumeric(s)
		if err != nil {
			return "", err
		}
		sum.Add(sum, v)
	}
	return sum.String(), nil
}

// MeanNumeric returns the truncated integer mean of values, or "0" for none
func MeanNumeric(values []string) (string, error) {
	if len(values) == 0 {
		return "0", nil
	}
	sum, err := SumNumeric(values)
	if err != nil {
		return "", err
	}
	return DivNumeric(sum, fmt.Sprintf("%d", len(values)))
}

func parsePair(a, b string) (*big.Int, *big.Int, error) {
	x, err := ParseNumeric(a)
	if err != nil {
		return nil, nil, err
	}
	y, err := ParseNumeric(b)
	if err != nil {
		return nil, nil, err
	}
	return x, y, nil
}
