package models

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidPoints возвращается при разборе некорректной суммы баллов.
var ErrInvalidPoints = errors.New("invalid points value")

// Points — количество баллов во внутренней валюте, хранится в сотых долях балла.
// 300 баллов это Points(30000).
type Points int64

// NewPoints собирает сумму из целой части и сотых.
func NewPoints(whole, hundredths int64) Points {
	return Points(whole*100 + hundredths)
}

// ParsePoints разбирает десятичную запись вида "300", "300.5" или "-1.25".
// Больше двух знаков после точки не допускается.
func ParsePoints(s string) (Points, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidPoints
	}
	neg := false
	switch s[0] {
	case '-':
		neg = true
		s = s[1:]
	case '+':
		s = s[1:]
	}

	intPart, fracPart, hasDot := strings.Cut(s, ".")
	if !isDigits(intPart) || (hasDot && (!isDigits(fracPart) || len(fracPart) > 2)) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPoints, s)
	}
	whole, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPoints, s)
	}
	var frac int64
	if hasDot {
		if len(fracPart) == 1 {
			fracPart += "0"
		}
		frac, err = strconv.ParseInt(fracPart, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidPoints, s)
		}
	}

	if whole > (math.MaxInt64-frac)/100 {
		return 0, fmt.Errorf("%w: %q out of range", ErrInvalidPoints, s)
	}
	p := NewPoints(whole, frac)
	if neg {
		p = -p
	}
	return p, nil
}

// String форматирует сумму с двумя знаками после точки.
func (p Points) String() string {
	sign := ""
	v := int64(p)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

// MarshalJSON пишет сумму JSON-числом с двумя знаками: 700.00.
func (p Points) MarshalJSON() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalJSON принимает как число, так и строку.
func (p *Points) UnmarshalJSON(data []byte) error {
	parsed, err := ParsePoints(strings.Trim(string(data), `"`))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
