package percent

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// Percent is a simple and straightforward type for percentage values
type Percent uint8

// ErrNotAPercentage is returned by FromString for malformed input.
var ErrNotAPercentage = errors.New("not a percentage value")

func FromInt(n int) Percent {
	switch {
	case n <= 0:
		return Percent(0)
	case n >= 100:
		return Percent(100)
	}
	return Percent(n)
}

func FromFloat(f float64) Percent {
	switch {
	case f <= 0 || math.IsNaN(f) || math.IsInf(f, -1):
		return Percent(0)
	case f >= 100 || math.IsInf(f, 1):
		return Percent(100)
	}
	return Percent(math.Round(f))
}

// FromString parses values like "50%". The percent sign is mandatory,
// values are clipped to 0…100.
func FromString(s string) (Percent, error) {
	s = strings.TrimSpace(s)
	if !strings.HasSuffix(s, "%") {
		return 0, ErrNotAPercentage
	}
	n, err := strconv.Atoi(strings.TrimSuffix(s, "%"))
	if err != nil {
		return 0, ErrNotAPercentage
	}
	return FromInt(n), nil
}

// Of scales n by p.
func (p Percent) Of(n int) int {
	return n * int(p) / 100
}

// Fraction returns p as a value between 0.0 and 1.0.
func (p Percent) Fraction() float64 {
	return float64(p) / 100
}

func (p Percent) String() string {
	return strconv.Itoa(int(p)) + "%"
}
