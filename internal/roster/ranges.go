package roster

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

const (
	// MinLevel is the lowest level a tutor can teach or a student can be in.
	MinLevel = 1
	// MaxLevel is the highest supported level.
	MaxLevel = 6
	// MaxPrice is the highest hourly rate a price range may reach.
	MaxPrice = 100_000
)

var (
	// ErrInvalidLevel is returned when a level is malformed or outside MinLevel..MaxLevel.
	ErrInvalidLevel = errors.New("roster: invalid level")
	// ErrInvalidPrice is returned when a price is malformed or outside 1..MaxPrice.
	ErrInvalidPrice = errors.New("roster: invalid price")
)

// rangePattern accepts "3", "1-6" and "1 - 6".
var rangePattern = regexp.MustCompile(`^\s*(\d+)\s*(?:-\s*(\d+))?\s*$`)

// bounds is the closed integer interval shared by Level and Price.
type bounds struct {
	min int
	max int
}

func parseBounds(value string) (bounds, bool) {
	groups := rangePattern.FindStringSubmatch(value)
	if groups == nil {
		return bounds{}, false
	}
	lo, err := strconv.Atoi(groups[1])
	if err != nil {
		return bounds{}, false
	}
	hi := lo
	if groups[2] != "" {
		hi, err = strconv.Atoi(groups[2])
		if err != nil {
			return bounds{}, false
		}
	}
	if lo > hi {
		return bounds{}, false
	}
	return bounds{min: lo, max: hi}, true
}

func (b bounds) includes(other bounds) bool {
	return b.min <= other.min && other.max <= b.max
}

func (b bounds) intersects(other bounds) bool {
	return b.min <= other.max && other.min <= b.max
}

func (b bounds) contains(value int) bool {
	return b.min <= value && value <= b.max
}

// mean is the truncated midpoint of the interval.
func (b bounds) mean() int {
	return b.min + (b.max-b.min)/2
}

func (b bounds) String() string {
	if b.min == b.max {
		return strconv.Itoa(b.min)
	}
	return fmt.Sprintf("%d-%d", b.min, b.max)
}

// Level is a closed range of study levels, for example "2-5" for a tutor or "3" for a student.
type Level struct {
	b bounds
}

// NewLevel constructs a level range after checking the domain bounds.
func NewLevel(min, max int) (Level, error) {
	if min < MinLevel || max > MaxLevel || min > max {
		return Level{}, fmt.Errorf("%w: %d-%d must lie within %d-%d", ErrInvalidLevel, min, max, MinLevel, MaxLevel)
	}
	return Level{b: bounds{min: min, max: max}}, nil
}

// ParseLevel parses a single level ("3") or a dashed range ("1-6").
func ParseLevel(value string) (Level, error) {
	b, ok := parseBounds(value)
	if !ok {
		return Level{}, fmt.Errorf("%w: %q, use a number or a range such as 1-6", ErrInvalidLevel, value)
	}
	return NewLevel(b.min, b.max)
}

// MustParseLevel is ParseLevel for literals known to be valid.
func MustParseLevel(value string) Level {
	level, err := ParseLevel(value)
	if err != nil {
		panic(err)
	}
	return level
}

// Min returns the lower bound.
func (l Level) Min() int { return l.b.min }

// Max returns the upper bound.
func (l Level) Max() int { return l.b.max }

// IsSingle reports whether the range collapses to one level.
func (l Level) IsSingle() bool { return l.b.min == l.b.max }

// IsZero reports whether l is the zero value rather than a parsed level.
func (l Level) IsZero() bool { return l.b == bounds{} }

// Includes reports whether other lies entirely inside l.
func (l Level) Includes(other Level) bool { return l.b.includes(other.b) }

// Intersects reports whether l and other share at least one level.
func (l Level) Intersects(other Level) bool { return l.b.intersects(other.b) }

// IncludesValue reports whether the single level value lies within l.
func (l Level) IncludesValue(value int) bool { return l.b.contains(value) }

// Average returns the truncated mean of the bounds.
func (l Level) Average() int { return l.b.mean() }

func (l Level) String() string { return l.b.String() }

// Price is a closed range of hourly rates. Sessions always carry a single-value price.
type Price struct {
	b bounds
}

// NewPrice constructs a price range; both bounds must lie within 1..MaxPrice.
func NewPrice(min, max int) (Price, error) {
	if min <= 0 || max > MaxPrice || min > max {
		return Price{}, fmt.Errorf("%w: %d-%d must lie within 1-%d with min <= max", ErrInvalidPrice, min, max, MaxPrice)
	}
	return Price{b: bounds{min: min, max: max}}, nil
}

// SinglePrice constructs a price that holds exactly one value.
func SinglePrice(value int) (Price, error) {
	return NewPrice(value, value)
}

// ParsePrice parses a single price ("40") or a dashed range ("30-45").
func ParsePrice(value string) (Price, error) {
	b, ok := parseBounds(value)
	if !ok {
		return Price{}, fmt.Errorf("%w: %q, use a positive number or a range such as 30-45", ErrInvalidPrice, value)
	}
	return NewPrice(b.min, b.max)
}

// MustParsePrice is ParsePrice for literals known to be valid.
func MustParsePrice(value string) Price {
	price, err := ParsePrice(value)
	if err != nil {
		panic(err)
	}
	return price
}

// Min returns the lower bound.
func (p Price) Min() int { return p.b.min }

// Max returns the upper bound.
func (p Price) Max() int { return p.b.max }

// IsSingle reports whether the range collapses to one value.
func (p Price) IsSingle() bool { return p.b.min == p.b.max }

// IsZero reports whether p is the zero value rather than a parsed price.
func (p Price) IsZero() bool { return p.b == bounds{} }

// Includes reports whether other lies entirely inside p.
func (p Price) Includes(other Price) bool { return p.b.includes(other.b) }

// Overlaps reports whether p and other share at least one value. It is symmetric.
func (p Price) Overlaps(other Price) bool { return p.b.intersects(other.b) }

// IncludesValue reports whether value lies within p.
func (p Price) IncludesValue(value int) bool { return p.b.contains(value) }

// Average returns the truncated mean of the bounds, e.g. 30 for "20-41".
func (p Price) Average() int { return p.b.mean() }

func (p Price) String() string { return p.b.String() }
