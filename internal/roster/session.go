package roster

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// MaxSessionDuration bounds a single tutoring session.
const MaxSessionDuration = 24 * time.Hour

var (
	// ErrInvalidSession is the umbrella error for malformed session values.
	ErrInvalidSession = errors.New("roster: invalid session")
	// ErrInvalidDuration is returned when a duration is not within (0, 24h].
	ErrInvalidDuration = fmt.Errorf("%w: duration must be between 1 minute and 24 hours", ErrInvalidSession)
	// ErrPriceNotSingle is returned when a session price is given as a range.
	ErrPriceNotSingle = fmt.Errorf("%w: session price must be a single value, not a range", ErrInvalidSession)
)

// Session is the agreed weekly slot of a matched pair. It is comparable with ==.
type Session struct {
	day      time.Weekday
	start    int // minutes since midnight
	duration time.Duration
	subject  Subject
	price    Price
}

// NewSession validates and builds a session value.
func NewSession(day time.Weekday, start time.Duration, duration time.Duration, subject Subject, price Price) (Session, error) {
	if day < time.Sunday || day > time.Saturday {
		return Session{}, fmt.Errorf("%w: unknown day %d", ErrInvalidSession, day)
	}
	if start < 0 || start >= 24*time.Hour || start%time.Minute != 0 {
		return Session{}, fmt.Errorf("%w: start time must be a whole minute within the day", ErrInvalidSession)
	}
	if duration <= 0 || duration > MaxSessionDuration || duration%time.Minute != 0 {
		return Session{}, ErrInvalidDuration
	}
	if subject == "" {
		return Session{}, fmt.Errorf("%w: subject is required", ErrInvalidSession)
	}
	if price.IsZero() {
		return Session{}, fmt.Errorf("%w: price is required", ErrInvalidSession)
	}
	if !price.IsSingle() {
		return Session{}, ErrPriceNotSingle
	}
	return Session{
		day:      day,
		start:    int(start / time.Minute),
		duration: duration,
		subject:  subject,
		price:    price,
	}, nil
}

// Day returns the weekday of the session.
func (s Session) Day() time.Weekday { return s.day }

// Start returns the start offset from midnight.
func (s Session) Start() time.Duration { return time.Duration(s.start) * time.Minute }

// Clock formats the start time as HH:MM.
func (s Session) Clock() string {
	return fmt.Sprintf("%02d:%02d", s.start/60, s.start%60)
}

// Duration returns the session length.
func (s Session) Duration() time.Duration { return s.duration }

// Subject returns the taught subject.
func (s Session) Subject() Subject { return s.subject }

// Price returns the single-value session price.
func (s Session) Price() Price { return s.price }

func (s Session) String() string {
	return fmt.Sprintf("%s | %s | %s | %s | %s",
		strings.ToUpper(s.day.String()), s.Clock(), formatDuration(s.duration), s.subject, s.price)
}

func formatDuration(d time.Duration) string {
	hours := int(d / time.Hour)
	minutes := int((d % time.Hour) / time.Minute)
	if hours > 0 {
		return fmt.Sprintf("%dh %02dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}

// ParseWeekday accepts a full English day name in any case.
func ParseWeekday(value string) (time.Weekday, error) {
	trimmed := strings.TrimSpace(value)
	for day := time.Sunday; day <= time.Saturday; day++ {
		if strings.EqualFold(day.String(), trimmed) {
			return day, nil
		}
	}
	return 0, fmt.Errorf("%w: invalid day %q, use a full day name such as Monday", ErrInvalidSession, value)
}

// ParseClock parses a 24-hour HH:MM start time into an offset from midnight.
func ParseClock(value string) (time.Duration, error) {
	parsed, err := time.Parse("15:04", strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("%w: invalid time %q, use HH:MM such as 15:30", ErrInvalidSession, value)
	}
	return time.Duration(parsed.Hour())*time.Hour + time.Duration(parsed.Minute())*time.Minute, nil
}

var durationPattern = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)

// ParseDuration parses an HH:MM session length such as 01:30.
func ParseDuration(value string) (time.Duration, error) {
	groups := durationPattern.FindStringSubmatch(strings.TrimSpace(value))
	if groups == nil {
		return 0, fmt.Errorf("%w: invalid duration %q, use HH:MM such as 01:30", ErrInvalidSession, value)
	}
	hours, _ := strconv.Atoi(groups[1])
	minutes, _ := strconv.Atoi(groups[2])
	if minutes >= 60 {
		return 0, fmt.Errorf("%w: minutes must be between 00 and 59", ErrInvalidSession)
	}
	d := time.Duration(hours)*time.Hour + time.Duration(minutes)*time.Minute
	if d <= 0 || d > MaxSessionDuration {
		return 0, ErrInvalidDuration
	}
	return d, nil
}
