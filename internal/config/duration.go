package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Duration is a note or gap length in the config file, written as a Go
// duration ("299ms", "1s") or a quoted count of milliseconds ("299").
type Duration time.Duration

// ParseDuration parses a note length. Negative lengths are rejected.
func ParseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)

	var d time.Duration
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		d = time.Duration(ms) * time.Millisecond
	} else {
		d, err = time.ParseDuration(s)
		if err != nil {
			return 0, fmt.Errorf("invalid length %q: want milliseconds or a duration like 299ms or 1s", s)
		}
	}

	if d < 0 {
		return 0, fmt.Errorf("invalid length %q: must not be negative", s)
	}
	return d, nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Duration returns the length as a time.Duration.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}
