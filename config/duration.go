package config

import (
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/pkg/errors"
)

// humanDurationPattern accepts values such as "7d", "2 days", "1.5h" or "120".
var humanDurationPattern = regexp.MustCompile(`^(-?\d*\.?\d+) *([a-z]*)$`)

var humanDurationUnits = map[string]time.Duration{
	"":             time.Millisecond,
	"ms":           time.Millisecond,
	"msec":         time.Millisecond,
	"msecs":        time.Millisecond,
	"millisecond":  time.Millisecond,
	"milliseconds": time.Millisecond,
	"s":            time.Second,
	"sec":          time.Second,
	"secs":         time.Second,
	"second":       time.Second,
	"seconds":      time.Second,
	"m":            time.Minute,
	"min":          time.Minute,
	"mins":         time.Minute,
	"minute":       time.Minute,
	"minutes":      time.Minute,
	"h":            time.Hour,
	"hr":           time.Hour,
	"hrs":          time.Hour,
	"hour":         time.Hour,
	"hours":        time.Hour,
	"d":            24 * time.Hour,
	"day":          24 * time.Hour,
	"days":         24 * time.Hour,
	"w":            7 * 24 * time.Hour,
	"week":         7 * 24 * time.Hour,
	"weeks":        7 * 24 * time.Hour,
	"y":            time.Duration(365.25 * float64(24*time.Hour)),
	"yr":           time.Duration(365.25 * float64(24*time.Hour)),
	"yrs":          time.Duration(365.25 * float64(24*time.Hour)),
	"year":         time.Duration(365.25 * float64(24*time.Hour)),
	"years":        time.Duration(365.25 * float64(24*time.Hour)),
}

// ParseDuration accepts Go duration strings and the single-unit form used by
// JWT_EXPIRES_IN ("7d", "12 hours"). A bare number counts milliseconds.
func ParseDuration(s string) (time.Duration, error) {
	trimmed := strings.TrimSpace(s)
	if d, err := time.ParseDuration(trimmed); err == nil {
		return d, nil
	}

	match := humanDurationPattern.FindStringSubmatch(strings.ToLower(trimmed))
	if match == nil {
		return 0, errors.Errorf("invalid duration %q", s)
	}

	unit, ok := humanDurationUnits[match[2]]
	if !ok {
		return 0, errors.Errorf("unknown unit %q in duration %q", match[2], s)
	}

	value, err := strconv.ParseFloat(match[1], 64)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid duration %q", s)
	}

	return time.Duration(value * float64(unit)), nil
}

// stringToDurationHookFunc decodes strings into time.Duration with ParseDuration.
func stringToDurationHookFunc() mapstructure.DecodeHookFunc {
	return func(from reflect.Type, to reflect.Type, data any) (any, error) {
		if from.Kind() != reflect.String || to != reflect.TypeFor[time.Duration]() {
			return data, nil
		}

		return ParseDuration(reflect.ValueOf(data).String())
	}
}
