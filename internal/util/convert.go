// Package util holds the built-in value converters and small terminal helpers
// used by the dispatch engine.
package util

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/pgup/dispatch/errs"
	"github.com/pgup/dispatch/types"
)

// Convert assigns tokens to the variable target points to. Scalars take the
// last token, slices take every token in order, maps take every keyed token.
// No tokens leaves the target untouched.
func Convert(tokens []types.Token, target any) error {
	switch t := target.(type) {
	case *string:
		return scalar(tokens, t, parseString)
	case *[]string:
		return slice(tokens, t, parseString)
	case *int:
		return scalar(tokens, t, parseSigned[int](strconv.IntSize))
	case *[]int:
		return slice(tokens, t, parseSigned[int](strconv.IntSize))
	case *int64:
		return scalar(tokens, t, parseSigned[int64](64))
	case *[]int64:
		return slice(tokens, t, parseSigned[int64](64))
	case *int32:
		return scalar(tokens, t, parseSigned[int32](32))
	case *[]int32:
		return slice(tokens, t, parseSigned[int32](32))
	case *int16:
		return scalar(tokens, t, parseSigned[int16](16))
	case *[]int16:
		return slice(tokens, t, parseSigned[int16](16))
	case *int8:
		return scalar(tokens, t, parseSigned[int8](8))
	case *[]int8:
		return slice(tokens, t, parseSigned[int8](8))
	case *uint:
		return scalar(tokens, t, parseUnsigned[uint](strconv.IntSize))
	case *[]uint:
		return slice(tokens, t, parseUnsigned[uint](strconv.IntSize))
	case *uint64:
		return scalar(tokens, t, parseUnsigned[uint64](64))
	case *[]uint64:
		return slice(tokens, t, parseUnsigned[uint64](64))
	case *uint32:
		return scalar(tokens, t, parseUnsigned[uint32](32))
	case *[]uint32:
		return slice(tokens, t, parseUnsigned[uint32](32))
	case *uint16:
		return scalar(tokens, t, parseUnsigned[uint16](16))
	case *[]uint16:
		return slice(tokens, t, parseUnsigned[uint16](16))
	case *uint8:
		return scalar(tokens, t, parseUnsigned[uint8](8))
	case *[]uint8:
		return slice(tokens, t, parseUnsigned[uint8](8))
	case *float64:
		return scalar(tokens, t, parseFloat[float64](64))
	case *[]float64:
		return slice(tokens, t, parseFloat[float64](64))
	case *float32:
		return scalar(tokens, t, parseFloat[float32](32))
	case *[]float32:
		return slice(tokens, t, parseFloat[float32](32))
	case *bool:
		return scalar(tokens, t, parseBool)
	case *[]bool:
		return slice(tokens, t, parseBool)
	case *time.Duration:
		return scalar(tokens, t, ParseDuration)
	case *[]time.Duration:
		return slice(tokens, t, ParseDuration)
	case *time.Time:
		return scalar(tokens, t, parseTime)
	case *[]time.Time:
		return slice(tokens, t, parseTime)
	case *types.OptionMap:
		for _, token := range tokens {
			if token.Key == "" {
				return errs.ErrParseMissingKey
			}
			t.Set(token.Key, token.Value)
		}
		return nil
	case *map[string]string:
		if len(tokens) == 0 {
			return nil
		}
		if *t == nil {
			*t = make(map[string]string, len(tokens))
		}
		for _, token := range tokens {
			if token.Key == "" {
				return errs.ErrParseMissingKey
			}
			(*t)[token.Key] = token.Value
		}
		return nil
	default:
		return errs.ErrUnsupportedType.WithArgs(fmt.Sprintf("%T", target), "")
	}
}

// Supported reports whether Convert handles target.
func Supported(target any) bool {
	switch target.(type) {
	case *string, *[]string,
		*int, *[]int, *int64, *[]int64, *int32, *[]int32, *int16, *[]int16, *int8, *[]int8,
		*uint, *[]uint, *uint64, *[]uint64, *uint32, *[]uint32, *uint16, *[]uint16, *uint8, *[]uint8,
		*float64, *[]float64, *float32, *[]float32,
		*bool, *[]bool,
		*time.Duration, *[]time.Duration, *time.Time, *[]time.Time,
		*types.OptionMap, *map[string]string:
		return true
	default:
		return false
	}
}

// CardinalityOf infers the option cardinality from the type target points
// to: bool is a Flag, slices are a Collection, maps are a Map and everything
// else is a Scalar. target must be a non-nil pointer.
func CardinalityOf(target any, name string) (types.Cardinality, error) {
	v := reflect.ValueOf(target)
	if !v.IsValid() || v.Kind() != reflect.Ptr || v.IsNil() {
		return types.Scalar, errs.ErrNilTarget.WithArgs(name)
	}

	if _, ok := target.(*types.OptionMap); ok {
		return types.Map, nil
	}

	switch v.Elem().Kind() {
	case reflect.Bool:
		return types.Flag, nil
	case reflect.Slice, reflect.Array:
		return types.Collection, nil
	case reflect.Map:
		return types.Map, nil
	default:
		return types.Scalar, nil
	}
}

// ParseDuration accepts a bare number of seconds, a Go duration expression
// such as 1h30m, or hh:mm:ss. The result must be positive.
func ParseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)

	var d time.Duration
	switch {
	case isDigits(s):
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil || n > math.MaxInt64/int64(time.Second) {
			return 0, errs.ErrParseOverflow.WithArgs(s)
		}
		d = time.Duration(n) * time.Second
	case strings.Count(s, ":") == 2:
		clock, err := parseClock(s)
		if err != nil {
			return 0, err
		}
		d = clock
	default:
		parsed, err := time.ParseDuration(s)
		if err != nil {
			return 0, errs.ErrParseDuration.WithArgs(s)
		}
		d = parsed
	}

	if d <= 0 {
		return 0, errs.ErrParseNonPositiveDuration.WithArgs(s)
	}

	return d, nil
}

func parseClock(s string) (time.Duration, error) {
	parts := strings.Split(s, ":")
	limits := []int64{math.MaxInt32, 59, 59}
	units := []time.Duration{time.Hour, time.Minute, time.Second}

	var d time.Duration
	for i, part := range parts {
		if !isDigits(part) {
			return 0, errs.ErrParseDuration.WithArgs(s)
		}
		n, err := strconv.ParseInt(part, 10, 64)
		if err != nil || n > limits[i] {
			return 0, errs.ErrParseDuration.WithArgs(s)
		}
		d += time.Duration(n) * units[i]
	}

	return d, nil
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

func scalar[T any](tokens []types.Token, target *T, parse func(string) (T, error)) error {
	if len(tokens) == 0 {
		return nil
	}

	v, err := parse(tokens[len(tokens)-1].Value)
	if err != nil {
		return err
	}
	*target = v

	return nil
}

func slice[T any](tokens []types.Token, target *[]T, parse func(string) (T, error)) error {
	if len(tokens) == 0 {
		return nil
	}

	values := make([]T, 0, len(tokens))
	for _, token := range tokens {
		v, err := parse(token.Value)
		if err != nil {
			return err
		}
		values = append(values, v)
	}
	*target = values

	return nil
}

func parseString(s string) (string, error) {
	return s, nil
}

// parseBool treats an empty value as true so a bare flag sets its target.
func parseBool(s string) (bool, error) {
	if s == "" {
		return true, nil
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return false, errs.ErrParseBool.WithArgs(s)
	}

	return v, nil
}

func parseTime(s string) (time.Time, error) {
	v, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return time.Time{}, errs.ErrParseTime.WithArgs(s)
	}

	return v, nil
}
