package util

import (
	"errors"
	"strconv"

	"github.com/pgup/dispatch/errs"
)

type Signed interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64
}

type Unsigned interface {
	~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

type Float interface {
	~float32 | ~float64
}

func parseSigned[T Signed](bits int) func(string) (T, error) {
	return func(s string) (T, error) {
		v, err := strconv.ParseInt(s, 10, bits)
		if err != nil {
			if errors.Is(err, strconv.ErrRange) {
				return 0, errs.ErrParseOverflow.WithArgs(s)
			}
			return 0, errs.ErrParseInt.WithArgs(s)
		}
		return T(v), nil
	}
}

func parseUnsigned[T Unsigned](bits int) func(string) (T, error) {
	return func(s string) (T, error) {
		v, err := strconv.ParseUint(s, 10, bits)
		if err != nil {
			if errors.Is(err, strconv.ErrRange) {
				return 0, errs.ErrParseOverflow.WithArgs(s)
			}
			return 0, errs.ErrParseUint.WithArgs(s)
		}
		return T(v), nil
	}
}

func parseFloat[T Float](bits int) func(string) (T, error) {
	return func(s string) (T, error) {
		v, err := strconv.ParseFloat(s, bits)
		if err != nil {
			if errors.Is(err, strconv.ErrRange) {
				return 0, errs.ErrParseOverflow.WithArgs(s)
			}
			return 0, errs.ErrParseFloat.WithArgs(s)
		}
		return T(v), nil
	}
}
