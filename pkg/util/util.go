package util

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/exp/constraints"
)

// error

type Error struct {
	orig error
	msg  string
	code error
}

func (e *Error) Error() string {
	if e.orig != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.orig)
	}

	return e.msg
}

func (e *Error) Unwrap() error {
	return e.orig
}

func WrapErrorf(orig error, code error, format string, a ...interface{}) error {
	return &Error{
		code: code,
		orig: orig,
		msg:  fmt.Sprintf(format, a...),
	}
}

func (e *Error) Code() error {
	return e.code
}

// ErrorCode returns the code of err if it (or any wrapped error) is an *Error.
func ErrorCode(err error) error {
	var ierr *Error
	if errors.As(err, &ierr) {
		return ierr.Code()
	}
	return nil
}

var (
	ErrInternalServerError = errors.New("internal Server Error")
	ErrNotFound            = errors.New("your requested Item is not found")
	ErrConflict            = errors.New("your Item already exist")
	ErrBadParamInput       = errors.New("given Param is not valid")
)

var MessageInternalServerError string = "internal server error"

func DegreeToRadians(angle float64) float64 {
	return angle * (math.Pi / 180.0)
}

func RadiansToDegree(rad float64) float64 {
	return 180.0 * rad / math.Pi
}

func StringToFloat64(str string) (float64, error) {
	val, err := strconv.ParseFloat(strings.TrimSpace(str), 64)
	if err != nil {
		return 0, err
	}
	return val, nil
}

func RoundFloat(val float64, precision uint) float64 {
	ratio := math.Pow(10, float64(precision))
	return math.Round(val*ratio) / ratio
}

func ReverseG[T any](arr []T) []T {
	copyArr := make([]T, len(arr)) // should do on the copy )
	copy(copyArr, arr)
	for i, j := 0, len(copyArr)-1; i < j; i, j = i+1, j-1 {
		copyArr[i], copyArr[j] = copyArr[j], copyArr[i]
	}
	return copyArr
}

func MinInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Mean. arithmetic mean, 0 for an empty slice
func Mean[T constraints.Float](vals []T) T {
	if len(vals) == 0 {
		return 0
	}
	var sum T
	for _, v := range vals {
		sum += v
	}
	return sum / T(len(vals))
}

// PopulationStd. population standard deviation (divides by n), 0 for an empty slice
func PopulationStd[T constraints.Float](vals []T) T {
	if len(vals) == 0 {
		return 0
	}
	mean := Mean(vals)
	var sq T
	for _, v := range vals {
		d := v - mean
		sq += d * d
	}
	return T(math.Sqrt(float64(sq / T(len(vals)))))
}

func MinMax[T constraints.Ordered](vals []T) (T, T) {
	var min, max T
	if len(vals) == 0 {
		return min, max
	}
	min, max = vals[0], vals[0]
	for _, v := range vals[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max
}

// NormalizeID. "123.0" -> "123". ids that went through a float column keep their integer text.
func NormalizeID(id string) string {
	id = strings.TrimSpace(id)
	if !strings.Contains(id, ".") {
		return id
	}
	f, err := strconv.ParseFloat(id, 64)
	if err != nil || f != math.Trunc(f) || math.Abs(f) > 1<<53 {
		return id
	}
	return strconv.FormatInt(int64(f), 10)
}
