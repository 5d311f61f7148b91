package testtool

import (
	"errors"
	"fmt"
	"path/filepath"
	"reflect"
	"regexp"
	"runtime"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// Assert fails the test if the condition is false.
func Assert(tb testing.TB, condition bool, v ...interface{}) {
	tb.Helper()
	if !condition {
		_, file, line, _ := runtime.Caller(1)
		msg := ""
		if len(v) > 0 {
			msg, v = ": "+v[0].(string), v[1:]
		}
		fmt.Printf("\033[31m%s:%d"+msg+"\033[39m\n\n", append([]interface{}{filepath.Base(file), line}, v...)...)
		tb.FailNow()
	}
}

// Pattern fails the test if the input string does not match the supplied
// regular expression.
func Pattern(tb testing.TB, pattern string, in string) {
	tb.Helper()
	ptn, _ := regexp.Compile(pattern)
	if !ptn.MatchString(in) {
		_, file, line, _ := runtime.Caller(1)
		fmt.Printf("\033[31m%s:%d:\n\n\tptn: %#v\n\n\tgot: %#v\033[39m\n\n",
			filepath.Base(file), line, pattern, in)
		tb.FailNow()
	}
}

// OK fails the test if an err is not nil.
func OK(tb testing.TB, err error) {
	tb.Helper()
	if err != nil {
		_, file, line, _ := runtime.Caller(1)
		fmt.Printf("\033[31m%s:%d: unexpected error: %s\033[39m\n\n", filepath.Base(file), line, err.Error())
		tb.FailNow()
	}
}

// Equals fails the test if exp is not equal to act. The failure message
// includes a diff, which makes long formatter outputs readable.
func Equals(tb testing.TB, exp, act interface{}, opts ...cmp.Option) {
	tb.Helper()
	if len(opts) == 0 && reflect.DeepEqual(exp, act) {
		return
	}
	if diff := safeDiff(exp, act, opts...); diff != "" {
		_, file, line, _ := runtime.Caller(1)
		fmt.Printf("\033[31m%s:%d:\n\n\texp: %#v\n\n\tgot: %#v\n\n\tdiff (-exp +got):\n%s\033[39m\n\n",
			filepath.Base(file), line, exp, act, diff)
		tb.FailNow()
	}
}

// safeDiff is cmp.Diff for values that may hold unexported fields, which
// cmp refuses to look at without an option.
func safeDiff(exp, act interface{}, opts ...cmp.Option) (diff string) {
	defer func() {
		if r := recover(); r != nil {
			diff = fmt.Sprintf("\t(no diff: %v)", r)
		}
	}()
	return cmp.Diff(exp, act, opts...)
}

// ErrIs fails the test if err does not match target according to
// errors.Is.
func ErrIs(tb testing.TB, err error, target error) {
	tb.Helper()
	if !errors.Is(err, target) {
		_, file, line, _ := runtime.Caller(1)
		fmt.Printf("\033[31m%s:%d:\n\n\texp: error matching %v\n\n\tgot: %v\033[39m\n\n",
			filepath.Base(file), line, target, err)
		tb.FailNow()
	}
}
