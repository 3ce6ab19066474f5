package flag

import (
	"math"
	"strconv"
	"strings"
)

// Values are converted the way C's atoi/atof read them: leading whitespace is
// skipped, the longest valid prefix is used, anything after it is ignored and
// a token with no valid prefix reads as zero. strconv rejects the whole token
// on trailing garbage, so the prefix is cut out here first.

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func skipSpace(s string) string {
	i := 0
	for i < len(s) && isSpace(s[i]) {
		i++
	}
	return s[i:]
}

// atoi reads a base-10 integer prefix. Overflow wraps.
func atoi(s string) int64 {
	s = skipSpace(s)
	neg := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}
	var n uint64
	for i := 0; i < len(s) && isDigit(s[i]); i++ {
		n = n*10 + uint64(s[i]-'0')
	}
	if neg {
		n = -n
	}
	return int64(n)
}

// atof reads a decimal floating-point prefix, or one of inf, infinity and nan
// in any case. Out-of-range values become ±Inf or ±0.
func atof(s string) float64 {
	s = skipSpace(s)
	sign, body := 1, s
	if body != "" && (body[0] == '+' || body[0] == '-') {
		if body[0] == '-' {
			sign = -1
		}
		body = body[1:]
	}

	lower := strings.ToLower(body)
	switch {
	case strings.HasPrefix(lower, "inf"):
		return math.Inf(sign)
	case strings.HasPrefix(lower, "nan"):
		return math.NaN()
	}

	end := floatPrefix(body)
	if end == 0 {
		return 0
	}
	f, err := strconv.ParseFloat(body[:end], 64)
	if err != nil && !isRange(err) {
		return 0
	}
	if sign < 0 {
		f = -f
	}
	return f
}

// floatPrefix returns the length of the longest prefix of s of the form
// digits [ . digits ] [ (e|E) [sign] digits ] holding at least one mantissa
// digit.
func floatPrefix(s string) int {
	i, digits := 0, 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
			digits++
		}
	}
	if digits == 0 {
		return 0
	}

	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		if j < len(s) && isDigit(s[j]) {
			for j < len(s) && isDigit(s[j]) {
				j++
			}
			i = j
		}
	}
	return i
}

func isRange(err error) bool {
	numErr, ok := err.(*strconv.NumError)
	return ok && numErr.Err == strconv.ErrRange
}
