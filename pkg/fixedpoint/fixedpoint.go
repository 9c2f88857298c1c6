// Package fixedpoint parses engineering-notation numeric literals into
// fixed-point integers.
//
// A literal is a signed decimal number that may carry a decimal point, a
// single-character engineering multiplier, and/or a scientific exponent:
//
//	[sign] digits [.digits] [multiplier] [ (e|E) [sign] digits ]
//
// Recognized multipliers and their power-of-ten exponents:
//
//	f  -15    p  -12    n  -9    u/µ  -6    m  -3    c  -2    d  -1
//	h    2    k    3    M   6    G     9    T  12    P  15
//
// Parse returns the value as an integer scaled by 10^baseExp, so
// Parse("1.5k", 0) yields 1500 and Parse("1.5", -3) yields 1500 (a milli
// count). Digits below the requested scale truncate toward zero. The
// final magnitude must fit a signed 32-bit integer; anything larger is
// an ErrOverflow, never a wrapped or saturated result.
package fixedpoint

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

var (
	// ErrEmpty means the input ended before any digit was seen.
	ErrEmpty = errors.New("no digits in literal")

	// ErrSyntax means the literal is malformed (bad leading character,
	// exponent marker without digits, bad exponent substring).
	ErrSyntax = errors.New("malformed literal")

	// ErrOverflow means the scaled magnitude does not fit in 32 bits.
	ErrOverflow = errors.New("literal exceeds 32-bit fixed-point range")

	// ErrTrailing means non-numeric text follows the literal and
	// AllowTrailingUnit was not set.
	ErrTrailing = errors.New("trailing characters after literal")
)

// pow10 holds the scaling factors for digit positions 0 through 9. A
// digit at position 9 may be at most 2: 3e9 already exceeds 2^31-1.
var pow10 = [10]int64{
	1,
	10,
	100,
	1_000,
	10_000,
	100_000,
	1_000_000,
	10_000_000,
	100_000_000,
	1_000_000_000,
}

// multiplierExp maps an engineering multiplier byte to its power-of-ten
// exponent. The decimal point is deliberately absent: it switches the
// scanner into fractional digits instead of scaling the result.
func multiplierExp(c byte) (exp int, ok bool) {
	switch c {
	case 'f':
		return -15, true
	case 'p':
		return -12, true
	case 'n':
		return -9, true
	case 'u':
		return -6, true
	case 'm':
		return -3, true
	case 'c':
		return -2, true
	case 'd':
		return -1, true
	case 'h':
		return 2, true
	case 'k':
		return 3, true
	case 'M':
		return 6, true
	case 'G':
		return 9, true
	case 'T':
		return 12, true
	case 'P':
		return 15, true
	default:
		return 0, false
	}
}

// Options configures Parse.
type Options struct {
	// AllowTrailingUnit tolerates non-numeric text after a complete
	// number ("10sec" parses as 10). Default: false, such text is an
	// ErrTrailing.
	AllowTrailingUnit bool

	// Limit bounds how many bytes of the input are examined. 0 means
	// the whole string.
	Limit int
}

// Option mutates Options.
type Option func(*Options)

// AllowTrailingUnit tolerates non-numeric text after a complete number.
func AllowTrailingUnit() Option {
	return func(o *Options) {
		o.AllowTrailingUnit = true
	}
}

// Limit bounds how many bytes of the input are examined. Values below
// zero are treated as zero (no limit).
func Limit(n int) Option {
	return func(o *Options) {
		if n < 0 {
			n = 0
		}

		o.Limit = n
	}
}

func applyOptions(opts []Option) Options {
	var o Options
	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// Parse scans one numeric literal and returns it scaled by 10^baseExp.
func Parse(s string, baseExp int, opts ...Option) (int32, error) {
	o := applyOptions(opts)
	if o.Limit > 0 && o.Limit < len(s) {
		s = s[:o.Limit]
	}

	p := parser{
		src:           s,
		exp:           baseExp,
		allowTrailing: o.AllowTrailingUnit,
	}

	return p.run()
}

// state enumerates the scanner's positions within a literal.
type state int

const (
	// Before the number: space and signs.
	waitStart state = iota
	// Digits of the integer part; a multiplier, '.', or exponent ends it.
	waitMantissa
	// Digits after the decimal point.
	waitFraction
	// A multiplier has been consumed; the number is complete.
	afterMultiplier
)

type parser struct {
	src           string
	pos           int
	exp           int
	allowTrailing bool

	digits []byte
	neg    bool
}

func (p *parser) run() (int32, error) {
	st := waitStart

scan:
	for p.pos < len(p.src) {
		c := p.src[p.pos]

		switch st {
		case waitStart:
			switch {
			case c == ' ' || c == '\t':
				p.pos++
			case c == '+':
				p.pos++
			case c == '-':
				p.neg = !p.neg
				p.pos++
			case isDigit(c):
				st = waitMantissa
			case c == '.':
				p.pos++
				st = waitFraction
			default:
				return 0, fmt.Errorf("%w: unexpected %q at offset %d", ErrSyntax, rune(c), p.pos)
			}

		case waitMantissa:
			switch {
			case isDigit(c):
				p.digits = append(p.digits, c)
				p.pos++
			case c == '.':
				p.pos++
				st = waitFraction
			case p.startsExponent():
				err := p.consumeExponent()
				if err != nil {
					return 0, err
				}

				break scan
			default:
				mult, width, ok := p.multiplierAt()
				if !ok {
					err := p.trailing()
					if err != nil {
						return 0, err
					}

					break scan
				}

				p.exp += mult
				p.pos += width
				st = afterMultiplier
			}

		case waitFraction:
			switch {
			case isDigit(c):
				p.digits = append(p.digits, c)
				p.exp--
				p.pos++
			case p.startsExponent():
				err := p.consumeExponent()
				if err != nil {
					return 0, err
				}

				break scan
			default:
				// A second '.' is not in the multiplier table, so it
				// ends the number like any other stray byte.
				mult, width, ok := p.multiplierAt()
				if !ok {
					err := p.trailing()
					if err != nil {
						return 0, err
					}

					break scan
				}

				p.exp += mult
				p.pos += width
				st = afterMultiplier
			}

		case afterMultiplier:
			err := p.trailing()
			if err != nil {
				return 0, err
			}

			break scan
		}
	}

	if st == waitStart {
		return 0, fmt.Errorf("%w: %q", ErrEmpty, p.src)
	}

	return p.finalize()
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// multiplierAt recognizes a multiplier at the current position. The
// micro sign (U+00B5) is the only multi-byte spelling accepted.
func (p *parser) multiplierAt() (exp, width int, ok bool) {
	c := p.src[p.pos]
	if c == 0xC2 && p.pos+1 < len(p.src) && p.src[p.pos+1] == 0xB5 {
		return -6, 2, true
	}

	exp, ok = multiplierExp(c)

	return exp, 1, ok
}

// startsExponent reports whether the current position begins a
// scientific exponent: 'e' or 'E' followed by a digit or a sign. A bare
// trailing 'e' is ordinary text, not an exponent marker.
func (p *parser) startsExponent() bool {
	c := p.src[p.pos]
	if c != 'e' && c != 'E' {
		return false
	}

	if p.pos+1 >= len(p.src) {
		return false
	}

	next := p.src[p.pos+1]

	return isDigit(next) || next == '+' || next == '-'
}

// consumeExponent parses the exponent substring with ordinary integer
// parsing and folds it into the accumulated decimal exponent. The
// number is complete afterwards; only the trailing rule remains.
func (p *parser) consumeExponent() error {
	start := p.pos + 1

	end := start
	if end < len(p.src) && (p.src[end] == '+' || p.src[end] == '-') {
		end++
	}

	for end < len(p.src) && isDigit(p.src[end]) {
		end++
	}

	v, err := strconv.Atoi(p.src[start:end])
	if err != nil {
		return fmt.Errorf("%w: exponent %q: %v", ErrSyntax, p.src[start:end], err)
	}

	p.exp += v
	p.pos = end

	return p.trailing()
}

// trailing applies the trailing-text rule at the current position.
func (p *parser) trailing() error {
	if p.pos < len(p.src) && !p.allowTrailing {
		return fmt.Errorf("%w: %q at offset %d", ErrTrailing, p.src[p.pos:], p.pos)
	}

	return nil
}

// finalize walks the captured digits from least to most significant,
// scaling each by its decimal position. Positions below zero sit under
// the requested scale and truncate toward zero; position 9 tolerates
// digits up to 2; position 10 and above cannot fit regardless of digit.
func (p *parser) finalize() (int32, error) {
	if len(p.digits) == 0 {
		return 0, fmt.Errorf("%w: %q", ErrEmpty, p.src)
	}

	var acc int64

	pos := p.exp
	for i := len(p.digits) - 1; i >= 0; i-- {
		d := int64(p.digits[i] - '0')

		switch {
		case pos < 0:
			// Below the requested scale; dropped.
		case pos >= len(pow10):
			return 0, fmt.Errorf("%w: digit at position 10^%d", ErrOverflow, pos)
		case pos == len(pow10)-1 && d >= 3:
			return 0, fmt.Errorf("%w: leading digit %d at position 10^%d", ErrOverflow, d, pos)
		default:
			acc += d * pow10[pos]
		}

		pos++
	}

	if acc > math.MaxInt32 {
		return 0, fmt.Errorf("%w: %d", ErrOverflow, acc)
	}

	if p.neg {
		acc = -acc
	}

	return int32(acc), nil
}

// Format renders a value previously scaled by 10^exp as a literal that
// Parse accepts: the mantissa in decimal followed by an e-notation
// exponent when exp is non-zero.
func Format(mantissa int32, exp int) string {
	s := strconv.FormatInt(int64(mantissa), 10)
	if exp != 0 {
		s += "e" + strconv.Itoa(exp)
	}

	return s
}
