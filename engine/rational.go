package engine

import (
	"fmt"
	"strconv"
	"strings"
)

// Rational is an exact non-negative fraction kept in lowest terms.
//
// The zero value is the zero fraction (0/1). Arithmetic methods return
// fully reduced results and never mutate their receiver. Share
// arithmetic in the pipeline must go through this type; decimal
// conversion exists for report rendering only.
type Rational struct {
	num int64
	den int64
}

// NewRational constructs a reduced fraction from num/den.
// Negative components are rejected: shares and residues are
// non-negative throughout the pipeline.
func NewRational(num, den int64) (Rational, error) {
	if den == 0 {
		return Rational{}, fmt.Errorf("zero denominator in %d/%d", num, den)
	}
	if num < 0 || den < 0 {
		return Rational{}, fmt.Errorf("negative fraction %d/%d", num, den)
	}
	return reduce(num, den), nil
}

// MustRational is NewRational for known-good literals, such as shares
// in the built-in catalog. It panics on invalid input.
func MustRational(num, den int64) Rational {
	r, err := NewRational(num, den)
	if err != nil {
		panic(err)
	}
	return r
}

// ParseRational parses a "num/den" literal (for example "2/3") or a
// bare integer ("1") into a Rational. Catalog files use this form so
// that shares are constructed exactly at the source, never recovered
// from decimal approximations.
func ParseRational(s string) (Rational, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Rational{}, fmt.Errorf("empty fraction literal")
	}

	numStr, denStr, found := strings.Cut(s, "/")
	num, err := strconv.ParseInt(strings.TrimSpace(numStr), 10, 64)
	if err != nil {
		return Rational{}, fmt.Errorf("parse fraction %q: %w", s, err)
	}
	if !found {
		return NewRational(num, 1)
	}

	den, err := strconv.ParseInt(strings.TrimSpace(denStr), 10, 64)
	if err != nil {
		return Rational{}, fmt.Errorf("parse fraction %q: %w", s, err)
	}
	return NewRational(num, den)
}

// Zero returns the zero fraction.
func Zero() Rational { return Rational{num: 0, den: 1} }

// One returns the whole-estate fraction.
func One() Rational { return Rational{num: 1, den: 1} }

// reduce normalises num/den to lowest terms with den >= 1.
func reduce(num, den int64) Rational {
	if num == 0 {
		return Rational{num: 0, den: 1}
	}
	g := gcd(num, den)
	return Rational{num: num / g, den: den / g}
}

// gcd computes the greatest common divisor of two positive integers.
func gcd(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// Num returns the numerator in lowest terms.
func (r Rational) Num() int64 {
	return r.normalised().num
}

// Den returns the denominator in lowest terms.
func (r Rational) Den() int64 {
	return r.normalised().den
}

// normalised maps the uninitialised zero value onto 0/1 so that the
// zero Rational behaves as the zero fraction everywhere.
func (r Rational) normalised() Rational {
	if r.den == 0 {
		return Rational{num: 0, den: 1}
	}
	return r
}

// IsZero reports whether r is the zero fraction.
func (r Rational) IsZero() bool {
	return r.normalised().num == 0
}

// Add returns r + o, reduced.
func (r Rational) Add(o Rational) Rational {
	r, o = r.normalised(), o.normalised()
	return reduce(r.num*o.den+o.num*r.den, r.den*o.den)
}

// Sub returns r - o, clamped to zero when the result would be
// negative. Residue and reconciliation arithmetic never produce
// negative shares; a clamped result signals the caller that Awl will
// trigger during reconciliation.
func (r Rational) Sub(o Rational) Rational {
	r, o = r.normalised(), o.normalised()
	num := r.num*o.den - o.num*r.den
	if num <= 0 {
		return Zero()
	}
	return reduce(num, r.den*o.den)
}

// Mul returns r * o, reduced.
func (r Rational) Mul(o Rational) Rational {
	r, o = r.normalised(), o.normalised()
	return reduce(r.num*o.num, r.den*o.den)
}

// Div returns r / o. When either operand is the zero fraction the
// result is the zero fraction: an heir with no computed share divides
// to nothing rather than raising a division error mid-pipeline.
func (r Rational) Div(o Rational) Rational {
	r, o = r.normalised(), o.normalised()
	if r.num == 0 || o.num == 0 {
		return Zero()
	}
	return reduce(r.num*o.den, r.den*o.num)
}

// Cmp compares r and o by cross-multiplied numerators, returning -1,
// 0, or 1. Comparisons that affect allocation must use this method,
// never decimal approximations.
func (r Rational) Cmp(o Rational) int {
	r, o = r.normalised(), o.normalised()
	left := r.num * o.den
	right := o.num * r.den
	switch {
	case left < right:
		return -1
	case left > right:
		return 1
	default:
		return 0
	}
}

// Equal reports exact equality of r and o.
func (r Rational) Equal(o Rational) bool {
	return r.Cmp(o) == 0
}

// Decimal returns the floating-point value of r. Informational only:
// the pipeline never branches on this value.
func (r Rational) Decimal() float64 {
	r = r.normalised()
	return float64(r.num) / float64(r.den)
}

// MarshalText renders r in the "num/den" literal form.
func (r Rational) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText parses the "num/den" literal form.
func (r *Rational) UnmarshalText(text []byte) error {
	parsed, err := ParseRational(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// String renders r as "num/den", or "0" for the zero fraction.
func (r Rational) String() string {
	r = r.normalised()
	if r.num == 0 {
		return "0"
	}
	return fmt.Sprintf("%d/%d", r.num, r.den)
}
