package parser

import (
	"math/big"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Literal is a string, number, boolean or null constant.
type Literal interface {
	Expr
	literalNode()
}

type QuoteStyle byte

const (
	DoubleQuote QuoteStyle = '"'
	SingleQuote QuoteStyle = '\''
)

func (q QuoteStyle) String() string {
	return string(rune(q))
}

// StringLiteral keeps its body verbatim; escape sequences are not decoded.
type StringLiteral struct {
	Quote QuoteStyle
	Value string
}

func (s StringLiteral) Render(b *strings.Builder) {
	b.WriteByte(byte(s.Quote))
	b.WriteString(s.Value)
	b.WriteByte(byte(s.Quote))
}

func parseString(c Cursor) (Cursor, StringLiteral, error) {
	rest := c.Rest()
	if rest == "" || rest[0] != '"' && rest[0] != '\'' {
		return c, StringLiteral{}, c.fail("string")
	}
	q := rest[0]
	for i := 1; i < len(rest); i++ {
		switch rest[i] {
		case '\\':
			if i+1 >= len(rest) {
				return c, StringLiteral{}, c.Advance(len(rest)).fail("escaped character")
			}
			i++
			// The escaped character is a whole code point; continuation
			// bytes never collide with the quote or the backslash.
		case q:
			return c.Advance(i + 1), StringLiteral{Quote: QuoteStyle(q), Value: rest[1:i]}, nil
		}
	}
	return c, StringLiteral{}, c.Advance(len(rest)).fail(quote(string(q)))
}

type NumberFormat int

const (
	DecimalFormat NumberFormat = iota
	HexFormat
	OctalFormat
	BinaryFormat
)

func (f NumberFormat) String() string {
	switch f {
	case HexFormat:
		return "hex"
	case OctalFormat:
		return "octal"
	case BinaryFormat:
		return "binary"
	}
	return "decimal"
}

func (f NumberFormat) base() int {
	switch f {
	case HexFormat:
		return 16
	case OctalFormat:
		return 8
	case BinaryFormat:
		return 2
	}
	return 10
}

type NumberKind int

const (
	IntegerNumber NumberKind = iota
	FloatNumber
)

func (k NumberKind) String() string {
	if k == FloatNumber {
		return "float"
	}
	return "integer"
}

// NumberLiteral holds the raw spelling, which is what gets rendered, and the
// converted value. Integers that overflow int64 are stored as floats.
type NumberLiteral struct {
	Raw    string
	Format NumberFormat
	Kind   NumberKind
	Int    int64
	Float  float64
}

func (n NumberLiteral) Render(b *strings.Builder) {
	b.WriteString(n.Raw)
}

// Digits returns the raw digits without radix prefix or separators.
func (n NumberLiteral) Digits() string {
	digits := strings.ReplaceAll(n.Raw, "_", "")
	if n.Format != DecimalFormat {
		digits = digits[2:]
	}
	return digits
}

// Decimal returns the exact value of the literal. It reports false when the
// exponent does not fit the range of decimal.Decimal.
func (n NumberLiteral) Decimal() (decimal.Decimal, bool) {
	digits := n.Digits()
	if n.Format != DecimalFormat {
		v, ok := new(big.Int).SetString(digits, n.Format.base())
		if !ok {
			return decimal.Zero, false
		}
		return decimal.NewFromBigInt(v, 0), true
	}
	d, err := decimal.NewFromString(normalizeDecimal(digits))
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// normalizeDecimal fills in the digits a float may omit around its point.
func normalizeDecimal(s string) string {
	if strings.HasPrefix(s, ".") {
		s = "0" + s
	}
	if i := strings.IndexByte(s, '.'); i >= 0 && (i+1 == len(s) || !isDigit(s[i+1])) {
		s = s[:i+1] + "0" + s[i+1:]
	}
	return s
}

// scanDigits matches digit1 ('_' digit1)* and returns the matched length.
func scanDigits(s string, digit func(byte) bool) int {
	n := 0
	for n < len(s) && digit(s[n]) {
		n++
	}
	if n == 0 {
		return 0
	}
	for n+1 < len(s) && s[n] == '_' && digit(s[n+1]) {
		n++
		for n < len(s) && digit(s[n]) {
			n++
		}
	}
	return n
}

func scanPlainDigits(s string) int {
	n := 0
	for n < len(s) && isDigit(s[n]) {
		n++
	}
	return n
}

func isHexDigit(ch byte) bool {
	return isDigit(ch) || ch >= 'a' && ch <= 'f' || ch >= 'A' && ch <= 'F'
}

func isOctalDigit(ch byte) bool {
	return ch >= '0' && ch <= '7'
}

func isBinaryDigit(ch byte) bool {
	return ch == '0' || ch == '1'
}

// scanExponent matches [eE][+-]?digits.
func scanExponent(s string) int {
	if s == "" || s[0] != 'e' && s[0] != 'E' {
		return 0
	}
	n := 1
	if n < len(s) && (s[n] == '+' || s[n] == '-') {
		n++
	}
	digits := scanPlainDigits(s[n:])
	if digits == 0 {
		return 0
	}
	return n + digits
}

var radixPrefixes = []struct {
	lower, upper byte
	format       NumberFormat
	digit        func(byte) bool
}{
	{'x', 'X', HexFormat, isHexDigit},
	{'o', 'O', OctalFormat, isOctalDigit},
	{'b', 'B', BinaryFormat, isBinaryDigit},
}

func parseNumber(c Cursor) (Cursor, NumberLiteral, error) {
	rest := c.Rest()
	if len(rest) > 2 && rest[0] == '0' {
		for _, radix := range radixPrefixes {
			if rest[1] != radix.lower && rest[1] != radix.upper {
				continue
			}
			if n := scanDigits(rest[2:], radix.digit); n > 0 {
				return c.Advance(n + 2), newInteger(rest[:n+2], radix.format), nil
			}
		}
	}

	intPart := scanDigits(rest, isDigit)
	n := intPart
	float := false
	if n < len(rest) && rest[n] == '.' {
		frac := scanDigits(rest[n+1:], isDigit)
		if intPart > 0 || frac > 0 {
			n += 1 + frac
			float = true
		}
	}
	if intPart > 0 || float {
		if exp := scanExponent(rest[n:]); exp > 0 {
			n += exp
			float = true
		}
	}
	switch {
	case float:
		return c.Advance(n), newFloat(rest[:n]), nil
	case intPart > 0:
		return c.Advance(n), newInteger(rest[:n], DecimalFormat), nil
	}
	return c, NumberLiteral{}, c.fail("number")
}

func newInteger(raw string, format NumberFormat) NumberLiteral {
	n := NumberLiteral{Raw: raw, Format: format, Kind: IntegerNumber}
	digits := n.Digits()
	v, err := strconv.ParseInt(digits, format.base(), 64)
	if err == nil {
		n.Int = v
		return n
	}
	n.Kind = FloatNumber
	if v, ok := new(big.Int).SetString(digits, format.base()); ok {
		n.Float, _ = new(big.Float).SetInt(v).Float64()
	}
	return n
}

func newFloat(raw string) NumberLiteral {
	n := NumberLiteral{Raw: raw, Format: DecimalFormat, Kind: FloatNumber}
	// Out of range exponents yield ±Inf or 0, which is kept.
	n.Float, _ = strconv.ParseFloat(normalizeDecimal(n.Digits()), 64)
	return n
}

type BooleanLiteral struct {
	Value bool
}

func (l BooleanLiteral) Render(b *strings.Builder) {
	b.WriteString(strconv.FormatBool(l.Value))
}

type NullLiteral struct{}

func (NullLiteral) Render(b *strings.Builder) {
	b.WriteString("null")
}

func (StringLiteral) exprNode()  {}
func (NumberLiteral) exprNode()  {}
func (BooleanLiteral) exprNode() {}
func (NullLiteral) exprNode()    {}

func (StringLiteral) literalNode()  {}
func (NumberLiteral) literalNode()  {}
func (BooleanLiteral) literalNode() {}
func (NullLiteral) literalNode()    {}

func parseLiteral(c Cursor) (Cursor, Literal, error) {
	d, s, err := parseString(c)
	if err == nil {
		return d, s, nil
	}
	failure := err
	d, n, err := parseNumber(c)
	if err == nil {
		return d, n, nil
	}
	failure = furthest(failure, err)
	switch {
	case atKeyword(c, "true"):
		return c.Advance(4), BooleanLiteral{Value: true}, nil
	case atKeyword(c, "false"):
		return c.Advance(5), BooleanLiteral{Value: false}, nil
	case atKeyword(c, "null"):
		return c.Advance(4), NullLiteral{}, nil
	}
	return c, nil, furthest(failure, c.fail("literal"))
}
