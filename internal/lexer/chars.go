package lexer

import "unicode"

// Character classification predicates over UTF-16 code units, following the
// ECMAScript 3 character tables. Surrogate halves never satisfy the letter
// predicates, so identifiers are restricted to BMP letters; this matches the
// scanner, which walks the buffer one code unit at a time.

// IsLineTerminator reports whether c is one of LF, CR, LS, PS.
func IsLineTerminator(c uint16) bool {
	return c == '\n' || c == '\r' || c == 0x2028 || c == 0x2029
}

// IsWhitespace reports whether c is ES3 WhiteSpace: tab, vertical tab, form
// feed, space, no-break space, BOM, or any Unicode space separator.
func IsWhitespace(c uint16) bool {
	switch c {
	case '\t', 0x0B, 0x0C, ' ', 0xA0, 0xFEFF:
		return true
	}
	return unicode.Is(unicode.Zs, rune(c))
}

// IsIdentifierStart reports whether c may begin an identifier:
// a Unicode letter, '$' or '_'. The '\' of a unicode escape sequence is
// handled by the scanner, not here.
func IsIdentifierStart(c uint16) bool {
	if c == '$' || c == '_' {
		return true
	}
	if c < 0x80 {
		return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
	}
	if isSurrogate(c) {
		return false
	}
	return unicode.IsLetter(rune(c))
}

// IsIdentifierPart reports whether c may continue an identifier: an
// identifier start, a Unicode digit, combining mark, or connector
// punctuation.
func IsIdentifierPart(c uint16) bool {
	if IsIdentifierStart(c) {
		return true
	}
	if c < 0x80 {
		return '0' <= c && c <= '9'
	}
	if isSurrogate(c) {
		return false
	}
	r := rune(c)
	return unicode.IsDigit(r) ||
		unicode.Is(unicode.Mn, r) ||
		unicode.Is(unicode.Mc, r) ||
		unicode.Is(unicode.Pc, r)
}

// IsDecimalDigit reports whether c is '0'..'9'.
func IsDecimalDigit(c uint16) bool {
	return '0' <= c && c <= '9'
}

// IsHexDigit reports whether c is a hexadecimal digit.
func IsHexDigit(c uint16) bool {
	return ('0' <= c && c <= '9') ||
		('a' <= c && c <= 'f') ||
		('A' <= c && c <= 'F')
}

// DigitValue returns the numeric value of a decimal or hexadecimal digit.
// The caller must have checked the class first.
func DigitValue(c uint16) int {
	switch {
	case '0' <= c && c <= '9':
		return int(c - '0')
	case 'a' <= c && c <= 'f':
		return int(c-'a') + 10
	default:
		return int(c-'A') + 10
	}
}

func isSurrogate(c uint16) bool {
	return 0xD800 <= c && c <= 0xDFFF
}
