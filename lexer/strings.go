package lexer

import (
	"strings"

	"github.com/opal-lang/pyfront/token"
)

func isQuoteRune(r rune) bool { return r == '\'' || r == '"' }

func toLowerASCII(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r + ('a' - 'A')
	}
	return r
}

// classifyStringPrefix reports whether runes[pos:] begins a string/bytes
// literal: an optional prefix from spec §4.2 immediately followed by a
// quote character. ok is false when pos is not the start of any literal.
func classifyStringPrefix(runes []rune, pos int) (prefixLen int, isBytes, isRaw, ok bool) {
	n := len(runes)
	if pos >= n {
		return 0, false, false, false
	}
	if isQuoteRune(runes[pos]) {
		return 0, false, false, true
	}
	c0 := toLowerASCII(runes[pos])
	if c0 != 'u' && c0 != 'r' && c0 != 'b' {
		return 0, false, false, false
	}
	if pos+1 < n && isQuoteRune(runes[pos+1]) {
		switch c0 {
		case 'u':
			return 1, false, false, true
		case 'r':
			return 1, false, true, true
		case 'b':
			return 1, true, false, true
		}
	}
	if pos+2 < n && isQuoteRune(runes[pos+2]) {
		c1 := toLowerASCII(runes[pos+1])
		if (c0 == 'b' && c1 == 'r') || (c0 == 'r' && c1 == 'b') {
			return 2, true, true, true
		}
	}
	return 0, false, false, false
}

// scanStringOrBytes scans the literal starting at pos (caller has already
// confirmed classifyStringPrefix succeeds there). It returns the built
// token, the position just past the literal, the number of newlines
// crossed (for line bookkeeping), and any LexerError.
func scanStringOrBytes(runes []rune, pos int) (tok token.Token, next int, newlines int, lexErr *Error) {
	prefixLen, isBytes, isRaw, _ := classifyStringPrefix(runes, pos)
	n := len(runes)
	quotePos := pos + prefixLen
	quote := runes[quotePos]

	triple := quotePos+2 < n && runes[quotePos+1] == quote && runes[quotePos+2] == quote
	contentStart := quotePos + 1
	if triple {
		contentStart = quotePos + 3
	}

	i := contentStart
	for i < n {
		c := runes[i]
		if c == '\\' {
			i += 2
			continue
		}
		if c == quote {
			if triple {
				if i+2 < n && runes[i+1] == quote && runes[i+2] == quote {
					break
				}
				i++
				continue
			}
			break
		}
		if c == '\n' && !triple {
			kind := UnterminatedString
			return token.Token{}, i, countNewlines(runes[contentStart:i]), &Error{Kind: kind}
		}
		i++
	}
	if i >= n {
		kind := UnterminatedString
		if triple {
			kind = UnterminatedTripleString
		}
		return token.Token{}, n, countNewlines(runes[contentStart:n]), &Error{Kind: kind}
	}

	content := runes[contentStart:i]
	closeLen := 1
	if triple {
		closeLen = 3
	}
	next = i + closeLen
	newlines = countNewlines(content)

	var payload string
	if isRaw {
		payload = string(content)
		if isBytes {
			for _, r := range content {
				if r > 127 {
					return token.Token{}, next, newlines, &Error{Kind: BytesNonASCII}
				}
			}
		}
	} else {
		decoded, err := decodeEscapes(content, isBytes)
		if err != nil {
			return token.Token{}, next, newlines, err
		}
		payload = decoded
	}

	if isBytes {
		return token.Token{Kind: token.BYTES, Bytes: []byte(payload)}, next, newlines, nil
	}
	return token.Token{Kind: token.STRING, Payload: payload}, next, newlines, nil
}

func countNewlines(rs []rune) int {
	c := 0
	for _, r := range rs {
		if r == '\n' {
			c++
		}
	}
	return c
}

// decodeEscapes implements the escape table from spec §4.2. isBytes
// narrows the escape set (no \u, \U, \N) and enforces ASCII-only content.
func decodeEscapes(content []rune, isBytes bool) (string, *Error) {
	var b strings.Builder
	n := len(content)
	i := 0
	for i < n {
		c := content[i]
		if c != '\\' {
			if isBytes && c > 127 {
				return "", &Error{Kind: BytesNonASCII}
			}
			b.WriteRune(c)
			i++
			continue
		}

		if i+1 >= n {
			b.WriteByte('\\')
			i++
			continue
		}
		nc := content[i+1]

		switch {
		case nc == '\n':
			i += 2
		case nc == '\r':
			if i+2 < n && content[i+2] == '\n' {
				i += 3
			} else {
				i += 2
			}
		case nc == '\\':
			b.WriteByte('\\')
			i += 2
		case nc == '\'':
			b.WriteByte('\'')
			i += 2
		case nc == '"':
			b.WriteByte('"')
			i += 2
		case nc == 'a':
			b.WriteByte(0x07)
			i += 2
		case nc == 'b':
			b.WriteByte(0x08)
			i += 2
		case nc == 'f':
			b.WriteByte(0x0C)
			i += 2
		case nc == 'n':
			b.WriteByte('\n')
			i += 2
		case nc == 'r':
			b.WriteByte('\r')
			i += 2
		case nc == 't':
			b.WriteByte('\t')
			i += 2
		case nc == 'v':
			b.WriteByte(0x0B)
			i += 2
		case nc >= '0' && nc <= '7':
			j := i + 1
			digits := 0
			for j < n && digits < 3 && content[j] >= '0' && content[j] <= '7' {
				j++
				digits++
			}
			val := parseOctal(content[i+1 : j])
			b.WriteByte(byte(val))
			i = j
		case nc == 'x':
			j := i + 2
			if j+2 > n || !isHexDigit(content[j]) || !isHexDigit(content[j+1]) {
				return "", &Error{Kind: HexEscapeShort}
			}
			val := hexVal(content[j])*16 + hexVal(content[j+1])
			b.WriteByte(byte(val))
			i = j + 2
		case nc == 'u' && !isBytes:
			j := i + 2
			if j+4 > n || !allHex(content[j:j+4]) {
				return "", &Error{Kind: MalformedUnicodeEscape}
			}
			val := parseHex(content[j : j+4])
			b.WriteRune(rune(val))
			i = j + 4
		case nc == 'U' && !isBytes:
			j := i + 2
			if j+8 > n || !allHex(content[j:j+8]) {
				return "", &Error{Kind: MalformedUnicodeEscape}
			}
			val := parseHex(content[j : j+8])
			b.WriteRune(rune(val))
			i = j + 8
		case nc == 'N' && !isBytes:
			j := i + 2
			if j >= n || content[j] != '{' {
				return "", &Error{Kind: MalformedNamedUnicodeEscape}
			}
			k := j + 1
			for k < n && content[k] != '}' {
				k++
			}
			if k >= n {
				return "", &Error{Kind: MalformedNamedUnicodeEscape}
			}
			name := string(content[j+1 : k])
			r, found := namedUnicode[strings.ToUpper(name)]
			if !found {
				return "", &Error{Kind: UnknownUnicodeName, Detail: name}
			}
			b.WriteRune(r)
			i = k + 1
		default:
			if isBytes && nc > 127 {
				return "", &Error{Kind: BytesNonASCII}
			}
			b.WriteByte('\\')
			b.WriteRune(nc)
			i += 2
		}
	}
	return b.String(), nil
}

func hexVal(r rune) int {
	switch {
	case r >= '0' && r <= '9':
		return int(r - '0')
	case r >= 'a' && r <= 'f':
		return int(r-'a') + 10
	case r >= 'A' && r <= 'F':
		return int(r-'A') + 10
	}
	return 0
}

func parseHex(rs []rune) int {
	v := 0
	for _, r := range rs {
		v = v*16 + hexVal(r)
	}
	return v
}

func allHex(rs []rune) bool {
	for _, r := range rs {
		if !isHexDigit(r) {
			return false
		}
	}
	return true
}

func parseOctal(rs []rune) int {
	v := 0
	for _, r := range rs {
		v = v*8 + int(r-'0')
	}
	return v
}

// namedUnicode is a small curated table of \N{...} names, grounded on the
// spec's own example (\N{monkey} ⇒ 🐒). It is deliberately not exhaustive;
// unlisted names surface as UnknownUnicodeName.
var namedUnicode = map[string]rune{
	"MONKEY":                       '\U0001F412',
	"BULLET":                       '•',
	"EURO SIGN":                    '€',
	"DEGREE SIGN":                  '°',
	"SNOWMAN":                      '☃',
	"WHITE SMILING FACE":           '☺',
	"INFINITY":                     '∞',
	"GREEK SMALL LETTER ALPHA":     'α',
	"CHECK MARK":                   '✓',
	"MULTIPLICATION SIGN":          '×',
	"LATIN SMALL LETTER A WITH ACUTE": 'á',
}
