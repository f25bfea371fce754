package lexer

import "github.com/opal-lang/pyfront/token"

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func isHexDigit(r rune) bool {
	return isDigit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

func isOctDigit(r rune) bool { return r >= '0' && r <= '7' }

func isBinDigit(r rune) bool { return r == '0' || r == '1' }

// scanNumber recognizes the numeric literal starting at pos, per spec §4.2's
// priority: float, then integer+j/J ⇒ imaginary, then base-prefixed
// integers, then plain decimal, with a leading-zero-followed-by-nonzero
// decimal flagged as MalformedFloat. Callers guarantee runes[pos] is a
// digit or a '.' immediately followed by a digit.
func scanNumber(runes []rune, pos int) (tok token.Token, next int, lexErr *Error) {
	start := pos
	n := len(runes)

	if runes[pos] == '0' && pos+1 < n {
		switch runes[pos+1] {
		case 'x', 'X':
			return scanPrefixedInt(runes, pos, token.HEX_INTEGER, isHexDigit)
		case 'o', 'O':
			return scanPrefixedInt(runes, pos, token.OCT_INTEGER, isOctDigit)
		case 'b', 'B':
			return scanPrefixedInt(runes, pos, token.BIN_INTEGER, isBinDigit)
		}
	}

	p := pos
	intStart := p
	for p < n && isDigit(runes[p]) {
		p++
	}
	intDigits := runes[intStart:p]

	hasDot := false
	if p < n && runes[p] == '.' {
		hasDot = true
		p++
		for p < n && isDigit(runes[p]) {
			p++
		}
	}

	hasExp := false
	if p < n && (runes[p] == 'e' || runes[p] == 'E') {
		save := p
		p++
		if p < n && (runes[p] == '+' || runes[p] == '-') {
			p++
		}
		expDigitsStart := p
		for p < n && isDigit(runes[p]) {
			p++
		}
		if p == expDigitsStart {
			text := string(runes[start:p])
			return token.Token{}, p, &Error{Kind: MalformedFloat, Detail: text}
		}
		hasExp = true
		_ = save
	}

	if hasDot || hasExp {
		p, imaginary := consumeImaginarySuffix(runes, p)
		text := string(runes[start:p])
		kind := token.FLOAT
		if imaginary {
			kind = token.IMAGINARY
		}
		return token.Token{Kind: kind, Payload: text}, p, nil
	}

	allZero := true
	for _, r := range intDigits {
		if r != '0' {
			allZero = false
			break
		}
	}
	if !allZero && len(intDigits) > 0 && intDigits[0] == '0' {
		text := string(runes[start:p])
		return token.Token{}, p, &Error{Kind: MalformedFloat, Detail: text}
	}

	p, imaginary := consumeImaginarySuffix(runes, p)
	text := string(runes[start:p])
	kind := token.DEC_INTEGER
	if imaginary {
		kind = token.IMAGINARY
	}
	return token.Token{Kind: kind, Payload: text}, p, nil
}

func consumeImaginarySuffix(runes []rune, p int) (int, bool) {
	if p < len(runes) && (runes[p] == 'j' || runes[p] == 'J') {
		return p + 1, true
	}
	return p, false
}

func scanPrefixedInt(runes []rune, pos int, kind token.Kind, valid func(rune) bool) (token.Token, int, *Error) {
	n := len(runes)
	p := pos + 2
	digitsStart := p
	for p < n && valid(runes[p]) {
		p++
	}
	if p == digitsStart {
		return token.Token{}, p, &Error{Kind: MissingDigits, Detail: string(runes[pos:p])}
	}
	text := string(runes[pos:p])
	return token.Token{Kind: kind, Payload: text}, p, nil
}
