package parser

import (
	"fmt"
	"strconv"
	"strings"
)

// SpreadsheetML stores characters that XML 1.0 cannot carry as _xHHHH_.
// A literal "_xHHHH_" in the text has its underscore written as _x005F_.

// escapeText encodes s for a shared string or inline string part.
func escapeText(s string) string {
	if !needsEscape(s) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 8)
	for i, r := range s {
		switch {
		case r == '_' && isEscapeAt(s, i):
			b.WriteString("_x005F_")
		case !isXMLChar(r):
			fmt.Fprintf(&b, "_x%04X_", r)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// unescapeText decodes _xHHHH_ sequences read from a package part.
func unescapeText(s string) string {
	if !strings.Contains(s, "_x") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		if isEscapeAt(s, i) {
			n, _ := strconv.ParseUint(s[i+2:i+6], 16, 16)
			b.WriteRune(rune(n))
			i += 7
			continue
		}
		b.WriteByte(s[i])
		i++
	}
	return b.String()
}

func needsEscape(s string) bool {
	for i, r := range s {
		if !isXMLChar(r) || (r == '_' && isEscapeAt(s, i)) {
			return true
		}
	}
	return false
}

// isEscapeAt reports whether s holds an _xHHHH_ sequence at byte offset i.
func isEscapeAt(s string, i int) bool {
	if i+7 > len(s) || s[i] != '_' || s[i+1] != 'x' || s[i+6] != '_' {
		return false
	}
	for _, c := range []byte(s[i+2 : i+6]) {
		if !isHexDigit(c) {
			return false
		}
	}
	return true
}

func isHexDigit(c byte) bool {
	return '0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
}

// isXMLChar reports whether r may appear in XML 1.0 character data.
func isXMLChar(r rune) bool {
	switch {
	case r == '\t', r == '\n', r == '\r':
		return true
	case r < 0x20:
		return false
	case r == 0xFFFE, r == 0xFFFF:
		return false
	}
	return true
}
