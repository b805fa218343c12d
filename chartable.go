package xhtmlparser

// charClass is a bitset over the byte-level character classes the
// scanner needs. Classification is byte-oriented rather than
// rune-oriented: every XML syntactic delimiter is ASCII, so UTF-8
// continuation bytes (>=0x80) only ever need to satisfy the "this byte
// may continue a name" classes, never need decoding to classify.
type charClass uint8

const (
	classNameStart charClass = 1 << iota
	classNameCont
	classWhitespace
	classAttrStop
	classPcdStop
)

// charTable is a 256-entry byte->charClass lookup, built once at
// package init instead of typed out as a literal array: the teacher
// (runxml.go) hand-writes eight 16x16 literal tables, one per
// predicate, which is accurate but unreadable and easy to desync when
// a class changes. Building the table from the same rules the spec
// states in §4.1 keeps one source of truth; the cost is paid once at
// program startup, not per parse.
var charTable [256]charClass

func init() {
	for b := 0; b < 256; b++ {
		var c charClass
		switch {
		case b >= 'a' && b <= 'z', b >= 'A' && b <= 'Z', b == '_', b == ':':
			c |= classNameStart
		case b >= 0x80:
			// UTF-8 continuation / lead byte of a non-ASCII name starter.
			c |= classNameStart
		}
		if c&classNameStart != 0 || (b >= '0' && b <= '9') || b == '-' || b == '.' {
			c |= classNameCont
		}
		switch byte(b) {
		case 0x20, 0x09, 0x0A, 0x0D:
			c |= classWhitespace
		}
		switch byte(b) {
		case '"', '\'', '<', '&':
			c |= classAttrStop
		}
		switch byte(b) {
		case '<', '&', '\r':
			c |= classPcdStop
		}
		charTable[b] = c
	}
}

func isNameStart(b byte) bool  { return charTable[b]&classNameStart != 0 }
func isNameCont(b byte) bool   { return charTable[b]&classNameCont != 0 }
func isWhitespace(b byte) bool { return charTable[b]&classWhitespace != 0 }
func isAttrStop(b byte) bool   { return charTable[b]&classAttrStop != 0 }
func isPcdStop(b byte) bool    { return charTable[b]&classPcdStop != 0 }
