package xhtmlparser

import "unicode/utf8"

// normalizeAttributeValue rewrites data[start:end] in place (end is
// the position of the closing quote, exclusive) per spec.md §4.3:
// leading/trailing whitespace dropped, internal whitespace runs
// collapsed to a single 0x20, CR/CRLF treated as whitespace before
// collapsing, and &...; expanded when cfg.ParseEscapes is set. It
// returns the new [start, end) span holding the normalized value; the
// two cursors (read >= write) walking the same backing array is the
// same discipline the teacher's skipAndExpandCharacterRefs uses, kept
// here as two named indices rather than mutating parser state so the
// function has no dependency on the scanner.
func normalizeAttributeValue(data []byte, start, end int, cfg Config) (newStart, newEnd int, errKind ErrorKind) {
	read := start
	write := start
	sawContent := false
	pendingSpace := false

	flushPending := func() {
		if pendingSpace && sawContent {
			data[write] = ' '
			write++
		}
		pendingSpace = false
	}

	for read < end {
		c := data[read]
		switch {
		case c == '\r':
			read++
			if read < end && data[read] == '\n' {
				read++
			}
			pendingSpace = true
		case isWhitespace(c):
			read++
			pendingSpace = true
		case c == '&' && cfg.ParseEscapes:
			flushPending()
			var scratch [utf8.UTFMax]byte
			consumed, produced, kind := resolveEntity(data[read+1:end], scratch[:])
			if kind != errNone {
				return 0, 0, kind
			}
			copy(data[write:], scratch[:produced])
			write += produced
			read += 1 + consumed
			sawContent = true
		default:
			flushPending()
			if write != read {
				data[write] = c
			}
			write++
			read++
			sawContent = true
		}
	}
	return start, write, errNone
}

// normalizePCData rewrites data[start:end] (end is the position of the
// next '<', exclusive) in place per spec.md §4.3: lone '\r' becomes
// '\n', "\r\n" becomes '\n', &...; expanded when cfg.ParseEscapes is
// set. Leading/trailing trimming (cfg.TrimPCData) and the
// whitespace-only decision are left to the caller, which needs to see
// the untrimmed span to decide node emission per spec.md §4.3's
// keep_ws_only_pcdata rule.
func normalizePCData(data []byte, start, end int, cfg Config) (newStart, newEnd int, errKind ErrorKind) {
	read := start
	write := start

	for read < end {
		c := data[read]
		switch {
		case c == '\r':
			data[write] = '\n'
			write++
			read++
			if read < end && data[read] == '\n' {
				read++
			}
		case c == '&' && cfg.ParseEscapes:
			var scratch [utf8.UTFMax]byte
			consumed, produced, kind := resolveEntity(data[read+1:end], scratch[:])
			if kind != errNone {
				return 0, 0, kind
			}
			copy(data[write:], scratch[:produced])
			write += produced
			read += 1 + consumed
		default:
			if write != read {
				data[write] = c
			}
			write++
			read++
		}
	}

	newStart, newEnd = start, write
	if cfg.TrimPCData {
		for newStart < newEnd && isWhitespace(data[newStart]) {
			newStart++
		}
		for newEnd > newStart && isWhitespace(data[newEnd-1]) {
			newEnd--
		}
	}
	return newStart, newEnd, errNone
}

// isBlank reports whether data[start:end] contains only XML whitespace
// bytes, used to decide whether a PCData node counts as "whitespace
// only" for spec.md §4.3's keep_ws_only_pcdata rule.
func isBlank(data []byte, start, end int) bool {
	for i := start; i < end; i++ {
		if !isWhitespace(data[i]) {
			return false
		}
	}
	return true
}
