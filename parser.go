package xhtmlparser

import "math"

// parser holds the mutable scan state for one call to Parse. It owns
// no resources beyond references into the caller's buffer and the two
// arenas it is filling; once Parse returns, only the arenas and buffer
// are retained, this struct is discarded.
type parser[NI Index, AI Index] struct {
	data []byte
	pos  int
	cfg  Config

	nodes arena[node[NI, AI], NI]
	attrs arena[attribute[AI], AI]

	// lastChild is parse-time-only bookkeeping: the teacher's final
	// Node variant (spec.md §3) has no lastChild field, only
	// firstChild/nextSibling, so appending to a sibling chain in O(1)
	// needs a side table during construction. It never survives into
	// the returned Document.
	lastChild map[NI]NI
}

func emptyNode[NI Index, AI Index](kind NodeKind) node[NI, AI] {
	return node[NI, AI]{
		kind:        kind,
		firstChild:  none[NI](),
		nextSibling: none[NI](),
		parent:      none[NI](),
		prevSibling: none[NI](),
	}
}

// Parse consumes data in one pass and returns the resulting Document,
// per spec.md §6. NI and AI are the node/attribute index widths
// (spec.md's build-time options for arena sizing); data is retained by
// the returned Document and must not be modified by the caller
// afterward — Parse both reads and rewrites it in place.
func Parse[NI Index, AI Index](data []byte, opts ...Option) (*Document[NI, AI], error) {
	cfg := newConfig(opts...)
	// stringRef.start/end are always uint32, in both the Range and CStr
	// encodings, so no buffer longer than math.MaxUint32 is addressable
	// regardless of Config — MaxXMLSize is clamped to that architectural
	// ceiling before being applied, per spec.md §4.4's size-enforcement
	// step, rather than trusting a caller-supplied value past what the
	// arenas could ever actually represent.
	effectiveMax := cfg.MaxXMLSize
	if effectiveMax > math.MaxUint32 {
		effectiveMax = math.MaxUint32
	}
	if uint64(len(data)) > effectiveMax {
		return nil, newParseError(data, 0, ErrXMLTooLarge)
	}

	if len(data) >= 2 && ((data[0] == 0xFF && data[1] == 0xFE) || (data[0] == 0xFE && data[1] == 0xFF)) {
		// UTF-16 BOM: spec.md §1 states UTF-8 input only, no
		// transcoding, so this is rejected outright rather than silently
		// transcoded (a deviation from the teacher, see SPEC_FULL.md §7).
		return nil, newParseError(data, 0, ErrInvalidUTF8)
	}

	p := &parser[NI, AI]{
		data:      data,
		cfg:       cfg,
		nodes:     newArena[node[NI, AI], NI](len(data), 28),
		attrs:     newArena[attribute[AI], AI](len(data), 90),
		lastChild: make(map[NI]NI),
	}

	docIdx, ok := p.nodes.append(emptyNode[NI, AI](KindDocument))
	if !ok {
		return nil, newParseError(data, 0, ErrTooManyNodes)
	}

	if err := p.parseDocument(docIdx); err != nil {
		return nil, err
	}

	if _, hasRoot := p.lastChild[docIdx]; !hasRoot {
		return nil, newParseError(data, p.pos, ErrNoRootElement)
	}

	return &Document[NI, AI]{
		data:  data,
		cfg:   cfg,
		nodes: p.nodes,
		attrs: p.attrs,
		root:  docIdx,
	}, nil
}

// term reads the byte at pos and, in use_cstr mode, zeros it in place
// (RapidXML's technique of reusing the delimiter immediately following
// a captured name/value as that capture's NUL terminator, spec.md
// §3's CStr encoding). The returned byte is what the caller must use
// for any decision about what came next — re-reading data[pos]
// afterward would see 0x00 instead, in use_cstr builds.
func (p *parser[NI, AI]) term(pos int) byte {
	b := p.data[pos]
	if p.cfg.UseCStr {
		p.data[pos] = 0
	}
	return b
}

func (p *parser[NI, AI]) skipWhitespace() {
	for p.pos < len(p.data) && isWhitespace(p.data[p.pos]) {
		p.pos++
	}
}

// captureName scans a name run starting at the current position
// (already known to be a name-start byte) and returns its span plus
// the boundary byte immediately following it (see term).
func (p *parser[NI, AI]) captureName() (ref stringRef, boundary byte, errKind ErrorKind) {
	if p.pos >= len(p.data) {
		return stringRef{}, 0, ErrUnexpectedEOF
	}
	if !isNameStart(p.data[p.pos]) {
		return stringRef{}, 0, ErrInvalidChar
	}
	start := p.pos
	p.pos++
	for p.pos < len(p.data) && isNameCont(p.data[p.pos]) {
		p.pos++
	}
	if p.pos >= len(p.data) {
		return stringRef{}, 0, ErrUnexpectedEOF
	}
	ref = stringRef{start: uint32(start), end: uint32(p.pos)}
	boundary = p.term(p.pos)
	return ref, boundary, errNone
}

// stripNamespace implements spec.md §4.4's namespace_removal option:
// capture starts after the first ':' instead of at the name's start.
func (p *parser[NI, AI]) stripNamespace(ref stringRef) stringRef {
	if !p.cfg.NamespaceRemoval {
		return ref
	}
	for i := ref.start; i < ref.end; i++ {
		if p.data[i] == ':' {
			return stringRef{start: i + 1, end: ref.end}
		}
	}
	return ref
}

// attachChild appends child to the end of parent's sibling chain,
// maintaining parent/prevSibling per spec.md §3 unless ForwardOnly.
func (p *parser[NI, AI]) attachChild(parent, child NI) {
	if last, ok := p.lastChild[parent]; ok {
		p.nodes.at(last).nextSibling = child
		if !p.cfg.ForwardOnly {
			p.nodes.at(child).prevSibling = last
		}
	} else {
		p.nodes.at(parent).firstChild = child
	}
	p.lastChild[parent] = child
	if !p.cfg.ForwardOnly {
		p.nodes.at(child).parent = parent
	}
}

// parseDocument implements the Prologue state of spec.md §4.4: skip an
// optional BOM, whitespace, the XML declaration, comments, PIs and
// DOCTYPE, until the root element is found; parse exactly that one
// element (recursively, including all of its content); then stop,
// treating everything remaining as Epilogue ("ignored up to EOF" per
// spec.md §4.4 and demonstrated by scenario S8) without inspecting it
// at all.
func (p *parser[NI, AI]) parseDocument(docIdx NI) *ParseError {
	p.skipBOM()

	for {
		p.skipWhitespace()
		if p.pos >= len(p.data) {
			return nil // no root found; Parse reports ErrNoRootElement
		}
		if p.data[p.pos] != '<' {
			return newParseError(p.data, p.pos, ErrInvalidChar)
		}
		p.pos++
		if p.pos >= len(p.data) {
			return newParseError(p.data, p.pos, ErrUnexpectedEOF)
		}

		switch p.data[p.pos] {
		case '?':
			p.pos++
			if err := p.skipPI(); err != errNone {
				return newParseError(p.data, p.pos, err)
			}
		case '!':
			if err := p.skipMarkupDecl(); err != errNone {
				return newParseError(p.data, p.pos, err)
			}
		default:
			if !isNameStart(p.data[p.pos]) {
				return newParseError(p.data, p.pos, ErrInvalidChar)
			}
			if _, err := p.parseElement(docIdx); err != nil {
				return err
			}
			return nil // root parsed and fully closed; epilogue ignored
		}
	}
}

func (p *parser[NI, AI]) skipBOM() {
	d := p.data
	if len(d) >= 3 && d[0] == 0xEF && d[1] == 0xBB && d[2] == 0xBF {
		p.pos = 3
	}
}

// skipPI scans to the terminating "?>"; p.pos is positioned just after
// the leading '?' on entry (Prologue) or '<?' (ReadContent callers
// advance similarly before calling).
func (p *parser[NI, AI]) skipPI() ErrorKind {
	for p.pos < len(p.data)-1 {
		if p.data[p.pos] == '?' && p.data[p.pos+1] == '>' {
			p.pos += 2
			return errNone
		}
		p.pos++
	}
	return ErrUnexpectedEOF
}

// skipMarkupDecl dispatches a "<!" construct: comment, DOCTYPE, or (in
// content) CDATA is handled by the caller before reaching here since
// CDATA produces a node. p.pos is positioned at the '!' on entry.
func (p *parser[NI, AI]) skipMarkupDecl() ErrorKind {
	p.pos++ // consume '!'
	switch {
	case p.hasPrefix("--"):
		p.pos += 2
		return p.skipComment()
	case p.hasPrefix("DOCTYPE"):
		p.pos += len("DOCTYPE")
		return p.skipDoctype()
	default:
		return ErrInvalidChar
	}
}

func (p *parser[NI, AI]) hasPrefix(s string) bool {
	if p.pos+len(s) > len(p.data) {
		return false
	}
	for i := 0; i < len(s); i++ {
		if p.data[p.pos+i] != s[i] {
			return false
		}
	}
	return true
}

func (p *parser[NI, AI]) skipComment() ErrorKind {
	for p.pos < len(p.data)-2 {
		if p.data[p.pos] == '-' && p.data[p.pos+1] == '-' && p.data[p.pos+2] == '>' {
			p.pos += 3
			return errNone
		}
		p.pos++
	}
	return ErrMalformedComment
}

// skipDoctype scans balanced to the matching '>', honoring one level
// of internal-subset brackets, per spec.md §4.4.
func (p *parser[NI, AI]) skipDoctype() ErrorKind {
	depth := 0
	for p.pos < len(p.data) {
		switch p.data[p.pos] {
		case '[':
			depth++
		case ']':
			if depth > 0 {
				depth--
			}
		case '>':
			if depth == 0 {
				p.pos++
				return errNone
			}
		}
		p.pos++
	}
	return ErrMalformedDoctype
}

// parseElement implements ReadTagOpen/ReadAttrName/ReadAttrEq/
// ReadAttrValue of spec.md §4.4's state table, returning once the
// element (and, unless self-closed, its entire content through the
// matching close tag) has been fully consumed.
func (p *parser[NI, AI]) parseElement(parent NI) (NI, *ParseError) {
	idx, ok := p.nodes.append(emptyNode[NI, AI](KindElement))
	if !ok {
		return 0, newParseError(p.data, p.pos, ErrTooManyNodes)
	}

	nameRef, boundary, errKind := p.captureName()
	if errKind != errNone {
		return 0, newParseError(p.data, p.pos, errKind)
	}
	nameRef = p.stripNamespace(nameRef)
	p.nodes.at(idx).name = nameRef

	if isWhitespace(boundary) {
		p.pos++
		p.skipWhitespace()
		if p.pos >= len(p.data) {
			return 0, newParseError(p.data, p.pos, ErrUnexpectedEOF)
		}
		boundary = p.data[p.pos]
	}

	var firstAttr AI = none[AI]()
	var attrCount AI

	for isNameStart(boundary) {
		aNameRef, aBoundary, ek := p.captureName()
		if ek != errNone {
			return 0, newParseError(p.data, p.pos, ek)
		}
		aNameRef = p.stripNamespace(aNameRef)

		if isWhitespace(aBoundary) {
			p.pos++
			p.skipWhitespace()
			if p.pos >= len(p.data) {
				return 0, newParseError(p.data, p.pos, ErrUnexpectedEOF)
			}
			aBoundary = p.data[p.pos]
		}
		if aBoundary != '=' {
			return 0, newParseError(p.data, p.pos, ErrMissingEquals)
		}
		p.pos++
		p.skipWhitespace()
		if p.pos >= len(p.data) {
			return 0, newParseError(p.data, p.pos, ErrUnexpectedEOF)
		}
		q := p.data[p.pos]
		if q != '\'' && q != '"' {
			return 0, newParseError(p.data, p.pos, ErrUnquotedAttributeValue)
		}
		p.pos++
		valStart := p.pos
		for {
			if p.pos >= len(p.data) {
				return 0, newParseError(p.data, p.pos, ErrUnterminatedAttributeValue)
			}
			c := p.data[p.pos]
			if !isAttrStop(c) {
				p.pos++
				continue
			}
			if c == q {
				break
			}
			if c == '<' {
				return 0, newParseError(p.data, p.pos, ErrUnterminatedAttributeValue)
			}
			p.pos++ // '&' or the inactive quote character: not a terminator here
		}
		nStart, nEnd, nek := normalizeAttributeValue(p.data, valStart, p.pos, p.cfg)
		if nek != errNone {
			return 0, newParseError(p.data, p.pos, nek)
		}
		if p.cfg.UseCStr {
			p.term(nEnd)
		}
		p.pos++ // consume closing quote
		p.skipWhitespace()

		attrIdx, aok := p.attrs.append(attribute[AI]{
			name:  aNameRef,
			value: stringRef{start: uint32(nStart), end: uint32(nEnd)},
		})
		if !aok {
			return 0, newParseError(p.data, p.pos, ErrTooManyAttributes)
		}
		if attrCount == 0 {
			firstAttr = attrIdx
		}
		attrCount++

		if p.pos >= len(p.data) {
			return 0, newParseError(p.data, p.pos, ErrUnexpectedEOF)
		}
		boundary = p.data[p.pos]
	}

	p.nodes.at(idx).firstAttr = firstAttr
	p.nodes.at(idx).attrCount = attrCount

	switch boundary {
	case '>':
		p.pos++
		p.attachChild(parent, idx)
		if err := p.parseContent(idx); err != nil {
			return 0, err
		}
		return idx, nil
	case '/':
		p.pos++
		if p.pos >= len(p.data) || p.data[p.pos] != '>' {
			return 0, newParseError(p.data, p.pos, ErrInvalidChar)
		}
		p.pos++
		p.attachChild(parent, idx)
		return idx, nil
	default:
		return 0, newParseError(p.data, p.pos, ErrInvalidChar)
	}
}

// parseContent implements ReadContent/ReadTagClose: children, text,
// comments, CDATA, PIs and nested DOCTYPE until the matching close tag
// for elem is consumed.
func (p *parser[NI, AI]) parseContent(elem NI) *ParseError {
	for {
		if p.pos >= len(p.data) {
			return newParseError(p.data, p.pos, ErrUnexpectedEOF)
		}
		if p.data[p.pos] != '<' {
			// parsePCData returns only with p.pos on the '<' that ended
			// the text; in use_cstr mode term may have overwritten that
			// byte with the text's NUL, so it is not re-read here.
			if err := p.parsePCData(elem); err != nil {
				return err
			}
		}

		p.pos++
		if p.pos >= len(p.data) {
			return newParseError(p.data, p.pos, ErrUnexpectedEOF)
		}

		switch p.data[p.pos] {
		case '/':
			p.pos++
			return p.parseCloseTag(elem)
		case '!':
			if p.hasPrefix("[CDATA[") {
				p.pos += len("[CDATA[")
				if err := p.parseCDATA(elem); err != nil {
					return err
				}
				continue
			}
			if err := p.skipMarkupDecl(); err != errNone {
				return newParseError(p.data, p.pos, err)
			}
		case '?':
			p.pos++
			if err := p.skipPI(); err != errNone {
				return newParseError(p.data, p.pos, err)
			}
		default:
			if !isNameStart(p.data[p.pos]) {
				return newParseError(p.data, p.pos, ErrInvalidChar)
			}
			if _, err := p.parseElement(elem); err != nil {
				return err
			}
		}
	}
}

func (p *parser[NI, AI]) parsePCData(parent NI) *ParseError {
	start := p.pos
	for {
		if p.pos >= len(p.data) {
			return newParseError(p.data, p.pos, ErrUnexpectedEOF)
		}
		c := p.data[p.pos]
		if !isPcdStop(c) {
			p.pos++
			continue
		}
		if c == '<' {
			break
		}
		p.pos++ // '&' or '\r': not a span terminator, normalizePCData handles them
	}
	rawEnd := p.pos

	newStart, newEnd, ek := normalizePCData(p.data, start, rawEnd, p.cfg)
	if ek != errNone {
		return newParseError(p.data, start, ek)
	}

	emit := true
	if isBlank(p.data, newStart, newEnd) {
		emit = p.cfg.KeepWSOnlyPCData
	}
	if emit {
		idx, ok := p.nodes.append(emptyNode[NI, AI](KindPCData))
		if !ok {
			return newParseError(p.data, p.pos, ErrTooManyNodes)
		}
		p.nodes.at(idx).text = stringRef{start: uint32(newStart), end: uint32(newEnd)}
		if p.cfg.UseCStr {
			p.term(newEnd)
		}
		p.attachChild(parent, idx)
	}
	return nil
}

// parseCDATA implements the literal-PCData handling of spec.md §4.4:
// no normalization, no entity expansion, terminated by "]]>".
func (p *parser[NI, AI]) parseCDATA(parent NI) *ParseError {
	start := p.pos
	for p.pos < len(p.data)-2 {
		if p.data[p.pos] == ']' && p.data[p.pos+1] == ']' && p.data[p.pos+2] == '>' {
			end := p.pos
			p.pos += 3

			idx, ok := p.nodes.append(emptyNode[NI, AI](KindPCData))
			if !ok {
				return newParseError(p.data, p.pos, ErrTooManyNodes)
			}
			p.nodes.at(idx).text = stringRef{start: uint32(start), end: uint32(end)}
			if p.cfg.UseCStr {
				p.term(end)
			}
			p.attachChild(parent, idx)
			return nil
		}
		p.pos++
	}
	return newParseError(p.data, p.pos, ErrMalformedCdata)
}

// parseCloseTag is entered with p.pos just past "</"; a mismatched name
// is reported at the offset of that '<'.
func (p *parser[NI, AI]) parseCloseTag(elem NI) *ParseError {
	tagStart := p.pos - 2
	nameRef, boundary, ek := p.captureName()
	if ek != errNone {
		return newParseError(p.data, p.pos, ek)
	}
	nameRef = p.stripNamespace(nameRef)

	open := p.nodes.at(elem).name
	if !bytesEqual(p.data, nameRef, open) {
		return newParseError(p.data, tagStart, ErrMismatchedTag)
	}

	if isWhitespace(boundary) {
		p.pos++
		p.skipWhitespace()
		if p.pos >= len(p.data) {
			return newParseError(p.data, p.pos, ErrUnexpectedEOF)
		}
		boundary = p.data[p.pos]
	}
	if boundary != '>' {
		return newParseError(p.data, p.pos, ErrInvalidChar)
	}
	p.pos++
	return nil
}

func bytesEqual(data []byte, a, b stringRef) bool {
	if a.end-a.start != b.end-b.start {
		return false
	}
	for i := uint32(0); i < a.end-a.start; i++ {
		if data[a.start+i] != data[b.start+i] {
			return false
		}
	}
	return true
}
