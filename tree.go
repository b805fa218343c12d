package xhtmlparser

// Document is the result of a successful Parse: the owned, rewritten
// source buffer plus the node and attribute arenas it populated.
// Per spec.md §5, once returned from Parse it is logically immutable
// and every accessor below is safe to call concurrently from multiple
// goroutines without coordination.
type Document[NI Index, AI Index] struct {
	data  []byte
	cfg   Config
	nodes arena[node[NI, AI], NI]
	attrs arena[attribute[AI], AI]
	root  NI // index of the synthetic Document node (not the root element)
}

// Node is a borrowed handle to one arena record. It must not outlive
// the Document it came from. On a miss, accessors that "never fail"
// (per spec.md §7) return either the zero Node (no Document) or a Node
// whose idx is none[NI](); IsValid reports false for both.
type Node[NI Index, AI Index] struct {
	doc *Document[NI, AI]
	idx NI
}

// Attribute is a borrowed handle to one attribute record.
type Attribute[NI Index, AI Index] struct {
	doc *Document[NI, AI]
	idx AI
}

func (d *Document[NI, AI]) handle(idx NI) Node[NI, AI] {
	return Node[NI, AI]{doc: d, idx: idx}
}

// Root returns the document's single root element. err is
// ErrNoRootElement if the document unexpectedly has none — Parse
// itself already rejects this case, so in practice Root never fails
// for a Document returned by Parse, but the accessor stays total per
// spec.md §7's "read-side operations never fail" contract by
// returning an explicit error rather than panicking.
func (d *Document[NI, AI]) Root() (Node[NI, AI], error) {
	first := d.nodes.at(d.root).firstChild
	if first == none[NI]() {
		return Node[NI, AI]{}, &ParseError{Kind: ErrNoRootElement}
	}
	return d.handle(first), nil
}

// All iterates every node in arena order (construction order), per
// spec.md §6's "arena-order node stream".
func (d *Document[NI, AI]) All(yield func(Node[NI, AI]) bool) {
	for i := 0; i < d.nodes.len(); i++ {
		if !yield(d.handle(NI(i))) {
			return
		}
	}
}

// Descendants performs a pre-order walk of n's subtree (or, called on
// the Document's root wrapper, of the whole tree), per spec.md §6.
func (d *Document[NI, AI]) Descendants(n Node[NI, AI], yield func(Node[NI, AI]) bool) {
	var walk func(NI) bool
	walk = func(idx NI) bool {
		if idx == none[NI]() {
			return true
		}
		if !yield(d.handle(idx)) {
			return false
		}
		rec := d.nodes.at(idx)
		if !walk(rec.firstChild) {
			return false
		}
		return walk(rec.nextSibling)
	}
	rec := d.nodes.at(n.idx)
	walk(rec.firstChild)
}

// text resolves a stringRef according to the Document's string-range
// encoding, per spec.md §3: in Range mode it is data[start:end]; in
// CStr mode it runs from start to the NUL byte the parser wrote during
// capture.
func (d *Document[NI, AI]) text(ref stringRef) []byte {
	if d.cfg.UseCStr {
		end := ref.start
		for end < uint32(len(d.data)) && d.data[end] != 0 {
			end++
		}
		return d.data[ref.start:end]
	}
	return d.data[ref.start:ref.end]
}

// IsValid reports whether n refers to a real node (false for the zero
// Node returned by accessors on a miss).
func (n Node[NI, AI]) IsValid() bool {
	return n.doc != nil && n.idx != none[NI]()
}

// Kind reports which of the three node variants n is.
func (n Node[NI, AI]) Kind() NodeKind {
	if !n.IsValid() {
		return KindDocument
	}
	return n.doc.nodes.at(n.idx).kind
}

// Name returns an Element's tag name (after namespace stripping, if
// configured). It is empty for PCData nodes.
func (n Node[NI, AI]) Name() []byte {
	if !n.IsValid() {
		return nil
	}
	rec := n.doc.nodes.at(n.idx)
	if rec.kind != KindElement {
		return nil
	}
	return n.doc.text(rec.name)
}

// Text returns a PCData node's text. It is empty for Element nodes.
func (n Node[NI, AI]) Text() []byte {
	if !n.IsValid() {
		return nil
	}
	rec := n.doc.nodes.at(n.idx)
	if rec.kind != KindPCData {
		return nil
	}
	return n.doc.text(rec.text)
}

// Is reports whether n is an Element named name, respecting
// namespace_removal exactly as the name itself was captured under it.
func (n Node[NI, AI]) Is(name string) bool {
	return n.Kind() == KindElement && string(n.Name()) == name
}

// FirstChild returns n's first child, or the invalid Node if n is a
// PCData node or has no children.
func (n Node[NI, AI]) FirstChild() Node[NI, AI] {
	if !n.IsValid() {
		return Node[NI, AI]{}
	}
	return n.doc.handle(n.doc.nodes.at(n.idx).firstChild)
}

// NextSibling returns the next node in n's sibling chain, or the
// invalid Node if n is the last sibling.
func (n Node[NI, AI]) NextSibling() Node[NI, AI] {
	if !n.IsValid() {
		return Node[NI, AI]{}
	}
	return n.doc.handle(n.doc.nodes.at(n.idx).nextSibling)
}

// Parent returns n's parent node (for the root element, that is the
// synthetic document node), or the invalid Node if n is the synthetic
// document or the Document was parsed with ForwardOnly set (spec.md
// §4.6, §9).
func (n Node[NI, AI]) Parent() Node[NI, AI] {
	if !n.IsValid() {
		return Node[NI, AI]{}
	}
	return n.doc.handle(n.doc.nodes.at(n.idx).parent)
}

// PrevSibling returns the previous node in n's sibling chain, or the
// invalid Node if n is the first sibling or ForwardOnly is set.
func (n Node[NI, AI]) PrevSibling() Node[NI, AI] {
	if !n.IsValid() {
		return Node[NI, AI]{}
	}
	return n.doc.handle(n.doc.nodes.at(n.idx).prevSibling)
}

// Children iterates n's direct children in source order.
func (n Node[NI, AI]) Children(yield func(Node[NI, AI]) bool) {
	for c := n.FirstChild(); c.IsValid(); c = c.NextSibling() {
		if !yield(c) {
			return
		}
	}
}

// Attributes iterates n's attributes in source order. A no-op for
// PCData/Document nodes or elements with no attributes.
func (n Node[NI, AI]) Attributes(yield func(Attribute[NI, AI]) bool) {
	if !n.IsValid() {
		return
	}
	rec := n.doc.nodes.at(n.idx)
	if rec.kind != KindElement {
		return
	}
	first := uint64(rec.firstAttr)
	count := uint64(rec.attrCount)
	for i := uint64(0); i < count; i++ {
		idx := AI(first + i)
		if !yield((Attribute[NI, AI]{doc: n.doc, idx: idx})) {
			return
		}
	}
}

// Attr looks up an attribute by name, returning ("", false) on a miss
// per spec.md §7's "missing attribute lookup returns absence".
func (n Node[NI, AI]) Attr(name string) (value string, ok bool) {
	var found string
	hit := false
	n.Attributes(func(a Attribute[NI, AI]) bool {
		if string(a.Name()) == name {
			found = string(a.Value())
			hit = true
			return false
		}
		return true
	})
	return found, hit
}

func (a Attribute[NI, AI]) Name() []byte {
	return a.doc.text(a.doc.attrs.at(a.idx).name)
}

func (a Attribute[NI, AI]) Value() []byte {
	return a.doc.text(a.doc.attrs.at(a.idx).value)
}

// Is reports whether a is named name.
func (a Attribute[NI, AI]) Is(name string) bool {
	return string(a.Name()) == name
}
