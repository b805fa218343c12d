package xhtmlparser

// NodeKind discriminates the three node variants spec.md §3 allows.
// Unlike the teacher's NodeType (which also enumerates Cdata, Comment,
// Declaration, Doctype, Pi as first-class node kinds it stores in the
// tree), this module never emits a node for any of those — spec.md §1
// states they are "recognized and skipped", CDATA becomes a plain
// PCData node (spec.md §4.4), so the tagged set collapses to three.
type NodeKind uint8

const (
	KindDocument NodeKind = iota
	KindElement
	KindPCData
)

func (k NodeKind) String() string {
	switch k {
	case KindDocument:
		return "Document"
	case KindElement:
		return "Element"
	case KindPCData:
		return "PCData"
	default:
		return "Unknown"
	}
}

// stringRef locates a substring inside the Document's source buffer.
// Both encodings spec.md §3 describes share this representation: in
// Range mode end is meaningful and marks the substring's exclusive
// end; in CStr mode end is unused and the substring instead runs from
// start to the next 0x00 byte the parser wrote during capture. Which
// interpretation applies is a single Config.UseCStr flag shared by the
// whole Document, not a per-reference tag, so stringRef itself stays
// two plain offsets with no extra discriminant bit to test per access.
type stringRef struct {
	start, end uint32
}

// node is the compact arena record for one tree node. Child/sibling
// links are indices into the owning Document's node arena; attribute
// span is a [firstAttr, firstAttr+attrCount) window into the attribute
// arena, per spec.md §3's invariant that such windows are disjoint
// across elements.
type node[NI Index, AI Index] struct {
	kind NodeKind

	name stringRef // Element name; zero value for Document/PCData
	text stringRef // PCData text; zero value otherwise

	firstAttr AI
	attrCount AI

	firstChild  NI
	nextSibling NI

	// parent/prevSibling are initialized to the NONE sentinel and left
	// there for the lifetime of the node whenever ForwardOnly is set
	// (the parser simply never writes a real value into them), so
	// reading them looks identical to "this node has no parent" per
	// spec.md §7's sentinel-on-miss contract.
	parent      NI
	prevSibling NI
}

// attribute is the arena record for one `name="value"` pair.
type attribute[AI Index] struct {
	name  stringRef
	value stringRef
}
