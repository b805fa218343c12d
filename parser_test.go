package xhtmlparser_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	xhtmlparser "github.com/turgu1/xhtml-parser"
)

func mustParse(t *testing.T, src string, opts ...xhtmlparser.Option) (*xhtmlparser.Document[uint32, uint32], xhtmlparser.Node[uint32, uint32]) {
	t.Helper()
	doc, err := xhtmlparser.Parse[uint32, uint32]([]byte(src), opts...)
	require.NoError(t, err)
	root, err := doc.Root()
	require.NoError(t, err)
	return doc, root
}

func TestTrivialElement(t *testing.T) {
	_, root := mustParse(t, `<a/>`)
	assert.Equal(t, xhtmlparser.KindElement, root.Kind())
	assert.Equal(t, "a", string(root.Name()))
	assert.False(t, root.FirstChild().IsValid())

	count := 0
	root.Attributes(func(xhtmlparser.Attribute[uint32, uint32]) bool { count++; return true })
	assert.Zero(t, count)
}

func TestAttributesAndText(t *testing.T) {
	_, root := mustParse(t, `<a x="1" y='2'>hi</a>`)
	assert.Equal(t, "a", string(root.Name()))

	var names, values []string
	root.Attributes(func(a xhtmlparser.Attribute[uint32, uint32]) bool {
		names = append(names, string(a.Name()))
		values = append(values, string(a.Value()))
		return true
	})
	assert.Equal(t, []string{"x", "y"}, names)
	assert.Equal(t, []string{"1", "2"}, values)

	child := root.FirstChild()
	require.True(t, child.IsValid())
	assert.Equal(t, xhtmlparser.KindPCData, child.Kind())
	assert.Equal(t, "hi", string(child.Text()))
	assert.False(t, child.NextSibling().IsValid())
}

func TestEntityExpansionDefaults(t *testing.T) {
	_, root := mustParse(t, `<p>a &amp; b &#65; &lt;</p>`)
	text := string(root.FirstChild().Text())
	assert.Equal(t, "a & b A <", text)
}

func TestAttributeNormalization(t *testing.T) {
	_, root := mustParse(t, "<a t=\"  foo\t\tbar  \"/>")
	value, ok := root.Attr("t")
	require.True(t, ok)
	assert.Equal(t, "foo bar", value)
}

func TestCRLFInPCData(t *testing.T) {
	_, root := mustParse(t, "<p>line1\r\nline2\rline3</p>")
	assert.Equal(t, "line1\nline2\nline3", string(root.FirstChild().Text()))
}

func TestSkippingProducesOnlyCDATAChild(t *testing.T) {
	src := `<!-- c --><?pi ?><!DOCTYPE x [ <!ENTITY e "x"> ]><r><![CDATA[<raw>]]></r>`
	_, root := mustParse(t, src)
	assert.Equal(t, "r", string(root.Name()))

	child := root.FirstChild()
	require.True(t, child.IsValid())
	assert.Equal(t, xhtmlparser.KindPCData, child.Kind())
	assert.Equal(t, "<raw>", string(child.Text()))
	assert.False(t, child.NextSibling().IsValid())
}

func TestMismatchedTagReportsOffsetOfCloseTag(t *testing.T) {
	src := `<a><b></a>`
	_, err := xhtmlparser.Parse[uint32, uint32]([]byte(src))
	require.Error(t, err)
	var perr *xhtmlparser.ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, xhtmlparser.ErrMismatchedTag, perr.Kind)
	assert.Equal(t, bytes.Index([]byte(src), []byte("</a>")), perr.Offset)
}

func TestTailAfterRootIsIgnored(t *testing.T) {
	doc, err := xhtmlparser.Parse[uint32, uint32]([]byte(`<r/>garbage<!not xml`))
	require.NoError(t, err)
	root, err := doc.Root()
	require.NoError(t, err)
	assert.Equal(t, "r", string(root.Name()))
	assert.False(t, root.FirstChild().IsValid())
}

func TestBareStartTagFails(t *testing.T) {
	_, err := xhtmlparser.Parse[uint32, uint32]([]byte(`x<root><name></name></root>`))
	require.Error(t, err)
}

func TestNamespaceRemoval(t *testing.T) {
	_, root := mustParse(t, `<x:root xmlns:x="urn:x"><x:child/></x:root>`, xhtmlparser.WithNamespaceRemoval(true))
	assert.Equal(t, "root", string(root.Name()))
	child := root.FirstChild()
	require.True(t, child.IsValid())
	assert.Equal(t, "child", string(child.Name()))
}

func TestForwardOnlyHasNoParentOrPrevSibling(t *testing.T) {
	_, root := mustParse(t, `<r><a/><b/></r>`, xhtmlparser.WithForwardOnly(true))
	b := root.FirstChild().NextSibling()
	require.True(t, b.IsValid())
	assert.Equal(t, "b", string(b.Name()))
	assert.False(t, b.Parent().IsValid())
	assert.False(t, b.PrevSibling().IsValid())
}

func TestParentAndPrevSiblingByDefault(t *testing.T) {
	_, root := mustParse(t, `<r><a/><b/></r>`)
	b := root.FirstChild().NextSibling()
	require.True(t, b.IsValid())
	require.True(t, b.Parent().IsValid())
	assert.Equal(t, "r", string(b.Parent().Name()))
	require.True(t, b.PrevSibling().IsValid())
	assert.Equal(t, "a", string(b.PrevSibling().Name()))
}

func TestKeepWSOnlyPCData(t *testing.T) {
	_, defRoot := mustParse(t, "<r>   </r>")
	assert.False(t, defRoot.FirstChild().IsValid())

	_, kept := mustParse(t, "<r>   </r>", xhtmlparser.WithKeepWSOnlyPCData(true))
	child := kept.FirstChild()
	require.True(t, child.IsValid())
	assert.Equal(t, xhtmlparser.KindPCData, child.Kind())
}

func TestUnterminatedAttributeValue(t *testing.T) {
	_, err := xhtmlparser.Parse[uint32, uint32]([]byte(`<a t="unterminated></a>`))
	require.Error(t, err)
	var perr *xhtmlparser.ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, xhtmlparser.ErrUnterminatedAttributeValue, perr.Kind)
}

func TestUnknownEntityFails(t *testing.T) {
	_, err := xhtmlparser.Parse[uint32, uint32]([]byte(`<a>&bogus;</a>`))
	require.Error(t, err)
	var perr *xhtmlparser.ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, xhtmlparser.ErrUnknownEntity, perr.Kind)
}

func TestUTF16BOMRejected(t *testing.T) {
	_, err := xhtmlparser.Parse[uint32, uint32]([]byte("\xFF\xFE<a/>"))
	require.Error(t, err)
	var perr *xhtmlparser.ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, xhtmlparser.ErrInvalidUTF8, perr.Kind)
}

func TestUTF8BOMSkipped(t *testing.T) {
	_, root := mustParse(t, "\xEF\xBB\xBF<a/>")
	assert.Equal(t, "a", string(root.Name()))
}

func TestXMLTooLarge(t *testing.T) {
	_, err := xhtmlparser.Parse[uint32, uint32]([]byte(`<a/>`), xhtmlparser.WithMaxXMLSize(2))
	require.Error(t, err)
	var perr *xhtmlparser.ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, xhtmlparser.ErrXMLTooLarge, perr.Kind)
}

func TestDescendantsPreOrder(t *testing.T) {
	doc, root := mustParse(t, `<r><a>1</a><b><b2>77</b2><b3>33</b3></b><a>2</a></r>`)
	var names []string
	doc.Descendants(root, func(n xhtmlparser.Node[uint32, uint32]) bool {
		if n.Kind() == xhtmlparser.KindElement {
			names = append(names, string(n.Name()))
		}
		return true
	})
	assert.Equal(t, []string{"a", "b", "b2", "b3", "a"}, names)
}

func TestWriteXMLRoundTrips(t *testing.T) {
	_, root := mustParse(t, `<a x="1">hi &amp; bye</a>`)
	var buf bytes.Buffer
	require.NoError(t, xhtmlparser.WriteXML[uint32, uint32](&buf, root))
	assert.Equal(t, `<a x="1">hi &amp; bye</a>`, buf.String())
}
