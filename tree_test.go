package xhtmlparser_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	xhtmlparser "github.com/turgu1/xhtml-parser"
)

// shape is a plain comparable projection of a subtree, used with
// cmp.Diff so test failures show a structural diff instead of a
// sequence of individual assert.Equal lines.
type shape struct {
	Name     string
	Attrs    [][2]string
	Text     string
	Children []shape
}

func buildShape[NI, AI xhtmlparser.Index](n xhtmlparser.Node[NI, AI]) shape {
	if n.Kind() == xhtmlparser.KindPCData {
		return shape{Text: string(n.Text())}
	}
	s := shape{Name: string(n.Name())}
	n.Attributes(func(a xhtmlparser.Attribute[NI, AI]) bool {
		s.Attrs = append(s.Attrs, [2]string{string(a.Name()), string(a.Value())})
		return true
	})
	n.Children(func(c xhtmlparser.Node[NI, AI]) bool {
		s.Children = append(s.Children, buildShape[NI, AI](c))
		return true
	})
	return s
}

func TestTreeShapeMatchesSource(t *testing.T) {
	doc, err := xhtmlparser.Parse[uint32, uint32]([]byte(
		`<dogregister version="1"><dog><name alive='false'>Fido</name></dog><dog><name alive="true">Spike</name></dog></dogregister>`,
	))
	require.NoError(t, err)
	root, err := doc.Root()
	require.NoError(t, err)

	got := buildShape[uint32, uint32](root)
	want := shape{
		Name:  "dogregister",
		Attrs: [][2]string{{"version", "1"}},
		Children: []shape{
			{Name: "dog", Children: []shape{
				{Name: "name", Attrs: [][2]string{{"alive", "false"}}, Children: []shape{{Text: "Fido"}}},
			}},
			{Name: "dog", Children: []shape{
				{Name: "name", Attrs: [][2]string{{"alive", "true"}}, Children: []shape{{Text: "Spike"}}},
			}},
		},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("tree shape mismatch (-want +got):\n%s", diff)
	}
}

func TestDifferentIndexWidthsProduceEquivalentShapes(t *testing.T) {
	src := []byte(`<r><a/><b/></r>`)

	doc16, err := xhtmlparser.Parse[uint16, uint16](src)
	require.NoError(t, err)
	root16, err := doc16.Root()
	require.NoError(t, err)

	doc64, err := xhtmlparser.Parse[uint64, uint64](append([]byte(nil), src...))
	require.NoError(t, err)
	root64, err := doc64.Root()
	require.NoError(t, err)

	if diff := cmp.Diff(buildShape[uint16, uint16](root16), buildShape[uint64, uint64](root64)); diff != "" {
		t.Errorf("index-width choice changed parse result (-u16 +u64):\n%s", diff)
	}
}
