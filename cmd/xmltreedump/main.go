// Command xmltreedump parses an XML/XHTML file and prints the
// resulting tree, for manual inspection of what the parser produced.
// It is a thin harness over the public API, in the spirit of
// ucarion-c14n's cmd/c14n (stdin/file in, rendered XML out), upgraded
// to a cobra command so options map to flags instead of positional
// argv parsing.
package main

import (
	"fmt"
	"math"
	"os"

	"github.com/spf13/cobra"

	xhtmlparser "github.com/turgu1/xhtml-parser"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		pretty           bool
		namespaceRemoval bool
		keepWSOnly       bool
		trimPCData       bool
		noEscapes        bool
		maxSize          uint64
	)

	cmd := &cobra.Command{
		Use:   "xmltreedump <file>",
		Short: "Parse an XML/XHTML file and print its tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			opts := []xhtmlparser.Option{
				xhtmlparser.WithNamespaceRemoval(namespaceRemoval),
				xhtmlparser.WithKeepWSOnlyPCData(keepWSOnly),
				xhtmlparser.WithTrimPCData(trimPCData),
				xhtmlparser.WithParseEscapes(!noEscapes),
				xhtmlparser.WithMaxXMLSize(maxSize),
			}

			doc, err := xhtmlparser.Parse[uint32, uint32](data, opts...)
			if err != nil {
				return err
			}
			root, err := doc.Root()
			if err != nil {
				return err
			}

			if pretty {
				return xhtmlparser.WriteXMLIndent[uint32, uint32](os.Stdout, root)
			}
			return xhtmlparser.WriteXML[uint32, uint32](os.Stdout, root)
		},
	}

	flags := cmd.Flags()
	flags.BoolVar(&pretty, "pretty", false, "indent the printed tree")
	flags.BoolVar(&namespaceRemoval, "strip-namespaces", false, "drop namespace prefixes from element and attribute names")
	flags.BoolVar(&keepWSOnly, "keep-ws-only-pcdata", false, "retain whitespace-only text nodes instead of dropping them")
	flags.BoolVar(&trimPCData, "trim-pcdata", false, "trim leading/trailing whitespace from text nodes")
	flags.BoolVar(&noEscapes, "no-escapes", false, "do not expand entity references")
	flags.Uint64Var(&maxSize, "max-size", math.MaxUint32, "reject input larger than this many bytes")

	return cmd
}
