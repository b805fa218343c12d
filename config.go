package xhtmlparser

import "math"

// Config holds the behavioral options spec.md §6 calls "build-time
// options": namespace stripping, entity expansion, whitespace
// handling, and the string-range encoding. It is constructed once via
// DefaultConfig and With* functional options and never mutated after
// being handed to Parse — there is deliberately no setter, matching
// spec.md §6's "no dynamic-options struct at runtime" intent as
// closely as a language without compile-time option flags can. The
// two options that change arena record *layout* (node/attribute index
// width) are not here; they are the NI/AI type parameters on
// Document/Parse, Go's actual compile-time mechanism (see arena.go).
type Config struct {
	NamespaceRemoval bool
	ParseEscapes      bool
	KeepWSOnlyPCData  bool
	TrimPCData        bool
	UseCStr           bool
	ForwardOnly       bool
	MaxXMLSize        uint64
}

// DefaultConfig returns the configuration matching spec.md's default
// semantics in its worked examples (S1-S8): entities expanded,
// whitespace-only PCData dropped, no trimming beyond what entity/CRLF
// normalization already does, range-encoded strings, full navigation.
// MaxXMLSize defaults to math.MaxUint32, the largest buffer length
// stringRef's uint32 offsets can ever address; Parse clamps any
// caller-supplied MaxXMLSize down to that same ceiling.
func DefaultConfig() Config {
	return Config{
		ParseEscapes: true,
		MaxXMLSize:   math.MaxUint32,
	}
}

// Option mutates a Config value being built; applied in Parse's
// variadic tail, in the style spf13/cobra flag registration favors for
// "configure once, then freeze" construction.
type Option func(*Config)

func WithNamespaceRemoval(v bool) Option { return func(c *Config) { c.NamespaceRemoval = v } }
func WithParseEscapes(v bool) Option     { return func(c *Config) { c.ParseEscapes = v } }
func WithKeepWSOnlyPCData(v bool) Option { return func(c *Config) { c.KeepWSOnlyPCData = v } }
func WithTrimPCData(v bool) Option       { return func(c *Config) { c.TrimPCData = v } }
func WithUseCStr(v bool) Option          { return func(c *Config) { c.UseCStr = v } }
func WithForwardOnly(v bool) Option      { return func(c *Config) { c.ForwardOnly = v } }
func WithMaxXMLSize(n uint64) Option     { return func(c *Config) { c.MaxXMLSize = n } }

func newConfig(opts ...Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}
