// Package xhtmlparser is a non-validating, single-pass XML/XHTML
// parser for memory-constrained readers. It takes ownership of one
// caller-provided byte buffer, rewrites it in place while tokenizing
// (entity expansion, whitespace normalization — both shrink-or-preserve
// length, never grow it), and populates two preallocated arenas with a
// build-time-selectable index width, producing a read-only tree whose
// strings are views into the same buffer.
//
// A Document returned by Parse retains the buffer it was given; the
// caller must not touch that buffer afterward. All read access on a
// Document is safe for concurrent use once Parse has returned.
package xhtmlparser
