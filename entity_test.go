package xhtmlparser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveEntity(t *testing.T) {
	type testCase struct {
		name    string
		src     string
		want    string
		wantErr ErrorKind
	}

	testCases := []testCase{
		{name: "amp", src: "amp;rest", want: "&"},
		{name: "lt", src: "lt;", want: "<"},
		{name: "quot", src: "quot;", want: `"`},
		{name: "named xhtml", src: "nbsp;", want: " "},
		{name: "decimal ref", src: "#65;", want: "A"},
		{name: "hex ref", src: "#x41;", want: "A"},
		{name: "unknown name", src: "bogus;", wantErr: ErrUnknownEntity},
		{name: "no terminator", src: "amp", wantErr: ErrMalformedEntity},
		{name: "empty body", src: ";", wantErr: ErrMalformedEntity},
		{name: "surrogate codepoint", src: "#xD800;", wantErr: ErrMalformedEntity},
		{name: "out of range codepoint", src: "#x110000;", wantErr: ErrMalformedEntity},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var dst [8]byte
			consumed, produced, err := resolveEntity([]byte(tc.src), dst[:])
			if tc.wantErr != errNone {
				assert.Equal(t, tc.wantErr, err)
				return
			}
			assert.Equal(t, errNone, err)
			assert.Equal(t, tc.want, string(dst[:produced]))
			assert.LessOrEqual(t, consumed, len(tc.src))
		})
	}
}

func TestDecodeNumericRef(t *testing.T) {
	cp, ok := decodeNumericRef([]byte("65"))
	assert.True(t, ok)
	assert.EqualValues(t, 65, cp)

	cp, ok = decodeNumericRef([]byte("x41"))
	assert.True(t, ok)
	assert.EqualValues(t, 0x41, cp)

	_, ok = decodeNumericRef([]byte(""))
	assert.False(t, ok)

	_, ok = decodeNumericRef([]byte("12x"))
	assert.False(t, ok)

	_, ok = decodeNumericRef([]byte("x"))
	assert.False(t, ok)
}
