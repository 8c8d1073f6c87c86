package bencode

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecoder_primitives(t *testing.T) {
	tests := []struct {
		name string
		in   string
		kind Kind
		want any
		pos  int
	}{
		{name: "string", in: "4:spam", kind: KindBytes, want: []byte("spam"), pos: 6},
		{name: "string with remainder", in: "4:spamtest", kind: KindBytes, want: []byte("spam"), pos: 6},
		{name: "long string", in: "10:abcdefghij", kind: KindBytes, want: []byte("abcdefghij"), pos: 13},
		{name: "empty string", in: "0:", kind: KindBytes, want: []byte{}, pos: 2},
		{name: "binary string", in: "3:\x00\xff\x10", kind: KindBytes, want: []byte{0, 0xff, 0x10}, pos: 5},
		{name: "int", in: "i1e", kind: KindInt, want: int64(1), pos: 3},
		{name: "zero", in: "i0e", kind: KindInt, want: int64(0), pos: 3},
		{name: "negative", in: "i-44e", kind: KindInt, want: int64(-44), pos: 5},
		{name: "int with remainder", in: "i2etest", kind: KindInt, want: int64(2), pos: 3},
		{name: "max int64", in: "i9223372036854775807e", kind: KindInt, want: int64(9223372036854775807), pos: 21},
		{name: "min int64", in: "i-9223372036854775808e", kind: KindInt, want: int64(-9223372036854775808), pos: 22},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDecoder([]byte(tt.in))
			v, ok, err := d.Next()
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, tt.kind, v.Kind)
			switch v.Kind {
			case KindBytes:
				assert.Equal(t, tt.want, v.Bytes)
			case KindInt:
				assert.Equal(t, tt.want, v.Int)
			}
			assert.Equal(t, tt.pos, d.Pos())
		})
	}
}

func TestDecoder_malformed(t *testing.T) {
	tests := []struct {
		name string
		in   string
		eof  bool
	}{
		{name: "string length leading zero", in: "02:aa"},
		{name: "string too short", in: "2:a", eof: true},
		{name: "string missing colon", in: "4aspam"},
		{name: "string length only", in: "12", eof: true},
		{name: "huge string length", in: "99999999999999999999999:a", eof: true},
		{name: "int leading zero", in: "i02e"},
		{name: "negative zero", in: "i-0e"},
		{name: "int no digits", in: "ie"},
		{name: "int bare minus", in: "i-e"},
		{name: "int double minus", in: "i--1e"},
		{name: "int no terminator", in: "i4", eof: true},
		{name: "int bad terminator", in: "i4x"},
		{name: "int overflow", in: "i9223372036854775808e"},
		{name: "int underflow", in: "i-9223372036854775809e"},
		{name: "int very long", in: "i123456789012345678901234567890e"},
		{name: "unknown token", in: "x"},
		{name: "list missing terminator", in: "li0e", eof: true},
		{name: "list bad entry", in: "li-0ee"},
		{name: "dict integer key", in: "di2ei1e4:spam4:eggse"},
		{name: "dict list key", in: "dle4:eggse"},
		{name: "dict missing value", in: "d4:testi1e4:spam4:eggs4:liste"},
		{name: "dict missing terminator", in: "d4:testi1e", eof: true},
		{name: "dict truncated after key", in: "d4:test", eof: true},
		{name: "dict key without length", in: "d:i1ee"},
		{name: "string without length", in: "l:e"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.in))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformed)
			assert.Equal(t, tt.eof, errors.Is(err, ErrUnexpectedEOF))
			var se *SyntaxError
			assert.ErrorAs(t, err, &se)
		})
	}
}

func TestDecoder_emptyInput(t *testing.T) {
	d := NewDecoder(nil)
	_, ok, err := d.Next()
	assert.NoError(t, err)
	assert.False(t, ok)

	_, err = Decode([]byte{})
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestDecoder_trailingData(t *testing.T) {
	_, err := Decode([]byte("dei0e"))
	assert.ErrorIs(t, err, ErrTrailingData)
	assert.ErrorIs(t, err, ErrMalformed)

	d := NewDecoder([]byte("4:spamx"))
	_, _, err = d.Next()
	require.NoError(t, err)
	err = d.Finish()
	var se *SyntaxError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, 6, se.Offset)
}

func TestListCursor(t *testing.T) {
	d := NewDecoder([]byte("l4:spam3:busi1ee"))
	v, ok, err := d.Next()
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, KindList, v.Kind)

	item, ok, err := v.List.Next()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("spam"), item.Bytes)
	item, _, _ = v.List.Next()
	assert.Equal(t, []byte("bus"), item.Bytes)
	item, _, _ = v.List.Next()
	assert.Equal(t, int64(1), item.Int)

	for i := 0; i < 2; i++ {
		_, ok, err = v.List.Next()
		assert.NoError(t, err)
		assert.False(t, ok)
	}
	assert.Equal(t, []byte("l4:spam3:busi1ee"), v.List.Raw())
	assert.NoError(t, d.Finish())
}

func TestDictCursor_bufferOrder(t *testing.T) {
	d := NewDecoder([]byte("d1:zi1e1:ai2e1:zi3ee"))
	v, _, err := d.Next()
	require.NoError(t, err)
	require.Equal(t, KindDict, v.Kind)

	var keys []string
	var vals []int64
	for {
		k, item, ok, err := v.Dict.Next()
		require.NoError(t, err)
		if !ok {
			break
		}
		keys = append(keys, string(k))
		vals = append(vals, item.Int)
	}
	assert.Equal(t, []string{"z", "a", "z"}, keys)
	assert.Equal(t, []int64{1, 2, 3}, vals)
	_, _, ok, err := v.Dict.Next()
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestDictCursor_skipsUnreadChildren(t *testing.T) {
	in := "d1:ad1:xl1:p1:qee1:bli1ei2ee1:c3:ende"
	d := NewDecoder([]byte(in))
	v, _, err := d.Next()
	require.NoError(t, err)

	k, a, ok, err := v.Dict.Next()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "a", string(k))
	require.Equal(t, KindDict, a.Kind)
	// read into the nested dict but leave its list half done
	_, x, ok, err := a.Dict.Next()
	require.NoError(t, err)
	require.True(t, ok)
	_, _, err = x.List.Next()
	require.NoError(t, err)

	k, b, ok, err := v.Dict.Next()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "b", string(k))
	assert.Equal(t, KindList, b.Kind)

	k, c, ok, err := v.Dict.Next()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "c", string(k))
	assert.Equal(t, []byte("end"), c.Bytes)

	_, _, ok, err = a.Dict.Next()
	assert.NoError(t, err)
	assert.False(t, ok)

	_, _, ok, err = v.Dict.Next()
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, []byte(in), v.Dict.Raw())
	assert.NoError(t, d.Finish())
}

func TestDecoder_positionAfterString(t *testing.T) {
	// a declared length of 5 must consume exactly "5:" plus five bytes,
	// so the sentinel that follows decodes cleanly
	d := NewDecoder([]byte("l5:ab:cdi42ee"))
	v, _, err := d.Next()
	require.NoError(t, err)
	s, _, err := v.List.Next()
	require.NoError(t, err)
	assert.Equal(t, []byte("ab:cd"), s.Bytes)
	assert.Equal(t, 8, d.Pos())
	sentinel, ok, err := v.List.Next()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(42), sentinel.Int)
	assert.NoError(t, d.Finish())
}

func TestDecoder_maxDepth(t *testing.T) {
	nested := func(n int) []byte {
		return []byte(strings.Repeat("l", n) + strings.Repeat("e", n))
	}

	_, err := Decode(nested(8), WithMaxDepth(8))
	assert.NoError(t, err)

	_, err = Decode(nested(9), WithMaxDepth(8))
	assert.ErrorIs(t, err, ErrTooDeep)

	_, err = Decode([]byte("de"), WithMaxDepth(0))
	assert.ErrorIs(t, err, ErrTooDeep)

	_, err = Decode([]byte("i1e"), WithMaxDepth(0))
	assert.NoError(t, err)

	_, err = Decode(nested(100000))
	assert.ErrorIs(t, err, ErrTooDeep)
}

func TestDecoder_skipRespectsDepth(t *testing.T) {
	d := NewDecoder([]byte("d1:a"+strings.Repeat("l", 10)+strings.Repeat("e", 10)+"e"), WithMaxDepth(4))
	v, _, err := d.Next()
	require.NoError(t, err)
	_, _, _, err = v.Dict.Next()
	require.NoError(t, err)
	_, _, _, err = v.Dict.Next()
	assert.ErrorIs(t, err, ErrTooDeep)
}

func TestDecoder_skipMalformed(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{name: "dict key without length", in: "ld:i1eee"},
		{name: "nested dict key without length", in: "lld:i1eeee"},
		{name: "dict integer key", in: "ldi1ei2eee"},
		{name: "dict missing value", in: "ld1:aee"},
		{name: "string length leading zero", in: "ld1:a02:aaee"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// whether read or skipped, the same bytes must fail the same way
			_, err := Decode([]byte(tt.in))
			require.ErrorIs(t, err, ErrMalformed)

			d := NewDecoder([]byte(tt.in))
			v, ok, err := d.Next()
			require.NoError(t, err)
			require.True(t, ok)
			err = v.Skip()
			assert.ErrorIs(t, err, ErrMalformed)
			assert.Equal(t, err, d.Finish())
		})
	}
}

func TestDecoder_stickyError(t *testing.T) {
	d := NewDecoder([]byte("li1ei-0ee"))
	v, _, err := d.Next()
	require.NoError(t, err)
	_, _, err = v.List.Next()
	require.NoError(t, err)
	_, _, first := v.List.Next()
	require.Error(t, first)
	_, _, second := v.List.Next()
	assert.Equal(t, first, second)
	assert.Equal(t, first, d.Finish())
}
