package bencode

// DefaultMaxDepth bounds container nesting unless WithMaxDepth says otherwise.
const DefaultMaxDepth = 512

type Kind int

const (
	KindBytes Kind = iota + 1
	KindInt
	KindList
	KindDict
)

func (k Kind) String() string {
	switch k {
	case KindBytes:
		return "byte string"
	case KindInt:
		return "integer"
	case KindList:
		return "list"
	case KindDict:
		return "dictionary"
	default:
		return "invalid"
	}
}

// Value is one decoded item. Exactly the field matching Kind is set.
// Bytes aliases the decoder's buffer. List and Dict are lazy cursors that
// share the decoder position and must be read before the parent advances,
// otherwise the parent skips whatever is left of them.
type Value struct {
	Kind  Kind
	Bytes []byte
	Int   int64
	List  *ListCursor
	Dict  *DictCursor
}

// Skip consumes the rest of a container value. Scalars are already consumed.
func (v Value) Skip() error {
	switch v.Kind {
	case KindList:
		return v.List.Skip()
	case KindDict:
		return v.Dict.Skip()
	default:
		return nil
	}
}

type Option func(d *Decoder)

func WithMaxDepth(depth int) Option {
	return func(d *Decoder) {
		d.maxDepth = depth
	}
}

type Decoder struct {
	buf      []byte
	pos      int
	maxDepth int
	child    *container
	err      error
}

func NewDecoder(buf []byte, opts ...Option) *Decoder {
	d := &Decoder{
		buf:      buf,
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *Decoder) Pos() int {
	return d.pos
}

func (d *Decoder) Remaining() int {
	return len(d.buf) - d.pos
}

// Next returns the next top-level value, or ok=false once the buffer is used up.
func (d *Decoder) Next() (v Value, ok bool, err error) {
	if err = d.release(&d.child); err != nil {
		return Value{}, false, err
	}
	if d.pos >= len(d.buf) {
		return Value{}, false, nil
	}
	v, err = d.value(0)
	if err != nil {
		return Value{}, false, err
	}
	d.child = v.container()
	return v, true, nil
}

// Finish consumes any pending container and fails if bytes remain.
func (d *Decoder) Finish() error {
	if err := d.release(&d.child); err != nil {
		return err
	}
	if d.pos < len(d.buf) {
		return d.fail(syntaxErr(d.pos, ErrTrailingData, "%d trailing bytes after top-level value", len(d.buf)-d.pos))
	}
	return nil
}

func (d *Decoder) fail(err error) error {
	if d.err == nil {
		d.err = err
	}
	return d.err
}

// release drains the container last handed out at some level, so the
// shared position is past it.
func (d *Decoder) release(child **container) error {
	if d.err != nil {
		return d.err
	}
	c := *child
	*child = nil
	if c == nil || c.done {
		return nil
	}
	return c.skip()
}

func (d *Decoder) value(depth int) (Value, error) {
	if d.pos >= len(d.buf) {
		return Value{}, d.fail(syntaxErr(d.pos, ErrUnexpectedEOF, "expected value"))
	}
	switch c := d.buf[d.pos]; {
	case c == 'i':
		n, err := d.integer()
		if err != nil {
			return Value{}, err
		}
		return Value{Kind: KindInt, Int: n}, nil
	case c >= '0' && c <= '9':
		b, err := d.bytes()
		if err != nil {
			return Value{}, err
		}
		return Value{Kind: KindBytes, Bytes: b}, nil
	case c == 'l':
		cont, err := d.open(KindList, depth+1)
		if err != nil {
			return Value{}, err
		}
		return Value{Kind: KindList, List: &ListCursor{c: cont}}, nil
	case c == 'd':
		cont, err := d.open(KindDict, depth+1)
		if err != nil {
			return Value{}, err
		}
		return Value{Kind: KindDict, Dict: &DictCursor{c: cont}}, nil
	default:
		return Value{}, d.fail(syntaxErr(d.pos, nil, "unexpected byte %q", c))
	}
}

func (d *Decoder) open(kind Kind, depth int) (*container, error) {
	if depth > d.maxDepth {
		return nil, d.fail(syntaxErr(d.pos, ErrTooDeep, "%s nested deeper than %d", kind, d.maxDepth))
	}
	c := &container{
		d:     d,
		kind:  kind,
		depth: depth,
		start: d.pos,
	}
	d.pos++
	return c, nil
}

// integer reads i<digits>e. A single leading '-' is allowed, leading zeros
// and -0 are not, and the value must fit in int64.
func (d *Decoder) integer() (int64, error) {
	start := d.pos
	i := d.pos + 1
	neg := false
	if i < len(d.buf) && d.buf[i] == '-' {
		neg = true
		i++
	}
	digits := i
	var n uint64
	const limit = uint64(1) << 63
	for ; i < len(d.buf) && d.buf[i] >= '0' && d.buf[i] <= '9'; i++ {
		digit := uint64(d.buf[i] - '0')
		if n > (limit-digit)/10 {
			return 0, d.fail(syntaxErr(start, nil, "integer overflows int64"))
		}
		n = n*10 + digit
	}
	if i >= len(d.buf) {
		return 0, d.fail(syntaxErr(start, ErrUnexpectedEOF, "unterminated integer"))
	}
	switch {
	case i == digits:
		return 0, d.fail(syntaxErr(start, nil, "integer has no digits"))
	case d.buf[i] != 'e':
		return 0, d.fail(syntaxErr(i, nil, "integer terminated by %q", d.buf[i]))
	case d.buf[digits] == '0' && i-digits > 1:
		return 0, d.fail(syntaxErr(start, nil, "integer has leading zero"))
	case neg && n == 0:
		return 0, d.fail(syntaxErr(start, nil, "negative zero"))
	case !neg && n == limit:
		return 0, d.fail(syntaxErr(start, nil, "integer overflows int64"))
	}
	d.pos = i + 1
	if neg {
		return int64(-n), nil
	}
	return int64(n), nil
}

// bytes reads <len>:<raw>. The returned slice aliases the buffer.
func (d *Decoder) bytes() ([]byte, error) {
	start := d.pos
	i := d.pos
	remaining := len(d.buf) - start
	n := 0
	for ; i < len(d.buf) && d.buf[i] >= '0' && d.buf[i] <= '9'; i++ {
		n = n*10 + int(d.buf[i]-'0')
		if n > remaining {
			return nil, d.fail(syntaxErr(start, ErrUnexpectedEOF, "byte string length exceeds input"))
		}
	}
	if i >= len(d.buf) {
		return nil, d.fail(syntaxErr(start, ErrUnexpectedEOF, "unterminated byte string length"))
	}
	if i == start {
		return nil, d.fail(syntaxErr(start, nil, "byte string length has no digits"))
	}
	if d.buf[i] != ':' {
		return nil, d.fail(syntaxErr(i, nil, "expected ':' after byte string length, got %q", d.buf[i]))
	}
	if d.buf[start] == '0' && i-start > 1 {
		return nil, d.fail(syntaxErr(start, nil, "byte string length has leading zero"))
	}
	i++
	if n > len(d.buf)-i {
		return nil, d.fail(syntaxErr(start, ErrUnexpectedEOF, "byte string of length %d exceeds input", n))
	}
	d.pos = i + n
	return d.buf[i:d.pos:d.pos], nil
}
