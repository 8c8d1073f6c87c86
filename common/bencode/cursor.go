package bencode

// container is the state shared by list and dictionary cursors: where the
// container started, how deep it sits, and the nested value it handed out
// last, which has to be drained before the next element is read.
type container struct {
	d     *Decoder
	kind  Kind
	depth int
	start int
	end   int
	done  bool
	child *container
}

func (v Value) container() *container {
	switch v.Kind {
	case KindList:
		return v.List.c
	case KindDict:
		return v.Dict.c
	default:
		return nil
	}
}

// advance positions the decoder on the next element. It reports false
// once the terminator has been consumed.
func (c *container) advance() (bool, error) {
	if c.done {
		return false, nil
	}
	d := c.d
	if err := d.release(&c.child); err != nil {
		return false, err
	}
	if d.pos >= len(d.buf) {
		return false, d.fail(syntaxErr(c.start, ErrUnexpectedEOF, "unterminated %s", c.kind))
	}
	if d.buf[d.pos] == 'e' {
		d.pos++
		c.end = d.pos
		c.done = true
		return false, nil
	}
	return true, nil
}

func (c *container) element() (Value, error) {
	v, err := c.d.value(c.depth)
	if err != nil {
		return Value{}, err
	}
	c.child = v.container()
	return v, nil
}

// key reads a dictionary key and checks that a value follows it.
func (c *container) key() ([]byte, error) {
	d := c.d
	if b := d.buf[d.pos]; b < '0' || b > '9' {
		return nil, d.fail(syntaxErr(d.pos, nil, "dictionary key must be a byte string, got %q", b))
	}
	key, err := d.bytes()
	if err != nil {
		return nil, err
	}
	if d.pos < len(d.buf) && d.buf[d.pos] == 'e' {
		return nil, d.fail(syntaxErr(d.pos, nil, "missing value for key %q", key))
	}
	return key, nil
}

func (c *container) skip() error {
	for {
		more, err := c.advance()
		if err != nil || !more {
			return err
		}
		if c.kind == KindDict {
			if _, err = c.key(); err != nil {
				return err
			}
		}
		if _, err = c.element(); err != nil {
			return err
		}
	}
}

// raw returns the encoded bytes of a fully consumed container.
func (c *container) raw() []byte {
	if !c.done {
		return nil
	}
	return c.d.buf[c.start:c.end:c.end]
}

type ListCursor struct {
	c *container
}

// Next returns the next element, or ok=false after the terminator.
func (l *ListCursor) Next() (v Value, ok bool, err error) {
	more, err := l.c.advance()
	if err != nil || !more {
		return Value{}, false, err
	}
	v, err = l.c.element()
	if err != nil {
		return Value{}, false, err
	}
	return v, true, nil
}

func (l *ListCursor) Skip() error {
	return l.c.skip()
}

// Raw is the encoded list, available once the cursor is exhausted.
func (l *ListCursor) Raw() []byte {
	return l.c.raw()
}

type DictCursor struct {
	c *container
}

// Next returns the next key/value pair in buffer order, or ok=false after
// the terminator. Keys are not required to be sorted or unique.
func (m *DictCursor) Next() (key []byte, v Value, ok bool, err error) {
	more, err := m.c.advance()
	if err != nil || !more {
		return nil, Value{}, false, err
	}
	key, err = m.c.key()
	if err != nil {
		return nil, Value{}, false, err
	}
	v, err = m.c.element()
	if err != nil {
		return nil, Value{}, false, err
	}
	return key, v, true, nil
}

func (m *DictCursor) Skip() error {
	return m.c.skip()
}

// Raw is the encoded dictionary, available once the cursor is exhausted.
func (m *DictCursor) Raw() []byte {
	return m.c.raw()
}
