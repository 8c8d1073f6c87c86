package bencode

import (
	"strings"

	"github.com/elliotchance/orderedmap"
)

// Decode materialises a whole buffer holding exactly one value.
// Byte strings become []byte, integers int64, lists []any and dictionaries
// *orderedmap.OrderedMap with string keys in buffer order; a repeated key
// keeps its first position and its last value.
func Decode(buf []byte, opts ...Option) (any, error) {
	d := NewDecoder(buf, opts...)
	v, ok, err := d.Next()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrEmpty
	}
	ret, err := materialize(v)
	if err != nil {
		return nil, err
	}
	if err = d.Finish(); err != nil {
		return nil, err
	}
	return ret, nil
}

func materialize(v Value) (any, error) {
	switch v.Kind {
	case KindBytes:
		return v.Bytes, nil
	case KindInt:
		return v.Int, nil
	case KindList:
		ret := make([]any, 0)
		for {
			item, ok, err := v.List.Next()
			if err != nil {
				return nil, err
			}
			if !ok {
				return ret, nil
			}
			m, err := materialize(item)
			if err != nil {
				return nil, err
			}
			ret = append(ret, m)
		}
	case KindDict:
		ret := orderedmap.NewOrderedMap()
		for {
			key, item, ok, err := v.Dict.Next()
			if err != nil {
				return nil, err
			}
			if !ok {
				return ret, nil
			}
			m, err := materialize(item)
			if err != nil {
				return nil, err
			}
			ret.Set(string(key), m)
		}
	default:
		return nil, nil
	}
}

// GetByPath walks dictionaries along a dot separated key path.
func GetByPath(v any, path string) (any, bool) {
	if path == "" {
		return v, true
	}
	for _, part := range strings.Split(path, ".") {
		m, ok := v.(*orderedmap.OrderedMap)
		if !ok {
			return nil, false
		}
		v, ok = m.Get(part)
		if !ok {
			return nil, false
		}
	}
	return v, true
}

func GetString(v any, path string) (string, bool) {
	r, ok := GetByPath(v, path)
	if !ok {
		return "", false
	}
	b, ok := r.([]byte)
	if !ok {
		return "", false
	}
	return string(b), true
}

func GetInt(v any, path string) (int64, bool) {
	r, ok := GetByPath(v, path)
	if !ok {
		return 0, false
	}
	n, ok := r.(int64)
	return n, ok
}
