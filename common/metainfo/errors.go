package metainfo

import (
	"errors"
	"fmt"
	"strings"

	"github.com/AnvilloyDevStudio/torrent-cleaner/common/bencode"
)

var (
	ErrEmpty         = bencode.ErrEmpty
	ErrTrailingData  = bencode.ErrTrailingData
	ErrTopLevelShape = errors.New("metafile is not a dictionary")
	ErrKindMismatch  = errors.New("invalid data type")
	ErrInvalidValue  = errors.New("invalid value")
	ErrDuplicateKey  = errors.New("duplicate key")
	ErrMissingKey    = errors.New("missing key")
	ErrExclusiveKeys = errors.New(`exactly one of "length" or "files" is required`)
	ErrInvariant     = errors.New("invariant violated")
	ErrSingleFile    = errors.New("single-file torrent has no file list")
	ErrDuplicatePath = errors.New("duplicate file path")
	ErrUnsafePath    = errors.New("unsafe path segment")
)

type ShapeError struct {
	Got bencode.Kind
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("metafile is malformed: top-level value is a %s, not a dictionary", e.Got)
}

func (e *ShapeError) Unwrap() error { return ErrTopLevelShape }

// KindError reports a recognised key whose value has the wrong kind.
type KindError struct {
	Dict string
	Key  string
	Want bencode.Kind
	Got  bencode.Kind
}

func (e *KindError) Error() string {
	return fmt.Sprintf("invalid %q data type in %s: want %s, got %s", e.Key, e.Dict, e.Want, e.Got)
}

func (e *KindError) Unwrap() error { return ErrKindMismatch }

// ValueError reports a value of the right kind that cannot be used, such as
// a negative size, text that is not UTF-8 or a pieces string not a multiple of 20.
type ValueError struct {
	Dict string
	Key  string
	Msg  string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("invalid %q value in %s: %s", e.Key, e.Dict, e.Msg)
}

func (e *ValueError) Unwrap() error { return ErrInvalidValue }

type DuplicateKeyError struct {
	Dict string
	Key  string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate key %q in %s", e.Key, e.Dict)
}

func (e *DuplicateKeyError) Unwrap() error { return ErrDuplicateKey }

type MissingKeyError struct {
	Dict string
	Key  string
}

func (e *MissingKeyError) Error() string {
	return fmt.Sprintf("key %q is missing in %s", e.Key, e.Dict)
}

func (e *MissingKeyError) Unwrap() error { return ErrMissingKey }

type ExclusiveKeyError struct {
	Dict    string
	Present []string
}

func (e *ExclusiveKeyError) Error() string {
	if len(e.Present) == 0 {
		return fmt.Sprintf(`key "length" or "files" is missing in %s`, e.Dict)
	}
	return fmt.Sprintf(`keys "length" and "files" are both present in %s`, e.Dict)
}

func (e *ExclusiveKeyError) Unwrap() error { return ErrExclusiveKeys }

// InvariantError is returned by the validator. Index is -1 unless the
// failing field belongs to a file list entry, in which case Field is the
// list followed by the entry key, e.g. "info.files.path".
type InvariantError struct {
	Field   string
	Index   int
	Problem string
}

func (e *InvariantError) Error() string {
	parts := strings.Split(e.Field, ".")
	if e.Index >= 0 && len(parts) > 1 {
		last := len(parts) - 1
		return fmt.Sprintf("value %s element %d %q is %s", quoteAll(parts[:last]), e.Index, parts[last], e.Problem)
	}
	return fmt.Sprintf("value %s is %s", quoteAll(parts), e.Problem)
}

func (e *InvariantError) Unwrap() error { return ErrInvariant }

func quoteAll(parts []string) string {
	quoted := make([]string, len(parts))
	for i, p := range parts {
		quoted[i] = fmt.Sprintf("%q", p)
	}
	return strings.Join(quoted, ".")
}
