package metainfo

import (
	"crypto/sha1"
	"fmt"
	"unicode/utf8"

	"github.com/AnvilloyDevStudio/torrent-cleaner/common/bencode"
)

const (
	keyAnnounce    = "announce"
	keyInfo        = "info"
	keyName        = "name"
	keyPieceLength = "piece_length"
	keyPieces      = "pieces"
	keyLength      = "length"
	keyFiles       = "files"
	keyPath        = "path"
)

// pieceLengthAlias is the BEP 3 spelling found in most real torrents.
const pieceLengthAlias = "piece length"

// Parse decodes and validates a metafile held in memory.
func Parse(buf []byte, opts ...bencode.Option) (*TorrentFile, error) {
	d := bencode.NewDecoder(buf, opts...)
	v, ok, err := d.Next()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrEmpty
	}
	if v.Kind != bencode.KindDict {
		return nil, &ShapeError{Got: v.Kind}
	}
	t, err := parseTorrent(v.Dict)
	if err != nil {
		return nil, err
	}
	if err = d.Finish(); err != nil {
		return nil, err
	}
	if err = Validate(t); err != nil {
		return nil, err
	}
	return t, nil
}

// dictMapper tracks which recognised keys a dictionary has produced.
type dictMapper struct {
	name string
	seen map[string]struct{}
}

func newDictMapper(name string) *dictMapper {
	return &dictMapper{
		name: name,
		seen: make(map[string]struct{}),
	}
}

// claim records canonical as seen, failing on a repeat. key is the
// spelling that appeared in the buffer.
func (m *dictMapper) claim(canonical, key string) error {
	if _, ok := m.seen[canonical]; ok {
		return &DuplicateKeyError{Dict: m.name, Key: key}
	}
	m.seen[canonical] = struct{}{}
	return nil
}

func (m *dictMapper) has(canonical string) bool {
	_, ok := m.seen[canonical]
	return ok
}

func (m *dictMapper) require(keys ...string) error {
	for _, k := range keys {
		if !m.has(k) {
			return &MissingKeyError{Dict: m.name, Key: k}
		}
	}
	return nil
}

func (m *dictMapper) mismatch(key string, want bencode.Kind, v bencode.Value) error {
	return &KindError{Dict: m.name, Key: key, Want: want, Got: v.Kind}
}

func (m *dictMapper) text(key string, v bencode.Value) (string, error) {
	switch v.Kind {
	case bencode.KindBytes:
		if !utf8.Valid(v.Bytes) {
			return "", &ValueError{Dict: m.name, Key: key, Msg: "not valid UTF-8"}
		}
		return string(v.Bytes), nil
	default:
		return "", m.mismatch(key, bencode.KindBytes, v)
	}
}

func (m *dictMapper) uint(key string, v bencode.Value) (uint64, error) {
	switch v.Kind {
	case bencode.KindInt:
		if v.Int < 0 {
			return 0, &ValueError{Dict: m.name, Key: key, Msg: fmt.Sprintf("%d is negative", v.Int)}
		}
		return uint64(v.Int), nil
	default:
		return 0, m.mismatch(key, bencode.KindInt, v)
	}
}

func (m *dictMapper) pieces(key string, v bencode.Value) ([][PieceHashSize]byte, error) {
	switch v.Kind {
	case bencode.KindBytes:
		if len(v.Bytes)%PieceHashSize != 0 {
			return nil, &ValueError{
				Dict: m.name,
				Key:  key,
				Msg:  fmt.Sprintf("length %d is not a multiple of %d", len(v.Bytes), PieceHashSize),
			}
		}
		ret := make([][PieceHashSize]byte, len(v.Bytes)/PieceHashSize)
		for i := range ret {
			copy(ret[i][:], v.Bytes[i*PieceHashSize:])
		}
		return ret, nil
	default:
		return nil, m.mismatch(key, bencode.KindBytes, v)
	}
}

func parseTorrent(dict *bencode.DictCursor) (*TorrentFile, error) {
	m := newDictMapper("torrent")
	t := &TorrentFile{}
	for {
		k, v, ok, err := dict.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		key := string(k)
		switch key {
		case keyAnnounce:
			if err = m.claim(key, key); err != nil {
				return nil, err
			}
			if t.Announce, err = m.text(key, v); err != nil {
				return nil, err
			}
		case keyInfo:
			if err = m.claim(key, key); err != nil {
				return nil, err
			}
			switch v.Kind {
			case bencode.KindDict:
				info, err := parseInfo(v.Dict)
				if err != nil {
					return nil, err
				}
				t.Info = *info
				t.InfoHash = sha1.Sum(v.Dict.Raw())
			default:
				return nil, m.mismatch(key, bencode.KindDict, v)
			}
		default:
			if err = v.Skip(); err != nil {
				return nil, err
			}
		}
	}
	if err := m.require(keyAnnounce, keyInfo); err != nil {
		return nil, err
	}
	return t, nil
}

func parseInfo(dict *bencode.DictCursor) (*MetaFileInfo, error) {
	m := newDictMapper(keyInfo)
	info := &MetaFileInfo{}
	for {
		k, v, ok, err := dict.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		key := string(k)
		switch key {
		case keyName:
			if err = m.claim(key, key); err != nil {
				return nil, err
			}
			if info.Name, err = m.text(key, v); err != nil {
				return nil, err
			}
		case keyPieceLength, pieceLengthAlias:
			if err = m.claim(keyPieceLength, key); err != nil {
				return nil, err
			}
			if info.PieceLength, err = m.uint(key, v); err != nil {
				return nil, err
			}
		case keyPieces:
			if err = m.claim(key, key); err != nil {
				return nil, err
			}
			if info.Pieces, err = m.pieces(key, v); err != nil {
				return nil, err
			}
		case keyLength:
			if err = m.claim(key, key); err != nil {
				return nil, err
			}
			length, err := m.uint(key, v)
			if err != nil {
				return nil, err
			}
			info.FileList = Single{Length: length}
		case keyFiles:
			if err = m.claim(key, key); err != nil {
				return nil, err
			}
			switch v.Kind {
			case bencode.KindList:
				files, err := parseFiles(v.List)
				if err != nil {
					return nil, err
				}
				info.FileList = Multiple{Files: files}
			default:
				return nil, m.mismatch(key, bencode.KindList, v)
			}
		default:
			if err = v.Skip(); err != nil {
				return nil, err
			}
		}
	}
	if err := m.require(keyName, keyPieceLength, keyPieces); err != nil {
		return nil, err
	}
	switch {
	case m.has(keyLength) && m.has(keyFiles):
		return nil, &ExclusiveKeyError{Dict: m.name, Present: []string{keyLength, keyFiles}}
	case !m.has(keyLength) && !m.has(keyFiles):
		return nil, &ExclusiveKeyError{Dict: m.name}
	}
	return info, nil
}

func parseFiles(list *bencode.ListCursor) ([]FileListItem, error) {
	files := make([]FileListItem, 0)
	for i := 0; ; i++ {
		v, ok, err := list.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			return files, nil
		}
		switch v.Kind {
		case bencode.KindDict:
			f, err := parseFileItem(v.Dict, i)
			if err != nil {
				return nil, err
			}
			files = append(files, *f)
		default:
			return nil, &KindError{Dict: "info.files", Key: fmt.Sprintf("files[%d]", i), Want: bencode.KindDict, Got: v.Kind}
		}
	}
}

func parseFileItem(dict *bencode.DictCursor, index int) (*FileListItem, error) {
	m := newDictMapper(fmt.Sprintf("info.files[%d]", index))
	f := &FileListItem{}
	for {
		k, v, ok, err := dict.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		key := string(k)
		switch key {
		case keyLength:
			if err = m.claim(key, key); err != nil {
				return nil, err
			}
			if f.Length, err = m.uint(key, v); err != nil {
				return nil, err
			}
		case keyPath:
			if err = m.claim(key, key); err != nil {
				return nil, err
			}
			if f.Path, err = m.path(key, v); err != nil {
				return nil, err
			}
		default:
			if err = v.Skip(); err != nil {
				return nil, err
			}
		}
	}
	if err := m.require(keyLength, keyPath); err != nil {
		return nil, err
	}
	return f, nil
}

func (m *dictMapper) path(key string, v bencode.Value) ([]string, error) {
	switch v.Kind {
	case bencode.KindList:
		segments := make([]string, 0)
		for i := 0; ; i++ {
			seg, ok, err := v.List.Next()
			if err != nil {
				return nil, err
			}
			if !ok {
				return segments, nil
			}
			s, err := m.text(fmt.Sprintf("%s[%d]", key, i), seg)
			if err != nil {
				return nil, err
			}
			segments = append(segments, s)
		}
	default:
		return nil, m.mismatch(key, bencode.KindList, v)
	}
}
