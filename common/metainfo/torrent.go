package metainfo

import (
	"os"

	"github.com/AnvilloyDevStudio/torrent-cleaner/common/bencode"
	"github.com/juju/errors"
)

// PieceHashSize is the length of one SHA-1 piece hash.
const PieceHashSize = 20

type TorrentFile struct {
	Announce string
	Info     MetaFileInfo
	// InfoHash is the SHA-1 of the encoded info dictionary.
	InfoHash [20]byte
}

type MetaFileInfo struct {
	Name        string
	PieceLength uint64
	Pieces      [][PieceHashSize]byte
	FileList    FileList
}

// FileList is either Single or Multiple.
type FileList interface {
	isFileList()
}

type Single struct {
	Length uint64
}

type Multiple struct {
	Files []FileListItem
}

func (Single) isFileList()   {}
func (Multiple) isFileList() {}

func (i *MetaFileInfo) TotalLength() uint64 {
	switch fl := i.FileList.(type) {
	case Single:
		return fl.Length
	case Multiple:
		var total uint64
		for _, f := range fl.Files {
			total += f.Length
		}
		return total
	default:
		return 0
	}
}

// Open reads a metafile from disk and parses it.
func Open(path string, opts ...bencode.Option) (*TorrentFile, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Trace(err)
	}
	t, err := Parse(buf, opts...)
	if err != nil {
		return nil, errors.Annotatef(err, "error while parsing %q", path)
	}
	return t, nil
}
