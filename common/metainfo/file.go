package metainfo

import (
	"path/filepath"
	"strings"

	"github.com/elliotchance/orderedmap"
	"github.com/juju/errors"
)

type FileListItem struct {
	Length uint64   `yaml:"length"`
	Path   []string `yaml:"path"`
}

// RelPath joins the path segments with sep.
func (f *FileListItem) RelPath(sep string) string {
	return strings.Join(f.Path, sep)
}

// CheckSegment rejects a path segment that would not name an entry inside
// its parent directory once joined with sep.
func CheckSegment(segment, sep string) error {
	switch {
	case segment == "", segment == ".", segment == "..":
	case strings.Contains(segment, "/"), sep != "" && strings.Contains(segment, sep):
	case filepath.IsAbs(segment), filepath.VolumeName(segment) != "":
	case strings.IndexByte(segment, 0) >= 0:
	default:
		return nil
	}
	return errors.Annotatef(ErrUnsafePath, "%q", segment)
}

// FileSizes maps every relative path of a multi-file torrent to its
// declared size, in descriptor order.
func (t *TorrentFile) FileSizes(sep string) (*orderedmap.OrderedMap, error) {
	multiple, ok := t.Info.FileList.(Multiple)
	if !ok {
		return nil, errors.Trace(ErrSingleFile)
	}
	ret := orderedmap.NewOrderedMap()
	for _, f := range multiple.Files {
		for _, segment := range f.Path {
			if err := CheckSegment(segment, sep); err != nil {
				return nil, err
			}
		}
		rel := f.RelPath(sep)
		if _, exists := ret.Get(rel); exists {
			return nil, errors.Annotatef(ErrDuplicatePath, "%q", rel)
		}
		ret.Set(rel, f.Length)
	}
	return ret, nil
}
