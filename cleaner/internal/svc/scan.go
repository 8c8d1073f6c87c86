package svc

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/elliotchance/orderedmap"
	"github.com/juju/errors"
	"github.com/schollz/progressbar/v3"
)

type LocalFile struct {
	Rel  string
	Size int64
}

// Scan lists the files under root with paths relative to it. Unless surface
// is set, top-level entries that no expected path starts with are left out.
func Scan(root string, surface bool, expected *orderedmap.OrderedMap, bar *progressbar.ProgressBar) ([]LocalFile, error) {
	st, err := os.Stat(root)
	if err != nil {
		return nil, errors.Trace(err)
	}
	if !st.IsDir() {
		return nil, errors.Errorf("root %q is not a directory", root)
	}

	top := make(map[string]struct{})
	for _, k := range expected.Keys() {
		first, _, _ := strings.Cut(k.(string), string(filepath.Separator))
		top[first] = struct{}{}
	}

	files := make([]LocalFile, 0)
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == root {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if !surface && !strings.ContainsRune(rel, filepath.Separator) {
			if _, ok := top[rel]; !ok {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		files = append(files, LocalFile{Rel: rel, Size: info.Size()})
		if bar != nil {
			_ = bar.Add(1)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Annotatef(err, "failed to scan %q", root)
	}
	return files, nil
}
