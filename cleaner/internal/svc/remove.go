package svc

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/juju/errors"
	"github.com/schollz/progressbar/v3"
	"github.com/sirupsen/logrus"
)

// Remove deletes files under root, then removes the directories that were
// emptied by it. Failures are logged and counted; the rest still go.
func Remove(root string, files []LocalFile, bar *progressbar.ProgressBar) (int, error) {
	removed, failed := 0, 0
	dirs := make(map[string]struct{})
	for _, f := range files {
		path := filepath.Join(root, f.Rel)
		if err := os.Remove(path); err != nil {
			logrus.Warnf("Failed to remove %s. %v", path, err)
			failed++
		} else {
			removed++
			metricFileCounter.Inc("removed")
			metricBytesCounter.Add(float64(f.Size), "removed")
			dirs[filepath.Dir(path)] = struct{}{}
		}
		if bar != nil {
			_ = bar.Add(1)
		}
	}
	for dir := range dirs {
		pruneEmpty(root, dir)
	}
	if failed > 0 {
		return removed, errors.Errorf("failed to remove %d of %d files", failed, len(files))
	}
	return removed, nil
}

// pruneEmpty removes dir and its parents below root while they are empty.
func pruneEmpty(root, dir string) {
	root = filepath.Clean(root)
	for dir = filepath.Clean(dir); dir != root; dir = filepath.Dir(dir) {
		rel, err := filepath.Rel(root, dir)
		if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
			return
		}
		entries, err := os.ReadDir(dir)
		if err != nil || len(entries) > 0 {
			return
		}
		if err = os.Remove(dir); err != nil {
			logrus.Debugf("Failed to remove empty directory %s. %v", dir, err)
			return
		}
		logrus.Debugf("Removed empty directory %s", dir)
	}
}
